package main

import (
	"fmt"
	"log/slog"

	"github.com/pkotlin/pkc/config"
	"github.com/pkotlin/pkc/console"
	"github.com/pkotlin/pkc/project"
	"github.com/spf13/cobra"
)

var projectSaveFlags = struct {
	source *string
}{}

var projectLoadFlags = struct {
	format *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Save and load " + project.Extension + " project files",
	}

	saveCmd := &cobra.Command{
		Use:   "save <project file path>",
		Short: "Analyze a program and save it with its tokens and identifiers",
		Example: `  pkc project save hello -s hello.txt
  cat hello.txt | pkc project save hello.pk`,
		Args: cobra.ExactArgs(1),
		RunE: runProjectSave,
	}
	projectSaveFlags.source = saveCmd.Flags().StringP("source", "s", "", "source file path (default stdin)")

	loadCmd := &cobra.Command{
		Use:     "load <project file path>",
		Short:   "Print a saved program and analyze it again",
		Example: `  pkc project load hello.pk`,
		Args:    cobra.ExactArgs(1),
		RunE:    runProjectLoad,
	}
	projectLoadFlags.format = loadCmd.Flags().StringP("format", "f", config.FormatText, "output format (text, json, or yaml)")

	cmd.AddCommand(saveCmd, loadCmd)
	rootCmd.AddCommand(cmd)
}

func runProjectSave(cmd *cobra.Command, args []string) (retErr error) {
	defer recoverRun(&retErr)

	src, err := readSource(cmd, *projectSaveFlags.source)
	if err != nil {
		return err
	}

	res := analyze(src)
	title, err := project.Save(args[0], project.FromResult(src.text, res))
	if err != nil {
		return err
	}
	logger.Debug("saved a project", slog.String("title", title), slog.String("path", args[0]))

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Saved %v\n", title)
	console.NewPrinter(w, cfg.ColorEnabled()).Message(res)

	return nil
}

func runProjectLoad(cmd *cobra.Command, args []string) (retErr error) {
	defer recoverRun(&retErr)

	format, err := outputFormat(cmd, projectLoadFlags.format)
	if err != nil {
		return err
	}

	doc, err := project.Load(args[0])
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if format != config.FormatText {
		return console.Encode(w, format, doc)
	}

	fmt.Fprintf(w, "# %v\n\n%v\n\n", project.Title(args[0]), doc.Code)
	res := analyze(&sourceText{
		text: doc.Code,
		path: args[0],
	})
	p := console.NewPrinter(w, cfg.ColorEnabled())
	p.Tokens(res.Tokens)
	p.Identifiers(res.Identifiers)
	p.Message(res)

	return nil
}
