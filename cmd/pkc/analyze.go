package main

import (
	"github.com/pkotlin/pkc/config"
	"github.com/pkotlin/pkc/console"
	"github.com/spf13/cobra"
)

var analyzeFlags = struct {
	source *string
	tree   *bool
	format *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze a program and print the result",
		Long: `analyze prints SOURCE CODE WITHOUT SYNTAX ERRORS when a program is valid, and every
lexical and syntax error otherwise. It exits successfully in both cases.`,
		Example: `  pkc analyze -s prog.txt
  cat prog.txt | pkc analyze --format json`,
		Args: cobra.NoArgs,
		RunE: runAnalyze,
	}
	analyzeFlags.source = cmd.Flags().StringP("source", "s", "", "source file path (default stdin)")
	analyzeFlags.tree = cmd.Flags().Bool("tree", false, "also print the parse tree of a valid program")
	analyzeFlags.format = cmd.Flags().StringP("format", "f", config.FormatText, "output format (text, json, or yaml)")
	rootCmd.AddCommand(cmd)
}

func runAnalyze(cmd *cobra.Command, args []string) (retErr error) {
	defer recoverRun(&retErr)

	format, err := outputFormat(cmd, analyzeFlags.format)
	if err != nil {
		return err
	}

	src, err := readSource(cmd, *analyzeFlags.source)
	if err != nil {
		return err
	}

	res := analyze(src)

	w := cmd.OutOrStdout()
	if format != config.FormatText {
		return console.Encode(w, format, res)
	}

	p := console.NewPrinter(w, cfg.ColorEnabled())
	p.Message(res)
	if *analyzeFlags.tree && res.Tree != nil {
		p.Tree(res)
	}

	return nil
}
