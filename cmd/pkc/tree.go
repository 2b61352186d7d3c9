package main

import (
	"github.com/pkotlin/pkc/config"
	"github.com/pkotlin/pkc/console"
	"github.com/pkotlin/pkc/tester"
	"github.com/spf13/cobra"
)

var treeFlags = struct {
	source *string
	format *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Print the parse tree of a program",
		Long: `tree prints the parse tree of a valid program, or the errors that prevented it.
The yaml format prints the tree in the form a test case of the test command expects.`,
		Example: `  pkc tree -s prog.txt`,
		Args:    cobra.NoArgs,
		RunE:    runTree,
	}
	treeFlags.source = cmd.Flags().StringP("source", "s", "", "source file path (default stdin)")
	treeFlags.format = cmd.Flags().StringP("format", "f", config.FormatText, "output format (text, json, or yaml)")
	rootCmd.AddCommand(cmd)
}

func runTree(cmd *cobra.Command, args []string) (retErr error) {
	defer recoverRun(&retErr)

	format, err := outputFormat(cmd, treeFlags.format)
	if err != nil {
		return err
	}

	src, err := readSource(cmd, *treeFlags.source)
	if err != nil {
		return err
	}

	res := analyze(src)

	w := cmd.OutOrStdout()
	p := console.NewPrinter(w, cfg.ColorEnabled())
	if res.Tree == nil {
		p.Message(res)
		return nil
	}

	switch format {
	case config.FormatJSON:
		return console.Encode(w, format, res.Tree)
	case config.FormatYAML:
		b, err := tester.ConvertNode(res.Tree).Format()
		if err != nil {
			return err
		}
		_, err = w.Write(b)
		return err
	}

	p.Tree(res)

	return nil
}
