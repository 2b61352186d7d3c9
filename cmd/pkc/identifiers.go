package main

import (
	"github.com/pkotlin/pkc/config"
	"github.com/pkotlin/pkc/console"
	"github.com/spf13/cobra"
)

var identifiersFlags = struct {
	source *string
	format *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "identifiers",
		Short:   "Print the distinct identifiers of a program in first-seen order",
		Example: `  pkc identifiers -s prog.txt`,
		Args:    cobra.NoArgs,
		RunE:    runIdentifiers,
	}
	identifiersFlags.source = cmd.Flags().StringP("source", "s", "", "source file path (default stdin)")
	identifiersFlags.format = cmd.Flags().StringP("format", "f", config.FormatText, "output format (text, json, or yaml)")
	rootCmd.AddCommand(cmd)
}

func runIdentifiers(cmd *cobra.Command, args []string) (retErr error) {
	defer recoverRun(&retErr)

	format, err := outputFormat(cmd, identifiersFlags.format)
	if err != nil {
		return err
	}

	src, err := readSource(cmd, *identifiersFlags.source)
	if err != nil {
		return err
	}

	res := analyze(src)

	w := cmd.OutOrStdout()
	if format != config.FormatText {
		return console.Encode(w, format, res.Identifiers)
	}

	console.NewPrinter(w, cfg.ColorEnabled()).Identifiers(res.Identifiers)

	return nil
}
