package main

import (
	"github.com/pkotlin/pkc/config"
	"github.com/pkotlin/pkc/console"
	"github.com/spf13/cobra"
)

var tokensFlags = struct {
	source *string
	format *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "tokens",
		Short:   "Print the tokens of a program",
		Example: `  pkc tokens -s prog.txt`,
		Args:    cobra.NoArgs,
		RunE:    runTokens,
	}
	tokensFlags.source = cmd.Flags().StringP("source", "s", "", "source file path (default stdin)")
	tokensFlags.format = cmd.Flags().StringP("format", "f", config.FormatText, "output format (text, json, or yaml)")
	rootCmd.AddCommand(cmd)
}

func runTokens(cmd *cobra.Command, args []string) (retErr error) {
	defer recoverRun(&retErr)

	format, err := outputFormat(cmd, tokensFlags.format)
	if err != nil {
		return err
	}

	src, err := readSource(cmd, *tokensFlags.source)
	if err != nil {
		return err
	}

	res := analyze(src)

	w := cmd.OutOrStdout()
	if format != config.FormatText {
		return console.Encode(w, format, res.Tokens)
	}

	p := console.NewPrinter(w, cfg.ColorEnabled())
	p.Tokens(res.Tokens)
	if len(res.LexicalErrors) > 0 {
		p.Errors(res.LexicalErrors)
	}

	return nil
}
