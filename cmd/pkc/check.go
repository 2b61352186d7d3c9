package main

import (
	"errors"

	verr "github.com/pkotlin/pkc/error"
	"github.com/spf13/cobra"
)

var checkFlags = struct {
	source *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check a program and fail when it has errors",
		Long: `check prints nothing for a valid program. Otherwise it prints every error along with
the offending source line and exits with a non-zero status.`,
		Example: `  pkc check -s prog.txt`,
		Args:    cobra.NoArgs,
		RunE:    runCheck,
	}
	checkFlags.source = cmd.Flags().StringP("source", "s", "", "source file path (default stdin)")
	rootCmd.AddCommand(cmd)
}

func runCheck(cmd *cobra.Command, args []string) (retErr error) {
	defer recoverRun(&retErr)

	src, err := readSource(cmd, *checkFlags.source)
	if err != nil {
		return err
	}

	res := analyze(src)
	if len(res.Diagnostics) == 0 {
		return nil
	}

	errs := make(verr.SourceErrors, 0, len(res.Diagnostics))
	for _, d := range res.Diagnostics {
		e := &verr.SourceError{
			Cause:      errors.New(d.Message),
			SourceName: src.name(),
			Line:       d.Line,
		}
		if src.path == "" {
			e.Source = src.text
		} else {
			e.FilePath = src.path
		}
		errs = append(errs, e)
	}
	return errs
}
