package main

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/pkotlin/pkc/analyzer"
	"github.com/pkotlin/pkc/config"
	"github.com/spf13/cobra"
)

type sourceText struct {
	text string

	// path is empty when the text came from stdin.
	path string
}

func (s *sourceText) name() string {
	if s.path == "" {
		return "stdin"
	}
	return s.path
}

// readSource reads the file at path, or stdin when path is empty.
func readSource(cmd *cobra.Command, path string) (*sourceText, error) {
	if path == "" {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("Cannot read the source from stdin: %w", err)
		}
		return &sourceText{
			text: string(b),
		}, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("Cannot open the source file %s: %w", path, err)
	}
	return &sourceText{
		text: string(b),
		path: path,
	}, nil
}

func analyze(src *sourceText) *analyzer.AnalysisResult {
	opts := append(cfg.AnalyzerOptions(), analyzer.WithLogger(logger.With("source", src.name())))
	return analyzer.Analyze(src.text, opts...)
}

// outputFormat returns the value of a --format flag when it was given, and the configured format otherwise.
func outputFormat(cmd *cobra.Command, flag *string) (string, error) {
	format := cfg.Output.Format
	if cmd.Flags().Changed("format") {
		format = *flag
	}
	err := config.ValidateFormat(format)
	if err != nil {
		return "", err
	}
	return format, nil
}

// recoverRun turns a panic in a command into an error and prints its stack trace.
func recoverRun(retErr *error) {
	v := recover()
	if v == nil {
		return
	}

	err, ok := v.(error)
	if !ok {
		err = fmt.Errorf("an unexpected error occurred: %v", v)
	}
	fmt.Fprintf(os.Stderr, "%v:\n%v", err, string(debug.Stack()))
	*retErr = err
}
