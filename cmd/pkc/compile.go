package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/pkotlin/pkc/grammar"
	"github.com/spf13/cobra"
)

var compileFlags = struct {
	output   *string
	report   *string
	compress *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "compile",
		Short: "Compile the Pseudo-Kotlin grammar into a parsing table",
		Example: `  pkc compile -o pseudo-kotlin.json
  pkc compile -o pseudo-kotlin.json --report pseudo-kotlin-report.json
  pkc compile --compress`,
		Args: cobra.NoArgs,
		RunE: runCompile,
	}
	compileFlags.output = cmd.Flags().StringP("output", "o", "", "output file path (default stdout)")
	compileFlags.report = cmd.Flags().String("report", "", "also write the automaton report to this path")
	compileFlags.compress = cmd.Flags().Bool("compress", false, "compress the parsing tables")
	rootCmd.AddCommand(cmd)
}

func runCompile(cmd *cobra.Command, args []string) (retErr error) {
	defer recoverRun(&retErr)

	var opts []grammar.CompileOption
	if *compileFlags.report != "" {
		opts = append(opts, grammar.EnableReporting())
	}
	if *compileFlags.compress {
		opts = append(opts, grammar.CompressTables())
	}
	cgram, report, err := grammar.CompileCatalogue(opts...)
	if err != nil {
		return err
	}

	if *compileFlags.output == "" {
		err = writeJSON(cmd.OutOrStdout(), cgram)
	} else {
		err = writeJSONFile(*compileFlags.output, cgram)
	}
	if err != nil {
		return fmt.Errorf("Cannot write a compiled grammar: %w", err)
	}

	if report != nil {
		err := writeJSONFile(*compileFlags.report, report)
		if err != nil {
			return fmt.Errorf("Cannot write a report: %w", err)
		}

		sr, rr := report.ConflictCount()
		if sr+rr > 0 {
			fmt.Fprintf(cmd.ErrOrStderr(), "%v conflicts\n", sr+rr)
		}
	}

	return nil
}

func writeJSONFile(path string, v interface{}) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	defer f.Close()
	return writeJSON(f, v)
}

func writeJSON(w io.Writer, v interface{}) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%v\n", string(b))
	return err
}
