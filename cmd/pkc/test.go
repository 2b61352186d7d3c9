package main

import (
	"errors"
	"fmt"

	"github.com/pkotlin/pkc/tester"
	"github.com/spf13/cobra"
)

var errTestFailed = errors.New("Test failed")

func init() {
	cmd := &cobra.Command{
		Use:   "test <test file path>|<test directory path>",
		Short: "Check programs against their expected errors and parse trees",
		Long: `test analyzes the source of each YAML test case and compares the errors and the
parse tree with the expected ones. A directory is searched recursively for .yaml and .yml files.`,
		Example: `  pkc test testdata`,
		Args:    cobra.ExactArgs(1),
		RunE:    runTest,
	}
	rootCmd.AddCommand(cmd)
}

func runTest(cmd *cobra.Command, args []string) error {
	var cs []*tester.TestCaseWithMetadata
	{
		cs = tester.ListTestCases(args[0])
		errOccurred := false
		for _, c := range cs {
			if c.Error != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Failed to read a test case or a directory: %v\n%v\n", c.FilePath, c.Error)
				errOccurred = true
			}
		}
		if errOccurred {
			return errors.New("Cannot run test")
		}
	}

	t := &tester.Tester{
		Options: cfg.AnalyzerOptions(),
		Cases:   cs,
	}
	rs := t.Run()
	testFailed := false
	for _, r := range rs {
		fmt.Fprintln(cmd.OutOrStdout(), r)
		if r.Error != nil {
			testFailed = true
		}
	}
	if testFailed {
		return errTestFailed
	}
	return nil
}
