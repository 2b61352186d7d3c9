package tester

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkotlin/pkc/analyzer"
)

type TestResult struct {
	TestCasePath string
	Error        error
	Diffs        []*TreeDiff
}

func (r *TestResult) String() string {
	if r.Error != nil {
		const indent1 = "    "
		const indent2 = indent1 + indent1

		msgLines := strings.Split(r.Error.Error(), "\n")
		msg := fmt.Sprintf("Failed %v:\n%v%v", r.TestCasePath, indent1, strings.Join(msgLines, "\n"+indent1))
		if len(r.Diffs) == 0 {
			return msg
		}
		var diffLines []string
		for _, diff := range r.Diffs {
			diffLines = append(diffLines, diff.Message)
			diffLines = append(diffLines, fmt.Sprintf("%vexpected path: %v", indent1, diff.ExpectedPath))
			diffLines = append(diffLines, fmt.Sprintf("%vactual path:   %v", indent1, diff.ActualPath))
		}
		return fmt.Sprintf("%v\n%v%v", msg, indent2, strings.Join(diffLines, "\n"+indent2))
	}
	return fmt.Sprintf("Passed %v", r.TestCasePath)
}

type TestCaseWithMetadata struct {
	TestCase *TestCase
	FilePath string
	Error    error
}

func isTestCaseFile(path string) bool {
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// ListTestCases reads the test case at testPath, or every YAML file under it when it is a directory.
func ListTestCases(testPath string) []*TestCaseWithMetadata {
	fi, err := os.Stat(testPath)
	if err != nil {
		return []*TestCaseWithMetadata{
			{
				FilePath: testPath,
				Error:    err,
			},
		}
	}
	if !fi.IsDir() {
		c, err := parseTestCase(testPath)
		return []*TestCaseWithMetadata{
			{
				TestCase: c,
				FilePath: testPath,
				Error:    err,
			},
		}
	}

	es, err := os.ReadDir(testPath)
	if err != nil {
		return []*TestCaseWithMetadata{
			{
				FilePath: testPath,
				Error:    err,
			},
		}
	}
	var cases []*TestCaseWithMetadata
	for _, e := range es {
		path := filepath.Join(testPath, e.Name())
		if !e.IsDir() && !isTestCaseFile(path) {
			continue
		}
		cs := ListTestCases(path)
		cases = append(cases, cs...)
	}
	return cases
}

func parseTestCase(testCasePath string) (*TestCase, error) {
	f, err := os.Open(testCasePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseTestCase(f)
}

// Tester runs test cases through the analyzer.
type Tester struct {
	Options []analyzer.Option
	Cases   []*TestCaseWithMetadata
}

func (t *Tester) Run() []*TestResult {
	var rs []*TestResult
	for _, c := range t.Cases {
		rs = append(rs, runTest(c, t.Options))
	}
	return rs
}

func runTest(c *TestCaseWithMetadata, opts []analyzer.Option) *TestResult {
	res := analyzer.Analyze(c.TestCase.Source, opts...)

	err := diffErrors(c.TestCase.Errors, res.Errors())
	if err != nil {
		return &TestResult{
			TestCasePath: c.FilePath,
			Error:        err,
		}
	}

	if c.TestCase.Tree == nil {
		return &TestResult{
			TestCasePath: c.FilePath,
		}
	}
	if res.Tree == nil {
		return &TestResult{
			TestCasePath: c.FilePath,
			Error:        fmt.Errorf("parse tree was not generated: syntax error occurred"),
		}
	}

	diffs := DiffTree(c.TestCase.Tree, ConvertNode(res.Tree).Fill())
	if len(diffs) > 0 {
		return &TestResult{
			TestCasePath: c.FilePath,
			Error:        fmt.Errorf("output mismatch"),
			Diffs:        diffs,
		}
	}
	return &TestResult{
		TestCasePath: c.FilePath,
	}
}

func diffErrors(expected, actual []string) error {
	var lines []string
	n := len(expected)
	if len(actual) > n {
		n = len(actual)
	}
	for i := 0; i < n; i++ {
		switch {
		case i >= len(actual):
			lines = append(lines, fmt.Sprintf("missing error #%v: %v", i+1, expected[i]))
		case i >= len(expected):
			lines = append(lines, fmt.Sprintf("unexpected error #%v: %v", i+1, actual[i]))
		case expected[i] != actual[i]:
			lines = append(lines, fmt.Sprintf("error #%v mismatch:\n    expected: %v\n    actual:   %v", i+1, expected[i], actual[i]))
		}
	}
	if len(lines) == 0 {
		return nil
	}
	return fmt.Errorf("%v", strings.Join(lines, "\n"))
}
