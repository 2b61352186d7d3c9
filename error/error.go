package error

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// SourceError annotates an error found in a Pseudo-Kotlin program with its location.
type SourceError struct {
	Cause      error
	FilePath   string
	SourceName string
	Line       int

	// Source is consulted instead of FilePath when it is non-empty, for programs read from stdin.
	Source string
}

func (e *SourceError) Error() string {
	var b strings.Builder
	if e.SourceName != "" {
		fmt.Fprintf(&b, "%v:", e.SourceName)
	}
	if e.Line != 0 {
		fmt.Fprintf(&b, "%v:", e.Line)
	}
	if b.Len() > 0 {
		b.WriteString(" ")
	}
	fmt.Fprintf(&b, "error: %v", e.Cause)

	line := e.readLine()
	if line != "" {
		fmt.Fprintf(&b, "\n    %v", line)
	}

	return b.String()
}

func (e *SourceError) Unwrap() error {
	return e.Cause
}

func (e *SourceError) readLine() string {
	if e.Line <= 0 {
		return ""
	}
	if e.Source != "" {
		return readLine(strings.NewReader(e.Source), e.Line)
	}
	if e.FilePath == "" {
		return ""
	}

	f, err := os.Open(e.FilePath)
	if err != nil {
		return ""
	}
	defer f.Close()

	return readLine(f, e.Line)
}

func readLine(r io.Reader, line int) string {
	i := 1
	s := bufio.NewScanner(r)
	for s.Scan() {
		if i == line {
			return strings.TrimRight(s.Text(), "\r")
		}
		i++
	}

	return ""
}

// SourceErrors is a list of errors found in one program.
type SourceErrors []*SourceError

func (e SourceErrors) Error() string {
	var b strings.Builder
	for i, err := range e {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(err.Error())
	}
	return b.String()
}
