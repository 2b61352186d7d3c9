package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	verr "github.com/pkotlin/pkc/error"
)

// A rejected program or a failing test case exits with exitRejected. Anything else that stops pkc, such as
// a bad flag or an unreadable file, exits with exitFailure.
const (
	exitOK       = 0
	exitRejected = 1
	exitFailure  = 2
)

func main() {
	os.Exit(exitCode(os.Stderr, Execute()))
}

func exitCode(w io.Writer, err error) int {
	if err == nil {
		return exitOK
	}
	fmt.Fprintln(w, err)

	var srcErrs verr.SourceErrors
	if errors.As(err, &srcErrs) || errors.Is(err, errTestFailed) {
		return exitRejected
	}
	return exitFailure
}
