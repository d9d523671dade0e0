package lib

import (
	"errors"
	"fmt"
	"os"
)

// ExitCoder is an error that chooses the process exit status.
type ExitCoder interface {
	error
	ExitCode() int
}

type codedError struct {
	err  error
	code int
}

func (e codedError) Error() string { return e.err.Error() }
func (e codedError) Unwrap() error { return e.err }
func (e codedError) ExitCode() int { return e.code }

// WithExitCode attaches an exit status to err. A nil err stays nil.
func WithExitCode(err error, code int) error {
	if err == nil {
		return nil
	}
	return codedError{err: err, code: code}
}

// Code returns the exit status for err: 0 for nil, the carried code for an
// ExitCoder, 1 otherwise.
func Code(err error) int {
	if err == nil {
		return 0
	}
	var ec ExitCoder
	if errors.As(err, &ec) {
		return ec.ExitCode()
	}
	return 1
}

// Exit prints the error and exits the program with its code
func Exit(err error) {
	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(Code(err))
}
