package analyzer

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrToolNotFound is returned when an analyzer executable cannot be located.
	ErrToolNotFound = errors.New("executable not found")
	// ErrNonZeroExit is returned when a tool exits with a status that signals failure.
	ErrNonZeroExit = errors.New("non-zero exit status")
	// ErrEmptyOutput is returned when a tool produced nothing on stdout.
	ErrEmptyOutput = errors.New("empty output")
	// ErrMalformedOutput is returned when tool output cannot be decoded.
	ErrMalformedOutput = errors.New("malformed output")
	// ErrTimeout is returned when a tool does not finish within the configured timeout.
	ErrTimeout = errors.New("timed out")
)

// InvocationError describes a failed analyzer run for one file.
type InvocationError struct {
	Tool   string
	File   string
	Err    error
	Stderr string
}

func (e *InvocationError) Error() string {
	msg := fmt.Sprintf("%s failed on %s: %v", e.Tool, e.File, e.Err)
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += "\nstderr: " + s
	}
	return msg
}

func (e *InvocationError) Unwrap() error {
	return e.Err
}

func invocationError(tool, file string, err error, out *Output) error {
	ie := &InvocationError{Tool: tool, File: file, Err: err}
	if out != nil {
		ie.Stderr = string(out.Stderr)
	}
	return ie
}
