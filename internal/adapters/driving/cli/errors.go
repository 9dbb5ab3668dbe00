package cli

import (
	"errors"
	"io/fs"

	"github.com/custodia-labs/modelstore/internal/core/domain"
)

// Process exit codes.
const (
	ExitCodeSuccess   = 0
	ExitCodeGeneric   = 1
	ExitCodeUsage     = 2
	ExitCodeNotFound  = 3
	ExitCodeStorage   = 4
	ExitCodeDowngrade = 5
)

// ExitError pairs a command error with the process exit code it maps to.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e == nil || e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ExitCode returns the process exit code.
func (e *ExitError) ExitCode() int {
	if e == nil {
		return ExitCodeGeneric
	}
	return e.Code
}

// ExitCode returns the exit code for an error returned by Execute.
func ExitCode(err error) int {
	if err == nil {
		return ExitCodeSuccess
	}
	var withExit interface{ ExitCode() int }
	if errors.As(err, &withExit) {
		return withExit.ExitCode()
	}
	return ExitCodeGeneric
}

func mapCommandError(err error) error {
	if err == nil {
		return nil
	}
	var withExit interface{ ExitCode() int }
	if errors.As(err, &withExit) {
		return err
	}

	switch {
	case errors.Is(err, domain.ErrDowngrade):
		return &ExitError{Code: ExitCodeDowngrade, Err: err}
	case errors.Is(err, domain.ErrConfiguration), errors.Is(err, domain.ErrInvalidQuery):
		return &ExitError{Code: ExitCodeUsage, Err: err}
	case errors.Is(err, errNotFound), errors.Is(err, fs.ErrNotExist):
		return &ExitError{Code: ExitCodeNotFound, Err: err}
	case errors.Is(err, domain.ErrStorage):
		return &ExitError{Code: ExitCodeStorage, Err: err}
	default:
		return &ExitError{Code: ExitCodeGeneric, Err: err}
	}
}

// errNotFound reports a lookup that matched no row.
var errNotFound = errors.New("not found")
