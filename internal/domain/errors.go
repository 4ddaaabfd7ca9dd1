package domain

import (
	"errors"
	"fmt"
)

// Process exit codes.
const (
	ExitPass        = 0
	ExitFailed      = 1
	ExitFatalConfig = 2
)

// FatalConfigError means the tool could not run at all: the manifest or the
// rule configuration is missing or unreadable.
type FatalConfigError struct {
	Source string
	Err    error
}

func (e *FatalConfigError) Error() string {
	return fmt.Sprintf("%s: %v", e.Source, e.Err)
}

func (e *FatalConfigError) Unwrap() error { return e.Err }

// ValidationFailedError means the run completed and some rule was not
// satisfied.
type ValidationFailedError struct {
	Failed int
	Total  int
}

func (e *ValidationFailedError) Error() string {
	return fmt.Sprintf("validation failed: %d of %d rule(s) not satisfied", e.Failed, e.Total)
}

// ExitCodeFor maps an error returned by a run to a process exit code.
func ExitCodeFor(err error) int {
	if err == nil {
		return ExitPass
	}
	var vf *ValidationFailedError
	if errors.As(err, &vf) {
		return ExitFailed
	}
	return ExitFatalConfig
}
