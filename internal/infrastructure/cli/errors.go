package cli

import (
	"errors"
	"fmt"

	"github.com/gjalla/gjalla/pkg/application"
	"github.com/gjalla/gjalla/pkg/domain/organize"
)

// CLIError wraps domain errors with user-facing messages and actionable hints.
type CLIError struct {
	Message  string
	Hint     string
	Err      error
	ExitCode int
}

func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a CLIError with a default exit code of 1.
func NewCLIError(msg, hint string, err error) *CLIError {
	return &CLIError{
		Message:  msg,
		Hint:     hint,
		Err:      err,
		ExitCode: 1,
	}
}

// MapError converts known domain errors into CLIErrors with actionable hints.
// Unmapped errors are returned as-is.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	var valErr *organize.ValidationError
	if errors.As(err, &valErr) {
		return NewCLIError(
			valErr.Error(),
			fmt.Sprintf("Check that '%s' exists and is a directory", valErr.Dir),
			err,
		)
	}

	switch {
	case errors.Is(err, application.ErrNoUndoableSession):
		return NewCLIError("nothing to undo", "Run 'gjalla organize' first, or pass --session-id", err)
	case errors.Is(err, application.ErrAlreadyInitialized):
		return NewCLIError("workspace already initialized", "Pass --force to reinitialize", err)
	case errors.Is(err, application.ErrNoRequirementsDoc):
		return NewCLIError("no requirements document", "Run 'gjalla requirements' or 'gjalla init' first", err)
	case errors.Is(err, application.ErrNoStructuredFiles):
		return NewCLIError("no .kiro requirement files found", "Add REQ-* files under .kiro/ or run without --kiro", err)
	}

	return err
}
