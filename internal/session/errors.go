package session

import (
	"fmt"

	"github.com/rohmanhakim/robots-directives/internal/metadata"
	"github.com/rohmanhakim/robots-directives/pkg/failure"
)

type SessionErrorCause string

const (
	ErrCauseInvalidJSON      SessionErrorCause = "invalid json"
	ErrCauseNotAnArray       SessionErrorCause = "not an array"
	ErrCauseIndexOutOfRange  SessionErrorCause = "index out of range"
	ErrCauseUnknownRule      SessionErrorCause = "unknown rule"
	ErrCauseUnknownList      SessionErrorCause = "unknown directive list"
	ErrCauseBotNamesDisabled SessionErrorCause = "bot names disabled"
)

// SessionError reports a rejected edit. The working state is left untouched,
// so every SessionError is recoverable.
type SessionError struct {
	Message string
	Cause   SessionErrorCause
}

func (e *SessionError) Error() string {
	return fmt.Sprintf("session error: %s: %s", e.Cause, e.Message)
}

func (e *SessionError) Severity() failure.Severity {
	return failure.SeverityRecoverable
}

func sessionError(cause SessionErrorCause, format string, args ...any) *SessionError {
	return &SessionError{
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

func mapSessionErrorToMetadataCause(err *SessionError) metadata.ErrorCause {
	switch err.Cause {
	case ErrCauseInvalidJSON, ErrCauseNotAnArray:
		return metadata.CauseDecodeFailure
	case ErrCauseIndexOutOfRange, ErrCauseUnknownRule, ErrCauseUnknownList, ErrCauseBotNamesDisabled:
		return metadata.CauseInvariantViolation
	default:
		return metadata.CauseUnknown
	}
}
