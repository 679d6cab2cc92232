package codec

import (
	"fmt"
	"strings"

	"github.com/rohmanhakim/robots-directives/internal/metadata"
	"github.com/rohmanhakim/robots-directives/internal/rules"
	"github.com/rohmanhakim/robots-directives/pkg/failure"
)

type CodecErrorCause string

const (
	ErrCauseMalformedJSON   CodecErrorCause = "malformed json"
	ErrCauseUnexpectedShape CodecErrorCause = "unexpected shape"
	ErrCauseEncodeFailure   CodecErrorCause = "encode failure"
)

// CodecError is returned when bytes cannot be decoded or encoded. Decode
// failures are recoverable: the caller continues with an empty value.
type CodecError struct {
	Message     string
	Recoverable bool
	Cause       CodecErrorCause
}

func (e *CodecError) Error() string {
	return fmt.Sprintf("codec error: %s: %s", e.Cause, e.Message)
}

func (e *CodecError) Severity() failure.Severity {
	if e.Recoverable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

func decodeError(cause CodecErrorCause, format string, args ...any) *CodecError {
	return &CodecError{
		Message:     fmt.Sprintf(format, args...),
		Recoverable: true,
		Cause:       cause,
	}
}

// ValidationError rejects a save under strict validation.
// Pattern and List are empty for a plain directive list.
type ValidationError struct {
	Pattern string
	List    rules.Kind
	Errors  []string
}

func (e *ValidationError) Error() string {
	switch {
	case e.List == rules.KindMeta:
		return fmt.Sprintf("invalid meta directives for pattern %q: %s", e.Pattern, strings.Join(e.Errors, ", "))
	case e.List == rules.KindXRobots:
		return fmt.Sprintf("invalid X-Robots directives for pattern %q: %s", e.Pattern, strings.Join(e.Errors, ", "))
	default:
		return fmt.Sprintf("invalid directives: %s", strings.Join(e.Errors, ", "))
	}
}

func (e *ValidationError) Severity() failure.Severity {
	return failure.SeverityFatal
}

// mapCodecErrorToMetadataCause maps codec-local error semantics
// to the canonical metadata.ErrorCause table.
//
// This mapping is observational only and MUST NOT be used
// to derive control-flow decisions.
func mapCodecErrorToMetadataCause(err error) metadata.ErrorCause {
	switch e := err.(type) {
	case *ValidationError:
		return metadata.CauseValidationFailure
	case *CodecError:
		switch e.Cause {
		case ErrCauseMalformedJSON, ErrCauseUnexpectedShape:
			return metadata.CauseDecodeFailure
		default:
			return metadata.CauseUnknown
		}
	default:
		return metadata.CauseUnknown
	}
}
