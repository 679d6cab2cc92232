package htmlmeta

import (
	"fmt"

	"github.com/rohmanhakim/robots-directives/internal/metadata"
	"github.com/rohmanhakim/robots-directives/pkg/failure"
)

type HtmlMetaErrorCause string

const (
	ErrCauseParseFailure  HtmlMetaErrorCause = "parse failure"
	ErrCauseRenderFailure HtmlMetaErrorCause = "render failure"
)

type HtmlMetaError struct {
	Message   string
	Retryable bool
	Cause     HtmlMetaErrorCause
}

func (e *HtmlMetaError) Error() string {
	return fmt.Sprintf("html meta error: %s: %s", e.Cause, e.Message)
}

func (e *HtmlMetaError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

// mapHtmlMetaErrorToMetadataCause maps htmlmeta-local error semantics
// to the canonical metadata.ErrorCause table.
//
// This mapping is observational only and MUST NOT be used
// to derive control-flow decisions.
func mapHtmlMetaErrorToMetadataCause(err *HtmlMetaError) metadata.ErrorCause {
	switch err.Cause {
	case ErrCauseParseFailure:
		return metadata.CauseDecodeFailure
	default:
		return metadata.CauseUnknown
	}
}
