package store

import (
	"fmt"

	"github.com/rohmanhakim/robots-directives/internal/metadata"
	"github.com/rohmanhakim/robots-directives/pkg/failure"
)

type StorageErrorCause string

const (
	ErrCauseInvalidKey            StorageErrorCause = "invalid key"
	ErrCauseReadFailure           StorageErrorCause = "read failed"
	ErrCauseWriteFailure          StorageErrorCause = "write failed"
	ErrCauseDiskFull              StorageErrorCause = "disk is full"
	ErrCausePathError             StorageErrorCause = "path error"
	ErrCauseConnectionFailure     StorageErrorCause = "connection failed"
	ErrCauseHashComputationFailed StorageErrorCause = "hash computation failed"
)

type StorageError struct {
	Message   string
	Retryable bool
	Cause     StorageErrorCause
	Key       string
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error: %s: %s", e.Cause, e.Message)
}

func (e *StorageError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

// mapStorageErrorToMetadataCause maps storage-local error semantics
// to the canonical metadata.ErrorCause table.
//
// This mapping is observational only and MUST NOT be used
// to derive control-flow decisions.
func mapStorageErrorToMetadataCause(err *StorageError) metadata.ErrorCause {
	switch err.Cause {
	case ErrCauseReadFailure,
		ErrCauseWriteFailure,
		ErrCauseDiskFull,
		ErrCausePathError,
		ErrCauseConnectionFailure:
		return metadata.CauseStorageFailure
	case ErrCauseInvalidKey:
		return metadata.CauseInvariantViolation
	default:
		return metadata.CauseUnknown
	}
}
