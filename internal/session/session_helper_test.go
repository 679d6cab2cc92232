package session_test

import (
	"time"

	"github.com/rohmanhakim/robots-directives/internal/metadata"
)

type errorRecord struct {
	PackageName string
	Action      string
	Cause       metadata.ErrorCause
	Details     string
}

// metadataSinkMock is a mock for metadata.MetadataSink
type metadataSinkMock struct {
	errorRecords []errorRecord
}

func (m *metadataSinkMock) RecordError(
	observedAt time.Time,
	packageName string,
	action string,
	cause metadata.ErrorCause,
	details string,
	attrs []metadata.Attribute,
) {
	m.errorRecords = append(m.errorRecords, errorRecord{
		PackageName: packageName,
		Action:      action,
		Cause:       cause,
		Details:     details,
	})
}

func (m *metadataSinkMock) RecordDecode(kind metadata.DecodeKind, count int, attrs []metadata.Attribute) {
}

func (m *metadataSinkMock) RecordPersist(backend string, key string, fingerprint string, size int) {}
