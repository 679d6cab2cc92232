package codec_test

import (
	"time"

	"github.com/rohmanhakim/robots-directives/internal/metadata"
)

// errorRecord stores the parameters passed to RecordError
type errorRecord struct {
	ObservedAt  time.Time
	PackageName string
	Action      string
	Cause       metadata.ErrorCause
	Details     string
	Attrs       []metadata.Attribute
}

// decodeRecord stores the parameters passed to RecordDecode
type decodeRecord struct {
	Kind  metadata.DecodeKind
	Count int
}

// metadataSinkMock is a mock for metadata.MetadataSink
type metadataSinkMock struct {
	errorRecords  []errorRecord
	decodeRecords []decodeRecord
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
		ObservedAt:  observedAt,
		PackageName: packageName,
		Action:      action,
		Cause:       cause,
		Details:     details,
		Attrs:       attrs,
	})
}

func (m *metadataSinkMock) RecordDecode(kind metadata.DecodeKind, count int, attrs []metadata.Attribute) {
	m.decodeRecords = append(m.decodeRecords, decodeRecord{Kind: kind, Count: count})
}

func (m *metadataSinkMock) RecordPersist(backend string, key string, fingerprint string, size int) {}
