package store_test

import (
	"os"
	"testing"
	"time"

	"github.com/rohmanhakim/robots-directives/internal/metadata"
	"github.com/rohmanhakim/robots-directives/pkg/retry"
	"github.com/rohmanhakim/robots-directives/pkg/timeutil"
)

type persistRecord struct {
	Backend     string
	Key         string
	Fingerprint string
	Size        int
}

type errorRecord struct {
	Action string
	Cause  metadata.ErrorCause
	Attrs  []metadata.Attribute
}

// metadataSinkMock is a mock for metadata.MetadataSink
type metadataSinkMock struct {
	persistRecords []persistRecord
	errorRecords   []errorRecord
}

func (m *metadataSinkMock) RecordError(
	observedAt time.Time,
	packageName string,
	action string,
	cause metadata.ErrorCause,
	details string,
	attrs []metadata.Attribute,
) {
	m.errorRecords = append(m.errorRecords, errorRecord{Action: action, Cause: cause, Attrs: attrs})
}

func (m *metadataSinkMock) RecordDecode(kind metadata.DecodeKind, count int, attrs []metadata.Attribute) {
}

func (m *metadataSinkMock) RecordPersist(backend string, key string, fingerprint string, size int) {
	m.persistRecords = append(m.persistRecords, persistRecord{
		Backend:     backend,
		Key:         key,
		Fingerprint: fingerprint,
		Size:        size,
	})
}

func fastRetryParam() retry.RetryParam {
	return retry.NewRetryParam(
		0,
		1,
		2,
		timeutil.NewBackoffParam(time.Millisecond, 2, 5*time.Millisecond),
	)
}

// envOrSkip returns the value of name or skips tests that need a live server.
func envOrSkip(t *testing.T, name string) string {
	t.Helper()
	value := os.Getenv(name)
	if value == "" {
		t.Skipf("%s not set", name)
	}
	return value
}
