package metadata_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/rohmanhakim/robots-directives/internal/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferedRecorder(t *testing.T, level slog.Level) (*metadata.Recorder, *bytes.Buffer) {
	t.Helper()
	buf := &bytes.Buffer{}
	logger := slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: level}))
	return metadata.NewRecorder("session-1", logger), buf
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		entry := map[string]any{}
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		out = append(out, entry)
	}
	return out
}

func TestRecorder_RecordError(t *testing.T) {
	rec, buf := newBufferedRecorder(t, slog.LevelDebug)

	rec.RecordError(
		time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		"codec",
		"Codec.LoadRules",
		metadata.CauseDecodeFailure,
		"unexpected end of JSON input",
		[]metadata.Attribute{metadata.NewAttr(metadata.AttrKey, "xrobots_rules")},
	)

	lines := decodeLines(t, buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "error", lines[0]["msg"])
	assert.Equal(t, "WARN", lines[0]["level"])
	assert.Equal(t, "session-1", lines[0]["session"])
	assert.Equal(t, "codec", lines[0]["package"])
	assert.Equal(t, "decode_failure", lines[0]["cause"])
	assert.Equal(t, "xrobots_rules", lines[0]["key"])
}

func TestRecorder_RecordPersist(t *testing.T) {
	rec, buf := newBufferedRecorder(t, slog.LevelInfo)

	rec.RecordPersist("file", "meta_robots", "abc123def456", 42)

	lines := decodeLines(t, buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "persist", lines[0]["msg"])
	assert.Equal(t, "file", lines[0]["backend"])
	assert.Equal(t, "abc123def456", lines[0]["fingerprint"])
	assert.EqualValues(t, 42, lines[0]["bytes"])
}

func TestRecorder_DecodeIsDebugLevel(t *testing.T) {
	rec, buf := newBufferedRecorder(t, slog.LevelInfo)

	rec.RecordDecode(metadata.DecodeDirectives, 3, nil)

	assert.Empty(t, buf.String())
}

func TestErrorCause_String(t *testing.T) {
	assert.Equal(t, "unknown", metadata.CauseUnknown.String())
	assert.Equal(t, "storage_failure", metadata.CauseStorageFailure.String())
	assert.Equal(t, "validation_failure", metadata.CauseValidationFailure.String())
	assert.Equal(t, "invariant_violation", metadata.CauseInvariantViolation.String())
}

func TestNoopSink_ImplementsSink(t *testing.T) {
	var sink metadata.MetadataSink = &metadata.NoopSink{}
	sink.RecordDecode(metadata.DecodeRules, 0, nil)
	sink.RecordPersist("file", "k", "", 0)
}
