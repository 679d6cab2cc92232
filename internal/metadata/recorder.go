package metadata

import (
	"context"
	"log/slog"
	"time"
)

/*
Recorder captures structured editor events.
It must not:
- perform I/O decisions
- affect control flow
Metadata is write-only. No component may read it to decide anything.
*/
type Recorder struct {
	sessionID string
	logger    *slog.Logger
}

func NewRecorder(sessionID string, logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{
		sessionID: sessionID,
		logger:    logger,
	}
}

func (r *Recorder) RecordError(
	observedAt time.Time,
	packageName string,
	action string,
	cause ErrorCause,
	errorString string,
	attrs []Attribute,
) {
	record := ErrorRecord{
		packageName: packageName,
		action:      action,
		cause:       cause,
		errorString: errorString,
		observedAt:  observedAt,
		attrs:       attrs,
	}
	r.log(slog.LevelWarn, "error", append([]slog.Attr{
		slog.String("package", record.packageName),
		slog.String("action", record.action),
		slog.String("cause", record.cause.String()),
		slog.String("error", record.errorString),
		slog.Time("observed_at", record.observedAt),
	}, toSlog(record.attrs)...))
}

func (r *Recorder) RecordDecode(kind DecodeKind, count int, attrs []Attribute) {
	r.log(slog.LevelDebug, "decode", append([]slog.Attr{
		slog.String("kind", string(kind)),
		slog.Int("count", count),
	}, toSlog(attrs)...))
}

func (r *Recorder) RecordPersist(backend string, key string, fingerprint string, size int) {
	r.log(slog.LevelInfo, "persist", []slog.Attr{
		slog.String(string(AttrBackend), backend),
		slog.String(string(AttrKey), key),
		slog.String(string(AttrFingerprint), fingerprint),
		slog.Int("bytes", size),
	})
}

func (r *Recorder) log(level slog.Level, msg string, attrs []slog.Attr) {
	attrs = append([]slog.Attr{slog.String("session", r.sessionID)}, attrs...)
	r.logger.LogAttrs(context.Background(), level, msg, attrs...)
}

func toSlog(attrs []Attribute) []slog.Attr {
	out := make([]slog.Attr, 0, len(attrs))
	for _, a := range attrs {
		out = append(out, slog.String(string(a.Key), a.Value))
	}
	return out
}

type MetadataSink interface {
	RecordError(
		observedAt time.Time,
		packageName string,
		action string,
		cause ErrorCause,
		details string,
		attrs []Attribute,
	)
	RecordDecode(kind DecodeKind, count int, attrs []Attribute)
	RecordPersist(backend string, key string, fingerprint string, size int)
}

// NoopSink, struct that implements metadata.MetadataSink but does nothing.
// Callers (or tests) decide whether to inject a Recorder or a NoopSink,
// which keeps metadata orthogonal to editing.
type NoopSink struct{}

func (n *NoopSink) RecordError(
	observedAt time.Time,
	packageName string,
	action string,
	cause ErrorCause,
	errorString string,
	attrs []Attribute,
) {
}

func (n *NoopSink) RecordDecode(kind DecodeKind, count int, attrs []Attribute) {}

func (n *NoopSink) RecordPersist(backend string, key string, fingerprint string, size int) {}
