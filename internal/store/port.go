package store

import (
	"context"
	"strings"
	"time"

	"github.com/rohmanhakim/robots-directives/internal/metadata"
	"github.com/rohmanhakim/robots-directives/pkg/failure"
	"github.com/rohmanhakim/robots-directives/pkg/hashutil"
)

/*
Responsibilities
- Persist the encoded value of one configuration field under a key
- Hand the stored bytes back unchanged

Keys are slash separated configuration paths such as
"seo/robots/meta_rules". The store never interprets the bytes; decoding and
validation belong to the codec. A key that was never saved loads as nil
with no error, which the codec reads as an empty value.
*/
type Store interface {
	Load(ctx context.Context, key string) ([]byte, failure.ClassifiedError)
	Save(ctx context.Context, key string, data []byte) (WriteResult, failure.ClassifiedError)
	Backend() string
}

// validateKey accepts slash separated segments of letters, digits, '_', '-'
// and '.', with no empty or dot-only segment.
func validateKey(key string) failure.ClassifiedError {
	if key == "" {
		return &StorageError{Message: "empty key", Cause: ErrCauseInvalidKey}
	}
	for _, segment := range strings.Split(key, "/") {
		if segment == "" || segment == "." || segment == ".." {
			return &StorageError{Message: "bad path segment in " + key, Cause: ErrCauseInvalidKey, Key: key}
		}
		for _, r := range segment {
			switch {
			case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			case r == '_', r == '-', r == '.':
			default:
				return &StorageError{Message: "bad character in " + key, Cause: ErrCauseInvalidKey, Key: key}
			}
		}
	}
	return nil
}

func fingerprint(data []byte, algo hashutil.HashAlgo, key string) (string, failure.ClassifiedError) {
	fp, err := hashutil.Fingerprint(data, algo)
	if err != nil {
		return "", &StorageError{
			Message: err.Error(),
			Cause:   ErrCauseHashComputationFailed,
			Key:     key,
		}
	}
	return fp, nil
}

// recorder wraps the metadata calls shared by every adapter.
type recorder struct {
	backend      string
	metadataSink metadata.MetadataSink
}

func newRecorder(backend string, sink metadata.MetadataSink) recorder {
	if sink == nil {
		sink = &metadata.NoopSink{}
	}
	return recorder{backend: backend, metadataSink: sink}
}

func (r recorder) fail(action string, key string, err failure.ClassifiedError) failure.ClassifiedError {
	cause := metadata.CauseStorageFailure
	if storageErr, ok := err.(*StorageError); ok {
		cause = mapStorageErrorToMetadataCause(storageErr)
	}
	r.metadataSink.RecordError(
		time.Now(),
		"store",
		action,
		cause,
		err.Error(),
		[]metadata.Attribute{
			metadata.NewAttr(metadata.AttrBackend, r.backend),
			metadata.NewAttr(metadata.AttrKey, key),
		},
	)
	return err
}

func (r recorder) persisted(result WriteResult) {
	r.metadataSink.RecordPersist(r.backend, result.Key(), result.Fingerprint(), result.Size())
}
