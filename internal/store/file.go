package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"syscall"

	"github.com/rohmanhakim/robots-directives/internal/metadata"
	"github.com/rohmanhakim/robots-directives/pkg/failure"
	"github.com/rohmanhakim/robots-directives/pkg/fileutil"
	"github.com/rohmanhakim/robots-directives/pkg/hashutil"
)

/*
FileStore writes each key to <dir>/<key>.json.

Output Characteristics
- Stable directory layout mirroring the key path
- Atomic replace: readers see the old or the new value, never a mix
- Overwrite-safe reruns
*/
type FileStore struct {
	dir      string
	hashAlgo hashutil.HashAlgo
	recorder recorder
}

func NewFileStore(
	dir string,
	hashAlgo hashutil.HashAlgo,
	metadataSink metadata.MetadataSink,
) *FileStore {
	return &FileStore{
		dir:      dir,
		hashAlgo: hashAlgo,
		recorder: newRecorder(BackendFile, metadataSink),
	}
}

func (s *FileStore) Backend() string {
	return BackendFile
}

// Path returns the file a key is stored in.
func (s *FileStore) Path(key string) string {
	return filepath.Join(s.dir, filepath.FromSlash(key)+".json")
}

func (s *FileStore) Load(ctx context.Context, key string) ([]byte, failure.ClassifiedError) {
	if err := validateKey(key); err != nil {
		return nil, s.recorder.fail("FileStore.Load", key, err)
	}

	data, err := os.ReadFile(s.Path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, s.recorder.fail("FileStore.Load", key, &StorageError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCauseReadFailure,
			Key:       key,
		})
	}
	return data, nil
}

func (s *FileStore) Save(ctx context.Context, key string, data []byte) (WriteResult, failure.ClassifiedError) {
	result, err := s.write(key, data)
	if err != nil {
		return WriteResult{}, s.recorder.fail("FileStore.Save", key, err)
	}
	s.recorder.persisted(result)
	return result, nil
}

func (s *FileStore) write(key string, data []byte) (WriteResult, failure.ClassifiedError) {
	if err := validateKey(key); err != nil {
		return WriteResult{}, err
	}

	fp, err := fingerprint(data, s.hashAlgo, key)
	if err != nil {
		return WriteResult{}, err
	}

	fullPath := s.Path(key)
	if err := fileutil.WriteFileAtomic(fullPath, data); err != nil {
		cause := ErrCauseWriteFailure
		retryable := false
		var fileErr *fileutil.FileError
		if errors.As(err, &fileErr) && fileErr.Cause == fileutil.ErrCausePathError {
			cause = ErrCausePathError
		}
		if isDiskFull(err) {
			// space may be freed before the next attempt
			cause = ErrCauseDiskFull
			retryable = true
		}
		return WriteResult{}, &StorageError{
			Message:   err.Error(),
			Retryable: retryable,
			Cause:     cause,
			Key:       key,
		}
	}

	return NewWriteResult(key, fullPath, fp, len(data)), nil
}

func isDiskFull(err error) bool {
	return errors.Is(err, syscall.ENOSPC)
}
