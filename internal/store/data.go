package store

// Persistence

type WriteResult struct {
	key         string
	location    string // file path, redis key or table row
	fingerprint string
	size        int
}

func NewWriteResult(
	key string,
	location string,
	fingerprint string,
	size int,
) WriteResult {
	return WriteResult{
		key:         key,
		location:    location,
		fingerprint: fingerprint,
		size:        size,
	}
}

func (w *WriteResult) Key() string {
	return w.key
}

func (w *WriteResult) Location() string {
	return w.location
}

func (w *WriteResult) Fingerprint() string {
	return w.fingerprint
}

func (w *WriteResult) Size() int {
	return w.size
}

// Backend names accepted by configuration.
const (
	BackendFile     = "file"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)
