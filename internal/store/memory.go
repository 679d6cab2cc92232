package store

import (
	"context"
	"sync"

	"github.com/rohmanhakim/robots-directives/internal/metadata"
	"github.com/rohmanhakim/robots-directives/pkg/failure"
	"github.com/rohmanhakim/robots-directives/pkg/hashutil"
)

// MemoryStore keeps values for the life of the process. Used by tests and
// dry runs.
type MemoryStore struct {
	mu       sync.RWMutex
	data     map[string][]byte
	hashAlgo hashutil.HashAlgo
	recorder recorder
}

func NewMemoryStore(hashAlgo hashutil.HashAlgo, metadataSink metadata.MetadataSink) *MemoryStore {
	return &MemoryStore{
		data:     make(map[string][]byte),
		hashAlgo: hashAlgo,
		recorder: newRecorder(BackendMemory, metadataSink),
	}
}

func (m *MemoryStore) Backend() string {
	return BackendMemory
}

func (m *MemoryStore) Load(ctx context.Context, key string) ([]byte, failure.ClassifiedError) {
	if err := validateKey(key); err != nil {
		return nil, m.recorder.fail("MemoryStore.Load", key, err)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.data[key]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

func (m *MemoryStore) Save(ctx context.Context, key string, data []byte) (WriteResult, failure.ClassifiedError) {
	if err := validateKey(key); err != nil {
		return WriteResult{}, m.recorder.fail("MemoryStore.Save", key, err)
	}
	fp, err := fingerprint(data, m.hashAlgo, key)
	if err != nil {
		return WriteResult{}, m.recorder.fail("MemoryStore.Save", key, err)
	}

	value := make([]byte, len(data))
	copy(value, data)

	m.mu.Lock()
	m.data[key] = value
	m.mu.Unlock()

	result := NewWriteResult(key, key, fp, len(data))
	m.recorder.persisted(result)
	return result, nil
}

// Size returns the number of stored keys.
func (m *MemoryStore) Size() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}
