package store

import (
	"context"
	"fmt"

	"github.com/rohmanhakim/robots-directives/internal/metadata"
	"github.com/rohmanhakim/robots-directives/pkg/hashutil"
	"github.com/rohmanhakim/robots-directives/pkg/retry"
)

// OpenParams selects and configures a backend.
type OpenParams struct {
	Backend     string
	Path        string
	RedisURL    string
	DatabaseURL string
	RetryParam  retry.RetryParam
	HashAlgo    hashutil.HashAlgo
}

// Open connects the configured backend. The returned close function releases
// its connections and is never nil.
func Open(ctx context.Context, params OpenParams, metadataSink metadata.MetadataSink) (Store, func(), error) {
	switch params.Backend {
	case BackendFile, "":
		return NewFileStore(params.Path, params.HashAlgo, metadataSink), func() {}, nil
	case BackendMemory:
		return NewMemoryStore(params.HashAlgo, metadataSink), func() {}, nil
	case BackendRedis:
		client, err := ConnectRedis(params.RedisURL)
		if err != nil {
			return nil, func() {}, err
		}
		s := NewRedisStore(client, params.RetryParam, params.HashAlgo, metadataSink)
		return s, func() { _ = s.Close() }, nil
	case BackendPostgres:
		pool, err := ConnectPostgres(ctx, params.DatabaseURL)
		if err != nil {
			return nil, func() {}, err
		}
		s := NewPostgresStore(pool, params.RetryParam, params.HashAlgo, metadataSink)
		if err := s.EnsureSchema(ctx); err != nil {
			s.Close()
			return nil, func() {}, err
		}
		return s, s.Close, nil
	default:
		return nil, func() {}, fmt.Errorf("unknown store backend %q", params.Backend)
	}
}
