package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rohmanhakim/robots-directives/internal/metadata"
	"github.com/rohmanhakim/robots-directives/pkg/failure"
	"github.com/rohmanhakim/robots-directives/pkg/hashutil"
	"github.com/rohmanhakim/robots-directives/pkg/retry"
)

// redisKeyPrefix namespaces configuration values in a shared redis database.
const redisKeyPrefix = "robots:config:"

// RedisStore keeps each value as a plain redis string.
type RedisStore struct {
	client     *redis.Client
	retryParam retry.RetryParam
	hashAlgo   hashutil.HashAlgo
	recorder   recorder
}

// ConnectRedis creates a Redis client from a URL.
func ConnectRedis(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	return redis.NewClient(opts), nil
}

func NewRedisStore(
	client *redis.Client,
	retryParam retry.RetryParam,
	hashAlgo hashutil.HashAlgo,
	metadataSink metadata.MetadataSink,
) *RedisStore {
	return &RedisStore{
		client:     client,
		retryParam: retryParam,
		hashAlgo:   hashAlgo,
		recorder:   newRecorder(BackendRedis, metadataSink),
	}
}

func (s *RedisStore) Backend() string {
	return BackendRedis
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

func redisKey(key string) string {
	return redisKeyPrefix + key
}

func (s *RedisStore) Load(ctx context.Context, key string) ([]byte, failure.ClassifiedError) {
	if err := validateKey(key); err != nil {
		return nil, s.recorder.fail("RedisStore.Load", key, err)
	}

	data, err := retry.Retry(ctx, s.retryParam, func() ([]byte, failure.ClassifiedError) {
		value, err := s.client.Get(ctx, redisKey(key)).Bytes()
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		if err != nil {
			return nil, redisError(ErrCauseReadFailure, key, err)
		}
		return value, nil
	})
	if err != nil {
		return nil, s.recorder.fail("RedisStore.Load", key, err)
	}
	return data, nil
}

func (s *RedisStore) Save(ctx context.Context, key string, data []byte) (WriteResult, failure.ClassifiedError) {
	if err := validateKey(key); err != nil {
		return WriteResult{}, s.recorder.fail("RedisStore.Save", key, err)
	}
	fp, err := fingerprint(data, s.hashAlgo, key)
	if err != nil {
		return WriteResult{}, s.recorder.fail("RedisStore.Save", key, err)
	}

	_, err = retry.Retry(ctx, s.retryParam, func() (struct{}, failure.ClassifiedError) {
		if err := s.client.Set(ctx, redisKey(key), data, 0).Err(); err != nil {
			return struct{}{}, redisError(ErrCauseWriteFailure, key, err)
		}
		return struct{}{}, nil
	})
	if err != nil {
		return WriteResult{}, s.recorder.fail("RedisStore.Save", key, err)
	}

	result := NewWriteResult(key, redisKey(key), fp, len(data))
	s.recorder.persisted(result)
	return result, nil
}

// redisError treats transport failures as transient. Server replies such as
// WRONGTYPE are not retried.
func redisError(cause StorageErrorCause, key string, err error) *StorageError {
	var redisErr redis.Error
	if errors.As(err, &redisErr) {
		return &StorageError{Message: err.Error(), Retryable: false, Cause: cause, Key: key}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return &StorageError{Message: err.Error(), Retryable: false, Cause: ErrCauseConnectionFailure, Key: key}
	}
	return &StorageError{Message: err.Error(), Retryable: true, Cause: ErrCauseConnectionFailure, Key: key}
}
