package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rohmanhakim/robots-directives/internal/metadata"
	"github.com/rohmanhakim/robots-directives/pkg/failure"
	"github.com/rohmanhakim/robots-directives/pkg/hashutil"
	"github.com/rohmanhakim/robots-directives/pkg/retry"
)

const schemaSQL = `CREATE TABLE IF NOT EXISTS robots_config (
	path       text PRIMARY KEY,
	value      text NOT NULL,
	updated_at timestamptz NOT NULL DEFAULT now()
)`

const (
	selectValueSQL = `SELECT value FROM robots_config WHERE path = $1`
	upsertValueSQL = `INSERT INTO robots_config (path, value, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (path) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`
)

// PostgresStore keeps values in a path/value configuration table.
type PostgresStore struct {
	pool       *pgxpool.Pool
	retryParam retry.RetryParam
	hashAlgo   hashutil.HashAlgo
	recorder   recorder
}

// ConnectPostgres creates a connection pool and checks it is reachable.
func ConnectPostgres(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, nil
}

func NewPostgresStore(
	pool *pgxpool.Pool,
	retryParam retry.RetryParam,
	hashAlgo hashutil.HashAlgo,
	metadataSink metadata.MetadataSink,
) *PostgresStore {
	return &PostgresStore{
		pool:       pool,
		retryParam: retryParam,
		hashAlgo:   hashAlgo,
		recorder:   newRecorder(BackendPostgres, metadataSink),
	}
}

func (s *PostgresStore) Backend() string {
	return BackendPostgres
}

func (s *PostgresStore) Close() {
	s.pool.Close()
}

// EnsureSchema creates the configuration table when it does not exist.
func (s *PostgresStore) EnsureSchema(ctx context.Context) failure.ClassifiedError {
	_, err := retry.Retry(ctx, s.retryParam, func() (struct{}, failure.ClassifiedError) {
		if _, err := s.pool.Exec(ctx, schemaSQL); err != nil {
			return struct{}{}, postgresError(ErrCauseWriteFailure, "", err)
		}
		return struct{}{}, nil
	})
	if err != nil {
		return s.recorder.fail("PostgresStore.EnsureSchema", "", err)
	}
	return nil
}

func (s *PostgresStore) Load(ctx context.Context, key string) ([]byte, failure.ClassifiedError) {
	if err := validateKey(key); err != nil {
		return nil, s.recorder.fail("PostgresStore.Load", key, err)
	}

	data, err := retry.Retry(ctx, s.retryParam, func() ([]byte, failure.ClassifiedError) {
		var value string
		err := s.pool.QueryRow(ctx, selectValueSQL, key).Scan(&value)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		if err != nil {
			return nil, postgresError(ErrCauseReadFailure, key, err)
		}
		return []byte(value), nil
	})
	if err != nil {
		return nil, s.recorder.fail("PostgresStore.Load", key, err)
	}
	return data, nil
}

func (s *PostgresStore) Save(ctx context.Context, key string, data []byte) (WriteResult, failure.ClassifiedError) {
	if err := validateKey(key); err != nil {
		return WriteResult{}, s.recorder.fail("PostgresStore.Save", key, err)
	}
	fp, err := fingerprint(data, s.hashAlgo, key)
	if err != nil {
		return WriteResult{}, s.recorder.fail("PostgresStore.Save", key, err)
	}

	_, err = retry.Retry(ctx, s.retryParam, func() (struct{}, failure.ClassifiedError) {
		if _, err := s.pool.Exec(ctx, upsertValueSQL, key, string(data)); err != nil {
			return struct{}{}, postgresError(ErrCauseWriteFailure, key, err)
		}
		return struct{}{}, nil
	})
	if err != nil {
		return WriteResult{}, s.recorder.fail("PostgresStore.Save", key, err)
	}

	result := NewWriteResult(key, "robots_config:"+key, fp, len(data))
	s.recorder.persisted(result)
	return result, nil
}

// postgresError retries connection-level failures. Errors reported by the
// server (constraint, syntax, permission) are final.
func postgresError(cause StorageErrorCause, key string, err error) *StorageError {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return &StorageError{Message: err.Error(), Retryable: false, Cause: cause, Key: key}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return &StorageError{Message: err.Error(), Retryable: false, Cause: ErrCauseConnectionFailure, Key: key}
	}
	return &StorageError{Message: err.Error(), Retryable: true, Cause: ErrCauseConnectionFailure, Key: key}
}
