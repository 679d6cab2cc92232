package retry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rohmanhakim/robots-directives/pkg/failure"
	"github.com/rohmanhakim/robots-directives/pkg/retry"
	"github.com/rohmanhakim/robots-directives/pkg/timeutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockError is a mock implementation of failure.ClassifiedError for testing
type mockError struct {
	msg       string
	retryable bool
}

func (m *mockError) Error() string {
	return m.msg
}

func (m *mockError) Severity() failure.Severity {
	if m.retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

func fastParams(attempts int) retry.RetryParam {
	return retry.NewRetryParam(
		0,
		42,
		attempts,
		timeutil.NewBackoffParam(time.Millisecond, 2.0, 5*time.Millisecond),
	)
}

func TestRetry_SuccessOnFirstAttempt(t *testing.T) {
	callCount := 0
	result, err := retry.Retry(context.Background(), fastParams(3), func() (string, failure.ClassifiedError) {
		callCount++
		return "stored", nil
	})

	require.Nil(t, err)
	assert.Equal(t, "stored", result)
	assert.Equal(t, 1, callCount)
}

func TestRetry_SucceedsAfterTransientFailures(t *testing.T) {
	callCount := 0
	result, err := retry.Retry(context.Background(), fastParams(5), func() (int, failure.ClassifiedError) {
		callCount++
		if callCount < 3 {
			return 0, &mockError{msg: "connection reset", retryable: true}
		}
		return 7, nil
	})

	require.Nil(t, err)
	assert.Equal(t, 7, result)
	assert.Equal(t, 3, callCount)
}

func TestRetry_NonRetryableStopsImmediately(t *testing.T) {
	callCount := 0
	_, err := retry.Retry(context.Background(), fastParams(5), func() (int, failure.ClassifiedError) {
		callCount++
		return 0, &mockError{msg: "bad key", retryable: false}
	})

	require.NotNil(t, err)
	assert.Equal(t, 1, callCount)
	assert.Equal(t, "bad key", err.Error())
}

func TestRetry_ExhaustedAttempts(t *testing.T) {
	callCount := 0
	last := &mockError{msg: "timeout", retryable: true}
	_, err := retry.Retry(context.Background(), fastParams(3), func() (int, failure.ClassifiedError) {
		callCount++
		return 0, last
	})

	require.NotNil(t, err)
	assert.Equal(t, 3, callCount)

	var retryErr *retry.RetryError
	require.True(t, errors.As(err, &retryErr))
	assert.Equal(t, retry.ErrExhaustedAttempts, retryErr.Cause)
	assert.ErrorIs(t, err, last)
}

func TestRetry_ZeroAttempts(t *testing.T) {
	_, err := retry.Retry(context.Background(), fastParams(0), func() (int, failure.ClassifiedError) {
		t.Fatal("fn must not be called")
		return 0, nil
	})

	var retryErr *retry.RetryError
	require.True(t, errors.As(err, &retryErr))
	assert.Equal(t, retry.ErrZeroAttempt, retryErr.Cause)
}

func TestRetry_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	params := retry.NewRetryParam(0, 1, 5, timeutil.NewBackoffParam(time.Hour, 2.0, time.Hour))
	callCount := 0
	_, err := retry.Retry(ctx, params, func() (int, failure.ClassifiedError) {
		callCount++
		return 0, &mockError{msg: "unavailable", retryable: true}
	})

	var retryErr *retry.RetryError
	require.True(t, errors.As(err, &retryErr))
	assert.Equal(t, retry.ErrCanceled, retryErr.Cause)
	assert.Equal(t, 1, callCount)
}

func TestRetryParam_Attempts(t *testing.T) {
	assert.Equal(t, 3, fastParams(3).Attempts())
	assert.Equal(t, 0, fastParams(0).Attempts())
	assert.Equal(t, 0, fastParams(-1).Attempts())
}
