package retry

import (
	"time"

	"github.com/rohmanhakim/robots-directives/pkg/timeutil"
)

// RetryParam controls how often and how patiently a store round trip is
// retried. Values come from config; Retry never reads config itself.
type RetryParam struct {
	Jitter       time.Duration
	RandomSeed   int64
	MaxAttempts  int
	BackoffParam timeutil.BackoffParam
}

// NewRetryParam creates a new RetryParam with the given settings.
func NewRetryParam(
	jitter time.Duration,
	randomSeed int64,
	maxAttempts int,
	backoffParam timeutil.BackoffParam,
) RetryParam {
	return RetryParam{
		Jitter:       jitter,
		RandomSeed:   randomSeed,
		MaxAttempts:  maxAttempts,
		BackoffParam: backoffParam,
	}
}

// Attempts returns the number of calls Retry makes before giving up, or 0
// when the param is unusable.
func (p RetryParam) Attempts() int {
	if p.MaxAttempts < 1 {
		return 0
	}
	return p.MaxAttempts
}
