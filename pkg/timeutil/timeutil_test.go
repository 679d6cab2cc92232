package timeutil

import (
	"math/rand"
	"testing"
	"time"
)

func TestMaxDuration(t *testing.T) {
	tests := []struct {
		name      string
		durations []time.Duration
		want      time.Duration
	}{
		{
			name:      "multiple values returns maximum",
			durations: []time.Duration{100 * time.Millisecond, 500 * time.Millisecond, 200 * time.Millisecond},
			want:      500 * time.Millisecond,
		},
		{
			name:      "empty slice returns zero",
			durations: []time.Duration{},
			want:      0,
		},
		{
			name:      "all negative returns least negative",
			durations: []time.Duration{-100 * time.Millisecond, -50 * time.Millisecond, -200 * time.Millisecond},
			want:      -50 * time.Millisecond,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MaxDuration(tt.durations...); got != tt.want {
				t.Errorf("MaxDuration() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExponentialBackoffDelay_NoJitter(t *testing.T) {
	param := NewBackoffParam(100*time.Millisecond, 2.0, time.Second)

	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{attempt: 0, want: 100 * time.Millisecond},
		{attempt: 1, want: 100 * time.Millisecond},
		{attempt: 2, want: 200 * time.Millisecond},
		{attempt: 3, want: 400 * time.Millisecond},
		{attempt: 4, want: 800 * time.Millisecond},
		{attempt: 5, want: time.Second},
		{attempt: 10, want: time.Second},
	}

	for _, tt := range tests {
		got := ExponentialBackoffDelay(tt.attempt, 0, nil, param)
		if got != tt.want {
			t.Errorf("attempt %d: got %v, want %v", tt.attempt, got, tt.want)
		}
	}
}

func TestExponentialBackoffDelay_JitterBounded(t *testing.T) {
	param := NewBackoffParam(10*time.Millisecond, 2.0, time.Second)
	rng := rand.New(rand.NewSource(42))
	jitter := 5 * time.Millisecond

	for i := 0; i < 50; i++ {
		got := ExponentialBackoffDelay(1, jitter, rng, param)
		if got < 10*time.Millisecond || got >= 15*time.Millisecond {
			t.Fatalf("delay %v outside [10ms, 15ms)", got)
		}
	}
}
