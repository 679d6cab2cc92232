package failure_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/rohmanhakim/robots-directives/pkg/failure"
	"github.com/stretchr/testify/assert"
)

type classified struct {
	severity failure.Severity
}

func (c *classified) Error() string              { return "classified" }
func (c *classified) Severity() failure.Severity { return c.severity }

func TestIsRecoverable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "plain error", err: errors.New("boom"), want: false},
		{name: "fatal", err: &classified{severity: failure.SeverityFatal}, want: false},
		{name: "recoverable", err: &classified{severity: failure.SeverityRecoverable}, want: true},
		{
			name: "wrapped recoverable",
			err:  fmt.Errorf("load: %w", &classified{severity: failure.SeverityRecoverable}),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, failure.IsRecoverable(tt.err))
		})
	}
}
