package build_test

import (
	"testing"

	"github.com/rohmanhakim/robots-directives/internal/build"
	"github.com/stretchr/testify/assert"
)

func stamp(t *testing.T, version, commit, buildTime string) {
	t.Helper()
	prevVersion, prevCommit, prevTime := build.Version, build.Commit, build.BuildTime
	t.Cleanup(func() {
		build.Version, build.Commit, build.BuildTime = prevVersion, prevCommit, prevTime
	})
	build.Version, build.Commit, build.BuildTime = version, commit, buildTime
}

func TestFullVersion(t *testing.T) {
	tests := []struct {
		name    string
		version string
		commit  string
		want    string
	}{
		{name: "default values", version: "dev", commit: "none", want: "dev"},
		{name: "version with commit", version: "1.0.0", commit: "abc123", want: "1.0.0+abc123"},
		{name: "empty commit", version: "1.0.0", commit: "", want: "1.0.0"},
		{
			name:    "semver with long commit hash",
			version: "2.1.0-beta",
			commit:  "89dece58db957dbc4a9d03962b0411d05f9e37a5",
			want:    "2.1.0-beta+89dece58db957dbc4a9d03962b0411d05f9e37a5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stamp(t, tt.version, tt.commit, "unknown")
			assert.Equal(t, tt.want, build.FullVersion())
		})
	}
}

func TestSummary(t *testing.T) {
	stamp(t, "1.4.0", "abc123", "2026-01-02T03:04:05Z")
	assert.Equal(t, "robots-directives 1.4.0+abc123 (built 2026-01-02T03:04:05Z)", build.Summary("robots-directives"))
}
