package codec_test

import (
	"testing"

	"github.com/rohmanhakim/robots-directives/internal/codec"
	"github.com/rohmanhakim/robots-directives/internal/directive"
	"github.com/rohmanhakim/robots-directives/pkg/failure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeDirectives(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []directive.Directive
	}{
		{
			name:  "empty input",
			input: "",
			want:  []directive.Directive{},
		},
		{
			name:  "null",
			input: "null",
			want:  []directive.Directive{},
		},
		{
			name:  "structured form",
			input: `[{"value":"noindex","bot":"googlebot","modification":""}]`,
			want:  []directive.Directive{{Value: "noindex", Bot: "googlebot"}},
		},
		{
			name:  "colon strings",
			input: `["googlebot:noindex","max-snippet:50"," nofollow "]`,
			want: []directive.Directive{
				{Value: "noindex", Bot: "googlebot"},
				{Value: "max-snippet", Modification: "50"},
				{Value: "nofollow"},
			},
		},
		{
			name:  "positional tuples",
			input: `[["max-snippet","bingbot",20],["noarchive"]]`,
			want: []directive.Directive{
				{Value: "max-snippet", Bot: "bingbot", Modification: "20"},
				{Value: "noarchive"},
			},
		},
		{
			name:  "object keyed by row with empty sentinel",
			input: `{"__empty":"","a":"noindex","b":{"value":"follow"}}`,
			want: []directive.Directive{
				{Value: "noindex"},
				{Value: "follow"},
			},
		},
		{
			name:  "double encoded array",
			input: `"[\"noindex\",\"nofollow\"]"`,
			want: []directive.Directive{
				{Value: "noindex"},
				{Value: "nofollow"},
			},
		},
		{
			name:  "meta robots preset",
			input: "NOINDEX,FOLLOW",
			want: []directive.Directive{
				{Value: "noindex"},
				{Value: "follow"},
			},
		},
		{
			name:  "comma separated text",
			input: "noarchive, googlebot:nosnippet",
			want: []directive.Directive{
				{Value: "noarchive"},
				{Value: "nosnippet", Bot: "googlebot"},
			},
		},
		{
			name:  "empty values dropped",
			input: `["", "  ", {"value":""}, "noindex"]`,
			want:  []directive.Directive{{Value: "noindex"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := codec.DecodeDirectives([]byte(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeDirectives_Failures(t *testing.T) {
	tests := []struct {
		name  string
		input string
		cause codec.CodecErrorCause
	}{
		{name: "truncated array", input: `["noindex"`, cause: codec.ErrCauseMalformedJSON},
		{name: "truncated object", input: `{"a":"noindex"`, cause: codec.ErrCauseMalformedJSON},
		{name: "number", input: `42`, cause: codec.ErrCauseUnexpectedShape},
		{name: "boolean", input: `true`, cause: codec.ErrCauseUnexpectedShape},
		{name: "broken text", input: `noindex"]`, cause: codec.ErrCauseMalformedJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := codec.DecodeDirectives([]byte(tt.input))
			require.Error(t, err)
			require.NotNil(t, got)
			assert.Empty(t, got)

			var codecErr *codec.CodecError
			require.ErrorAs(t, err, &codecErr)
			assert.Equal(t, tt.cause, codecErr.Cause)
			assert.True(t, failure.IsRecoverable(err))
		})
	}
}

func TestEncodeDirectives(t *testing.T) {
	out, err := codec.EncodeDirectives([]directive.Directive{
		{Value: " noindex ", Bot: "googlebot"},
		{Value: ""},
		{Value: "max-snippet", Modification: "10"},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"value":"noindex","bot":"googlebot","modification":""},
		{"value":"max-snippet","bot":"","modification":"10"}
	]`, string(out))
}

func TestEncodeDirectives_EmptyIsArray(t *testing.T) {
	out, err := codec.EncodeDirectives(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(out))
}

func TestDirectives_DecodeEncodeIsStable(t *testing.T) {
	legacy := `["googlebot:max-snippet:100", ["nofollow"], "bingbot:unavailable_after:2025-01-01 10:00:00"]`

	first, err := codec.DecodeDirectives([]byte(legacy))
	require.NoError(t, err)
	encoded, err := codec.EncodeDirectives(first)
	require.NoError(t, err)
	second, err := codec.DecodeDirectives(encoded)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, directive.Directive{Value: "unavailable_after", Bot: "bingbot", Modification: "2025-01-01 10:00:00"}, second[2])
}
