package codec_test

import (
	"encoding/json"
	"testing"

	"github.com/rohmanhakim/robots-directives/internal/codec"
	"github.com/rohmanhakim/robots-directives/internal/directive"
	"github.com/rohmanhakim/robots-directives/internal/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeRules_FormSubmission(t *testing.T) {
	input := `{
		"__empty": "",
		"_rule1": {
			"priority": "10",
			"pattern": "/blog/*",
			"meta_directives": ["noindex"],
			"xrobots_directives": "nofollow"
		},
		"2": {"priority": 5, "pattern": "/", "meta_directives": [], "__deleted": "1"},
		"3": {"priority": 2.7, "pattern": "/shop", "meta_directives": {"x": "noarchive"}},
		"bogus": "not a row"
	}`

	got, err := codec.DecodeRules([]byte(input))
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, rules.Rule{
		ID:                "_rule1",
		Priority:          10,
		Pattern:           "/blog/*",
		MetaDirectives:    []directive.Directive{{Value: "noindex"}},
		XRobotsDirectives: []directive.Directive{{Value: "nofollow"}},
	}, got[0])

	assert.Equal(t, "_rule3", got[1].ID)
	assert.Equal(t, 2, got[1].Priority)
	assert.Equal(t, []directive.Directive{{Value: "noarchive"}}, got[1].MetaDirectives)
	assert.Equal(t, []directive.Directive{}, got[1].XRobotsDirectives)
}

func TestDecodeRules_DeletedFlag(t *testing.T) {
	tests := []struct {
		name    string
		flag    string
		dropped bool
	}{
		{name: "true", flag: `true`, dropped: true},
		{name: "one", flag: `1`, dropped: true},
		{name: "string one", flag: `"1"`, dropped: true},
		{name: "false", flag: `false`, dropped: false},
		{name: "zero", flag: `0`, dropped: false},
		{name: "string zero", flag: `"0"`, dropped: false},
		{name: "empty string", flag: `""`, dropped: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := `{"a": {"pattern": "/", "__deleted": ` + tt.flag + `}}`
			got, err := codec.DecodeRules([]byte(input))
			require.NoError(t, err)
			if tt.dropped {
				assert.Empty(t, got)
			} else {
				assert.Len(t, got, 1)
			}
		})
	}
}

func TestDecodeRules_NonNumericPriorityIsZero(t *testing.T) {
	got, err := codec.DecodeRules([]byte(`{"a": {"priority": "high", "pattern": "/"}}`))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 0, got[0].Priority)
}

func TestDecodeRules_LegacyColumns(t *testing.T) {
	input := `{
		"a": {"pattern": "/old", "directives": ["noarchive"]},
		"b": {"pattern": "/older", "option": "NOINDEX,FOLLOW"},
		"c": {"pattern": "/default", "option": "0"}
	}`

	got, err := codec.DecodeRules([]byte(input))
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, []directive.Directive{{Value: "noarchive"}}, got[0].MetaDirectives)
	assert.Equal(t, []directive.Directive{{Value: "noindex"}, {Value: "follow"}}, got[1].MetaDirectives)
	assert.Empty(t, got[2].MetaDirectives)
}

func TestDecodeRules_TopLevelArray(t *testing.T) {
	got, err := codec.DecodeRules([]byte(`[{"pattern":"/a"},{"pattern":"/b"}]`))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "_rule0", got[0].ID)
	assert.Equal(t, "_rule1", got[1].ID)
}

func TestDecodeRules_DoubleEncoded(t *testing.T) {
	inner := `{"a":{"pattern":"/a","meta_directives":["noindex"]}}`
	outer, err := json.Marshal(inner)
	require.NoError(t, err)

	got, err := codec.DecodeRules(outer)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "/a", got[0].Pattern)
}

func TestDecodeRules_Failures(t *testing.T) {
	for _, input := range []string{`{"a":`, `[{"pattern":"/"`, `12`, `"plain text"`, `not json`} {
		t.Run(input, func(t *testing.T) {
			got, err := codec.DecodeRules([]byte(input))
			require.Error(t, err)
			require.NotNil(t, got)
			assert.Empty(t, got)

			var codecErr *codec.CodecError
			require.ErrorAs(t, err, &codecErr)
			assert.True(t, codecErr.Recoverable)
		})
	}
}

func TestDecodeRules_EmptyInput(t *testing.T) {
	for _, input := range []string{"", "  ", "null", `""`, `{}`, `[]`} {
		got, err := codec.DecodeRules([]byte(input))
		require.NoError(t, err, input)
		assert.Empty(t, got, input)
	}
}

func TestEncodeRules_WritesEvaluationOrder(t *testing.T) {
	rs := []rules.Rule{
		{ID: "root", Pattern: "/"},
		{ID: "blog", Pattern: "/blog/*"},
		{ID: "promo", Pattern: "/x", Priority: 5, MetaDirectives: []directive.Directive{{Value: "noindex"}}},
	}

	out, err := codec.EncodeRules(rs)
	require.NoError(t, err)

	decoded, err := codec.DecodeRules(out)
	require.NoError(t, err)

	ids := make([]string, 0, len(decoded))
	for _, r := range decoded {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{"promo", "blog", "root"}, ids)
	assert.Equal(t, []directive.Directive{{Value: "noindex"}}, decoded[0].MetaDirectives)
}

func TestEncodeRules_RowShape(t *testing.T) {
	out, err := codec.EncodeRules([]rules.Rule{{ID: "a", Pattern: "/a", Priority: 3}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":{"priority":3,"pattern":"/a","meta_directives":[],"xrobots_directives":[]}}`, string(out))
}

func TestEncodeRules_FillsMissingAndDuplicateIDs(t *testing.T) {
	out, err := codec.EncodeRules([]rules.Rule{
		{ID: "", Pattern: "/a"},
		{ID: "dup", Pattern: "/bb"},
		{ID: "dup", Pattern: "/ccc"},
	})
	require.NoError(t, err)

	decoded, err := codec.DecodeRules(out)
	require.NoError(t, err)
	require.Len(t, decoded, 3)

	seen := map[string]bool{}
	for _, r := range decoded {
		assert.NotEmpty(t, r.ID)
		assert.False(t, seen[r.ID], "duplicate id %q", r.ID)
		seen[r.ID] = true
	}
}

func TestEncodeRules_Empty(t *testing.T) {
	out, err := codec.EncodeRules(nil)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(out))
}
