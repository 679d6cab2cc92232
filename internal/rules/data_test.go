package rules_test

import (
	"testing"

	"github.com/rohmanhakim/robots-directives/internal/directive"
	"github.com/rohmanhakim/robots-directives/internal/rules"
	"github.com/stretchr/testify/assert"
)

func TestRule_DirectivesByKind(t *testing.T) {
	r := rules.Rule{
		MetaDirectives:    []directive.Directive{{Value: "noindex"}},
		XRobotsDirectives: []directive.Directive{{Value: "noarchive", Bot: "googlebot"}},
	}

	assert.Equal(t, r.MetaDirectives, r.Directives(rules.KindMeta))
	assert.Equal(t, r.XRobotsDirectives, r.Directives(rules.KindXRobots))
	assert.Empty(t, r.Directives(rules.Kind("other")))

	meta := r.Directives(rules.KindMeta)
	meta[0].Value = "changed"
	assert.Equal(t, "noindex", r.MetaDirectives[0].Value)
}

func TestRule_WithDirectives(t *testing.T) {
	r := rules.Rule{Pattern: "/a/*"}

	updated := r.WithDirectives(rules.KindXRobots, []directive.Directive{{Value: "none"}})

	assert.Empty(t, r.XRobotsDirectives)
	assert.Equal(t, []directive.Directive{{Value: "none"}}, updated.XRobotsDirectives)
	assert.Equal(t, r, r.WithDirectives(rules.Kind("bogus"), nil))
}
