package rules

import "github.com/rohmanhakim/robots-directives/internal/directive"

// Rule binds directive lists to a URL pattern. ID is the opaque row identifier of
// the editing form; it plays no part in ordering.
type Rule struct {
	ID                string
	Priority          int
	Pattern           string
	MetaDirectives    []directive.Directive
	XRobotsDirectives []directive.Directive
}

// Kind selects one of the two directive lists a rule carries.
type Kind string

const (
	KindMeta    Kind = "meta"
	KindXRobots Kind = "xrobots"
)

// Directives returns a copy of the list selected by kind.
func (r Rule) Directives(kind Kind) []directive.Directive {
	var src []directive.Directive
	switch kind {
	case KindMeta:
		src = r.MetaDirectives
	case KindXRobots:
		src = r.XRobotsDirectives
	}
	out := make([]directive.Directive, len(src))
	copy(out, src)
	return out
}

// WithDirectives returns a copy of r with the list selected by kind replaced.
// Unknown kinds leave r unchanged.
func (r Rule) WithDirectives(kind Kind, ds []directive.Directive) Rule {
	switch kind {
	case KindMeta:
		r.MetaDirectives = ds
	case KindXRobots:
		r.XRobotsDirectives = ds
	}
	return r
}
