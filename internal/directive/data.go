package directive

import "strings"

// Directive is the canonical form every stored or typed directive is reduced to.
// Bot is empty when the directive applies to all crawlers; Modification is empty
// when the directive takes no parameter.
type Directive struct {
	Value        string `json:"value"`
	Bot          string `json:"bot"`
	Modification string `json:"modification"`
}

// Key identifies a directive inside a working set. At most one directive per Key
// is kept when directives are added through the resolver.
type Key struct {
	Value string
	Bot   string
}

func (d Directive) Key() Key {
	return Key{Value: d.Value, Bot: d.Bot}
}

// IsZero reports whether the directive has no value and would be dropped from a batch.
func (d Directive) IsZero() bool {
	return strings.TrimSpace(d.Value) == ""
}

// String renders the colon-joined display form the tag picker shows:
// "bot:value:modification", "bot:value", "value:modification" or "value".
// Canonicalize parses these back for every value in the advanced set and for all
// bot-scoped forms.
func (d Directive) String() string {
	switch {
	case d.Bot != "" && d.Modification != "":
		return d.Bot + ":" + d.Value + ":" + d.Modification
	case d.Bot != "":
		return d.Bot + ":" + d.Value
	case d.Modification != "":
		return d.Value + ":" + d.Modification
	default:
		return d.Value
	}
}

// advancedValues take a modification. A two-segment string starting with one of them
// is "value:modification", never "bot:value".
var advancedValues = map[string]struct{}{
	"max-snippet":       {},
	"max-image-preview": {},
	"max-video-preview": {},
	"unavailable_after": {},
}

// IsAdvanced reports whether value is one of the directives known to carry a modification.
// Matching is case-insensitive.
func IsAdvanced(value string) bool {
	_, ok := advancedValues[strings.ToLower(strings.TrimSpace(value))]
	return ok
}
