package catalog

import (
	"fmt"
	"strings"

	"github.com/rohmanhakim/robots-directives/internal/directive"
)

// Catalog is the read-only directive table the resolver and validator consume.
type Catalog interface {
	Entries() []Entry
	Lookup(value string) (Entry, bool)
}

// Static is an immutable, indexed Catalog.
type Static struct {
	entries []Entry
	index   map[string]int
}

// New indexes entries by lowercased value. When a value appears more than once
// the first definition wins. Entries with an empty value are skipped.
func New(entries []Entry) *Static {
	s := &Static{
		entries: make([]Entry, 0, len(entries)),
		index:   make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		if e.Value == "" {
			continue
		}
		key := lookupKey(e.Value)
		if _, exists := s.index[key]; exists {
			continue
		}
		s.index[key] = len(s.entries)
		s.entries = append(s.entries, cloneEntry(e))
	}
	return s
}

func (s *Static) Entries() []Entry {
	out := make([]Entry, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, cloneEntry(e))
	}
	return out
}

// Lookup ignores case and surrounding space, so "NOINDEX" finds noindex.
func (s *Static) Lookup(value string) (Entry, bool) {
	i, ok := s.index[lookupKey(value)]
	if !ok {
		return Entry{}, false
	}
	return cloneEntry(s.entries[i]), true
}

// Options lists every entry as a value/label pair, labels upper-cased.
func Options(c Catalog) []Option {
	entries := c.Entries()
	options := make([]Option, 0, len(entries))
	for _, e := range entries {
		options = append(options, Option{
			Value: e.Value,
			Label: strings.ToUpper(e.Value),
		})
	}
	return options
}

// Validate checks directives against the catalog for strict saves:
// empty values, unknown values, modifications on values that take none and
// missing modifications on values that require one are all reported.
// The modification content itself is not checked.
func Validate(c Catalog, ds []directive.Directive) ValidationResult {
	result := ValidationResult{Valid: true, Errors: []string{}}

	for i, d := range ds {
		value := strings.TrimSpace(d.Value)
		if value == "" {
			result.Errors = append(result.Errors, fmt.Sprintf("directive #%d has an empty value", i+1))
			continue
		}

		entry, ok := c.Lookup(value)
		if !ok {
			result.Errors = append(result.Errors, fmt.Sprintf("unknown directive %q", d.String()))
			continue
		}

		modification := strings.TrimSpace(d.Modification)
		switch {
		case entry.HasModification && modification == "":
			result.Errors = append(result.Errors, fmt.Sprintf("directive %q requires a value", value))
		case !entry.HasModification && modification != "":
			result.Errors = append(result.Errors, fmt.Sprintf("directive %q does not accept a value", d.String()))
		}
	}

	result.Valid = len(result.Errors) == 0
	return result
}

func cloneEntry(e Entry) Entry {
	if e.Conflicts != nil {
		e.Conflicts = append([]string(nil), e.Conflicts...)
	}
	if e.Choices != nil {
		e.Choices = append([]string(nil), e.Choices...)
	}
	return e
}

func normalizePresetKey(s string) string {
	return strings.ToUpper(strings.ReplaceAll(s, " ", ""))
}

func lookupKey(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
