package resolver

import (
	"github.com/rohmanhakim/robots-directives/internal/catalog"
	"github.com/rohmanhakim/robots-directives/internal/directive"
)

/*
Responsibilities
- Keep a working directive set free of exact duplicates
- Keep at most one directive per (value, bot) pair
- Remove directives the catalog declares as conflicting, per bot

The working set passed in is never mutated; every call returns a new slice.
Values missing from the catalog are accepted as custom directives and have
no conflicts. Conflicts are read from the incoming value's entry only and
are never followed transitively.
*/

// Add returns set with incoming added.
//
//  1. an empty incoming value is ignored
//  2. an exact duplicate (value, bot, modification) is ignored
//  3. a directive with the same (value, bot) is replaced, so a new
//     modification wins over the stored one
//  4. every value listed in the catalog entry's conflicts is removed for
//     incoming's bot
//  5. incoming is appended
func Add(set []directive.Directive, incoming directive.Directive, c catalog.Catalog) []directive.Directive {
	incoming = directive.Canonicalize(directive.FromObject(incoming))
	if incoming.Value == "" {
		return clone(set)
	}

	for _, d := range set {
		if d == incoming {
			return clone(set)
		}
	}

	removed := make(map[directive.Key]struct{})
	removed[incoming.Key()] = struct{}{}

	if c != nil {
		if entry, ok := c.Lookup(incoming.Value); ok {
			for _, conflict := range entry.Conflicts {
				removed[directive.Key{Value: conflict, Bot: incoming.Bot}] = struct{}{}
			}
		}
	}

	out := make([]directive.Directive, 0, len(set)+1)
	for _, d := range set {
		if _, drop := removed[d.Key()]; drop {
			continue
		}
		out = append(out, d)
	}
	return append(out, incoming)
}

// AddAll adds each directive in order, as if the operator had added them one by one.
func AddAll(set []directive.Directive, incoming []directive.Directive, c catalog.Catalog) []directive.Directive {
	out := clone(set)
	for _, d := range incoming {
		out = Add(out, d, c)
	}
	return out
}

// Remove returns set without the first directive matching (value, bot).
// The set is returned unchanged when nothing matches.
func Remove(set []directive.Directive, value string, bot string) []directive.Directive {
	i := IndexOf(set, value, bot)
	if i < 0 {
		return clone(set)
	}
	out := make([]directive.Directive, 0, len(set)-1)
	out = append(out, set[:i]...)
	return append(out, set[i+1:]...)
}

// IndexOf returns the position of the first directive matching (value, bot), or -1.
func IndexOf(set []directive.Directive, value string, bot string) int {
	for i, d := range set {
		if d.Value == value && d.Bot == bot {
			return i
		}
	}
	return -1
}

func Contains(set []directive.Directive, value string, bot string) bool {
	return IndexOf(set, value, bot) >= 0
}

func clone(set []directive.Directive) []directive.Directive {
	out := make([]directive.Directive, len(set))
	copy(out, set)
	return out
}
