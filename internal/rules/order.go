package rules

import (
	"sort"
	"strings"
)

/*
Ordering policy

Evaluation takes the first matching rule, so the order written at save time
decides which rule wins for a URL.

  - priority, descending, is authoritative whenever priorities differ
  - equal priorities fall back to pattern specificity: the longer stripped
    pattern first, the alphabetically greater one when lengths are equal

Each key is applied as its own stable sort, least significant first
(alphabetical, then specificity, then priority). Folding them into a single
comparator changes how ties resolve and must not be done.
*/

// Order returns a new slice with rules in evaluation order.
func Order(rs []Rule) []Rule {
	out := OrderByPattern(rs)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority > out[j].Priority
	})
	return out
}

// OrderByPattern orders by pattern specificity alone, ignoring priority.
// Used for plain pattern lists that carry no priority column.
func OrderByPattern(rs []Rule) []Rule {
	out := make([]Rule, len(rs))
	copy(out, rs)

	sort.SliceStable(out, func(i, j int) bool {
		return StripPattern(out[i].Pattern) > StripPattern(out[j].Pattern)
	})
	sort.SliceStable(out, func(i, j int) bool {
		return moreSpecific(out[i].Pattern, out[j].Pattern)
	})
	return out
}

// StripPattern removes glob noise before patterns are compared:
// '/' becomes a space and '*' is dropped.
func StripPattern(pattern string) string {
	return strings.NewReplacer("/", " ", "*", "").Replace(pattern)
}

// moreSpecific reports whether pattern a must be evaluated before b.
// When one stripped pattern contains the other, the containing one is a
// descendant route and goes first; otherwise the longer stripped form goes first.
func moreSpecific(a, b string) bool {
	sa, sb := StripPattern(a), StripPattern(b)
	if isAncestor(sa, sb) {
		return true
	}
	if isAncestor(sb, sa) {
		return false
	}
	return len(sa) > len(sb)
}

// isAncestor reports whether short occurs inside the strictly longer long.
func isAncestor(long, short string) bool {
	return len(long) > len(short) && strings.LastIndex(long, short) >= 0
}
