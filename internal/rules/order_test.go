package rules_test

import (
	"testing"

	"github.com/rohmanhakim/robots-directives/internal/rules"
	"github.com/stretchr/testify/assert"
)

func patterns(rs []rules.Rule) []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.Pattern)
	}
	return out
}

func ids(rs []rules.Rule) []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.ID)
	}
	return out
}

func TestOrder_PriorityWins(t *testing.T) {
	rs := []rules.Rule{
		{ID: "low", Priority: 10, Pattern: "/checkout/cart/onepage/success/*"},
		{ID: "high", Priority: 20, Pattern: "/*"},
	}

	assert.Equal(t, []string{"high", "low"}, ids(rules.Order(rs)))
}

func TestOrder_SpecificityBreaksPriorityTies(t *testing.T) {
	rs := []rules.Rule{
		{ID: "a", Pattern: "/checkout/*"},
		{ID: "b", Pattern: "/checkout/cart/*"},
	}

	assert.Equal(t, []string{"/checkout/cart/*", "/checkout/*"}, patterns(rules.Order(rs)))
}

func TestOrder_Mixed(t *testing.T) {
	rs := []rules.Rule{
		{ID: "1", Priority: 0, Pattern: "/customer/*"},
		{ID: "2", Priority: 5, Pattern: "/checkout/*"},
		{ID: "3", Priority: 0, Pattern: "/customer/account/*"},
		{ID: "4", Priority: 5, Pattern: "/checkout/cart/*"},
		{ID: "5", Priority: 100, Pattern: "/search/*"},
		{ID: "6", Priority: 0},
	}

	assert.Equal(t, []string{"5", "4", "2", "3", "1", "6"}, ids(rules.Order(rs)))
}

func TestOrder_EqualLengthFallsBackToAlphabetical(t *testing.T) {
	rs := []rules.Rule{
		{ID: "a", Pattern: "/aaa/*"},
		{ID: "c", Pattern: "/ccc/*"},
		{ID: "b", Pattern: "/bbb/*"},
	}

	assert.Equal(t, []string{"c", "b", "a"}, ids(rules.Order(rs)))
}

func TestOrder_IsStableForIdenticalKeys(t *testing.T) {
	rs := []rules.Rule{
		{ID: "first", Priority: 1, Pattern: "/blog/*"},
		{ID: "second", Priority: 1, Pattern: "/blog/*"},
		{ID: "third", Priority: 1, Pattern: "/blog/*"},
	}

	assert.Equal(t, []string{"first", "second", "third"}, ids(rules.Order(rs)))
}

func TestOrder_StarsDoNotCountTowardsLength(t *testing.T) {
	rs := []rules.Rule{
		{ID: "stars", Pattern: "/a/****"},
		{ID: "longer", Pattern: "/a/bc"},
	}

	assert.Equal(t, []string{"longer", "stars"}, ids(rules.Order(rs)))
}

func TestOrder_DoesNotMutateInput(t *testing.T) {
	rs := []rules.Rule{
		{ID: "a", Pattern: "/a/*"},
		{ID: "b", Priority: 3, Pattern: "/b/*"},
	}

	_ = rules.Order(rs)

	assert.Equal(t, []string{"a", "b"}, ids(rs))
}

func TestOrder_IsIdempotent(t *testing.T) {
	rs := []rules.Rule{
		{ID: "1", Priority: 2, Pattern: "/x/*"},
		{ID: "2", Priority: 2, Pattern: "/x/y/*"},
		{ID: "3", Priority: 7, Pattern: "/z"},
		{ID: "4", Pattern: ""},
	}

	once := rules.Order(rs)
	assert.Equal(t, once, rules.Order(once))
}

func TestOrder_Empty(t *testing.T) {
	assert.Empty(t, rules.Order(nil))
}

func TestOrderByPattern_IgnoresPriority(t *testing.T) {
	rs := []rules.Rule{
		{ID: "root", Priority: 99, Pattern: "/*"},
		{ID: "deep", Priority: 0, Pattern: "/catalog/product/view/*"},
		{ID: "mid", Priority: 50, Pattern: "/catalog/*"},
	}

	assert.Equal(t, []string{"deep", "mid", "root"}, ids(rules.OrderByPattern(rs)))
}

func TestStripPattern(t *testing.T) {
	assert.Equal(t, " checkout cart ", rules.StripPattern("/checkout/cart/*"))
	assert.Equal(t, "", rules.StripPattern("*"))
	assert.Equal(t, "", rules.StripPattern(""))
}
