package htmlmeta

import (
	"bytes"
	"strings"

	"github.com/rohmanhakim/robots-directives/internal/directive"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// group is the directives addressed to one crawler, in first-seen order.
type group struct {
	bot    string
	tokens []string
}

func groupByBot(ds []directive.Directive) []group {
	var groups []group
	index := map[string]int{}
	for _, d := range directive.Normalize(ds) {
		i, ok := index[d.Bot]
		if !ok {
			i = len(groups)
			index[d.Bot] = i
			groups = append(groups, group{bot: d.Bot})
		}
		token := directive.Directive{Value: d.Value, Modification: d.Modification}.String()
		groups[i].tokens = append(groups[i].tokens, token)
	}
	return groups
}

// Render writes one meta element per crawler, unscoped directives under
// name="robots". Elements are separated by newlines.
func Render(ds []directive.Directive) (string, error) {
	var buf bytes.Buffer
	for i, g := range groupByBot(ds) {
		name := g.bot
		if name == "" {
			name = allCrawlers
		}
		node := &html.Node{
			Type:     html.ElementNode,
			DataAtom: atom.Meta,
			Data:     "meta",
			Attr: []html.Attribute{
				{Key: "name", Val: name},
				{Key: "content", Val: strings.Join(g.tokens, ", ")},
			},
		}
		if i > 0 {
			buf.WriteByte('\n')
		}
		if err := html.Render(&buf, node); err != nil {
			return "", &HtmlMetaError{
				Message: err.Error(),
				Cause:   ErrCauseRenderFailure,
			}
		}
	}
	return buf.String(), nil
}

// HeaderValues returns one X-Robots-Tag header value per crawler:
// "noindex, nofollow" for all crawlers, "googlebot: noindex" for one.
func HeaderValues(ds []directive.Directive) []string {
	groups := groupByBot(ds)
	out := make([]string, 0, len(groups))
	for _, g := range groups {
		value := strings.Join(g.tokens, ", ")
		if g.bot != "" {
			value = g.bot + ": " + value
		}
		out = append(out, value)
	}
	return out
}
