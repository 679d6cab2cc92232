package htmlmeta

import (
	"io"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rohmanhakim/robots-directives/internal/directive"
	"github.com/rohmanhakim/robots-directives/internal/metadata"
	"github.com/rohmanhakim/robots-directives/internal/resolver"
	"github.com/rohmanhakim/robots-directives/pkg/failure"
)

/*
Responsibilities
- Read robots <meta> elements out of an existing page
- Turn their comma separated content into canonical directives

A meta element counts when its name is "robots" (all crawlers) or names a
crawler. The crawler name becomes the bot of every directive it carries.
Conflicts are not resolved here; the caller feeds the result through a
session or the resolver.
*/

// allCrawlers is the meta name that addresses every crawler.
const allCrawlers = "robots"

var knownCrawlers = map[string]struct{}{
	"googlebot":       {},
	"googlebot-news":  {},
	"googlebot-image": {},
	"bingbot":         {},
	"msnbot":          {},
	"slurp":           {},
	"yandex":          {},
	"baiduspider":     {},
	"duckduckbot":     {},
	"applebot":        {},
}

type Extractor struct {
	metadataSink metadata.MetadataSink
}

func NewExtractor(metadataSink metadata.MetadataSink) Extractor {
	if metadataSink == nil {
		metadataSink = &metadata.NoopSink{}
	}
	return Extractor{
		metadataSink: metadataSink,
	}
}

// Extract returns the robots directives declared in the page, in document
// order. A directive repeated for the same crawler is kept once.
func (e *Extractor) Extract(r io.Reader) ([]directive.Directive, failure.ClassifiedError) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		htmlErr := &HtmlMetaError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCauseParseFailure,
		}
		e.metadataSink.RecordError(
			time.Now(),
			"htmlmeta",
			"Extractor.Extract",
			mapHtmlMetaErrorToMetadataCause(htmlErr),
			htmlErr.Error(),
			nil,
		)
		return nil, htmlErr
	}

	found := []directive.Directive{}
	doc.Find("meta[name][content]").Each(func(_ int, sel *goquery.Selection) {
		name := strings.ToLower(strings.TrimSpace(sel.AttrOr("name", "")))
		bot, ok := crawlerScope(name)
		if !ok {
			return
		}
		for _, token := range strings.Split(sel.AttrOr("content", ""), ",") {
			d := contentToken(token)
			if d.Value == "" {
				continue
			}
			d.Value = strings.ToLower(d.Value)
			if bot != "" {
				d.Bot = bot
			}
			if resolver.Contains(found, d.Value, d.Bot) {
				continue
			}
			found = append(found, d)
		}
	})

	e.metadataSink.RecordDecode(metadata.DecodeDirectives, len(found), []metadata.Attribute{
		metadata.NewAttr(metadata.AttrField, "html"),
	})
	return found, nil
}

// crawlerScope maps a meta name to the bot its directives apply to.
func crawlerScope(name string) (string, bool) {
	if name == allCrawlers {
		return "", true
	}
	if _, ok := knownCrawlers[name]; ok {
		return name, true
	}
	if strings.HasSuffix(name, "bot") && name != "bot" {
		return name, true
	}
	return "", false
}

// contentToken reads one comma-separated item of a content attribute. The
// crawler comes from the meta name, so the first colon separates the value
// from its modification.
func contentToken(token string) directive.Directive {
	value, modification, _ := strings.Cut(token, ":")
	return directive.Canonicalize(directive.FromTuple(value, "", modification))
}
