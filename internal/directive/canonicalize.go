package directive

import "strings"

// Canonicalize reduces any raw directive to its structured form.
// It never fails: unparseable input yields empty fields, which batch callers drop.
//
//   - object: value, bot and modification are trimmed independently
//   - tuple: positions 0, 1, 2 are value, bot, modification
//   - string: split on ':' (see canonicalizeString)
func Canonicalize(raw Raw) Directive {
	switch raw.kind {
	case RawObject:
		return Directive{
			Value:        strings.TrimSpace(raw.object.Value),
			Bot:          strings.TrimSpace(raw.object.Bot),
			Modification: strings.TrimSpace(raw.object.Modification),
		}
	case RawTuple:
		return Directive{
			Value:        strings.TrimSpace(at(raw.tuple, 0)),
			Bot:          strings.TrimSpace(at(raw.tuple, 1)),
			Modification: strings.TrimSpace(at(raw.tuple, 2)),
		}
	case RawString:
		return canonicalizeString(raw.text)
	default:
		return Directive{}
	}
}

// canonicalizeString handles the colon-joined legacy forms.
//
//	"noindex"                       -> value
//	"max-snippet:100"               -> value:modification (advanced value first)
//	"googlebot:nofollow"            -> bot:value
//	"googlebot:max-snippet:100"     -> bot:value:modification
//	"bingbot:unavailable_after:2025-01-01 10:00:00" -> bot:value:modification, colons kept
//
// Three or more segments always start with the bot.
func canonicalizeString(s string) Directive {
	rawSegments := strings.Split(s, ":")
	segments := make([]string, len(rawSegments))
	for i, seg := range rawSegments {
		segments[i] = strings.TrimSpace(seg)
	}

	switch {
	case len(segments) == 1:
		return Directive{Value: segments[0]}
	case len(segments) == 2 && IsAdvanced(segments[0]):
		return Directive{Value: segments[0], Modification: segments[1]}
	case len(segments) == 2:
		return Directive{Bot: segments[0], Value: segments[1]}
	default:
		return Directive{
			Bot:          segments[0],
			Value:        segments[1],
			Modification: strings.TrimSpace(strings.Join(rawSegments[2:], ":")),
		}
	}
}

// CanonicalizeAll canonicalizes a batch and drops every item whose value is empty
// after trimming.
func CanonicalizeAll(raws []Raw) []Directive {
	out := make([]Directive, 0, len(raws))
	for _, raw := range raws {
		d := Canonicalize(raw)
		if d.Value == "" {
			continue
		}
		out = append(out, d)
	}
	return out
}

// Normalize re-runs already structured directives through the canonicalizer,
// trimming fields and dropping empty values.
func Normalize(ds []Directive) []Directive {
	return CanonicalizeAll(FromDirectives(ds))
}

func at(parts []string, i int) string {
	if i < len(parts) {
		return parts[i]
	}
	return ""
}
