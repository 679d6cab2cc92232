package codec

import (
	"encoding/json"
	"strings"

	"github.com/rohmanhakim/robots-directives/internal/catalog"
	"github.com/rohmanhakim/robots-directives/internal/directive"
)

// emptySentinel is the placeholder key template-based form rows submit.
const emptySentinel = "__empty"

// DecodeDirectives reads a stored directive list. Accepted shapes:
//
//   - a JSON array of strings, positional tuples or objects
//   - a JSON object whose values are directives, in key order
//   - a JSON string holding any of the above, or a legacy text value
//   - a legacy text value: a meta robots preset ("NOINDEX,FOLLOW") or a
//     comma-separated list of colon-joined directives
//
// Empty input decodes to an empty list. On failure the returned list is empty,
// never nil, and the error is a recoverable *CodecError.
func DecodeDirectives(data []byte) ([]directive.Directive, error) {
	raws, err := decodeRaws(data, true)
	if err != nil {
		return []directive.Directive{}, err
	}
	return directive.CanonicalizeAll(raws), nil
}

func decodeRaws(data []byte, allowText bool) ([]directive.Raw, error) {
	switch firstByte(data) {
	case 0:
		return nil, nil
	case '[':
		var raws []directive.Raw
		if err := json.Unmarshal(data, &raws); err != nil {
			return nil, decodeError(ErrCauseMalformedJSON, "%v", err)
		}
		return raws, nil
	case '{':
		members, err := decodeObject(data)
		if err != nil {
			return nil, decodeError(ErrCauseMalformedJSON, "%v", err)
		}
		raws := make([]directive.Raw, 0, len(members))
		for _, m := range members {
			if m.key == emptySentinel {
				continue
			}
			raws = append(raws, directive.RawFromAny(decodeAny(m.value)))
		}
		return raws, nil
	case '"':
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return nil, decodeError(ErrCauseMalformedJSON, "%v", err)
		}
		switch firstByte([]byte(text)) {
		case '[', '{':
			// double-encoded value; unwrap once
			return decodeRaws([]byte(text), false)
		}
		return decodeText(text), nil
	default:
		if !allowText {
			return nil, decodeError(ErrCauseUnexpectedShape, "expected a JSON array or object")
		}
		text := strings.TrimSpace(string(data))
		switch {
		case text == "null":
			return nil, nil
		case json.Valid(data):
			return nil, decodeError(ErrCauseUnexpectedShape, "directive list stored as %s", text)
		case strings.ContainsAny(text, "{}[]\""):
			return nil, decodeError(ErrCauseMalformedJSON, "invalid JSON value")
		}
		return decodeText(text), nil
	}
}

// decodeText reads the pre-JSON text forms.
func decodeText(text string) []directive.Raw {
	if preset, ok := catalog.LookupPreset(text); ok {
		return directive.FromStrings(preset.Directives)
	}
	return directive.FromStrings(strings.Split(text, ","))
}

// EncodeDirectives writes the structured form. Items with an empty value are dropped.
func EncodeDirectives(ds []directive.Directive) ([]byte, error) {
	out, err := json.Marshal(directive.Normalize(ds))
	if err != nil {
		return nil, &CodecError{Message: err.Error(), Cause: ErrCauseEncodeFailure}
	}
	return out, nil
}
