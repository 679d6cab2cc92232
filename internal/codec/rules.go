package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/rohmanhakim/robots-directives/internal/catalog"
	"github.com/rohmanhakim/robots-directives/internal/directive"
	"github.com/rohmanhakim/robots-directives/internal/rules"
)

// Row fields of the stored rule object.
const (
	fieldPriority          = "priority"
	fieldPattern           = "pattern"
	fieldMetaDirectives    = "meta_directives"
	fieldXRobotsDirectives = "xrobots_directives"
	fieldDeleted           = "__deleted"

	// fields written by older editors, read only
	fieldLegacyDirectives = "directives"
	fieldLegacyOption     = "option"
)

// ruleRecord is the persisted shape of one rule row.
type ruleRecord struct {
	Priority          int                   `json:"priority"`
	Pattern           string                `json:"pattern"`
	MetaDirectives    []directive.Directive `json:"meta_directives"`
	XRobotsDirectives []directive.Directive `json:"xrobots_directives"`
}

// DecodeRules reads a stored rule collection, keeping row order.
//
// The collection is either an object keyed by row id or an array of rows.
// The "__empty" sentinel key is stripped, rows flagged "__deleted" are
// dropped, integer row keys become "_rule<N>", priorities may be numeric
// strings and directive lists accept every shape DecodeDirectives accepts.
// Rows that are not objects are skipped.
//
// On failure the returned slice is empty and the error is a recoverable *CodecError.
func DecodeRules(data []byte) ([]rules.Rule, error) {
	out := []rules.Rule{}

	switch firstByte(data) {
	case 0:
		return out, nil
	case '{':
		members, err := decodeObject(data)
		if err != nil {
			return []rules.Rule{}, decodeError(ErrCauseMalformedJSON, "%v", err)
		}
		for _, m := range members {
			if m.key == emptySentinel {
				continue
			}
			if r, ok := decodeRule(rowID(m.key), m.value); ok {
				out = append(out, r)
			}
		}
		return out, nil
	case '[':
		var rows []json.RawMessage
		if err := json.Unmarshal(data, &rows); err != nil {
			return []rules.Rule{}, decodeError(ErrCauseMalformedJSON, "%v", err)
		}
		for i, row := range rows {
			if r, ok := decodeRule(rowID(strconv.Itoa(i)), row); ok {
				out = append(out, r)
			}
		}
		return out, nil
	case '"':
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return []rules.Rule{}, decodeError(ErrCauseMalformedJSON, "%v", err)
		}
		switch firstByte([]byte(text)) {
		case '{', '[':
			return DecodeRules([]byte(text))
		case 0:
			return out, nil
		}
		return []rules.Rule{}, decodeError(ErrCauseUnexpectedShape, "rule collection stored as a string")
	default:
		if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
			return out, nil
		}
		if json.Valid(data) {
			return []rules.Rule{}, decodeError(ErrCauseUnexpectedShape, "rule collection stored as %s", bytes.TrimSpace(data))
		}
		return []rules.Rule{}, decodeError(ErrCauseMalformedJSON, "invalid JSON value")
	}
}

func decodeRule(id string, raw json.RawMessage) (rules.Rule, bool) {
	members, err := decodeObject(raw)
	if err != nil {
		return rules.Rule{}, false
	}

	fields := make(map[string]json.RawMessage, len(members))
	for _, m := range members {
		fields[m.key] = m.value
	}

	if truthy(fields[fieldDeleted]) {
		return rules.Rule{}, false
	}

	r := rules.Rule{
		ID:                id,
		Priority:          intValue(fields[fieldPriority]),
		Pattern:           scalarText(fields[fieldPattern]),
		MetaDirectives:    decodeList(fields[fieldMetaDirectives]),
		XRobotsDirectives: decodeList(fields[fieldXRobotsDirectives]),
	}

	if _, ok := fields[fieldMetaDirectives]; !ok {
		if legacy, ok := fields[fieldLegacyDirectives]; ok {
			r.MetaDirectives = decodeList(legacy)
		} else if option, ok := fields[fieldLegacyOption]; ok {
			r.MetaDirectives = decodeOption(scalarText(option))
		}
	}
	return r, true
}

// decodeList reads one directive list of a row. A bad list degrades to empty
// without discarding the row.
func decodeList(raw json.RawMessage) []directive.Directive {
	if raw == nil {
		return []directive.Directive{}
	}
	ds, err := DecodeDirectives(raw)
	if err != nil {
		return []directive.Directive{}
	}
	return ds
}

// decodeOption reads the single-select column of the oldest meta robots rows.
// "0" meant "use the default meta robots header" and carries no directives.
func decodeOption(option string) []directive.Directive {
	if preset, ok := catalog.LookupPreset(option); ok {
		return directive.CanonicalizeAll(directive.FromStrings(preset.Directives))
	}
	return []directive.Directive{}
}

func rowID(key string) string {
	if _, err := strconv.Atoi(key); err == nil {
		return "_rule" + key
	}
	return key
}

// EncodeRules orders rules for evaluation and writes them as an object keyed
// by row id, in that order. Rows without an id get "_rule<N>"; repeated ids
// get a numeric suffix so no row is lost.
func EncodeRules(rs []rules.Rule) ([]byte, error) {
	ordered := rules.Order(rs)

	var buf bytes.Buffer
	buf.WriteByte('{')

	seen := make(map[string]struct{}, len(ordered))
	for i, r := range ordered {
		id := uniqueID(r.ID, i, seen)

		key, err := json.Marshal(id)
		if err != nil {
			return nil, &CodecError{Message: err.Error(), Cause: ErrCauseEncodeFailure}
		}
		value, err := json.Marshal(ruleRecord{
			Priority:          r.Priority,
			Pattern:           r.Pattern,
			MetaDirectives:    directive.Normalize(r.MetaDirectives),
			XRobotsDirectives: directive.Normalize(r.XRobotsDirectives),
		})
		if err != nil {
			return nil, &CodecError{Message: err.Error(), Cause: ErrCauseEncodeFailure}
		}

		if i > 0 {
			buf.WriteByte(',')
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func uniqueID(id string, index int, seen map[string]struct{}) string {
	if id == "" {
		id = "_rule" + strconv.Itoa(index)
	}
	candidate := id
	for n := 1; ; n++ {
		if _, dup := seen[candidate]; !dup {
			break
		}
		candidate = fmt.Sprintf("%s_%d", id, n)
	}
	seen[candidate] = struct{}{}
	return candidate
}
