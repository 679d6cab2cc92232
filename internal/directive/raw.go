package directive

import (
	"bytes"
	"encoding/json"
)

type RawKind int

const (
	RawEmpty RawKind = iota
	RawString
	RawTuple
	RawObject
)

// Raw is one directive as it arrived from the operator or from stored data,
// before canonicalization. The kind is fixed when the Raw is built and
// Canonicalize is the only place that interprets it.
type Raw struct {
	kind   RawKind
	text   string
	tuple  []string
	object Directive
}

func FromString(s string) Raw {
	return Raw{kind: RawString, text: s}
}

// FromTuple builds a positional raw directive: value, bot, modification.
// Missing positions are empty.
func FromTuple(parts ...string) Raw {
	tuple := make([]string, len(parts))
	copy(tuple, parts)
	return Raw{kind: RawTuple, tuple: tuple}
}

func FromObject(d Directive) Raw {
	return Raw{kind: RawObject, object: d}
}

func FromStrings(values []string) []Raw {
	raws := make([]Raw, 0, len(values))
	for _, v := range values {
		raws = append(raws, FromString(v))
	}
	return raws
}

func FromDirectives(ds []Directive) []Raw {
	raws := make([]Raw, 0, len(ds))
	for _, d := range ds {
		raws = append(raws, FromObject(d))
	}
	return raws
}

func (r Raw) Kind() RawKind {
	return r.kind
}

// UnmarshalJSON accepts every stored shape: a string, a positional array or an object
// with value/bot/modification keys. Scalars inside arrays and objects may be numbers or
// booleans and are kept as their literal text. Any other JSON value decodes to an empty Raw.
func (r *Raw) UnmarshalJSON(data []byte) error {
	var v any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return err
	}
	*r = rawFromAny(v)
	return nil
}

// MarshalJSON always writes the structured form.
func (r Raw) MarshalJSON() ([]byte, error) {
	return json.Marshal(Canonicalize(r))
}

func rawFromAny(v any) Raw {
	switch t := v.(type) {
	case string:
		return FromString(t)
	case json.Number, bool:
		return FromString(scalarString(t))
	case []any:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			parts = append(parts, scalarString(item))
		}
		return FromTuple(parts...)
	case map[string]any:
		return FromObject(Directive{
			Value:        scalarString(t["value"]),
			Bot:          scalarString(t["bot"]),
			Modification: scalarString(t["modification"]),
		})
	default:
		return Raw{}
	}
}

func scalarString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		if t {
			return "true"
		}
		return "false"
	default:
		return ""
	}
}

// RawFromAny converts an already-decoded JSON value into a Raw.
func RawFromAny(v any) Raw {
	return rawFromAny(v)
}
