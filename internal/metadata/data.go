package metadata

import (
	"time"
)

/*
	ErrorCause is a closed, canonical classification used exclusively for
	observability (logging, reporting).

	Rules:
	 - ErrorCause MUST NOT influence control flow.
	 - ErrorCause MUST NOT be used to decide whether a save is rejected or a
	   stored value is discarded; those decisions belong to the error's severity.
	 - Packages MAY map their local errors to ErrorCause,
	   but MUST NOT invent new meanings.

If a failure does not clearly match a defined cause, CauseUnknown MUST be used.
*/
type ErrorCause int

/*
Canonical ErrorCause Table

# CauseUnknown

  - The failure does not map cleanly to any known category.

# CauseDecodeFailure

  - Stored or pasted bytes could not be decoded.
  - Examples: truncated JSON, a rule list stored as a number.

# CauseValidationFailure

  - Strict validation rejected a directive list before it was saved.
  - Examples: unknown directive, max-snippet without a value.

# CauseStorageFailure

  - Failure while reading or writing a stored value.
  - Examples: redis unreachable, permission denied on the store directory.

# CauseInvariantViolation

  - An internal consistency check failed.
  - Examples: an ordered rule list containing a deleted row.
*/
const (
	CauseUnknown ErrorCause = iota
	CauseDecodeFailure
	CauseValidationFailure
	CauseStorageFailure
	CauseInvariantViolation
)

func (c ErrorCause) String() string {
	switch c {
	case CauseDecodeFailure:
		return "decode_failure"
	case CauseValidationFailure:
		return "validation_failure"
	case CauseStorageFailure:
		return "storage_failure"
	case CauseInvariantViolation:
		return "invariant_violation"
	default:
		return "unknown"
	}
}

type ErrorRecord struct {
	packageName string
	action      string
	cause       ErrorCause
	errorString string
	observedAt  time.Time
	attrs       []Attribute
}

func (e ErrorRecord) PackageName() string   { return e.packageName }
func (e ErrorRecord) Action() string        { return e.action }
func (e ErrorRecord) Cause() ErrorCause     { return e.cause }
func (e ErrorRecord) ErrorString() string   { return e.errorString }
func (e ErrorRecord) ObservedAt() time.Time { return e.observedAt }

func (e ErrorRecord) Attrs() []Attribute {
	out := make([]Attribute, len(e.attrs))
	copy(out, e.attrs)
	return out
}

// DecodeKind names what a decode event produced.
type DecodeKind string

const (
	DecodeDirectives DecodeKind = "directives"
	DecodeRules      DecodeKind = "rules"
)

type Attribute struct {
	Key   AttributeKey
	Value string
}

func NewAttr(key AttributeKey, val string) Attribute {
	return Attribute{
		Key:   key,
		Value: val,
	}
}

type AttributeKey string

const (
	AttrKey         AttributeKey = "key"
	AttrBackend     AttributeKey = "backend"
	AttrPattern     AttributeKey = "pattern"
	AttrList        AttributeKey = "list"
	AttrField       AttributeKey = "field"
	AttrPath        AttributeKey = "path"
	AttrFingerprint AttributeKey = "fingerprint"
)
