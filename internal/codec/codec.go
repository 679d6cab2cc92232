package codec

import (
	"time"

	"github.com/rohmanhakim/robots-directives/internal/catalog"
	"github.com/rohmanhakim/robots-directives/internal/directive"
	"github.com/rohmanhakim/robots-directives/internal/metadata"
	"github.com/rohmanhakim/robots-directives/internal/rules"
)

// Codec wraps the stored formats with the load and save behavior of the
// editing fields: loads never fail, saves validate when strict is set.
type Codec struct {
	catalog      catalog.Catalog
	metadataSink metadata.MetadataSink
	strict       bool
}

func NewCodec(c catalog.Catalog, sink metadata.MetadataSink, strict bool) *Codec {
	if sink == nil {
		sink = &metadata.NoopSink{}
	}
	return &Codec{
		catalog:      c,
		metadataSink: sink,
		strict:       strict,
	}
}

func (c *Codec) Strict() bool {
	return c.strict
}

// LoadDirectives decodes a stored directive list. Undecodable bytes are
// recorded and load as an empty list.
func (c *Codec) LoadDirectives(data []byte) []directive.Directive {
	ds, err := DecodeDirectives(data)
	if err != nil {
		c.recordError("LoadDirectives", err, nil)
	}
	c.metadataSink.RecordDecode(metadata.DecodeDirectives, len(ds), nil)
	return ds
}

// LoadRules decodes a stored rule collection. Undecodable bytes are recorded
// and load as an empty collection.
func (c *Codec) LoadRules(data []byte) []rules.Rule {
	rs, err := DecodeRules(data)
	if err != nil {
		c.recordError("LoadRules", err, nil)
	}
	c.metadataSink.RecordDecode(metadata.DecodeRules, len(rs), nil)
	return rs
}

// SaveDirectives canonicalizes submitted directives and encodes them.
func (c *Codec) SaveDirectives(raws []directive.Raw) ([]byte, error) {
	ds := directive.CanonicalizeAll(raws)
	if err := c.validate(ds, "", ""); err != nil {
		c.recordError("SaveDirectives", err, nil)
		return nil, err
	}
	return EncodeDirectives(ds)
}

// SaveRules validates both lists of every rule, then orders and encodes them.
func (c *Codec) SaveRules(rs []rules.Rule) ([]byte, error) {
	for _, r := range rs {
		for _, kind := range []rules.Kind{rules.KindMeta, rules.KindXRobots} {
			if err := c.validate(r.Directives(kind), r.Pattern, kind); err != nil {
				c.recordError("SaveRules", err, []metadata.Attribute{
					metadata.NewAttr(metadata.AttrPattern, r.Pattern),
					metadata.NewAttr(metadata.AttrList, string(kind)),
				})
				return nil, err
			}
		}
	}
	return EncodeRules(rs)
}

// PrepareDirectives is the save path for submitted directive list bytes.
func (c *Codec) PrepareDirectives(raw []byte) ([]byte, error) {
	raws, err := decodeRaws(raw, true)
	if err != nil {
		c.recordError("PrepareDirectives", err, nil)
		return nil, err
	}
	return c.SaveDirectives(raws)
}

// PrepareRules is the save path for a submitted rule collection: decode,
// validate, order, encode.
func (c *Codec) PrepareRules(raw []byte) ([]byte, error) {
	rs, err := DecodeRules(raw)
	if err != nil {
		c.recordError("PrepareRules", err, nil)
		return nil, err
	}
	return c.SaveRules(rs)
}

func (c *Codec) validate(ds []directive.Directive, pattern string, kind rules.Kind) error {
	if !c.strict || c.catalog == nil {
		return nil
	}
	result := catalog.Validate(c.catalog, ds)
	if result.Valid {
		return nil
	}
	return &ValidationError{
		Pattern: pattern,
		List:    kind,
		Errors:  result.Errors,
	}
}

func (c *Codec) recordError(action string, err error, attrs []metadata.Attribute) {
	c.metadataSink.RecordError(
		time.Now(),
		"codec",
		action,
		mapCodecErrorToMetadataCause(err),
		err.Error(),
		attrs,
	)
}
