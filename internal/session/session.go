package session

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rohmanhakim/robots-directives/internal/catalog"
	"github.com/rohmanhakim/robots-directives/internal/codec"
	"github.com/rohmanhakim/robots-directives/internal/directive"
	"github.com/rohmanhakim/robots-directives/internal/metadata"
	"github.com/rohmanhakim/robots-directives/internal/resolver"
	"github.com/rohmanhakim/robots-directives/internal/rules"
	"github.com/rohmanhakim/robots-directives/pkg/hashutil"
)

/*
Session is the mutable state of one editing session: the working directive
set of a single field and the rule rows of a rule grid.

Every mutation runs the same canonicalize, resolve, store cycle and either
commits a complete new state or leaves the previous one in place. A Session
is owned by one caller and is not safe for concurrent use.
*/
type Session struct {
	catalog      catalog.Catalog
	options      Options
	codec        *codec.Codec
	metadataSink metadata.MetadataSink
	hashAlgo     hashutil.HashAlgo

	set      []directive.Directive
	baseline string

	rows []row
}

func New(
	c catalog.Catalog,
	options Options,
	metadataSink metadata.MetadataSink,
	hashAlgo hashutil.HashAlgo,
) *Session {
	if metadataSink == nil {
		metadataSink = &metadata.NoopSink{}
	}
	s := &Session{
		catalog:      c,
		options:      options,
		codec:        codec.NewCodec(c, metadataSink, false),
		metadataSink: metadataSink,
		hashAlgo:     hashAlgo,
		set:          []directive.Directive{},
	}
	s.baseline = s.Fingerprint()
	return s
}

// Load replaces the working set with a stored value and marks it unchanged.
func (s *Session) Load(data []byte) {
	s.set = s.codec.LoadDirectives(data)
	s.baseline = s.Fingerprint()
}

// LoadRules replaces the rule rows with a stored rule collection.
func (s *Session) LoadRules(data []byte) {
	loaded := s.codec.LoadRules(data)
	s.rows = make([]row, 0, len(loaded))
	for _, r := range loaded {
		s.rows = append(s.rows, row{rule: r})
	}
}

// Add canonicalizes raw and adds it through the conflict resolver.
// It reports false when nothing was added: an empty value, a directive that
// is already selected, or a full working set.
func (s *Session) Add(raw directive.Raw) bool {
	next, ok := s.add(s.set, directive.Canonicalize(raw), s.options.EnableBotNames)
	if ok {
		s.set = next
	}
	return ok
}

func (s *Session) add(set []directive.Directive, d directive.Directive, keepBot bool) ([]directive.Directive, bool) {
	if !keepBot {
		d.Bot = ""
	}
	if d.Value == "" {
		return set, false
	}

	idx := resolver.IndexOf(set, d.Value, d.Bot)
	if idx >= 0 && set[idx] == d {
		return set, false
	}
	// replacing the modification of a selected key never grows the set
	if idx < 0 && s.options.MaxTags > 0 && len(set) >= s.options.MaxTags {
		return set, false
	}
	return resolver.Add(set, d, s.catalog), true
}

// Remove drops the first directive matching value and bot.
func (s *Session) Remove(value string, bot string) bool {
	if !resolver.Contains(s.set, value, bot) {
		return false
	}
	s.set = resolver.Remove(s.set, value, bot)
	return true
}

// SetBot edits the crawler scope of the directive at index. When another
// directive already holds the new (value, bot) pair the edited one is dropped.
func (s *Session) SetBot(index int, bot string) error {
	if !s.options.EnableBotNames {
		return s.reject("SetBot", sessionError(ErrCauseBotNamesDisabled, "bot names are disabled for this field"))
	}
	if index < 0 || index >= len(s.set) {
		return s.reject("SetBot", sessionError(ErrCauseIndexOutOfRange, "index %d, working set has %d directives", index, len(s.set)))
	}

	edited := s.set[index]
	edited.Bot = directive.Canonicalize(directive.FromTuple(edited.Value, bot)).Bot

	next := make([]directive.Directive, 0, len(s.set))
	for i, d := range s.set {
		if i == index {
			continue
		}
		next = append(next, d)
	}
	if resolver.Contains(next, edited.Value, edited.Bot) {
		s.set = next
		return nil
	}

	next = append(next[:index], append([]directive.Directive{edited}, next[index:]...)...)
	s.set = next
	return nil
}

// SetValues clears the working set and adds each raw value in turn.
func (s *Session) SetValues(raws []directive.Raw) {
	s.set = []directive.Directive{}
	for _, raw := range raws {
		s.Add(raw)
	}
}

func (s *Session) Clear() {
	s.set = []directive.Directive{}
}

// Directives returns a copy of the working set.
func (s *Session) Directives() []directive.Directive {
	out := make([]directive.Directive, len(s.set))
	copy(out, s.set)
	return out
}

// Values returns the display form of every directive in the working set.
func (s *Session) Values() []string {
	out := make([]string, 0, len(s.set))
	for _, d := range s.set {
		out = append(out, d.String())
	}
	return out
}

// ApplyJSON replaces the working set with a pasted JSON array. Blank text
// clears the set. Anything that is not a JSON array is rejected and the last
// good working set is kept. Items are added one by one into an empty set, so
// duplicates, conflicts and the MaxTags cap apply as they do for Add.
func (s *Session) ApplyJSON(text string) error {
	data := bytes.TrimSpace([]byte(text))
	if len(data) == 0 {
		s.set = []directive.Directive{}
		return nil
	}

	if !json.Valid(data) {
		return s.reject("ApplyJSON", sessionError(ErrCauseInvalidJSON, "pasted value is not valid JSON"))
	}
	if data[0] != '[' {
		return s.reject("ApplyJSON", sessionError(ErrCauseNotAnArray, "pasted value must be a JSON array"))
	}

	var raws []directive.Raw
	if err := json.Unmarshal(data, &raws); err != nil {
		return s.reject("ApplyJSON", sessionError(ErrCauseInvalidJSON, "%v", err))
	}

	next := []directive.Directive{}
	for _, d := range directive.CanonicalizeAll(raws) {
		next, _ = s.add(next, d, s.options.EnableBotNames)
	}
	s.set = next
	return nil
}

// JSON returns the working set in its stored form.
func (s *Session) JSON() []byte {
	out, err := codec.EncodeDirectives(s.set)
	if err != nil {
		return []byte("[]")
	}
	return out
}

// Fingerprint identifies the stored form of the working set.
func (s *Session) Fingerprint() string {
	fp, err := hashutil.Fingerprint(s.JSON(), s.hashAlgo)
	if err != nil {
		return ""
	}
	return fp
}

// Changed reports whether the working set differs from what was last loaded.
func (s *Session) Changed() bool {
	return s.Fingerprint() != s.baseline
}

// AddRule appends an empty rule row and returns its id.
func (s *Session) AddRule(pattern string, priority int) string {
	id := "_" + uuid.NewString()
	s.rows = append(s.rows, row{rule: rules.Rule{
		ID:                id,
		Pattern:           pattern,
		Priority:          priority,
		MetaDirectives:    []directive.Directive{},
		XRobotsDirectives: []directive.Directive{},
	}})
	return id
}

// UpdateRule changes the pattern and priority of a row.
func (s *Session) UpdateRule(id string, pattern string, priority int) error {
	r, err := s.findRow("UpdateRule", id)
	if err != nil {
		return err
	}
	r.rule.Pattern = pattern
	r.rule.Priority = priority
	return nil
}

// DeleteRule marks a row deleted. It is excluded from Rules from then on.
func (s *Session) DeleteRule(id string) error {
	r, err := s.findRow("DeleteRule", id)
	if err != nil {
		return err
	}
	r.deleted = true
	return nil
}

// AddRuleDirective adds a directive to one list of a row through the
// conflict resolver. Meta robots lists never carry a bot.
func (s *Session) AddRuleDirective(id string, kind rules.Kind, raw directive.Raw) (bool, error) {
	r, err := s.findRow("AddRuleDirective", id)
	if err != nil {
		return false, err
	}
	if err := s.checkKind("AddRuleDirective", kind); err != nil {
		return false, err
	}

	next, ok := s.add(r.rule.Directives(kind), directive.Canonicalize(raw), kind == rules.KindXRobots)
	if ok {
		r.rule = r.rule.WithDirectives(kind, next)
	}
	return ok, nil
}

// RemoveRuleDirective drops the first matching directive from one list of a row.
func (s *Session) RemoveRuleDirective(id string, kind rules.Kind, value string, bot string) (bool, error) {
	r, err := s.findRow("RemoveRuleDirective", id)
	if err != nil {
		return false, err
	}
	if err := s.checkKind("RemoveRuleDirective", kind); err != nil {
		return false, err
	}

	current := r.rule.Directives(kind)
	if !resolver.Contains(current, value, bot) {
		return false, nil
	}
	r.rule = r.rule.WithDirectives(kind, resolver.Remove(current, value, bot))
	return true, nil
}

// Rules returns the live rows in evaluation order.
func (s *Session) Rules() []rules.Rule {
	live := make([]rules.Rule, 0, len(s.rows))
	for _, r := range s.rows {
		if r.deleted {
			continue
		}
		live = append(live, r.rule)
	}
	return rules.Order(live)
}

// RulesJSON returns the live rows in their stored form.
func (s *Session) RulesJSON() ([]byte, error) {
	return codec.EncodeRules(s.Rules())
}

func (s *Session) findRow(action string, id string) (*row, error) {
	for i := range s.rows {
		if s.rows[i].rule.ID == id && !s.rows[i].deleted {
			return &s.rows[i], nil
		}
	}
	return nil, s.reject(action, sessionError(ErrCauseUnknownRule, "no rule with id %q", id))
}

func (s *Session) checkKind(action string, kind rules.Kind) error {
	switch kind {
	case rules.KindMeta, rules.KindXRobots:
		return nil
	default:
		return s.reject(action, sessionError(ErrCauseUnknownList, "%q", kind))
	}
}

func (s *Session) reject(action string, err *SessionError) error {
	s.metadataSink.RecordError(
		time.Now(),
		"session",
		action,
		mapSessionErrorToMetadataCause(err),
		err.Error(),
		nil,
	)
	return err
}
