package session

import "github.com/rohmanhakim/robots-directives/internal/rules"

// Options are the per-field knobs of the editor.
type Options struct {
	// EnableBotNames keeps the crawler scope of added directives. Meta robots
	// fields leave it off and every incoming bot is cleared.
	EnableBotNames bool
	// MaxTags caps the working set. Zero means unlimited.
	MaxTags int
}

func DefaultOptions() Options {
	return Options{
		EnableBotNames: true,
		MaxTags:        0,
	}
}

// row is one rule row of the editing grid. Deleted rows stay in the grid
// until the next save so the form can still address them by id.
type row struct {
	rule    rules.Rule
	deleted bool
}
