package catalog

type ModificationType string

const (
	ModificationNone     ModificationType = ""
	ModificationText     ModificationType = "text"
	ModificationNumber   ModificationType = "number"
	ModificationChoice   ModificationType = "choice"
	ModificationDatetime ModificationType = "datetime"
)

type Group string

const (
	GroupIndexing     Group = "indexing"
	GroupSnippets     Group = "snippets"
	GroupImages       Group = "images"
	GroupTranslations Group = "translations"
	GroupCrawling     Group = "crawling"
)

// Entry is the static definition of one known directive value.
//
// Conflicts lists the values removed from a working set, for the same bot,
// when this value is added. Conflicts are not transitive.
type Entry struct {
	Value            string
	Label            string
	Description      string
	Group            Group
	Conflicts        []string
	HasModification  bool
	ModificationType ModificationType
	// Choices enumerates accepted modifications for ModificationChoice.
	Choices []string
}

// Option is a value/label pair for select-style form fields.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// ValidationResult reports every problem found in a directive list.
// The caller decides whether an invalid result rejects a save.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}
