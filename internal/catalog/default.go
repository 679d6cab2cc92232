package catalog

// defaultEntries mirrors the directives search engines document for
// <meta name="robots"> and the X-Robots-Tag header.
var defaultEntries = []Entry{
	{
		Value:       "all",
		Label:       "all",
		Description: "No restrictions for indexing or serving (equivalent to index, follow)",
		Group:       GroupIndexing,
		Conflicts:   []string{"noindex", "nofollow", "none"},
	},
	{
		Value:       "index",
		Label:       "index",
		Description: "Allow indexing",
		Group:       GroupIndexing,
		Conflicts:   []string{"noindex", "none"},
	},
	{
		Value:       "follow",
		Label:       "follow",
		Description: "Follow links on this page",
		Group:       GroupIndexing,
		Conflicts:   []string{"nofollow", "none"},
	},
	{
		Value:       "noindex",
		Label:       "noindex",
		Description: "Do not show this page in search results",
		Group:       GroupIndexing,
		Conflicts:   []string{"index", "all"},
	},
	{
		Value:       "nofollow",
		Label:       "nofollow",
		Description: "Do not follow links on this page",
		Group:       GroupIndexing,
		Conflicts:   []string{"follow", "all"},
	},
	{
		Value:       "none",
		Label:       "none",
		Description: "Equivalent to noindex, nofollow",
		Group:       GroupIndexing,
		Conflicts:   []string{"index", "follow", "all"},
	},
	{
		Value:       "noarchive",
		Label:       "noarchive",
		Description: "Do not show a cached link in search results",
		Group:       GroupSnippets,
	},
	{
		Value:       "nosnippet",
		Label:       "nosnippet",
		Description: "Do not show a text snippet or video preview",
		Group:       GroupSnippets,
	},
	{
		Value:            "max-snippet",
		Label:            "max-snippet",
		Description:      "Maximum text length of snippet",
		Group:            GroupSnippets,
		HasModification:  true,
		ModificationType: ModificationNumber,
	},
	{
		Value:            "max-image-preview",
		Label:            "max-image-preview",
		Description:      "Maximum size of image preview",
		Group:            GroupSnippets,
		HasModification:  true,
		ModificationType: ModificationChoice,
		Choices:          []string{"none", "standard", "large"},
	},
	{
		Value:            "max-video-preview",
		Label:            "max-video-preview",
		Description:      "Maximum video preview duration in seconds",
		Group:            GroupSnippets,
		HasModification:  true,
		ModificationType: ModificationNumber,
	},
	{
		Value:       "noimageindex",
		Label:       "noimageindex",
		Description: "Do not index images on this page",
		Group:       GroupImages,
	},
	{
		Value:       "notranslate",
		Label:       "notranslate",
		Description: "Do not offer translation of this page",
		Group:       GroupTranslations,
	},
	{
		Value:            "unavailable_after",
		Label:            "unavailable_after",
		Description:      "Do not show after specified date/time",
		Group:            GroupCrawling,
		HasModification:  true,
		ModificationType: ModificationDatetime,
	},
	{
		Value:       "indexifembedded",
		Label:       "indexifembedded",
		Description: "Allow indexing when embedded via iframe",
		Group:       GroupCrawling,
	},
}

// Default returns the catalog shipped with the editor.
func Default() *Static {
	return New(defaultEntries)
}

// Preset is one of the fixed meta robots choices offered before per-directive
// editing existed. Stored preset values are still read from old configuration.
type Preset struct {
	Value      string
	Label      string
	Directives []string
}

var metaRobotsPresets = []Preset{
	{Value: "NOINDEX,FOLLOW", Label: "NOINDEX, FOLLOW", Directives: []string{"noindex", "follow"}},
	{Value: "NOINDEX,NOFOLLOW", Label: "NOINDEX, NOFOLLOW", Directives: []string{"noindex", "nofollow"}},
	{Value: "INDEX,FOLLOW", Label: "INDEX, FOLLOW", Directives: []string{"index", "follow"}},
	{Value: "INDEX,NOFOLLOW", Label: "INDEX, NOFOLLOW", Directives: []string{"index", "nofollow"}},
}

// MetaRobotsPresets returns the legacy preset list.
func MetaRobotsPresets() []Preset {
	out := make([]Preset, len(metaRobotsPresets))
	copy(out, metaRobotsPresets)
	return out
}

// LookupPreset finds a preset by its stored value, ignoring case and spaces.
func LookupPreset(value string) (Preset, bool) {
	key := normalizePresetKey(value)
	for _, p := range metaRobotsPresets {
		if normalizePresetKey(p.Value) == key {
			return p, true
		}
	}
	return Preset{}, false
}
