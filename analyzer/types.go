package analyzer

// MetaTag is one parsed <meta> element occurrence. Only the identifying
// attributes that were present on the source element are populated.
type MetaTag struct {
	Name      string `json:"name,omitempty"`
	Property  string `json:"property,omitempty"`
	HTTPEquiv string `json:"httpEquiv,omitempty"`
	Charset   string `json:"charset,omitempty"`
	Content   string `json:"content"`
}

// TagMap is the flat resolved-key -> content mapping. Keys are unique;
// the last occurrence in document order wins on collision.
type TagMap map[string]string

// Has reports whether the key is present with non-empty content. The scoring
// and suggestion rules treat empty content the same as an absent tag.
func (m TagMap) Has(key string) bool {
	return m[key] != ""
}

// Suggestion priorities.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Suggestion is a single improvement item derived from the tag map.
type Suggestion struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	CodeExample string `json:"codeExample,omitempty"`
}

// Analysis is the complete, immutable result of analyzing one URL.
type Analysis struct {
	URL                  string               `json:"url"`
	Title                string               `json:"title"`
	MetaTags             TagMap               `json:"metaTags"`
	SEOScore             int                  `json:"seoScore"`
	TotalTags            int                  `json:"totalTags"`
	MetaTagsCount        int                  `json:"metaTagsCount"`
	OtherTagsCount       int                  `json:"otherTagsCount"`
	TotalIssues          int                  `json:"totalIssues"`
	CriticalIssues       int                  `json:"criticalIssues"`
	WarningIssues        int                  `json:"warningIssues"`
	TotalSuggestions     int                  `json:"totalSuggestions"`
	GoogleStructuredData bool                 `json:"googleStructuredData"`
	Suggestions          []Suggestion         `json:"suggestions"`
	AllMetaTags          map[string][]MetaTag `json:"allMetaTags"`
}
