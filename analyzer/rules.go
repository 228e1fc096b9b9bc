package analyzer

import (
	"fmt"
	"unicode/utf8"
)

// Issue classes and their deductions.
const (
	classCritical = "critical"
	classWarning  = "warning"

	criticalDeduction = 15
	warningDeduction  = 10
)

// Recommended length limits for search result display, in characters.
// Lengths are measured in runes so multibyte text is not over-counted.
const (
	maxTitleLength       = 60
	maxDescriptionLength = 160
)

// rule is one entry in the scoring rubric. Score deductions and improvement
// suggestions are driven by the same table so the two can never drift apart.
// suggest is nil for rules that deduct points without a suggestion.
type rule struct {
	triggered func(tags TagMap) bool
	deduction int
	class     string
	suggest   func(tags TagMap, url string) Suggestion
}

// rules holds the full rubric. The order of the suggestion-bearing entries is
// the emission order of the suggestion list; it is not sorted by priority.
// Scoring is additive and order-independent.
var rules = []rule{
	{
		triggered: func(tags TagMap) bool { return !tags.Has("og:image") },
		deduction: criticalDeduction,
		class:     classCritical,
		suggest: func(TagMap, string) Suggestion {
			return Suggestion{
				Title:       "Add Open Graph Image",
				Description: "Your site is missing the og:image meta tag. Adding an image that's at least 1200×630 pixels will significantly improve engagement when your content is shared on Facebook and other platforms.",
				Priority:    PriorityHigh,
				CodeExample: `<meta property="og:image" content="https://example.com/images/og-image.jpg">`,
			}
		},
	},
	{
		triggered: func(tags TagMap) bool { return utf8.RuneCountInString(tags["title"]) > maxTitleLength },
		deduction: warningDeduction,
		class:     classWarning,
		suggest: func(tags TagMap, _ string) Suggestion {
			return Suggestion{
				Title:       "Optimize Title Length",
				Description: fmt.Sprintf("Your title tag is %d characters long, which is longer than the recommended %d characters and may be truncated in search results. Consider shortening it to ensure the most important keywords appear within the visible portion.", utf8.RuneCountInString(tags["title"]), maxTitleLength),
				Priority:    PriorityMedium,
			}
		},
	},
	{
		triggered: func(tags TagMap) bool { return !tags.Has("twitter:card") },
		deduction: warningDeduction,
		class:     classWarning,
		suggest: func(TagMap, string) Suggestion {
			return Suggestion{
				Title:       "Add Twitter Card Meta Tag",
				Description: "Your site is missing the twitter:card meta tag. This tag controls how your content appears when shared on Twitter.",
				Priority:    PriorityMedium,
				CodeExample: `<meta name="twitter:card" content="summary_large_image">`,
			}
		},
	},
	{
		triggered: func(tags TagMap) bool { return !tags.Has("description") },
		deduction: criticalDeduction,
		class:     classCritical,
		suggest: func(TagMap, string) Suggestion {
			return Suggestion{
				Title:       "Add Meta Description",
				Description: "Your site is missing a meta description. Adding a compelling description between 150-160 characters can improve click-through rates from search results.",
				Priority:    PriorityHigh,
				CodeExample: `<meta name="description" content="A descriptive and compelling summary of your page content.">`,
			}
		},
	},
	{
		triggered: func(tags TagMap) bool { return !tags.Has("canonical") },
		deduction: warningDeduction,
		class:     classWarning,
		suggest: func(_ TagMap, url string) Suggestion {
			return Suggestion{
				Title:       "Add Canonical URL",
				Description: "Your site is missing a canonical URL tag. This helps prevent duplicate content issues by specifying the preferred version of a page.",
				Priority:    PriorityMedium,
				CodeExample: fmt.Sprintf(`<link rel="canonical" href="%s">`, url),
			}
		},
	},
	// Score-only rules. A missing title/description already triggers the
	// critical rule above; the length warnings require presence, so the
	// missing and too-long deductions for one field never stack.
	{
		triggered: func(tags TagMap) bool { return !tags.Has("title") },
		deduction: criticalDeduction,
		class:     classCritical,
	},
	{
		triggered: func(tags TagMap) bool { return utf8.RuneCountInString(tags["description"]) > maxDescriptionLength },
		deduction: warningDeduction,
		class:     classWarning,
	},
}

// Score applies the deduction rubric to a tag map. The returned score is
// clamped to [0, 100].
func Score(tags TagMap) (score, critical, warning int) {
	score = 100
	for _, r := range rules {
		if !r.triggered(tags) {
			continue
		}
		score -= r.deduction
		switch r.class {
		case classCritical:
			critical++
		case classWarning:
			warning++
		}
	}
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score, critical, warning
}

// Suggest derives the ordered suggestion list for a tag map. The analyzed URL
// feeds the canonical-link code example. Only triggered rules emit an item;
// a satisfied rubric yields an empty (non-nil) list.
func Suggest(tags TagMap, url string) []Suggestion {
	suggestions := []Suggestion{}
	for _, r := range rules {
		if r.suggest == nil || !r.triggered(tags) {
			continue
		}
		suggestions = append(suggestions, r.suggest(tags, url))
	}
	return suggestions
}
