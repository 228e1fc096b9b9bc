package report

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/metascope/backend/analyzer"
)

// categoryLabels maps internal category keys to display labels. This table is
// presentation configuration; the analyzer only knows the internal keys.
var categoryLabels = map[string]string{
	analyzer.CategoryBasic:     "Basic Meta Tags",
	analyzer.CategoryOpenGraph: "Open Graph",
	analyzer.CategoryTwitter:   "Twitter Cards",
	analyzer.CategoryRobots:    "Robots Directives",
	analyzer.CategoryOther:     "Other Tags",
}

// Display formats and prints an analysis in the requested format.
func Display(a *analyzer.Analysis, format string) error {
	switch format {
	case "json":
		return displayJSON(a)
	case "yaml":
		return displayYAML(a)
	case "human":
		fallthrough
	default:
		displayHuman(a)
	}
	return nil
}

func displayJSON(a *analyzer.Analysis) error {
	output, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(output))
	return nil
}

func displayYAML(a *analyzer.Analysis) error {
	output, err := yaml.Marshal(a)
	if err != nil {
		return err
	}
	fmt.Println(string(output))
	return nil
}

func displayHuman(a *analyzer.Analysis) {
	cyan := color.New(color.FgCyan, color.Bold)
	yellow := color.New(color.FgYellow, color.Bold)
	white := color.New(color.FgWhite, color.Bold)

	fmt.Println()
	cyan.Printf("SEO REPORT: %s\n\n", a.URL)

	scoreColor(a.SEOScore).Printf("SCORE: %d/100\n", a.SEOScore)
	fmt.Printf("   Issues: %d critical, %d warnings (%d total)\n", a.CriticalIssues, a.WarningIssues, a.TotalIssues)
	fmt.Printf("   Tags: %d total (%d meta, %d other)\n", a.TotalTags, a.MetaTagsCount, a.OtherTagsCount)
	if a.GoogleStructuredData {
		fmt.Println("   Structured data detected (Rich Results eligible)")
	}
	fmt.Println()

	white.Println("TAG CATEGORIES:")
	for _, cat := range analyzer.Categories {
		tags := a.AllMetaTags[cat]
		fmt.Printf("   %-18s %d\n", categoryLabels[cat]+":", len(tags))
	}
	fmt.Println()

	displayPreviews(a)

	if len(a.Suggestions) > 0 {
		yellow.Printf("SUGGESTIONS (%d):\n", a.TotalSuggestions)
		for i, s := range a.Suggestions {
			fmt.Printf("   %d. %s %s\n", i+1, priorityBadge(s.Priority), s.Title)
			fmt.Printf("      %s\n", s.Description)
			if s.CodeExample != "" {
				fmt.Printf("      Example: %s\n", color.CyanString(s.CodeExample))
			}
			fmt.Println()
		}
	} else {
		color.New(color.FgGreen, color.Bold).Println("No suggestions. All checks passed.")
		fmt.Println()
	}
}

// displayPreviews renders textual search and social previews from the tag
// map, the way the web client simulates Google, Facebook and Twitter cards.
func displayPreviews(a *analyzer.Analysis) {
	white := color.New(color.FgWhite, color.Bold)

	title := a.MetaTags["title"]
	if title == "" {
		title = "No title tag found"
	}
	description := a.MetaTags["description"]
	if description == "" {
		description = "No meta description found"
	}

	white.Println("GOOGLE SEARCH PREVIEW:")
	fmt.Printf("   %s\n", color.GreenString(a.URL))
	fmt.Printf("   %s\n", color.BlueString(truncate(title, 60)))
	fmt.Printf("   %s\n\n", truncate(description, 160))

	white.Println("FACEBOOK PREVIEW:")
	displayCard(a.MetaTags["og:title"], title, a.MetaTags["og:description"], description, a.MetaTags["og:image"])

	white.Println("TWITTER PREVIEW:")
	displayCard(a.MetaTags["twitter:title"], title, a.MetaTags["twitter:description"], description, a.MetaTags["twitter:image"])
}

func displayCard(cardTitle, fallbackTitle, cardDesc, fallbackDesc, image string) {
	if cardTitle == "" {
		cardTitle = fallbackTitle
	}
	if cardDesc == "" {
		cardDesc = fallbackDesc
	}
	fmt.Printf("   %s\n", cardTitle)
	fmt.Printf("   %s\n", truncate(cardDesc, 200))
	if image != "" {
		fmt.Printf("   Image: %s\n", image)
	} else {
		fmt.Printf("   %s\n", color.YellowString("No preview image"))
	}
	fmt.Println()
}

func scoreColor(score int) *color.Color {
	switch {
	case score >= 80:
		return color.New(color.FgGreen, color.Bold)
	case score >= 50:
		return color.New(color.FgYellow, color.Bold)
	default:
		return color.New(color.FgRed, color.Bold)
	}
}

func priorityBadge(priority string) string {
	switch priority {
	case analyzer.PriorityHigh:
		return color.RedString("[HIGH]")
	case analyzer.PriorityMedium:
		return color.YellowString("[MEDIUM]")
	default:
		return color.GreenString("[LOW]")
	}
}

// truncate shortens s to max characters, cutting on a rune boundary.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return strings.TrimSpace(string(runes[:max])) + "…"
}
