package analyzer

import (
	"github.com/PuerkitoBio/goquery"
)

// Extraction holds everything pulled out of a parsed page before scoring.
type Extraction struct {
	// Title is the text of the first <title> element, empty when absent.
	Title string
	// Tags is the flat resolved-key -> content map. It always carries a
	// "title" entry (possibly empty) and a "canonical" entry only when the
	// page declares one.
	Tags TagMap
	// Categories maps each bucket name to its tags in document order. All
	// five buckets are always present, possibly empty.
	Categories map[string][]MetaTag
	// StructuredData reports whether any JSON-LD script block exists.
	StructuredData bool
	// MetaElements counts every <meta> element encountered, including those
	// with no resolvable identity that appear in no map entry or bucket.
	MetaElements int
}

// Extract walks the document and collects the title, canonical link and all
// meta tags. Missing elements and attributes are absent values, never errors.
func Extract(doc *goquery.Document) Extraction {
	ext := Extraction{
		Tags:       make(TagMap),
		Categories: make(map[string][]MetaTag, len(Categories)),
	}
	for _, c := range Categories {
		ext.Categories[c] = []MetaTag{}
	}

	ext.Title = doc.Find("title").First().Text()
	ext.Tags["title"] = ext.Title

	if canonical, ok := doc.Find("link[rel='canonical']").First().Attr("href"); ok {
		ext.Tags["canonical"] = canonical
	}

	doc.Find("meta").Each(func(_ int, s *goquery.Selection) {
		ext.MetaElements++

		tag := MetaTag{
			Name:      s.AttrOr("name", ""),
			Property:  s.AttrOr("property", ""),
			HTTPEquiv: s.AttrOr("http-equiv", ""),
			Charset:   s.AttrOr("charset", ""),
			Content:   s.AttrOr("content", ""),
		}

		key := Identify(tag).Key()
		if key == "" {
			// No identity at all: counted above but dropped from the map
			// and from every bucket.
			return
		}

		ext.Tags[key] = tag.Content
		cat := Categorize(tag)
		ext.Categories[cat] = append(ext.Categories[cat], tag)
	})

	ext.StructuredData = doc.Find("script[type='application/ld+json']").Length() > 0

	return ext
}
