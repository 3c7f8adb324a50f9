package extractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// LocatorStrategy attempts to find the widget region within a parsed
// document. It returns nil when the strategy does not apply; "not found" is
// an ordinary value, not an error.
type LocatorStrategy func(doc *goquery.Document) *goquery.Selection

// locatorStrategies returns the ordered strategy chain. Strategies are tried
// in priority order until one yields a region.
func locatorStrategies(widgetID string, widgetTokens, tableKeywords []string) []LocatorStrategy {
	return []LocatorStrategy{
		exactIDLocator(widgetID),
		looseTokenLocator(widgetTokens),
		keywordTableLocator(tableKeywords),
	}
}

// exactIDLocator matches the widget element id, case-insensitively, to be
// robust against markup drift like OpportunityAnnouncementWidget.
func exactIDLocator(widgetID string) LocatorStrategy {
	return func(doc *goquery.Document) *goquery.Selection {
		var region *goquery.Selection
		doc.Find("[id]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
			id, _ := s.Attr("id")
			if strings.EqualFold(id, widgetID) {
				region = s
				return false
			}
			return true
		})
		return region
	}
}

// looseTokenLocator scans container elements for an id or class overlapping
// at least two of the expected tokens.
func looseTokenLocator(tokens []string) LocatorStrategy {
	return func(doc *goquery.Document) *goquery.Selection {
		var region *goquery.Selection
		doc.Find("div, section").EachWithBreak(func(_ int, s *goquery.Selection) bool {
			id, _ := s.Attr("id")
			class, _ := s.Attr("class")
			haystack := strings.ToLower(id + " " + class)

			matches := 0
			for _, token := range tokens {
				if strings.Contains(haystack, strings.ToLower(token)) {
					matches++
				}
			}
			if matches >= 2 {
				region = s
				return false
			}
			return true
		})
		return region
	}
}

// keywordTableLocator falls back to scanning every table for text that
// overlaps the expected keywords, mirroring pages where the widget markup
// lost its identifying attributes entirely.
func keywordTableLocator(keywords []string) LocatorStrategy {
	return func(doc *goquery.Document) *goquery.Selection {
		var region *goquery.Selection
		doc.Find("table").EachWithBreak(func(_ int, s *goquery.Selection) bool {
			text := strings.ToLower(s.Text())
			for _, keyword := range keywords {
				if strings.Contains(text, strings.ToLower(keyword)) {
					region = s
					return false
				}
			}
			return true
		})
		return region
	}
}
