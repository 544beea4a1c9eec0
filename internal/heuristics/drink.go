package heuristics

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonesrussell/gorecipe/internal/domain"
)

// extractDrinkFields pulls glass and garnish sections, which cocktail
// sites publish under their own headings. A combined "glass and garnish"
// heading yields the glass as its first item and garnish as the rest.
func (e *Extractor) extractDrinkFields(doc *goquery.Document, result *domain.ImportResult) {
	if combined := e.combinedGlassGarnish(doc); len(combined) > 0 {
		result.Glass = combined[0]
		if len(combined) > 1 {
			result.Garnish = combined[1:]
		}
		return
	}

	if items := e.headingSection(doc, "glass"); len(items) > 0 {
		result.Glass = items[0]
	} else if text := inlineLabelValue(doc, "glass"); text != "" {
		result.Glass = text
	}

	if items := e.headingSection(doc, "garnish"); len(items) > 0 {
		result.Garnish = items
	} else if text := inlineLabelValue(doc, "garnish"); text != "" {
		result.Garnish = []string{text}
	}
}

// combinedGlassGarnish handles the shared heading form. It must check
// for the combined phrase before the single "glass" walk runs, or the
// plain lookup would swallow the section.
func (e *Extractor) combinedGlassGarnish(doc *goquery.Document) []string {
	heading := findHeading(doc, "glass")
	if heading == nil {
		return nil
	}
	text := strings.ToLower(heading.Text())
	if !strings.Contains(text, "garnish") {
		return nil
	}
	items, _ := walkSiblings(heading)
	return items
}

// inlineLabelValue reads "Glass: coupe" style label paragraphs.
func inlineLabelValue(doc *goquery.Document, label string) string {
	var value string
	doc.Find("p, li, div").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := cleanLine(s.Text())
		lowered := strings.ToLower(text)
		if !strings.HasPrefix(lowered, label+":") {
			return true
		}
		value = strings.TrimSpace(text[len(label)+1:])
		return value == ""
	})
	if len(value) > 60 {
		// A paragraph-length match is body text, not a label.
		return ""
	}
	return value
}
