package heuristics

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const headingSelector = "h1, h2, h3, h4, h5, h6"

// headingIngredients is the Tier B walk: find an "ingredients" heading,
// then collect list items from following siblings until the next
// same-or-higher heading. Sub-headings along the way become inline
// section markers.
func (e *Extractor) headingIngredients(doc *goquery.Document) []string {
	return e.headingSection(doc, "ingredient")
}

// headingSection runs the sibling walk for any section keyword.
func (e *Extractor) headingSection(doc *goquery.Document, keyword string) []string {
	heading := findHeading(doc, keyword)
	if heading == nil {
		return nil
	}
	lines, _ := walkSiblings(heading)
	return lines
}

// hasIngredientHeading reports whether an ingredients heading exists at
// all, for failure diagnostics.
func hasIngredientHeading(doc *goquery.Document) bool {
	return findHeading(doc, "ingredient") != nil
}

// headingWalkHasSections reports whether the ingredients heading walk
// would produce sub-section markers.
func headingWalkHasSections(doc *goquery.Document) bool {
	heading := findHeading(doc, "ingredient")
	if heading == nil {
		return false
	}
	_, sections := walkSiblings(heading)
	return sections > 0
}

// findHeading returns the first heading whose text contains the keyword,
// or nil.
func findHeading(doc *goquery.Document, keyword string) *goquery.Selection {
	var found *goquery.Selection
	doc.Find(headingSelector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if strings.Contains(strings.ToLower(s.Text()), keyword) {
			found = s
			return false
		}
		return true
	})
	return found
}

// walkSiblings collects list items from the heading's following siblings
// until a same-or-higher heading ends the section. Deeper headings are
// emitted as "[Section]" markers; the section count is returned for
// callers that only care whether groups exist.
func walkSiblings(heading *goquery.Selection) ([]string, int) {
	startLevel := headingLevel(heading)
	var lines []string
	sections := 0

	for s := heading.Next(); s.Length() > 0; s = s.Next() {
		if level := headingLevel(s); level > 0 {
			if level <= startLevel {
				break
			}
			if title := cleanLine(s.Text()); title != "" {
				lines = append(lines, "["+strings.TrimSuffix(title, ":")+"]")
				sections++
			}
			continue
		}

		lines = append(lines, collectListItems(s)...)
	}

	return lines, sections
}

// headingLevel returns 1-6 for h1-h6 and 0 for anything else.
func headingLevel(s *goquery.Selection) int {
	name := goquery.NodeName(s)
	if len(name) == 2 && name[0] == 'h' && name[1] >= '1' && name[1] <= '6' {
		return int(name[1] - '0')
	}
	return 0
}
