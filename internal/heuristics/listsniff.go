package heuristics

import (
	"github.com/PuerkitoBio/goquery"

	"github.com/jonesrussell/gorecipe/internal/textnorm"
)

// A list qualifies as the ingredient list when at least this many items
// look like measurements.
const minMeasuredItems = 2

// sniffIngredients is the Tier C pass: accept the first list on the page
// whose items contain a measurement-unit pattern in at least two entries.
func (e *Extractor) sniffIngredients(doc *goquery.Document) []string {
	var lines []string

	doc.Find("ul, ol").EachWithBreak(func(_ int, list *goquery.Selection) bool {
		// Skip nested lists; the parent list was already inspected.
		if list.ParentsFiltered("ul, ol").Length() > 0 {
			return true
		}

		items := collectListItems(list)
		measured := 0
		for _, item := range items {
			if textnorm.ContainsMeasurement(item) {
				measured++
			}
		}
		if measured >= minMeasuredItems {
			lines = items
			return false
		}
		return true
	})

	return lines
}
