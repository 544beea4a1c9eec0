package heuristics

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonesrussell/gorecipe/internal/textnorm"
)

// Free-text mining limits. Lines longer than an ingredient plausibly is
// are prose, not ingredients.
const (
	maxIngredientLineLen = 120
	maxHarvestSpans      = 40
)

var (
	bulletSplitRe     = regexp.MustCompile(`[•▢◦●○‣·*]+`)
	ingredientsZoneRe = regexp.MustCompile(`(?i)\bingredients?\b[:\s]*`)
	zoneEndRe         = regexp.MustCompile(`(?i)^\s*(directions?|instructions?|method|steps|preparation|notes)\b`)
)

// freeTextIngredients is the Tier D last resort: bullet splitting, then
// line scanning inside a detected "ingredients" zone, then raw
// number-plus-unit harvesting from the whole body text.
func (e *Extractor) freeTextIngredients(doc *goquery.Document) []string {
	body := doc.Find("body").Text()
	if strings.TrimSpace(body) == "" {
		return nil
	}

	if lines := bulletLines(body); len(lines) > 0 {
		return lines
	}
	if lines := zoneLines(body); len(lines) > 0 {
		return lines
	}
	return harvestSpans(body)
}

// bulletLines splits on bullet characters and keeps measurement-bearing
// fragments.
func bulletLines(body string) []string {
	if !strings.ContainsAny(body, "•▢◦●○‣") {
		return nil
	}

	var lines []string
	for _, piece := range bulletSplitRe.Split(body, -1) {
		piece = cleanLine(piece)
		if piece == "" || len(piece) > maxIngredientLineLen {
			continue
		}
		if textnorm.ContainsMeasurement(piece) {
			lines = append(lines, piece)
		}
	}
	return lines
}

// zoneLines scans line by line after an "ingredients" marker, stopping at
// the first directions-like marker.
func zoneLines(body string) []string {
	loc := ingredientsZoneRe.FindStringIndex(body)
	if loc == nil {
		return nil
	}

	var lines []string
	for _, raw := range strings.Split(body[loc[1]:], "\n") {
		line := cleanLine(raw)
		if line == "" {
			continue
		}
		if zoneEndRe.MatchString(line) {
			break
		}
		if len(line) <= maxIngredientLineLen && textnorm.ContainsMeasurement(line) {
			lines = append(lines, line)
		}
	}
	return lines
}

// harvestSpans pulls raw "number + unit (+ name)" spans straight out of
// unstructured text.
func harvestSpans(body string) []string {
	spans := textnorm.FindMeasurementSpans(body, maxHarvestSpans)
	var lines []string
	for _, span := range spans {
		if line := cleanLine(span); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
