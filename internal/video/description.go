// Package video imports recipes from video watch pages: the description
// is parsed with a line-oriented state machine, chapters come from
// timestamp lines, and directions are assembled from the transcript when
// one can be fetched.
package video

import (
	"regexp"
	"strings"

	"github.com/jonesrussell/gorecipe/internal/textnorm"
)

// section is the state of the description scanner.
type section int

const (
	sectionNone section = iota
	sectionIngredients
	sectionDirections
	sectionNotes
	sectionIgnore
)

// DescriptionResult is the outcome of one pass over the description.
type DescriptionResult struct {
	Ingredients []string
	Directions  []string
	Notes       []string
	PrepTime    string
	CookTime    string
	TotalTime   string
}

var (
	decorPrefixRe = regexp.MustCompile(`^[\s•▢◦●○‣◆►▶→▬═─│┃*#>~_=-]+`)
	timeLineRe    = regexp.MustCompile(`(?i)^(prep|cook|total)\s*time\s*[:\-]\s*(.+)$`)
	yieldLineRe   = regexp.MustCompile(`(?i)^(yield|serves|servings|makes)\b`)
	numberedRe    = regexp.MustCompile(`^\s*\d+\s*[.)\-:]\s*`)
	allCapsRe     = regexp.MustCompile(`^[A-Z0-9\s!'&.,%-]{12,}$`)
	urlRe         = regexp.MustCompile(`(?i)\bhttps?://|\bwww\.|\bbit\.ly/|\bamzn\.to/`)
)

// Header phrases that switch the scanner's section.
var sectionHeaders = []struct {
	keywords []string
	next     section
}{
	{[]string{"ingredients", "what you need", "what you'll need", "shopping list"}, sectionIngredients},
	{[]string{"directions", "instructions", "method", "steps", "how to make"}, sectionDirections},
	{[]string{"chapters", "timestamps", "timeline"}, sectionDirections},
	{[]string{"notes", "tips"}, sectionNotes},
	{[]string{"equipment", "gear", "links", "follow me", "subscribe", "connect with", "my favorite products"}, sectionIgnore},
}

// Boilerplate markers dropped unconditionally, regardless of section.
var boilerplateMarkers = []string{
	"affiliate", "commission", "sponsored", "instagram", "facebook",
	"twitter", "tiktok", "patreon", "merch", "discount code", "promo code",
	"use code", "subscribe",
}

// ParseDescription runs the single-pass state machine over the video
// description.
func ParseDescription(text string) DescriptionResult {
	var result DescriptionResult
	current := sectionNone

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(decorPrefixRe.ReplaceAllString(raw, ""))
		if line == "" {
			continue
		}

		// Time lines are captured wherever they appear and never
		// reach notes.
		if m := timeLineRe.FindStringSubmatch(line); m != nil {
			value := strings.TrimSpace(m[2])
			switch strings.ToLower(m[1]) {
			case "prep":
				result.PrepTime = value
			case "cook":
				result.CookTime = value
			case "total":
				result.TotalTime = value
			}
			continue
		}

		if isBoilerplate(line) {
			continue
		}

		if next, isHeader := matchSectionHeader(line); isHeader {
			current = next
			continue
		}

		// Yield phrasing goes to notes regardless of section.
		if yieldLineRe.MatchString(line) {
			result.Notes = append(result.Notes, line)
			continue
		}

		// A line whose shape strongly contradicts the section switches
		// it without a header; many descriptions have none.
		current = reconcileSection(current, line)

		switch current {
		case sectionIngredients:
			result.Ingredients = append(result.Ingredients, line)
		case sectionDirections:
			if isTimestampLine(line) {
				// Chapter lines feed the chapter parser, not the
				// direction list.
				continue
			}
			result.Directions = append(result.Directions, numberedRe.ReplaceAllString(line, ""))
		case sectionNotes:
			result.Notes = append(result.Notes, line)
		}
	}

	return result
}

// matchSectionHeader recognizes header phrases: short lines containing a
// known keyword, usually ending with a colon.
func matchSectionHeader(line string) (section, bool) {
	lowered := strings.ToLower(strings.TrimSuffix(line, ":"))
	if len(strings.Fields(lowered)) > 5 {
		return sectionNone, false
	}
	for _, header := range sectionHeaders {
		for _, kw := range header.keywords {
			if strings.Contains(lowered, kw) {
				return header.next, true
			}
		}
	}
	return sectionNone, false
}

// isBoilerplate drops social links, affiliate disclosures, and all-caps
// promo banners.
func isBoilerplate(line string) bool {
	if urlRe.MatchString(line) {
		return true
	}
	lowered := strings.ToLower(line)
	for _, marker := range boilerplateMarkers {
		if strings.Contains(lowered, marker) {
			return true
		}
	}
	return allCapsRe.MatchString(line) && strings.ContainsAny(line, "!&")
}

// reconcileSection switches section without a header when the line's
// shape contradicts the current one.
func reconcileSection(current section, line string) section {
	switch current {
	case sectionNone:
		if looksLikeIngredient(line) {
			return sectionIngredients
		}
		if looksLikeStep(line) {
			return sectionDirections
		}
		return sectionNone
	case sectionDirections:
		if looksLikeIngredient(line) && !looksLikeStep(line) {
			return sectionIngredients
		}
	case sectionIngredients:
		if looksLikeStep(line) && !looksLikeIngredient(line) {
			return sectionDirections
		}
	}
	return current
}

// looksLikeIngredient requires a measurement shape and a short line.
func looksLikeIngredient(line string) bool {
	return len(line) <= 80 && textnorm.ContainsMeasurement(line)
}

// looksLikeStep matches numbered lines and imperative sentences.
func looksLikeStep(line string) bool {
	if numberedRe.MatchString(line) {
		return true
	}
	return len(strings.Fields(line)) >= 5 && strings.HasSuffix(line, ".")
}
