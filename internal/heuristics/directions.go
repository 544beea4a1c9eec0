package heuristics

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonesrussell/gorecipe/internal/domain"
)

var (
	stepNumberRe = regexp.MustCompile(`(?i)^\s*step\s*\d+[.:]?\s*$`)
	bylineRe     = regexp.MustCompile(`(?i)^\s*(by|recipe by|author|photo by)\b`)
	alnumRe      = regexp.MustCompile(`[a-zA-Z0-9]`)
)

// Single-word labels that are navigation, not cooking.
var navigationLabels = map[string]bool{
	"print": true, "share": true, "pin": true, "save": true, "jump": true,
	"comments": true, "video": true, "nutrition": true, "reviews": true,
}

// extractDirections runs the instruction cascade: explicit plugin or
// microdata markup, then heading-driven step sections, then a numbered
// ordered-list fallback. The result is junk-filtered and deduplicated.
func (e *Extractor) extractDirections(doc *goquery.Document) []string {
	cascade := []func(*goquery.Document) []string{
		e.markupDirections,
		e.headingDirections,
		e.orderedListDirections,
	}

	for _, step := range cascade {
		if lines := filterJunkDirections(step(doc)); len(lines) > 0 {
			return lines
		}
	}
	return nil
}

// markupDirections reads explicit instruction markup from the known
// plugin families and microdata.
func (e *Extractor) markupDirections(doc *goquery.Document) []string {
	for _, family := range pluginFamilies {
		var lines []string
		doc.Find(family.instruction).Each(func(_ int, s *goquery.Selection) {
			if text := cleanLine(s.Text()); text != "" {
				lines = append(lines, text)
			}
		})
		if len(lines) > 0 {
			return lines
		}
	}

	var lines []string
	doc.Find("[itemprop=recipeInstructions] li, [itemprop=recipeInstructions] p").Each(
		func(_ int, s *goquery.Selection) {
			if text := cleanLine(s.Text()); text != "" {
				lines = append(lines, text)
			}
		})
	if len(lines) == 0 {
		if text := cleanLine(doc.Find("[itemprop=recipeInstructions]").First().Text()); text != "" {
			lines = append(lines, text)
		}
	}
	return lines
}

// headingDirections walks siblings after a directions-like heading. A
// sub-heading becomes a bolded step title so grouping survives.
func (e *Extractor) headingDirections(doc *goquery.Document) []string {
	var heading *goquery.Selection
	for _, keyword := range []string{"direction", "instruction", "method"} {
		if heading = findHeading(doc, keyword); heading != nil {
			break
		}
	}
	if heading == nil {
		return nil
	}

	startLevel := headingLevel(heading)
	var lines []string

	for s := heading.Next(); s.Length() > 0; s = s.Next() {
		if level := headingLevel(s); level > 0 {
			if level <= startLevel {
				break
			}
			if title := cleanLine(s.Text()); title != "" {
				lines = append(lines, "**"+strings.TrimSuffix(title, ":")+"**")
			}
			continue
		}

		if items := collectListItems(s); len(items) > 0 {
			lines = append(lines, items...)
			continue
		}
		if goquery.NodeName(s) == "p" {
			if text := cleanLine(s.Text()); text != "" {
				lines = append(lines, text)
			}
		}
	}

	return lines
}

// orderedListDirections accepts the longest ordered list on the page as
// a last resort, provided its items read like prose steps.
func (e *Extractor) orderedListDirections(doc *goquery.Document) []string {
	var best []string
	doc.Find("ol").Each(func(_ int, list *goquery.Selection) {
		items := collectListItems(list)
		if len(items) > len(best) && looksLikeSteps(items) {
			best = items
		}
	})
	return best
}

// looksLikeSteps requires most items to be multi-word sentences rather
// than navigation links.
func looksLikeSteps(items []string) bool {
	if len(items) == 0 {
		return false
	}
	wordy := 0
	for _, item := range items {
		if len(strings.Fields(item)) >= 3 {
			wordy++
		}
	}
	return wordy*2 >= len(items)
}

// filterJunkDirections removes bare step-number headers, bylines,
// single-word navigational labels, and lines with no alphanumeric
// content, then deduplicates by normalized text.
func filterJunkDirections(lines []string) []string {
	seen := make(map[string]bool)
	out := make([]string, 0, len(lines))

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || !alnumRe.MatchString(line) {
			continue
		}
		if stepNumberRe.MatchString(line) || bylineRe.MatchString(line) {
			continue
		}
		if words := strings.Fields(line); len(words) == 1 &&
			navigationLabels[strings.ToLower(strings.Trim(words[0], ":.!"))] {
			continue
		}

		key := domain.NormalizeKey(line)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, line)
	}

	return out
}
