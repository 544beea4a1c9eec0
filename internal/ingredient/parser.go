// Package ingredient parses raw ingredient lines into structured entries.
// ParseLine is a total function: any input yields an entry, an unparseable
// line yields one with an empty name rather than an error.
package ingredient

import (
	"regexp"
	"strings"

	"github.com/jonesrussell/gorecipe/internal/domain"
	"github.com/jonesrussell/gorecipe/internal/textnorm"
)

// Line-shape patterns, most specific first. Looser patterns would mask
// these if tried earlier.
var (
	bracketSectionRe = regexp.MustCompile(`^\s*\[([^\]]+)\]\s*:?\s*`)
	forParenRe       = regexp.MustCompile(`(?i)^\s*\(\s*for (?:the )?([^)]+)\)\s*:?\s*`)
	forLineRe        = regexp.MustCompile(`(?i)^\s*for (?:the )?([^:]+?)\s*:\s*$`)
	footnoteRe       = regexp.MustCompile(`^[\s*†]+|[\s*†]+$|\[\d+\]`)
	topUpRe          = regexp.MustCompile(`(?i)^top up with\s+(.+)$`)
	colonDrinkRe     = regexp.MustCompile(`^([A-Za-z][^:,]{0,60}):\s*(\d.*)$`)
	bakerPercentRe   = regexp.MustCompile(`^(.+?),\s*(\d+(?:\.\d+)?%)\s*[-–—]\s*([\d½⅓⅔¼¾⅕⅖⅗⅘⅙⅚⅛⅜⅝⅞.]+\s*[A-Za-z]*)\s*(?:\((.+?)\))?\s*$`)
	commaAmountRe    = regexp.MustCompile(`^(.+?),\s*([\d½⅓⅔¼¾⅕⅖⅗⅘⅙⅚⅛⅜⅝⅞][^,(]*?)\s*(?:\((.+)\))?\s*$`)
	asNeededRe       = regexp.MustCompile(`(?i)^(.+?),\s*(as needed|to taste)\.?\s*$`)
	optionalParenRe  = regexp.MustCompile(`(?i)\(\s*optional[^)]*\)`)
	optionalTrailRe  = regexp.MustCompile(`(?i)[,\s]+optional\.?\s*$`)
	parenSpanRe      = regexp.MustCompile(`\(([^()]*)\)`)
	ratioRe          = regexp.MustCompile(`\d+\s*:\s*\d+`)
	weightOnlyRe     = regexp.MustCompile(`(?i)^[\d½⅓⅔¼¾⅕⅖⅗⅘⅙⅚⅛⅜⅝⅞.\s]+(g|kg|oz|lb|ml|L)\.?$`)
	leadingOfRe      = regexp.MustCompile(`(?i)^of\s+`)
)

// nameSpanKeywords mark a parenthetical that describes the ingredient
// itself (ratio, brix, syrup strength) and therefore belongs in the name.
var nameSpanKeywords = []string{"brix", "syrup", "simple", "rich", "%"}

// ParseLine parses one raw ingredient line. The line is normalized first;
// the returned amount keeps unicode fraction glyph form.
func ParseLine(raw string) domain.ParsedIngredient {
	text := textnorm.Normalize(raw)
	if text == "" {
		return domain.ParsedIngredient{}
	}

	entry, rest := extractSection(text)
	if rest == "" {
		// A pure section marker: empty name, populated section.
		return entry
	}

	rest = strings.TrimSpace(footnoteRe.ReplaceAllString(rest, ""))

	for _, p := range linePatterns {
		if parsed, ok := p(rest); ok {
			parsed.Section = entry.Section
			return parsed
		}
	}

	parsed := parseGeneral(rest)
	parsed.Section = entry.Section
	return parsed
}

// extractSection strips a leading inline section marker and returns the
// marker entry plus the remaining text.
func extractSection(text string) (domain.ParsedIngredient, string) {
	if m := bracketSectionRe.FindStringSubmatch(text); m != nil {
		return domain.ParsedIngredient{Section: strings.TrimSpace(m[1])},
			strings.TrimSpace(text[len(m[0]):])
	}
	if m := forParenRe.FindStringSubmatch(text); m != nil {
		return domain.ParsedIngredient{Section: titleFirst(strings.TrimSpace(m[1]))},
			strings.TrimSpace(text[len(m[0]):])
	}
	if m := forLineRe.FindStringSubmatch(text); m != nil {
		return domain.ParsedIngredient{Section: titleFirst(strings.TrimSpace(m[1]))}, ""
	}
	return domain.ParsedIngredient{}, text
}

// linePattern attempts one fixed line shape; ok is false when the shape
// does not apply.
type linePattern func(text string) (domain.ParsedIngredient, bool)

// linePatterns is the fixed-priority cascade of specific line shapes tried
// before the general case.
var linePatterns = []linePattern{
	parseTopUp,
	parseColonDrink,
	parseBakerPercent,
	parseCommaAmount,
	parseAsNeeded,
}

// parseTopUp handles the drink phrasing "Top up with soda water".
func parseTopUp(text string) (domain.ParsedIngredient, bool) {
	m := topUpRe.FindStringSubmatch(text)
	if m == nil {
		return domain.ParsedIngredient{}, false
	}
	return domain.ParsedIngredient{
		Name:   strings.TrimSpace(m[1]),
		Amount: "Top",
	}, true
}

// parseColonDrink handles the cocktail shape "Gin: 2 oz/60ml stirred".
// The slash-separated part is a metric alternative; it and any trailing
// words become ordered notes.
func parseColonDrink(text string) (domain.ParsedIngredient, bool) {
	m := colonDrinkRe.FindStringSubmatch(text)
	if m == nil {
		return domain.ParsedIngredient{}, false
	}

	primary, alt, _ := strings.Cut(m[2], "/")
	amount := findAmount(primary)
	if amount == nil || amount.Start != 0 {
		return domain.ParsedIngredient{}, false
	}

	entry := domain.ParsedIngredient{
		Name:   strings.TrimSpace(m[1]),
		Amount: amount.Amount,
		Unit:   amount.Unit,
	}

	var notes []string
	if extra := strings.TrimSpace(primary[amount.End:]); extra != "" {
		notes = append(notes, extra)
	}
	if alt = strings.TrimSpace(alt); alt != "" {
		if altAmount := findAmount(alt); altAmount != nil && altAmount.Start == 0 {
			notes = append(notes, strings.TrimSpace(alt[:altAmount.End]))
			if rest := strings.TrimSpace(alt[altAmount.End:]); rest != "" {
				notes = append(notes, rest)
			}
		} else {
			notes = append(notes, alt)
		}
	}
	entry.Preparation = strings.Join(notes, "; ")

	return entry, true
}

// parseBakerPercent handles the bread-formula shape
// "All-Purpose Flour, 100% – 600g (4½ Cups)".
func parseBakerPercent(text string) (domain.ParsedIngredient, bool) {
	m := bakerPercentRe.FindStringSubmatch(text)
	if m == nil {
		return domain.ParsedIngredient{}, false
	}

	entry := domain.ParsedIngredient{
		Name:         strings.TrimSpace(m[1]),
		BakerPercent: m[2],
		Amount:       strings.TrimSpace(m[3]),
		Preparation:  strings.TrimSpace(m[4]),
	}

	if amount := findAmount(entry.Amount); amount != nil && amount.Unit != "" {
		entry.Unit = amount.Unit
	}

	return entry, true
}

// parseAsNeeded handles "Salt, to taste" and "Flour, as needed".
func parseAsNeeded(text string) (domain.ParsedIngredient, bool) {
	m := asNeededRe.FindStringSubmatch(text)
	if m == nil {
		return domain.ParsedIngredient{}, false
	}
	return domain.ParsedIngredient{
		Name:   strings.TrimSpace(m[1]),
		Amount: strings.ToLower(m[2]),
	}, true
}

// parseCommaAmount handles "Sugar, 2 cup (packed)".
func parseCommaAmount(text string) (domain.ParsedIngredient, bool) {
	m := commaAmountRe.FindStringSubmatch(text)
	if m == nil {
		return domain.ParsedIngredient{}, false
	}

	amount := findAmount(m[2])
	if amount == nil || amount.Start != 0 {
		return domain.ParsedIngredient{}, false
	}

	return domain.ParsedIngredient{
		Name:        strings.TrimSpace(m[1]),
		Amount:      amount.Amount,
		Unit:        amount.Unit,
		Preparation: strings.TrimSpace(m[3]),
	}, true
}

// parseGeneral is the catch-all: optional-marker extraction, parenthetical
// note collection, amount extraction, and a name/preparation split at the
// first top-level comma.
func parseGeneral(text string) domain.ParsedIngredient {
	var entry domain.ParsedIngredient

	text, entry.Optional = extractOptional(text)

	var notes []string
	text, notes = extractParentheticals(text)

	// Amount search runs over a copy with parenthesized spans blanked so
	// digits inside a kept ratio span ("2:1 syrup") are not mistaken for
	// the amount. The mask preserves byte offsets.
	if amount := findAmount(maskParens(text)); amount != nil {
		entry.Amount = amount.Amount
		entry.Unit = amount.Unit
		text = strings.TrimSpace(text[:amount.Start] + " " + text[amount.End:])
	}

	name, prep := splitTopLevelComma(text)
	entry.Name = cleanName(name)
	if prep != "" {
		notes = append([]string{prep}, notes...)
	}

	entry = salvageName(entry, notes)
	return entry
}

// extractOptional strips "(optional)" spans and trailing "optional"
// markers, reporting whether any were present.
func extractOptional(text string) (string, bool) {
	optional := false
	if optionalParenRe.MatchString(text) {
		text = optionalParenRe.ReplaceAllString(text, "")
		optional = true
	}
	if optionalTrailRe.MatchString(text) {
		text = optionalTrailRe.ReplaceAllString(text, "")
		optional = true
	}
	return strings.TrimSpace(text), optional
}

// extractParentheticals removes parenthetical spans right to left and
// returns them as ordered notes. Spans that describe the ingredient
// itself (ratio, brix, syrup descriptions) stay in place.
func extractParentheticals(text string) (string, []string) {
	var notes []string

	for {
		locs := parenSpanRe.FindAllStringSubmatchIndex(text, -1)
		if len(locs) == 0 {
			break
		}

		removed := false
		for i := len(locs) - 1; i >= 0; i-- {
			loc := locs[i]
			span := text[loc[2]:loc[3]]
			if isNameSpan(span) {
				continue
			}
			notes = append(notes, strings.TrimSpace(span))
			text = strings.TrimSpace(text[:loc[0]] + " " + text[loc[1]:])
			removed = true
			break
		}
		if !removed {
			break
		}
	}

	return text, notes
}

// isNameSpan reports whether a parenthetical span is part of the
// ingredient name rather than a preparation note.
func isNameSpan(span string) bool {
	lower := strings.ToLower(span)
	if ratioRe.MatchString(span) {
		return true
	}
	for _, kw := range nameSpanKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// maskParens blanks parenthesized spans with spaces, preserving length so
// match offsets stay valid against the original text.
func maskParens(text string) string {
	out := []byte(text)
	depth := 0
	for i := range out {
		switch out[i] {
		case '(':
			depth++
			out[i] = ' '
		case ')':
			if depth > 0 {
				depth--
			}
			out[i] = ' '
		default:
			if depth > 0 {
				out[i] = ' '
			}
		}
	}
	return string(out)
}

// splitTopLevelComma splits at the first comma outside parentheses.
func splitTopLevelComma(text string) (name, rest string) {
	depth := 0
	for i, r := range text {
		switch r {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				return strings.TrimSpace(text[:i]), strings.TrimSpace(text[i+1:])
			}
		}
	}
	return strings.TrimSpace(text), ""
}

// cleanName trims residue left behind by amount removal.
func cleanName(name string) string {
	name = leadingOfRe.ReplaceAllString(name, "")
	name = strings.Trim(name, " -–—.,;")
	return strings.TrimSpace(name)
}

// salvageName promotes the first usable note to be the name when nothing
// else parsed as one, then folds the remaining notes into Preparation.
func salvageName(entry domain.ParsedIngredient, notes []string) domain.ParsedIngredient {
	if entry.Name == "" {
		for i, note := range notes {
			if note == "" || weightOnlyRe.MatchString(note) {
				continue
			}
			if strings.EqualFold(note, "optional") {
				continue
			}
			candidate := cleanName(note)
			if candidate == "" {
				continue
			}
			entry.Name = candidate
			notes = append(notes[:i], notes[i+1:]...)
			break
		}
	}

	kept := notes[:0]
	for _, note := range notes {
		if cleanName(note) != "" {
			kept = append(kept, note)
		}
	}
	entry.Preparation = strings.Join(kept, "; ")

	return entry
}

// titleFirst uppercases the first rune of a section label.
func titleFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// ParseAll parses a block of raw lines, carrying inline section markers
// forward onto subsequent entries. Marker-only lines set the section and
// are not emitted; lines that parse to nothing are dropped.
func ParseAll(lines []string) []domain.ParsedIngredient {
	var out []domain.ParsedIngredient
	section := ""

	for _, line := range lines {
		entry := ParseLine(line)
		if entry.IsSectionMarker() {
			section = entry.Section
			continue
		}
		if entry.IsEmpty() {
			continue
		}
		if entry.Section == "" {
			entry.Section = section
		}
		out = append(out, entry)
	}

	return out
}
