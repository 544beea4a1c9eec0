package ingredient

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/jonesrussell/gorecipe/internal/textnorm"
)

// amountMatch is one extracted amount span.
type amountMatch struct {
	// Amount is the display form, fraction glyphs preserved.
	Amount string
	// Unit is the canonical unit token, empty when none followed the
	// quantity.
	Unit string
	// Start and End bound the full span (amount plus unit) in the input.
	Start int
	End   int
}

const glyphClass = `½⅓⅔¼¾⅕⅖⅗⅘⅙⅚⅛⅜⅝⅞`

// Amount extraction patterns, most specific first. Looser patterns would
// otherwise mask the compound and range forms.
var (
	// "1½" style whole-plus-fraction compounds (normalization joins the
	// whole and the glyph).
	compoundAmountRe = regexp.MustCompile(`\b(\d+[` + glyphClass + `])\s*([A-Za-z]+\.?)?`)
	// bare fraction glyph not preceded by a digit
	fractionAmountRe = regexp.MustCompile(`([` + glyphClass + `])\s*([A-Za-z]+\.?)?`)
	// "2 to 3 cups"
	toRangeAmountRe = regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?)\s+to\s+(\d+(?:\.\d+)?)\s*([A-Za-z]+\.?)?`)
	// "2-3 cups" or plain "2 cups"
	simpleAmountRe = regexp.MustCompile(`\b(\d+(?:\.\d+)?)(?:\s*[-–]\s*(\d+(?:\.\d+)?))?\s*([A-Za-z]+\.?)?`)
)

// findAmount locates the highest-priority amount span in the text.
// Returns nil when no quantity is present.
func findAmount(text string) *amountMatch {
	if m := matchCompound(text); m != nil {
		return m
	}
	if m := matchBareFraction(text); m != nil {
		return m
	}
	if m := matchToRange(text); m != nil {
		return m
	}
	return matchSimple(text)
}

func matchCompound(text string) *amountMatch {
	loc := compoundAmountRe.FindStringSubmatchIndex(text)
	if loc == nil {
		return nil
	}
	return buildMatch(text, loc, text[loc[2]:loc[3]], submatch(text, loc, 2))
}

func matchBareFraction(text string) *amountMatch {
	for _, loc := range fractionAmountRe.FindAllStringSubmatchIndex(text, -1) {
		// Skip glyphs glued to a preceding digit; those belong to the
		// compound pattern.
		if loc[2] > 0 && isDigit(text[loc[2]-1]) {
			continue
		}
		return buildMatch(text, loc, text[loc[2]:loc[3]], submatch(text, loc, 2))
	}
	return nil
}

func matchToRange(text string) *amountMatch {
	loc := toRangeAmountRe.FindStringSubmatchIndex(text)
	if loc == nil {
		return nil
	}
	amount := text[loc[2]:loc[3]] + " to " + text[loc[4]:loc[5]]
	return buildMatch(text, loc, amount, submatch(text, loc, 3))
}

func matchSimple(text string) *amountMatch {
	loc := simpleAmountRe.FindStringSubmatchIndex(text)
	if loc == nil {
		return nil
	}
	amount := text[loc[2]:loc[3]]
	if loc[4] >= 0 {
		amount += "-" + text[loc[4]:loc[5]]
	}
	return buildMatch(text, loc, amount, submatch(text, loc, 3))
}

// buildMatch validates the trailing unit word and assembles the span.
// A trailing word that is not a recognized unit stays part of the name,
// so the span shrinks back to the quantity alone.
func buildMatch(text string, loc []int, amount, unitWord string) *amountMatch {
	m := &amountMatch{Amount: amount, Start: loc[0], End: loc[1]}

	if unitWord != "" {
		canonical, ok := textnorm.LookupUnit(unitWord)
		if ok {
			m.Unit = canonical
		} else {
			// Walk the span end back so the non-unit word is kept.
			m.End = loc[0] + strings.LastIndex(text[loc[0]:loc[1]], unitWord)
			for m.End > loc[0] && text[m.End-1] == ' ' {
				m.End--
			}
		}
	}

	return m
}

// submatch returns capture group n of loc against text, or "".
func submatch(text string, loc []int, n int) string {
	if 2*n+1 >= len(loc) || loc[2*n] < 0 {
		return ""
	}
	return text[loc[2*n]:loc[2*n+1]]
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// unitWeights give each canonical unit a rough magnitude in grams or
// milliliters, used only to make amounts comparable for sorting.
var unitWeights = map[string]float64{
	"tsp":   5,
	"tbsp":  15,
	"cup":   240,
	"oz":    28,
	"lb":    454,
	"g":     1,
	"kg":    1000,
	"ml":    1,
	"L":     1000,
	"qt":    946,
	"pt":    473,
	"pinch": 0.3,
	"dash":  0.6,
}

// ScoreAmount converts a display amount plus unit into a comparable
// magnitude for sorting. The display string itself is never altered.
func ScoreAmount(amount, unit string) float64 {
	value := amountValue(amount)
	if value == 0 {
		return 0
	}

	weight, ok := unitWeights[unit]
	if !ok {
		weight = 1
	}

	return value * weight
}

// amountValue parses the leading numeric portion of a display amount,
// fraction glyphs included. Ranges score by their lower bound.
func amountValue(amount string) float64 {
	amount = strings.TrimSpace(amount)
	if amount == "" {
		return 0
	}

	var whole strings.Builder
	var frac float64
	for _, r := range amount {
		if r >= '0' && r <= '9' || r == '.' {
			whole.WriteRune(r)
			continue
		}
		if v := textnorm.GlyphValue(r); v > 0 {
			frac = v
		}
		break
	}

	value, err := strconv.ParseFloat(whole.String(), 64)
	if err != nil {
		return frac
	}
	return value + frac
}
