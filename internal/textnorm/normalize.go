// Package textnorm normalizes raw source text before parsing: entity
// decoding, markup stripping, fraction canonicalization, and measurement
// unit spelling. All functions are pure and Normalize is idempotent.
package textnorm

import (
	"html"
	"regexp"
	"strings"
)

// maxEntityPasses bounds repeated entity decoding. Some sources
// double-encode entities; decoding runs to a fixpoint so that
// Normalize(Normalize(s)) == Normalize(s) holds.
const maxEntityPasses = 4

var (
	tagRe        = regexp.MustCompile(`<[^>]*>`)
	asciiFracRe  = regexp.MustCompile(`(\d+)\s*/\s*(\d+)`)
	decimalRe    = regexp.MustCompile(`(^|[^\d])(0?)\.(\d+)\b`)
	wholeGlyphRe = regexp.MustCompile(`(\d)\s+([½⅓⅔¼¾⅕⅖⅗⅘⅙⅚⅛⅜⅝⅞])`)
	spaceRe      = regexp.MustCompile(`[ \t]+`)
)

// fractionGlyphs maps numerator/denominator pairs to unicode glyphs.
var fractionGlyphs = map[[2]int]string{
	{1, 2}: "½",
	{1, 3}: "⅓",
	{2, 3}: "⅔",
	{1, 4}: "¼",
	{3, 4}: "¾",
	{1, 5}: "⅕",
	{2, 5}: "⅖",
	{3, 5}: "⅗",
	{4, 5}: "⅘",
	{1, 6}: "⅙",
	{5, 6}: "⅚",
	{1, 8}: "⅛",
	{3, 8}: "⅜",
	{5, 8}: "⅝",
	{7, 8}: "⅞",
}

// decimalGlyphs maps decimal fraction digits (without the leading "0.")
// to unicode glyphs. Only decimals with no whole part, or a whole part of
// zero, are converted, so "10.5" is untouched.
var decimalGlyphs = map[string]string{
	"5":   "½",
	"50":  "½",
	"25":  "¼",
	"75":  "¾",
	"2":   "⅕",
	"4":   "⅖",
	"6":   "⅗",
	"8":   "⅘",
	"33":  "⅓",
	"333": "⅓",
	"66":  "⅔",
	"67":  "⅔",
	"666": "⅔",
	"667": "⅔",
	"125": "⅛",
	"375": "⅜",
	"625": "⅝",
	"875": "⅞",
	"166": "⅙",
	"167": "⅙",
	"833": "⅚",
}

// glyphValues maps fraction glyphs to their numeric magnitude, used by
// amount scoring, never for storage.
var glyphValues = map[rune]float64{
	'½': 0.5,
	'⅓': 1.0 / 3.0,
	'⅔': 2.0 / 3.0,
	'¼': 0.25,
	'¾': 0.75,
	'⅕': 0.2,
	'⅖': 0.4,
	'⅗': 0.6,
	'⅘': 0.8,
	'⅙': 1.0 / 6.0,
	'⅚': 5.0 / 6.0,
	'⅛': 0.125,
	'⅜': 0.375,
	'⅝': 0.625,
	'⅞': 0.875,
}

// unitSpellings maps every accepted measurement unit spelling to its
// canonical token. Canonical tokens map to themselves so canonicalization
// is idempotent.
var unitSpellings = map[string]string{
	"tablespoon":  "tbsp",
	"tablespoons": "tbsp",
	"tbsp":        "tbsp",
	"tbs":         "tbsp",
	"tblsp":       "tbsp",
	"teaspoon":    "tsp",
	"teaspoons":   "tsp",
	"tsp":         "tsp",
	"cup":         "cup",
	"cups":        "cup",
	"ounce":       "oz",
	"ounces":      "oz",
	"oz":          "oz",
	"pound":       "lb",
	"pounds":      "lb",
	"lb":          "lb",
	"lbs":         "lb",
	"kilogram":    "kg",
	"kilograms":   "kg",
	"kg":          "kg",
	"kgs":         "kg",
	"gram":        "g",
	"grams":       "g",
	"g":           "g",
	"milliliter":  "ml",
	"milliliters": "ml",
	"millilitre":  "ml",
	"millilitres": "ml",
	"ml":          "ml",
	"liter":       "L",
	"liters":      "L",
	"litre":       "L",
	"litres":      "L",
	"l":           "L",
	"pinch":       "pinch",
	"pinches":     "pinch",
	"dash":        "dash",
	"dashes":      "dash",
	"clove":       "clove",
	"cloves":      "clove",
	"quart":       "qt",
	"quarts":      "qt",
	"qt":          "qt",
	"pint":        "pt",
	"pints":       "pt",
	"pt":          "pt",
	"stick":       "stick",
	"sticks":      "stick",
	"can":         "can",
	"cans":        "can",
	"slice":       "slice",
	"slices":      "slice",
}

var unitWordRe = regexp.MustCompile(`(?i)\b([a-z]+)\b\.?`)

// Normalize decodes entities, strips residual markup, converts ASCII and
// decimal fractions to unicode glyphs, canonicalizes measurement unit
// spellings, and collapses runs of whitespace.
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	text = decodeEntities(text)
	text = tagRe.ReplaceAllString(text, " ")
	text = convertASCIIFractions(text)
	text = convertDecimalFractions(text)
	text = joinWholeAndGlyph(text)
	text = canonicalizeUnits(text)
	text = spaceRe.ReplaceAllString(text, " ")

	return strings.TrimSpace(text)
}

// decodeEntities decodes named, decimal, and hex entities to a fixpoint so
// double-encoded input normalizes the same way encoded input does.
func decodeEntities(text string) string {
	for range maxEntityPasses {
		decoded := html.UnescapeString(text)
		if decoded == text {
			break
		}
		text = decoded
	}
	// Non-breaking spaces behave like spaces everywhere downstream.
	return strings.ReplaceAll(text, " ", " ")
}

// convertASCIIFractions rewrites "1/2"-style fractions to their glyph
// forms. Unknown ratios such as "5/7" are left alone.
func convertASCIIFractions(text string) string {
	return asciiFracRe.ReplaceAllStringFunc(text, func(match string) string {
		parts := asciiFracRe.FindStringSubmatch(match)
		num := atoiSafe(parts[1])
		den := atoiSafe(parts[2])
		if glyph, ok := fractionGlyphs[[2]int{num, den}]; ok {
			return glyph
		}
		return match
	})
}

// convertDecimalFractions rewrites "0.5"-style decimals to glyphs. The
// leading capture keeps digits out, so "10.5" is untouched.
func convertDecimalFractions(text string) string {
	return decimalRe.ReplaceAllStringFunc(text, func(match string) string {
		parts := decimalRe.FindStringSubmatch(match)
		if glyph, ok := decimalGlyphs[parts[3]]; ok {
			return parts[1] + glyph
		}
		return match
	})
}

// joinWholeAndGlyph collapses "1 ½" to "1½" so compound amounts stay one
// token.
func joinWholeAndGlyph(text string) string {
	return wholeGlyphRe.ReplaceAllString(text, "$1$2")
}

// canonicalizeUnits rewrites measurement unit spelling variants to their
// canonical tokens, preserving surrounding text.
func canonicalizeUnits(text string) string {
	return unitWordRe.ReplaceAllStringFunc(text, func(word string) string {
		trimmed := strings.TrimSuffix(word, ".")
		canonical, ok := unitSpellings[strings.ToLower(trimmed)]
		if !ok {
			return word
		}
		// Single letters are too ambiguous to rewrite unless they carried
		// a trailing period ("g." is a unit, a bare "l" in prose may not
		// be) or are already canonical.
		if len(trimmed) == 1 && trimmed != canonical && !strings.HasSuffix(word, ".") {
			return word
		}
		return canonical
	})
}

// LookupUnit returns the canonical token for a measurement unit spelling.
func LookupUnit(word string) (string, bool) {
	canonical, ok := unitSpellings[strings.ToLower(strings.TrimSuffix(word, "."))]
	return canonical, ok
}

// IsUnit reports whether the word is a recognized measurement unit.
func IsUnit(word string) bool {
	_, ok := LookupUnit(word)
	return ok
}

// GlyphValue returns the numeric magnitude of a fraction glyph, or 0 if
// the rune is not a fraction glyph.
func GlyphValue(r rune) float64 {
	return glyphValues[r]
}

// ContainsMeasurement reports whether the text contains a quantity
// followed by a recognized unit, the signature shape of an ingredient
// line.
func ContainsMeasurement(text string) bool {
	return measurementRe.MatchString(Normalize(text))
}

// FindMeasurementSpans harvests up to max "number + unit (+ name)" spans
// from unstructured text, the last-resort shape of ingredient mining.
func FindMeasurementSpans(text string, max int) []string {
	normalized := Normalize(text)
	matches := measurementSpanRe.FindAllString(normalized, max)
	spans := make([]string, 0, len(matches))
	for _, m := range matches {
		if span := strings.TrimSpace(m); span != "" {
			spans = append(spans, span)
		}
	}
	return spans
}

// measurementRe matches "2 cup", "½ tsp", "600 g" style spans after
// normalization.
var measurementRe = regexp.MustCompile(
	`(?i)(\d+[½⅓⅔¼¾⅕⅖⅗⅘⅙⅚⅛⅜⅝⅞]?|[½⅓⅔¼¾⅕⅖⅗⅘⅙⅚⅛⅜⅝⅞])\s*(` + unitAlternation() + `)\b`)

// measurementSpanRe extends measurementRe with a short trailing name,
// used only by free-text harvesting.
var measurementSpanRe = regexp.MustCompile(
	`(?i)(\d+[½⅓⅔¼¾⅕⅖⅗⅘⅙⅚⅛⅜⅝⅞]?|[½⅓⅔¼¾⅕⅖⅗⅘⅙⅚⅛⅜⅝⅞])\s*(` + unitAlternation() + `)\b(?:\s+(?:of\s+)?[a-z][a-z-]*(?:\s+[a-z][a-z-]*){0,2})?`)

// unitAlternation builds the alternation of all canonical and variant
// unit spellings for use in measurement patterns.
func unitAlternation() string {
	seen := make(map[string]bool, len(unitSpellings))
	parts := make([]string, 0, len(unitSpellings))
	for spelling := range unitSpellings {
		if !seen[spelling] {
			seen[spelling] = true
			parts = append(parts, regexp.QuoteMeta(spelling))
		}
	}
	return strings.Join(parts, "|")
}

// atoiSafe parses a small positive integer, returning 0 on failure.
func atoiSafe(s string) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0
		}
		n = n*10 + int(r-'0')
		if n > 1000 {
			return 0
		}
	}
	return n
}
