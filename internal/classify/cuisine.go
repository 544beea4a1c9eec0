package classify

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// DetectCuisine canonicalizes an explicit cuisine value. Known regional
// adjectives map to canonical names; anything else present is title-cased
// and passed through unchanged. Empty input yields "".
func DetectCuisine(raw string) string {
	cleaned := strings.TrimSpace(strings.ToLower(raw))
	if cleaned == "" {
		return ""
	}

	if canonical, ok := cuisineRegions[cleaned]; ok {
		return canonical
	}

	// A multi-word value may still contain a known adjective
	// ("authentic tex-mex").
	for _, word := range strings.FieldsFunc(cleaned, func(r rune) bool {
		return r == ' ' || r == ','
	}) {
		if canonical, ok := cuisineRegions[word]; ok {
			return canonical
		}
	}

	return titleCaser.String(cleaned)
}

// DetectCuisine on the classifier defers to the package function; the
// method form exists so callers holding a *Classifier need no second
// import path.
func (c *Classifier) DetectCuisine(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	// Only treat the value as an explicit cuisine when it is short;
	// long text goes through the detect pass instead.
	if len(strings.Fields(trimmed)) > 4 {
		return ""
	}
	return DetectCuisine(trimmed)
}
