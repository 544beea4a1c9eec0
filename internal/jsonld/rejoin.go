package jsonld

import (
	"regexp"
	"strings"

	"github.com/jonesrussell/gorecipe/internal/domain"
	"github.com/jonesrussell/gorecipe/internal/textnorm"
)

// Fragment-continuation thresholds. Some sources emit one ingredient per
// comma-separated fragment; anything this short or shapeless belongs to
// the previous entry.
const minStandaloneFragmentLen = 4

var (
	numericPunctRe = regexp.MustCompile(`^[\d\s\p{P}½⅓⅔¼¾⅕⅖⅗⅘⅙⅚⅛⅜⅝⅞]+$`)
	leadingWordRe  = regexp.MustCompile(`^[A-Za-z]+`)
	sectionLineRe  = regexp.MustCompile(`(?i)^\s*(?:\[[^\]]+\]|for (?:the )?[^:]+:)\s*$`)
)

// RejoinFragments repairs ingredient lists that were incorrectly split on
// commas inside markup. A fragment continues the previous entry when it
// is very short, purely numeric or punctuation, starts with a closing
// parenthesis, starts with a bare measurement unit with no preceding
// quantity, or when parenthesis depth is still open from the previous
// fragment. Exact duplicates are then removed, with the dedup set
// resetting at every section header so repeated ingredients across
// sections survive.
func RejoinFragments(fragments []string) []string {
	joined := joinContinuations(fragments)
	return dedupeBySection(joined)
}

// joinContinuations merges continuation fragments back onto their
// predecessor with a comma.
func joinContinuations(fragments []string) []string {
	var out []string
	depthOpen := false

	for _, fragment := range fragments {
		fragment = strings.TrimSpace(fragment)
		if fragment == "" {
			continue
		}

		// Section headers always stand alone, even when short enough to
		// look like a continuation. Gluing one onto the previous entry
		// would break the per-section dedup reset downstream.
		if sectionLineRe.MatchString(fragment) {
			out = append(out, fragment)
			depthOpen = false
			continue
		}

		if len(out) > 0 && (depthOpen || isContinuation(fragment)) {
			out[len(out)-1] += ", " + fragment
			depthOpen = parenDepthOpen(out[len(out)-1])
			continue
		}

		out = append(out, fragment)
		depthOpen = parenDepthOpen(fragment)
	}

	return out
}

// isContinuation reports whether the fragment cannot stand alone as an
// ingredient line.
func isContinuation(fragment string) bool {
	if len(fragment) < minStandaloneFragmentLen {
		return true
	}
	if numericPunctRe.MatchString(fragment) {
		return true
	}
	if strings.HasPrefix(fragment, ")") {
		return true
	}
	return startsWithBareUnit(fragment)
}

// startsWithBareUnit reports whether the fragment opens with a
// measurement unit that has no quantity in front of it, e.g. the "cup
// flour" half of a "2 (1" / "cup flour" bad split.
func startsWithBareUnit(fragment string) bool {
	word := leadingWordRe.FindString(fragment)
	return word != "" && textnorm.IsUnit(word)
}

// parenDepthOpen reports whether the text ends with more "(" than ")".
func parenDepthOpen(text string) bool {
	depth := 0
	for _, r := range text {
		switch r {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		}
	}
	return depth > 0
}

// dedupeBySection drops exact duplicates (case and whitespace folded)
// within each section. A section header line resets the seen set.
func dedupeBySection(lines []string) []string {
	seen := make(map[string]bool)
	out := make([]string, 0, len(lines))

	for _, line := range lines {
		if sectionLineRe.MatchString(line) {
			seen = make(map[string]bool)
			out = append(out, line)
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
