package classify

import (
	"strings"

	"github.com/jonesrussell/gorecipe/internal/domain"
	"github.com/jonesrussell/gorecipe/internal/ingredient"
)

// DetectSpirit returns the canonical display name of the recipe's base
// spirit. When several ingredients match the taxonomy, the largest pour
// wins; equal or missing amounts fall back to recipe order. Returns ""
// when no spirit is present.
func DetectSpirit(ingredients []domain.ParsedIngredient) string {
	best := ""
	bestScore := -1.0

	for _, ing := range ingredients {
		lowered := strings.ToLower(ing.Name)
		for _, entry := range spiritTaxonomy {
			if !matchesAnyWord(lowered, entry.Keywords) {
				continue
			}
			if score := ingredient.ScoreAmount(ing.Amount, ing.Unit); score > bestScore {
				best = entry.Display
				bestScore = score
			}
			break
		}
	}

	return best
}

func matchesAnyWord(text string, keywords []string) bool {
	for _, kw := range keywords {
		if containsWord(text, kw) {
			return true
		}
	}
	return false
}

// containsWord matches a keyword on word boundaries so "rum" does not
// fire on "crumble".
func containsWord(text, keyword string) bool {
	idx := 0
	for {
		pos := strings.Index(text[idx:], keyword)
		if pos < 0 {
			return false
		}
		start := idx + pos
		end := start + len(keyword)
		beforeOK := start == 0 || !isLetter(text[start-1])
		afterOK := end == len(text) || !isLetter(text[end])
		if beforeOK && afterOK {
			return true
		}
		idx = start + 1
	}
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
