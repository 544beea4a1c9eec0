// Package confidence scores each output field of an import result on a
// 0-1 scale. Scores are a function of which extraction tier produced the
// field and, where applicable, how complete the extraction was. A field
// with no value always scores 0.0.
package confidence

import (
	"github.com/jonesrussell/gorecipe/internal/domain"
)

// Base score per extraction tier; weaker evidence seeds lower.
const (
	baseStructured = 0.95
	basePlugin     = 0.88
	baseMicrodata  = 0.82
	baseHeading    = 0.72
	baseVideo      = 0.68
	baseListSniff  = 0.55
	baseFreeText   = 0.35

	// Explicit category on a known cocktail domain is the strongest
	// course signal there is.
	courseCocktailCategory = 0.98
)

// Inputs carries the scoring context that is not on the result itself.
type Inputs struct {
	Classification domain.ClassificationResult

	// RawLineCount is the number of raw ingredient lines before
	// parsing; zero means unknown.
	RawLineCount int

	// ExplicitCategory reports whether the source carried a category
	// field, as opposed to the course being inferred.
	ExplicitCategory bool

	// CocktailDomain reports whether the source URL is on the known
	// cocktail-site list.
	CocktailDomain bool
}

// tierBase returns the seed score for an extraction strategy.
func tierBase(s domain.Strategy) float64 {
	switch s {
	case domain.StrategyStructuredData:
		return baseStructured
	case domain.StrategyPluginMarkup:
		return basePlugin
	case domain.StrategyMicrodata:
		return baseMicrodata
	case domain.StrategyHeadingWalk:
		return baseHeading
	case domain.StrategyVideo:
		return baseVideo
	case domain.StrategyListSniff:
		return baseListSniff
	case domain.StrategyFreeText:
		return baseFreeText
	default:
		return baseFreeText
	}
}

// Score computes per-field confidence for a populated import result.
func Score(result *domain.ImportResult, in Inputs) domain.FieldConfidence {
	base := tierBase(result.Strategy)
	fc := domain.FieldConfidence{}

	if result.Name != "" {
		fc.Name = base
	}

	fc.Course = courseConfidence(result, in)

	if result.Cuisine != "" {
		fc.Cuisine = in.Classification.Confidence
		if fc.Cuisine == 0 {
			fc.Cuisine = base
		}
	}

	fc.Ingredients = ingredientConfidence(result, in, base)

	if len(result.Directions) > 0 {
		fc.Directions = base
	}
	if result.Serves != "" {
		fc.Serves = base
	}
	if result.Time != "" {
		fc.Time = base
	}

	return fc
}

// courseConfidence starts from the classifier's own confidence and
// elevates it when an explicit category arrived from a cocktail domain.
func courseConfidence(result *domain.ImportResult, in Inputs) float64 {
	if result.Course == "" {
		return 0
	}
	if in.ExplicitCategory && in.CocktailDomain {
		return courseCocktailCategory
	}
	return in.Classification.Confidence
}

// ingredientConfidence multiplies the tier base by a completeness ratio:
// the fraction of raw lines that parsed, averaged with the fraction of
// parsed ingredients carrying an amount.
func ingredientConfidence(result *domain.ImportResult, in Inputs, base float64) float64 {
	if len(result.Ingredients) == 0 {
		return 0
	}

	parsedRatio := 1.0
	if in.RawLineCount > 0 {
		parsedRatio = float64(len(result.Ingredients)) / float64(in.RawLineCount)
		if parsedRatio > 1 {
			parsedRatio = 1
		}
	}

	withAmount := 0
	for i := range result.Ingredients {
		if result.Ingredients[i].Amount != "" {
			withAmount++
		}
	}
	amountRatio := float64(withAmount) / float64(len(result.Ingredients))

	return base * (parsedRatio + amountRatio) / 2
}
