// Package domain defines the core types shared across the import pipeline.
package domain

import "strings"

// Strategy identifies which extraction strategy produced a result.
// Higher tiers are stronger evidence; confidence seeding depends on it.
type Strategy string

// Extraction strategy tiers, strongest first.
const (
	StrategyStructuredData Strategy = "structured_data"
	StrategyPluginMarkup   Strategy = "plugin_markup"
	StrategyMicrodata      Strategy = "microdata"
	StrategyHeadingWalk    Strategy = "heading_walk"
	StrategyListSniff      Strategy = "list_sniff"
	StrategyFreeText       Strategy = "free_text"
	StrategyVideo          Strategy = "video"
)

// Rank returns the strength ordering of the strategy: lower is stronger.
func (s Strategy) Rank() int {
	switch s {
	case StrategyStructuredData:
		return 0
	case StrategyPluginMarkup:
		return 1
	case StrategyMicrodata:
		return 2
	case StrategyHeadingWalk:
		return 3
	case StrategyListSniff:
		return 4
	case StrategyFreeText:
		return 5
	case StrategyVideo:
		return 3
	default:
		return 6
	}
}

// RawIngredientLine is one untouched ingredient line from the source,
// plus the section label it was found under, if any.
type RawIngredientLine struct {
	Text    string  `json:"text"`
	Section *string `json:"section,omitempty"`
}

// RawLines pairs raw ingredient text with the section each line sits
// under. Bracketed marker lines set the current section and are not
// emitted as entries themselves.
func RawLines(lines []string) []RawIngredientLine {
	var out []RawIngredientLine
	var section *string

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
			label := strings.TrimSpace(trimmed[1 : len(trimmed)-1])
			section = &label
			continue
		}
		out = append(out, RawIngredientLine{Text: trimmed, Section: section})
	}

	return out
}

// ParsedIngredient is the structured form of one ingredient line.
// Empty strings mean the field is absent. Name may be empty only when the
// line was itself a pure section marker.
type ParsedIngredient struct {
	Name         string `json:"name"`
	Amount       string `json:"amount,omitempty"`
	Unit         string `json:"unit,omitempty"`
	Preparation  string `json:"preparation,omitempty"`
	Section      string `json:"section,omitempty"`
	BakerPercent string `json:"baker_percent,omitempty"`
	Optional     bool   `json:"optional,omitempty"`
}

// IsSectionMarker reports whether the entry carries only a section label.
func (p *ParsedIngredient) IsSectionMarker() bool {
	return p.Name == "" && p.Section != ""
}

// IsEmpty reports whether nothing at all was parsed from the line.
func (p *ParsedIngredient) IsEmpty() bool {
	return p.Name == "" && p.Amount == "" && p.Section == "" && p.Preparation == ""
}

// Chapter is a video chapter derived from a description timestamp line.
type Chapter struct {
	Title string `json:"title"`
	Start int    `json:"start_offset_seconds"`
}

// TranscriptSegment is one caption segment with its start offset.
type TranscriptSegment struct {
	Text  string `json:"text"`
	Start int    `json:"start_offset_seconds"`
}

// ClassificationResult is the classifier output. DetectedCourses and
// DetectedCuisines carry every plausible match for reviewer suggestions,
// not just the winning guess.
type ClassificationResult struct {
	Course           string   `json:"course"`
	Cuisine          string   `json:"cuisine,omitempty"`
	Subcategory      string   `json:"subcategory,omitempty"`
	DetectedCourses  []string `json:"detected_courses,omitempty"`
	DetectedCuisines []string `json:"detected_cuisines,omitempty"`
	Confidence       float64  `json:"confidence"`
}

// FieldConfidence holds one 0-1 score per semantic output field.
// A field with no value always scores 0.0.
type FieldConfidence struct {
	Name        float64 `json:"name"`
	Course      float64 `json:"course"`
	Cuisine     float64 `json:"cuisine"`
	Ingredients float64 `json:"ingredients"`
	Directions  float64 `json:"directions"`
	Serves      float64 `json:"serves"`
	Time        float64 `json:"time"`
}

// ImportResult is the externally visible artifact of one import.
// Raw ingredient and direction strings are kept for audit alongside the
// parsed forms.
type ImportResult struct {
	SourceURL   string `json:"source_url"`
	Name        string `json:"name,omitempty"`
	Course      string `json:"course,omitempty"`
	Cuisine     string `json:"cuisine,omitempty"`
	Subcategory string `json:"subcategory,omitempty"`
	Serves      string `json:"serves,omitempty"`
	Time        string `json:"time,omitempty"`

	Ingredients []ParsedIngredient `json:"ingredients,omitempty"`
	Directions  []string           `json:"directions,omitempty"`
	Notes       string             `json:"notes,omitempty"`
	ImageURLs   []string           `json:"image_urls,omitempty"`

	// Drink-specific fields.
	Equipment []string `json:"equipment,omitempty"`
	Glass     string   `json:"glass,omitempty"`
	Garnish   []string `json:"garnish,omitempty"`

	Nutrition map[string]string `json:"nutrition,omitempty"`

	RawIngredients []RawIngredientLine `json:"raw_ingredients,omitempty"`
	RawDirections  []string            `json:"raw_directions,omitempty"`

	DetectedCourses  []string `json:"detected_courses,omitempty"`
	DetectedCuisines []string `json:"detected_cuisines,omitempty"`

	Strategy   Strategy        `json:"strategy"`
	Confidence FieldConfidence `json:"confidence"`
}

// HasUsableContent reports whether the result carries at least one
// ingredient or direction. Results without either are not worth keeping.
func (r *ImportResult) HasUsableContent() bool {
	return r != nil && (len(r.Ingredients) > 0 || len(r.Directions) > 0)
}

// Recipe is the legacy conversion target for callers that do not need
// per-field confidence.
type Recipe struct {
	Name        string             `json:"name"`
	Course      string             `json:"course"`
	Cuisine     string             `json:"cuisine,omitempty"`
	Serves      string             `json:"serves,omitempty"`
	Time        string             `json:"time,omitempty"`
	Ingredients []ParsedIngredient `json:"ingredients"`
	Directions  []string           `json:"directions"`
	Notes       string             `json:"notes,omitempty"`
	ImageURL    string             `json:"image_url,omitempty"`
	SourceURL   string             `json:"source_url"`
}

// ToRecipe converts the import result to the legacy Recipe shape,
// discarding confidence and audit fields.
func (r *ImportResult) ToRecipe() Recipe {
	recipe := Recipe{
		Name:        r.Name,
		Course:      r.Course,
		Cuisine:     r.Cuisine,
		Serves:      r.Serves,
		Time:        r.Time,
		Ingredients: r.Ingredients,
		Directions:  r.Directions,
		Notes:       r.Notes,
		SourceURL:   r.SourceURL,
	}

	if len(r.ImageURLs) > 0 {
		recipe.ImageURL = r.ImageURLs[0]
	}

	if recipe.Notes == "" && r.Glass != "" {
		recipe.Notes = "Glass: " + r.Glass
	}

	return recipe
}

// NormalizeKey lowercases and collapses whitespace, used wherever entries
// are deduplicated by text.
func NormalizeKey(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
