package jsonld

import (
	"strings"

	"github.com/jonesrussell/gorecipe/internal/domain"
	"github.com/jonesrussell/gorecipe/internal/ingredient"
)

// Stats records what the walker saw, for diagnostics when an import
// yields nothing.
type Stats struct {
	BlocksSeen   int
	BlocksParsed int
	RecipeFound  bool
}

// Extraction is the structured-data extraction output. Category,
// Keywords, and Description are kept alongside the import result so the
// classifier can inspect them without re-walking the graph.
type Extraction struct {
	Import      *domain.ImportResult
	Category    string
	Cuisine     string
	Keywords    string
	Description string
}

// Extract walks every linked-data script block on the page and builds an
// import result from the first Recipe node found, depth-first,
// left-to-right. Returns a nil Extraction when no block yields one.
func Extract(scripts []string, sourceURL string) (*Extraction, Stats) {
	stats := Stats{BlocksSeen: len(scripts)}

	for _, script := range scripts {
		value, err := Parse([]byte(script))
		if err != nil {
			continue
		}
		stats.BlocksParsed++

		node, ok := findRecipeNode(value)
		if !ok {
			continue
		}
		stats.RecipeFound = true

		return extractNode(node, sourceURL), stats
	}

	return nil, stats
}

// findRecipeNode searches a decoded payload for the first node typed
// "Recipe". A payload may be the node itself, a @graph wrapper, or a
// plain array; each is searched depth-first.
func findRecipeNode(value Value) (Value, bool) {
	if _, ok := value.Object(); ok {
		if value.TypeMatches("Recipe") {
			return value, true
		}
		if graph := value.Key("@graph"); !graph.IsNull() {
			return findRecipeNode(graph)
		}
		if entity := value.Key("mainEntity"); !entity.IsNull() {
			return findRecipeNode(entity)
		}
		return Value{}, false
	}

	if arr, ok := value.Array(); ok {
		for _, item := range arr {
			if node, found := findRecipeNode(item); found {
				return node, true
			}
		}
	}

	return Value{}, false
}

// extractNode pulls every recognized field off a Recipe node.
func extractNode(node Value, sourceURL string) *Extraction {
	result := &domain.ImportResult{
		SourceURL: sourceURL,
		Strategy:  domain.StrategyStructuredData,
	}

	result.Name = node.Key("name").Text()
	result.ImageURLs = node.Key("image").Strings()
	result.Serves = firstText(node.FirstKey("recipeYield", "yield"))
	result.Time = extractTime(node)
	result.Nutrition = extractNutrition(node.Key("nutrition"))

	rawLines := node.FirstKey("recipeIngredient", "ingredients").Strings()
	rejoined := RejoinFragments(rawLines)
	result.RawIngredients = domain.RawLines(rejoined)
	result.Ingredients = ingredient.ParseAll(rejoined)

	result.RawDirections = extractDirections(node)
	result.Directions = result.RawDirections

	return &Extraction{
		Import:      result,
		Category:    firstText(node.Key("recipeCategory")),
		Cuisine:     firstText(node.Key("recipeCuisine")),
		Keywords:    strings.Join(node.Key("keywords").Strings(), ", "),
		Description: node.Key("description").Text(),
	}
}

// extractTime prefers totalTime, falling back to prepTime + cookTime.
// The result is rendered as display text ("1 hour 30 minutes").
func extractTime(node Value) string {
	if total, ok := ParseDuration(node.Key("totalTime").Text()); ok {
		return FormatDuration(total)
	}

	prep, _ := ParseDuration(node.Key("prepTime").Text())
	cook, _ := ParseDuration(node.Key("cookTime").Text())
	if prep+cook > 0 {
		return FormatDuration(prep + cook)
	}
	return ""
}

// extractDirections handles every instruction shape seen in the wild:
// a single string, a list of strings, or a list of HowToStep-style
// objects carrying "text" or "name". HowToSection wrappers are flattened
// one level.
func extractDirections(node Value) []string {
	instr := node.FirstKey("recipeInstructions", "instructions", "steps")
	if instr.IsNull() {
		return nil
	}

	if text, ok := instr.String(); ok {
		return splitDirectionText(text)
	}

	arr, ok := instr.Array()
	if !ok {
		return nil
	}

	var out []string
	for _, item := range arr {
		if item.TypeMatches("HowToSection") {
			out = append(out, extractSectionSteps(item)...)
			continue
		}
		if text := item.textish(); text != "" {
			out = append(out, strings.TrimSpace(text))
		}
	}
	return out
}

// extractSectionSteps flattens a HowToSection's itemListElement,
// prefixing the section name as its own entry when present.
func extractSectionSteps(section Value) []string {
	var out []string
	if name := section.Key("name").Text(); name != "" {
		out = append(out, name+":")
	}
	steps, ok := section.Key("itemListElement").Array()
	if !ok {
		return out
	}
	for _, step := range steps {
		if text := step.textish(); text != "" {
			out = append(out, strings.TrimSpace(text))
		}
	}
	return out
}

// splitDirectionText breaks a single instruction blob into steps, on
// newlines when the blob has them, otherwise on sentence boundaries
// followed by a capital letter.
func splitDirectionText(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var pieces []string
	if strings.Contains(text, "\n") {
		pieces = strings.Split(text, "\n")
	} else {
		pieces = splitSentences(text)
	}

	out := make([]string, 0, len(pieces))
	for _, piece := range pieces {
		piece = strings.TrimSpace(piece)
		if piece != "" {
			out = append(out, piece)
		}
	}
	return out
}

// splitSentences splits on ". " boundaries that precede a capital
// letter, keeping the period with the sentence it ends.
func splitSentences(text string) []string {
	var out []string
	for {
		loc := findSentenceBoundary(text)
		if loc < 0 {
			out = append(out, text)
			return out
		}
		out = append(out, text[:loc+1])
		text = strings.TrimSpace(text[loc+1:])
	}
}

// findSentenceBoundary returns the index of the first period followed by
// whitespace and a capital letter, or -1.
func findSentenceBoundary(text string) int {
	for i := 0; i+2 < len(text); i++ {
		if text[i] != '.' {
			continue
		}
		j := i + 1
		for j < len(text) && (text[j] == ' ' || text[j] == '\t') {
			j++
		}
		if j > i+1 && j < len(text) && text[j] >= 'A' && text[j] <= 'Z' {
			return i
		}
	}
	return -1
}

// extractNutrition flattens a NutritionInformation object into a plain
// label-to-text map, dropping JSON-LD bookkeeping keys.
func extractNutrition(value Value) map[string]string {
	obj, ok := value.Object()
	if !ok {
		return nil
	}

	out := make(map[string]string)
	for key := range obj {
		if strings.HasPrefix(key, "@") {
			continue
		}
		if text := value.Key(key).Text(); text != "" {
			out[key] = text
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// firstText renders a scalar as text, or the first element of an array.
func firstText(value Value) string {
	if text := value.Text(); text != "" {
		return text
	}
	if items := value.Strings(); len(items) > 0 {
		return items[0]
	}
	return ""
}
