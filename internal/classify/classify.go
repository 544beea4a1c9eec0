// Package classify assigns course, cuisine, and spirit labels to an
// extracted recipe. Keyword families are compiled once into Aho-Corasick
// automatons at construction and are safe for concurrent use.
package classify

import (
	"net/url"
	"sort"
	"strings"

	ahocorasick "github.com/cloudflare/ahocorasick"

	"github.com/jonesrussell/gorecipe/internal/domain"
	"github.com/jonesrussell/gorecipe/internal/logger"
)

// Course confidence by provenance: explicit signals score high, keyword
// inference decays, and the bare default is lowest.
const (
	confidenceCocktailSite = 0.95
	confidenceCategory     = 0.9
	confidenceKeyword      = 0.8
	confidenceTitleOnly    = 0.6
	confidenceDefault      = 0.3
)

// Input is everything the classifier may inspect for one recipe.
type Input struct {
	Title       string
	Category    string
	Cuisine     string
	Keywords    string
	Description string
	SourceURL   string

	// Parsed ingredients, in recipe order. Used for spirit detection
	// (amounts pick the base spirit) and the detect-all pass.
	Ingredients []domain.ParsedIngredient
}

// ingredientNames extracts the non-empty names for text matching.
func ingredientNames(ingredients []domain.ParsedIngredient) []string {
	names := make([]string, 0, len(ingredients))
	for _, ing := range ingredients {
		if ing.Name != "" {
			names = append(names, ing.Name)
		}
	}
	return names
}

// courseRule is one precedence step: Apply returns the course and its
// confidence when the rule fires. Rules run in order; first hit wins.
type courseRule struct {
	name  string
	apply func(in Input) (string, float64, bool)
}

// Classifier holds the compiled keyword automatons.
type Classifier struct {
	rules []courseRule

	detectKeywords []string
	detectCourses  []string
	detectMatcher  *ahocorasick.Matcher

	cuisineKeywords []string
	cuisineMatcher  *ahocorasick.Matcher

	log logger.Interface
}

// New builds a classifier from the static taxonomy tables.
func New(log logger.Interface) *Classifier {
	if log == nil {
		log = logger.NewNoOp()
	}

	c := &Classifier{log: log}
	c.rules = []courseRule{
		{"cocktail_site", c.matchCocktailSite},
		{"drink_keywords", c.matchDrinkKeywords},
		{"modernist", c.matchModernist},
		{"category_table", c.matchCategoryTable},
		{"title_fallback", c.matchTitleFallback},
		{"vegetarian_category", c.matchVegetarianCategory},
	}
	c.buildDetectMatcher()
	c.buildCuisineMatcher()
	return c
}

// Classify runs the precedence rules and the parallel detect-all pass.
func (c *Classifier) Classify(in Input) domain.ClassificationResult {
	result := domain.ClassificationResult{
		Course:     CourseMains,
		Confidence: confidenceDefault,
	}

	for _, rule := range c.rules {
		course, confidence, ok := rule.apply(in)
		if !ok {
			continue
		}
		result.Course = course
		result.Confidence = confidence
		c.log.Debug("course classified",
			"rule", rule.name, "course", course, "url", in.SourceURL)
		break
	}

	result.Cuisine = c.DetectCuisine(in.Cuisine)
	result.DetectedCuisines = c.detectCuisines(in)
	if result.Cuisine == "" && len(result.DetectedCuisines) == 1 {
		result.Cuisine = result.DetectedCuisines[0]
	}

	if result.Course == CourseDrinks {
		result.Subcategory = DetectSpirit(in.Ingredients)
	}

	result.DetectedCourses = c.detectAllCourses(in)
	return result
}

func (c *Classifier) matchCocktailSite(in Input) (string, float64, bool) {
	if IsCocktailDomain(in.SourceURL) {
		return CourseDrinks, confidenceCocktailSite, true
	}
	return "", 0, false
}

// IsCocktailDomain reports whether the URL's host is on the cocktail-site
// allow-list.
func IsCocktailDomain(rawURL string) bool {
	host := hostOf(rawURL)
	if host == "" {
		return false
	}
	for _, site := range cocktailSites {
		if host == site || strings.HasSuffix(host, "."+site) {
			return true
		}
	}
	return false
}

func (c *Classifier) matchDrinkKeywords(in Input) (string, float64, bool) {
	text := strings.ToLower(strings.Join([]string{
		in.Category, in.Keywords, in.Title, in.Description,
	}, " "))
	for _, kw := range drinkKeywords {
		if strings.Contains(text, kw) {
			return CourseDrinks, confidenceKeyword, true
		}
	}
	return "", 0, false
}

func (c *Classifier) matchModernist(in Input) (string, float64, bool) {
	text := strings.ToLower(strings.Join([]string{
		in.Category, in.Keywords, in.Title, in.Description, urlTokens(in.SourceURL),
	}, " "))
	for _, kw := range modernistKeywords {
		if strings.Contains(text, kw) {
			return CourseModernist, confidenceKeyword, true
		}
	}
	return "", 0, false
}

func (c *Classifier) matchCategoryTable(in Input) (string, float64, bool) {
	category := strings.ToLower(in.Category)
	if category == "" {
		return "", 0, false
	}
	for _, row := range categoryKeywords {
		for _, kw := range row.Keywords {
			if strings.Contains(category, kw) {
				return row.Course, confidenceCategory, true
			}
		}
	}
	return "", 0, false
}

func (c *Classifier) matchTitleFallback(in Input) (string, float64, bool) {
	title := strings.ToLower(in.Title)
	if title == "" {
		return "", 0, false
	}
	for _, row := range titleKeywords {
		for _, kw := range row.Keywords {
			if strings.Contains(title, kw) {
				return row.Course, confidenceTitleOnly, true
			}
		}
	}
	return "", 0, false
}

// matchVegetarianCategory fires on an explicit vegetarian/vegan category
// value only, never on keyword text.
func (c *Classifier) matchVegetarianCategory(in Input) (string, float64, bool) {
	category := strings.ToLower(in.Category)
	if category == "" {
		return "", 0, false
	}
	for _, kw := range vegetarianCategories {
		if strings.Contains(category, kw) {
			return CourseVegn, confidenceCategory, true
		}
	}
	return "", 0, false
}

// buildDetectMatcher compiles every course keyword family into one
// automaton, keyword index to course.
func (c *Classifier) buildDetectMatcher() {
	add := func(course string, keywords []string) {
		for _, kw := range keywords {
			c.detectKeywords = append(c.detectKeywords, kw)
			c.detectCourses = append(c.detectCourses, course)
		}
	}

	add(CourseDrinks, drinkKeywords)
	add(CourseModernist, modernistKeywords)
	add(CourseSmoking, smokingKeywords)
	for _, row := range categoryKeywords {
		add(row.Course, row.Keywords)
	}

	c.detectMatcher = ahocorasick.NewStringMatcher(c.detectKeywords)
}

// detectAllCourses returns every course whose keywords matched anywhere
// in the candidate text, sorted for deterministic output. It is a
// reviewer aid, independent of the winning rule.
func (c *Classifier) detectAllCourses(in Input) []string {
	text := strings.ToLower(strings.Join(append([]string{
		in.Title, in.Category, in.Keywords, in.Description,
	}, ingredientNames(in.Ingredients)...), " "))

	hits := c.detectMatcher.Match([]byte(text))
	if len(hits) == 0 {
		return nil
	}

	seen := make(map[string]bool)
	for _, hit := range hits {
		if hit < len(c.detectCourses) {
			seen[c.detectCourses[hit]] = true
		}
	}

	courses := make([]string, 0, len(seen))
	for course := range seen {
		courses = append(courses, course)
	}
	sort.Strings(courses)
	return courses
}

// buildCuisineMatcher compiles the cuisine adjectives for the detect
// pass over full text.
func (c *Classifier) buildCuisineMatcher() {
	c.cuisineKeywords = make([]string, 0, len(cuisineRegions))
	for adjective := range cuisineRegions {
		c.cuisineKeywords = append(c.cuisineKeywords, adjective)
	}
	sort.Strings(c.cuisineKeywords)
	c.cuisineMatcher = ahocorasick.NewStringMatcher(c.cuisineKeywords)
}

// detectCuisines scans title and keywords for regional adjectives.
func (c *Classifier) detectCuisines(in Input) []string {
	text := strings.ToLower(in.Title + " " + in.Keywords + " " + in.Description)

	hits := c.cuisineMatcher.Match([]byte(text))
	if len(hits) == 0 {
		return nil
	}

	seen := make(map[string]bool)
	for _, hit := range hits {
		if hit < len(c.cuisineKeywords) {
			seen[cuisineRegions[c.cuisineKeywords[hit]]] = true
		}
	}

	cuisines := make([]string, 0, len(seen))
	for cuisine := range seen {
		cuisines = append(cuisines, cuisine)
	}
	sort.Strings(cuisines)
	return cuisines
}

// hostOf extracts the registrable host from a URL, dropping "www.".
func hostOf(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(u.Host), "www.")
}

// urlTokens renders a URL path as space-separated lowercase words.
func urlTokens(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(strings.NewReplacer("/", " ", "-", " ", "_", " ").Replace(u.Path))
}
