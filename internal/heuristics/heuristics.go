// Package heuristics extracts recipe fields from arbitrary HTML when no
// structured data is present. Extraction is an ordered cascade of tiers;
// each tier runs only when every stronger tier produced zero ingredient
// lines, and the winning tier is recorded so confidence scoring can
// weight the evidence.
package heuristics

import (
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonesrussell/gorecipe/internal/domain"
	"github.com/jonesrussell/gorecipe/internal/ingredient"
	"github.com/jonesrussell/gorecipe/internal/jsonld"
	"github.com/jonesrussell/gorecipe/internal/logger"
)

// Stats records which patterns were present on the page, for diagnostics
// when nothing was extracted.
type Stats struct {
	HadPluginMarkup bool
	HadMicrodata    bool
	HadHeadings     bool
	WinningTier     string
}

// ingredientTier is one step of the cascade: run returns raw ingredient
// lines, possibly interleaved with "[Section]" marker lines.
type ingredientTier struct {
	name     string
	strategy domain.Strategy
	run      func(doc *goquery.Document) []string
}

// Extractor runs the heuristic cascade over a parsed document.
type Extractor struct {
	log logger.Interface
}

// New builds a heuristic extractor.
func New(log logger.Interface) *Extractor {
	if log == nil {
		log = logger.NewNoOp()
	}
	return &Extractor{log: log}
}

// Extract runs the cascade and assembles an import result. Returns nil
// when every tier yields zero ingredients and zero directions.
func (e *Extractor) Extract(doc *goquery.Document, sourceURL string) (*domain.ImportResult, Stats) {
	stats := Stats{
		HadPluginMarkup: hasPluginMarkup(doc),
		HadMicrodata:    hasMicrodata(doc),
		HadHeadings:     hasIngredientHeading(doc),
	}

	tiers := []ingredientTier{
		{"plugin_markup", domain.StrategyPluginMarkup, e.pluginIngredients},
		{"microdata", domain.StrategyMicrodata, e.microdataIngredients},
		{"heading_walk", domain.StrategyHeadingWalk, e.headingIngredients},
		{"list_sniff", domain.StrategyListSniff, e.sniffIngredients},
		{"free_text", domain.StrategyFreeText, e.freeTextIngredients},
	}
	// Strongest evidence first, keyed off the strategy ranking rather
	// than table order.
	sort.SliceStable(tiers, func(a, b int) bool {
		return tiers[a].strategy.Rank() < tiers[b].strategy.Rank()
	})

	var (
		rawLines []string
		strategy domain.Strategy
	)
	for _, tier := range tiers {
		lines := tier.run(doc)
		if len(lines) == 0 {
			continue
		}
		rawLines = lines
		strategy = tier.strategy
		stats.WinningTier = tier.name
		e.log.Debug("ingredient tier matched",
			"tier", tier.name, "lines", len(lines), "url", sourceURL)
		break
	}

	directions := e.extractDirections(doc)

	if len(rawLines) == 0 && len(directions) == 0 {
		return nil, stats
	}
	if strategy == "" {
		strategy = domain.StrategyFreeText
	}

	rawLines = jsonld.RejoinFragments(rawLines)

	result := &domain.ImportResult{
		SourceURL:      sourceURL,
		Strategy:       strategy,
		Name:           e.extractName(doc),
		Serves:         e.extractYield(doc),
		Time:           e.extractTime(doc),
		ImageURLs:      e.extractImages(doc),
		RawIngredients: domain.RawLines(rawLines),
		Ingredients:    ingredient.ParseAll(rawLines),
		RawDirections:  directions,
		Directions:     directions,
	}

	// Drink sub-extraction runs independently of the cascade and may
	// supplement a stronger tier's result.
	e.extractDrinkFields(doc, result)
	result.Equipment = e.extractEquipment(doc)

	return result, stats
}

// IngredientLines runs only the ingredient tier cascade and returns the
// winning tier's raw lines, section markers included. Callers holding a
// structured-data result use this to re-derive section structure the
// linked-data export lost.
func (e *Extractor) IngredientLines(doc *goquery.Document) []string {
	tiers := []func(*goquery.Document) []string{
		e.pluginIngredients,
		e.microdataIngredients,
		e.headingIngredients,
	}
	for _, tier := range tiers {
		if lines := tier(doc); len(lines) > 0 {
			return jsonld.RejoinFragments(lines)
		}
	}
	return nil
}

// Category returns the page's explicit category hint, when one exists in
// meta tags or plugin markup.
func (e *Extractor) Category(doc *goquery.Document) string {
	if val, ok := doc.Find(`meta[property="article:section"]`).Attr("content"); ok {
		return strings.TrimSpace(val)
	}
	return firstText(doc, ".wprm-recipe-course, .tasty-recipes-category, [itemprop=recipeCategory]")
}

// HasSectionHeadings reports whether the page carries ingredient-group
// headings. Structured data commonly loses section structure, so callers
// re-derive the ingredient list from HTML when this is true.
func HasSectionHeadings(doc *goquery.Document) bool {
	if doc.Find(".wprm-recipe-ingredient-group .wprm-recipe-group-name").Length() > 0 {
		return true
	}
	if doc.Find(".tasty-recipes-ingredients h4, .tasty-recipes-ingredients strong[data-tr-ingredient-header]").Length() > 0 {
		return true
	}
	return headingWalkHasSections(doc)
}

// extractName prefers the recipe card title, then og:title, then h1.
func (e *Extractor) extractName(doc *goquery.Document) string {
	if name := firstText(doc, ".wprm-recipe-name, .tasty-recipes-title, [itemprop=name]"); name != "" {
		return name
	}
	if val, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok {
		if cleaned := strings.TrimSpace(val); cleaned != "" {
			return cleaned
		}
	}
	return firstText(doc, "h1")
}

// extractImages collects the og:image plus any recipe-card image.
func (e *Extractor) extractImages(doc *goquery.Document) []string {
	var urls []string
	seen := make(map[string]bool)

	add := func(url string) {
		url = strings.TrimSpace(url)
		if url != "" && !seen[url] {
			seen[url] = true
			urls = append(urls, url)
		}
	}

	if val, ok := doc.Find(`meta[property="og:image"]`).Attr("content"); ok {
		add(val)
	}
	doc.Find(".wprm-recipe-image img, [itemprop=image]").Each(func(_ int, s *goquery.Selection) {
		if src, ok := s.Attr("src"); ok {
			add(src)
		} else if content, hasContent := s.Attr("content"); hasContent {
			add(content)
		}
	})

	return urls
}

// firstText returns the trimmed text of the first match among
// comma-separated selectors.
func firstText(doc *goquery.Document, selectors string) string {
	for _, sel := range strings.Split(selectors, ",") {
		sel = strings.TrimSpace(sel)
		if sel == "" {
			continue
		}
		if text := strings.TrimSpace(doc.Find(sel).First().Text()); text != "" {
			return text
		}
	}
	return ""
}

// cleanLine collapses whitespace inside one extracted line.
func cleanLine(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// collectListItems returns the cleaned text of each li under a selection.
func collectListItems(s *goquery.Selection) []string {
	var items []string
	s.Find("li").Each(func(_ int, li *goquery.Selection) {
		if text := cleanLine(li.Text()); text != "" {
			items = append(items, text)
		}
	})
	return items
}
