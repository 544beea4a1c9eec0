// Package importer orchestrates one import request: fetch the source,
// pick a strategy (video pipeline or structured data with the HTML
// heuristic cascade behind it), classify, and score confidence.
// Strategies run strictly in sequence; a later tier only runs when the
// earlier one is known to have failed.
package importer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"

	"github.com/jonesrussell/gorecipe/internal/classify"
	"github.com/jonesrussell/gorecipe/internal/confidence"
	"github.com/jonesrussell/gorecipe/internal/domain"
	"github.com/jonesrussell/gorecipe/internal/fetcher"
	"github.com/jonesrussell/gorecipe/internal/heuristics"
	"github.com/jonesrussell/gorecipe/internal/ingredient"
	"github.com/jonesrussell/gorecipe/internal/jsonld"
	"github.com/jonesrussell/gorecipe/internal/logger"
	"github.com/jonesrussell/gorecipe/internal/metrics"
	"github.com/jonesrussell/gorecipe/internal/video"
)

// Fetcher is the page-retrieval collaborator.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*fetcher.Page, error)
}

// Importer runs the import pipeline.
type Importer struct {
	fetch      Fetcher
	heuristics *heuristics.Extractor
	videos     *video.Pipeline
	classifier *classify.Classifier
	metrics    *metrics.Metrics
	log        logger.Interface
}

// Option configures an Importer.
type Option func(*Importer)

// WithFetcher substitutes the page fetcher, used by tests.
func WithFetcher(f Fetcher) Option {
	return func(i *Importer) {
		i.fetch = f
	}
}

// WithVideoPipeline substitutes the video pipeline.
func WithVideoPipeline(p *video.Pipeline) Option {
	return func(i *Importer) {
		i.videos = p
	}
}

// WithMetrics attaches a metrics recorder.
func WithMetrics(m *metrics.Metrics) Option {
	return func(i *Importer) {
		i.metrics = m
	}
}

// New builds an importer with default collaborators.
func New(log logger.Interface, opts ...Option) *Importer {
	if log == nil {
		log = logger.NewNoOp()
	}

	i := &Importer{
		fetch:      fetcher.New(log),
		heuristics: heuristics.New(log),
		videos:     video.NewPipeline(nil, log),
		classifier: classify.New(log),
		log:        log,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Import runs one import end to end. Partial fields never fail the
// import; the only fatal conditions are an unfetchable URL and a page
// where every strategy yields zero ingredients and zero directions.
func (i *Importer) Import(ctx context.Context, rawURL string) (*domain.ImportResult, error) {
	importID := uuid.New().String()
	log := i.log.WithImportID(importID).WithURL(rawURL)
	start := time.Now()

	page, err := i.fetch.Fetch(ctx, rawURL)
	if err != nil {
		i.metrics.RecordImport("none", "fetch_error", time.Since(start))
		return nil, fmt.Errorf("fetch source: %w", err)
	}

	var result *domain.ImportResult
	if video.IsVideoURL(rawURL) {
		result, err = i.importVideo(ctx, page, rawURL, log)
	} else {
		result, err = i.importPage(page, rawURL, log)
	}
	if err != nil {
		i.metrics.RecordImport("none", "no_data", time.Since(start))
		return nil, err
	}

	i.metrics.RecordImport(string(result.Strategy), "ok", time.Since(start))
	i.metrics.RecordIngredients(len(result.Ingredients))
	log.WithStrategy(string(result.Strategy)).Info("import complete",
		"ingredients", len(result.Ingredients),
		"directions", len(result.Directions),
		"duration", time.Since(start).String())

	return result, nil
}

// importVideo runs the video pipeline over the fetched watch page.
func (i *Importer) importVideo(ctx context.Context, page *fetcher.Page, rawURL string, log logger.Interface) (*domain.ImportResult, error) {
	result, transcript := i.videos.Import(ctx, page.Body, rawURL)
	if result == nil {
		return nil, &NoDataError{URL: rawURL, Diag: Diagnostics{TranscriptTrail: transcript.Trail}}
	}
	if transcript.Method != "" {
		i.metrics.RecordTranscriptMethod(transcript.Method)
	}
	if transcript.Trail != "" {
		log.Debug("transcript attempts", "trail", transcript.Trail)
	}

	i.finish(result, classify.Input{
		Title:       result.Name,
		Description: result.Notes,
		SourceURL:   rawURL,
		Ingredients: result.Ingredients,
	}, false)
	return result, nil
}

// importPage tries structured data first and falls back to the HTML
// heuristic cascade.
func (i *Importer) importPage(page *fetcher.Page, rawURL string, log logger.Interface) (*domain.ImportResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page.Body))
	if err != nil {
		return nil, fmt.Errorf("parse document at %s: %w", rawURL, err)
	}

	extraction, jsonStats := jsonld.Extract(scriptBlocks(doc), rawURL)

	if extraction != nil && extraction.Import.HasUsableContent() {
		result := extraction.Import
		i.mergeHTMLSections(doc, result, log)
		i.finish(result, classify.Input{
			Title:       result.Name,
			Category:    extraction.Category,
			Cuisine:     extraction.Cuisine,
			Keywords:    extraction.Keywords,
			Description: extraction.Description,
			SourceURL:   rawURL,
			Ingredients: result.Ingredients,
		}, extraction.Category != "")
		return result, nil
	}

	result, htmlStats := i.heuristics.Extract(doc, rawURL)
	if result == nil || !result.HasUsableContent() {
		return nil, &NoDataError{URL: rawURL, Diag: Diagnostics{
			StructuredBlocksSeen:   jsonStats.BlocksSeen,
			StructuredBlocksParsed: jsonStats.BlocksParsed,
			StructuredRecipeFound:  jsonStats.RecipeFound,
			HadPluginMarkup:        htmlStats.HadPluginMarkup,
			HadMicrodata:           htmlStats.HadMicrodata,
			HadIngredientHeading:   htmlStats.HadHeadings,
		}}
	}

	category := i.heuristics.Category(doc)
	i.finish(result, classify.Input{
		Title:       result.Name,
		Category:    category,
		SourceURL:   rawURL,
		Ingredients: result.Ingredients,
	}, category != "")
	return result, nil
}

// mergeHTMLSections re-derives the ingredient list from HTML when the
// page has ingredient-group headings the structured data lost, keeping
// every non-ingredient field from the structured result. The merge is
// deliberately asymmetric; section structure is the only thing linked
// data reliably drops.
func (i *Importer) mergeHTMLSections(doc *goquery.Document, result *domain.ImportResult, log logger.Interface) {
	if hasSections(result.Ingredients) || !heuristics.HasSectionHeadings(doc) {
		return
	}

	lines := i.heuristics.IngredientLines(doc)
	parsed := ingredient.ParseAll(lines)
	if !hasSections(parsed) || len(parsed) == 0 {
		return
	}

	log.Debug("re-derived sectioned ingredients from html",
		"structured", len(result.Ingredients), "html", len(parsed))
	result.RawIngredients = domain.RawLines(lines)
	result.Ingredients = parsed
}

// finish applies classification and confidence to a populated result.
func (i *Importer) finish(result *domain.ImportResult, in classify.Input, explicitCategory bool) {
	classification := i.classifier.Classify(in)

	result.Course = classification.Course
	if result.Cuisine == "" {
		result.Cuisine = classification.Cuisine
	}
	result.Subcategory = classification.Subcategory
	result.DetectedCourses = classification.DetectedCourses
	result.DetectedCuisines = classification.DetectedCuisines

	result.Confidence = confidence.Score(result, confidence.Inputs{
		Classification:   classification,
		RawLineCount:     len(result.RawIngredients),
		ExplicitCategory: explicitCategory,
		CocktailDomain:   classify.IsCocktailDomain(result.SourceURL),
	})
}

// scriptBlocks collects ld+json script bodies in document order.
func scriptBlocks(doc *goquery.Document) []string {
	var scripts []string
	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); text != "" {
			scripts = append(scripts, text)
		}
	})
	return scripts
}

func hasSections(ingredients []domain.ParsedIngredient) bool {
	for i := range ingredients {
		if ingredients[i].Section != "" {
			return true
		}
	}
	return false
}
