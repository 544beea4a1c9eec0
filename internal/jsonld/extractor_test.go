package jsonld_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/gorecipe/internal/domain"
	"github.com/jonesrussell/gorecipe/internal/jsonld"
)

const flatRecipeScript = `{
	"@context": "https://schema.org",
	"@type": "Recipe",
	"name": "Classic Pancakes",
	"image": "https://example.com/pancakes.jpg",
	"recipeYield": "4 servings",
	"totalTime": "PT1H30M",
	"recipeCategory": "Breakfast",
	"recipeCuisine": "American",
	"keywords": "pancakes, griddle",
	"recipeIngredient": ["2 cups flour", "1 tbsp sugar", "2 eggs"],
	"recipeInstructions": [
		{"@type": "HowToStep", "text": "Whisk the dry ingredients."},
		{"@type": "HowToStep", "text": "Fold in the eggs."}
	]
}`

const graphWrappedScript = `{
	"@context": "https://schema.org",
	"@graph": [
		{"@type": "WebSite", "name": "Example"},
		{"@type": ["Recipe", "NewsArticle"],
		 "name": "Graph Stew",
		 "recipeIngredient": ["1 lb beef"],
		 "recipeInstructions": "Brown the beef. Simmer until tender."}
	]
}`

func TestExtract_FlatRecipe(t *testing.T) {
	t.Parallel()

	extraction, stats := jsonld.Extract([]string{flatRecipeScript}, "https://example.com/pancakes")
	require.NotNil(t, extraction)
	assert.True(t, stats.RecipeFound)
	assert.Equal(t, 1, stats.BlocksParsed)

	result := extraction.Import
	assert.Equal(t, "Classic Pancakes", result.Name)
	assert.Equal(t, domain.StrategyStructuredData, result.Strategy)
	assert.Equal(t, []string{"https://example.com/pancakes.jpg"}, result.ImageURLs)
	assert.Equal(t, "4 servings", result.Serves)
	assert.Equal(t, "1 hour 30 minutes", result.Time)
	assert.Equal(t, "Breakfast", extraction.Category)
	assert.Equal(t, "American", extraction.Cuisine)

	require.Len(t, result.Ingredients, 3)
	assert.Equal(t, "flour", result.Ingredients[0].Name)
	assert.Equal(t, "2", result.Ingredients[0].Amount)
	assert.Equal(t, "cup", result.Ingredients[0].Unit)

	assert.Equal(t, []string{
		"Whisk the dry ingredients.",
		"Fold in the eggs.",
	}, result.Directions)
}

func TestExtract_GraphWrapper(t *testing.T) {
	t.Parallel()

	extraction, stats := jsonld.Extract([]string{graphWrappedScript}, "https://example.com/stew")
	require.NotNil(t, extraction)
	assert.True(t, stats.RecipeFound)
	assert.Equal(t, "Graph Stew", extraction.Import.Name)
	assert.Equal(t, []string{
		"Brown the beef.",
		"Simmer until tender.",
	}, extraction.Import.Directions)
}

func TestExtract_SkipsMalformedBlocks(t *testing.T) {
	t.Parallel()

	scripts := []string{`{"not valid json`, `{"@type": "Person"}`, flatRecipeScript}
	extraction, stats := jsonld.Extract(scripts, "https://example.com/r")
	require.NotNil(t, extraction)
	assert.Equal(t, 3, stats.BlocksSeen)
	assert.Equal(t, 2, stats.BlocksParsed)
	assert.Equal(t, "Classic Pancakes", extraction.Import.Name)
}

func TestExtract_NoRecipeNode(t *testing.T) {
	t.Parallel()

	extraction, stats := jsonld.Extract([]string{`{"@type": "Article"}`}, "https://example.com/a")
	assert.Nil(t, extraction)
	assert.False(t, stats.RecipeFound)
	assert.Equal(t, 1, stats.BlocksParsed)
}

func TestExtract_KeyAliases(t *testing.T) {
	t.Parallel()

	script := `{
		"@type": "Recipe",
		"name": "Alias Bread",
		"ingredients": ["3 cups flour"],
		"steps": ["Knead.", "Bake."]
	}`
	extraction, _ := jsonld.Extract([]string{script}, "https://example.com/b")
	require.NotNil(t, extraction)
	require.Len(t, extraction.Import.Ingredients, 1)
	assert.Equal(t, "flour", extraction.Import.Ingredients[0].Name)
	assert.Equal(t, []string{"Knead.", "Bake."}, extraction.Import.Directions)
}

func TestExtract_HowToSections(t *testing.T) {
	t.Parallel()

	script := `{
		"@type": "Recipe",
		"name": "Layer Cake",
		"recipeIngredient": ["1 cup sugar"],
		"recipeInstructions": [
			{"@type": "HowToSection", "name": "Cake",
			 "itemListElement": [{"@type": "HowToStep", "text": "Cream the butter."}]},
			{"@type": "HowToSection", "name": "Frosting",
			 "itemListElement": [{"@type": "HowToStep", "text": "Whip until stiff."}]}
		]
	}`
	extraction, _ := jsonld.Extract([]string{script}, "https://example.com/c")
	require.NotNil(t, extraction)
	assert.Equal(t, []string{
		"Cake:",
		"Cream the butter.",
		"Frosting:",
		"Whip until stiff.",
	}, extraction.Import.Directions)
}

func TestExtract_PrepPlusCookTime(t *testing.T) {
	t.Parallel()

	script := `{
		"@type": "Recipe",
		"name": "Timed",
		"prepTime": "PT20M",
		"cookTime": "PT40M",
		"recipeIngredient": ["1 egg"]
	}`
	extraction, _ := jsonld.Extract([]string{script}, "https://example.com/t")
	require.NotNil(t, extraction)
	assert.Equal(t, "1 hour", extraction.Import.Time)
}

func TestRejoinFragments(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "badly split parenthetical",
			in:   []string{"2 (1", "2)", "cup flour"},
			want: []string{"2 (1, 2), cup flour"},
		},
		{
			name: "standalone lines untouched",
			in:   []string{"2 cups flour", "1 tbsp sugar"},
			want: []string{"2 cups flour", "1 tbsp sugar"},
		},
		{
			name: "closing paren fragment",
			in:   []string{"1 cup butter (softened", ") plus extra"},
			want: []string{"1 cup butter (softened, ) plus extra"},
		},
		{
			name: "bare unit fragment continues",
			in:   []string{"2 generous", "cups heavy cream"},
			want: []string{"2 generous, cups heavy cream"},
		},
		{
			name: "duplicates collapse within one section",
			in:   []string{"2 eggs", "2 Eggs"},
			want: []string{"2 eggs"},
		},
		{
			name: "section header resets dedup",
			in:   []string{"[A]", "2 eggs", "[B]", "2 eggs"},
			want: []string{"[A]", "2 eggs", "[B]", "2 eggs"},
		},
		{
			name: "for-the header also resets",
			in:   []string{"For the cake:", "1 cup sugar", "For the glaze:", "1 cup sugar"},
			want: []string{"For the cake:", "1 cup sugar", "For the glaze:", "1 cup sugar"},
		},
		{
			name: "short section marker is never a continuation",
			in:   []string{"2 eggs", "[B]", "1 cup milk"},
			want: []string{"2 eggs", "[B]", "1 cup milk"},
		},
		{
			name: "section marker ends an open parenthetical",
			in:   []string{"1 cup butter (softened", "[Glaze]", "1 cup sugar"},
			want: []string{"1 cup butter (softened", "[Glaze]", "1 cup sugar"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, jsonld.RejoinFragments(tt.in))
		})
	}
}

func TestParseDuration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want time.Duration
		ok   bool
	}{
		{"PT1H30M", 90 * time.Minute, true},
		{"PT45M", 45 * time.Minute, true},
		{"P1DT2H", 26 * time.Hour, true},
		{"P1M", 30 * 24 * time.Hour, true},
		{"6 hours 20 minutes", 6*time.Hour + 20*time.Minute, true},
		{"90", 90 * time.Minute, true},
		{"P", 0, false},
		{"PT0M", 0, false},
		{"overnight", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, ok := jsonld.ParseDuration(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestFormatDuration(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "1 hour 30 minutes", jsonld.FormatDuration(90*time.Minute))
	assert.Equal(t, "45 minutes", jsonld.FormatDuration(45*time.Minute))
	assert.Equal(t, "2 hours", jsonld.FormatDuration(2*time.Hour))
	assert.Equal(t, "1 minute", jsonld.FormatDuration(time.Minute))
	assert.Equal(t, "", jsonld.FormatDuration(0))
}
