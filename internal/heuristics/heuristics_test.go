package heuristics_test

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/gorecipe/internal/domain"
	"github.com/jonesrussell/gorecipe/internal/heuristics"
)

func parseDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestExtract_PluginMarkup(t *testing.T) {
	t.Parallel()

	html := `<html><body>
		<h1>Best Brownies</h1>
		<div class="wprm-recipe">
			<div class="wprm-recipe-ingredients-container">
				<div class="wprm-recipe-group-name">Batter:</div>
				<li class="wprm-recipe-ingredient">2 cups sugar</li>
				<li class="wprm-recipe-ingredient">1 cup cocoa</li>
				<div class="wprm-recipe-group-name">Topping:</div>
				<li class="wprm-recipe-ingredient">1 cup walnuts</li>
			</div>
			<div class="wprm-recipe-servings">16 squares</div>
			<div class="wprm-recipe-total-time">45 minutes</div>
			<ul>
				<li class="wprm-recipe-instruction-text">Melt the butter.</li>
				<li class="wprm-recipe-instruction-text">Stir in the cocoa.</li>
			</ul>
		</div>
	</body></html>`

	e := heuristics.New(nil)
	result, stats := e.Extract(parseDoc(t, html), "https://example.com/brownies")
	require.NotNil(t, result)

	assert.Equal(t, domain.StrategyPluginMarkup, result.Strategy)
	assert.Equal(t, "plugin_markup", stats.WinningTier)
	assert.True(t, stats.HadPluginMarkup)
	assert.Equal(t, "16 squares", result.Serves)
	assert.Equal(t, "45 minutes", result.Time)
	assert.Equal(t, []string{"Melt the butter.", "Stir in the cocoa."}, result.Directions)

	require.Len(t, result.Ingredients, 3)
	assert.Equal(t, "Batter", result.Ingredients[0].Section)
	assert.Equal(t, "sugar", result.Ingredients[0].Name)
	assert.Equal(t, "Topping", result.Ingredients[2].Section)
	assert.Equal(t, "walnuts", result.Ingredients[2].Name)
}

func TestExtract_Microdata(t *testing.T) {
	t.Parallel()

	html := `<html><body>
		<div itemscope itemtype="https://schema.org/Recipe">
			<span itemprop="name">Simple Syrup</span>
			<meta itemprop="totalTime" content="PT10M">
			<span itemprop="recipeYield">1 cup</span>
			<li itemprop="recipeIngredient">1 cup sugar</li>
			<li itemprop="recipeIngredient">1 cup water</li>
			<div itemprop="recipeInstructions"><p>Combine and heat until dissolved.</p></div>
		</div>
	</body></html>`

	e := heuristics.New(nil)
	result, stats := e.Extract(parseDoc(t, html), "https://example.com/syrup")
	require.NotNil(t, result)

	assert.Equal(t, domain.StrategyMicrodata, result.Strategy)
	assert.True(t, stats.HadMicrodata)
	assert.Equal(t, "Simple Syrup", result.Name)
	assert.Equal(t, "10 minutes", result.Time)
	assert.Equal(t, "1 cup", result.Serves)
	require.Len(t, result.Ingredients, 2)
	assert.Equal(t, []string{"Combine and heat until dissolved."}, result.Directions)
}

func TestExtract_HeadingWalk(t *testing.T) {
	t.Parallel()

	html := `<html><body>
		<h1>Grandma's Stew</h1>
		<h2>Ingredients</h2>
		<h3>For the stew:</h3>
		<ul><li>2 lbs beef</li><li>4 cups stock</li></ul>
		<h3>For the dumplings:</h3>
		<ul><li>2 cups flour</li></ul>
		<h2>Directions</h2>
		<ol><li>Brown the beef in batches.</li><li>Simmer for two hours.</li></ol>
	</body></html>`

	e := heuristics.New(nil)
	result, stats := e.Extract(parseDoc(t, html), "https://example.com/stew")
	require.NotNil(t, result)

	assert.Equal(t, domain.StrategyHeadingWalk, result.Strategy)
	assert.True(t, stats.HadHeadings)

	require.Len(t, result.Ingredients, 3)
	assert.Equal(t, "For the stew", result.Ingredients[0].Section)
	assert.Equal(t, "For the dumplings", result.Ingredients[2].Section)
	assert.Equal(t, "flour", result.Ingredients[2].Name)

	assert.Equal(t, []string{
		"Brown the beef in batches.",
		"Simmer for two hours.",
	}, result.Directions)

	assert.True(t, heuristics.HasSectionHeadings(parseDoc(t, html)))
}

func TestExtract_ListSniff(t *testing.T) {
	t.Parallel()

	html := `<html><body>
		<h1>Untitled</h1>
		<ul><li>Home</li><li>About</li><li>Contact</li></ul>
		<ul><li>2 cups flour</li><li>1 tsp salt</li><li>chocolate chips</li></ul>
	</body></html>`

	e := heuristics.New(nil)
	result, stats := e.Extract(parseDoc(t, html), "https://example.com/mystery")
	require.NotNil(t, result)

	assert.Equal(t, domain.StrategyListSniff, result.Strategy)
	assert.Equal(t, "list_sniff", stats.WinningTier)
	require.Len(t, result.Ingredients, 3)
	assert.Equal(t, "flour", result.Ingredients[0].Name)
}

func TestExtract_FreeTextBullets(t *testing.T) {
	t.Parallel()

	html := `<html><body>
		<p>You will need • 2 cups flour • 1 tsp salt • a big bowl and patience</p>
	</body></html>`

	e := heuristics.New(nil)
	result, _ := e.Extract(parseDoc(t, html), "https://example.com/freetext")
	require.NotNil(t, result)

	assert.Equal(t, domain.StrategyFreeText, result.Strategy)
	require.Len(t, result.Ingredients, 2)
	assert.Equal(t, "flour", result.Ingredients[0].Name)
	assert.Equal(t, "salt", result.Ingredients[1].Name)
}

func TestExtract_NothingUsable(t *testing.T) {
	t.Parallel()

	html := `<html><body><h1>About Us</h1><p>We write about food.</p></body></html>`

	e := heuristics.New(nil)
	result, stats := e.Extract(parseDoc(t, html), "https://example.com/about")
	assert.Nil(t, result)
	assert.False(t, stats.HadPluginMarkup)
	assert.False(t, stats.HadMicrodata)
	assert.False(t, stats.HadHeadings)
}

func TestExtract_DirectionJunkFilter(t *testing.T) {
	t.Parallel()

	html := `<html><body>
		<h2>Ingredients</h2>
		<ul><li>2 cups flour</li><li>1 cup milk</li></ul>
		<h2>Directions</h2>
		<ul>
			<li>Step 1:</li>
			<li>By Jane Doe</li>
			<li>Print</li>
			<li>Mix the flour and milk.</li>
			<li>Mix the flour and milk.</li>
			<li>Bake until golden.</li>
		</ul>
	</body></html>`

	e := heuristics.New(nil)
	result, _ := e.Extract(parseDoc(t, html), "https://example.com/junk")
	require.NotNil(t, result)

	assert.Equal(t, []string{
		"Mix the flour and milk.",
		"Bake until golden.",
	}, result.Directions)
}

func TestExtract_CombinedGlassGarnish(t *testing.T) {
	t.Parallel()

	html := `<html><body>
		<h2>Ingredients</h2>
		<ul><li>2 oz gin</li><li>1 oz lime juice</li></ul>
		<h2>Glass and Garnish</h2>
		<ul><li>Coupe</li><li>Lime wheel</li><li>Mint sprig</li></ul>
		<h2>Directions</h2>
		<ol><li>Shake with ice and strain.</li></ol>
	</body></html>`

	e := heuristics.New(nil)
	result, _ := e.Extract(parseDoc(t, html), "https://example.com/gimlet")
	require.NotNil(t, result)

	assert.Equal(t, "Coupe", result.Glass)
	assert.Equal(t, []string{"Lime wheel", "Mint sprig"}, result.Garnish)
}

func TestExtract_SeparateGlassAndGarnishHeadings(t *testing.T) {
	t.Parallel()

	html := `<html><body>
		<h2>Ingredients</h2>
		<ul><li>2 oz bourbon</li><li>1 sugar cube</li></ul>
		<h2>Glass</h2>
		<ul><li>Rocks glass</li></ul>
		<h2>Garnish</h2>
		<ul><li>Orange peel</li></ul>
	</body></html>`

	e := heuristics.New(nil)
	result, _ := e.Extract(parseDoc(t, html), "https://example.com/oldfashioned")
	require.NotNil(t, result)

	assert.Equal(t, "Rocks glass", result.Glass)
	assert.Equal(t, []string{"Orange peel"}, result.Garnish)
}

func TestCategory(t *testing.T) {
	t.Parallel()

	html := `<html><head>
		<meta property="article:section" content="Desserts">
	</head><body></body></html>`

	e := heuristics.New(nil)
	assert.Equal(t, "Desserts", e.Category(parseDoc(t, html)))
}
