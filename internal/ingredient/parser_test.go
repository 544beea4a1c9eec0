package ingredient_test

import (
	"testing"

	"github.com/jonesrussell/gorecipe/internal/domain"
	"github.com/jonesrussell/gorecipe/internal/ingredient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected domain.ParsedIngredient
	}{
		{
			name:  "simple amount unit name",
			input: "2 cups flour",
			expected: domain.ParsedIngredient{
				Name:   "flour",
				Amount: "2",
				Unit:   "cup",
			},
		},
		{
			name:  "compound fraction amount",
			input: "1 1/2 cups sugar",
			expected: domain.ParsedIngredient{
				Name:   "sugar",
				Amount: "1½",
				Unit:   "cup",
			},
		},
		{
			name:  "standalone fraction",
			input: "1/4 tsp salt",
			expected: domain.ParsedIngredient{
				Name:   "salt",
				Amount: "¼",
				Unit:   "tsp",
			},
		},
		{
			name:  "to range",
			input: "2 to 3 tablespoons olive oil",
			expected: domain.ParsedIngredient{
				Name:   "olive oil",
				Amount: "2 to 3",
				Unit:   "tbsp",
			},
		},
		{
			name:  "dash range",
			input: "2-3 cloves garlic",
			expected: domain.ParsedIngredient{
				Name:   "garlic",
				Amount: "2-3",
				Unit:   "clove",
			},
		},
		{
			name:  "no unit",
			input: "2 eggs",
			expected: domain.ParsedIngredient{
				Name:   "eggs",
				Amount: "2",
			},
		},
		{
			name:  "trailing preparation after comma",
			input: "1 cup walnuts, roughly chopped",
			expected: domain.ParsedIngredient{
				Name:        "walnuts",
				Amount:      "1",
				Unit:        "cup",
				Preparation: "roughly chopped",
			},
		},
		{
			name:  "parenthetical note extracted",
			input: "2 cups flour (sifted)",
			expected: domain.ParsedIngredient{
				Name:        "flour",
				Amount:      "2",
				Unit:        "cup",
				Preparation: "sifted",
			},
		},
		{
			name:  "ratio span stays in name",
			input: "1 oz simple syrup (2:1)",
			expected: domain.ParsedIngredient{
				Name:   "simple syrup (2:1)",
				Amount: "1",
				Unit:   "oz",
			},
		},
		{
			name:  "optional parenthetical",
			input: "1 tsp vanilla (optional)",
			expected: domain.ParsedIngredient{
				Name:     "vanilla",
				Amount:   "1",
				Unit:     "tsp",
				Optional: true,
			},
		},
		{
			name:  "trailing optional",
			input: "1 cup raisins, optional",
			expected: domain.ParsedIngredient{
				Name:     "raisins",
				Amount:   "1",
				Unit:     "cup",
				Optional: true,
			},
		},
		{
			name:  "top up drink phrasing",
			input: "Top up with soda water",
			expected: domain.ParsedIngredient{
				Name:   "soda water",
				Amount: "Top",
			},
		},
		{
			name:  "colon cocktail format",
			input: "Gin: 2 oz/60ml stirred",
			expected: domain.ParsedIngredient{
				Name:        "Gin",
				Amount:      "2",
				Unit:        "oz",
				Preparation: "60ml; stirred",
			},
		},
		{
			name:  "comma amount format",
			input: "Sugar, 2 cups (packed)",
			expected: domain.ParsedIngredient{
				Name:        "Sugar",
				Amount:      "2",
				Unit:        "cup",
				Preparation: "packed",
			},
		},
		{
			name:  "as needed",
			input: "Flour, as needed",
			expected: domain.ParsedIngredient{
				Name:   "Flour",
				Amount: "as needed",
			},
		},
		{
			name:  "to taste",
			input: "Salt, to taste",
			expected: domain.ParsedIngredient{
				Name:   "Salt",
				Amount: "to taste",
			},
		},
		{
			name:  "footnote markers stripped",
			input: "* 2 cups flour *",
			expected: domain.ParsedIngredient{
				Name:   "flour",
				Amount: "2",
				Unit:   "cup",
			},
		},
		{
			name:  "bracket section with content",
			input: "[Sauce] 1 cup cream",
			expected: domain.ParsedIngredient{
				Name:    "cream",
				Amount:  "1",
				Unit:    "cup",
				Section: "Sauce",
			},
		},
		{
			name:  "bracket section only",
			input: "[For the topping]",
			expected: domain.ParsedIngredient{
				Section: "For the topping",
			},
		},
		{
			name:  "for-the section only",
			input: "For the sauce:",
			expected: domain.ParsedIngredient{
				Section: "Sauce",
			},
		},
		{
			name:     "empty line",
			input:    "",
			expected: domain.ParsedIngredient{},
		},
	}

	for i := range tests {
		test := &tests[i]
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			got := ingredient.ParseLine(test.input)
			require.Equal(t, test.expected, got)
		})
	}
}

func TestParseLine_BakerPercent(t *testing.T) {
	t.Parallel()

	got := ingredient.ParseLine("All-Purpose Flour, 100% – 600g (4 1/2 Cups)")

	assert.Equal(t, "All-Purpose Flour", got.Name)
	assert.Equal(t, "100%", got.BakerPercent)
	assert.Equal(t, "600g", got.Amount)
	assert.Equal(t, "4½ cup", got.Preparation)
}

func TestParseLine_NeverPanicsAndIsTotal(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"   ",
		"()",
		"((((",
		"*†[3]",
		",,,,,",
		"1/0 nonsense",
		"🌮🌮🌮",
		"just some words with no quantity at all",
	}

	for _, input := range inputs {
		require.NotPanics(t, func() {
			got := ingredient.ParseLine(input)
			// An unparseable line yields an empty-name entry, never an error.
			_ = got
		}, "input %q", input)
	}
}

func TestParseLine_SalvagePromotesNote(t *testing.T) {
	t.Parallel()

	// Everything is parenthesized: after extraction the name is empty and
	// the first non-weight note becomes the name.
	got := ingredient.ParseLine("2 oz (fresh lime juice)")

	assert.Equal(t, "fresh lime juice", got.Name)
	assert.Equal(t, "2", got.Amount)
	assert.Equal(t, "oz", got.Unit)
}

func TestParseAll_SectionCarry(t *testing.T) {
	t.Parallel()

	entries := ingredient.ParseAll([]string{
		"[Dough]",
		"2 cups flour",
		"1 tsp yeast",
		"[Filling]",
		"1 cup ricotta",
	})

	require.Len(t, entries, 3)
	assert.Equal(t, "Dough", entries[0].Section)
	assert.Equal(t, "Dough", entries[1].Section)
	assert.Equal(t, "Filling", entries[2].Section)
	assert.Equal(t, "ricotta", entries[2].Name)
}

func TestScoreAmount(t *testing.T) {
	t.Parallel()

	// A cup outweighs a teaspoon; ranges score by their lower bound.
	assert.Greater(t,
		ingredient.ScoreAmount("1", "cup"),
		ingredient.ScoreAmount("2", "tsp"))
	assert.InDelta(t, 1.5, ingredient.ScoreAmount("1½", ""), 1e-9)
	assert.InDelta(t, 2*15, ingredient.ScoreAmount("2 to 3", "tbsp"), 1e-9)
	assert.Zero(t, ingredient.ScoreAmount("Top", ""))
}

func TestParseLine_PurePunctuation(t *testing.T) {
	t.Parallel()

	tests := []string{", , ,", "-- --", "...", ",;,"}

	for _, input := range tests {
		got := ingredient.ParseLine(input)
		assert.Empty(t, got.Name, "input %q", input)
		assert.True(t, got.IsEmpty(), "input %q should parse to an empty entry", input)
	}
}
