package classify_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonesrussell/gorecipe/internal/classify"
	"github.com/jonesrussell/gorecipe/internal/domain"
)

func TestClassify_Precedence(t *testing.T) {
	t.Parallel()

	c := classify.New(nil)

	tests := []struct {
		name        string
		in          classify.Input
		wantCourse  string
		wantMinConf float64
		wantSubcat  string
	}{
		{
			name:        "cocktail site short-circuits to drinks",
			in:          classify.Input{SourceURL: "https://www.liquor.com/recipes/negroni/", Title: "Negroni"},
			wantCourse:  "Drinks",
			wantMinConf: 0.95,
		},
		{
			name: "cocktail site wins over dessert category",
			in: classify.Input{
				SourceURL: "https://punchdrink.com/recipes/espresso-martini/",
				Category:  "Dessert",
				Title:     "Espresso Martini",
			},
			wantCourse:  "Drinks",
			wantMinConf: 0.95,
		},
		{
			name:        "drink keyword in title",
			in:          classify.Input{Title: "Frozen Margarita", SourceURL: "https://example.com/r"},
			wantCourse:  "Drinks",
			wantMinConf: 0.8,
		},
		{
			name:        "modernist keyword",
			in:          classify.Input{Title: "Sous Vide Carrots", SourceURL: "https://example.com/r"},
			wantCourse:  "Modernist",
			wantMinConf: 0.8,
		},
		{
			name:        "explicit category table",
			in:          classify.Input{Category: "Dessert Recipes", Title: "Lemon Tart"},
			wantCourse:  "Dessert",
			wantMinConf: 0.9,
		},
		{
			name:        "category beats title fallback",
			in:          classify.Input{Category: "Side Dish", Title: "Tomato Soup Salad"},
			wantCourse:  "Sides",
			wantMinConf: 0.9,
		},
		{
			name:        "title fallback when no category",
			in:          classify.Input{Title: "Crusty Sourdough Bread"},
			wantCourse:  "Bread",
			wantMinConf: 0.6,
		},
		{
			name:        "explicit vegetarian category",
			in:          classify.Input{Category: "Vegetarian", Title: "Chickpea Bowl"},
			wantCourse:  "Veg'n",
			wantMinConf: 0.9,
		},
		{
			name:        "default mains",
			in:          classify.Input{Title: "Weeknight Chicken Thighs"},
			wantCourse:  "Mains",
			wantMinConf: 0.3,
		},
		{
			name: "spirit detected for drinks",
			in: classify.Input{
				SourceURL: "https://liquor.com/recipes/gimlet/",
				Title:     "Gimlet",
				Ingredients: []domain.ParsedIngredient{
					{Name: "gin", Amount: "2", Unit: "oz"},
					{Name: "lime juice", Amount: "¾", Unit: "oz"},
					{Name: "simple syrup", Amount: "¾", Unit: "oz"},
				},
			},
			wantCourse:  "Drinks",
			wantMinConf: 0.95,
			wantSubcat:  "Gin",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := c.Classify(tt.in)
			assert.Equal(t, tt.wantCourse, got.Course)
			assert.GreaterOrEqual(t, got.Confidence, tt.wantMinConf)
			assert.Equal(t, tt.wantSubcat, got.Subcategory)
		})
	}
}

func TestClassify_DetectAll(t *testing.T) {
	t.Parallel()

	c := classify.New(nil)
	got := c.Classify(classify.Input{
		Title:    "Smoked Brisket Chili Soup",
		Category: "Dinner",
	})

	assert.Equal(t, "Mains", got.Course)
	assert.Contains(t, got.DetectedCourses, "Smoking")
	assert.Contains(t, got.DetectedCourses, "Soup")

	// Deterministic ordering.
	again := c.Classify(classify.Input{
		Title:    "Smoked Brisket Chili Soup",
		Category: "Dinner",
	})
	assert.Equal(t, got.DetectedCourses, again.DetectedCourses)
}

func TestDetectCuisine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"tex-mex", "Mexican"},
		{"Scandinavian", "Nordic"},
		{"ITALIAN", "Italian"},
		{"creole", "Cajun"},
		{"authentic tex-mex", "Mexican"},
		{"oaxacan", "Oaxacan"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, classify.DetectCuisine(tt.in))
		})
	}
}

func TestClassify_CuisineFromText(t *testing.T) {
	t.Parallel()

	c := classify.New(nil)
	got := c.Classify(classify.Input{Title: "Thai Green Curry", Category: "Dinner"})
	assert.Equal(t, "Thai", got.Cuisine)
	assert.Equal(t, []string{"Thai"}, got.DetectedCuisines)
}

func TestDetectSpirit(t *testing.T) {
	t.Parallel()

	names := func(ss ...string) []domain.ParsedIngredient {
		out := make([]domain.ParsedIngredient, 0, len(ss))
		for _, s := range ss {
			out = append(out, domain.ParsedIngredient{Name: s})
		}
		return out
	}

	tests := []struct {
		name        string
		ingredients []domain.ParsedIngredient
		want        string
	}{
		{"first match wins without amounts", names("bourbon", "sweet vermouth", "bitters"), "Whiskey"},
		{"word boundary guard", names("graham cracker crumble", "sugar"), ""},
		{"rye matches whiskey", names("rye whiskey"), "Whiskey"},
		{"no spirit", names("flour", "sugar", "eggs"), ""},
		{"mezcal before tequila in list order", names("mezcal", "tequila"), "Mezcal"},
		{
			name: "largest pour is the base spirit",
			ingredients: []domain.ParsedIngredient{
				{Name: "triple sec", Amount: "1", Unit: "oz"},
				{Name: "blanco tequila", Amount: "2", Unit: "oz"},
				{Name: "lime juice", Amount: "1", Unit: "oz"},
			},
			want: "Tequila",
		},
		{
			name: "equal pours keep recipe order",
			ingredients: []domain.ParsedIngredient{
				{Name: "campari", Amount: "1", Unit: "oz"},
				{Name: "gin", Amount: "1", Unit: "oz"},
			},
			want: "Amaro",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, classify.DetectSpirit(tt.ingredients))
		})
	}
}
