package importer

import "fmt"

// Diagnostics records what each strategy saw on a page that yielded
// nothing, so a human can triage why a site failed.
type Diagnostics struct {
	StructuredBlocksSeen   int
	StructuredBlocksParsed int
	StructuredRecipeFound  bool
	HadPluginMarkup        bool
	HadMicrodata           bool
	HadIngredientHeading   bool
	TranscriptTrail        string
}

// NoDataError means every tier of every strategy produced nothing.
type NoDataError struct {
	URL  string
	Diag Diagnostics
}

func (e *NoDataError) Error() string {
	return fmt.Sprintf(
		"no extractable recipe data at %s (ld+json blocks: %d seen, %d parsed, recipe node: %t; plugin markup: %t, microdata: %t, ingredient heading: %t)",
		e.URL,
		e.Diag.StructuredBlocksSeen,
		e.Diag.StructuredBlocksParsed,
		e.Diag.StructuredRecipeFound,
		e.Diag.HadPluginMarkup,
		e.Diag.HadMicrodata,
		e.Diag.HadIngredientHeading,
	)
}
