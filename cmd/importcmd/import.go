// Package importcmd implements the import command for extracting a
// recipe from a URL.
package importcmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/jonesrussell/gorecipe/cmd/common"
	"github.com/jonesrussell/gorecipe/internal/domain"
)

const (
	// maxValueWidth caps the value column so long direction text wraps.
	maxValueWidth = 100

	// previewIngredients limits how many ingredient rows the table shows.
	previewIngredients = 40
)

var (
	outputJSON bool
	legacy     bool
)

// Command returns the import command.
func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [url]",
		Short: "Import a recipe from a URL",
		Long: `Import fetches the given page or video URL, extracts the recipe,
classifies it, and prints the result.

Examples:
  # Import and print a summary table
  gorecipe import https://example.com/best-banana-bread

  # Emit the full result as JSON
  gorecipe import --json https://www.youtube.com/watch?v=abc123`,
		Args: cobra.ExactArgs(1),
		RunE: runImport,
	}

	cmd.Flags().BoolVar(&outputJSON, "json", false, "print the full result as JSON")
	cmd.Flags().BoolVar(&legacy, "legacy", false, "print the legacy recipe shape without confidence")

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	deps, err := common.NewDeps()
	if err != nil {
		return err
	}

	imp := common.NewImporter(deps, nil)

	result, err := imp.Import(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	if outputJSON {
		return printJSON(result)
	}

	renderResult(result)
	return nil
}

func printJSON(result *domain.ImportResult) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if legacy {
		return enc.Encode(result.ToRecipe())
	}
	return enc.Encode(result)
}

// renderResult prints a field summary table followed by the ingredient
// and direction tables.
func renderResult(result *domain.ImportResult) {
	t := newTable()
	t.AppendHeader(table.Row{"Field", "Value", "Confidence"})
	t.AppendRow(table.Row{"Name", orNA(result.Name), score(result.Confidence.Name)})
	t.AppendRow(table.Row{"Course", orNA(result.Course), score(result.Confidence.Course)})
	t.AppendRow(table.Row{"Cuisine", orNA(result.Cuisine), score(result.Confidence.Cuisine)})
	if result.Subcategory != "" {
		t.AppendRow(table.Row{"Subcategory", result.Subcategory, ""})
	}
	t.AppendRow(table.Row{"Serves", orNA(result.Serves), score(result.Confidence.Serves)})
	t.AppendRow(table.Row{"Time", orNA(result.Time), score(result.Confidence.Time)})
	if result.Glass != "" {
		t.AppendRow(table.Row{"Glass", result.Glass, ""})
	}
	if len(result.Garnish) > 0 {
		t.AppendRow(table.Row{"Garnish", strings.Join(result.Garnish, ", "), ""})
	}
	t.AppendRow(table.Row{"Strategy", string(result.Strategy), ""})
	t.Render()

	renderIngredients(result.Ingredients, result.Confidence.Ingredients)
	renderDirections(result.Directions, result.Confidence.Directions)
}

func renderIngredients(ingredients []domain.ParsedIngredient, confidence float64) {
	if len(ingredients) == 0 {
		return
	}

	t := newTable()
	t.SetTitle(fmt.Sprintf("Ingredients (confidence %s)", score(confidence)))
	t.AppendHeader(table.Row{"Amount", "Unit", "Name", "Preparation", "Section"})

	shown := 0
	for _, ing := range ingredients {
		if ing.IsSectionMarker() {
			continue
		}
		if shown >= previewIngredients {
			t.AppendFooter(table.Row{"", "", fmt.Sprintf("... %d more", len(ingredients)-shown), "", ""})
			break
		}
		t.AppendRow(table.Row{ing.Amount, ing.Unit, ing.Name, ing.Preparation, ing.Section})
		shown++
	}
	t.Render()
}

func renderDirections(directions []string, confidence float64) {
	if len(directions) == 0 {
		return
	}

	t := newTable()
	t.SetTitle(fmt.Sprintf("Directions (confidence %s)", score(confidence)))
	t.AppendHeader(table.Row{"#", "Step"})
	for i, step := range directions {
		t.AppendRow(table.Row{i + 1, step})
	}
	t.Render()
}

func newTable() table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleRounded)
	t.Style().Options.SeparateRows = true
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, WidthMax: maxValueWidth},
	})
	return t
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func score(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
