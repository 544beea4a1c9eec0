package heuristics

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonesrussell/gorecipe/internal/jsonld"
)

// Known recipe-plugin class families. Each entry names the ingredient
// item selector, an optional group-heading selector scoped to the item's
// ancestors, and the instruction item selector.
var pluginFamilies = []struct {
	name         string
	container    string
	item         string
	groupHeading string
	instruction  string
}{
	{
		name:         "wprm",
		container:    ".wprm-recipe-ingredients-container, .wprm-recipe",
		item:         ".wprm-recipe-ingredient",
		groupHeading: ".wprm-recipe-group-name",
		instruction:  ".wprm-recipe-instruction-text",
	},
	{
		name:         "tasty",
		container:    ".tasty-recipes-ingredients",
		item:         ".tasty-recipes-ingredients li, .tasty-recipe-ingredients li",
		groupHeading: "h4, strong[data-tr-ingredient-header]",
		instruction:  ".tasty-recipes-instructions li",
	},
	{
		name:         "mv-create",
		container:    ".mv-create-ingredients",
		item:         ".mv-create-ingredients li",
		groupHeading: ".mv-create-ingredients h4",
		instruction:  ".mv-create-instructions li",
	},
	{
		name:         "easyrecipe",
		container:    ".easyrecipe",
		item:         ".easyrecipe .ingredient",
		groupHeading: "",
		instruction:  ".easyrecipe .instruction",
	},
	{
		name:         "recipe-card-blocks",
		container:    ".wp-block-recipe-card-recipe-card",
		item:         ".recipe-card-ingredients li",
		groupHeading: ".recipe-card-ingredients h4",
		instruction:  ".recipe-card-directions li",
	},
}

func hasPluginMarkup(doc *goquery.Document) bool {
	for _, family := range pluginFamilies {
		if doc.Find(family.item).Length() > 0 {
			return true
		}
	}
	return false
}

func hasMicrodata(doc *goquery.Document) bool {
	return doc.Find("[itemprop=recipeIngredient], [itemprop=ingredients]").Length() > 0
}

// pluginIngredients extracts from the first plugin family present,
// turning group headings into section marker lines.
func (e *Extractor) pluginIngredients(doc *goquery.Document) []string {
	for _, family := range pluginFamilies {
		items := doc.Find(family.item)
		if items.Length() == 0 {
			continue
		}

		var lines []string
		if family.groupHeading != "" && family.container != "" {
			lines = e.groupedPluginLines(doc, family.container, family.item, family.groupHeading)
		}
		if len(lines) == 0 {
			items.Each(func(_ int, s *goquery.Selection) {
				if text := cleanLine(s.Text()); text != "" {
					lines = append(lines, text)
				}
			})
		}
		if len(lines) > 0 {
			return lines
		}
	}
	return nil
}

// groupedPluginLines walks a plugin container in document order so that
// group headings precede their items as "[Section]" markers.
func (e *Extractor) groupedPluginLines(doc *goquery.Document, container, item, groupHeading string) []string {
	root := doc.Find(container).First()
	if root.Length() == 0 {
		return nil
	}

	var lines []string
	root.Find(groupHeading + ", " + item).Each(func(_ int, s *goquery.Selection) {
		text := cleanLine(s.Text())
		if text == "" {
			return
		}
		if s.Is(groupHeading) {
			lines = append(lines, "["+strings.TrimSuffix(text, ":")+"]")
			return
		}
		lines = append(lines, text)
	})
	return lines
}

// microdataIngredients reads schema.org microdata itemprops.
func (e *Extractor) microdataIngredients(doc *goquery.Document) []string {
	var lines []string
	doc.Find("[itemprop=recipeIngredient], [itemprop=ingredients]").Each(func(_ int, s *goquery.Selection) {
		if text := cleanLine(s.Text()); text != "" {
			lines = append(lines, text)
		}
	})
	return lines
}

// extractYield reads the serving yield from plugin markup or microdata.
func (e *Extractor) extractYield(doc *goquery.Document) string {
	if text := firstText(doc,
		".wprm-recipe-servings, .tasty-recipes-yield, .mv-create-time-yield"); text != "" {
		return text
	}
	if yield := microdataValue(doc, "recipeYield"); yield != "" {
		return yield
	}
	return ""
}

// extractTime reads total time, falling back to prep plus cook, from
// plugin markup or microdata time itemprops.
func (e *Extractor) extractTime(doc *goquery.Document) string {
	if text := firstText(doc,
		".wprm-recipe-total-time, .tasty-recipes-total-time, .mv-create-time-total"); text != "" {
		return text
	}

	if total := microdataDuration(doc, "totalTime"); total != "" {
		return total
	}
	prep, _ := jsonld.ParseDuration(microdataValue(doc, "prepTime"))
	cook, _ := jsonld.ParseDuration(microdataValue(doc, "cookTime"))
	if prep+cook > 0 {
		return jsonld.FormatDuration(prep + cook)
	}
	return ""
}

func microdataDuration(doc *goquery.Document, prop string) string {
	if d, ok := jsonld.ParseDuration(microdataValue(doc, prop)); ok {
		return jsonld.FormatDuration(d)
	}
	return ""
}

// microdataValue prefers the machine-readable attributes over node text.
func microdataValue(doc *goquery.Document, prop string) string {
	node := doc.Find("[itemprop=" + prop + "]").First()
	if node.Length() == 0 {
		return ""
	}
	for _, attr := range []string{"content", "datetime"} {
		if val, ok := node.Attr(attr); ok && strings.TrimSpace(val) != "" {
			return strings.TrimSpace(val)
		}
	}
	return cleanLine(node.Text())
}

// extractEquipment reads equipment lists from plugin markup or an
// equipment heading section.
func (e *Extractor) extractEquipment(doc *goquery.Document) []string {
	var items []string
	doc.Find(".wprm-recipe-equipment-item, [itemprop=tool]").Each(func(_ int, s *goquery.Selection) {
		if text := cleanLine(s.Text()); text != "" {
			items = append(items, text)
		}
	})
	if len(items) > 0 {
		return items
	}
	return e.headingSection(doc, "equipment")
}
