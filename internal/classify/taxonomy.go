package classify

// Canonical course names.
const (
	CourseDrinks     = "Drinks"
	CourseModernist  = "Modernist"
	CourseDessert    = "Dessert"
	CourseAppetizers = "Appetizers"
	CourseSoup       = "Soup"
	CourseSides      = "Sides"
	CourseBread      = "Bread"
	CourseBreakfast  = "Breakfast"
	CourseMains      = "Mains"
	CourseSauces     = "Sauces"
	CoursePizza      = "Pizza"
	CourseVegn       = "Veg'n"
	CourseSmoking    = "Smoking"
)

// cocktailSites are domains that publish cocktails exclusively; membership
// short-circuits course classification to Drinks at the highest
// confidence tier.
var cocktailSites = []string{
	"liquor.com",
	"punchdrink.com",
	"diffordsguide.com",
	"imbibemagazine.com",
	"thecocktaildb.com",
	"cocktailpartyapp.com",
	"makemeacocktail.com",
	"tuxedono2.com",
}

// drinkKeywords match in category, keywords, title, or description.
var drinkKeywords = []string{
	"cocktail", "mocktail", "drink", "beverage", "smoothie", "shake",
	"margarita", "martini", "negroni", "daiquiri", "mojito", "spritz",
	"old fashioned", "highball", "punch bowl", "aperitif", "digestif",
}

// modernistKeywords match in category, keywords, title, description, or
// URL path tokens.
var modernistKeywords = []string{
	"modernist", "molecular", "spherification", "sous vide", "sous-vide",
	"gastronomy", "hydrocolloid", "agar", "xanthan", "transglutaminase",
	"centrifuge", "rotovap",
}

// categoryKeywords is the ordered table matched against an explicit
// category field; earlier rows win.
var categoryKeywords = []struct {
	Course   string
	Keywords []string
}{
	{CourseDessert, []string{"dessert", "cake", "cookie", "sweet", "pastry", "pie", "pudding", "ice cream"}},
	{CourseAppetizers, []string{"appetizer", "appetiser", "starter", "snack", "hors d'oeuvre", "small plate", "dip"}},
	{CourseSoup, []string{"soup", "stew", "chowder", "bisque", "broth"}},
	{CourseSides, []string{"salad", "side"}},
	{CourseBread, []string{"bread", "sourdough", "bagel", "bun", "roll", "baguette", "focaccia", "brioche"}},
	{CourseBreakfast, []string{"breakfast", "brunch"}},
	{CourseMains, []string{"main", "dinner", "entree", "entrée", "lunch", "supper"}},
	{CourseSauces, []string{"sauce", "condiment", "dressing", "marinade", "rub", "brine"}},
	{CoursePizza, []string{"pizza", "flatbread"}},
}

// titleKeywords is the weaker fallback matched against the title alone.
var titleKeywords = []struct {
	Course   string
	Keywords []string
}{
	{CourseBread, []string{"bread", "sourdough", "bagel", "baguette", "focaccia", "brioche"}},
	{CourseSoup, []string{"soup", "stew", "chowder", "bisque"}},
	{CourseDessert, []string{"cake", "cookie", "brownie", "tart", "pie", "ice cream", "custard"}},
	{CourseSauces, []string{"sauce", "dressing", "marinade", "vinaigrette"}},
	{CoursePizza, []string{"pizza"}},
}

// smokingKeywords feed the detect-all pass only; BBQ recipes usually
// still classify as Mains.
var smokingKeywords = []string{
	"smoked", "smoker", "barbecue", "bbq", "brisket", "pellet grill",
	"low and slow",
}

// vegetarianCategories match an explicit category value only, never free
// keyword text.
var vegetarianCategories = []string{"vegetarian", "vegan", "plant-based", "plant based"}

// cuisineRegions maps regional adjectives to canonical cuisine names.
// Unmapped but present values are title-cased and passed through.
var cuisineRegions = map[string]string{
	"american":       "American",
	"basque":         "Basque",
	"brazilian":      "Brazilian",
	"british":        "British",
	"cajun":          "Cajun",
	"cantonese":      "Chinese",
	"caribbean":      "Caribbean",
	"chinese":        "Chinese",
	"creole":         "Cajun",
	"cuban":          "Caribbean",
	"danish":         "Nordic",
	"english":        "British",
	"ethiopian":      "Ethiopian",
	"filipino":       "Filipino",
	"french":         "French",
	"german":         "German",
	"greek":          "Greek",
	"hawaiian":       "Hawaiian",
	"indian":         "Indian",
	"indonesian":     "Indonesian",
	"irish":          "Irish",
	"italian":        "Italian",
	"jamaican":       "Caribbean",
	"japanese":       "Japanese",
	"korean":         "Korean",
	"lebanese":       "Middle Eastern",
	"malaysian":      "Malaysian",
	"mediterranean":  "Mediterranean",
	"mexican":        "Mexican",
	"middle eastern": "Middle Eastern",
	"moroccan":       "Moroccan",
	"nordic":         "Nordic",
	"norwegian":      "Nordic",
	"persian":        "Middle Eastern",
	"peruvian":       "Peruvian",
	"polish":         "Polish",
	"russian":        "Russian",
	"scandinavian":   "Nordic",
	"sicilian":       "Italian",
	"spanish":        "Spanish",
	"swedish":        "Nordic",
	"szechuan":       "Chinese",
	"tex-mex":        "Mexican",
	"thai":           "Thai",
	"turkish":        "Turkish",
	"tuscan":         "Italian",
	"vietnamese":     "Vietnamese",
}

// spiritTaxonomy maps ingredient-name substrings to canonical spirit
// display names; scanned in ingredient order, first hit wins.
var spiritTaxonomy = []struct {
	Display  string
	Keywords []string
}{
	{"Gin", []string{"gin"}},
	{"Vodka", []string{"vodka"}},
	{"Rum", []string{"rum", "rhum", "cachaça", "cachaca"}},
	{"Tequila", []string{"tequila"}},
	{"Mezcal", []string{"mezcal"}},
	{"Whiskey", []string{"whiskey", "whisky", "bourbon", "rye", "scotch"}},
	{"Brandy", []string{"brandy", "cognac", "armagnac", "pisco", "calvados"}},
	{"Absinthe", []string{"absinthe"}},
	{"Vermouth", []string{"vermouth"}},
	{"Amaro", []string{"amaro", "aperol", "campari", "fernet"}},
	{"Liqueur", []string{"liqueur", "curaçao", "curacao", "triple sec", "chartreuse", "maraschino liqueur"}},
	{"Sherry", []string{"sherry", "port wine", "madeira"}},
	{"Wine", []string{"prosecco", "champagne", "sparkling wine", "red wine", "white wine"}},
	{"Beer", []string{"beer", "stout", "lager", "ale"}},
	{"Sake", []string{"sake", "shochu", "soju"}},
}
