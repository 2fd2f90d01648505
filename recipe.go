package coffeemachine

// Recipe is the fixed resource requirement and sale price of one beverage.
// Every sale also consumes one disposable cup.
type Recipe struct {
	Name  string `json:"name" yaml:"name"`
	Water int    `json:"water" yaml:"water"`
	Milk  int    `json:"milk" yaml:"milk"`
	Beans int    `json:"beans" yaml:"beans"`
	Price int    `json:"price" yaml:"price"`
}

var (
	Espresso   = Recipe{Name: "espresso", Water: 250, Milk: 0, Beans: 16, Price: 4}
	Latte      = Recipe{Name: "latte", Water: 350, Milk: 75, Beans: 20, Price: 7}
	Cappuccino = Recipe{Name: "cappuccino", Water: 200, Milk: 100, Beans: 12, Price: 6}
)

// catalog is indexed by selector token; order matches the buy menu.
var catalog = [...]struct {
	selector string
	recipe   Recipe
}{
	{"1", Espresso},
	{"2", Latte},
	{"3", Cappuccino},
}

// Lookup resolves a buy-menu selector ("1", "2", "3") to its recipe.
func Lookup(selector string) (Recipe, bool) {
	for _, e := range catalog {
		if e.selector == selector {
			return e.recipe, true
		}
	}
	return Recipe{}, false
}

// Selectors returns the selector tokens in menu order.
func Selectors() []string {
	out := make([]string, len(catalog))
	for i, e := range catalog {
		out[i] = e.selector
	}
	return out
}

// Recipes returns the built-in recipes in menu order.
func Recipes() []Recipe {
	out := make([]Recipe, len(catalog))
	for i, e := range catalog {
		out[i] = e.recipe
	}
	return out
}
