// internal/catalog/catalog.go
//
// Static recipe catalog.
//
// Recipes are loaded once at startup and never change for the life of
// the process.  The matcher and the HTTP layer only ever read.
package catalog

// Recipe is one catalog entry.  Ingredient and instruction order is
// preserved as authored.
type Recipe struct {
	ID           string   `koanf:"id" json:"id" validate:"required"`
	Title        string   `koanf:"title" json:"title" validate:"required"`
	Description  string   `koanf:"description" json:"description"`
	Image        string   `koanf:"image" json:"image,omitempty"`
	Ingredients  []string `koanf:"ingredients" json:"ingredients"`
	Instructions []string `koanf:"instructions" json:"instructions"`
	PrepTime     int      `koanf:"prep_time" json:"prepTime" validate:"gte=0"`
	CookTime     int      `koanf:"cook_time" json:"cookTime" validate:"gte=0"`
	Servings     int      `koanf:"servings" json:"servings" validate:"gte=0"`
	Tags         []string `koanf:"tags" json:"tags"`
}

// Catalog is a read-only recipe collection with id lookup.
type Catalog struct {
	recipes []Recipe
	byID    map[string]*Recipe
}

// New builds a Catalog from recipes, keeping their order.
func New(recipes []Recipe) *Catalog {
	c := &Catalog{
		recipes: recipes,
		byID:    make(map[string]*Recipe, len(recipes)),
	}
	for i := range c.recipes {
		c.byID[c.recipes[i].ID] = &c.recipes[i]
	}
	return c
}

// All returns every recipe in catalog order.
func (c *Catalog) All() []Recipe { return c.recipes }

// ByID returns the recipe with the given id, or nil.
func (c *Catalog) ByID(id string) *Recipe { return c.byID[id] }

// Len reports the catalog size.
func (c *Catalog) Len() int { return len(c.recipes) }
