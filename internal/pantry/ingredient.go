// internal/pantry/ingredient.go
//
// Ingredient record and name normalization.
//
// Names keep the casing the user typed, trimmed of surrounding space.
// Every comparison (duplicate checks, similarity edges, recipe matching)
// goes through the lowercase key so "Tomato" and "tomato " are the same
// ingredient everywhere.
package pantry

import (
	"strconv"
	"strings"
	"time"
)

// Ingredient is a single pantry item.  ID is assigned by the store on
// insert and never changes afterwards.
type Ingredient struct {
	ID       string `json:"id" db:"id"`
	Name     string `json:"name" db:"name"`
	Category string `json:"category" db:"category"`
	Amount   string `json:"amount,omitempty" db:"amount"`
}

// Key returns the canonical comparison form of a name: trimmed and
// lowercased.
func Key(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Key returns the ingredient's canonical name key.
func (i *Ingredient) Key() string { return Key(i.Name) }

// trimName drops surrounding whitespace while keeping the user's
// casing for display.
func trimName(name string) string { return strings.TrimSpace(name) }

// LocalID generates a fallback identifier for stores that do not assign
// their own.  Matches the original client-side scheme of millisecond
// timestamps, which is unique enough for a single user's pantry.
func LocalID() string {
	return strconv.FormatInt(time.Now().UnixMilli(), 10)
}
