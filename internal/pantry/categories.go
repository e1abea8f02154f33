// internal/pantry/categories.go
//
// Category grouping of pantry ingredients.
//
// The grouping is derived state: it is rebuilt from the ordered index on
// every membership or category change rather than patched in place.
// Rebuilding keeps the "partition of the index by category label" claim
// trivially true; patching would have to track moves between groups.
package pantry

import "sort"

// Group is one category label and its ingredients in insertion order.
type Group struct {
	Label   string        `json:"label"`
	Records []*Ingredient `json:"ingredients"`
}

// Categories maps labels (case-sensitive, as entered) to ingredient
// groups.  Ingredients with an empty category are grouped under "".
type Categories struct {
	groups map[string][]*Ingredient
}

// BuildCategories groups recs by their category label, preserving
// insertion order within each group.
func BuildCategories(recs []*Ingredient) *Categories {
	c := &Categories{groups: make(map[string][]*Ingredient)}
	for _, rec := range recs {
		c.groups[rec.Category] = append(c.groups[rec.Category], rec)
	}
	return c
}

// Labels returns all category labels in sorted order, so enumeration is
// deterministic for identical index content.
func (c *Categories) Labels() []string {
	labels := make([]string, 0, len(c.groups))
	for label := range c.groups {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// Group returns the ingredients under label, or nil.
func (c *Categories) Group(label string) []*Ingredient {
	return c.groups[label]
}

// Groups returns every group in label-sorted order.
func (c *Categories) Groups() []Group {
	out := make([]Group, 0, len(c.groups))
	for _, label := range c.Labels() {
		out = append(out, Group{Label: label, Records: c.groups[label]})
	}
	return out
}

// Len reports the number of distinct labels.
func (c *Categories) Len() int { return len(c.groups) }
