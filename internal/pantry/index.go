// internal/pantry/index.go
//
// Insertion-ordered ingredient index backed by container/list.
//
// This is the authoritative enumeration of pantry contents.  The stack,
// queue, category groups, and similarity graph are all views derived
// from it; their membership is always a subset of the index.  Lookups
// are linear scans, which is fine for a pantry of tens of items.
package pantry

import "container/list"

// Index holds ingredients in the order they were added.
type Index struct {
	ll *list.List
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	return &Index{ll: list.New()}
}

// Insert appends rec to the end of the index.
func (x *Index) Insert(rec *Ingredient) {
	x.ll.PushBack(rec)
}

// FindByID returns the ingredient with the given id, or nil.
func (x *Index) FindByID(id string) *Ingredient {
	for e := x.ll.Front(); e != nil; e = e.Next() {
		if rec := e.Value.(*Ingredient); rec.ID == id {
			return rec
		}
	}
	return nil
}

// FindByKey returns the ingredient whose normalized name equals key, or
// nil.  Used for duplicate detection.
func (x *Index) FindByKey(key string) *Ingredient {
	for e := x.ll.Front(); e != nil; e = e.Next() {
		if rec := e.Value.(*Ingredient); rec.Key() == key {
			return rec
		}
	}
	return nil
}

// RemoveByID splices out the ingredient with the given id and reports
// whether it was present.
func (x *Index) RemoveByID(id string) bool {
	for e := x.ll.Front(); e != nil; e = e.Next() {
		if e.Value.(*Ingredient).ID == id {
			x.ll.Remove(e)
			return true
		}
	}
	return false
}

// Records returns all ingredients in insertion order.
func (x *Index) Records() []*Ingredient {
	out := make([]*Ingredient, 0, x.ll.Len())
	for e := x.ll.Front(); e != nil; e = e.Next() {
		out = append(out, e.Value.(*Ingredient))
	}
	return out
}

// Len reports the number of ingredients.
func (x *Index) Len() int { return x.ll.Len() }
