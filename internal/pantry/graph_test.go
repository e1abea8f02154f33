// internal/pantry/graph_test.go
//
// Unit-tests for the similarity graph and the supporting structures.
//
// Run: go test ./internal/pantry -v

package pantry

import "testing"

func rec(id, name, category string) *Ingredient {
	return &Ingredient{ID: id, Name: name, Category: category}
}

func TestGraphCrossCategorySubstring(t *testing.T) {
	recs := []*Ingredient{
		rec("1", "Tomato", "Vegetable"),
		rec("2", "Cherry Tomato", "Fruit"),
		rec("3", "Tomato", "Canned"), // identical name, third category
		rec("4", "Garlic", "Vegetable"),
	}
	g := BuildGraph(recs)

	if !g.Adjacent("1", "2") || !g.Adjacent("2", "1") {
		t.Fatalf("expected symmetric edge 1-2")
	}
	if !g.Adjacent("1", "3") {
		t.Fatalf("identical names across categories must connect")
	}
	if !g.Adjacent("2", "3") {
		t.Fatalf("expected edge 2-3")
	}
	if g.Adjacent("1", "4") {
		t.Fatalf("unrelated names must not connect")
	}
}

func TestGraphSameCategoryNoEdge(t *testing.T) {
	// Substring names inside one category never connect.
	g := BuildGraph([]*Ingredient{
		rec("1", "Tomato", "Vegetable"),
		rec("2", "Cherry Tomato", "Vegetable"),
	})
	if g.Adjacent("1", "2") {
		t.Fatalf("same-category pair must not connect")
	}
	if g.Len() != 2 {
		t.Fatalf("vertex count = %d, want 2", g.Len())
	}
}

func TestGraphCaseInsensitive(t *testing.T) {
	g := BuildGraph([]*Ingredient{
		rec("1", "TOMATO", "Vegetable"),
		rec("2", "cherry tomato", "Fruit"),
	})
	if !g.Adjacent("1", "2") {
		t.Fatalf("matching must ignore case")
	}
}

func TestGraphRemoveVertex(t *testing.T) {
	g := BuildGraph([]*Ingredient{
		rec("1", "Tomato", "Vegetable"),
		rec("2", "Cherry Tomato", "Fruit"),
	})

	g.RemoveVertex("1")
	if g.HasVertex("1") {
		t.Fatalf("vertex 1 survived removal")
	}
	if got := g.Related("2"); len(got) != 0 {
		t.Fatalf("dangling edge after removal: %v", got)
	}
}

func TestGraphRelatedUnknown(t *testing.T) {
	g := BuildGraph(nil)
	if got := g.Related("nope"); len(got) != 0 {
		t.Fatalf("Related(unknown) = %v, want empty", got)
	}
}

func TestGraphDeterministicRebuild(t *testing.T) {
	recs := []*Ingredient{
		rec("1", "Sea Salt", "Seasoning"),
		rec("2", "Salt", "Baking"),
		rec("3", "Salted Butter", "Dairy"),
	}
	a := BuildGraph(recs)
	b := BuildGraph(recs)

	for _, id := range a.Vertices() {
		ra, rb := a.Related(id), b.Related(id)
		if len(ra) != len(rb) {
			t.Fatalf("rebuild differs for %s: %v vs %v", id, ra, rb)
		}
		for i := range ra {
			if ra[i] != rb[i] {
				t.Fatalf("rebuild differs for %s: %v vs %v", id, ra, rb)
			}
		}
	}
}

func TestIndexOrderAndRemoval(t *testing.T) {
	x := NewIndex()
	for _, r := range []*Ingredient{rec("1", "A", ""), rec("2", "B", ""), rec("3", "C", "")} {
		x.Insert(r)
	}

	if got := x.Records(); len(got) != 3 || got[0].ID != "1" || got[2].ID != "3" {
		t.Fatalf("insertion order broken: %v", got)
	}
	if !x.RemoveByID("2") {
		t.Fatalf("remove existing id failed")
	}
	if x.RemoveByID("2") {
		t.Fatalf("remove missing id reported success")
	}
	if got := x.Records(); len(got) != 2 || got[1].ID != "3" {
		t.Fatalf("order after removal: %v", got)
	}
	if x.FindByKey("a") == nil {
		t.Fatalf("FindByKey must be case-insensitive")
	}
}

func TestStackQueueSplice(t *testing.T) {
	s := &Stack{}
	q := &Queue{}
	for _, r := range []*Ingredient{rec("1", "A", ""), rec("2", "B", ""), rec("3", "C", "")} {
		s.Push(r)
		q.Enqueue(r)
	}

	s.Remove("3")
	if got := s.Peek(); got == nil || got.ID != "2" {
		t.Fatalf("stack peek after splice = %v", got)
	}
	q.Remove("1")
	if got := q.Front(); got == nil || got.ID != "2" {
		t.Fatalf("queue front after splice = %v", got)
	}
	if s.Len() != 2 || q.Len() != 2 {
		t.Fatalf("lens = %d, %d, want 2, 2", s.Len(), q.Len())
	}
}

func TestCategoriesPartition(t *testing.T) {
	cats := BuildCategories([]*Ingredient{
		rec("1", "Tomato", "Vegetable"),
		rec("2", "Milk", "Dairy"),
		rec("3", "Garlic", "Vegetable"),
		rec("4", "Mystery", ""),
	})

	labels := cats.Labels()
	if len(labels) != 3 || labels[0] != "" || labels[1] != "Dairy" || labels[2] != "Vegetable" {
		t.Fatalf("labels = %v", labels)
	}
	veg := cats.Group("Vegetable")
	if len(veg) != 2 || veg[0].ID != "1" || veg[1].ID != "3" {
		t.Fatalf("group order broken: %v", veg)
	}
}
