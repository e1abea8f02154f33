// internal/pantry/cache_test.go
//
// Unit-tests for the pantry cache coordinator.
//
// A memStore fake stands in for the persistence collaborator so tests
// can confirm both the happy path and the persist-then-apply contract:
// when the store fails, no in-memory structure may change.
//
// Run: go test ./internal/pantry -v

package pantry

import (
	"context"
	"errors"
	"strconv"
	"testing"
)

// memStore is an in-memory Store with scriptable failures.
type memStore struct {
	rows   []Ingredient
	nextID int
	fail   error // returned by the next mutating call when set
}

func (m *memStore) takeFailure() error {
	err := m.fail
	m.fail = nil
	return err
}

func (m *memStore) FetchAll(ctx context.Context) ([]Ingredient, error) {
	out := make([]Ingredient, len(m.rows))
	copy(out, m.rows)
	return out, nil
}

func (m *memStore) Insert(ctx context.Context, name, category, amount string) (Ingredient, error) {
	if err := m.takeFailure(); err != nil {
		return Ingredient{}, err
	}
	m.nextID++
	rec := Ingredient{ID: strconv.Itoa(m.nextID), Name: name, Category: category, Amount: amount}
	m.rows = append(m.rows, rec)
	return rec, nil
}

func (m *memStore) Update(ctx context.Context, id string, f Fields) error {
	if err := m.takeFailure(); err != nil {
		return err
	}
	for i := range m.rows {
		if m.rows[i].ID == id {
			if f.Name != nil {
				m.rows[i].Name = *f.Name
			}
			if f.Category != nil {
				m.rows[i].Category = *f.Category
			}
			if f.Amount != nil {
				m.rows[i].Amount = *f.Amount
			}
			return nil
		}
	}
	return ErrNotFound
}

func (m *memStore) Delete(ctx context.Context, id string) error {
	if err := m.takeFailure(); err != nil {
		return err
	}
	for i := range m.rows {
		if m.rows[i].ID == id {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (m *memStore) DeleteAll(ctx context.Context) error {
	if err := m.takeFailure(); err != nil {
		return err
	}
	m.rows = nil
	return nil
}

func newTestCache(t *testing.T) (*Cache, *memStore) {
	t.Helper()
	st := &memStore{}
	c := NewCache(st)
	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	return c, st
}

func mustAdd(t *testing.T, c *Cache, name, category string) *Ingredient {
	t.Helper()
	rec, err := c.Add(context.Background(), name, category, "")
	if err != nil {
		t.Fatalf("add %q: %v", name, err)
	}
	return rec
}

// checkMembership asserts that the category grouping and the graph
// cover exactly the ids in the ordered index.
func checkMembership(t *testing.T, c *Cache) {
	t.Helper()

	want := make(map[string]bool)
	for _, rec := range c.index.Records() {
		want[rec.ID] = true
	}

	inCats := make(map[string]bool)
	for _, g := range c.cats.Groups() {
		for _, rec := range g.Records {
			inCats[rec.ID] = true
		}
	}
	if len(inCats) != len(want) {
		t.Fatalf("category ids = %d, index ids = %d", len(inCats), len(want))
	}
	for id := range want {
		if !inCats[id] {
			t.Fatalf("id %s missing from category grouping", id)
		}
		if !c.graph.HasVertex(id) {
			t.Fatalf("id %s missing from graph", id)
		}
	}
	if c.graph.Len() != len(want) {
		t.Fatalf("graph has %d vertices, want %d", c.graph.Len(), len(want))
	}
}

func TestMembershipInvariant(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	tomato := mustAdd(t, c, "Tomato", "Vegetable")
	mustAdd(t, c, "Cherry Tomato", "Fruit")
	oil := mustAdd(t, c, "Olive Oil", "Pantry")
	checkMembership(t, c)

	if _, err := c.Update(ctx, oil.ID, Fields{Category: strPtr("Oils")}); err != nil {
		t.Fatalf("update: %v", err)
	}
	checkMembership(t, c)

	if err := c.Remove(ctx, tomato.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	checkMembership(t, c)

	if err := c.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	checkMembership(t, c)
	if c.Len() != 0 {
		t.Fatalf("len after clear = %d", c.Len())
	}
}

func TestDuplicateRejection(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	mustAdd(t, c, "Tomato", "Vegetable")

	// Different case plus trailing space is still the same ingredient.
	if _, err := c.Add(ctx, "tomato ", "Vegetable", ""); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("want ErrDuplicate, got %v", err)
	}
	if c.Len() != 1 {
		t.Fatalf("pantry size = %d, want 1", c.Len())
	}
}

func TestBlankNameRejected(t *testing.T) {
	c, _ := newTestCache(t)

	var ve *ValidationError
	_, err := c.Add(context.Background(), "   ", "Vegetable", "")
	if !errors.As(err, &ve) {
		t.Fatalf("want ValidationError, got %v", err)
	}
	if c.Len() != 0 {
		t.Fatalf("pantry size = %d, want 0", c.Len())
	}
}

func TestIdempotentClear(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	mustAdd(t, c, "Salt", "")
	if err := c.Clear(ctx); err != nil {
		t.Fatalf("first clear: %v", err)
	}
	if err := c.Clear(ctx); err != nil {
		t.Fatalf("second clear: %v", err)
	}
	if c.Len() != 0 {
		t.Fatalf("len = %d, want 0", c.Len())
	}
}

func TestPersistFailureLeavesCacheUntouched(t *testing.T) {
	c, st := newTestCache(t)
	ctx := context.Background()

	rec := mustAdd(t, c, "Tomato", "Vegetable")

	st.fail = ErrUnavailable
	if _, err := c.Add(ctx, "Basil", "Herb", ""); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("want ErrUnavailable, got %v", err)
	}
	if c.Len() != 1 {
		t.Fatalf("failed add mutated cache: len = %d", c.Len())
	}

	st.fail = ErrUnavailable
	if err := c.Remove(ctx, rec.ID); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("want ErrUnavailable, got %v", err)
	}
	if c.Len() != 1 || c.index.FindByID(rec.ID) == nil {
		t.Fatalf("failed remove mutated cache")
	}

	st.fail = ErrUnavailable
	if err := c.Clear(ctx); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("want ErrUnavailable, got %v", err)
	}
	if c.Len() != 1 {
		t.Fatalf("failed clear mutated cache: len = %d", c.Len())
	}
}

func TestRecencyAndArrival(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	first := mustAdd(t, c, "Flour", "Baking")
	mustAdd(t, c, "Sugar", "Baking")
	last := mustAdd(t, c, "Yeast", "Baking")

	if got := c.MostRecent(); got == nil || got.ID != last.ID {
		t.Fatalf("MostRecent = %v, want %s", got, last.ID)
	}
	if got := c.Earliest(); got == nil || got.ID != first.ID {
		t.Fatalf("Earliest = %v, want %s", got, first.ID)
	}

	// Removing the newest promotes the one before it.
	if err := c.Remove(ctx, last.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if got := c.MostRecent(); got == nil || got.Name != "Sugar" {
		t.Fatalf("MostRecent after remove = %v", got)
	}
	if got := c.Earliest(); got == nil || got.ID != first.ID {
		t.Fatalf("Earliest changed unexpectedly: %v", got)
	}
}

func TestRelatedToSymmetryAndRemoval(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	tomato := mustAdd(t, c, "Tomato", "Vegetable")
	cherry := mustAdd(t, c, "Cherry Tomato", "Fruit")
	mustAdd(t, c, "Olive Oil", "Pantry")

	relA := c.RelatedTo(tomato.ID)
	if len(relA) != 1 || relA[0].ID != cherry.ID {
		t.Fatalf("RelatedTo(tomato) = %v", relA)
	}
	relB := c.RelatedTo(cherry.ID)
	if len(relB) != 1 || relB[0].ID != tomato.ID {
		t.Fatalf("RelatedTo(cherry) = %v", relB)
	}

	if err := c.Remove(ctx, tomato.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if relB = c.RelatedTo(cherry.ID); len(relB) != 0 {
		t.Fatalf("edge survived vertex removal: %v", relB)
	}

	// Unknown and removed ids are indistinguishable here: both empty.
	if rel := c.RelatedTo(tomato.ID); len(rel) != 0 {
		t.Fatalf("removed id still has neighbors: %v", rel)
	}
	if rel := c.RelatedTo("never-existed"); rel == nil || len(rel) != 0 {
		t.Fatalf("unknown id should yield an empty slice, got %v", rel)
	}
}

func TestUpdateRenameDuplicate(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	mustAdd(t, c, "Tomato", "Vegetable")
	basil := mustAdd(t, c, "Basil", "Herb")

	if _, err := c.Update(ctx, basil.ID, Fields{Name: strPtr("TOMATO")}); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("want ErrDuplicate on rename collision, got %v", err)
	}

	// Renaming to itself with different casing is allowed.
	rec, err := c.Update(ctx, basil.ID, Fields{Name: strPtr("basil")})
	if err != nil {
		t.Fatalf("self rename: %v", err)
	}
	if rec.Name != "basil" {
		t.Fatalf("name = %q", rec.Name)
	}
}

func TestUpdateUnknownID(t *testing.T) {
	c, _ := newTestCache(t)

	if _, err := c.Update(context.Background(), "999", Fields{Name: strPtr("x")}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
	if err := c.Remove(context.Background(), "999"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestRevisionBumpsOnMutation(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	before := c.Revision()
	rec := mustAdd(t, c, "Tomato", "Vegetable")
	if c.Revision() == before {
		t.Fatalf("revision did not change on add")
	}

	before = c.Revision()
	if err := c.Remove(ctx, rec.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if c.Revision() == before {
		t.Fatalf("revision did not change on remove")
	}
}

func strPtr(s string) *string { return &s }
