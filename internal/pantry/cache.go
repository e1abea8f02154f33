// internal/pantry/cache.go
//
// Pantry cache: coordinator over the ordered index and its derived
// structures.
//
// Context
// -------
// Every mutation is durably persisted through the Store collaborator
// first and applied to memory only on confirmed success.  A failed
// store call therefore leaves every structure consistent with the last
// persisted state; there is no partial application and no rollback
// path to get wrong.
//
// The index, stack, and queue are patched incrementally.  The category
// grouping and similarity graph are rebuilt wholesale after any change
// that can affect them, trading recompute cost for correctness.
//
// HTTP handlers run concurrently, so the whole cache sits behind one
// RWMutex.  Mutations serialize; reads share.
package pantry

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/yanizio/larder/internal/metrics"
)

// Store is the persistence collaborator.  Implementations live in
// internal/store; the cache treats whichever it is given as the source
// of truth.
type Store interface {
	FetchAll(ctx context.Context) ([]Ingredient, error)
	Insert(ctx context.Context, name, category, amount string) (Ingredient, error)
	Update(ctx context.Context, id string, f Fields) error
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
}

// Fields carries a partial update.  Nil pointers mean "leave as is".
type Fields struct {
	Name     *string `json:"name,omitempty"`
	Category *string `json:"category,omitempty"`
	Amount   *string `json:"amount,omitempty"`
}

// Cache owns the in-memory pantry structures.
type Cache struct {
	mu    sync.RWMutex
	store Store

	index *Index
	stack *Stack
	queue *Queue
	cats  *Categories
	graph *Graph

	rev uint64 // bumped on every applied mutation
}

// NewCache returns a cache bound to store.  Call Load before use.
func NewCache(store Store) *Cache {
	c := &Cache{store: store}
	c.reset(nil)
	return c
}

// reset replaces every structure from recs.  Caller holds mu.
func (c *Cache) reset(recs []*Ingredient) {
	c.index = NewIndex()
	c.stack = &Stack{}
	c.queue = &Queue{}
	for _, rec := range recs {
		c.index.Insert(rec)
		c.stack.Push(rec)
		c.queue.Enqueue(rec)
	}
	c.rebuildDerived()
}

// rebuildDerived recomputes the category grouping and similarity graph
// from the ordered index.  Caller holds mu.
func (c *Cache) rebuildDerived() {
	recs := c.index.Records()
	c.cats = BuildCategories(recs)
	c.graph = BuildGraph(recs)
	metrics.PantrySize.Set(float64(len(recs)))
}

// Load fetches the full collection from the store and rebuilds all
// structures.  Called once at startup.
func (c *Cache) Load(ctx context.Context) error {
	rows, err := c.store.FetchAll(ctx)
	if err != nil {
		return fmt.Errorf("pantry load: %w", err)
	}

	recs := make([]*Ingredient, len(rows))
	for i := range rows {
		rows[i].Name = trimName(rows[i].Name)
		recs[i] = &rows[i]
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.reset(recs)
	c.rev++
	zap.S().Infow("pantry loaded", "ingredients", len(recs))
	return nil
}

// Add validates, persists, and inserts a new ingredient.  Returns
// ErrDuplicate when the trimmed, case-insensitive name already exists
// and a ValidationError when name is blank.
func (c *Cache) Add(ctx context.Context, name, category, amount string) (*Ingredient, error) {
	name = trimName(name)
	if name == "" {
		metrics.PantryMutations.WithLabelValues("add", "rejected").Inc()
		return nil, &ValidationError{Field: "name", Message: "must not be empty"}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.index.FindByKey(Key(name)) != nil {
		metrics.PantryMutations.WithLabelValues("add", "rejected").Inc()
		return nil, fmt.Errorf("%w: %s", ErrDuplicate, name)
	}

	stored, err := c.store.Insert(ctx, name, category, amount)
	if err != nil {
		metrics.PantryMutations.WithLabelValues("add", "error").Inc()
		return nil, fmt.Errorf("pantry add %q: %w", name, err)
	}
	if stored.ID == "" {
		stored.ID = LocalID()
	}
	stored.Name = trimName(stored.Name)

	rec := &stored
	c.index.Insert(rec)
	c.stack.Push(rec)
	c.queue.Enqueue(rec)
	c.rebuildDerived()
	c.rev++

	metrics.PantryMutations.WithLabelValues("add", "ok").Inc()
	zap.S().Debugw("ingredient added", "id", rec.ID, "name", rec.Name, "category", rec.Category)
	return rec, nil
}

// Remove persists the delete, then splices id out of every structure.
func (c *Cache) Remove(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	rec := c.index.FindByID(id)
	if rec == nil {
		metrics.PantryMutations.WithLabelValues("remove", "rejected").Inc()
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	if err := c.store.Delete(ctx, id); err != nil {
		metrics.PantryMutations.WithLabelValues("remove", "error").Inc()
		return fmt.Errorf("pantry remove %s: %w", id, err)
	}

	c.index.RemoveByID(id)
	c.stack.Remove(id)
	c.queue.Remove(id)
	c.rebuildDerived()
	c.rev++

	metrics.PantryMutations.WithLabelValues("remove", "ok").Inc()
	zap.S().Debugw("ingredient removed", "id", id, "name", rec.Name)
	return nil
}

// Update persists a partial update, then mutates the record in place
// and rebuilds the derived structures (name or category may have
// changed either grouping or edges).
func (c *Cache) Update(ctx context.Context, id string, f Fields) (*Ingredient, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	rec := c.index.FindByID(id)
	if rec == nil {
		metrics.PantryMutations.WithLabelValues("update", "rejected").Inc()
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	if f.Name != nil {
		name := trimName(*f.Name)
		if name == "" {
			metrics.PantryMutations.WithLabelValues("update", "rejected").Inc()
			return nil, &ValidationError{Field: "name", Message: "must not be empty"}
		}
		if dup := c.index.FindByKey(Key(name)); dup != nil && dup.ID != id {
			metrics.PantryMutations.WithLabelValues("update", "rejected").Inc()
			return nil, fmt.Errorf("%w: %s", ErrDuplicate, name)
		}
		f.Name = &name
	}

	if err := c.store.Update(ctx, id, f); err != nil {
		metrics.PantryMutations.WithLabelValues("update", "error").Inc()
		return nil, fmt.Errorf("pantry update %s: %w", id, err)
	}

	if f.Name != nil {
		rec.Name = *f.Name
	}
	if f.Category != nil {
		rec.Category = *f.Category
	}
	if f.Amount != nil {
		rec.Amount = *f.Amount
	}
	c.rebuildDerived()
	c.rev++

	metrics.PantryMutations.WithLabelValues("update", "ok").Inc()
	zap.S().Debugw("ingredient updated", "id", id, "name", rec.Name)
	return rec, nil
}

// Clear persists a full delete and discards every structure.  Safe to
// call on an already-empty pantry.
func (c *Cache) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.store.DeleteAll(ctx); err != nil {
		metrics.PantryMutations.WithLabelValues("clear", "error").Inc()
		return fmt.Errorf("pantry clear: %w", err)
	}

	c.reset(nil)
	c.rev++
	metrics.PantryMutations.WithLabelValues("clear", "ok").Inc()
	zap.S().Infow("pantry cleared")
	return nil
}

// Ingredients returns the pantry in insertion order.
func (c *Cache) Ingredients() []*Ingredient {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.index.Records()
}

// Names returns all normalized ingredient names in insertion order.
// This is the matcher's view of the pantry.
func (c *Cache) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	recs := c.index.Records()
	names := make([]string, len(recs))
	for i, rec := range recs {
		names[i] = rec.Key()
	}
	return names
}

// ByCategory returns ingredient groups in label-sorted order.
func (c *Cache) ByCategory() []Group {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cats.Groups()
}

// MostRecent returns the last ingredient added, or nil.
func (c *Cache) MostRecent() *Ingredient {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stack.Peek()
}

// Earliest returns the first ingredient added, or nil.
func (c *Cache) Earliest() *Ingredient {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.queue.Front()
}

// RelatedTo returns the similarity-graph neighbors of id in insertion
// order.  Unknown and isolated ids both yield an empty slice.
func (c *Cache) RelatedTo(id string) []*Ingredient {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]*Ingredient, 0)
	for _, rec := range c.index.Records() {
		if rec.ID != id && c.graph.Adjacent(id, rec.ID) {
			out = append(out, rec)
		}
	}
	return out
}

// Len reports the current pantry size.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.index.Len()
}

// Revision is a monotonic counter bumped on every applied mutation.
// The match-result cache keys on it so stale rankings never survive a
// pantry change.
func (c *Cache) Revision() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.rev
}
