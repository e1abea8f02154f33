// internal/pantry/order.go
//
// Recency stack and arrival queue.
//
// Both exist to answer one question each in O(1): "what did I add last?"
// (stack top) and "what did I add first?" (queue front).  Removing an
// arbitrary id is a linear scan-and-splice; the pantry is small enough
// that this never matters.
package pantry

// Stack is a slice-backed LIFO over ingredients.
type Stack struct {
	items []*Ingredient
}

// Push adds rec on top.
func (s *Stack) Push(rec *Ingredient) {
	s.items = append(s.items, rec)
}

// Peek returns the most recently pushed ingredient, or nil when empty.
func (s *Stack) Peek() *Ingredient {
	if len(s.items) == 0 {
		return nil
	}
	return s.items[len(s.items)-1]
}

// Remove splices out the ingredient with the given id, if present.
func (s *Stack) Remove(id string) {
	for i, rec := range s.items {
		if rec.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
}

// Len reports the stack depth.
func (s *Stack) Len() int { return len(s.items) }

// Queue is a slice-backed FIFO over ingredients.
type Queue struct {
	items []*Ingredient
}

// Enqueue appends rec at the back.
func (q *Queue) Enqueue(rec *Ingredient) {
	q.items = append(q.items, rec)
}

// Front returns the earliest enqueued ingredient, or nil when empty.
func (q *Queue) Front() *Ingredient {
	if len(q.items) == 0 {
		return nil
	}
	return q.items[0]
}

// Remove splices out the ingredient with the given id, if present.
func (q *Queue) Remove(id string) {
	for i, rec := range q.items {
		if rec.ID == id {
			q.items = append(q.items[:i], q.items[i+1:]...)
			return
		}
	}
}

// Len reports the queue length.
func (q *Queue) Len() int { return len(q.items) }
