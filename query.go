package slotecs

// Query is a cursor over every entity holding component T, in ascending slot
// order.
//
// Example:
//
//	q := slotecs.NewQuery[Position](w)
//	for q.Next() {
//	    p := q.Get()
//	    p.X += 1
//	}
//
// Pointers returned by Get refer into the table and go stale when the World
// grows.
type Query[T any] struct {
	world *World
	table *componentTable[T]
	cur   *T
	idx   int
	ent   Entity
}

// NewQuery creates a cursor over T, positioned before the first entity.
func NewQuery[T any](w *World) *Query[T] {
	q := &Query[T]{
		world: w,
		table: tableOf[T](w),
	}
	q.Reset()
	return q
}

// Reset rewinds the cursor to the beginning.
func (q *Query[T]) Reset() {
	q.idx = -1
	q.cur = nil
	q.ent = Entity{}
}

// Next advances to the next entity holding T. It returns false when the
// iteration is complete.
func (q *Query[T]) Next() bool {
	slots := q.table.slots
	for q.idx++; q.idx < len(slots); q.idx++ {
		s := &slots[q.idx]
		if s.tag&TagUsed == 0 {
			continue
		}
		q.cur = &s.value
		q.ent = Entity{ID: q.world.entities.ids[q.idx], Index: q.idx}
		return true
	}
	q.cur = nil
	return false
}

// Entity returns the current entity. Only valid after Next returned true.
func (q *Query[T]) Entity() Entity {
	return q.ent
}

// Get returns the current entity's component. Only valid after Next returned
// true.
func (q *Query[T]) Get() *T {
	return q.cur
}

// Entities collects every entity holding T.
func (q *Query[T]) Entities() []Entity {
	var out []Entity
	for q.Reset(); q.Next(); {
		out = append(out, q.ent)
	}
	q.Reset()
	return out
}
