// Package slotecs provides a slot-indexed Entity-Component-System runtime.
package slotecs

import "strconv"

// EntityID is the unique identifier of an entity. IDs are assigned in
// strictly increasing order and never reused.
type EntityID uint64

// EntityNone marks an empty slot in the entity table. No live entity ever
// carries it.
const EntityNone EntityID = 0

// Entity is a short-lived handle addressing one entity: its identifier and the
// slot index it occupies in every parallel array. The handle owns nothing and
// is only valid until a structural change affects its slot.
type Entity struct {
	ID    EntityID // The unique, never reused identifier.
	Index int      // The slot shared by the entity table and every component table.
}

// IsNone reports whether the handle names no entity.
func (e Entity) IsNone() bool {
	return e.ID == EntityNone
}

func (e Entity) String() string {
	return strconv.FormatUint(uint64(e.ID), 10) + "@" + strconv.Itoa(e.Index)
}

// entityRegistry is the entity table: slot index to occupant identifier, the
// occupancy bitmap and the identifier counter.
type entityRegistry struct {
	ids      []EntityID // len = capacity, EntityNone for free slots
	used     bitmap     // bit i set iff ids[i] != EntityNone
	capacity int        // current number of slots
	live     int        // number of occupied slots
	nextID   EntityID   // identifier for the next created entity
}

func newEntityRegistry(capacity int) entityRegistry {
	return entityRegistry{
		ids:      make([]EntityID, capacity),
		used:     newBitmap(capacity),
		capacity: capacity,
		nextID:   1,
	}
}

// occupied reports whether slot i currently holds a live entity.
func (r *entityRegistry) occupied(i int) bool {
	return i >= 0 && i < r.capacity && r.used.get(i)
}

// claim marks slot i occupied by a freshly numbered entity.
func (r *entityRegistry) claim(i int) Entity {
	id := r.nextID
	r.nextID++
	r.ids[i] = id
	r.used.set(i)
	r.live++
	return Entity{ID: id, Index: i}
}

// release frees slot i for reuse.
func (r *entityRegistry) release(i int) {
	r.used.clear(i)
	r.ids[i] = EntityNone
	r.live--
}

// resize extends every entity-side array to capacity slots. New ids are
// EntityNone and new bits are clear.
func (r *entityRegistry) resize(capacity int) {
	r.ids = append(r.ids, make([]EntityID, capacity-r.capacity)...)
	r.used = r.used.grow(capacity)
	r.capacity = capacity
}
