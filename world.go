package slotecs

import (
	"reflect"
	"slices"

	"github.com/rs/zerolog"
)

// DefaultCapacity is the number of entity slots a World starts with when no
// capacity is configured.
const DefaultCapacity = 64

// componentRegistry holds the tables of all registered component types in
// registration order.
type componentRegistry struct {
	tables  []table
	typeMap map[reflect.Type]ComponentID
}

// World owns the entity table, the occupancy bitmap and one component table
// per registered type. All parallel arrays share the same capacity and grow
// together.
//
// A World is not safe for concurrent use; callers serialize access.
type World struct {
	resources  *Resources
	bus        *EventBus
	log        zerolog.Logger
	entities   entityRegistry
	components componentRegistry
	depth      int   // > 0 while handlers run
	deleting   []int // slots whose destroy fan-out is in progress
	closed     bool
}

// NewWorld creates a World with DefaultCapacity slots unless overridden by
// options.
//
// Parameters:
//   - opts: Functional options such as WithInitialCapacity or WithLogger.
//
// Returns:
//   - The newly created World.
func NewWorld(opts ...Option) *World {
	o := options{
		capacity: DefaultCapacity,
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.capacity <= 0 {
		o.capacity = DefaultCapacity
	}
	if o.resources == nil {
		o.resources = &Resources{}
	}
	w := &World{
		resources: o.resources,
		bus:       &EventBus{},
		log:       o.logger,
		entities:  newEntityRegistry(o.capacity),
		components: componentRegistry{
			tables:  make([]table, 0, 16),
			typeMap: make(map[reflect.Type]ComponentID, 16),
		},
	}
	w.log.Debug().Int("capacity", o.capacity).Msg("world created")
	return w
}

// Capacity returns the current number of entity slots.
func (w *World) Capacity() int {
	return w.entities.capacity
}

// Len returns the number of live entities.
func (w *World) Len() int {
	return w.entities.live
}

// Resources returns the type-keyed store handlers use to reach application
// context, such as the game world owning this ECS.
func (w *World) Resources() *Resources {
	return w.resources
}

// Bus returns the bus on which the World publishes EntityCreated,
// EntityDeleted and CapacityGrown notifications.
func (w *World) Bus() *EventBus {
	return w.bus
}

// Logger returns the World's logger.
func (w *World) Logger() *zerolog.Logger {
	return &w.log
}

// IsValid reports whether e still names the entity occupying its slot.
func (w *World) IsValid(e Entity) bool {
	return e.ID != EntityNone &&
		w.entities.occupied(e.Index) &&
		w.entities.ids[e.Index] == e.ID
}

// CreateEntity allocates the lowest free slot and assigns it a fresh
// identifier. When every slot is taken the World doubles its capacity first.
// The new entity has no components.
//
// Returns:
//   - The handle of the created entity.
func (w *World) CreateEntity() Entity {
	w.checkOpen()
	i, ok := w.entities.used.firstFree(w.entities.capacity)
	if !ok {
		i = w.entities.capacity
		w.expand()
	}
	e := w.entities.claim(i)
	Publish(w.bus, EntityCreated{Entity: e})
	return e
}

// CreateEntities creates count entities and returns their handles in
// creation order.
func (w *World) CreateEntities(count int) []Entity {
	if count <= 0 {
		return nil
	}
	ents := make([]Entity, count)
	for k := range ents {
		ents[k] = w.CreateEntity()
	}
	return ents
}

// DeleteEntity detaches every component of e, running each type's Destroy
// handler after its tag is cleared, then frees the slot for reuse. The
// identifier is never handed out again.
//
// It panics if the slot is free or occupied by a different entity, or if a
// Destroy handler deletes the entity whose components it is tearing down.
func (w *World) DeleteEntity(e Entity) {
	w.checkOpen()
	w.checkLive(e)
	if slices.Contains(w.deleting, e.Index) {
		violation(ErrStructuralMutation, "entity %s deleted from its own destroy handler", e)
	}
	w.deleting = append(w.deleting, e.Index)
	defer func() { w.deleting = w.deleting[:len(w.deleting)-1] }()
	for _, t := range w.components.tables {
		t.detach(w, e)
	}
	w.entities.release(e.Index)
	Publish(w.bus, EntityDeleted{Entity: e})
}

// DeleteEntities deletes a batch of entities in order.
func (w *World) DeleteEntities(ents []Entity) {
	for _, e := range ents {
		w.DeleteEntity(e)
	}
}

// Clear deletes every live entity in ascending slot order. Capacity is kept.
func (w *World) Clear() {
	w.checkOpen()
	for i := 0; i < w.entities.capacity; i++ {
		if !w.entities.used.get(i) {
			continue
		}
		w.DeleteEntity(Entity{ID: w.entities.ids[i], Index: i})
	}
}

// Has reports whether e has the component registered under id.
func (w *World) Has(e Entity, id ComponentID) bool {
	w.checkOpen()
	return w.table(id).used(e.Index)
}

// Remove detaches the component registered under id from e. It panics if the
// component is not attached.
func (w *World) Remove(e Entity, id ComponentID) {
	w.checkOpen()
	w.checkLive(e)
	t := w.table(id)
	if !t.used(e.Index) {
		violation(ErrComponentMissing, "%s on entity %s", t.typeOf(), e)
	}
	t.detach(w, e)
}

// Broadcast delivers ev to every entity holding a component whose system
// subscribes to it. Component types are visited in registration order and
// slots in ascending index order; types without a subscriber are skipped
// without scanning.
//
// Handlers may mutate the payload they receive and create or delete other
// entities, but must not trigger growth or register component types.
func (w *World) Broadcast(ev Event) {
	w.checkOpen()
	if int(ev) >= MaxEvents {
		violation(ErrInvalidEvent, "broadcast of %d", ev)
	}
	w.depth++
	defer func() { w.depth-- }()
	for _, t := range w.components.tables {
		if !t.subscribed(ev) {
			continue
		}
		t.dispatch(w, ev)
	}
}

// Close releases every array owned by the World. Any later operation panics.
func (w *World) Close() {
	if w.closed {
		return
	}
	if w.depth > 0 {
		violation(ErrStructuralMutation, "close")
	}
	w.entities = entityRegistry{}
	w.components = componentRegistry{}
	w.closed = true
	w.log.Debug().Msg("world closed")
}

// expand doubles the capacity of the entity table, the bitmap and every
// component table. New slots are empty and untagged.
func (w *World) expand() {
	if w.depth > 0 {
		violation(ErrStructuralMutation, "growth beyond %d slots", w.entities.capacity)
	}
	oldCap := w.entities.capacity
	newCap := oldCap * 2
	w.entities.resize(newCap)
	for _, t := range w.components.tables {
		t.resize(newCap)
	}
	w.log.Debug().Int("old_capacity", oldCap).Int("new_capacity", newCap).Msg("world expanded")
	Publish(w.bus, CapacityGrown{Old: oldCap, New: newCap})
}

// invoke runs a user handler with the World in dispatch state.
func (w *World) invoke(fn func()) {
	w.depth++
	defer func() { w.depth-- }()
	fn()
}

func (w *World) table(id ComponentID) table {
	if int(id) >= len(w.components.tables) {
		violation(ErrComponentNotRegistered, "component id %d", id)
	}
	return w.components.tables[id]
}

func (w *World) checkLive(e Entity) {
	if !w.entities.occupied(e.Index) {
		violation(ErrEntityNotFound, "entity %s", e)
	}
	if w.entities.ids[e.Index] != e.ID {
		violation(ErrStaleEntity, "entity %s, slot holds %d", e, w.entities.ids[e.Index])
	}
}

func (w *World) checkOpen() {
	if w.closed {
		violation(ErrWorldClosed, "world used after Close")
	}
}
