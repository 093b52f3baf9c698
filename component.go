package slotecs

import "reflect"

// ComponentID is the registration index of a component type within a World.
type ComponentID uint8

// MaxComponentTypes is the maximum number of component types a World holds.
const MaxComponentTypes = 256

// Tag is per-slot metadata. Only TagUsed is defined; the other bits are
// reserved.
type Tag uint8

// TagUsed is set while the entity in the slot has the component attached.
const TagUsed Tag = 1 << 0

// slot is one tagged cell of a component table.
type slot[T any] struct {
	tag   Tag
	value T
}

// table is the type-erased view of a component table used by the engine for
// growth, deletion fan-out and broadcast.
type table interface {
	id() ComponentID
	typeOf() reflect.Type
	used(i int) bool
	resize(capacity int)
	detach(w *World, e Entity)
	subscribed(ev Event) bool
	dispatch(w *World, ev Event)
	count() int
}

// componentTable stores one tagged slot per entity slot index for component
// type T, together with the handlers bound at registration.
type componentTable[T any] struct {
	slots    []slot[T] // len = world capacity
	handlers [MaxEvents]Handler[T]
	typ      reflect.Type
	cid      ComponentID
}

func newComponentTable[T any](cid ComponentID, capacity int, sys System[T]) *componentTable[T] {
	return &componentTable[T]{
		slots:    make([]slot[T], capacity),
		handlers: sys.handlers(),
		typ:      reflect.TypeFor[T](),
		cid:      cid,
	}
}

func (t *componentTable[T]) id() ComponentID      { return t.cid }
func (t *componentTable[T]) typeOf() reflect.Type { return t.typ }

func (t *componentTable[T]) used(i int) bool {
	return t.slots[i].tag&TagUsed != 0
}

// resize appends zeroed slots up to capacity. Existing slots keep their tags
// and payloads.
func (t *componentTable[T]) resize(capacity int) {
	t.slots = append(t.slots, make([]slot[T], capacity-len(t.slots))...)
}

// attach tags the slot, optionally copies v into it and runs Init.
func (t *componentTable[T]) attach(w *World, e Entity, v *T) *T {
	s := &t.slots[e.Index]
	if s.tag&TagUsed != 0 {
		violation(ErrComponentPresent, "%s on entity %s", t.typ, e)
	}
	s.tag |= TagUsed
	if v != nil {
		s.value = *v
	}
	if h := t.handlers[EventInit]; h != nil {
		w.invoke(func() { h(w, e, &s.value) })
	}
	return &s.value
}

// detach clears the tag, then runs Destroy, so the handler already observes
// the component as absent. Slots without the component are left alone.
func (t *componentTable[T]) detach(w *World, e Entity) {
	s := &t.slots[e.Index]
	if s.tag&TagUsed == 0 {
		return
	}
	s.tag &^= TagUsed
	if h := t.handlers[EventDestroy]; h != nil {
		w.invoke(func() { h(w, e, &s.value) })
	}
}

// get returns the payload for e, panicking when the component is absent.
func (t *componentTable[T]) get(e Entity) *T {
	s := &t.slots[e.Index]
	if s.tag&TagUsed == 0 {
		violation(ErrComponentMissing, "%s on entity %s", t.typ, e)
	}
	return &s.value
}

func (t *componentTable[T]) subscribed(ev Event) bool {
	return t.handlers[ev] != nil
}

// dispatch invokes the handler for ev on every used slot in ascending index
// order.
func (t *componentTable[T]) dispatch(w *World, ev Event) {
	h := t.handlers[ev]
	if h == nil {
		return
	}
	for i := range t.slots {
		s := &t.slots[i]
		if s.tag&TagUsed == 0 {
			continue
		}
		h(w, Entity{ID: w.entities.ids[i], Index: i}, &s.value)
	}
}

func (t *componentTable[T]) count() int {
	n := 0
	for i := range t.slots {
		if t.slots[i].tag&TagUsed != 0 {
			n++
		}
	}
	return n
}
