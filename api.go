package slotecs

import "reflect"

// Register creates the storage table for component type T, sized to the
// World's current capacity with every slot empty, and binds sys to it. It may
// be called after entities exist; none of them has the new component.
//
// It panics if T is already registered, if MaxComponentTypes is reached, or if
// called from inside a handler.
//
// Parameters:
//   - w: The World to register the type in.
//   - sys: The handlers bound to T. The zero System binds none.
//
// Returns:
//   - The ComponentID assigned to T.
func Register[T any](w *World, sys System[T]) ComponentID {
	w.checkOpen()
	if w.depth > 0 {
		violation(ErrStructuralMutation, "register %s", reflect.TypeFor[T]())
	}
	typ := reflect.TypeFor[T]()
	if _, ok := w.components.typeMap[typ]; ok {
		violation(ErrComponentRegistered, "%s", typ)
	}
	if len(w.components.tables) >= MaxComponentTypes {
		violation(ErrTooManyComponents, "cannot register %s, limit is %d", typ, MaxComponentTypes)
	}
	id := ComponentID(len(w.components.tables))
	w.components.tables = append(w.components.tables, newComponentTable(id, w.entities.capacity, sys))
	w.components.typeMap[typ] = id
	w.log.Debug().
		Int("component_id", int(id)).
		Str("component_name", typ.String()).
		Int("capacity", w.entities.capacity).
		Msg("component registered")
	return id
}

// ID returns the ComponentID of T, panicking if T is not registered.
func ID[T any](w *World) ComponentID {
	typ := reflect.TypeFor[T]()
	id, ok := w.components.typeMap[typ]
	if !ok {
		violation(ErrComponentNotRegistered, "%s", typ)
	}
	return id
}

// TryID returns the ComponentID of T and whether T is registered.
func TryID[T any](w *World) (ComponentID, bool) {
	id, ok := w.components.typeMap[reflect.TypeFor[T]()]
	return id, ok
}

// AddComponent attaches T to e with the given initial value and runs the Init
// handler once the value is in place. It panics if e already has T or has
// been deleted.
//
// Returns:
//   - A pointer to the stored component, valid until the next growth or
//     deletion affecting the table.
func AddComponent[T any](w *World, e Entity, value T) *T {
	w.checkOpen()
	w.checkLive(e)
	return tableOf[T](w).attach(w, e, &value)
}

// AttachComponent attaches T to e without supplying a value. The payload keeps
// whatever the slot already holds: zero for a never used slot, the previous
// value after a detach.
func AttachComponent[T any](w *World, e Entity) *T {
	w.checkOpen()
	w.checkLive(e)
	return tableOf[T](w).attach(w, e, nil)
}

// RemoveComponent detaches T from e. The tag is cleared before the Destroy
// handler runs. It panics if e does not have T.
func RemoveComponent[T any](w *World, e Entity) {
	w.checkOpen()
	w.checkLive(e)
	t := tableOf[T](w)
	if !t.used(e.Index) {
		violation(ErrComponentMissing, "%s on entity %s", t.typ, e)
	}
	t.detach(w, e)
}

// HasComponent reports whether e has T attached.
func HasComponent[T any](w *World, e Entity) bool {
	w.checkOpen()
	return tableOf[T](w).used(e.Index)
}

// GetComponent returns a pointer to e's T. It panics if e does not have T
// or no longer exists; check HasComponent first when unsure.
func GetComponent[T any](w *World, e Entity) *T {
	w.checkOpen()
	w.checkLive(e)
	return tableOf[T](w).get(e)
}

// Each calls fn for every entity holding T in ascending slot order. The
// World is in dispatch state while fn runs.
func Each[T any](w *World, fn func(e Entity, c *T)) {
	w.checkOpen()
	t := tableOf[T](w)
	w.depth++
	defer func() { w.depth-- }()
	for i := range t.slots {
		s := &t.slots[i]
		if s.tag&TagUsed == 0 {
			continue
		}
		fn(Entity{ID: w.entities.ids[i], Index: i}, &s.value)
	}
}

// Count returns the number of entities holding T.
func Count[T any](w *World) int {
	w.checkOpen()
	return tableOf[T](w).count()
}

func tableOf[T any](w *World) *componentTable[T] {
	return w.table(ID[T](w)).(*componentTable[T])
}
