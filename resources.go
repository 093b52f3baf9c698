package slotecs

import "reflect"

// Resources holds the application context handlers reach through their
// *World argument, for example the game world that owns the ECS or a shared
// camera. It keeps at most one *T per type T and never owns the values.
//
// Several Worlds may share one Resources via WithResources.
type Resources struct {
	items map[reflect.Type]any
}

// AddResource stores v as the *T of r. It panics if v is nil or a *T is
// already stored.
func AddResource[T any](r *Resources, v *T) {
	typ := reflect.TypeFor[T]()
	if v == nil {
		violation(ErrResourceMissing, "nil *%s", typ)
	}
	if r.items == nil {
		r.items = make(map[reflect.Type]any)
	}
	if _, ok := r.items[typ]; ok {
		violation(ErrResourceExists, "%s", typ)
	}
	r.items[typ] = v
}

// GetResource returns the stored *T and whether one is present.
func GetResource[T any](r *Resources) (*T, bool) {
	v, ok := r.items[reflect.TypeFor[T]()]
	if !ok {
		return nil, false
	}
	return v.(*T), true
}

// RemoveResource drops the stored *T, if any.
func RemoveResource[T any](r *Resources) {
	delete(r.items, reflect.TypeFor[T]())
}

// Resource returns the *T stored in w's resources. Handlers use it to get back
// to their context; a missing *T is a wiring bug, so it panics.
func Resource[T any](w *World) *T {
	v, ok := GetResource[T](w.resources)
	if !ok {
		violation(ErrResourceMissing, "%s", reflect.TypeFor[T]())
	}
	return v
}

// Len returns the number of stored resources.
func (r *Resources) Len() int {
	return len(r.items)
}

// Clear drops every resource.
func (r *Resources) Clear() {
	clear(r.items)
}
