package slotecs

// Builder creates entities that start with component T attached. It caches
// the table lookup, so spawning many entities of one kind avoids the type
// map on every call.
type Builder[T any] struct {
	world *World
	table *componentTable[T]
}

// NewBuilder returns a Builder for T. It panics if T is not registered.
func NewBuilder[T any](w *World) *Builder[T] {
	return &Builder[T]{world: w, table: tableOf[T](w)}
}

// NewEntity creates an entity with T attached, keeping whatever the slot
// already holds as payload, and runs Init.
func (b *Builder[T]) NewEntity() Entity {
	e := b.world.CreateEntity()
	b.table.attach(b.world, e, nil)
	return e
}

// NewEntityWithValue creates an entity with T set to comp and runs Init.
func (b *Builder[T]) NewEntityWithValue(comp T) (Entity, *T) {
	e := b.world.CreateEntity()
	return e, b.table.attach(b.world, e, &comp)
}

// NewEntities creates count entities with T set to comp.
func (b *Builder[T]) NewEntities(count int, comp T) []Entity {
	if count <= 0 {
		return nil
	}
	ents := make([]Entity, count)
	for k := range ents {
		ents[k], _ = b.NewEntityWithValue(comp)
	}
	return ents
}

// Get returns e's T, panicking if absent or if e was deleted.
func (b *Builder[T]) Get(e Entity) *T {
	b.world.checkOpen()
	b.world.checkLive(e)
	return b.table.get(e)
}
