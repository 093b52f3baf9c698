package slotecs

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// go test -run ^TestCreateEntity$ . -count 1
func TestCreateEntity(t *testing.T) {
	w := setupWorld(t)
	e1 := w.CreateEntity()
	e2 := w.CreateEntity()

	assert.Equal(t, EntityID(1), e1.ID, "first identifier")
	assert.Equal(t, 0, e1.Index)
	assert.Equal(t, EntityID(2), e2.ID)
	assert.Equal(t, 1, e2.Index)
	assert.Equal(t, 2, w.Len())

	assert.False(t, HasComponent[Position](w, e1), "new entities have no components")
	assert.False(t, HasComponent[Velocity](w, e1))
	assert.False(t, HasComponent[Health](w, e1))
}

func TestCreateEntities(t *testing.T) {
	w := setupWorld(t)
	ents := w.CreateEntities(5)
	require.Len(t, ents, 5)
	for i, e := range ents {
		assert.Equal(t, i, e.Index)
		assert.Equal(t, EntityID(i+1), e.ID)
	}
	assert.Nil(t, w.CreateEntities(0))
}

// go test -run ^TestSlotReuse$ . -count 1
func TestSlotReuse(t *testing.T) {
	w := setupWorld(t)
	ents := w.CreateEntities(4)

	w.DeleteEntity(ents[1])
	assert.Equal(t, EntityNone, w.entities.ids[1])
	assert.False(t, w.entities.used.get(1))

	e := w.CreateEntity()
	assert.Equal(t, 1, e.Index, "lowest free slot is reused")
	assert.Equal(t, EntityID(5), e.ID, "identifier is fresh")
	assert.False(t, w.IsValid(ents[1]), "old handle is stale")
	assert.True(t, w.IsValid(e))
}

func TestIdentifiersNeverReused(t *testing.T) {
	w := setupWorld(t, WithInitialCapacity(8))
	rng := rand.New(rand.NewPCG(1, 2))

	seen := make(map[EntityID]bool)
	var live []Entity
	var last EntityID
	for step := 0; step < 2000; step++ {
		if len(live) > 0 && rng.IntN(3) == 0 {
			k := rng.IntN(len(live))
			w.DeleteEntity(live[k])
			live = append(live[:k], live[k+1:]...)
			continue
		}
		e := w.CreateEntity()
		require.Greater(t, e.ID, last, "identifiers strictly increase")
		require.False(t, seen[e.ID], "identifier %d reused", e.ID)
		seen[e.ID] = true
		last = e.ID
		live = append(live, e)
	}

	// occupancy bit set iff the entity table holds an identifier
	for i := 0; i < w.Capacity(); i++ {
		assert.Equal(t, w.entities.ids[i] != EntityNone, w.entities.used.get(i), "slot %d", i)
	}
	assert.Equal(t, len(live), w.Len())
	for _, e := range live {
		assert.True(t, w.IsValid(e))
	}
}

// go test -run ^TestGrowth$ . -count 1
func TestGrowth(t *testing.T) {
	w := setupWorld(t)
	require.Equal(t, 64, w.Capacity())

	grown := 0
	Subscribe(w.Bus(), func(g CapacityGrown) {
		grown++
		assert.Equal(t, 64, g.Old)
		assert.Equal(t, 128, g.New)
	})

	ents := make([]Entity, 0, 65)
	for i := 0; i < 64; i++ {
		e := w.CreateEntity()
		AddComponent(w, e, Position{X: float64(i), Y: float64(-i)})
		if i%2 == 0 {
			AddComponent(w, e, Health{Current: i, Max: 100})
		}
		ents = append(ents, e)
	}
	require.Equal(t, 0, grown)

	last := w.CreateEntity()
	ents = append(ents, last)

	assert.Equal(t, 1, grown, "exactly one doubling")
	assert.Equal(t, 128, w.Capacity())
	assert.Equal(t, 64, last.Index, "slot old_capacity is used")
	assert.Len(t, w.entities.ids, 128)
	assert.Len(t, w.entities.used, 2)

	assert.Equal(t, EntityID(1), ents[0].ID, "slot 0 keeps its identifier")
	assert.Equal(t, EntityID(1), w.entities.ids[0])
	for i, e := range ents[:64] {
		p := GetComponent[Position](w, e)
		assert.Equal(t, Position{X: float64(i), Y: float64(-i)}, *p)
		assert.Equal(t, i%2 == 0, HasComponent[Health](w, e))
		if i%2 == 0 {
			assert.Equal(t, Health{Current: i, Max: 100}, *GetComponent[Health](w, e))
		}
	}

	pos := w.components.tables[ID[Position](w)].(*componentTable[Position])
	require.Len(t, pos.slots, 128)
	for i := 64; i < 128; i++ {
		assert.Equal(t, slot[Position]{}, pos.slots[i], "new slot %d is zeroed", i)
		if i > 64 {
			assert.Equal(t, EntityNone, w.entities.ids[i])
		}
	}
}

func TestGrowthNonPowerOfTwo(t *testing.T) {
	w := setupWorld(t, WithInitialCapacity(3))
	ents := w.CreateEntities(7)
	assert.Equal(t, 12, w.Capacity())
	for i, e := range ents {
		assert.Equal(t, i, e.Index)
	}
}

func TestRegisterAfterEntitiesExist(t *testing.T) {
	w := setupWorld(t, WithInitialCapacity(4))
	ents := w.CreateEntities(6)
	require.Equal(t, 8, w.Capacity())

	Register(w, System[Marker]{})
	for _, e := range ents {
		assert.False(t, HasComponent[Marker](w, e))
	}
	AttachComponent[Marker](w, ents[5])
	assert.True(t, HasComponent[Marker](w, ents[5]))

	w.CreateEntities(3)
	assert.Equal(t, 16, w.Capacity())
	assert.True(t, HasComponent[Marker](w, ents[5]), "late table grows with the rest")
	assert.Equal(t, 1, Count[Marker](w))
}

// go test -run ^TestPositionScenario$ . -count 1
func TestPositionScenario(t *testing.T) {
	w := NewWorld()
	Register(w, System[Position]{})

	e1 := w.CreateEntity()
	AddComponent(w, e1, Position{X: 1.0, Y: 2.0})
	require.True(t, HasComponent[Position](w, e1))
	assert.Equal(t, Position{X: 1.0, Y: 2.0}, *GetComponent[Position](w, e1))

	w.DeleteEntity(e1)

	e2 := w.CreateEntity()
	require.Equal(t, e1.Index, e2.Index)
	assert.False(t, HasComponent[Position](w, e2), "fresh entity in the same slot has no component")

	AddComponent(w, e2, Position{X: 3})
	assert.Equal(t, Position{X: 3}, *GetComponent[Position](w, e2))
}

func TestAttachWithoutValueKeepsSlotBytes(t *testing.T) {
	w := setupWorld(t)
	e := w.CreateEntity()

	p := AttachComponent[Position](w, e)
	assert.Equal(t, Position{}, *p, "never used slot is zero")
	p.X = 9

	RemoveComponent[Position](w, e)
	p = AttachComponent[Position](w, e)
	assert.Equal(t, Position{X: 9}, *p, "payload survives a detach")
}

func TestRemoveComponent(t *testing.T) {
	w := setupWorld(t)
	e := w.CreateEntity()
	AddComponent(w, e, Position{X: 1})
	AddComponent(w, e, Velocity{VX: 2})

	RemoveComponent[Position](w, e)
	assert.False(t, HasComponent[Position](w, e))
	assert.True(t, HasComponent[Velocity](w, e))

	w.Remove(e, ID[Velocity](w))
	assert.False(t, w.Has(e, ID[Velocity](w)))
}

func TestTagConsistency(t *testing.T) {
	w := setupWorld(t, WithInitialCapacity(16))
	rng := rand.New(rand.NewPCG(7, 7))
	ents := w.CreateEntities(40)
	for _, e := range ents {
		if rng.IntN(2) == 0 {
			AddComponent(w, e, Position{X: float64(e.ID)})
		}
		if rng.IntN(2) == 0 {
			AddComponent(w, e, Velocity{VX: float64(e.ID)})
		}
	}
	for _, e := range ents {
		if rng.IntN(4) == 0 {
			w.DeleteEntity(e)
		}
	}

	for _, t0 := range w.components.tables {
		for i := 0; i < w.Capacity(); i++ {
			e := Entity{ID: w.entities.ids[i], Index: i}
			assert.Equal(t, t0.used(i), w.Has(e, t0.id()), "%s slot %d", t0.typeOf(), i)
			if !w.entities.used.get(i) {
				assert.False(t, t0.used(i), "free slot %d carries %s", i, t0.typeOf())
			}
		}
	}
}

func TestClear(t *testing.T) {
	destroyed := 0
	w := NewWorld()
	Register(w, System[Position]{
		Destroy: func(*World, Entity, *Position) { destroyed++ },
	})
	for _, e := range w.CreateEntities(10) {
		AddComponent(w, e, Position{})
	}
	w.Clear()
	assert.Equal(t, 0, w.Len())
	assert.Equal(t, 10, destroyed)
	assert.Equal(t, 64, w.Capacity())
	assert.Equal(t, EntityID(11), w.CreateEntity().ID)
}

func TestPreconditionViolations(t *testing.T) {
	w := setupWorld(t)
	e := w.CreateEntity()
	AddComponent(w, e, Position{})

	t.Run("double attach", func(t *testing.T) {
		requireViolation(t, ErrComponentPresent, func() { AddComponent(w, e, Position{}) })
		requireViolation(t, ErrComponentPresent, func() { AttachComponent[Position](w, e) })
	})
	t.Run("detach absent", func(t *testing.T) {
		requireViolation(t, ErrComponentMissing, func() { RemoveComponent[Velocity](w, e) })
		requireViolation(t, ErrComponentMissing, func() { w.Remove(e, ID[Health](w)) })
	})
	t.Run("get absent", func(t *testing.T) {
		requireViolation(t, ErrComponentMissing, func() { GetComponent[Velocity](w, e) })
	})
	t.Run("unregistered type", func(t *testing.T) {
		requireViolation(t, ErrComponentNotRegistered, func() { HasComponent[Marker](w, e) })
		requireViolation(t, ErrComponentNotRegistered, func() { w.Has(e, ComponentID(200)) })
	})
	t.Run("register twice", func(t *testing.T) {
		requireViolation(t, ErrComponentRegistered, func() { Register(w, System[Position]{}) })
	})
	t.Run("delete free slot", func(t *testing.T) {
		requireViolation(t, ErrEntityNotFound, func() { w.DeleteEntity(Entity{ID: 99, Index: 40}) })
	})
	t.Run("delete twice", func(t *testing.T) {
		e2 := w.CreateEntity()
		w.DeleteEntity(e2)
		requireViolation(t, ErrEntityNotFound, func() { w.DeleteEntity(e2) })
	})
	t.Run("stale handle", func(t *testing.T) {
		e3 := w.CreateEntity()
		w.DeleteEntity(e3)
		w.CreateEntity()
		requireViolation(t, ErrStaleEntity, func() { w.DeleteEntity(e3) })
	})
	t.Run("component ops on deleted handle", func(t *testing.T) {
		dead := w.CreateEntity()
		w.DeleteEntity(dead)
		requireViolation(t, ErrEntityNotFound, func() { AddComponent(w, dead, Position{X: 5}) })
		requireViolation(t, ErrEntityNotFound, func() { AttachComponent[Velocity](w, dead) })
		requireViolation(t, ErrEntityNotFound, func() { GetComponent[Position](w, dead) })
		requireViolation(t, ErrEntityNotFound, func() { NewBuilder[Position](w).Get(dead) })

		fresh := w.CreateEntity()
		require.Equal(t, dead.Index, fresh.Index)
		assert.False(t, HasComponent[Position](w, fresh), "reused slot starts empty")
		assert.False(t, HasComponent[Velocity](w, fresh))
		w.DeleteEntity(fresh)
	})
	t.Run("component ops on stale handle", func(t *testing.T) {
		old := w.CreateEntity()
		AddComponent(w, old, Health{Current: 1})
		w.DeleteEntity(old)
		cur := w.CreateEntity()
		require.Equal(t, old.Index, cur.Index)
		AddComponent(w, cur, Health{Current: 2})

		requireViolation(t, ErrStaleEntity, func() { AddComponent(w, old, Position{}) })
		requireViolation(t, ErrStaleEntity, func() { RemoveComponent[Health](w, old) })
		requireViolation(t, ErrStaleEntity, func() { w.Remove(old, ID[Health](w)) })
		requireViolation(t, ErrStaleEntity, func() { GetComponent[Health](w, old) })
		assert.Equal(t, 2, GetComponent[Health](w, cur).Current)
	})
}

func TestClose(t *testing.T) {
	w := setupWorld(t)
	e := w.CreateEntity()
	w.Close()
	w.Close()
	requireViolation(t, ErrWorldClosed, func() { w.CreateEntity() })
	requireViolation(t, ErrWorldClosed, func() { HasComponent[Position](w, e) })
	requireViolation(t, ErrWorldClosed, func() { w.Broadcast(EventTick) })
}

func TestBusNotifications(t *testing.T) {
	w := setupWorld(t)
	var created, deleted []Entity
	Subscribe(w.Bus(), func(n EntityCreated) { created = append(created, n.Entity) })
	Subscribe(w.Bus(), func(n EntityDeleted) { deleted = append(deleted, n.Entity) })

	e1 := w.CreateEntity()
	e2 := w.CreateEntity()
	w.DeleteEntity(e1)

	assert.Equal(t, []Entity{e1, e2}, created)
	assert.Equal(t, []Entity{e1}, deleted)
}

func TestStats(t *testing.T) {
	w := setupWorld(t)
	ents := w.CreateEntities(3)
	AddComponent(w, ents[0], Position{})
	AddComponent(w, ents[1], Position{})
	AddComponent(w, ents[2], Health{})

	s := w.Stats()
	assert.Equal(t, 64, s.Capacity)
	assert.Equal(t, 3, s.Live)
	assert.Equal(t, EntityID(4), s.NextID)
	require.Len(t, s.Components, 3)
	assert.Equal(t, ComponentStats{ID: 0, Name: "slotecs.Position", Count: 2}, s.Components[0])
	assert.Equal(t, 0, s.Components[1].Count)
	assert.Equal(t, 1, s.Components[2].Count)
}
