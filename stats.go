package slotecs

// ComponentStats describes one registered component type.
type ComponentStats struct {
	ID    ComponentID `json:"id"`
	Name  string      `json:"name"`
	Count int         `json:"count"`
}

// Stats is a point-in-time snapshot of a World's occupancy.
type Stats struct {
	Capacity   int              `json:"capacity"`
	Live       int              `json:"live"`
	NextID     EntityID         `json:"next_id"`
	Components []ComponentStats `json:"components"`
}

// Stats scans every table and returns the current occupancy. It costs
// O(capacity × component types); use it for tooling, not per frame.
func (w *World) Stats() Stats {
	w.checkOpen()
	s := Stats{
		Capacity:   w.entities.capacity,
		Live:       w.entities.live,
		NextID:     w.entities.nextID,
		Components: make([]ComponentStats, 0, len(w.components.tables)),
	}
	for _, t := range w.components.tables {
		s.Components = append(s.Components, ComponentStats{
			ID:    t.id(),
			Name:  t.typeOf().String(),
			Count: t.count(),
		})
	}
	return s
}
