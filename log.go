package slotecs

import "github.com/rs/zerolog"

func componentDict(t table) *zerolog.Event {
	return zerolog.Dict().
		Int("component_id", int(t.id())).
		Str("component_name", t.typeOf().String())
}

// LogComponents logs every registered component type with its live count.
func LogComponents(logger *zerolog.Logger, w *World, level zerolog.Level) {
	arr := zerolog.Arr()
	for _, t := range w.components.tables {
		arr = arr.Dict(componentDict(t).Int("count", t.count()))
	}
	logger.WithLevel(level).
		Int("total_components", len(w.components.tables)).
		Int("capacity", w.entities.capacity).
		Int("live_entities", w.entities.live).
		Array("components", arr).
		Send()
}

// LogEntity logs e and the component types attached to it.
func LogEntity(logger *zerolog.Logger, w *World, e Entity, level zerolog.Level) {
	arr := zerolog.Arr()
	if w.IsValid(e) {
		for _, t := range w.components.tables {
			if t.used(e.Index) {
				arr = arr.Dict(componentDict(t))
			}
		}
	}
	logger.WithLevel(level).
		Uint64("entity_id", uint64(e.ID)).
		Int("slot", e.Index).
		Bool("valid", w.IsValid(e)).
		Array("components", arr).
		Send()
}
