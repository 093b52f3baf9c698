package slotecs

import "strconv"

// Event identifies a broadcast kind. The first kinds are fixed by the engine;
// applications define their own starting at EventUser.
type Event uint8

const (
	EventInit Event = iota
	EventDestroy
	EventRender
	EventUpdate
	EventTick

	// EventUser is the first application-defined event kind.
	EventUser
)

// MaxEvents bounds the number of event kinds, built-in kinds included.
const MaxEvents = 32

var eventNames = [...]string{"init", "destroy", "render", "update", "tick"}

func (ev Event) String() string {
	if int(ev) < len(eventNames) {
		return eventNames[ev]
	}
	return "user" + strconv.Itoa(int(ev-EventUser))
}

// Handler is invoked with the component payload of one entity. The pointer
// refers directly into the component table and may be mutated freely.
type Handler[T any] func(w *World, e Entity, c *T)

// System is the set of callbacks bound to a component type at registration.
// Every handler is optional.
//
// Init and Destroy run when the component is attached and detached. They are
// also the subscribers for EventInit and EventDestroy, so broadcasting those
// kinds re-runs them for every holder.
type System[T any] struct {
	Init    Handler[T]
	Destroy Handler[T]
	Render  Handler[T]
	Update  Handler[T]
	Tick    Handler[T]

	// Custom binds subscribers for kinds at or above EventUser.
	Custom map[Event]Handler[T]
}

// handlers flattens the system into a lookup table indexed by Event.
func (s System[T]) handlers() [MaxEvents]Handler[T] {
	var hs [MaxEvents]Handler[T]
	hs[EventInit] = s.Init
	hs[EventDestroy] = s.Destroy
	hs[EventRender] = s.Render
	hs[EventUpdate] = s.Update
	hs[EventTick] = s.Tick
	for ev, h := range s.Custom {
		if ev < EventUser || int(ev) >= MaxEvents {
			violation(ErrInvalidEvent, "custom subscriber for %s", ev)
		}
		hs[ev] = h
	}
	return hs
}
