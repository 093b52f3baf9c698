package slotecs

import "reflect"

// MaxNotificationTypes defines the maximum number of distinct notification
// types an EventBus can carry.
const MaxNotificationTypes = 256

// EntityCreated is published after an entity is allocated.
type EntityCreated struct {
	Entity Entity
}

// EntityDeleted is published after an entity's slot has been freed.
type EntityDeleted struct {
	Entity Entity
}

// CapacityGrown is published after the World doubled its capacity.
type CapacityGrown struct {
	Old int
	New int
}

// EventBus is a typed publish/subscribe channel for observers outside the
// component systems, such as tooling and debug overlays. Handlers are called
// synchronously in subscription order.
//
// Unlike World.Broadcast, which fans out per component, a notification
// reaches each subscriber once.
type EventBus struct {
	typeMap  map[reflect.Type]uint8
	handlers [MaxNotificationTypes][]any
	nextID   uint16
}

// Subscribe registers handler for notifications of type T.
//
// Parameters:
//   - bus: The EventBus to subscribe to.
//   - handler: A function that takes a single argument of type T.
func Subscribe[T any](bus *EventBus, handler func(T)) {
	id := bus.typeID(reflect.TypeFor[T]())
	if cap(bus.handlers[id]) == 0 {
		bus.handlers[id] = make([]any, 0, 4)
	}
	bus.handlers[id] = append(bus.handlers[id], handler)
}

// Publish sends n to every handler subscribed to T. Publishing a type with no
// subscribers does nothing.
func Publish[T any](bus *EventBus, n T) {
	if bus.typeMap == nil {
		return
	}
	id, ok := bus.typeMap[reflect.TypeFor[T]()]
	if !ok {
		return
	}
	for _, h := range bus.handlers[id] {
		h.(func(T))(n)
	}
}

// typeID retrieves or assigns an ID for the notification type.
func (bus *EventBus) typeID(t reflect.Type) uint8 {
	if bus.typeMap == nil {
		bus.typeMap = make(map[reflect.Type]uint8)
	}
	if id, ok := bus.typeMap[t]; ok {
		return id
	}
	if int(bus.nextID) >= MaxNotificationTypes {
		violation(ErrTooManyNotifications, "cannot add %s, limit is %d", t, MaxNotificationTypes)
	}
	id := uint8(bus.nextID)
	bus.nextID++
	bus.typeMap[t] = id
	return id
}
