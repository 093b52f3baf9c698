package slotecs

import "github.com/rotisserie/eris"

// Precondition violations. The engine panics with one of these (wrapped with
// the offending entity or component) instead of returning it, because
// continuing would corrupt tag or occupancy state. Use eris.Is on a recovered
// value to tell them apart.
var (
	ErrEntityNotFound         = eris.New("entity slot is not occupied")
	ErrStaleEntity            = eris.New("entity handle does not match slot occupant")
	ErrComponentPresent       = eris.New("component already attached")
	ErrComponentMissing       = eris.New("component not attached")
	ErrComponentNotRegistered = eris.New("component type not registered")
	ErrComponentRegistered    = eris.New("component type already registered")
	ErrTooManyComponents      = eris.New("too many component types")
	ErrInvalidEvent           = eris.New("invalid event kind")
	ErrStructuralMutation     = eris.New("structural mutation during dispatch")
	ErrWorldClosed            = eris.New("world is closed")
	ErrTooManyNotifications   = eris.New("too many notification types")
	ErrResourceExists         = eris.New("resource already exists")
	ErrResourceMissing        = eris.New("resource not found")
)

// ErrInvalidConfig is returned, not panicked, by configuration loading.
var ErrInvalidConfig = eris.New("invalid configuration")

func violation(err error, format string, args ...any) {
	panic(eris.Wrapf(err, format, args...))
}
