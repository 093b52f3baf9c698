package slotecs

import (
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/require"
)

// --- Test Components ---
type Position struct{ X, Y float64 }
type Velocity struct{ VX, VY float64 }
type Health struct{ Current, Max int }
type Marker struct{}

// requireViolation runs fn and asserts it panics with an error matching target.
func requireViolation(t *testing.T, target error, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		require.NotNil(t, r, "expected panic with %v", target)
		err, ok := r.(error)
		require.True(t, ok, "panic value %v is not an error", r)
		require.True(t, eris.Is(err, target), "got %v, want %v", err, target)
	}()
	fn()
}

// setupWorld returns a World with Position, Velocity and Health registered
// without handlers.
func setupWorld(t *testing.T, opts ...Option) *World {
	t.Helper()
	w := NewWorld(opts...)
	Register(w, System[Position]{})
	Register(w, System[Velocity]{})
	Register(w, System[Health]{})
	return w
}
