package input

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLatchReportsOnce(t *testing.T) {
	var l Latch
	l.Press(ActionCapture, true)

	require.True(t, l.Capture())
	require.False(t, l.Capture())
	require.False(t, l.Next())
	require.False(t, l.Prev())
	require.False(t, l.Restore())
}

func TestLatchRequiresModifier(t *testing.T) {
	var l Latch
	l.Press(ActionNext, false)
	require.False(t, l.Next())
	// the unmodified press was consumed too
	l.Press(ActionNext, true)
	require.True(t, l.Next())
}

func TestLatchActionsAreIndependent(t *testing.T) {
	var l Latch
	l.Press(ActionPrev, true)
	l.Press(ActionRestore, true)

	require.True(t, l.Restore())
	require.True(t, l.Prev())
	require.False(t, l.Next())
	require.False(t, l.Capture())
}

func TestLatchReset(t *testing.T) {
	var l Latch
	l.Press(ActionNext, true)
	l.Reset()
	require.False(t, l.Next())
}

func TestLatchIgnoresUnknownAction(t *testing.T) {
	var l Latch
	require.NotPanics(t, func() { l.Press(Action(42), true) })
	require.NotPanics(t, func() { l.Press(Action(-1), true) })
}

func TestStatic(t *testing.T) {
	s := Static{WantCapture: true}
	require.True(t, s.Capture())
	require.True(t, s.Capture())
	require.False(t, s.Next())
}
