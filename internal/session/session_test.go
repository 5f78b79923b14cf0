package session

import (
	"testing"

	"github.com/frudas24/deskquad/internal/geometry"
	"github.com/frudas24/deskquad/internal/window"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAuthenticate_Success verifies successful authentication.
func TestAuthenticate_Success(t *testing.T) {
	s := New("secret")
	require.True(t, s.Authenticate("secret"), "expected authentication to succeed")
	assert.True(t, s.IsAuthenticated(), "expected authenticated state")
}

// TestAuthenticate_Fail verifies failed authentication.
func TestAuthenticate_Fail(t *testing.T) {
	s := New("secret")
	assert.False(t, s.Authenticate("nope"), "expected authentication to fail")
	assert.False(t, s.IsAuthenticated(), "expected unauthenticated state")
}

// TestAuthenticate_EmptyPassword verifies an unset password never authenticates.
func TestAuthenticate_EmptyPassword(t *testing.T) {
	s := New("")
	assert.False(t, s.Authenticate(""), "expected empty password to be rejected")
}

// TestLogout verifies logout clears auth state.
func TestLogout(t *testing.T) {
	s := New("secret")
	s.Authenticate("secret")
	s.Logout()
	assert.False(t, s.IsAuthenticated(), "expected unauthenticated state")
}

// TestPaused_Toggle verifies the pause switch.
func TestPaused_Toggle(t *testing.T) {
	s := New("secret")
	s.SetPaused(true)
	assert.True(t, s.Paused(), "expected paused")
	s.SetPaused(false)
	assert.False(t, s.Paused(), "expected resumed")
}

// TestRecord_LastOnlyTracksSuccess verifies rejected placements do not replace the last window.
func TestRecord_LastOnlyTracksSuccess(t *testing.T) {
	s := New("secret")
	_, ok := s.Last()
	require.False(t, ok, "expected no last placement")

	s.Record(Placement{Tool: "Services", Handle: 0x10, Quadrant: "TR", Outcome: window.OutcomeSucceeded})
	s.Record(Placement{Tool: "Regedit", Handle: 0x20, Quadrant: "BL", Outcome: window.OutcomeRejectedUAC})

	last, ok := s.Last()
	require.True(t, ok)
	assert.Equal(t, window.Handle(0x10), last.Handle)
	assert.False(t, last.At.IsZero(), "expected timestamp to be filled")

	s.ForgetLast()
	_, ok = s.Last()
	assert.False(t, ok, "expected last placement to be cleared")
}

// TestRecord_HistoryIsBounded verifies old placements fall off the recent list.
func TestRecord_HistoryIsBounded(t *testing.T) {
	s := New("secret")
	for i := 0; i < historySize+5; i++ {
		s.Record(Placement{Handle: window.Handle(i + 1), Outcome: window.OutcomeSucceeded})
	}
	snap := s.Snapshot()
	require.Len(t, snap.Recent, historySize)
	assert.Equal(t, window.Handle(6), snap.Recent[0].Handle)
	assert.Equal(t, historySize+5, snap.Placements)
}

// TestSnapshot verifies snapshot content and isolation.
func TestSnapshot(t *testing.T) {
	s := New("secret")
	s.Authenticate("secret")
	s.SetPaused(true)
	s.Record(Placement{Handle: 7, Rect: geometry.Rect{W: 10, H: 10}, Outcome: window.OutcomeSucceeded})

	snap := s.Snapshot()
	assert.True(t, snap.Authenticated)
	assert.True(t, snap.Paused)
	require.NotNil(t, snap.Last)
	assert.Equal(t, window.Handle(7), snap.Last.Handle)

	snap.Recent[0].Handle = 99
	assert.Equal(t, window.Handle(7), s.Snapshot().Recent[0].Handle, "expected snapshot copy")
}
