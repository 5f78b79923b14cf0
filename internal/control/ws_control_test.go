package control_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/frudas24/deskquad/internal/control"
	"github.com/frudas24/deskquad/internal/geometry"
	"github.com/frudas24/deskquad/internal/launcher"
	"github.com/frudas24/deskquad/internal/session"
	"github.com/frudas24/deskquad/internal/testutil"
	"github.com/frudas24/deskquad/internal/window"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// harness bundles a control server over fake OS seams.
type harness struct {
	platform *testutil.FakePlatform
	starter  *testutil.FakeStarter
	session  *session.Session
	server   *control.Server
}

// newHarness builds a server with a one-tool catalog and a short poll timeout.
func newHarness(t *testing.T) *harness {
	t.Helper()
	return newHarnessTimeout(t, 50*time.Millisecond)
}

// newHarnessTimeout builds a server whose placements poll for up to timeout.
func newHarnessTimeout(t *testing.T, timeout time.Duration) *harness {
	t.Helper()
	p := &testutil.FakePlatform{}
	procs := &testutil.FakeProcesses{Procs: map[uint32]testutil.FakeProcess{
		10: {Image: `C:\Windows\explorer.exe`},
	}}
	finder := window.NewFinder(p, procs)
	mover := window.NewMover(p)
	opts := launcher.DefaultOptions()
	opts.PollInterval = time.Millisecond
	opts.PollTimeout = timeout
	placer, err := launcher.NewPlacer(func() (geometry.WorkArea, error) {
		return geometry.WorkArea{Right: 1920, Bottom: 1080}, nil
	}, finder, mover, opts)
	require.NoError(t, err)

	starter := &testutil.FakeStarter{Result: launcher.Started{PID: 77}}
	starter.OnStart = func(launcher.Descriptor) {
		p.Add(testutil.FakeWindow{Handle: 0x77, PID: 77, Rect: geometry.Rect{W: 900, H: 700}})
	}
	rotation := launcher.NewRotation([]geometry.Quadrant{geometry.TopLeft, geometry.TopRight})
	l := launcher.NewLauncher(starter, placer, finder, rotation, 200, 120)
	catalog := launcher.Catalog{Tools: []launcher.Descriptor{{Name: "Shell", Command: "cmd.exe", Quadrant: "BR"}}}

	sess := session.New("pw")
	server := control.NewServer(sess, placer, l, func() (launcher.Catalog, error) { return catalog, nil })
	return &harness{platform: p, starter: starter, session: sess, server: server}
}

// TestHandle_PlaceUsesRotation verifies placements without a quadrant consume the rotation.
func TestHandle_PlaceUsesRotation(t *testing.T) {
	h := newHarness(t)
	h.platform.Add(testutil.FakeWindow{Handle: 0x10, Title: "Notes", Rect: geometry.Rect{W: 800, H: 600}})

	crit := window.Criteria{TitleContains: []string{"notes"}}
	reply := h.server.Handle(context.Background(), control.Message{T: "place", ID: 1, Criteria: &crit})
	require.True(t, reply.OK, reply.Error)
	assert.Equal(t, 1, reply.ID)
	assert.Equal(t, "TL", reply.Quadrant)
	require.NotNil(t, reply.Placement)
	assert.Equal(t, geometry.Rect{X: 11, Y: 11, W: 944, H: 526}, reply.Placement.Rect)

	reply = h.server.Handle(context.Background(), control.Message{T: "place", Criteria: &crit})
	assert.Equal(t, "TR", reply.Quadrant)

	last, ok := h.session.Last()
	require.True(t, ok)
	assert.Equal(t, window.Handle(0x10), last.Handle)
}

// TestHandle_PlaceLastByIndex verifies the last window moves to a rotation slot.
func TestHandle_PlaceLastByIndex(t *testing.T) {
	h := newHarness(t)
	reply := h.server.Handle(context.Background(), control.Message{T: "placeLast"})
	assert.False(t, reply.OK)

	h.platform.Add(testutil.FakeWindow{Handle: 0x10, Title: "Notes", Rect: geometry.Rect{W: 800, H: 600}})
	crit := window.Criteria{TitleContains: []string{"notes"}}
	require.True(t, h.server.Handle(context.Background(), control.Message{T: "place", Quadrant: "BL", Criteria: &crit}).OK)

	idx := 1
	reply = h.server.Handle(context.Background(), control.Message{T: "placeLast", Index: &idx})
	require.True(t, reply.OK, reply.Error)
	assert.Equal(t, "TR", reply.Quadrant)
	assert.Equal(t, geometry.Rect{X: 965, Y: 11, W: 944, H: 526}, h.platform.Window(0x10).Rect)
}

// TestHandle_PlaceLastForgetsClosedWindow verifies a stale last window is dropped.
func TestHandle_PlaceLastForgetsClosedWindow(t *testing.T) {
	h := newHarness(t)
	w := h.platform.Add(testutil.FakeWindow{Handle: 0x10, Title: "Notes", Rect: geometry.Rect{W: 800, H: 600}})
	crit := window.Criteria{TitleContains: []string{"notes"}}
	require.True(t, h.server.Handle(context.Background(), control.Message{T: "place", Criteria: &crit}).OK)

	w.Closed = true
	reply := h.server.Handle(context.Background(), control.Message{T: "placeLast", Quadrant: "BR"})
	assert.False(t, reply.OK)
	assert.Contains(t, reply.Error, "handle")
	_, ok := h.session.Last()
	assert.False(t, ok)
}

// TestHandle_Launch verifies catalog launches use the descriptor quadrant.
func TestHandle_Launch(t *testing.T) {
	h := newHarness(t)
	reply := h.server.Handle(context.Background(), control.Message{T: "launch", Tool: "shell"})
	require.True(t, reply.OK, reply.Error)
	assert.Equal(t, "BR", reply.Quadrant)
	require.NotNil(t, reply.Launched)
	assert.Equal(t, 77, reply.Launched.PID)
	assert.Equal(t, geometry.Rect{X: 965, Y: 543, W: 944, H: 526}, h.platform.Window(0x77).Rect)

	reply = h.server.Handle(context.Background(), control.Message{T: "launch", Tool: "regedit"})
	assert.False(t, reply.OK)
	assert.Contains(t, reply.Error, "unknown tool")
}

// TestHandle_ExplorerAndNext verifies the explorer preset and the rotation skip.
func TestHandle_ExplorerAndNext(t *testing.T) {
	h := newHarness(t)
	h.platform.Add(testutil.FakeWindow{Handle: 0x20, PID: 10, Class: "CabinetWClass", Rect: geometry.Rect{W: 800, H: 600}})

	reply := h.server.Handle(context.Background(), control.Message{T: "next"})
	require.True(t, reply.OK)
	assert.Equal(t, "TL", reply.Quadrant)

	reply = h.server.Handle(context.Background(), control.Message{T: "explorer"})
	require.True(t, reply.OK, reply.Error)
	assert.Equal(t, "TR", reply.Quadrant)
	assert.Equal(t, window.Handle(0x20), reply.Placement.Handle)
}

// TestHandle_PauseBlocksPlacement verifies paused sessions reject everything but pause.
func TestHandle_PauseBlocksPlacement(t *testing.T) {
	h := newHarness(t)
	on, off := true, false

	reply := h.server.Handle(context.Background(), control.Message{T: "pause", Enabled: &on})
	require.True(t, reply.OK)
	reply = h.server.Handle(context.Background(), control.Message{T: "launch", Tool: "Shell"})
	assert.False(t, reply.OK)
	assert.Empty(t, h.starter.Started)

	reply = h.server.Handle(context.Background(), control.Message{T: "pause", Enabled: &off})
	require.True(t, reply.OK)
	assert.False(t, h.session.Paused())
}

// TestHandle_PauseWithoutEnabledToggles verifies a bare pause flips the state.
func TestHandle_PauseWithoutEnabledToggles(t *testing.T) {
	h := newHarness(t)

	reply := h.server.Handle(context.Background(), control.Message{T: "pause"})
	require.True(t, reply.OK, reply.Error)
	require.NotNil(t, reply.Paused)
	assert.True(t, *reply.Paused)
	assert.True(t, h.session.Paused())

	reply = h.server.Handle(context.Background(), control.Message{T: "pause"})
	require.True(t, reply.OK, reply.Error)
	assert.False(t, *reply.Paused)
	assert.False(t, h.session.Paused())
}

// TestHandle_PlaceLastIgnoresHandleFromPreviousRun verifies a restarted
// session never moves a window whose handle value was recorded before.
func TestHandle_PlaceLastIgnoresHandleFromPreviousRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), session.FileName)
	previous := session.New("pw")
	require.NoError(t, previous.Persist(path))
	previous.Record(session.Placement{Handle: 0x42, Quadrant: "TL", Outcome: window.OutcomeSucceeded})

	h := newHarness(t)
	h.platform.Add(testutil.FakeWindow{Handle: 0x42, PID: 999, Title: "Unrelated Password Manager", Rect: geometry.Rect{W: 600, H: 400}})
	require.NoError(t, h.session.Persist(path))

	reply := h.server.Handle(context.Background(), control.Message{T: "placeLast", Quadrant: "TL"})
	assert.False(t, reply.OK)
	assert.Zero(t, h.platform.SetPosCalls)
	assert.Equal(t, geometry.Rect{W: 600, H: 400}, h.platform.Window(0x42).Rect)
}

// TestHandle_UACRejectionReported verifies rejected moves reach the client and the history.
func TestHandle_UACRejectionReported(t *testing.T) {
	h := newHarness(t)
	h.platform.Add(testutil.FakeWindow{Handle: 0x30, Title: "Admin", Rect: geometry.Rect{W: 800, H: 600}, MoveErr: window.ErrAccessDenied})

	crit := window.Criteria{TitleContains: []string{"admin"}}
	reply := h.server.Handle(context.Background(), control.Message{T: "place", Criteria: &crit})
	assert.False(t, reply.OK)
	require.NotNil(t, reply.Placement)
	assert.Equal(t, window.OutcomeRejectedUAC, reply.Placement.Outcome)

	snap := h.session.Snapshot()
	require.Len(t, snap.Recent, 1)
	assert.Equal(t, window.OutcomeRejectedUAC, snap.Recent[0].Outcome)
	assert.Nil(t, snap.Last)
}

// TestServeHTTP_RequiresAuth verifies unauthenticated upgrades are refused.
func TestServeHTTP_RequiresAuth(t *testing.T) {
	h := newHarness(t)
	rec := httptest.NewRecorder()
	h.server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ws/control", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// TestServeHTTP_RoundTrip verifies a websocket client gets replies and only one client is served.
func TestServeHTTP_RoundTrip(t *testing.T) {
	defer goleak.VerifyNone(t)

	h := newHarness(t)
	require.True(t, h.session.Authenticate("pw"))
	srv := httptest.NewServer(h.server)
	defer srv.Close()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)

	require.NoError(t, conn.WriteJSON(control.Message{T: "next", ID: 9}))
	var reply control.Reply
	require.NoError(t, conn.ReadJSON(&reply))
	assert.True(t, reply.OK)
	assert.Equal(t, 9, reply.ID)
	assert.Equal(t, "TL", reply.Quadrant)

	second, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	var rejected control.Reply
	require.NoError(t, second.ReadJSON(&rejected))
	assert.Equal(t, "error", rejected.T)
	assert.Contains(t, rejected.Error, "already active")
	require.NoError(t, second.Close())

	require.NoError(t, conn.WriteJSON(control.Message{T: "dance"}))
	require.NoError(t, conn.ReadJSON(&reply))
	assert.False(t, reply.OK)
	require.NoError(t, conn.Close())
	srv.CloseClientConnections()
}

// TestServeHTTP_DisconnectStopsPlacement verifies a client leaving mid-poll
// frees the connection long before the poll timeout.
func TestServeHTTP_DisconnectStopsPlacement(t *testing.T) {
	defer goleak.VerifyNone(t)

	h := newHarnessTimeout(t, 10*time.Second)
	var polls atomic.Int32
	h.platform.BeforeEnumerate = func(*testutil.FakePlatform) { polls.Add(1) }
	require.True(t, h.session.Authenticate("pw"))
	srv := httptest.NewServer(h.server)
	defer srv.Close()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	crit := window.Criteria{TitleContains: []string{"never opens"}}
	require.NoError(t, conn.WriteJSON(control.Message{T: "place", Quadrant: "TL", Criteria: &crit}))
	require.Eventually(t, func() bool { return polls.Load() > 0 }, time.Second, 5*time.Millisecond)
	require.NoError(t, conn.Close())

	require.Eventually(t, func() bool {
		next, _, err := websocket.DefaultDialer.Dial(url, nil)
		if err != nil {
			return false
		}
		defer next.Close()
		if err := next.WriteJSON(control.Message{T: "next"}); err != nil {
			return false
		}
		var reply control.Reply
		if err := next.ReadJSON(&reply); err != nil {
			return false
		}
		return reply.OK
	}, 2*time.Second, 20*time.Millisecond)
	srv.CloseClientConnections()
}
