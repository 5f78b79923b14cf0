package launcher_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/frudas24/deskquad/internal/geometry"
	"github.com/frudas24/deskquad/internal/launcher"
	"github.com/frudas24/deskquad/internal/testutil"
	"github.com/frudas24/deskquad/internal/window"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fullHD = geometry.WorkArea{Right: 1920, Bottom: 1080}

// fastOptions keeps polling tests quick.
func fastOptions() launcher.Options {
	opts := launcher.DefaultOptions()
	opts.PollInterval = time.Millisecond
	opts.PollTimeout = 80 * time.Millisecond
	return opts
}

// newPlacer builds a placer over fake OS seams.
func newPlacer(t *testing.T, p *testutil.FakePlatform, procs *testutil.FakeProcesses, opts launcher.Options) (*launcher.Placer, *window.Finder, *window.Mover) {
	t.Helper()
	finder := window.NewFinder(p, procs)
	mover := window.NewMover(p)
	placer, err := launcher.NewPlacer(func() (geometry.WorkArea, error) { return fullHD, nil }, finder, mover, opts)
	require.NoError(t, err)
	return placer, finder, mover
}

// TestNewPlacer_RejectsBadRatios verifies invalid layout options fail at construction.
func TestNewPlacer_RejectsBadRatios(t *testing.T) {
	_, err := launcher.NewPlacer(nil, nil, nil, launcher.Options{FillRatio: 1.5})
	assert.ErrorIs(t, err, geometry.ErrInvalidArgument)

	opts := launcher.DefaultOptions()
	opts.EdgeMarginRatio = 0
	placer, err := launcher.NewPlacer(nil, nil, nil, opts)
	require.NoError(t, err)
	assert.Zero(t, placer.Options().EdgeMarginRatio)
}

// TestPlace_MovesLargestMatch verifies the biggest matching window lands in the quadrant.
func TestPlace_MovesLargestMatch(t *testing.T) {
	p := &testutil.FakePlatform{}
	p.Add(testutil.FakeWindow{Handle: 1, PID: 5, Rect: geometry.Rect{W: 300, H: 200}})
	p.Add(testutil.FakeWindow{Handle: 2, PID: 5, Rect: geometry.Rect{W: 900, H: 700}})
	placer, _, _ := newPlacer(t, p, &testutil.FakeProcesses{}, fastOptions())

	res, err := placer.Place(context.Background(), launcher.Request{
		Criteria: window.Criteria{PID: 5},
		Quadrant: geometry.TopRight,
	})
	require.NoError(t, err)
	want := geometry.Rect{X: 965, Y: 11, W: 944, H: 526}
	assert.Equal(t, window.Handle(2), res.Handle)
	assert.Equal(t, want, res.Rect)
	assert.Equal(t, window.OutcomeSucceeded, res.Outcome)
	assert.Equal(t, want, p.Window(2).Rect)
}

// TestPlace_WaitsForWindow verifies polling continues until the window appears.
func TestPlace_WaitsForWindow(t *testing.T) {
	p := &testutil.FakePlatform{}
	p.BeforeEnumerate = func(fp *testutil.FakePlatform) {
		if fp.EnumerateCalls == 4 {
			fp.Add(testutil.FakeWindow{Handle: 9, Title: "Event Viewer", Rect: geometry.Rect{W: 800, H: 600}})
		}
	}
	placer, _, _ := newPlacer(t, p, &testutil.FakeProcesses{}, fastOptions())

	res, err := placer.Place(context.Background(), launcher.Request{
		Criteria: window.Criteria{TitleContains: []string{"event viewer"}},
		Quadrant: geometry.BottomLeft,
	})
	require.NoError(t, err)
	assert.Equal(t, window.Handle(9), res.Handle)
	assert.Equal(t, 4, p.EnumerateCalls)
}

// TestPlace_TimesOut verifies ErrWindowNotFound once the poll timeout elapses.
func TestPlace_TimesOut(t *testing.T) {
	p := &testutil.FakePlatform{}
	placer, _, _ := newPlacer(t, p, &testutil.FakeProcesses{}, fastOptions())

	_, err := placer.Place(context.Background(), launcher.Request{Criteria: window.Criteria{PID: 77}})
	assert.ErrorIs(t, err, launcher.ErrWindowNotFound)
	assert.Zero(t, p.SetPosCalls)
}

// TestPlace_CanceledContext verifies caller cancellation is reported as such.
func TestPlace_CanceledContext(t *testing.T) {
	p := &testutil.FakePlatform{}
	opts := fastOptions()
	opts.PollTimeout = time.Minute
	placer, _, _ := newPlacer(t, p, &testutil.FakeProcesses{}, opts)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := placer.Place(ctx, launcher.Request{Criteria: window.Criteria{PID: 77}})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, errors.Is(err, launcher.ErrWindowNotFound))
}

// TestPlace_EmptyCriteriaFailsFast verifies empty criteria never poll.
func TestPlace_EmptyCriteriaFailsFast(t *testing.T) {
	p := &testutil.FakePlatform{}
	opts := fastOptions()
	opts.PollTimeout = time.Minute
	placer, _, _ := newPlacer(t, p, &testutil.FakeProcesses{}, opts)

	_, err := placer.Place(context.Background(), launcher.Request{})
	assert.ErrorIs(t, err, launcher.ErrWindowNotFound)
	assert.Zero(t, p.EnumerateCalls)
}

// TestPlace_ReportsUACRejection verifies move failures come back with the result.
func TestPlace_ReportsUACRejection(t *testing.T) {
	p := &testutil.FakePlatform{}
	p.Add(testutil.FakeWindow{Handle: 3, PID: 8, Rect: geometry.Rect{W: 800, H: 600}, MoveErr: window.ErrAccessDenied})
	placer, _, mover := newPlacer(t, p, &testutil.FakeProcesses{}, fastOptions())

	res, err := placer.Place(context.Background(), launcher.Request{Criteria: window.Criteria{PID: 8}})
	assert.ErrorIs(t, err, window.ErrRejectedUAC)
	assert.Equal(t, window.OutcomeRejectedUAC, res.Outcome)
	assert.Equal(t, window.Handle(3), res.Handle)
	assert.True(t, mover.Rejected(3))
}

// TestPlace_AreaFailure verifies display errors abort before searching.
func TestPlace_AreaFailure(t *testing.T) {
	p := &testutil.FakePlatform{}
	boom := errors.New("no display")
	placer, err := launcher.NewPlacer(func() (geometry.WorkArea, error) { return geometry.WorkArea{}, boom },
		window.NewFinder(p, &testutil.FakeProcesses{}), window.NewMover(p), fastOptions())
	require.NoError(t, err)

	_, err = placer.Place(context.Background(), launcher.Request{Criteria: window.Criteria{PID: 1}})
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, p.EnumerateCalls)
}

// TestPlaceHandle_FullSlot verifies known handles go to the centered full slot.
func TestPlaceHandle_FullSlot(t *testing.T) {
	p := &testutil.FakePlatform{}
	p.Add(testutil.FakeWindow{Handle: 4})
	opts := fastOptions()
	opts.FillRatio = 0.5
	placer, _, _ := newPlacer(t, p, &testutil.FakeProcesses{}, opts)

	res, err := placer.PlaceHandle(context.Background(), 4, geometry.TopLeft, true)
	require.NoError(t, err)
	want, err := geometry.FullRect(fullHD, 0.5, geometry.DefaultEdgeMarginRatio)
	require.NoError(t, err)
	assert.Equal(t, want, res.Rect)
	assert.Zero(t, p.EnumerateCalls)
}

// TestPlace_SettleRepeatsMove verifies the second move after the settle delay.
func TestPlace_SettleRepeatsMove(t *testing.T) {
	p := &testutil.FakePlatform{}
	p.Add(testutil.FakeWindow{Handle: 6, PID: 2, Rect: geometry.Rect{W: 800, H: 600}})
	opts := fastOptions()
	opts.Settle = time.Millisecond
	placer, _, _ := newPlacer(t, p, &testutil.FakeProcesses{}, opts)

	_, err := placer.Place(context.Background(), launcher.Request{Criteria: window.Criteria{PID: 2}})
	require.NoError(t, err)
	assert.Equal(t, 2, p.SetPosCalls)
}
