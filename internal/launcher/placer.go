package launcher

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/frudas24/deskquad/internal/geometry"
	"github.com/frudas24/deskquad/internal/window"
)

// ErrWindowNotFound reports that no matching window appeared before the deadline.
var ErrWindowNotFound = errors.New("window not found")

const (
	defaultPollInterval = 250 * time.Millisecond
	defaultPollTimeout  = 15 * time.Second
)

// AreaFunc returns the current work area. It is called on every placement.
type AreaFunc func() (geometry.WorkArea, error)

// Finder is the part of window.Finder the placer needs.
type Finder interface {
	Find(c window.Criteria) []window.Handle
	Largest(handles []window.Handle) (window.Handle, bool)
}

// Mover is the part of window.Mover the placer needs.
type Mover interface {
	Move(h window.Handle, r geometry.Rect) error
}

// Options tunes layout and polling.
type Options struct {
	FillRatio       float64
	EdgeMarginRatio float64
	PollInterval    time.Duration
	PollTimeout     time.Duration
	// Settle repeats a successful move once after this delay, for apps that
	// resize themselves after their first paint. Zero disables it.
	Settle time.Duration
}

// Request asks for the largest window matching Criteria to be placed.
type Request struct {
	Criteria window.Criteria
	Quadrant geometry.Quadrant
	// Full places the window in the centered full slot instead of a quadrant.
	Full bool
}

// Result reports the window chosen and what happened when moving it.
type Result struct {
	Handle  window.Handle  `json:"handle" yaml:"handle"`
	Rect    geometry.Rect  `json:"rect" yaml:"rect"`
	Outcome window.Outcome `json:"outcome" yaml:"outcome"`
}

// Placer waits for windows and moves them into their slot.
type Placer struct {
	area   AreaFunc
	finder Finder
	mover  Mover
	opts   Options
}

// DefaultOptions returns the stock layout ratios and polling cadence.
func DefaultOptions() Options {
	return Options{
		FillRatio:       geometry.DefaultFillRatio,
		EdgeMarginRatio: geometry.DefaultEdgeMarginRatio,
		PollInterval:    defaultPollInterval,
		PollTimeout:     defaultPollTimeout,
	}
}

// NewPlacer returns a placer. Ratios are validated; zero durations use the defaults.
func NewPlacer(area AreaFunc, finder Finder, mover Mover, opts Options) (*Placer, error) {
	if err := geometry.ValidateRatios(opts.FillRatio, opts.EdgeMarginRatio); err != nil {
		return nil, err
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = defaultPollInterval
	}
	if opts.PollTimeout <= 0 {
		opts.PollTimeout = defaultPollTimeout
	}
	return &Placer{area: area, finder: finder, mover: mover, opts: opts}, nil
}

// Options returns the effective options.
func (p *Placer) Options() Options {
	return p.opts
}

// Target computes the slot rectangle on the current work area.
func (p *Placer) Target(q geometry.Quadrant, full bool) (geometry.Rect, geometry.WorkArea, error) {
	area, err := p.area()
	if err != nil {
		return geometry.Rect{}, geometry.WorkArea{}, err
	}
	var r geometry.Rect
	if full {
		r, err = geometry.FullRect(area, p.opts.FillRatio, p.opts.EdgeMarginRatio)
	} else {
		r, err = geometry.QuadrantRect(area, q, p.opts.FillRatio, p.opts.EdgeMarginRatio)
	}
	if err != nil {
		return geometry.Rect{}, geometry.WorkArea{}, err
	}
	return r, area, nil
}

// Place waits for a matching window and moves the largest one into the slot.
// A failed move returns the Result together with the *window.MoveError.
func (p *Placer) Place(ctx context.Context, req Request) (Result, error) {
	r, area, err := p.Target(req.Quadrant, req.Full)
	if err != nil {
		return Result{}, err
	}
	h, err := p.Wait(ctx, req.Criteria)
	if err != nil {
		return Result{}, err
	}
	return p.move(ctx, h, geometry.ClampRect(r, area))
}

// PlaceHandle moves a known window into the slot without searching.
func (p *Placer) PlaceHandle(ctx context.Context, h window.Handle, q geometry.Quadrant, full bool) (Result, error) {
	r, area, err := p.Target(q, full)
	if err != nil {
		return Result{}, err
	}
	return p.move(ctx, h, geometry.ClampRect(r, area))
}

// Wait polls until a window matches c and returns the largest match.
func (p *Placer) Wait(ctx context.Context, c window.Criteria) (window.Handle, error) {
	if c.IsZero() {
		return 0, fmt.Errorf("%w: no criteria", ErrWindowNotFound)
	}
	waitCtx, cancel := context.WithTimeout(ctx, p.opts.PollTimeout)
	defer cancel()

	ticker := time.NewTicker(p.opts.PollInterval)
	defer ticker.Stop()

	for {
		if h, ok := p.finder.Largest(p.finder.Find(c)); ok {
			return h, nil
		}
		select {
		case <-waitCtx.Done():
			if err := ctx.Err(); err != nil {
				return 0, err
			}
			return 0, fmt.Errorf("%w after %s", ErrWindowNotFound, p.opts.PollTimeout)
		case <-ticker.C:
		}
	}
}

// move applies the rect and optionally repeats it after the settle delay.
func (p *Placer) move(ctx context.Context, h window.Handle, r geometry.Rect) (Result, error) {
	err := p.mover.Move(h, r)
	res := Result{Handle: h, Rect: r, Outcome: window.OutcomeOf(err)}
	if err != nil {
		return res, err
	}
	if p.opts.Settle > 0 {
		timer := time.NewTimer(p.opts.Settle)
		defer timer.Stop()
		select {
		case <-ctx.Done():
		case <-timer.C:
			if err := p.mover.Move(h, r); err != nil {
				log.Printf("launcher: settle move of %#x failed: %v", uintptr(h), err)
			}
		}
	}
	return res, nil
}
