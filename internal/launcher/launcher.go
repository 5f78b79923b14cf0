package launcher

import (
	"context"
	"fmt"
	"log"

	"github.com/frudas24/deskquad/internal/geometry"
	"github.com/frudas24/deskquad/internal/window"
)

// Launched reports a started tool and where its window went.
type Launched struct {
	Tool      string `json:"tool" yaml:"tool"`
	PID       int    `json:"pid,omitempty" yaml:"pid,omitempty"`
	Elevated  bool   `json:"elevated,omitempty" yaml:"elevated,omitempty"`
	Quadrant  string `json:"quadrant" yaml:"quadrant"`
	Placement Result `json:"placement" yaml:"placement"`
}

// Launcher starts catalog tools and places their first window.
type Launcher struct {
	starter   Starter
	placer    *Placer
	finder    Finder
	rotation  *Rotation
	minWidth  int
	minHeight int
}

// NewLauncher wires a starter to a placer. Windows smaller than the minimum
// size are ignored so splash screens and tool windows are skipped.
func NewLauncher(starter Starter, placer *Placer, finder Finder, rotation *Rotation, minWidth, minHeight int) *Launcher {
	if rotation == nil {
		rotation = NewRotation(nil)
	}
	return &Launcher{
		starter:   starter,
		placer:    placer,
		finder:    finder,
		rotation:  rotation,
		minWidth:  minWidth,
		minHeight: minHeight,
	}
}

// Rotation returns the quadrant rotation used for tools without a fixed quadrant.
func (l *Launcher) Rotation() *Rotation {
	return l.rotation
}

// QuadrantFor resolves the quadrant: override, then the descriptor, then the rotation.
func (l *Launcher) QuadrantFor(d Descriptor, override string) (geometry.Quadrant, error) {
	switch {
	case override != "":
		return geometry.ParseQuadrant(override)
	case d.Quadrant != "":
		return geometry.ParseQuadrant(d.Quadrant)
	default:
		return l.rotation.Next(), nil
	}
}

// Launch starts d and places its window in q.
func (l *Launcher) Launch(ctx context.Context, d Descriptor, q geometry.Quadrant) (Launched, error) {
	if err := d.Validate(); err != nil {
		return Launched{}, err
	}
	if !q.Valid() {
		return Launched{}, fmt.Errorf("%w: quadrant %d", geometry.ErrInvalidArgument, int(q))
	}
	crit := d.Criteria(0)
	crit.MinWidth = l.minWidth
	crit.MinHeight = l.minHeight

	if d.Snapshot {
		crit.Exclude = l.finder.Find(crit)
		if len(crit.Exclude) > 0 {
			log.Printf("launcher: %s: ignoring %d existing windows", d.Name, len(crit.Exclude))
		}
	}

	started, err := l.starter.Start(ctx, d)
	if err != nil {
		return Launched{}, err
	}
	out := Launched{Tool: d.Name, PID: started.PID, Elevated: started.Elevated, Quadrant: q.String()}
	log.Printf("launcher: started %s pid=%d elevated=%t", d.Name, started.PID, started.Elevated)

	crit.PID = started.PID
	if crit.IsZero() {
		return out, fmt.Errorf("%w: %s has no pid and no match hints", ErrWindowNotFound, d.Name)
	}

	res, err := l.placer.Place(ctx, Request{Criteria: crit, Quadrant: q})
	out.Placement = res
	if err != nil {
		return out, fmt.Errorf("place %s: %w", d.Name, err)
	}
	log.Printf("launcher: placed %s (%#x) in %s at %s", d.Name, uintptr(res.Handle), q, res.Rect)
	return out, nil
}

// Ensure the concrete window types satisfy the placer seams.
var (
	_ Finder = (*window.Finder)(nil)
	_ Mover  = (*window.Mover)(nil)
)
