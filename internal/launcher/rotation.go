package launcher

import (
	"fmt"
	"strings"
	"sync"

	"github.com/frudas24/deskquad/internal/geometry"
)

// DefaultOrder is the quadrant rotation used when none is configured.
const DefaultOrder = "BR,TL,BL"

// ParseOrder parses a comma separated quadrant list such as "TL,TR,BL,BR".
func ParseOrder(s string) ([]geometry.Quadrant, error) {
	var out []geometry.Quadrant
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		q, err := geometry.ParseQuadrant(part)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: empty quadrant order", geometry.ErrInvalidArgument)
	}
	return out, nil
}

// Rotation hands out quadrants round-robin. Safe for concurrent use.
type Rotation struct {
	mu    sync.Mutex
	order []geometry.Quadrant
	next  int
}

// NewRotation returns a rotation over order. An empty order falls back to DefaultOrder.
func NewRotation(order []geometry.Quadrant) *Rotation {
	if len(order) == 0 {
		order, _ = ParseOrder(DefaultOrder)
	}
	return &Rotation{order: append([]geometry.Quadrant(nil), order...)}
}

// Next returns the current quadrant and advances the cursor.
func (r *Rotation) Next() geometry.Quadrant {
	r.mu.Lock()
	defer r.mu.Unlock()
	q := r.order[r.next]
	r.next = (r.next + 1) % len(r.order)
	return q
}

// Peek returns the quadrant Next would return without advancing.
func (r *Rotation) Peek() geometry.Quadrant {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.order[r.next]
}

// At returns the i-th quadrant of the order.
func (r *Rotation) At(i int) (geometry.Quadrant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if i < 0 || i >= len(r.order) {
		return 0, fmt.Errorf("%w: rotation index %d out of range (max %d)", geometry.ErrInvalidArgument, i, len(r.order)-1)
	}
	return r.order[i], nil
}

// Order returns a copy of the configured order.
func (r *Rotation) Order() []geometry.Quadrant {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]geometry.Quadrant(nil), r.order...)
}

// Reset moves the cursor back to the first quadrant.
func (r *Rotation) Reset() {
	r.mu.Lock()
	r.next = 0
	r.mu.Unlock()
}
