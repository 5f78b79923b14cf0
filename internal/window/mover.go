package window

import (
	"errors"
	"fmt"
	"log"

	"github.com/frudas24/deskquad/internal/geometry"
)

// Outcome classifies a move attempt.
type Outcome int

const (
	OutcomeSucceeded Outcome = iota
	// OutcomeRejectedUAC means the window belongs to an elevated process and
	// will keep refusing moves from this process.
	OutcomeRejectedUAC
	// OutcomeRejectedOther is a failure assumed to be transient.
	OutcomeRejectedOther
	// OutcomeHandleInvalid means the window closed; a replacement may appear.
	OutcomeHandleInvalid
)

// String returns the outcome name used in logs and API responses.
func (o Outcome) String() string {
	switch o {
	case OutcomeSucceeded:
		return "succeeded"
	case OutcomeRejectedUAC:
		return "rejected_uac"
	case OutcomeRejectedOther:
		return "rejected_other"
	case OutcomeHandleInvalid:
		return "handle_invalid"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// MarshalText encodes the outcome name.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText decodes an outcome name written by MarshalText.
func (o *Outcome) UnmarshalText(text []byte) error {
	for _, candidate := range []Outcome{OutcomeSucceeded, OutcomeRejectedUAC, OutcomeRejectedOther, OutcomeHandleInvalid} {
		if string(text) == candidate.String() {
			*o = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown outcome %q", text)
}

// Sentinels matched by errors.Is against a *MoveError.
var (
	ErrRejectedUAC   = errors.New("move rejected across elevation boundary")
	ErrRejectedOther = errors.New("move rejected")
	ErrHandleInvalid = errors.New("window handle invalid")
)

// MoveError describes a failed move.
type MoveError struct {
	Handle  Handle
	Outcome Outcome
	Err     error // platform error; nil when short-circuited
}

// Error implements error.
func (e *MoveError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("move window %#x: %s", uintptr(e.Handle), e.Outcome)
	}
	return fmt.Sprintf("move window %#x: %s: %v", uintptr(e.Handle), e.Outcome, e.Err)
}

// Unwrap exposes the outcome sentinel and the platform error.
func (e *MoveError) Unwrap() []error {
	errs := []error{outcomeSentinel(e.Outcome)}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// OutcomeOf extracts the outcome carried by err; nil means success and
// unknown errors are treated as OutcomeRejectedOther.
func OutcomeOf(err error) Outcome {
	if err == nil {
		return OutcomeSucceeded
	}
	var moveErr *MoveError
	if errors.As(err, &moveErr) {
		return moveErr.Outcome
	}
	return OutcomeRejectedOther
}

// outcomeSentinel maps an outcome to its sentinel error.
func outcomeSentinel(o Outcome) error {
	switch o {
	case OutcomeRejectedUAC:
		return ErrRejectedUAC
	case OutcomeHandleInvalid:
		return ErrHandleInvalid
	default:
		return ErrRejectedOther
	}
}

// Mover repositions windows and remembers the ones that refused because of
// an elevation mismatch. A Mover is not safe for concurrent use.
type Mover struct {
	platform Platform
	rejected map[Handle]struct{}
}

// NewMover creates a mover with an empty UAC boundary record.
func NewMover(platform Platform) *Mover {
	return &Mover{
		platform: platform,
		rejected: make(map[Handle]struct{}),
	}
}

// Move places h at r. Handles known to sit behind a UAC boundary fail with
// ErrRejectedUAC without calling the platform. Nothing is retried here.
func (m *Mover) Move(h Handle, r geometry.Rect) error {
	if m.Rejected(h) {
		return &MoveError{Handle: h, Outcome: OutcomeRejectedUAC}
	}
	if r.Empty() {
		return &MoveError{
			Handle:  h,
			Outcome: OutcomeRejectedOther,
			Err:     fmt.Errorf("%w: target %s", geometry.ErrInvalidArgument, r),
		}
	}

	if m.platform.IsMinimized(h) {
		if err := m.platform.Restore(h); err != nil {
			log.Printf("window: restore %#x failed: %v", uintptr(h), err)
		}
	}

	err := m.platform.SetPos(h, r)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrAccessDenied):
		m.rejected[h] = struct{}{}
		return &MoveError{Handle: h, Outcome: OutcomeRejectedUAC, Err: err}
	case errors.Is(err, ErrStaleHandle):
		return &MoveError{Handle: h, Outcome: OutcomeHandleInvalid, Err: err}
	default:
		return &MoveError{Handle: h, Outcome: OutcomeRejectedOther, Err: err}
	}
}

// Rejected reports whether h is in the UAC boundary record.
func (m *Mover) Rejected(h Handle) bool {
	_, ok := m.rejected[h]
	return ok
}

// RejectedCount returns the size of the UAC boundary record.
func (m *Mover) RejectedCount() int {
	return len(m.rejected)
}
