package control

import (
	"errors"
	"fmt"
	"strings"

	"github.com/frudas24/deskquad/internal/window"
)

// ActionType identifies a control request.
type ActionType string

const (
	// ActPlace places the largest window matching the criteria.
	ActPlace ActionType = "place"
	// ActPlaceLast moves the last placed window again.
	ActPlaceLast ActionType = "placeLast"
	// ActLaunch starts a catalog tool and places its window.
	ActLaunch ActionType = "launch"
	// ActExplorer places the largest File Explorer window.
	ActExplorer ActionType = "explorer"
	// ActNext consumes one quadrant from the rotation.
	ActNext ActionType = "next"
	// ActPause stops or resumes accepting placement requests.
	ActPause ActionType = "pause"
)

// errBadRequest reports a malformed control message.
var errBadRequest = errors.New("bad request")

// Action is a validated control request.
type Action struct {
	Type     ActionType
	ID       int
	Tool     string
	Quadrant string
	Full     bool
	Index    int
	Criteria window.Criteria
	// Paused is the requested pause state; nil toggles it.
	Paused *bool
}

// ParseAction validates a message and converts it into an Action.
func ParseAction(msg Message) (Action, error) {
	a := Action{
		Type:     ActionType(msg.T),
		ID:       msg.ID,
		Tool:     strings.TrimSpace(msg.Tool),
		Quadrant: strings.TrimSpace(msg.Quadrant),
		Full:     msg.Full,
		Index:    -1,
	}
	switch a.Type {
	case ActPlace:
		if msg.Criteria == nil || msg.Criteria.IsZero() {
			return Action{}, fmt.Errorf("%w: place needs criteria", errBadRequest)
		}
		a.Criteria = *msg.Criteria
	case ActPlaceLast:
		if msg.Index != nil {
			a.Index = *msg.Index
		}
	case ActLaunch:
		if a.Tool == "" {
			return Action{}, fmt.Errorf("%w: launch needs a tool", errBadRequest)
		}
	case ActExplorer, ActNext:
	case ActPause:
		if msg.Enabled != nil {
			paused := *msg.Enabled
			a.Paused = &paused
		}
	default:
		return Action{}, fmt.Errorf("%w: unknown message %q", errBadRequest, msg.T)
	}
	return a, nil
}
