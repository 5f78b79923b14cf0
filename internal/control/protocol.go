// Package control handles the placement websocket protocol.
package control

import (
	"github.com/frudas24/deskquad/internal/launcher"
	"github.com/frudas24/deskquad/internal/window"
)

// Message is a control websocket request.
type Message struct {
	T        string           `json:"t"`
	ID       int              `json:"id,omitempty"`
	Tool     string           `json:"tool,omitempty"`
	Quadrant string           `json:"quadrant,omitempty"`
	Full     bool             `json:"full,omitempty"`
	Index    *int             `json:"index,omitempty"`
	Criteria *window.Criteria `json:"criteria,omitempty"`
	Enabled  *bool            `json:"enabled,omitempty"`
}

// Reply answers one Message. ID echoes the request id.
type Reply struct {
	T         string             `json:"t"`
	ID        int                `json:"id,omitempty"`
	OK        bool               `json:"ok"`
	Error     string             `json:"error,omitempty"`
	Quadrant  string             `json:"quadrant,omitempty"`
	Placement *launcher.Result   `json:"placement,omitempty"`
	Launched  *launcher.Launched `json:"launched,omitempty"`
	Paused    *bool              `json:"paused,omitempty"`
}
