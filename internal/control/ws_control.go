package control

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"

	"github.com/frudas24/deskquad/internal/geometry"
	"github.com/frudas24/deskquad/internal/launcher"
	"github.com/frudas24/deskquad/internal/session"
	"github.com/frudas24/deskquad/internal/window"
	"github.com/gorilla/websocket"
)

// CatalogProvider returns the current tool catalog.
type CatalogProvider func() (launcher.Catalog, error)

// Server handles websocket placement requests. Only one connection is
// served at a time and all placements run under one lock.
type Server struct {
	mu       sync.Mutex
	connMu   sync.Mutex
	upgrader websocket.Upgrader
	session  *session.Session
	placer   *launcher.Placer
	launcher *launcher.Launcher
	catalog  CatalogProvider
	conn     *websocket.Conn
}

// NewServer creates a control websocket server.
func NewServer(sess *session.Session, placer *launcher.Placer, l *launcher.Launcher, catalog CatalogProvider) *Server {
	return &Server{
		session:  sess,
		placer:   placer,
		launcher: l,
		catalog:  catalog,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     sameOrigin,
		},
	}
}

// ServeHTTP upgrades the connection and processes control messages.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !s.session.IsAuthenticated() {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	if err := s.acceptConn(conn); err != nil {
		_ = conn.WriteJSON(Reply{T: "error", Error: err.Error()})
		_ = conn.Close()
		return
	}
	defer s.cleanupConn(conn)

	// Placements in flight stop when the client goes away or the server shuts down.
	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	msgs := make(chan Message)
	go readMessages(ctx, cancel, conn, msgs)
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-msgs:
			if !ok {
				return
			}
			if err := conn.WriteJSON(s.Handle(ctx, msg)); err != nil {
				return
			}
		}
	}
}

// readMessages feeds decoded messages to msgs and cancels ctx once the
// connection fails. It exits when the connection is closed.
func readMessages(ctx context.Context, cancel context.CancelFunc, conn *websocket.Conn, msgs chan<- Message) {
	defer close(msgs)
	defer cancel()
	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}
		select {
		case msgs <- msg:
		case <-ctx.Done():
			return
		}
	}
}

// Handle runs one control message and builds its reply.
func (s *Server) Handle(ctx context.Context, msg Message) Reply {
	a, err := ParseAction(msg)
	if err != nil {
		return errorReply(msg.ID, err)
	}
	if a.Type != ActPause && s.session.Paused() {
		return errorReply(a.ID, errors.New("placement paused"))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	switch a.Type {
	case ActPlace:
		return s.handlePlace(ctx, a, a.Criteria, "")
	case ActExplorer:
		return s.handlePlace(ctx, a, window.ExplorerCriteria(), "explorer")
	case ActPlaceLast:
		return s.handlePlaceLast(ctx, a)
	case ActLaunch:
		return s.handleLaunch(ctx, a)
	case ActNext:
		q := s.launcher.Rotation().Next()
		return Reply{T: string(a.Type), ID: a.ID, OK: true, Quadrant: q.String()}
	case ActPause:
		paused := !s.session.Paused()
		if a.Paused != nil {
			paused = *a.Paused
		}
		s.session.SetPaused(paused)
		return Reply{T: string(a.Type), ID: a.ID, OK: true, Paused: &paused}
	default:
		return errorReply(a.ID, fmt.Errorf("%w: unhandled %q", errBadRequest, a.Type))
	}
}

// handlePlace waits for a matching window and moves it.
func (s *Server) handlePlace(ctx context.Context, a Action, c window.Criteria, label string) Reply {
	q, err := s.quadrant(a.Quadrant)
	if err != nil {
		return errorReply(a.ID, err)
	}
	res, err := s.placer.Place(ctx, launcher.Request{Criteria: c, Quadrant: q, Full: a.Full})
	s.record(label, q, a.Full, res, err)
	if err != nil {
		reply := errorReply(a.ID, err)
		reply.Placement = placementOrNil(res)
		return reply
	}
	return Reply{T: string(a.Type), ID: a.ID, OK: true, Quadrant: slotName(q, a.Full), Placement: &res}
}

// handlePlaceLast moves the last successfully placed window again.
func (s *Server) handlePlaceLast(ctx context.Context, a Action) Reply {
	last, ok := s.session.Last()
	if !ok {
		return errorReply(a.ID, errors.New("no window placed yet"))
	}
	var (
		q   geometry.Quadrant
		err error
	)
	if a.Index >= 0 {
		q, err = s.launcher.Rotation().At(a.Index)
	} else {
		q, err = s.quadrant(a.Quadrant)
	}
	if err != nil {
		return errorReply(a.ID, err)
	}
	res, err := s.placer.PlaceHandle(ctx, last.Handle, q, a.Full)
	if errors.Is(err, window.ErrHandleInvalid) {
		s.session.ForgetLast()
	}
	s.record(last.Tool, q, a.Full, res, err)
	if err != nil {
		reply := errorReply(a.ID, err)
		reply.Placement = placementOrNil(res)
		return reply
	}
	return Reply{T: string(a.Type), ID: a.ID, OK: true, Quadrant: slotName(q, a.Full), Placement: &res}
}

// handleLaunch starts a catalog tool and places it.
func (s *Server) handleLaunch(ctx context.Context, a Action) Reply {
	catalog, err := s.catalog()
	if err != nil {
		return errorReply(a.ID, err)
	}
	d, err := catalog.Lookup(a.Tool)
	if err != nil {
		return errorReply(a.ID, err)
	}
	q, err := s.launcher.QuadrantFor(d, a.Quadrant)
	if err != nil {
		return errorReply(a.ID, err)
	}
	out, err := s.launcher.Launch(ctx, d, q)
	s.record(d.Name, q, false, out.Placement, err)
	if err != nil {
		reply := errorReply(a.ID, err)
		reply.Launched = &out
		return reply
	}
	return Reply{T: string(a.Type), ID: a.ID, OK: true, Quadrant: q.String(), Launched: &out, Placement: &out.Placement}
}

// quadrant parses an explicit quadrant or consumes the next one from the rotation.
func (s *Server) quadrant(name string) (geometry.Quadrant, error) {
	if name == "" {
		return s.launcher.Rotation().Next(), nil
	}
	return geometry.ParseQuadrant(name)
}

// record stores attempts that reached a window.
func (s *Server) record(tool string, q geometry.Quadrant, full bool, res launcher.Result, err error) {
	if res.Handle == 0 {
		if err != nil {
			log.Printf("control: %s: %v", tool, err)
		}
		return
	}
	s.session.Record(session.Placement{
		Tool:     tool,
		Handle:   res.Handle,
		Quadrant: slotName(q, full),
		Rect:     res.Rect,
		Outcome:  res.Outcome,
	})
	if err != nil {
		log.Printf("control: %s (%#x) %s: %v", tool, uintptr(res.Handle), res.Outcome, err)
	}
}

// acceptConn ensures only one active control connection exists.
func (s *Server) acceptConn(conn *websocket.Conn) error {
	s.connMu.Lock()
	defer s.connMu.Unlock()
	if s.conn != nil {
		return fmt.Errorf("control connection already active")
	}
	s.conn = conn
	return nil
}

// cleanupConn clears the active connection when closed.
func (s *Server) cleanupConn(conn *websocket.Conn) {
	s.connMu.Lock()
	if s.conn == conn {
		s.conn = nil
	}
	s.connMu.Unlock()
	_ = conn.Close()
}

// sameOrigin accepts requests without an Origin header or from the serving host.
func sameOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	return origin == "http://"+r.Host || origin == "https://"+r.Host
}

// slotName returns the quadrant code or FULL.
func slotName(q geometry.Quadrant, full bool) string {
	if full {
		return "FULL"
	}
	return q.String()
}

// placementOrNil hides empty results from error replies.
func placementOrNil(res launcher.Result) *launcher.Result {
	if res.Handle == 0 {
		return nil
	}
	return &res
}

// errorReply wraps err for the client.
func errorReply(id int, err error) Reply {
	return Reply{T: "error", ID: id, Error: err.Error()}
}
