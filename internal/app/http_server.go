package app

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/frudas24/deskquad/internal/geometry"
	"github.com/frudas24/deskquad/internal/monitor"
	"github.com/frudas24/deskquad/internal/session"
	"github.com/frudas24/deskquad/internal/web"
	"github.com/frudas24/deskquad/internal/window"
)

// RegisterRoutes wires API and static handlers onto the mux.
func (a *App) RegisterRoutes(mux *http.ServeMux, staticDir string) {
	mux.HandleFunc("/login", a.handleLogin)
	mux.HandleFunc("/logout", a.handleLogout)
	mux.HandleFunc("/api/monitors", a.handleMonitors)
	mux.HandleFunc("/api/quadrants", a.handleQuadrants)
	mux.HandleFunc("/api/windows", a.handleWindows)
	mux.HandleFunc("/api/tools", a.handleTools)
	mux.HandleFunc("/api/state", a.handleState)
	mux.Handle("/ws/control", a.Control())
	mux.HandleFunc("/favicon.ico", handleFavicon)

	mux.Handle("/", staticFileServer(staticDir))
}

type loginRequest struct {
	Password string `json:"password"`
}

type quadrantsResponse struct {
	WorkArea        geometry.WorkArea        `json:"workArea"`
	FillRatio       float64                  `json:"fillRatio"`
	EdgeMarginRatio float64                  `json:"edgeMarginRatio"`
	Quadrants       map[string]geometry.Rect `json:"quadrants"`
	Full            geometry.Rect            `json:"full"`
	Order           []string                 `json:"order"`
	Next            string                   `json:"next"`
}

type stateResponse struct {
	session.Snapshot
	Next         string `json:"next"`
	DPIAwareness string `json:"dpiAwareness"`
}

// handleLogin authenticates the session.
func (a *App) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if !a.session.Authenticate(req.Password) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	writeJSON(w, map[string]bool{"ok": true})
}

// handleLogout clears authentication state.
func (a *App) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	a.session.Logout()
	writeJSON(w, map[string]bool{"ok": true})
}

// handleMonitors returns the list of monitors.
func (a *App) handleMonitors(w http.ResponseWriter, _ *http.Request) {
	if !a.requireAuth(w) {
		return
	}
	list, err := a.ListMonitors()
	if err != nil {
		http.Error(w, "failed to list monitors", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, list)
}

// handleQuadrants returns the slot rectangles for the current work area.
func (a *App) handleQuadrants(w http.ResponseWriter, _ *http.Request) {
	if !a.requireAuth(w) {
		return
	}
	area, err := a.WorkArea()
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	opts := a.placer.Options()
	resp := quadrantsResponse{
		WorkArea:        area,
		FillRatio:       opts.FillRatio,
		EdgeMarginRatio: opts.EdgeMarginRatio,
		Quadrants:       make(map[string]geometry.Rect, len(geometry.Quadrants)),
		Next:            a.launcher.Rotation().Peek().String(),
	}
	for _, q := range geometry.Quadrants {
		r, err := geometry.QuadrantRect(area, q, opts.FillRatio, opts.EdgeMarginRatio)
		if err != nil {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		resp.Quadrants[q.String()] = r
	}
	if resp.Full, err = geometry.FullRect(area, opts.FillRatio, opts.EdgeMarginRatio); err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	for _, q := range a.launcher.Rotation().Order() {
		resp.Order = append(resp.Order, q.String())
	}
	writeJSON(w, resp)
}

// handleWindows lists windows. Without filters every visible top-level
// window is returned; filters use the same OR semantics as placement.
func (a *App) handleWindows(w http.ResponseWriter, r *http.Request) {
	if !a.requireAuth(w) {
		return
	}
	crit, err := criteriaFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var handles []window.Handle
	if crit.IsZero() {
		if handles, err = a.finder.Enumerate(); err != nil {
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
			return
		}
	} else {
		handles = a.finder.Find(crit)
	}
	writeJSON(w, a.finder.DescribeAll(handles))
}

// handleTools returns the tool catalog.
func (a *App) handleTools(w http.ResponseWriter, r *http.Request) {
	if !a.requireAuth(w) {
		return
	}
	load := a.Catalog
	if r.Method == http.MethodPost {
		load = a.ReloadCatalog
	}
	c, err := load()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, c)
}

// handleState returns current session state.
func (a *App) handleState(w http.ResponseWriter, _ *http.Request) {
	if !a.requireAuth(w) {
		return
	}
	writeJSON(w, stateResponse{
		Snapshot:     a.session.Snapshot(),
		Next:         a.launcher.Rotation().Peek().String(),
		DPIAwareness: monitor.DPIAwareness(),
	})
}

// requireAuth returns false and writes an error if the session is not authenticated.
func (a *App) requireAuth(w http.ResponseWriter) bool {
	if !a.session.IsAuthenticated() {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return false
	}
	return true
}

// criteriaFromQuery builds criteria from repeated class/title/image params and pid, session, minw, minh.
func criteriaFromQuery(r *http.Request) (window.Criteria, error) {
	q := r.URL.Query()
	c := window.Criteria{
		ClassNames:    q["class"],
		TitleContains: q["title"],
		ImageNames:    q["image"],
	}
	ints := []struct {
		key  string
		dst  *int
		bits int
	}{{"pid", &c.PID, 32}, {"minw", &c.MinWidth, 31}, {"minh", &c.MinHeight, 31}}
	for _, it := range ints {
		raw := strings.TrimSpace(q.Get(it.key))
		if raw == "" {
			continue
		}
		v, err := strconv.ParseUint(raw, 10, it.bits)
		if err != nil {
			return window.Criteria{}, errBadParam(it.key)
		}
		*it.dst = int(v)
	}
	if raw := strings.TrimSpace(q.Get("session")); raw != "" {
		v, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return window.Criteria{}, errBadParam("session")
		}
		id := uint32(v)
		c.SessionID = &id
	}
	return c, nil
}

// errBadParam reports an invalid query parameter.
type errBadParam string

// Error implements error.
func (e errBadParam) Error() string {
	return "invalid query parameter " + string(e)
}

// writeJSON encodes v as the response body.
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("app: encode response: %v", err)
	}
}

// staticFileServer returns a handler for static assets, preferring disk then embed.
func staticFileServer(staticDir string) http.Handler {
	if staticDir != "" {
		if info, err := os.Stat(staticDir); err == nil && info.IsDir() {
			return http.FileServer(http.Dir(staticDir))
		}
	}

	embedded, err := web.StaticFS()
	if err != nil {
		log.Printf("app: static assets unavailable: %v", err)
		return http.NotFoundHandler()
	}
	return http.FileServer(http.FS(embedded))
}

// handleFavicon avoids noisy 404s for the default browser request.
func handleFavicon(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}
