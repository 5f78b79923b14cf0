// Package app wires the HTTP API, the control websocket and the placement core together.
package app

import (
	"errors"
	"log"
	"path/filepath"
	"sync"

	"github.com/frudas24/deskquad/internal/config"
	"github.com/frudas24/deskquad/internal/control"
	"github.com/frudas24/deskquad/internal/geometry"
	"github.com/frudas24/deskquad/internal/launcher"
	"github.com/frudas24/deskquad/internal/monitor"
	"github.com/frudas24/deskquad/internal/process"
	"github.com/frudas24/deskquad/internal/session"
	"github.com/frudas24/deskquad/internal/window"
)

// MonitorProvider returns the current list of monitors.
type MonitorProvider func() ([]monitor.Monitor, error)

// Deps holds the OS seams. Zero fields use the real implementations.
type Deps struct {
	Platform  window.Platform
	Processes process.Lookup
	Starter   launcher.Starter
	Monitors  MonitorProvider
}

// App coordinates the HTTP API, the control websocket and the placement core.
type App struct {
	mu       sync.Mutex
	cfg      config.Config
	session  *session.Session
	monitors MonitorProvider
	finder   *window.Finder
	mover    *window.Mover
	placer   *launcher.Placer
	launcher *launcher.Launcher
	control  *control.Server
	catalog  launcher.Catalog
	loaded   bool
}

// New creates a new application with its dependencies wired.
func New(cfg config.Config, sess *session.Session, deps Deps) (*App, error) {
	if sess == nil {
		return nil, errors.New("session is required")
	}
	if cfg.DataDir != "" {
		path := filepath.Join(cfg.DataDir, session.FileName)
		if err := sess.Persist(path); err != nil {
			log.Printf("app: session state %s ignored: %v", path, err)
		}
	}
	if deps.Platform == nil {
		deps.Platform = window.NewPlatform()
	}
	if deps.Processes == nil {
		deps.Processes = process.NewLookup()
	}
	if deps.Starter == nil {
		deps.Starter = launcher.ExecStarter{}
	}
	if deps.Monitors == nil {
		deps.Monitors = monitor.ListMonitors
	}

	a := &App{cfg: cfg, session: sess, monitors: deps.Monitors}
	a.finder = window.NewFinder(deps.Platform, deps.Processes)
	a.finder.SetDebug(cfg.Debug)
	a.mover = window.NewMover(deps.Platform)

	placer, err := launcher.NewPlacer(a.WorkArea, a.finder, a.mover, cfg.PlacerOptions())
	if err != nil {
		return nil, err
	}
	a.placer = placer
	a.launcher = launcher.NewLauncher(deps.Starter, placer, a.finder, launcher.NewRotation(cfg.QuadrantOrder), cfg.MinWindowWidth, cfg.MinWindowHeight)
	a.control = control.NewServer(sess, placer, a.launcher, a.Catalog)
	return a, nil
}

// WorkArea re-queries the monitors and returns the primary work area.
func (a *App) WorkArea() (geometry.WorkArea, error) {
	list, err := a.monitors()
	if err != nil {
		if !errors.Is(err, monitor.ErrDisplayUnavailable) {
			err = errors.Join(monitor.ErrDisplayUnavailable, err)
		}
		return geometry.WorkArea{}, err
	}
	return monitor.PrimaryWorkAreaOf(list)
}

// ListMonitors returns the current monitor list.
func (a *App) ListMonitors() ([]monitor.Monitor, error) {
	return a.monitors()
}

// Catalog loads the tool catalog once and serves it from memory afterwards.
func (a *App) Catalog() (launcher.Catalog, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.loaded {
		return a.catalog, nil
	}
	c, err := launcher.LoadCatalog(a.cfg.CatalogPath)
	if err != nil {
		return launcher.Catalog{}, err
	}
	a.catalog = c
	a.loaded = true
	log.Printf("app: loaded %d tools from %s", len(c.Tools), a.cfg.CatalogPath)
	return c, nil
}

// ReloadCatalog drops the cached catalog so the next access rereads the file.
func (a *App) ReloadCatalog() (launcher.Catalog, error) {
	a.mu.Lock()
	a.loaded = false
	a.mu.Unlock()
	return a.Catalog()
}

// Finder returns the window finder.
func (a *App) Finder() *window.Finder {
	return a.finder
}

// Placer returns the placer.
func (a *App) Placer() *launcher.Placer {
	return a.placer
}

// Launcher returns the tool launcher.
func (a *App) Launcher() *launcher.Launcher {
	return a.launcher
}

// Control returns the control websocket handler.
func (a *App) Control() *control.Server {
	return a.control
}
