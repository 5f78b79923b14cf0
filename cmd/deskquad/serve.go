package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/frudas24/deskquad/internal/app"
	"github.com/frudas24/deskquad/internal/config"
	"github.com/frudas24/deskquad/internal/monitor"
	"github.com/frudas24/deskquad/internal/session"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the local HTTP API and control websocket",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("listen", "", "Listen address (default LISTEN_ADDR)")
	serveCmd.Flags().String("static", "", "Serve the control page from this directory instead of the embedded copy")
}

// runServe wires the application and blocks until shutdown.
func runServe(cmd *cobra.Command, _ []string) error {
	cfg := env.cfg
	if listen, _ := cmd.Flags().GetString("listen"); listen != "" {
		cfg.ListenAddr = listen
	}
	if err := cfg.RequireControlPassword(); err != nil {
		return err
	}
	logStartup(cfg)

	appInstance, err := app.New(cfg, session.New(cfg.ControlPassword), app.Deps{})
	if err != nil {
		return err
	}
	if _, err := appInstance.Catalog(); err != nil {
		return err
	}

	staticDir, _ := cmd.Flags().GetString("static")
	mux := http.NewServeMux()
	appInstance.RegisterRoutes(mux, staticDir)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Request contexts derive from ctx so hijacked control connections stop
	// polling on shutdown; Shutdown does not track them.
	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// logStartup prints startup checks and connection info.
func logStartup(cfg config.Config) {
	log.Printf("deskquad starting")
	logEnvStatus(cfg)
	log.Printf("dpi awareness: %s", monitor.DPIAwareness())
	if area, err := monitor.PrimaryWorkArea(); err != nil {
		log.Printf("display check: %v", err)
	} else {
		log.Printf("display check: primary work area %s", area)
	}
	log.Printf("layout: fill %.3f margin %.3f order %v", cfg.FillRatio, cfg.EdgeMarginRatio, cfg.QuadrantOrder)
	logListenStatus(cfg.ListenAddr)
}

// logEnvStatus reports whether the .env and catalog files were found.
func logEnvStatus(cfg config.Config) {
	envPath := filepath.Join(cfg.DataDir, ".env")
	if fileExists(envPath) {
		log.Printf("env check: ok (%s)", envPath)
	} else {
		log.Printf("env check: missing (%s)", envPath)
	}
	if fileExists(cfg.CatalogPath) {
		log.Printf("catalog check: ok (%s)", cfg.CatalogPath)
	} else {
		log.Printf("catalog check: missing (%s), launch disabled", cfg.CatalogPath)
	}
}

// logListenStatus reports the listen address and a local URL helper.
func logListenStatus(addr string) {
	log.Printf("listen addr: %s", addr)
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	log.Printf("local url: http://%s", net.JoinHostPort(host, port))
}

// fileExists reports whether a path exists and is a file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
