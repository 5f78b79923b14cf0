package main

import (
	"fmt"
	"log"
	"os"

	"github.com/frudas24/deskquad/internal/app"
	"github.com/frudas24/deskquad/internal/config"
	"github.com/frudas24/deskquad/internal/logfile"
	"github.com/frudas24/deskquad/internal/monitor"
	"github.com/frudas24/deskquad/internal/session"
	"github.com/spf13/cobra"
)

// runtimeEnv is the state prepared before any subcommand runs.
type runtimeEnv struct {
	cfg    config.Config
	sink   *logfile.Sink
	format string
}

var env runtimeEnv

var rootCmd = &cobra.Command{
	Use:           "deskquad",
	Short:         "Find desktop windows and place them into screen quadrants",
	Long:          "deskquad finds top-level windows by pid, class, title, image or session and moves them into quadrants of the primary monitor work area.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	defer env.close()
	if err := rootCmd.Execute(); err != nil {
		log.Printf("fatal: %v", err)
		env.close()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().Bool("debug", false, "Enable verbose debug logging")
	rootCmd.PersistentFlags().String("format", "yaml", "Output format: yaml or json")
	rootCmd.PersistentFlags().Bool("no-log-file", false, "Log to stderr only")
	rootCmd.PersistentPreRunE = prepare
}

// prepare loads configuration, installs logging and makes the process DPI aware.
func prepare(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		cfg.Debug = true
	}
	format, _ := cmd.Flags().GetString("format")
	if format != "yaml" && format != "json" {
		return fmt.Errorf("unsupported format: %s (use yaml or json)", format)
	}
	env.cfg = cfg
	env.format = format

	if noFile, _ := cmd.Flags().GetBool("no-log-file"); !noFile {
		sink, err := logfile.Open(logfile.Options{
			Dir:        cfg.LogDir,
			MaxSizeMB:  cfg.LogMaxSizeMB,
			MaxBackups: cfg.LogMaxFiles,
			MaxAgeDays: cfg.LogMaxAgeDays,
		})
		if err != nil {
			return err
		}
		sink.Install()
		env.sink = sink
	}

	monitor.EnableDPIAwareness()
	if cfg.Debug {
		log.Printf("debug: enabled, dpi awareness %s", monitor.DPIAwareness())
	}
	return nil
}

// newApp wires the placement core against the real OS.
func newApp() (*app.App, error) {
	return app.New(env.cfg, session.New(env.cfg.ControlPassword), app.Deps{})
}

// close flushes the log file once.
func (e *runtimeEnv) close() {
	if e.sink == nil {
		return
	}
	if err := e.sink.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "close log: %v\n", err)
	}
	e.sink = nil
}
