package launcher

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os/exec"
)

// ErrElevationUnsupported reports an elevated start on a platform without UAC.
var ErrElevationUnsupported = errors.New("elevated start unsupported on this platform")

// Started describes a launched process. PID is zero when the OS did not
// report one, which is always the case for elevated starts.
type Started struct {
	PID      int
	Elevated bool
}

// Starter launches a tool process.
type Starter interface {
	Start(ctx context.Context, d Descriptor) (Started, error)
}

// ExecStarter starts tools in a new console and retries elevated when the
// executable demands it.
type ExecStarter struct{}

// Ensure ExecStarter implements the interface.
var _ Starter = ExecStarter{}

// Start launches d without waiting for it to exit.
func (ExecStarter) Start(ctx context.Context, d Descriptor) (Started, error) {
	if err := ctx.Err(); err != nil {
		return Started{}, err
	}
	if d.Elevated {
		if err := startElevated(d); err != nil {
			return Started{}, fmt.Errorf("start %s elevated: %w", d.Name, err)
		}
		return Started{Elevated: true}, nil
	}

	cmd := exec.Command(d.Command, d.Args...)
	cmd.Dir = d.Dir
	configureCmd(cmd)
	if err := cmd.Start(); err != nil {
		if !elevationRequired(err) {
			return Started{}, fmt.Errorf("start %s: %w", d.Name, err)
		}
		log.Printf("launcher: %s requires elevation, retrying with runas", d.Name)
		if err := startElevated(d); err != nil {
			return Started{}, fmt.Errorf("start %s elevated: %w", d.Name, err)
		}
		return Started{Elevated: true}, nil
	}

	pid := cmd.Process.Pid
	go func() {
		if err := cmd.Wait(); err != nil {
			log.Printf("launcher: %s (pid %d) exited: %v", d.Name, pid, err)
		}
	}()
	return Started{PID: pid}, nil
}
