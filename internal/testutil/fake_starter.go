package testutil

import (
	"context"

	"github.com/frudas24/deskquad/internal/launcher"
)

// FakeStarter implements launcher.Starter without spawning processes.
type FakeStarter struct {
	// Result is returned by every Start call unless Err is set.
	Result launcher.Started
	Err    error
	// OnStart runs before returning, e.g. to open the tool's window.
	OnStart func(d launcher.Descriptor)

	Started []launcher.Descriptor
}

// Ensure FakeStarter implements the interface.
var _ launcher.Starter = (*FakeStarter)(nil)

// Start records d and returns the configured result.
func (f *FakeStarter) Start(ctx context.Context, d launcher.Descriptor) (launcher.Started, error) {
	if err := ctx.Err(); err != nil {
		return launcher.Started{}, err
	}
	f.Started = append(f.Started, d)
	if f.Err != nil {
		return launcher.Started{}, f.Err
	}
	if f.OnStart != nil {
		f.OnStart(d)
	}
	return f.Result, nil
}
