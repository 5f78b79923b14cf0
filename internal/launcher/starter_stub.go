//go:build !windows

package launcher

import "os/exec"

// configureCmd is a no-op outside Windows.
func configureCmd(cmd *exec.Cmd) {
	_ = cmd
}

// elevationRequired is always false outside Windows.
func elevationRequired(err error) bool {
	_ = err
	return false
}

// startElevated is unsupported outside Windows.
func startElevated(d Descriptor) error {
	_ = d
	return ErrElevationUnsupported
}
