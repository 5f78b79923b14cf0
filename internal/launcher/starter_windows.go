//go:build windows

package launcher

import (
	"errors"
	"os/exec"
	"strings"
	"syscall"

	"golang.org/x/sys/windows"
)

// configureCmd gives console tools their own window.
func configureCmd(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		CreationFlags: windows.CREATE_NEW_CONSOLE,
	}
}

// elevationRequired reports whether a start failed on the UAC manifest check.
func elevationRequired(err error) bool {
	return errors.Is(err, windows.ERROR_ELEVATION_REQUIRED)
}

// startElevated asks the shell to start d through the UAC consent prompt.
func startElevated(d Descriptor) error {
	verb, err := windows.UTF16PtrFromString("runas")
	if err != nil {
		return err
	}
	file, err := windows.UTF16PtrFromString(d.Command)
	if err != nil {
		return err
	}
	var args, dir *uint16
	if len(d.Args) > 0 {
		quoted := make([]string, 0, len(d.Args))
		for _, a := range d.Args {
			quoted = append(quoted, syscall.EscapeArg(a))
		}
		if args, err = windows.UTF16PtrFromString(strings.Join(quoted, " ")); err != nil {
			return err
		}
	}
	if d.Dir != "" {
		if dir, err = windows.UTF16PtrFromString(d.Dir); err != nil {
			return err
		}
	}
	return windows.ShellExecute(0, verb, file, args, dir, windows.SW_SHOWNORMAL)
}
