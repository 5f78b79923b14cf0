// Package process resolves process ids to executable metadata.
package process

import (
	"errors"
	"strings"
)

// ErrProcessNotFound means the pid no longer exists, usually because the
// process exited between window enumeration and the lookup.
var ErrProcessNotFound = errors.New("process not found")

// Lookup resolves process metadata.
type Lookup interface {
	// ImageBaseName returns the lower-cased executable base name, e.g. "explorer.exe".
	ImageBaseName(pid uint32) (string, error)
	// SessionID returns the terminal services session that owns the process.
	SessionID(pid uint32) (uint32, error)
}

// BaseName returns the lower-cased final element of a Windows or slash path.
func BaseName(path string) string {
	path = strings.TrimRight(strings.TrimSpace(path), `\/`)
	if i := strings.LastIndexAny(path, `\/`); i >= 0 {
		path = path[i+1:]
	}
	return strings.ToLower(path)
}
