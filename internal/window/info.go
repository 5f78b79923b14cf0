package window

import (
	"errors"

	"github.com/frudas24/deskquad/internal/geometry"
)

// Info is a descriptive snapshot of one window for listings.
type Info struct {
	Handle  Handle        `json:"handle" yaml:"handle"`
	PID     uint32        `json:"pid" yaml:"pid"`
	Class   string        `json:"class" yaml:"class"`
	Title   string        `json:"title" yaml:"title"`
	Image   string        `json:"image,omitempty" yaml:"image,omitempty"`
	Session *uint32       `json:"session,omitempty" yaml:"session,omitempty"`
	Rect    geometry.Rect `json:"rect" yaml:"rect"`
}

// Describe collects the attributes of h. Process metadata is best effort;
// a stale handle fails the whole call.
func (f *Finder) Describe(h Handle) (Info, error) {
	info := Info{Handle: h}
	var err error
	if info.PID, err = f.platform.ProcessID(h); err != nil {
		return Info{}, err
	}
	if info.Class, err = f.platform.ClassName(h); err != nil {
		return Info{}, err
	}
	if info.Title, err = f.platform.Title(h); err != nil {
		return Info{}, err
	}
	if info.Rect, err = f.platform.Rect(h); err != nil {
		return Info{}, err
	}
	if image, err := f.procs.ImageBaseName(info.PID); err == nil {
		info.Image = image
	}
	if session, err := f.procs.SessionID(info.PID); err == nil {
		info.Session = &session
	}
	return info, nil
}

// DescribeAll describes every handle, skipping windows that closed meanwhile.
func (f *Finder) DescribeAll(handles []Handle) []Info {
	out := make([]Info, 0, len(handles))
	for _, h := range handles {
		info, err := f.Describe(h)
		if errors.Is(err, ErrStaleHandle) {
			continue
		}
		if err != nil {
			f.debugf("window: describe %#x: %v", h, err)
			continue
		}
		out = append(out, info)
	}
	return out
}
