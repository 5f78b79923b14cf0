package window

import "strings"

// Criteria selects windows. A window matches when any populated criterion
// matches; MinWidth, MinHeight and Exclude only filter the matches.
type Criteria struct {
	PID           int      `json:"pid,omitempty" yaml:"pid,omitempty"` // 0 = unset
	ClassNames    []string `json:"classNames,omitempty" yaml:"classNames,omitempty"`
	TitleContains []string `json:"titleContains,omitempty" yaml:"titleContains,omitempty"`
	ImageNames    []string `json:"imageNames,omitempty" yaml:"imageNames,omitempty"`
	SessionID     *uint32  `json:"sessionId,omitempty" yaml:"sessionId,omitempty"`

	MinWidth  int      `json:"minWidth,omitempty" yaml:"minWidth,omitempty"`
	MinHeight int      `json:"minHeight,omitempty" yaml:"minHeight,omitempty"`
	Exclude   []Handle `json:"-" yaml:"-"`
}

// ExplorerCriteria matches File Explorer top-level windows.
func ExplorerCriteria() Criteria {
	return Criteria{
		ClassNames: []string{"CabinetWClass", "ExploreWClass"},
		ImageNames: []string{"explorer.exe"},
	}
}

// IsZero reports whether no matching criterion is populated.
func (c Criteria) IsZero() bool {
	return compile(c).empty()
}

// matcher is the normalized form of Criteria used during a search.
type matcher struct {
	pid       int64
	classes   map[string]struct{}
	titles    []string
	images    map[string]struct{}
	session   *uint32
	exclude   map[Handle]struct{}
	minWidth  int
	minHeight int
}

// compile normalizes criteria: blank entries are dropped, titles and images lower-cased.
func compile(c Criteria) matcher {
	m := matcher{
		session:   c.SessionID,
		minWidth:  c.MinWidth,
		minHeight: c.MinHeight,
	}
	if c.PID > 0 {
		// Kept wide so pids beyond uint32 match nothing instead of wrapping.
		m.pid = int64(c.PID)
	}
	for _, name := range c.ClassNames {
		if name = strings.TrimSpace(name); name != "" {
			if m.classes == nil {
				m.classes = make(map[string]struct{})
			}
			m.classes[name] = struct{}{}
		}
	}
	for _, title := range c.TitleContains {
		if title = strings.ToLower(strings.TrimSpace(title)); title != "" {
			m.titles = append(m.titles, title)
		}
	}
	for _, image := range c.ImageNames {
		if image = strings.ToLower(strings.TrimSpace(image)); image != "" {
			if m.images == nil {
				m.images = make(map[string]struct{})
			}
			m.images[image] = struct{}{}
		}
	}
	if len(c.Exclude) > 0 {
		m.exclude = make(map[Handle]struct{}, len(c.Exclude))
		for _, h := range c.Exclude {
			m.exclude[h] = struct{}{}
		}
	}
	return m
}

// empty reports whether the matcher would match nothing.
func (m matcher) empty() bool {
	return m.pid == 0 && len(m.classes) == 0 && len(m.titles) == 0 && len(m.images) == 0 && m.session == nil
}

// needsProcess reports whether the owning pid must be resolved.
func (m matcher) needsProcess() bool {
	return m.pid != 0 || len(m.images) > 0 || m.session != nil
}

// titleMatches reports whether title contains any configured substring.
func (m matcher) titleMatches(title string) bool {
	title = strings.ToLower(title)
	for _, want := range m.titles {
		if strings.Contains(title, want) {
			return true
		}
	}
	return false
}
