// Package launcher starts catalog tools and places their windows into quadrants.
package launcher

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/frudas24/deskquad/internal/geometry"
	"github.com/frudas24/deskquad/internal/window"
	"gopkg.in/yaml.v3"
)

// ErrUnknownTool reports a catalog lookup miss.
var ErrUnknownTool = errors.New("unknown tool")

// Match holds the window hints used when the started pid does not own the window.
type Match struct {
	ClassNames    []string `yaml:"classNames,omitempty" json:"classNames,omitempty"`
	TitleContains []string `yaml:"titleContains,omitempty" json:"titleContains,omitempty"`
	ImageNames    []string `yaml:"imageNames,omitempty" json:"imageNames,omitempty"`
}

// Descriptor describes one launchable tool.
type Descriptor struct {
	Name    string   `yaml:"name" json:"name"`
	Command string   `yaml:"command" json:"command"`
	Args    []string `yaml:"args,omitempty" json:"args,omitempty"`
	Dir     string   `yaml:"dir,omitempty" json:"dir,omitempty"`
	// Quadrant is empty when the rotation should pick one.
	Quadrant string `yaml:"quadrant,omitempty" json:"quadrant,omitempty"`
	Elevated bool   `yaml:"elevated,omitempty" json:"elevated,omitempty"`
	// Snapshot excludes windows that already match before launch, for
	// single-instance apps that hand the request to an existing process.
	Snapshot bool  `yaml:"snapshot,omitempty" json:"snapshot,omitempty"`
	Match    Match `yaml:"match,omitempty" json:"match,omitempty"`
}

// Criteria converts the hints into window criteria for the given pid.
func (d Descriptor) Criteria(pid int) window.Criteria {
	return window.Criteria{
		PID:           pid,
		ClassNames:    d.Match.ClassNames,
		TitleContains: d.Match.TitleContains,
		ImageNames:    d.Match.ImageNames,
	}
}

// Validate checks the fields required to launch the tool.
func (d Descriptor) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return errors.New("tool name is required")
	}
	if strings.TrimSpace(d.Command) == "" {
		return fmt.Errorf("tool %q: command is required", d.Name)
	}
	if d.Quadrant != "" {
		if _, err := geometry.ParseQuadrant(d.Quadrant); err != nil {
			return fmt.Errorf("tool %q: %w", d.Name, err)
		}
	}
	return nil
}

// Catalog is the ordered list of launchable tools.
type Catalog struct {
	Tools []Descriptor `yaml:"tools" json:"tools"`
}

// Lookup returns the tool with the given name, ignoring case.
func (c Catalog) Lookup(name string) (Descriptor, error) {
	for _, d := range c.Tools {
		if strings.EqualFold(d.Name, strings.TrimSpace(name)) {
			return d, nil
		}
	}
	return Descriptor{}, fmt.Errorf("%w: %q", ErrUnknownTool, name)
}

// Names lists the tool names in catalog order.
func (c Catalog) Names() []string {
	names := make([]string, 0, len(c.Tools))
	for _, d := range c.Tools {
		names = append(names, d.Name)
	}
	return names
}

// LoadCatalog reads a YAML catalog. Missing files return an empty catalog.
func LoadCatalog(path string) (Catalog, error) {
	var c Catalog
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return c, nil
		}
		return c, err
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes and validates catalog YAML.
func ParseCatalog(data []byte) (Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Catalog{}, fmt.Errorf("parse catalog: %w", err)
	}
	seen := make(map[string]struct{}, len(c.Tools))
	for _, d := range c.Tools {
		if err := d.Validate(); err != nil {
			return Catalog{}, err
		}
		key := strings.ToLower(d.Name)
		if _, dup := seen[key]; dup {
			return Catalog{}, fmt.Errorf("tool %q listed twice", d.Name)
		}
		seen[key] = struct{}{}
	}
	return c, nil
}
