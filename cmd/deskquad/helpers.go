package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/frudas24/deskquad/internal/geometry"
	"github.com/frudas24/deskquad/internal/window"
	"github.com/spf13/cobra"
)

// addCriteriaFlags registers the window criteria flags on cmd.
func addCriteriaFlags(cmd *cobra.Command) {
	cmd.Flags().Int("pid", 0, "Match windows owned by this process id")
	cmd.Flags().StringSlice("class", nil, "Match exact window class names (repeatable)")
	cmd.Flags().StringSlice("title", nil, "Match case-insensitive title substrings (repeatable)")
	cmd.Flags().StringSlice("image", nil, "Match executable names such as mmc.exe (repeatable)")
	cmd.Flags().Int64("session", -1, "Match windows in this terminal session")
	cmd.Flags().Int("min-width", 0, "Ignore matches narrower than this")
	cmd.Flags().Int("min-height", 0, "Ignore matches shorter than this")
	cmd.Flags().Bool("explorer", false, "Match File Explorer windows")
}

// criteriaFromFlags reads the flags registered by addCriteriaFlags.
func criteriaFromFlags(cmd *cobra.Command) (window.Criteria, error) {
	var c window.Criteria
	if explorer, _ := cmd.Flags().GetBool("explorer"); explorer {
		c = window.ExplorerCriteria()
	}
	pid, _ := cmd.Flags().GetInt("pid")
	if pid < 0 || int64(pid) > int64(^uint32(0)) {
		return window.Criteria{}, fmt.Errorf("--pid out of range")
	}
	c.PID = pid
	classes, _ := cmd.Flags().GetStringSlice("class")
	titles, _ := cmd.Flags().GetStringSlice("title")
	images, _ := cmd.Flags().GetStringSlice("image")
	c.ClassNames = append(c.ClassNames, classes...)
	c.TitleContains = append(c.TitleContains, titles...)
	c.ImageNames = append(c.ImageNames, images...)
	if session, _ := cmd.Flags().GetInt64("session"); session >= 0 {
		if session > int64(^uint32(0)) {
			return window.Criteria{}, fmt.Errorf("--session out of range")
		}
		id := uint32(session)
		c.SessionID = &id
	}
	c.MinWidth, _ = cmd.Flags().GetInt("min-width")
	c.MinHeight, _ = cmd.Flags().GetInt("min-height")
	return c, nil
}

// parseHandle accepts a window handle in hex (0x1a2b) or decimal.
func parseHandle(s string) (window.Handle, error) {
	s = strings.TrimSpace(s)
	v, err := strconv.ParseUint(s, 0, 64)
	if err != nil || v == 0 {
		return 0, fmt.Errorf("invalid window handle %q", s)
	}
	return window.Handle(uintptr(v)), nil
}

// parseArea parses "left,top,right,bottom" into a work area.
func parseArea(s string) (geometry.WorkArea, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return geometry.WorkArea{}, fmt.Errorf("%w: area %q must be left,top,right,bottom", geometry.ErrInvalidArgument, s)
	}
	var v [4]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return geometry.WorkArea{}, fmt.Errorf("%w: area %q: %v", geometry.ErrInvalidArgument, s, err)
		}
		v[i] = n
	}
	area := geometry.WorkArea{Left: v[0], Top: v[1], Right: v[2], Bottom: v[3]}
	if !area.Valid() {
		return geometry.WorkArea{}, fmt.Errorf("%w: area %s is empty", geometry.ErrInvalidArgument, area)
	}
	return area, nil
}
