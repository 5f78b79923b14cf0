package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/frudas24/deskquad/internal/geometry"
	"github.com/frudas24/deskquad/internal/window"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseHandle accepts hex and decimal handles and rejects zero.
func TestParseHandle(t *testing.T) {
	h, err := parseHandle("0x1A2B")
	require.NoError(t, err)
	assert.Equal(t, window.Handle(0x1a2b), h)

	h, err = parseHandle(" 4242 ")
	require.NoError(t, err)
	assert.Equal(t, window.Handle(4242), h)

	for _, bad := range []string{"", "0", "zz", "-3"} {
		_, err := parseHandle(bad)
		assert.Error(t, err, bad)
	}
}

// TestParseArea verifies the left,top,right,bottom syntax.
func TestParseArea(t *testing.T) {
	area, err := parseArea("-1920, 40, 0, 1080")
	require.NoError(t, err)
	assert.Equal(t, geometry.WorkArea{Left: -1920, Top: 40, Right: 0, Bottom: 1080}, area)

	for _, bad := range []string{"1,2,3", "a,b,c,d", "10,10,10,20"} {
		_, err := parseArea(bad)
		assert.ErrorIs(t, err, geometry.ErrInvalidArgument, bad)
	}
}

// TestCriteriaFromFlags verifies flag values map onto criteria.
func TestCriteriaFromFlags(t *testing.T) {
	cmd := &cobra.Command{Use: "x"}
	addCriteriaFlags(cmd)
	require.NoError(t, cmd.ParseFlags([]string{
		"--pid", "12", "--class", "MMCMainFrame", "--title", "services,event viewer",
		"--image", "mmc.exe", "--session", "0", "--min-width", "200", "--explorer",
	}))

	c, err := criteriaFromFlags(cmd)
	require.NoError(t, err)
	assert.Equal(t, 12, c.PID)
	assert.Equal(t, []string{"CabinetWClass", "ExploreWClass", "MMCMainFrame"}, c.ClassNames)
	assert.Equal(t, []string{"services", "event viewer"}, c.TitleContains)
	assert.Equal(t, []string{"explorer.exe", "mmc.exe"}, c.ImageNames)
	require.NotNil(t, c.SessionID)
	assert.Zero(t, *c.SessionID)
	assert.Equal(t, 200, c.MinWidth)
}

// TestCriteriaFromFlags_Empty verifies no flags yield zero criteria.
func TestCriteriaFromFlags_Empty(t *testing.T) {
	cmd := &cobra.Command{Use: "x"}
	addCriteriaFlags(cmd)
	require.NoError(t, cmd.ParseFlags(nil))
	c, err := criteriaFromFlags(cmd)
	require.NoError(t, err)
	assert.True(t, c.IsZero())
	assert.Nil(t, c.SessionID)
}

// TestLayout_AllSlots verifies the default listing includes FULL.
func TestLayout_AllSlots(t *testing.T) {
	out, err := layout(geometry.WorkArea{Right: 1920, Bottom: 1080}, nil, geometry.DefaultFillRatio, geometry.DefaultEdgeMarginRatio)
	require.NoError(t, err)
	require.Len(t, out.Slots, 5)
	assert.Equal(t, "TL", out.Slots[0].Quadrant)
	assert.Equal(t, geometry.Rect{X: 11, Y: 11, W: 944, H: 526}, out.Slots[0].Rect)
	assert.Equal(t, "FULL", out.Slots[4].Quadrant)

	out, err = layout(geometry.WorkArea{Right: 1920, Bottom: 1080}, []string{"br"}, 1, 0)
	require.NoError(t, err)
	require.Len(t, out.Slots, 1)
	assert.Equal(t, geometry.Rect{X: 960, Y: 540, W: 960, H: 540}, out.Slots[0].Rect)

	_, err = layout(geometry.WorkArea{Right: 1920, Bottom: 1080}, []string{"middle"}, 1, 0)
	assert.ErrorIs(t, err, geometry.ErrInvalidArgument)
}

// TestWriteOut_Formats verifies YAML and JSON encodings of a slot.
func TestWriteOut_Formats(t *testing.T) {
	slot := slotOutput{Quadrant: "TL", Rect: geometry.Rect{X: 1, Y: 2, W: 3, H: 4}}

	var y bytes.Buffer
	require.NoError(t, writeOut(&y, "yaml", slot))
	assert.True(t, strings.HasPrefix(y.String(), "quadrant: TL\n"), y.String())

	var j bytes.Buffer
	require.NoError(t, writeOut(&j, "json", slot))
	var back slotOutput
	require.NoError(t, json.Unmarshal(j.Bytes(), &back))
	assert.Equal(t, slot, back)

	assert.Error(t, writeOut(&j, "xml", slot))
}
