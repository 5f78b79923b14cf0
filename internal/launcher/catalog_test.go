package launcher_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/frudas24/deskquad/internal/geometry"
	"github.com/frudas24/deskquad/internal/launcher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCatalog = `
tools:
  - name: Services
    command: mmc.exe
    args: [services.msc]
    quadrant: TR
    elevated: true
    snapshot: true
    match:
      classNames: [MMCMainFrame]
      imageNames: [mmc.exe]
  - name: PowerShell
    command: powershell.exe
    args: [-NoLogo, -NoExit]
    match:
      titleContains: [PowerShell]
`

// TestLoadCatalog_MissingFileIsEmpty verifies a missing catalog is not an error.
func TestLoadCatalog_MissingFileIsEmpty(t *testing.T) {
	c, err := launcher.LoadCatalog(filepath.Join(t.TempDir(), "catalog.yaml"))
	require.NoError(t, err)
	assert.Empty(t, c.Tools)
}

// TestLoadCatalog_ParsesTools verifies YAML fields map onto descriptors.
func TestLoadCatalog_ParsesTools(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleCatalog), 0o600))

	c, err := launcher.LoadCatalog(path)
	require.NoError(t, err)
	require.Len(t, c.Tools, 2)
	assert.Equal(t, []string{"Services", "PowerShell"}, c.Names())

	svc := c.Tools[0]
	assert.Equal(t, "mmc.exe", svc.Command)
	assert.Equal(t, []string{"services.msc"}, svc.Args)
	assert.True(t, svc.Elevated)
	assert.True(t, svc.Snapshot)
	assert.Equal(t, []string{"MMCMainFrame"}, svc.Match.ClassNames)

	crit := svc.Criteria(42)
	assert.Equal(t, 42, crit.PID)
	assert.Equal(t, []string{"mmc.exe"}, crit.ImageNames)
}

// TestParseCatalog_Rejects verifies invalid descriptors fail the whole catalog.
func TestParseCatalog_Rejects(t *testing.T) {
	cases := map[string]string{
		"missing name":    "tools:\n  - command: cmd.exe\n",
		"missing command": "tools:\n  - name: Shell\n",
		"bad quadrant":    "tools:\n  - name: Shell\n    command: cmd.exe\n    quadrant: middle\n",
		"duplicate":       "tools:\n  - name: a\n    command: x\n  - name: A\n    command: y\n",
		"not yaml":        "tools: [",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := launcher.ParseCatalog([]byte(doc))
			require.Error(t, err)
		})
	}

	_, err := launcher.ParseCatalog([]byte("tools:\n  - name: Shell\n    command: cmd.exe\n    quadrant: middle\n"))
	assert.ErrorIs(t, err, geometry.ErrInvalidArgument)
}

// TestCatalog_LookupIgnoresCase verifies lookups by name.
func TestCatalog_LookupIgnoresCase(t *testing.T) {
	c, err := launcher.ParseCatalog([]byte(sampleCatalog))
	require.NoError(t, err)

	d, err := c.Lookup(" powershell ")
	require.NoError(t, err)
	assert.Equal(t, "PowerShell", d.Name)

	_, err = c.Lookup("regedit")
	assert.ErrorIs(t, err, launcher.ErrUnknownTool)
}
