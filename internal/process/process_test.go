package process

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestBaseName_WindowsPath verifies drive paths reduce to the lower-cased executable.
func TestBaseName_WindowsPath(t *testing.T) {
	assert.Equal(t, "ms-teams.exe", BaseName(`C:\Program Files\Microsoft\Teams\ms-Teams.EXE`))
}

// TestBaseName_Variants verifies device paths, slashes and bare names.
func TestBaseName_Variants(t *testing.T) {
	cases := map[string]string{
		`\Device\HarddiskVolume3\Windows\explorer.exe`: "explorer.exe",
		"C:/tools/mmc.exe":                             "mmc.exe",
		"notepad.exe":                                  "notepad.exe",
		`C:\Windows\`:                                  "windows",
		"":                                             "",
	}
	for in, want := range cases {
		assert.Equal(t, want, BaseName(in), in)
	}
}
