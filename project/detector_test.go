package project

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/sequencescript/internal/fixture"
)

func TestDetector_Detect(t *testing.T) {
	dir := fixture.Extract(t, `
-- game/sequencescript.yaml --
input: scripts
-- game/scripts/intro/scene.ss --
proc void main() {}
-- loose/other.ss --
proc void main() {}
`)
	var testCases = []struct {
		description  string
		location     string
		expectRoot   string
		expectConfig bool
		expectRel    string
	}{
		{
			description:  "nested file",
			location:     filepath.Join(dir, "game", "scripts", "intro", "scene.ss"),
			expectRoot:   filepath.Join(dir, "game"),
			expectConfig: true,
			expectRel:    "scripts/intro/scene.ss",
		},
		{
			description:  "root directory",
			location:     filepath.Join(dir, "game"),
			expectRoot:   filepath.Join(dir, "game"),
			expectConfig: true,
			expectRel:    ".",
		},
		{
			description: "no marker",
			location:    filepath.Join(dir, "loose", "other.ss"),
			expectRoot:  filepath.Join(dir, "loose"),
			expectRel:   "other.ss",
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			project, err := New().Detect(testCase.location)
			require.NoError(t, err)
			assert.Equal(t, testCase.expectRoot, project.RootPath)
			assert.Equal(t, testCase.expectConfig, project.HasConfig())
			if testCase.expectConfig {
				assert.Equal(t, filepath.Join(testCase.expectRoot, "sequencescript.yaml"), project.ConfigPath)
			}
			assert.Equal(t, testCase.expectRel, project.RelativePath)
		})
	}
}

func TestDetector_Missing(t *testing.T) {
	_, err := New().Detect(filepath.Join(t.TempDir(), "absent"))
	assert.Error(t, err)
}
