package parser

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/pedro-visualizer/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSettingsFromReader(t *testing.T) {
	content := `
max_velocity: 50
max_acceleration: 25
max_deceleration: 35
a_velocity: 2.5
theme: dark
key_bindings:
  - id: mirror
    key: ctrl+m
    action: mirrorPath
`
	s, err := ParseSettingsFromReader(strings.NewReader(content))
	require.NoError(t, err)

	assert.Equal(t, 50.0, s.MaxVelocity)
	assert.Equal(t, 25.0, s.MaxAcceleration)
	assert.Equal(t, 35.0, s.MaxDeceleration)
	assert.Equal(t, 2.5, s.AVelocity)
	assert.Equal(t, "dark", s.Theme)
	require.Len(t, s.KeyBindings, 1)
	assert.Equal(t, "mirrorPath", s.KeyBindings[0].Action)

	// untouched fields keep defaults
	assert.Equal(t, models.DefaultSettings().RWidth, s.RWidth)
}

func TestSaveSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "robot.yaml")
	want := models.DefaultSettings()
	want.MaxVelocity = 61

	require.NoError(t, SaveSettings(path, want))

	got, err := ParseSettings(path)
	require.NoError(t, err)
	assert.Equal(t, want, *got)
}

func TestParseSettings_Invalid(t *testing.T) {
	_, err := ParseSettingsFromReader(strings.NewReader("max_velocity: [1, 2"))
	assert.Error(t, err)
}
