package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/baryon-go/common"
	"github.com/Carmen-Shannon/baryon-go/engine/renderer/pass"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "vsync", cfg.Renderer.PresentMode)
	assert.Equal(t, "default", cfg.Renderer.PowerPreference)
	assert.Equal(t, 16, cfg.Passes.MaxLights)
	assert.True(t, cfg.Passes.CullBackFaces)

	opts, err := cfg.ContextOptions()
	require.NoError(t, err)
	assert.Len(t, opts, 4)
	assert.Len(t, cfg.WindowOptions(), 4)
}

func TestParseConfigOverridesDefaults(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
window:
  title: Cubeception
  width: 800
renderer:
  present_mode: mailbox
  power_preference: high-performance
loop:
  tick_rate: 30
  profiling: true
passes:
  cull_back_faces: false
  max_lights: 4
  workers: 2
  ambient_color: 0xFF203040
  ambient_intensity: 0.25
`))
	require.NoError(t, err)

	assert.Equal(t, "Cubeception", cfg.Window.Title)
	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, 720, cfg.Window.Height)
	assert.Equal(t, 30.0, cfg.Loop.TickRate)
	assert.True(t, cfg.Loop.Profiling)
	assert.Equal(t, 1.0, cfg.Loop.ProfileInterval)

	assert.Equal(t, pass.SolidConfig{CullBackFaces: false}, cfg.SolidConfig())
	assert.Equal(t, pass.PhongConfig{
		CullBackFaces: false,
		Ambient:       pass.Ambient{Color: common.Color(0xFF203040), Intensity: 0.25},
		MaxLights:     4,
		Workers:       2,
	}, cfg.PhongConfig())
	assert.Equal(t, pass.RealConfig{CullBackFaces: false, MaxLights: 4}, cfg.RealConfig())
}

func TestParseConfigRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"malformed":     "window: [",
		"present mode":  "renderer:\n  present_mode: sometimes\n",
		"power":         "renderer:\n  power_preference: turbo\n",
		"window size":   "window:\n  width: 0\n",
		"negative rate": "loop:\n  tick_rate: -1\n",
		"max lights":    "passes:\n  max_lights: -2\n",
		"workers":       "passes:\n  workers: -1\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseConfig([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "baryon.yaml")
	require.NoError(t, os.WriteFile(path, []byte("window:\n  title: Sprite\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "Sprite", cfg.Window.Title)

	_, err = LoadConfig(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte("renderer:\n  present_mode: nope\n"), 0o644))
	_, err = LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
}

func TestRateToDuration(t *testing.T) {
	assert.Zero(t, rateToDuration(0))
	assert.Zero(t, rateToDuration(-5))
	assert.Equal(t, int64(16666666), rateToDuration(60).Nanoseconds())
}
