package engine

import (
	"os"

	"github.com/Carmen-Shannon/baryon-go/common"
	"github.com/Carmen-Shannon/baryon-go/engine/renderer"
	"github.com/Carmen-Shannon/baryon-go/engine/renderer/pass"
	"github.com/Carmen-Shannon/baryon-go/engine/window"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config is the YAML representation of an application: window, renderer, loop and pass settings.
//
// Example:
//
//	window:
//	  title: Cubes
//	  width: 1280
//	  height: 720
//	renderer:
//	  present_mode: vsync
//	  power_preference: high
//	loop:
//	  tick_rate: 60
//	  profiling: true
//	passes:
//	  max_lights: 8
type Config struct {
	Window   WindowConfig   `yaml:"window"`
	Renderer RendererConfig `yaml:"renderer"`
	Loop     LoopConfig     `yaml:"loop"`
	Passes   PassConfig     `yaml:"passes"`
}

// WindowConfig configures the native window.
type WindowConfig struct {
	Title        string `yaml:"title"`
	Width        int    `yaml:"width"`
	Height       int    `yaml:"height"`
	Resizable    bool   `yaml:"resizable"`
	EscapeCloses bool   `yaml:"escape_closes"`
}

// RendererConfig configures the GPU context.
type RendererConfig struct {
	// PresentMode is one of vsync, uncapped or mailbox.
	PresentMode string `yaml:"present_mode"`
	// PowerPreference is one of default, low or high.
	PowerPreference string `yaml:"power_preference"`
	// Software requests a fallback adapter.
	Software bool   `yaml:"software"`
	Label    string `yaml:"label"`
}

// LoopConfig configures the application loop.
type LoopConfig struct {
	// TickRate is the fixed update rate in ticks per second. Zero ticks once per frame.
	TickRate float64 `yaml:"tick_rate"`
	// FrameLimit caps the frame rate. Zero is uncapped.
	FrameLimit float64 `yaml:"frame_limit"`
	Profiling  bool    `yaml:"profiling"`
	// ProfileInterval is the profiler report interval in seconds.
	ProfileInterval float64 `yaml:"profile_interval"`
}

// PassConfig holds the settings shared by the built-in passes.
type PassConfig struct {
	CullBackFaces    bool         `yaml:"cull_back_faces"`
	MaxLights        int          `yaml:"max_lights"`
	Workers          int          `yaml:"workers"`
	AmbientColor     common.Color `yaml:"ambient_color"`
	AmbientIntensity float32      `yaml:"ambient_intensity"`
}

// DefaultConfig returns the configuration used when no file is given.
//
// Returns:
//   - Config: the default configuration
func DefaultConfig() Config {
	phong := pass.DefaultPhongConfig()
	return Config{
		Window: WindowConfig{
			Title:        "baryon",
			Width:        1280,
			Height:       720,
			Resizable:    true,
			EscapeCloses: true,
		},
		Renderer: RendererConfig{
			PresentMode:     renderer.PresentModeVSync.String(),
			PowerPreference: renderer.PowerDefault.String(),
		},
		Loop: LoopConfig{
			TickRate:        60,
			ProfileInterval: 1,
		},
		Passes: PassConfig{
			CullBackFaces:    phong.CullBackFaces,
			MaxLights:        phong.MaxLights,
			Workers:          phong.Workers,
			AmbientColor:     phong.Ambient.Color,
			AmbientIntensity: phong.Ambient.Intensity,
		},
	}
}

// ParseConfig decodes YAML over DefaultConfig, so omitted keys keep their defaults.
//
// Parameters:
//   - data: the YAML document
//
// Returns:
//   - Config: the decoded configuration
//   - error: error if the document is malformed or a value is invalid
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrap(err, "failed to decode config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads and decodes a YAML configuration file.
//
// Parameters:
//   - path: path to the YAML file
//
// Returns:
//   - Config: the decoded configuration
//   - error: error if the file cannot be read or decoded
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "failed to read config %s", path)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, errors.Wrapf(err, "invalid config %s", path)
	}
	return cfg, nil
}

// Validate reports the first invalid value.
func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return errors.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if _, err := renderer.ParsePresentMode(c.Renderer.PresentMode); err != nil {
		return err
	}
	if _, err := renderer.ParsePowerPreference(c.Renderer.PowerPreference); err != nil {
		return err
	}
	if c.Loop.TickRate < 0 || c.Loop.FrameLimit < 0 || c.Loop.ProfileInterval < 0 {
		return errors.New("loop rates must not be negative")
	}
	if c.Passes.MaxLights < 0 {
		return errors.Errorf("max_lights must not be negative, got %d", c.Passes.MaxLights)
	}
	if c.Passes.Workers < 0 {
		return errors.Errorf("workers must not be negative, got %d", c.Passes.Workers)
	}
	return nil
}

// WindowOptions translates the window section into builder options.
func (c Config) WindowOptions() []window.WindowBuilderOption {
	return []window.WindowBuilderOption{
		window.WithTitle(c.Window.Title),
		window.WithSize(c.Window.Width, c.Window.Height),
		window.WithResizable(c.Window.Resizable),
		window.WithEscapeCloses(c.Window.EscapeCloses),
	}
}

// ContextOptions translates the renderer section into builder options. The surface option is
// added by the caller once a window exists.
//
// Returns:
//   - []renderer.ContextBuilderOption: the options
//   - error: error if the present mode or power preference is unknown
func (c Config) ContextOptions() ([]renderer.ContextBuilderOption, error) {
	mode, err := renderer.ParsePresentMode(c.Renderer.PresentMode)
	if err != nil {
		return nil, err
	}
	power, err := renderer.ParsePowerPreference(c.Renderer.PowerPreference)
	if err != nil {
		return nil, err
	}
	return []renderer.ContextBuilderOption{
		renderer.WithPresentMode(mode),
		renderer.WithPowerPreference(power),
		renderer.WithSoftware(c.Renderer.Software),
		renderer.WithLabel(c.Renderer.Label),
	}, nil
}

// SolidConfig returns the Solid pass settings.
func (c Config) SolidConfig() pass.SolidConfig {
	return pass.SolidConfig{CullBackFaces: c.Passes.CullBackFaces}
}

// PhongConfig returns the Phong pass settings.
func (c Config) PhongConfig() pass.PhongConfig {
	return pass.PhongConfig{
		CullBackFaces: c.Passes.CullBackFaces,
		Ambient:       pass.Ambient{Color: c.Passes.AmbientColor, Intensity: c.Passes.AmbientIntensity},
		MaxLights:     c.Passes.MaxLights,
		Workers:       c.Passes.Workers,
	}
}

// RealConfig returns the Real pass settings.
func (c Config) RealConfig() pass.RealConfig {
	return pass.RealConfig{CullBackFaces: c.Passes.CullBackFaces, MaxLights: c.Passes.MaxLights}
}
