package appconfig

import (
	"os"
	"path/filepath"
	"time"

	"github.com/iw2rmb/inkwell/editor"
	"github.com/iw2rmb/inkwell/panel"
)

// Config is the top-level appliance configuration.
type Config struct {
	ConfigVersion int            `mapstructure:"config_version" yaml:"config_version"`
	ProjectsDir   string         `mapstructure:"projects_dir" yaml:"projects_dir"`
	Editor        EditorConfig   `mapstructure:"editor" yaml:"editor"`
	Display       DisplayConfig  `mapstructure:"display" yaml:"display"`
	Keyboard      KeyboardConfig `mapstructure:"keyboard" yaml:"keyboard"`
	HTTP          HTTPConfig     `mapstructure:"http" yaml:"http"`
	System        SystemConfig   `mapstructure:"system" yaml:"system"`
}

// CurrentConfigVersion marks the supported config version.
const CurrentConfigVersion = 1

// EditorConfig controls the editing loop and its timers.
type EditorConfig struct {
	AutosaveInterval   time.Duration `mapstructure:"autosave_interval" yaml:"autosave_interval"`
	InactivitySave     time.Duration `mapstructure:"inactivity_save" yaml:"inactivity_save"`
	SavedIndicator     time.Duration `mapstructure:"saved_indicator" yaml:"saved_indicator"`
	WordCountIndicator time.Duration `mapstructure:"word_count_indicator" yaml:"word_count_indicator"`
	ClockIndicator     time.Duration `mapstructure:"clock_indicator" yaml:"clock_indicator"`
	PollInterval       time.Duration `mapstructure:"poll_interval" yaml:"poll_interval"`
	ForceFullEvery     int           `mapstructure:"force_full_every" yaml:"force_full_every"`
}

// DisplayConfig sizes the panel and places the screen bands, in pixels.
type DisplayConfig struct {
	Width    int     `mapstructure:"width" yaml:"width"`
	Height   int     `mapstructure:"height" yaml:"height"`
	Margin   int     `mapstructure:"margin" yaml:"margin"`
	Header   int     `mapstructure:"header" yaml:"header"`
	Footer   int     `mapstructure:"footer" yaml:"footer"`
	FontSize float64 `mapstructure:"font_size" yaml:"font_size"`
	// Output is the PNG file frames are written to when no panel is attached.
	Output string `mapstructure:"output" yaml:"output"`
}

// KeyboardConfig selects the evdev keyboard. An empty device is discovered.
type KeyboardConfig struct {
	Device string `mapstructure:"device" yaml:"device"`
}

// HTTPConfig configures the transfer server. An empty addr disables it.
type HTTPConfig struct {
	Addr string `mapstructure:"addr" yaml:"addr"`
}

// SystemConfig controls appliance power behavior.
type SystemConfig struct {
	IdleShutdown time.Duration `mapstructure:"idle_shutdown" yaml:"idle_shutdown"`
}

// DefaultConfig returns a config with the appliance defaults.
func DefaultConfig() (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, err
	}
	timings := editor.DefaultTimings()
	geo := editor.PanelGeometry()
	opts := panel.DefaultOptions()
	return Config{
		ConfigVersion: CurrentConfigVersion,
		ProjectsDir:   filepath.Join(home, "inkwell", "projects"),
		Editor: EditorConfig{
			AutosaveInterval:   timings.AutosaveInterval,
			InactivitySave:     timings.InactivitySave,
			SavedIndicator:     timings.SavedIndicator,
			WordCountIndicator: timings.WordCountIndicator,
			ClockIndicator:     timings.ClockIndicator,
			PollInterval:       timings.Poll,
			ForceFullEvery:     editor.DefaultConfig().ForceFullEvery,
		},
		Display: DisplayConfig{
			Width:    opts.Width,
			Height:   opts.Height,
			Margin:   geo.Margin,
			Header:   geo.Header,
			Footer:   geo.Footer,
			FontSize: opts.BodySize,
			Output:   filepath.Join(home, "inkwell", "frame.png"),
		},
		HTTP: HTTPConfig{
			Addr: ":8000",
		},
		System: SystemConfig{
			IdleShutdown: timings.IdleShutdown,
		},
	}, nil
}

// DefaultConfigPath returns the standard config path.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".inkwell", "config.yaml"), nil
}

// Session returns the editor configuration for a document.
func (c Config) Session() editor.Config {
	cfg := editor.DefaultConfig()
	cfg.Geometry = editor.Geometry{Margin: c.Display.Margin, Header: c.Display.Header, Footer: c.Display.Footer}
	cfg.Timings = editor.Timings{
		Poll:               c.Editor.PollInterval,
		AutosaveInterval:   c.Editor.AutosaveInterval,
		InactivitySave:     c.Editor.InactivitySave,
		SavedIndicator:     c.Editor.SavedIndicator,
		WordCountIndicator: c.Editor.WordCountIndicator,
		ClockIndicator:     c.Editor.ClockIndicator,
		IdleShutdown:       c.System.IdleShutdown,
	}
	cfg.ForceFullEvery = c.Editor.ForceFullEvery
	return cfg
}

// Panel returns the canvas options for the configured display.
func (c Config) Panel() panel.Options {
	opts := panel.DefaultOptions()
	opts.Width = c.Display.Width
	opts.Height = c.Display.Height
	if c.Display.FontSize > 0 {
		scale := c.Display.FontSize / opts.BodySize
		opts.BodySize = c.Display.FontSize
		opts.TitleSize *= scale
		opts.StatusSize *= scale
	}
	return opts
}
