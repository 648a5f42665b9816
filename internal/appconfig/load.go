package appconfig

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Load reads configuration from the provided path. If path is empty, uses
// DefaultConfigPath. A missing file yields the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return Config{}, err
		}
		path = defaultPath
	}

	cfg, err := DefaultConfig()
	if err != nil {
		return Config{}, err
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetDefault("config_version", cfg.ConfigVersion)
	v.SetDefault("projects_dir", cfg.ProjectsDir)
	v.SetDefault("editor.autosave_interval", cfg.Editor.AutosaveInterval)
	v.SetDefault("editor.inactivity_save", cfg.Editor.InactivitySave)
	v.SetDefault("editor.saved_indicator", cfg.Editor.SavedIndicator)
	v.SetDefault("editor.word_count_indicator", cfg.Editor.WordCountIndicator)
	v.SetDefault("editor.clock_indicator", cfg.Editor.ClockIndicator)
	v.SetDefault("editor.poll_interval", cfg.Editor.PollInterval)
	v.SetDefault("editor.force_full_every", cfg.Editor.ForceFullEvery)
	v.SetDefault("display.width", cfg.Display.Width)
	v.SetDefault("display.height", cfg.Display.Height)
	v.SetDefault("display.margin", cfg.Display.Margin)
	v.SetDefault("display.header", cfg.Display.Header)
	v.SetDefault("display.footer", cfg.Display.Footer)
	v.SetDefault("display.font_size", cfg.Display.FontSize)
	v.SetDefault("display.output", cfg.Display.Output)
	v.SetDefault("keyboard.device", cfg.Keyboard.Device)
	v.SetDefault("http.addr", cfg.HTTP.Addr)
	v.SetDefault("system.idle_shutdown", cfg.System.IdleShutdown)

	configLoaded := false
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, err
		}
	} else {
		configLoaded = true
	}

	if configLoaded {
		if !v.IsSet("config_version") {
			return Config{}, fmt.Errorf("config_version is required; expected %d", CurrentConfigVersion)
		}
		if v.GetInt("config_version") != CurrentConfigVersion {
			return Config{}, fmt.Errorf("unsupported config_version %d; expected %d", v.GetInt("config_version"), CurrentConfigVersion)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	cfg.ProjectsDir = expandEnv(cfg.ProjectsDir)
	cfg.Display.Output = expandEnv(cfg.Display.Output)
	cfg.Keyboard.Device = expandEnv(cfg.Keyboard.Device)
	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validate(cfg Config) error {
	if strings.TrimSpace(cfg.ProjectsDir) == "" {
		return errors.New("projects_dir is required")
	}
	if cfg.Display.Width <= 0 || cfg.Display.Height <= 0 {
		return fmt.Errorf("display size %dx%d must be positive", cfg.Display.Width, cfg.Display.Height)
	}
	if cfg.Display.Header+cfg.Display.Footer >= cfg.Display.Height {
		return fmt.Errorf("display.header and display.footer leave no room for text")
	}
	if 2*cfg.Display.Margin >= cfg.Display.Width {
		return fmt.Errorf("display.margin leaves no room for text")
	}
	if cfg.Editor.ForceFullEvery < 1 {
		return fmt.Errorf("editor.force_full_every must be at least 1")
	}
	if cfg.Editor.AutosaveInterval < 0 || cfg.Editor.InactivitySave < 0 {
		return fmt.Errorf("editor save timers must not be negative")
	}
	if cfg.System.IdleShutdown < 0 {
		return fmt.Errorf("system.idle_shutdown must not be negative")
	}
	return nil
}

func expandEnv(value string) string {
	if value == "" {
		return value
	}
	if value == "~" || strings.HasPrefix(value, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			value = home + value[1:]
		}
	}
	return os.Expand(value, func(key string) string {
		if val, ok := os.LookupEnv(key); ok && key != "" {
			return val
		}
		return "$" + key
	})
}

// fileConfig is the YAML shape of Config; durations are written as strings
// such as "30s".
type fileConfig struct {
	ConfigVersion int    `yaml:"config_version"`
	ProjectsDir   string `yaml:"projects_dir"`
	Editor        struct {
		AutosaveInterval   string `yaml:"autosave_interval"`
		InactivitySave     string `yaml:"inactivity_save"`
		SavedIndicator     string `yaml:"saved_indicator"`
		WordCountIndicator string `yaml:"word_count_indicator"`
		ClockIndicator     string `yaml:"clock_indicator"`
		PollInterval       string `yaml:"poll_interval"`
		ForceFullEvery     int    `yaml:"force_full_every"`
	} `yaml:"editor"`
	Display  DisplayConfig  `yaml:"display"`
	Keyboard KeyboardConfig `yaml:"keyboard"`
	HTTP     HTTPConfig     `yaml:"http"`
	System   struct {
		IdleShutdown string `yaml:"idle_shutdown"`
	} `yaml:"system"`
}

func toFile(cfg Config) fileConfig {
	var f fileConfig
	f.ConfigVersion = cfg.ConfigVersion
	f.ProjectsDir = cfg.ProjectsDir
	f.Editor.AutosaveInterval = cfg.Editor.AutosaveInterval.String()
	f.Editor.InactivitySave = cfg.Editor.InactivitySave.String()
	f.Editor.SavedIndicator = cfg.Editor.SavedIndicator.String()
	f.Editor.WordCountIndicator = cfg.Editor.WordCountIndicator.String()
	f.Editor.ClockIndicator = cfg.Editor.ClockIndicator.String()
	f.Editor.PollInterval = cfg.Editor.PollInterval.String()
	f.Editor.ForceFullEvery = cfg.Editor.ForceFullEvery
	f.Display = cfg.Display
	f.Keyboard = cfg.Keyboard
	f.HTTP = cfg.HTTP
	f.System.IdleShutdown = cfg.System.IdleShutdown.String()
	return f
}

// WriteDefault writes the default config to the target path.
func WriteDefault(path string, overwrite bool) (string, error) {
	if path == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return "", err
		}
		path = defaultPath
	}

	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return "", fmt.Errorf("config already exists at %s", path)
		}
	}

	cfg, err := DefaultConfig()
	if err != nil {
		return "", err
	}

	data, err := yaml.Marshal(toFile(cfg))
	if err != nil {
		return "", err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", err
	}
	return path, nil
}
