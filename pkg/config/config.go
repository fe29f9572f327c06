package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (
	xdgAppName = "taskbot"
	configFile = "config.toml"
	envPrefix  = "TASKBOT_"

	DefaultDataFile    = "tasks.txt"
	DefaultHistoryFile = "history"
	DefaultCalendar    = "Tasks"
	DefaultLogLevel    = "warn"
)

type Config struct {
	// DataFile is the task save file.
	DataFile string `toml:"data_file"`
	// HistoryFile keeps the console input history.
	HistoryFile string `toml:"history_file"`
	// Calendar is the Google Calendar that -sync publishes timed tasks to.
	Calendar string `toml:"calendar"`
	LogLevel string `toml:"log_level"`
	Color    bool   `toml:"color"`
}

// GetXdgHome returns the directory holding taskbot's config and state.
// XDG_CONFIG_HOME is honoured when set.
func GetXdgHome() (string, error) {
	if base := os.Getenv("XDG_CONFIG_HOME"); base != "" {
		return filepath.Join(base, xdgAppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", xdgAppName), nil
}

func GetConfigPath() (string, error) {
	dir, err := GetXdgHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFile), nil
}

// Default returns the configuration used when nothing else is set.
func Default() (*Config, error) {
	dir, err := GetXdgHome()
	if err != nil {
		return nil, err
	}
	return &Config{
		DataFile:    filepath.Join(dir, DefaultDataFile),
		HistoryFile: filepath.Join(dir, DefaultHistoryFile),
		Calendar:    DefaultCalendar,
		LogLevel:    DefaultLogLevel,
		Color:       true,
	}, nil
}

// Load reads the config file at path (the default location when empty) on
// top of the defaults, then applies TASKBOT_* environment overrides. A .env
// file in the working directory is loaded first if present.
func Load(path string) (*Config, error) {
	cfg, err := Default()
	if err != nil {
		return nil, err
	}
	if path == "" {
		path, err = GetConfigPath()
		if err != nil {
			return nil, err
		}
	}

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
		}
	}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	cfg.DataFile = expandHome(cfg.DataFile)
	cfg.HistoryFile = expandHome(cfg.HistoryFile)
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(envPrefix + "DATA_FILE"); ok && v != "" {
		c.DataFile = v
	}
	if v, ok := lookup(envPrefix + "HISTORY_FILE"); ok && v != "" {
		c.HistoryFile = v
	}
	if v, ok := lookup(envPrefix + "CALENDAR"); ok && v != "" {
		c.Calendar = v
	}
	if v, ok := lookup(envPrefix + "LOG_LEVEL"); ok && v != "" {
		c.LogLevel = v
	}
	if v, ok := lookup(envPrefix + "COLOR"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %sCOLOR %q: %w", envPrefix, v, err)
		}
		c.Color = b
	}
	if _, ok := lookup("NO_COLOR"); ok {
		c.Color = false
	}
	return nil
}

// Save writes cfg to path (the default location when empty).
func Save(cfg *Config, path string) error {
	if path == "" {
		var err error
		path, err = GetConfigPath()
		if err != nil {
			return err
		}
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to open config file for writing: %w", err)
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
