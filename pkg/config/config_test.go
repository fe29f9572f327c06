package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(home, "taskbot", DefaultDataFile), cfg.DataFile)
	require.Equal(t, filepath.Join(home, "taskbot", DefaultHistoryFile), cfg.HistoryFile)
	require.Equal(t, DefaultCalendar, cfg.Calendar)
	require.Equal(t, DefaultLogLevel, cfg.LogLevel)
}

func TestSaveThenLoad(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	want := &Config{
		DataFile:    "/tmp/tasks.txt",
		HistoryFile: "/tmp/history",
		Calendar:    "Work",
		LogLevel:    "debug",
		Color:       false,
	}
	require.NoError(t, Save(want, path))

	got, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("calendar = \"Personal\"\n"), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "Personal", cfg.Calendar)
	require.Equal(t, DefaultLogLevel, cfg.LogLevel)
}

func TestLoadInvalidFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("calendar = [unterminated"), 0600))

	_, err := Load(path)
	require.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"TASKBOT_DATA_FILE": "/data/tasks.txt",
		"TASKBOT_CALENDAR":  "Work",
		"TASKBOT_LOG_LEVEL": "debug",
		"TASKBOT_COLOR":     "false",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := &Config{DataFile: "a", HistoryFile: "b", Calendar: "c", LogLevel: "warn", Color: true}
	require.NoError(t, cfg.applyEnv(lookup))
	require.Equal(t, "/data/tasks.txt", cfg.DataFile)
	require.Equal(t, "b", cfg.HistoryFile)
	require.Equal(t, "Work", cfg.Calendar)
	require.Equal(t, "debug", cfg.LogLevel)
	require.False(t, cfg.Color)

	env["TASKBOT_COLOR"] = "maybe"
	require.Error(t, cfg.applyEnv(lookup))
}

func TestNoColor(t *testing.T) {
	cfg := &Config{Color: true}
	require.NoError(t, cfg.applyEnv(func(k string) (string, bool) {
		return "", k == "NO_COLOR"
	}))
	require.False(t, cfg.Color)
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	require.Equal(t, filepath.Join(home, "tasks.txt"), expandHome("~/tasks.txt"))
	require.Equal(t, "/abs/tasks.txt", expandHome("/abs/tasks.txt"))
	require.Equal(t, "~other/x", expandHome("~other/x"))
}
