package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(""), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, "player", cfg.User.Name)
	require.Equal(t, "warn", cfg.Log.Level)
	require.NotEmpty(t, cfg.Storage.DBPath)
	require.NotEmpty(t, cfg.Routines.Dir)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`user:
  name: andrej
storage:
  db_path: /tmp/routine-test.db
log:
  level: debug
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "andrej", cfg.User.Name)
	require.Equal(t, "/tmp/routine-test.db", cfg.Storage.DBPath)
	require.Equal(t, "debug", cfg.Log.Level)
	// Unset keys keep their defaults.
	require.NotEmpty(t, cfg.Routines.Dir)
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("ROUTINE_USER_NAME", "env-user")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: info\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "env-user", cfg.User.Name)
	require.Equal(t, "info", cfg.Log.Level)
}
