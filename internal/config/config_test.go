package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	v := NewViper()
	cfg, err := Load(v, "")
	require.NoError(t, err)

	dataDir := filepath.Join(home, ".parnaso")
	assert.Equal(t, dataDir, cfg.DataDir)
	assert.Equal(t, DriverTOML, cfg.StorageDriver)
	assert.Equal(t, "chain", cfg.SecretsBackend)
	assert.Equal(t, 720*time.Hour, cfg.TokenTTL)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, filepath.Join(dataDir, LogFileName), cfg.LogFile)
	assert.Equal(t, filepath.Join(dataDir, "secrets"), cfg.SecretsDir())
	assert.Empty(t, cfg.ConfigFile)
	assert.Equal(t, dataDir, v.GetString(KeyDataDir))
}

func TestLoadPrecedence(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dataDir := filepath.Join(home, ".parnaso")
	require.NoError(t, os.MkdirAll(dataDir, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, ConfigFileName), []byte(`
[storage]
driver = "sqlite"

[log]
level = "debug"

[auth]
token_ttl = "2h"
`), 0o600))

	t.Setenv("PARNASO_LOG_LEVEL", "warn")

	v := NewViper()
	v.Set(KeyTokenTTL, "3h")

	cfg, err := Load(v, "")
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, cfg.StorageDriver, "file beats default")
	assert.Equal(t, slog.LevelWarn, cfg.LogLevel, "env beats file")
	assert.Equal(t, 3*time.Hour, cfg.TokenTTL, "explicit set beats file")
	assert.Equal(t, filepath.Join(dataDir, ConfigFileName), cfg.ConfigFile)
	assert.True(t, LogLevelSet(v))
}

func TestLogLevelSet(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("PARNASO_DATA_DIR", "")
	t.Setenv("PARNASO_LOG_LEVEL", "")

	v := NewViper()
	_, err := Load(v, "")
	require.NoError(t, err)
	assert.False(t, LogLevelSet(v), "default only")

	dataDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, ConfigFileName), []byte("[log]\nlevel = \"error\"\n"), 0o600))
	v = NewViper()
	v.Set(KeyDataDir, dataDir)
	_, err = Load(v, "")
	require.NoError(t, err)
	assert.True(t, LogLevelSet(v), "config file")
}

func TestLoadDataDirFromEnvAndTilde(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("PARNASO_DATA_DIR", "~/writing")

	cfg, err := Load(NewViper(), "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "writing"), cfg.DataDir)
}

func TestLoadExplicitConfigFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(t.TempDir(), "custom.toml")
	other := filepath.Join(t.TempDir(), "data")
	require.NoError(t, os.WriteFile(path, []byte("[data]\ndir = \""+filepath.ToSlash(other)+"\"\n"), 0o600))

	cfg, err := Load(NewViper(), path)
	require.NoError(t, err)
	assert.Equal(t, other, cfg.DataDir)
	assert.Equal(t, path, cfg.ConfigFile)

	_, err = Load(NewViper(), filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
	assert.ErrorContains(t, err, "read config")
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		name    string
		key     string
		value   string
		wantErr string
	}{
		{name: "driver", key: KeyStorageDriver, value: "postgres", wantErr: "unknown storage driver"},
		{name: "ttl", key: KeyTokenTTL, value: "-1h", wantErr: "token_ttl must be positive"},
		{name: "level", key: KeyLogLevel, value: "loud", wantErr: "loud"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewViper()
			v.Set(tt.key, tt.value)

			_, err := Load(v, "")
			require.Error(t, err)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
