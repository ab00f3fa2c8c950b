// ABOUTME: Tests for configuration loading and validation.
// ABOUTME: Covers defaults, config files, env overrides, and logger setup.

package config

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	cfg, err := Load(New(), "")
	require.NoError(t, err)

	assert.Equal(t, StoreSQLite, cfg.Store)
	assert.Empty(t, cfg.Baseline)
	assert.Equal(t, "materials", cfg.Charm.DBName)
	assert.True(t, cfg.Charm.AutoSync)
	assert.Equal(t, 10*time.Second, cfg.HTTP.RequestTimeout)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
store: local
baseline: ./materials.json
watch_baseline: true
local_path: /tmp/materials-local
charm:
  db_name: other
  auto_sync: false
http:
  addr: ":9000"
  request_timeout: 3s
log:
  level: debug
  format: json
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := Load(New(), path)
	require.NoError(t, err)

	assert.Equal(t, StoreLocal, cfg.Store)
	assert.Equal(t, "./materials.json", cfg.Baseline)
	assert.True(t, cfg.WatchBaseline)
	assert.Equal(t, "/tmp/materials-local", cfg.LocalPath)
	assert.Equal(t, "other", cfg.Charm.DBName)
	assert.False(t, cfg.Charm.AutoSync)
	assert.Equal(t, ":9000", cfg.HTTP.Addr)
	assert.Equal(t, 3*time.Second, cfg.HTTP.RequestTimeout)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadDefaultLocationFile(t *testing.T) {
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)
	require.NoError(t, os.MkdirAll(filepath.Join(configHome, "materials"), 0750))
	require.NoError(t, os.WriteFile(ConfigPath(), []byte("store: memory\n"), 0600))

	cfg, err := Load(New(), "")
	require.NoError(t, err)
	assert.Equal(t, StoreMemory, cfg.Store)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("MATERIALS_STORE", "memory")
	t.Setenv("MATERIALS_BASELINE", "https://example.com/materials.json")

	cfg, err := Load(New(), "")
	require.NoError(t, err)
	assert.Equal(t, StoreMemory, cfg.Store)
	assert.Equal(t, "https://example.com/materials.json", cfg.Baseline)
}

func TestLoadExplicitMissingFile(t *testing.T) {
	_, err := Load(New(), filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"sqlite ok", Config{Store: StoreSQLite, SQLitePath: "x.db"}, false},
		{"sqlite missing path", Config{Store: StoreSQLite}, true},
		{"local missing path", Config{Store: StoreLocal}, true},
		{"charm", Config{Store: StoreCharm}, false},
		{"memory", Config{Store: StoreMemory}, false},
		{"unknown", Config{Store: "firestore"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	assert.Equal(t, filepath.Join(dir, "materials"), ConfigDir())
	assert.Equal(t, filepath.Join(dir, "materials", "config.yaml"), ConfigPath())
}

func TestNewLogger(t *testing.T) {
	log, err := LogConfig{Level: "debug", Format: "json"}.NewLogger(io.Discard)
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, log.Formatter)

	_, err = LogConfig{Level: "loud"}.NewLogger(io.Discard)
	assert.Error(t, err)

	_, err = LogConfig{Level: "info", Format: "xml"}.NewLogger(io.Discard)
	assert.Error(t, err)
}
