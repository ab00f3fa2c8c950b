// ABOUTME: Application configuration loaded through viper.
// ABOUTME: Reads an XDG config file, MATERIALS_ env vars, and defaults.

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/harper/materials/internal/charm"
	"github.com/harper/materials/internal/db"
	"github.com/harper/materials/internal/localstore"
	"github.com/spf13/viper"
)

// Store backends.
const (
	StoreSQLite = "sqlite"
	StoreCharm  = "charm"
	StoreLocal  = "local"
	StoreMemory = "memory"
)

// Config holds all configuration for the application.
type Config struct {
	// Store selects the mutable backend.
	Store string `mapstructure:"store"`
	// Baseline is an optional read-only source (file path or URL).
	Baseline      string `mapstructure:"baseline"`
	WatchBaseline bool   `mapstructure:"watch_baseline"`

	SQLitePath string       `mapstructure:"sqlite_path"`
	LocalPath  string       `mapstructure:"local_path"`
	Charm      charm.Config `mapstructure:"charm"`

	Log  LogConfig  `mapstructure:"log"`
	HTTP HTTPConfig `mapstructure:"http"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type HTTPConfig struct {
	Addr           string        `mapstructure:"addr"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// ConfigDir returns the configuration directory path.
func ConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "materials")
}

// ConfigPath returns the path to the default config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// New returns a viper instance with defaults and env binding set up.
func New() *viper.Viper {
	v := viper.New()

	charmDefaults := charm.DefaultConfig()
	v.SetDefault("store", StoreSQLite)
	v.SetDefault("baseline", "")
	v.SetDefault("watch_baseline", false)
	v.SetDefault("sqlite_path", db.DefaultPath())
	v.SetDefault("local_path", localstore.DefaultPath())
	v.SetDefault("charm.host", charmDefaults.Host)
	v.SetDefault("charm.db_name", charmDefaults.DBName)
	v.SetDefault("charm.auto_sync", charmDefaults.AutoSync)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "text")
	v.SetDefault("http.addr", "127.0.0.1:8080")
	v.SetDefault("http.request_timeout", 10*time.Second)

	v.SetEnvPrefix("MATERIALS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file at path (or the default location when path
// is empty) into a Config. A missing default file is not an error.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(ConfigDir())
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the store selection and required paths.
func (c *Config) Validate() error {
	switch c.Store {
	case StoreSQLite:
		if c.SQLitePath == "" {
			return errors.New("sqlite_path is not set")
		}
	case StoreLocal:
		if c.LocalPath == "" {
			return errors.New("local_path is not set")
		}
	case StoreCharm, StoreMemory:
	default:
		return fmt.Errorf("unknown store %q (want sqlite, charm, local or memory)", c.Store)
	}
	return nil
}
