// Package config resolves runtime settings from flags, NDSCREEN_*
// environment variables and an optional config.yaml.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/abhisek/ndscreen/internal/session"
)

// Setting keys. Each is also read from NDSCREEN_<KEY>.
const (
	KeyDB            = "db"
	KeyCatalog       = "catalog"
	KeyAutosaveDelay = "autosave_delay"
	KeyBackupKeep    = "backup_keep"
	KeyLogLevel      = "log_level"
	KeyLogFile       = "log_file"
)

// EnvPrefix is prepended to every key when reading the environment.
const EnvPrefix = "NDSCREEN"

// Config holds the resolved settings.
type Config struct {
	// DBPath is the SQLite file. Empty means the default data path.
	DBPath string

	// CatalogPath is an instrument catalog YAML file. Empty means the
	// catalog built into the binary.
	CatalogPath string

	// AutosaveDelay is the quiet period before changes are written.
	AutosaveDelay time.Duration

	// BackupKeep is how many pre-import backups are retained.
	BackupKeep int

	LogLevel slog.Level

	// LogFile receives logs while the terminal UI runs. Empty means the
	// default state path.
	LogFile string
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		AutosaveDelay: session.DefaultAutosaveDelay,
		BackupKeep:    10,
		LogLevel:      slog.LevelInfo,
	}
}

// NewViper returns a viper instance with defaults, environment binding and
// the config file search path set up.
func NewViper() *viper.Viper {
	def := DefaultConfig()

	v := viper.New()
	v.SetDefault(KeyAutosaveDelay, def.AutosaveDelay)
	v.SetDefault(KeyBackupKeep, def.BackupKeep)
	v.SetDefault(KeyLogLevel, def.LogLevel.String())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if dir, err := Dir(); err == nil {
		v.AddConfigPath(dir)
	}
	return v
}

// Dir returns the directory searched for config.yaml:
// $XDG_CONFIG_HOME/ndscreen, falling back to ~/.config/ndscreen.
func Dir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "ndscreen"), nil
}

// Load reads the config file, if any, and resolves every setting from v.
// A missing config file is not an error.
func Load(v *viper.Viper) (Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := Config{
		DBPath:        v.GetString(KeyDB),
		CatalogPath:   v.GetString(KeyCatalog),
		AutosaveDelay: v.GetDuration(KeyAutosaveDelay),
		BackupKeep:    v.GetInt(KeyBackupKeep),
		LogFile:       v.GetString(KeyLogFile),
	}
	if err := cfg.LogLevel.UnmarshalText([]byte(v.GetString(KeyLogLevel))); err != nil {
		return Config{}, fmt.Errorf("%s: %w", KeyLogLevel, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.AutosaveDelay <= 0 {
		return fmt.Errorf("%s must be positive, got %s", KeyAutosaveDelay, c.AutosaveDelay)
	}
	if c.BackupKeep < 0 {
		return fmt.Errorf("%s must not be negative, got %d", KeyBackupKeep, c.BackupKeep)
	}
	return nil
}
