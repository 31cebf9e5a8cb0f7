package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v6"
)

// Config holds the top-level radiant configuration.
type Config struct {
	User          UserConfig         `toml:"user"`
	Notifications NotificationConfig `toml:"notifications"`
	Log           LogConfig          `toml:"log"`
}

type UserConfig struct {
	Name string `toml:"name"`
}

// NotificationConfig controls which daily reminders radiant reports as due.
// Times are 24-hour "HH:MM" in local time.
type NotificationConfig struct {
	Enabled          bool   `toml:"enabled"`
	MorningTime      string `toml:"morning_time"`
	EveningTime      string `toml:"evening_time"`
	MorningEnabled   bool   `toml:"morning_enabled"`
	EveningEnabled   bool   `toml:"evening_enabled"`
	StreakProtection bool   `toml:"streak_protection"`
}

type LogConfig struct {
	Level      string `toml:"level"` // debug, info, warn, error
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
}

// PathOverrides relocate files radiant would otherwise keep under XDG dirs.
type PathOverrides struct {
	DB string `env:"RADIANT_DB"`
}

// Overrides are environment variables that win over config.toml.
type Overrides struct {
	PathOverrides
	LogLevel      string `env:"RADIANT_LOG_LEVEL"`
	Notifications *bool  `env:"RADIANT_NOTIFICATIONS"`
}

// Paths returns standard XDG-compliant paths.
type Paths struct {
	ConfigDir  string
	DataDir    string
	CacheDir   string
	StateDir   string
	ConfigFile string
	DBFile     string
	LogFile    string
}

// GetPaths returns the resolved paths, respecting XDG env vars and RADIANT_DB.
func GetPaths() Paths {
	home, _ := os.UserHomeDir()

	configDir := envOr("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	dataDir := envOr("XDG_DATA_HOME", filepath.Join(home, ".local", "share"))
	cacheDir := envOr("XDG_CACHE_HOME", filepath.Join(home, ".cache"))
	stateDir := envOr("XDG_STATE_HOME", filepath.Join(home, ".local", "state"))

	radiantConfig := filepath.Join(configDir, "radiant")
	radiantData := filepath.Join(dataDir, "radiant")
	radiantState := filepath.Join(stateDir, "radiant")

	dbFile := filepath.Join(radiantData, "radiant.db")
	var po PathOverrides
	if err := env.Parse(&po); err == nil && po.DB != "" {
		dbFile = po.DB
	}

	return Paths{
		ConfigDir:  radiantConfig,
		DataDir:    radiantData,
		CacheDir:   filepath.Join(cacheDir, "radiant"),
		StateDir:   radiantState,
		ConfigFile: filepath.Join(radiantConfig, "config.toml"),
		DBFile:     dbFile,
		LogFile:    filepath.Join(radiantState, "radiant.log"),
	}
}

// EnsureDirs creates all required directories.
func (p Paths) EnsureDirs() error {
	dirs := []string{p.ConfigDir, p.DataDir, p.CacheDir, p.StateDir, filepath.Dir(p.DBFile)}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return err
		}
	}
	return nil
}

// Load reads config from disk, returning defaults if not found.
// Keys missing from the file keep their default values, and environment
// overrides are applied last.
func Load() (*Config, error) {
	cfg, err := LoadFile()
	if err != nil {
		return nil, err
	}
	if err := applyOverrides(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads config.toml over the defaults without applying environment
// overrides. Use it when the result is going to be saved back.
func LoadFile() (*Config, error) {
	paths := GetPaths()
	cfg := defaultConfig()

	data, err := os.ReadFile(paths.ConfigFile)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", paths.ConfigFile, err)
	}
	return cfg, nil
}

// Save writes config to disk.
func Save(cfg *Config) error {
	paths := GetPaths()
	if err := paths.EnsureDirs(); err != nil {
		return err
	}

	f, err := os.Create(paths.ConfigFile)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// Initialized returns true if radiant has been set up.
func Initialized() bool {
	_, err := os.Stat(GetPaths().ConfigFile)
	return err == nil
}

func applyOverrides(cfg *Config) error {
	var o Overrides
	if err := env.Parse(&o); err != nil {
		return fmt.Errorf("reading environment overrides: %w", err)
	}
	if o.LogLevel != "" {
		cfg.Log.Level = o.LogLevel
	}
	if o.Notifications != nil {
		cfg.Notifications.Enabled = *o.Notifications
	}
	return nil
}

func defaultConfig() *Config {
	return &Config{
		Notifications: NotificationConfig{
			Enabled:          false,
			MorningTime:      "07:00",
			EveningTime:      "21:00",
			MorningEnabled:   true,
			EveningEnabled:   true,
			StreakProtection: true,
		},
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  5,
			MaxBackups: 3,
		},
	}
}

// Default returns a fresh copy of the default configuration.
func Default() *Config {
	return defaultConfig()
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
