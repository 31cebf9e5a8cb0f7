package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// KeyType represents the data type of a config key.
type KeyType string

const (
	KeyTypeString KeyType = "string"
	KeyTypeInt    KeyType = "int"
	KeyTypeBool   KeyType = "bool"
	KeyTypeTime   KeyType = "time"
)

// KeyEntry describes a known, settable config key.
type KeyEntry struct {
	// Type is the value's data type.
	Type KeyType
	// Desc is a human-readable description shown in `radiant config list`.
	Desc string
	// DefaultStr is the string representation of the default value.
	DefaultStr string

	get   func(*Config) string
	set   func(cfg *Config, value string) error
	unset func(cfg *Config)
}

// Get returns the current value of the key as a string.
func (e *KeyEntry) Get(cfg *Config) string { return e.get(cfg) }

// Set validates and sets the value, returning a descriptive error on type mismatch.
func (e *KeyEntry) Set(cfg *Config, value string) error { return e.set(cfg, value) }

// Unset resets the key to its schema default.
func (e *KeyEntry) Unset(cfg *Config) { e.unset(cfg) }

func boolKey(desc string, field func(*Config) *bool) *KeyEntry {
	def := *field(defaultConfig())
	return &KeyEntry{
		Type:       KeyTypeBool,
		Desc:       desc,
		DefaultStr: strconv.FormatBool(def),
		get:        func(cfg *Config) string { return strconv.FormatBool(*field(cfg)) },
		set: func(cfg *Config, v string) error {
			b, err := ParseBoolValue(v)
			if err != nil {
				return err
			}
			*field(cfg) = b
			return nil
		},
		unset: func(cfg *Config) { *field(cfg) = def },
	}
}

func timeKey(desc string, field func(*Config) *string) *KeyEntry {
	def := *field(defaultConfig())
	return &KeyEntry{
		Type:       KeyTypeTime,
		Desc:       desc,
		DefaultStr: def,
		get:        func(cfg *Config) string { return *field(cfg) },
		set: func(cfg *Config, v string) error {
			v = strings.TrimSpace(v)
			if err := ValidateClock(v); err != nil {
				return err
			}
			*field(cfg) = v
			return nil
		},
		unset: func(cfg *Config) { *field(cfg) = def },
	}
}

func intKey(desc string, field func(*Config) *int) *KeyEntry {
	def := *field(defaultConfig())
	return &KeyEntry{
		Type:       KeyTypeInt,
		Desc:       desc,
		DefaultStr: strconv.Itoa(def),
		get:        func(cfg *Config) string { return strconv.Itoa(*field(cfg)) },
		set: func(cfg *Config, v string) error {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil || n < 0 {
				return fmt.Errorf("not a non-negative integer: %q", v)
			}
			*field(cfg) = n
			return nil
		},
		unset: func(cfg *Config) { *field(cfg) = def },
	}
}

// SchemaKeys is the authoritative registry of all settable config keys.
// Keys use dot-notation matching the TOML section structure.
var SchemaKeys = map[string]*KeyEntry{
	"user.name": {
		Type:       KeyTypeString,
		Desc:       "Display name used in greetings",
		DefaultStr: "",
		get:        func(cfg *Config) string { return cfg.User.Name },
		set:        func(cfg *Config, v string) error { cfg.User.Name = v; return nil },
		unset:      func(cfg *Config) { cfg.User.Name = "" },
	},
	"notifications.enabled": boolKey("Report daily reminders as due",
		func(c *Config) *bool { return &c.Notifications.Enabled }),
	"notifications.morning_enabled": boolKey("Morning affirmation reminder",
		func(c *Config) *bool { return &c.Notifications.MorningEnabled }),
	"notifications.evening_enabled": boolKey("Evening reflection reminder",
		func(c *Config) *bool { return &c.Notifications.EveningEnabled }),
	"notifications.streak_protection": boolKey("Remind at 20:00 if not checked in yet",
		func(c *Config) *bool { return &c.Notifications.StreakProtection }),
	"notifications.morning_time": timeKey("Morning reminder time (HH:MM)",
		func(c *Config) *string { return &c.Notifications.MorningTime }),
	"notifications.evening_time": timeKey("Evening reminder time (HH:MM)",
		func(c *Config) *string { return &c.Notifications.EveningTime }),
	"log.level": {
		Type:       KeyTypeString,
		Desc:       "Log level (debug, info, warn, error)",
		DefaultStr: "info",
		get:        func(cfg *Config) string { return cfg.Log.Level },
		set: func(cfg *Config, v string) error {
			switch strings.ToLower(v) {
			case "debug", "info", "warn", "error":
				cfg.Log.Level = strings.ToLower(v)
				return nil
			}
			return fmt.Errorf("invalid log level %q (use debug, info, warn, error)", v)
		},
		unset: func(cfg *Config) { cfg.Log.Level = "info" },
	},
	"log.max_size_mb": intKey("Rotate the log file after this many megabytes",
		func(c *Config) *int { return &c.Log.MaxSizeMB }),
	"log.max_backups": intKey("Rotated log files to keep",
		func(c *Config) *int { return &c.Log.MaxBackups }),
}

// ValidKeyNames returns the sorted list of all known config key names.
func ValidKeyNames() []string {
	names := make([]string, 0, len(SchemaKeys))
	for k := range SchemaKeys {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// LookupKey returns the KeyEntry for a known config key.
func LookupKey(key string) (*KeyEntry, bool) {
	entry, ok := SchemaKeys[key]
	return entry, ok
}

// ValidateClock checks a 24-hour "HH:MM" wall-clock time.
func ValidateClock(s string) error {
	if len(s) != 5 {
		return fmt.Errorf("invalid time %q (use 24-hour HH:MM, e.g. 07:30)", s)
	}
	if _, err := time.Parse("15:04", s); err != nil {
		return fmt.Errorf("invalid time %q (use 24-hour HH:MM, e.g. 07:30)", s)
	}
	return nil
}

// ParseBoolValue accepts common boolean string representations.
// Valid truthy values: true, 1, yes, on.
// Valid falsy values: false, 0, no, off.
func ParseBoolValue(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "on":
		return true, nil
	case "false", "0", "no", "off":
		return false, nil
	default:
		return false, fmt.Errorf("not a boolean: %q (use one of: true/false, 1/0, yes/no, on/off)", s)
	}
}
