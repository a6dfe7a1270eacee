package model

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// DefaultDayChangeThreshold is when a calendar day starts for logging
// purposes: work logged before noon counts for the previous day.
const DefaultDayChangeThreshold = "12:00"

// AppConfig is the top-level application configuration.
type AppConfig struct {
	// DataPath is the location of the SQLite database file.
	DataPath string `mapstructure:"data_path" yaml:"data_path"`

	// DayChangeThreshold is a wall-clock time in "HH:MM" form. Work logged
	// before it is attributed to the previous day.
	DayChangeThreshold string `mapstructure:"day_change_threshold" yaml:"day_change_threshold"`
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/wlog/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "wlog", "config.yaml")
}

// DefaultDataPath returns the default database location,
// ~/.local/share/wlog/wlog.db.
func DefaultDataPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "wlog.db")
	}
	return filepath.Join(home, ".local", "share", "wlog", "wlog.db")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	return &AppConfig{
		DataPath:           DefaultDataPath(),
		DayChangeThreshold: DefaultDayChangeThreshold,
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetDefault("data_path", DefaultDataPath())
	v.SetDefault("day_change_threshold", DefaultDayChangeThreshold)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return defaultAppConfig(), nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaultAppConfig(), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("data_path", cfg.DataPath)
	v.Set("day_change_threshold", cfg.DayChangeThreshold)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}

// EffectiveDate returns the day that work logged at now should be attributed
// to, at midnight UTC. Before the day-change threshold that is the previous
// day. An unparseable threshold falls back to the default.
func (c *AppConfig) EffectiveDate(now time.Time) time.Time {
	threshold := c.DayChangeThreshold
	if threshold == "" {
		threshold = DefaultDayChangeThreshold
	}
	cut, err := time.Parse("15:04", threshold)
	if err != nil {
		cut, _ = time.Parse("15:04", DefaultDayChangeThreshold)
	}

	date := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if now.Hour() < cut.Hour() || (now.Hour() == cut.Hour() && now.Minute() < cut.Minute()) {
		date = date.AddDate(0, 0, -1)
	}
	return date
}
