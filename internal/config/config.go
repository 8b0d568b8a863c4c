// Package config provides configuration management for Tempo.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/tempo-cli/tempo/internal/domain"
)

// Config holds all configuration for the Tempo application.
type Config struct {
	User          UserConfig         `mapstructure:"user"`
	Timer         TimerConfig        `mapstructure:"timer"`
	Notifications NotificationConfig `mapstructure:"notifications"`
	Storage       StorageConfig      `mapstructure:"storage"`
	Log           LogConfig          `mapstructure:"log"`
}

// UserConfig identifies the local user.
type UserConfig struct {
	ID   string `mapstructure:"id"`
	Name string `mapstructure:"name"`
}

// TimerConfig holds countdown settings.
type TimerConfig struct {
	WorkDuration           Duration `mapstructure:"work_duration"`
	ShortBreak             Duration `mapstructure:"short_break"`
	LongBreak              Duration `mapstructure:"long_break"`
	SessionsUntilLongBreak int      `mapstructure:"sessions_until_long_break"`
	WeeklyGoal             int      `mapstructure:"weekly_goal"`
}

// NotificationConfig holds feedback settings.
type NotificationConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Sound   bool `mapstructure:"sound"`
	Haptics bool `mapstructure:"haptics"`
}

// StorageConfig holds storage settings.
type StorageConfig struct {
	DataDir string `mapstructure:"data_dir"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Debug bool `mapstructure:"debug"`
}

// Duration is a wrapper around time.Duration for TOML parsing.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	duration, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(duration)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// String returns the string representation of the duration.
func (d Duration) String() string {
	return time.Duration(d).String()
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	prefs := domain.DefaultPreferences()
	return &Config{
		Timer: TimerConfig{
			WorkDuration:           Duration(prefs.WorkDuration),
			ShortBreak:             Duration(prefs.ShortBreakDuration),
			LongBreak:              Duration(prefs.LongBreakDuration),
			SessionsUntilLongBreak: prefs.SessionsUntilLongBreak,
			WeeklyGoal:             prefs.WeeklyGoal,
		},
		Notifications: NotificationConfig{
			Enabled: true,
			Sound:   true,
			Haptics: true,
		},
		Storage: StorageConfig{
			DataDir: "~/.tempo",
		},
	}
}

// Load loads the configuration from the config file, creating it with
// defaults on first run. A missing user id is generated and saved so the
// local identity stays stable across runs.
func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}

	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	viper.SetConfigFile(configPath)
	viper.SetConfigType("toml")

	setDefaults()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := Save(DefaultConfig()); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.User.ID == "" {
		cfg.User.ID = domain.NewID()
		if err := Save(&cfg); err != nil {
			return nil, fmt.Errorf("failed to persist user id: %w", err)
		}
	}

	// Expand ~ in data directory
	if cfg.Storage.DataDir == "~/.tempo" || cfg.Storage.DataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		cfg.Storage.DataDir = filepath.Join(homeDir, ".tempo")
	}

	return &cfg, nil
}

// Save saves the configuration to the config file.
func Save(cfg *Config) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	viper.SetConfigFile(configPath)
	viper.SetConfigType("toml")

	viper.Set("user.id", cfg.User.ID)
	viper.Set("user.name", cfg.User.Name)
	viper.Set("timer.work_duration", cfg.Timer.WorkDuration.String())
	viper.Set("timer.short_break", cfg.Timer.ShortBreak.String())
	viper.Set("timer.long_break", cfg.Timer.LongBreak.String())
	viper.Set("timer.sessions_until_long_break", cfg.Timer.SessionsUntilLongBreak)
	viper.Set("timer.weekly_goal", cfg.Timer.WeeklyGoal)
	viper.Set("notifications.enabled", cfg.Notifications.Enabled)
	viper.Set("notifications.sound", cfg.Notifications.Sound)
	viper.Set("notifications.haptics", cfg.Notifications.Haptics)
	viper.Set("storage.data_dir", cfg.Storage.DataDir)
	viper.Set("log.debug", cfg.Log.Debug)

	return viper.WriteConfig()
}

// GetConfigPath returns the path to the config file.
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".tempo", "config.toml"), nil
}

// GetDBPath returns the path to the database file.
func GetDBPath(cfg *Config) string {
	return filepath.Join(cfg.Storage.DataDir, "tempo.db")
}

// setDefaults sets default values for viper.
func setDefaults() {
	viper.SetDefault("user.id", "")
	viper.SetDefault("user.name", "")
	viper.SetDefault("timer.work_duration", "25m")
	viper.SetDefault("timer.short_break", "5m")
	viper.SetDefault("timer.long_break", "15m")
	viper.SetDefault("timer.sessions_until_long_break", 4)
	viper.SetDefault("timer.weekly_goal", 21)
	viper.SetDefault("notifications.enabled", true)
	viper.SetDefault("notifications.sound", true)
	viper.SetDefault("notifications.haptics", true)
	viper.SetDefault("storage.data_dir", "~/.tempo")
	viper.SetDefault("log.debug", false)
}

// ToPreferences converts the config to domain preferences.
func (c *Config) ToPreferences() domain.Preferences {
	return domain.Preferences{
		WorkDuration:           time.Duration(c.Timer.WorkDuration),
		ShortBreakDuration:     time.Duration(c.Timer.ShortBreak),
		LongBreakDuration:      time.Duration(c.Timer.LongBreak),
		SessionsUntilLongBreak: c.Timer.SessionsUntilLongBreak,
		WeeklyGoal:             c.Timer.WeeklyGoal,
		EnableNotifications:    c.Notifications.Enabled,
		EnableSounds:           c.Notifications.Sound,
		EnableHaptics:          c.Notifications.Haptics,
	}
}

// ToUser builds the local user profile from the config.
func (c *Config) ToUser() *domain.User {
	return &domain.User{
		ID:          c.User.ID,
		Name:        c.User.Name,
		Preferences: c.ToPreferences(),
	}
}
