// Package config provides configuration management for drift.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/viper"

	"github.com/ewalden/drift/internal/domain"
)

// Config holds all configuration for the drift application.
type Config struct {
	FirstRun      bool               `mapstructure:"first_run"`
	UserID        string             `mapstructure:"user_id"`
	Player        PlayerConfig       `mapstructure:"player"`
	Notifications NotificationConfig `mapstructure:"notifications"`
	MCP           MCPConfig          `mapstructure:"mcp"`
	Storage       StorageConfig      `mapstructure:"storage"`
	Theme         ThemeConfig        `mapstructure:"theme"`
}

// PlayerConfig holds the interaction-core knobs.
type PlayerConfig struct {
	CountdownSeconds   int      `mapstructure:"countdown_seconds"`
	IdleTimeout        Duration `mapstructure:"idle_timeout"`
	AmbientEnabled     bool     `mapstructure:"ambient_enabled"`
	SavedAckDuration   Duration `mapstructure:"saved_ack_duration"`
	CancelAckDuration  Duration `mapstructure:"cancel_ack_duration"`
	KeyboardSeekStep   int      `mapstructure:"keyboard_seek_step"`
	DefaultDurationMin int      `mapstructure:"default_duration_min"`
}

// ThemeConfig holds theme customization settings (colors and icons).
type ThemeConfig struct {
	ColorTitle    string   `mapstructure:"color_title"`
	ColorAccent   string   `mapstructure:"color_accent"`
	ColorPaused   string   `mapstructure:"color_paused"`
	ColorHelp     string   `mapstructure:"color_help"`
	ColorAmbient  string   `mapstructure:"color_ambient"`
	GradientStart string   `mapstructure:"gradient_start"`
	GradientEnd   string   `mapstructure:"gradient_end"`
	MoodPalette   []string `mapstructure:"mood_palette"`
	IconApp       string   `mapstructure:"icon_app"`
	IconGuide     string   `mapstructure:"icon_guide"`
	IconStats     string   `mapstructure:"icon_stats"`
	IconPaused    string   `mapstructure:"icon_paused"`
}

// DefaultThemeConfig returns the default theme configuration.
func DefaultThemeConfig() ThemeConfig {
	return ThemeConfig{
		ColorTitle:    "#6B7280",
		ColorAccent:   "#7C6FE0",
		ColorPaused:   "#6B7280",
		ColorHelp:     "#95A5A6",
		ColorAmbient:  "#374151",
		GradientStart: "#7C6FE0",
		GradientEnd:   "#A78BFA",
		MoodPalette:   domain.DefaultMoodPalette(),
		IconApp:       "🌙",
		IconGuide:     "🎧",
		IconStats:     "📊",
		IconPaused:    "⏸",
	}
}

// NotificationConfig holds notification settings.
type NotificationConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// MCPConfig holds MCP server settings.
type MCPConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// StorageConfig holds storage settings.
type StorageConfig struct {
	DataDir string `mapstructure:"data_dir"`
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

// Seconds returns the duration in whole seconds.
func (d Duration) Seconds() int {
	return int(time.Duration(d) / time.Second)
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		FirstRun: true,
		UserID:   uuid.New().String(),
		Player: PlayerConfig{
			CountdownSeconds:   3,
			IdleTimeout:        Duration(10 * time.Second),
			AmbientEnabled:     true,
			SavedAckDuration:   Duration(2300 * time.Millisecond),
			CancelAckDuration:  Duration(1500 * time.Millisecond),
			KeyboardSeekStep:   5,
			DefaultDurationMin: 10,
		},
		Notifications: NotificationConfig{Enabled: true},
		MCP:           MCPConfig{Enabled: true},
		Storage:       StorageConfig{DataDir: "~/.drift"},
		Theme:         DefaultThemeConfig(),
	}
}

// ToPlayerDomainConfig converts the config into the domain knobs.
func (c *Config) ToPlayerDomainConfig() domain.PlayerConfig {
	return domain.PlayerConfig{
		CountdownSeconds:   c.Player.CountdownSeconds,
		IdleTimeoutSeconds: c.Player.IdleTimeout.Seconds(),
		AmbientEnabled:     c.Player.AmbientEnabled,
	}
}

// Load loads the configuration from the config file.
func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}

	// Ensure config directory exists
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	viper.SetConfigFile(configPath)
	viper.SetConfigType("toml")

	setDefaults()

	// If config file doesn't exist, create it with defaults
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

	// A user id is minted once and kept stable across runs.
	if cfg.UserID == "" {
		cfg.UserID = uuid.New().String()
		if err := Save(&cfg); err != nil {
			return nil, fmt.Errorf("failed to persist user id: %w", err)
		}
	}

	// Expand ~ in data directory
	if cfg.Storage.DataDir == "~/.drift" || cfg.Storage.DataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		cfg.Storage.DataDir = filepath.Join(homeDir, ".drift")
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

	viper.Set("first_run", cfg.FirstRun)
	viper.Set("user_id", cfg.UserID)
	viper.Set("player.countdown_seconds", cfg.Player.CountdownSeconds)
	viper.Set("player.idle_timeout", cfg.Player.IdleTimeout.String())
	viper.Set("player.ambient_enabled", cfg.Player.AmbientEnabled)
	viper.Set("player.saved_ack_duration", cfg.Player.SavedAckDuration.String())
	viper.Set("player.cancel_ack_duration", cfg.Player.CancelAckDuration.String())
	viper.Set("player.keyboard_seek_step", cfg.Player.KeyboardSeekStep)
	viper.Set("player.default_duration_min", cfg.Player.DefaultDurationMin)
	viper.Set("notifications.enabled", cfg.Notifications.Enabled)
	viper.Set("mcp.enabled", cfg.MCP.Enabled)
	viper.Set("storage.data_dir", cfg.Storage.DataDir)
	viper.Set("theme.color_title", cfg.Theme.ColorTitle)
	viper.Set("theme.color_accent", cfg.Theme.ColorAccent)
	viper.Set("theme.color_paused", cfg.Theme.ColorPaused)
	viper.Set("theme.color_help", cfg.Theme.ColorHelp)
	viper.Set("theme.color_ambient", cfg.Theme.ColorAmbient)
	viper.Set("theme.gradient_start", cfg.Theme.GradientStart)
	viper.Set("theme.gradient_end", cfg.Theme.GradientEnd)
	viper.Set("theme.mood_palette", cfg.Theme.MoodPalette)
	viper.Set("theme.icon_app", cfg.Theme.IconApp)
	viper.Set("theme.icon_guide", cfg.Theme.IconGuide)
	viper.Set("theme.icon_stats", cfg.Theme.IconStats)
	viper.Set("theme.icon_paused", cfg.Theme.IconPaused)

	return viper.WriteConfig()
}

// GetConfigPath returns the path to the config file.
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".drift", "config.toml"), nil
}

// GetDBPath returns the path to the database file.
func GetDBPath(cfg *Config) string {
	return filepath.Join(cfg.Storage.DataDir, "drift.db")
}

// setDefaults sets default values for viper.
func setDefaults() {
	def := DefaultConfig()
	viper.SetDefault("first_run", true)
	viper.SetDefault("user_id", "")
	viper.SetDefault("player.countdown_seconds", def.Player.CountdownSeconds)
	viper.SetDefault("player.idle_timeout", def.Player.IdleTimeout.String())
	viper.SetDefault("player.ambient_enabled", def.Player.AmbientEnabled)
	viper.SetDefault("player.saved_ack_duration", def.Player.SavedAckDuration.String())
	viper.SetDefault("player.cancel_ack_duration", def.Player.CancelAckDuration.String())
	viper.SetDefault("player.keyboard_seek_step", def.Player.KeyboardSeekStep)
	viper.SetDefault("player.default_duration_min", def.Player.DefaultDurationMin)
	viper.SetDefault("notifications.enabled", def.Notifications.Enabled)
	viper.SetDefault("mcp.enabled", def.MCP.Enabled)
	viper.SetDefault("storage.data_dir", def.Storage.DataDir)
	viper.SetDefault("theme.color_title", def.Theme.ColorTitle)
	viper.SetDefault("theme.color_accent", def.Theme.ColorAccent)
	viper.SetDefault("theme.color_paused", def.Theme.ColorPaused)
	viper.SetDefault("theme.color_help", def.Theme.ColorHelp)
	viper.SetDefault("theme.color_ambient", def.Theme.ColorAmbient)
	viper.SetDefault("theme.gradient_start", def.Theme.GradientStart)
	viper.SetDefault("theme.gradient_end", def.Theme.GradientEnd)
	viper.SetDefault("theme.mood_palette", def.Theme.MoodPalette)
	viper.SetDefault("theme.icon_app", def.Theme.IconApp)
	viper.SetDefault("theme.icon_guide", def.Theme.IconGuide)
	viper.SetDefault("theme.icon_stats", def.Theme.IconStats)
	viper.SetDefault("theme.icon_paused", def.Theme.IconPaused)
}
