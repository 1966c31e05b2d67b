// Package config handles configuration loading and management for triad.
// It supports XDG config paths, project-level overrides, and environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for triad.
type Config struct {
	Anthropic AnthropicConfig `mapstructure:"anthropic"`
	Dispatch  DispatchConfig  `mapstructure:"dispatch"`
	Context   ContextConfig   `mapstructure:"context"`
	History   HistoryConfig   `mapstructure:"history"`
	Debug     DebugConfig     `mapstructure:"debug"`
}

// AnthropicConfig holds Anthropic API settings.
type AnthropicConfig struct {
	// APIKey authenticates direct API calls. Falls back to the
	// ANTHROPIC_API_KEY environment variable when empty.
	APIKey string `mapstructure:"api_key"`
	// Model is the model identifier every agent dispatches to.
	Model string `mapstructure:"model"`
	// RequestTimeout bounds each completion call; 0 disables the deadline.
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	// Bedrock selects the AWS Bedrock path instead of the direct API.
	Bedrock BedrockConfig `mapstructure:"bedrock"`
}

// BedrockConfig holds AWS Bedrock settings.
type BedrockConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Region  string `mapstructure:"region"`
	Profile string `mapstructure:"profile"`
}

// DispatchConfig holds the rate-limiting policy between task dispatches.
type DispatchConfig struct {
	// Rate is the sustained dispatches per second; <= 0 disables pacing.
	Rate float64 `mapstructure:"rate"`
	// Burst is the token-bucket burst size.
	Burst int `mapstructure:"burst"`
}

// ContextConfig points at the project context artifact.
type ContextConfig struct {
	Path string `mapstructure:"path"`
}

// HistoryConfig holds the run-history store settings.
type HistoryConfig struct {
	Enabled bool `mapstructure:"enabled"`
	// Path overrides the default database location when set.
	Path string `mapstructure:"path"`
}

// DebugConfig holds debug logging settings.
type DebugConfig struct {
	LogPath string `mapstructure:"log_path"`
}

// Load loads configuration from XDG paths, project overrides, and environment variables.
// Precedence (highest to lowest):
// 1. Environment variables (ANTHROPIC_API_KEY)
// 2. Project config (.triad/config.yaml in current directory or parent)
// 3. User config (~/.config/triad/config.yaml)
// 4. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Load user config from XDG path
	userConfigDir := getUserConfigDir()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(userConfigDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading user config: %w", err)
		}
	}

	// Load project config if present
	projectConfig := findProjectConfig()
	if projectConfig != "" {
		projectViper := viper.New()
		projectViper.SetConfigFile(projectConfig)
		if err := projectViper.ReadInConfig(); err == nil {
			// Merge project config (takes precedence)
			if err := v.MergeConfigMap(projectViper.AllSettings()); err != nil {
				return nil, fmt.Errorf("merging project config: %w", err)
			}
		}
	}

	// Environment variable overrides
	v.AutomaticEnv()
	v.SetEnvPrefix("")

	// Map specific environment variables
	v.BindEnv("anthropic.api_key", "ANTHROPIC_API_KEY")

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	// Expand ${VAR} references
	cfg.Anthropic.APIKey = expandEnv(cfg.Anthropic.APIKey)

	return cfg, nil
}

// LoadFromPath loads configuration from a specific path (for testing).
func LoadFromPath(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	cfg.Anthropic.APIKey = expandEnv(cfg.Anthropic.APIKey)

	return cfg, nil
}

// Save writes the current configuration to the user config file.
func Save(cfg *Config) error {
	userConfigDir := getUserConfigDir()
	if err := os.MkdirAll(userConfigDir, 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	configPath := filepath.Join(userConfigDir, "config.yaml")

	v := viper.New()
	v.SetConfigFile(configPath)

	v.Set("anthropic.api_key", cfg.Anthropic.APIKey)
	v.Set("anthropic.model", cfg.Anthropic.Model)
	v.Set("anthropic.request_timeout", cfg.Anthropic.RequestTimeout.String())
	v.Set("anthropic.bedrock.enabled", cfg.Anthropic.Bedrock.Enabled)
	v.Set("anthropic.bedrock.region", cfg.Anthropic.Bedrock.Region)
	v.Set("anthropic.bedrock.profile", cfg.Anthropic.Bedrock.Profile)
	v.Set("dispatch.rate", cfg.Dispatch.Rate)
	v.Set("dispatch.burst", cfg.Dispatch.Burst)
	v.Set("context.path", cfg.Context.Path)
	v.Set("history.enabled", cfg.History.Enabled)
	v.Set("history.path", cfg.History.Path)
	v.Set("debug.log_path", cfg.Debug.LogPath)

	return v.WriteConfig()
}

// GetUserConfigPath returns the path to the user config file.
func GetUserConfigPath() string {
	return filepath.Join(getUserConfigDir(), "config.yaml")
}

// GetProjectConfigPath returns the path to the project config file if it exists.
func GetProjectConfigPath() string {
	return findProjectConfig()
}

// setDefaults configures default values.
func setDefaults(v *viper.Viper) {
	// Anthropic defaults
	v.SetDefault("anthropic.api_key", "")
	v.SetDefault("anthropic.model", "claude-sonnet-4-20250514")
	v.SetDefault("anthropic.request_timeout", "120s")
	v.SetDefault("anthropic.bedrock.enabled", false)
	v.SetDefault("anthropic.bedrock.region", "")
	v.SetDefault("anthropic.bedrock.profile", "")

	// Dispatch pacing defaults: one dispatch per second, no burst headroom
	v.SetDefault("dispatch.rate", 1.0)
	v.SetDefault("dispatch.burst", 1)

	// Project context artifact
	v.SetDefault("context.path", filepath.Join(".triad", "context.yaml"))

	// Run history defaults
	v.SetDefault("history.enabled", true)
	v.SetDefault("history.path", "")

	// Debug logging defaults
	v.SetDefault("debug.log_path", "")
}

// getUserConfigDir returns the XDG config directory for triad.
func getUserConfigDir() string {
	// Check XDG_CONFIG_HOME first
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "triad")
	}

	// Fall back to ~/.config/triad
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", "triad")
	}
	return filepath.Join(home, ".config", "triad")
}

// findProjectConfig searches for .triad/config.yaml in the current directory and parents.
func findProjectConfig() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		configPath := filepath.Join(cwd, ".triad", "config.yaml")
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(cwd)
		if parent == cwd {
			break
		}
		cwd = parent
	}

	return ""
}

// expandEnv expands ${VAR} references in a string.
func expandEnv(s string) string {
	return os.ExpandEnv(s)
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Anthropic: AnthropicConfig{
			APIKey:         "",
			Model:          "claude-sonnet-4-20250514",
			RequestTimeout: 120 * time.Second,
		},
		Dispatch: DispatchConfig{
			Rate:  1.0,
			Burst: 1,
		},
		Context: ContextConfig{
			Path: filepath.Join(".triad", "context.yaml"),
		},
		History: HistoryConfig{
			Enabled: true,
			Path:    "",
		},
		Debug: DebugConfig{
			LogPath: "",
		},
	}
}
