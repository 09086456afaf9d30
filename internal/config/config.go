// Package config loads and validates the lectio configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

type Config struct {
	Provider  ProviderConfig `mapstructure:"provider"`
	Languages LanguageConfig `mapstructure:"languages"`
	Paths     PathsConfig    `mapstructure:"paths"`
	Cache     CacheConfig    `mapstructure:"cache"`
	Sync      SyncConfig     `mapstructure:"sync"`
}

type ProviderConfig struct {
	BaseURL string `mapstructure:"base_url" validate:"required,url"`
	// CorrectionsFile points at the YAML table of known schedule truncations.
	// The table is provider data, not policy, so it lives outside the binary.
	CorrectionsFile string `mapstructure:"corrections_file" validate:"omitempty,file"`
	RetryAttempts   uint   `mapstructure:"retry_attempts"`
}

type LanguageConfig struct {
	Primary   string `mapstructure:"primary" validate:"required"`
	Secondary string `mapstructure:"secondary"`
}

type PathsConfig struct {
	// Active lists the study paths the user currently follows.
	Active []string `mapstructure:"active" validate:"required,min=1,dive,required"`
}

type CacheConfig struct {
	Directory string `mapstructure:"directory" validate:"required"`
	// MaxAgeDays is the hard staleness limit for cached remote content;
	// entries older than this are removed regardless of completion state.
	MaxAgeDays int `mapstructure:"max_age_days" validate:"min=1"`
}

type SyncConfig struct {
	IntervalMinutes int `mapstructure:"interval_minutes" validate:"min=1"`
	LookAheadDays   int `mapstructure:"look_ahead_days" validate:"min=0"`
	WarmDays        int `mapstructure:"warm_days" validate:"min=0"`
	// RetentionDays is the completed-day window. 0 disables the sweep and
	// retains completed days forever.
	RetentionDays int `mapstructure:"retention_days" validate:"min=0"`
}

func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetConfigType("yaml")

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/lectio")
	}

	v.SetDefault("provider.retry_attempts", 2)
	v.SetDefault("languages.primary", "en")
	v.SetDefault("paths.active", []string{"psalter"})
	v.SetDefault("cache.directory", defaultCacheDirectory())
	v.SetDefault("cache.max_age_days", 30)
	v.SetDefault("sync.interval_minutes", 30)
	v.SetDefault("sync.look_ahead_days", 7)
	v.SetDefault("sync.warm_days", 3)
	v.SetDefault("sync.retention_days", 14)

	// The provider URL may also come from the environment so that pointing at
	// a test or staging provider does not require editing the config file.
	if err := v.BindEnv("provider.base_url", "LECTIO_PROVIDER_URL"); err != nil {
		return nil, fmt.Errorf("failed to bind LECTIO_PROVIDER_URL environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func defaultCacheDirectory() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".lectio")
	}
	return filepath.Join(home, ".local", "share", "lectio")
}
