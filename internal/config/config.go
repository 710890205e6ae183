// Package config resolves runtime settings from defaults, an optional
// bikeshare.yaml file and BIKESHARE_* environment variables.
package config

import (
	"errors"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/thesavant42/bikeshare-ng/internal/models"
)

// Config holds the resolved settings
type Config struct {
	DataDir  string `mapstructure:"data_dir"`
	CacheDB  string `mapstructure:"cache_db"`
	UseCache bool   `mapstructure:"use_cache"`
	LogFile  string `mapstructure:"log_file"`
	LogLevel string `mapstructure:"log_level"`
	PageSize int    `mapstructure:"page_size"`
	Splash   bool   `mapstructure:"splash"`
}

var defaults = map[string]any{
	"data_dir":  ".",
	"cache_db":  "bikeshare.db",
	"use_cache": true,
	"log_file":  "bikeshare.log",
	"log_level": "info",
	"page_size": models.DefaultPageSize,
	"splash":    true,
}

// Load reads .env (if any) and resolves the configuration.
// A missing config file is not an error; a malformed one is.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return load(viper.New(), "configs", ".")
}

func load(v *viper.Viper, paths ...string) (*Config, error) {
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix("BIKESHARE")
	v.AutomaticEnv()

	v.SetConfigName("bikeshare")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = models.DefaultPageSize
	}
	return &cfg, nil
}
