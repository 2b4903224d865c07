// Package config loads todoey settings from flags, TODOEY_* environment
// variables, an optional YAML file and defaults, in that priority order.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Keys shared by flags, environment variables and the config file.
const (
	KeyDB       = "db"
	KeyScope    = "scope"
	KeyFormat   = "format"
	KeyLogLevel = "log_level"
)

// EnvPrefix prefixes every environment variable (TODOEY_DB, TODOEY_SCOPE...).
const EnvPrefix = "TODOEY"

// Config is the resolved application configuration.
type Config struct {
	DB       string `mapstructure:"db" validate:"required"`
	Scope    string `mapstructure:"scope" validate:"oneof=id name"`
	Format   string `mapstructure:"format" validate:"oneof=text json"`
	LogLevel string `mapstructure:"log_level" validate:"oneof=debug info warn error"`
}

// New returns a viper instance with defaults and environment binding set.
// Callers bind their flags to it before calling Load.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyDB, "todoey.db")
	v.SetDefault(KeyScope, "id")
	v.SetDefault(KeyFormat, "text")
	v.SetDefault(KeyLogLevel, "warn")
	return v
}

// Load reads configFile when set, unmarshals and validates.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	cfg.Scope = strings.ToLower(strings.TrimSpace(cfg.Scope))
	cfg.Format = strings.ToLower(strings.TrimSpace(cfg.Format))
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}
