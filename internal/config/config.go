package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	"Billios/internal/calc/fieldtest"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is stripped from environment variables, BILLIOS_TOKEN_KEY -> token_key.
const EnvPrefix = "BILLIOS_"

const (
	DefaultAddr     = ":8443"
	DefaultLogLevel = "info"
)

type Config struct {
	Addr            string  `koanf:"addr"`
	DatabaseURL     string  `koanf:"database_url"`
	TokenKey        string  `koanf:"token_key"`
	TLSCert         string  `koanf:"tls_cert"`
	TLSKey          string  `koanf:"tls_key"`
	LogLevel        string  `koanf:"log_level"`
	SandDensity     float64 `koanf:"sand_density"`
	SandInCone      float64 `koanf:"sand_in_cone"`
	SpecificGravity float64 `koanf:"specific_gravity"`
}

// Load reads defaults, then the optional .env files, then the environment.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}

	k := koanf.New(".")
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"addr":             DefaultAddr,
		"log_level":        DefaultLogLevel,
		"sand_density":     fieldtest.SandDensity,
		"sand_in_cone":     fieldtest.SandInCone,
		"specific_gravity": fieldtest.SpecificGravity,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// Validate checks the settings the server cannot start without.
func (c *Config) Validate() error {
	if c.TokenKey == "" {
		return errors.New(EnvPrefix + "TOKEN_KEY is not set")
	}
	if (c.TLSCert == "") != (c.TLSKey == "") {
		return errors.New("tls_cert and tls_key must be set together")
	}
	if c.SandDensity <= 0 || c.SandInCone <= 0 || c.SpecificGravity <= 0 {
		return errors.New("calibration constants must be positive")
	}
	return nil
}

func (c *Config) Calibration() fieldtest.Calibration {
	return fieldtest.Calibration{
		SandDensity:     c.SandDensity,
		SandInCone:      c.SandInCone,
		SpecificGravity: c.SpecificGravity,
	}
}

func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}
