package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		Database  Database
		HTTP      HTTP
		JWT       JWT
		Telemetry Telemetry
	}

	Database struct {
		Host     string
		Port     int
		User     string
		Password string
		Name     string
	}

	HTTP struct {
		Port int
	}

	JWT struct {
		Secret    string
		ExpiresIn time.Duration
	}

	Telemetry struct {
		OTLPEndpoint string
	}
)

// Load reads configuration from environment variables, falling back to
// development defaults.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 3306)
	v.SetDefault("DB_USER", "library")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "library")
	v.SetDefault("HTTP_PORT", 3000)
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_EXPIRES_IN", "1h")
	v.SetDefault("OTLP_ENDPOINT", "otel-collector:4317")

	cfg := &Config{
		Database: Database{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetInt("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			Name:     v.GetString("DB_NAME"),
		},
		HTTP: HTTP{
			Port: v.GetInt("HTTP_PORT"),
		},
		JWT: JWT{
			Secret:    v.GetString("JWT_SECRET"),
			ExpiresIn: v.GetDuration("JWT_EXPIRES_IN"),
		},
		Telemetry: Telemetry{
			OTLPEndpoint: v.GetString("OTLP_ENDPOINT"),
		},
	}

	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("JWT_SECRET must be set")
	}
	if cfg.JWT.ExpiresIn <= 0 {
		return nil, fmt.Errorf("JWT_EXPIRES_IN must be a positive duration")
	}

	return cfg, nil
}

// DSN builds the MySQL connection string. clientFoundRows makes UPDATE
// report matched rows instead of changed rows, so a no-op update on an
// existing row is still distinguishable from a missing row.
func (d Database) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&clientFoundRows=true",
		d.User, d.Password, d.Host, d.Port, d.Name)
}
