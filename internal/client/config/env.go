package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type envConfig struct {
	APIURL       string        `env:"HIKELOG_API_URL"`
	Timeout      time.Duration `env:"HIKELOG_TIMEOUT"`
	DBPath       string        `env:"HIKELOG_DB"`
	Secret       string        `env:"HIKELOG_SECRET"`
	LogLevel     string        `env:"HIKELOG_LOG_LEVEL"`
	LogFormat    string        `env:"HIKELOG_LOG_FORMAT"`
	OTLPEndpoint string        `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

// parseEnv overlays cfg with the HIKELOG_* variables.
func parseEnv(cfg *Config, environ map[string]string) error {
	var ec envConfig
	if err := env.ParseWithOptions(&ec, env.Options{Environment: environ}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	overlay(&cfg.APIURL, ec.APIURL)
	if ec.Timeout > 0 {
		cfg.Timeout = ec.Timeout
	}
	overlay(&cfg.DBPath, ec.DBPath)
	overlay(&cfg.Secret, ec.Secret)
	overlay(&cfg.LogLevel, ec.LogLevel)
	overlay(&cfg.LogFormat, ec.LogFormat)
	overlay(&cfg.OTLPEndpoint, ec.OTLPEndpoint)
	return nil
}
