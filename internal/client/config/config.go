package config

import (
	"os"
	"time"

	"github.com/dmitrijs2005/hikelog/internal/client/gateway"
)

const (
	DefaultDBPath    = "hikelog.db"
	DefaultSecret    = "hikelog-local-device"
	DefaultLogLevel  = "warn"
	DefaultLogFormat = "text"
)

// Config holds runtime settings for the hikelog CLI.
//
// Secret seeds the key that seals the stored session; OTLPEndpoint enables
// trace export when set. LogFormat is "text" (slog, readable next to the
// REPL) or "json" (zap).
type Config struct {
	APIURL       string
	Timeout      time.Duration
	DBPath       string
	Secret       string
	LogLevel     string
	LogFormat    string
	OTLPEndpoint string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIURL = gateway.DefaultBaseURL
	c.Timeout = gateway.DefaultTimeout
	c.DBPath = DefaultDBPath
	c.Secret = DefaultSecret
	c.LogLevel = DefaultLogLevel
	c.LogFormat = DefaultLogFormat
}

// LoadConfig builds a Config from os.Args and the process environment.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:], nil)
}

// Load applies defaults, then JSON, environment and flags, later sources
// taking precedence. A nil environ means the process environment.
func Load(args []string, environ map[string]string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg, environ); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}

func overlay(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
