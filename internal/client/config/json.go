package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/hikelog/internal/flagx"
	"github.com/dmitrijs2005/hikelog/internal/timex"
)

// JSONConfig is a DTO used exclusively for JSON unmarshalling.
type JSONConfig struct {
	APIURL       string         `json:"api_url"`
	Timeout      timex.Duration `json:"timeout"`
	DBPath       string         `json:"db_path"`
	Secret       string         `json:"secret"`
	LogLevel     string         `json:"log_level"`
	LogFormat    string         `json:"log_format"`
	OTLPEndpoint string         `json:"otlp_endpoint"`
}

// parseJSON overlays cfg with the file named by -c/-config, if any.
func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	var jc JSONConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	overlay(&cfg.APIURL, jc.APIURL)
	if jc.Timeout.Duration > 0 {
		cfg.Timeout = jc.Timeout.Duration
	}
	overlay(&cfg.DBPath, jc.DBPath)
	overlay(&cfg.Secret, jc.Secret)
	overlay(&cfg.LogLevel, jc.LogLevel)
	overlay(&cfg.LogFormat, jc.LogFormat)
	overlay(&cfg.OTLPEndpoint, jc.OTLPEndpoint)
	return nil
}
