// Package config loads runtime configuration for the hikelog CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJSON) selected via flags: -c or -config.
//  3. Environment variables (see parseEnv).
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   backend base URL, e.g. http://localhost:3000/api
//	-t int      request timeout (seconds)
//	-d string   path of the local SQLite database
//	-l string   log level (debug, info, warn, error)
//
// # Environment
//
//	HIKELOG_API_URL, HIKELOG_TIMEOUT ("10s"), HIKELOG_DB, HIKELOG_SECRET,
//	HIKELOG_LOG_LEVEL, OTEL_EXPORTER_OTLP_ENDPOINT
//
// # JSON schema
//
// The JSON loader uses timex.Duration for the timeout, so it can be either a
// string like "10s" or integer nanoseconds:
//
//	{
//	  "api_url": "https://hikes.example.com/api",
//	  "timeout": "15s",
//	  "db_path": "/var/lib/hikelog/client.db",
//	  "secret": "device secret",
//	  "log_level": "debug",
//	  "otlp_endpoint": "localhost:4318"
//	}
//
// Empty values never override a lower layer.
package config
