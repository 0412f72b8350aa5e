package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func defaults() Config {
	var c Config
	c.LoadDefaults()
	return c
}

func TestLoadDefaults(t *testing.T) {
	want := Config{
		APIURL:    "http://localhost:3000/api",
		Timeout:   10 * time.Second,
		DBPath:    "hikelog.db",
		Secret:    DefaultSecret,
		LogLevel:  "warn",
		LogFormat: "text",
	}
	if diff := cmp.Diff(want, defaults()); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_NoSourcesGivesDefaults(t *testing.T) {
	cfg, err := Load(nil, map[string]string{})
	require.NoError(t, err)
	assert.Equal(t, defaults(), *cfg)
}

func TestLoad_Precedence(t *testing.T) {
	path := writeTempJSON(t, map[string]any{
		"api_url":       "http://json:1/api",
		"timeout":       "20s",
		"db_path":       "json.db",
		"secret":        "json-secret",
		"log_level":     "warn",
		"log_format":    "text",
		"otlp_endpoint": "json:4318",
	})
	environ := map[string]string{
		"HIKELOG_API_URL":    "http://env:2/api",
		"HIKELOG_TIMEOUT":    "30s",
		"HIKELOG_LOG_LEVEL":  "error",
		"HIKELOG_LOG_FORMAT": "json",
	}
	args := []string{"-c", path, "-a", "http://flag:3/api", "-l", "debug", "extra-arg"}

	cfg, err := Load(args, environ)
	require.NoError(t, err)

	want := Config{
		APIURL:       "http://flag:3/api",
		Timeout:      30 * time.Second,
		DBPath:       "json.db",
		Secret:       "json-secret",
		LogLevel:     "debug",
		LogFormat:    "json",
		OTLPEndpoint: "json:4318",
	}
	if diff := cmp.Diff(want, *cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_TimeoutFlagInSeconds(t *testing.T) {
	cfg, err := Load([]string{"-t", "3"}, map[string]string{})
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, cfg.Timeout)

	_, err = Load([]string{"-t", "0"}, map[string]string{})
	assert.Error(t, err)

	_, err = Load([]string{"-t=abc"}, map[string]string{})
	assert.Error(t, err)
}

func TestLoad_SubSecondTimeoutSurvivesWithoutFlag(t *testing.T) {
	cfg, err := Load(nil, map[string]string{"HIKELOG_TIMEOUT": "1500ms"})
	require.NoError(t, err)
	assert.Equal(t, 1500*time.Millisecond, cfg.Timeout)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load([]string{"-config", filepath.Join(t.TempDir(), "missing.json")}, map[string]string{})
	assert.ErrorContains(t, err, "read config")

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"timeout": true}`), 0o600))
	_, err = Load([]string{"-config", bad}, map[string]string{})
	assert.ErrorContains(t, err, "parse config")

	_, err = Load(nil, map[string]string{"HIKELOG_TIMEOUT": "soon"})
	assert.ErrorContains(t, err, "parse env")
}

func TestParseJSON_NumericNanoseconds(t *testing.T) {
	path := writeTempJSON(t, map[string]any{"timeout": 2_000_000_000})
	cfg := defaults()
	require.NoError(t, parseJSON(&cfg, []string{"-config=" + path}))
	assert.Equal(t, 2*time.Second, cfg.Timeout)
	assert.Equal(t, defaults().APIURL, cfg.APIURL)
}

func TestLoad_LogFormatFlag(t *testing.T) {
	cfg, err := Load([]string{"-f", "json"}, map[string]string{"HIKELOG_LOG_FORMAT": "text"})
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.LogFormat)
}
