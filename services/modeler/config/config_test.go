// Copyright (C) 2025 Ag Linings
// Tests for configuration loading.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, "/data", cfg.DataDir)
	assert.Equal(t, 20.0, cfg.RateLimitRPS)
	assert.Equal(t, 40, cfg.RateLimitBurst)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfigFile(t, `
port: "9100"
data_dir: /var/lib/uml
rate_limit_rps: 5
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9100", cfg.Port)
	assert.Equal(t, "/var/lib/uml", cfg.DataDir)
	assert.Equal(t, 5.0, cfg.RateLimitRPS)
	// Untouched fields keep their defaults.
	assert.Equal(t, 40, cfg.RateLimitBurst)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, "port: \"9100\"\n")
	t.Setenv("MODELER_PORT", "9200")
	t.Setenv("BACKUP_BUCKET", "uml-backups")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9200", cfg.Port)
	assert.Equal(t, "uml-backups", cfg.BackupBucket)
}

func TestLoad_BadNumericEnv(t *testing.T) {
	t.Setenv("MODELER_RATE_LIMIT_RPS", "fast")
	_, err := Load("")
	assert.ErrorContains(t, err, "MODELER_RATE_LIMIT_RPS")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Setenv("MODELER_PORT", "not-a-port")
	_, err := Load("")
	assert.ErrorContains(t, err, "port")

	t.Setenv("MODELER_PORT", "8000")
	t.Setenv("MODELER_RATE_LIMIT_BURST", "0")
	_, err = Load("")
	assert.ErrorContains(t, err, "rate_limit_burst")
}
