// Copyright (C) 2025 Ag Linings
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package config loads service configuration from an optional YAML file
// with environment variable overrides. Environment always wins, so the
// container environment can override a baked-in config file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the full runtime configuration for the modeler service.
type Config struct {
	// Port the HTTP server listens on. MODELER_PORT.
	Port string `yaml:"port"`

	// DataDir is the directory for the BadgerDB history store.
	// MODELER_DATA_DIR.
	DataDir string `yaml:"data_dir"`

	// LexiconPath points to an optional extraction lexicon YAML file.
	// Empty means built-in tables only. MODELER_LEXICON_PATH.
	LexiconPath string `yaml:"lexicon_path"`

	// BackupDir is where local history snapshots land. MODELER_BACKUP_DIR.
	BackupDir string `yaml:"backup_dir"`

	// BackupBucket switches snapshots to GCS when set. BACKUP_BUCKET.
	BackupBucket string `yaml:"backup_bucket"`

	// BackupCredentials is an optional service account key file for GCS.
	// MODELER_BACKUP_CREDENTIALS.
	BackupCredentials string `yaml:"backup_credentials"`

	// OpenAIAPIKey enables the LLM description enhancer when set.
	// OPENAI_API_KEY.
	OpenAIAPIKey string `yaml:"openai_api_key"`

	// OpenAIModel overrides the enhancer model. MODELER_OPENAI_MODEL.
	OpenAIModel string `yaml:"openai_model"`

	// OTLPEndpoint is the trace collector address.
	// OTEL_EXPORTER_OTLP_ENDPOINT.
	OTLPEndpoint string `yaml:"otlp_endpoint"`

	// RateLimitRPS caps requests per second per client IP.
	// MODELER_RATE_LIMIT_RPS.
	RateLimitRPS float64 `yaml:"rate_limit_rps"`

	// RateLimitBurst is the per-client burst allowance.
	// MODELER_RATE_LIMIT_BURST.
	RateLimitBurst int `yaml:"rate_limit_burst"`

	// ShutdownGrace bounds graceful shutdown on SIGTERM.
	ShutdownGrace time.Duration `yaml:"shutdown_grace"`
}

// Default returns the configuration the service runs with when nothing
// is set.
func Default() Config {
	return Config{
		Port:           "8000",
		DataDir:        "/data",
		BackupDir:      "/data/backups",
		RateLimitRPS:   20,
		RateLimitBurst: 40,
		ShutdownGrace:  10 * time.Second,
	}
}

// Load builds the configuration: defaults, then the YAML file at path
// (skipped if path is empty), then environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	overrideString(&c.Port, "MODELER_PORT")
	overrideString(&c.DataDir, "MODELER_DATA_DIR")
	overrideString(&c.LexiconPath, "MODELER_LEXICON_PATH")
	overrideString(&c.BackupDir, "MODELER_BACKUP_DIR")
	overrideString(&c.BackupBucket, "BACKUP_BUCKET")
	overrideString(&c.BackupCredentials, "MODELER_BACKUP_CREDENTIALS")
	overrideString(&c.OpenAIAPIKey, "OPENAI_API_KEY")
	overrideString(&c.OpenAIModel, "MODELER_OPENAI_MODEL")
	overrideString(&c.OTLPEndpoint, "OTEL_EXPORTER_OTLP_ENDPOINT")

	if err := overrideFloat(&c.RateLimitRPS, "MODELER_RATE_LIMIT_RPS"); err != nil {
		return err
	}
	if err := overrideInt(&c.RateLimitBurst, "MODELER_RATE_LIMIT_BURST"); err != nil {
		return err
	}
	return nil
}

func (c *Config) validate() error {
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("port %q is not a number", c.Port)
	}
	if c.DataDir == "" {
		return fmt.Errorf("data_dir must not be empty")
	}
	if c.RateLimitRPS <= 0 {
		return fmt.Errorf("rate_limit_rps must be positive, got %v", c.RateLimitRPS)
	}
	if c.RateLimitBurst < 1 {
		return fmt.Errorf("rate_limit_burst must be at least 1, got %d", c.RateLimitBurst)
	}
	return nil
}

func overrideString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func overrideFloat(dst *float64, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("%s=%q is not a number: %w", key, v, err)
	}
	*dst = f
	return nil
}

func overrideInt(dst *int, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s=%q is not an integer: %w", key, v, err)
	}
	*dst = n
	return nil
}
