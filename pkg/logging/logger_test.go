// Copyright (C) 2025 Ag Linings
// Tests for the logging package.

package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLevel("debug"))
	assert.Equal(t, LevelWarn, ParseLevel("WARN"))
	assert.Equal(t, LevelWarn, ParseLevel("warning"))
	assert.Equal(t, LevelError, ParseLevel("error"))
	assert.Equal(t, LevelInfo, ParseLevel("info"))
	assert.Equal(t, LevelInfo, ParseLevel("bogus"))
}

func TestNew_StderrOnly(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Config{Level: LevelInfo, Stderr: &buf})
	require.NoError(t, err)
	defer logger.Close()

	logger.Info("diagram saved", "id", "abc")
	logger.Debug("should be filtered")

	out := buf.String()
	assert.Contains(t, out, "diagram saved")
	assert.Contains(t, out, "id=abc")
	assert.NotContains(t, out, "should be filtered")
}

func TestNew_FileLogging(t *testing.T) {
	dir := t.TempDir()
	var buf bytes.Buffer
	logger, err := New(Config{Level: LevelDebug, LogDir: dir, Service: "umlctl", Stderr: &buf})
	require.NoError(t, err)

	logger.Info("hello", "n", 1)
	require.NoError(t, logger.Close())

	name := filepath.Join(dir, "umlctl_"+time.Now().Format("2006-01-02")+".log")
	data, err := os.ReadFile(name)
	require.NoError(t, err)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &entry))
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, float64(1), entry["n"])

	// stderr got the same record in text form
	assert.Contains(t, buf.String(), "hello")
}

func TestNew_BadLogDirStillUsable(t *testing.T) {
	var buf bytes.Buffer
	file := filepath.Join(t.TempDir(), "occupied")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	// LogDir points at a regular file, so MkdirAll fails.
	logger, err := New(Config{LogDir: file, Stderr: &buf})
	assert.Error(t, err)
	require.NotNil(t, logger)

	logger.Info("still works")
	assert.Contains(t, buf.String(), "still works")
}

func TestClose_Idempotent(t *testing.T) {
	logger, err := New(Config{LogDir: t.TempDir(), Service: "t", Stderr: &bytes.Buffer{}})
	require.NoError(t, err)

	require.NoError(t, logger.Close())
	require.NoError(t, logger.Close())
}
