package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/ppiankov/nedextract/internal/model"
)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, closer, err := newLogger(model.LogConfig{Level: "warn", Format: "json"}, false, &buf)
	require.NoError(t, err)
	defer func() { _ = closer.Close() }()

	assert.Equal(t, logrus.WarnLevel, logger.GetLevel())
	logger.WithField("file", "a.pdf").Warn("no organization")
	assert.Contains(t, buf.String(), `"file":"a.pdf"`)

	logger, _, err = newLogger(model.LogConfig{Level: "warn"}, true, &buf)
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())

	_, _, err = newLogger(model.LogConfig{Level: "luid"}, false, &buf)
	assert.Error(t, err)
	_, _, err = newLogger(model.LogConfig{Format: "xml"}, false, &buf)
	assert.Error(t, err)
}

func TestNewLogger_File(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "nedextract.log")
	logger, closer, err := newLogger(model.LogConfig{File: path, MaxSizeMB: 1, MaxBackups: 1}, false, &buf)
	require.NoError(t, err)

	logger.Info("started")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "started")
	assert.Contains(t, buf.String(), "started")
}

func TestFlatten(t *testing.T) {
	got := map[string]any{}
	flatten("", map[string]any{
		"format": "xlsx",
		"tagger": map[string]any{"kind": "prose", "llm": map[string]any{"model": "m"}},
	}, func(k string, v any) { got[k] = v })

	assert.Equal(t, map[string]any{
		"format":           "xlsx",
		"tagger.kind":      "prose",
		"tagger.llm.model": "m",
	}, got)
}

func TestWriteDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".nedextract", "config.yaml")
	require.NoError(t, writeDefaultConfig(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var cfg model.Config
	require.NoError(t, yaml.Unmarshal(data, &cfg))
	assert.Equal(t, model.DefaultConfig(), cfg)

	assert.Error(t, writeDefaultConfig(path), "existing file must not be overwritten")
}
