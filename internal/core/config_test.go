package core

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Run("LoadConfig without file returns defaults", func(t *testing.T) {
		c, err := LoadConfig("")
		require.NoError(t, err)
		assert.Equal(t, "", c.InputProcessor)
		assert.Empty(t, c.InputProcessorParams)
		assert.Equal(t, LogConfig{Level: "info", Format: "json"}, c.Log)
		assert.Equal(t, APIConfig{Host: "localhost", Port: 8080, InputRoot: "."}, c.API)
	})

	t.Run("LoadConfig loads valid YAML file", func(t *testing.T) {
		path := writeConfig(t, "l2gen.yaml", `
input_processor: snap-olci-highroc-l2
input_processor_params:
  xy_gcp_step: 4
log:
  level: debug
api:
  port: 9000
`)
		c, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "snap-olci-highroc-l2", c.InputProcessor)
		assert.Equal(t, 4, c.InputProcessorParams["xy_gcp_step"])
		assert.Equal(t, "debug", c.Log.Level)
		assert.Equal(t, "json", c.Log.Format)
		assert.Equal(t, 9000, c.API.Port)
		assert.Equal(t, "localhost", c.API.Host)
	})

	t.Run("LoadConfig loads valid JSON file", func(t *testing.T) {
		path := writeConfig(t, "l2gen.json", `{"input_processor": "cmems", "log": {"format": "text"}}`)
		c, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "cmems", c.InputProcessor)
		assert.Equal(t, "text", c.Log.Format)
	})

	t.Run("Environment variables override file values", func(t *testing.T) {
		t.Setenv("L2GEN_INPUT_PROCESSOR", "snap-olci-cyanoalert-l2")
		t.Setenv("L2GEN_API_PORT", "9090")
		t.Setenv("L2GEN_API_INPUT_ROOT", "/data/l2")

		path := writeConfig(t, "l2gen.yaml", "input_processor: cmems\n")
		c, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "snap-olci-cyanoalert-l2", c.InputProcessor)
		assert.Equal(t, 9090, c.API.Port)
		assert.Equal(t, "/data/l2", c.API.InputRoot)
	})

	t.Run("LoadConfig returns error for nonexistent file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})

	t.Run("LoadConfig returns error for invalid file", func(t *testing.T) {
		path := writeConfig(t, "invalid.json", "{invalid json")
		_, err := LoadConfig(path)
		assert.Error(t, err)
	})
}

func TestConfigRequest(t *testing.T) {
	c := configMergeDefault(&Config{
		InputProcessor:       "cmems",
		InputProcessorParams: map[string]interface{}{"a": 1},
	})

	req := c.Request("scene.nc")
	assert.Equal(t, Request{
		Processor: "cmems",
		Params:    map[string]interface{}{"a": 1},
		InputPath: "scene.nc",
	}, req)
}

func TestSetupLogging(t *testing.T) {
	defer func() {
		logrus.SetOutput(os.Stderr)
		logrus.SetLevel(logrus.InfoLevel)
		logrus.SetFormatter(&logrus.TextFormatter{})
	}()

	t.Run("JSON format writes structured entries", func(t *testing.T) {
		var buf bytes.Buffer
		setupLogging(LogConfig{Level: "debug", Format: "json"}, &buf)
		assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())

		logrus.WithField("input_processor", "cmems").Debug("Opening input")

		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "Opening input", entry["msg"])
		assert.Equal(t, "cmems", entry["input_processor"])
		assert.Equal(t, "debug", entry["level"])
	})

	t.Run("Text format and unknown levels", func(t *testing.T) {
		var buf bytes.Buffer
		setupLogging(LogConfig{Level: "verbose", Format: "text"}, &buf)
		assert.Equal(t, logrus.InfoLevel, logrus.GetLevel())

		logrus.Debug("hidden")
		logrus.Info("shown")
		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), "msg=shown")
	})
}
