// FILE: lixenwraith/asynclog/config_test.go
package log

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "warn", cfg.Level)
	assert.Empty(t, cfg.File)
	assert.Equal(t, FormatTxt, cfg.Format)
	assert.Equal(t, " ", cfg.Delimiter)
	assert.Equal(t, int64(2048), cfg.MessageBufferSize)
	assert.Zero(t, cfg.RotationSize)
	assert.Zero(t, cfg.HeartbeatIntervalS)
	assert.True(t, cfg.InternalErrorsToStderr)
	require.NoError(t, cfg.Validate())

	// Copies are independent
	cfg.Level = "debug"
	assert.Equal(t, "warn", DefaultConfig().Level)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		errMsg string
	}{
		{"bad level", func(c *Config) { c.Level = "loud" }, "invalid level string"},
		{"level out of range", func(c *Config) { c.Level = "9" }, "level out of range"},
		{"bad format", func(c *Config) { c.Format = "raw" }, "invalid format"},
		{"newline delimiter", func(c *Config) { c.Delimiter = "\n" }, "delimiter cannot contain line breaks"},
		{"empty txt delimiter", func(c *Config) { c.Delimiter = "" }, "delimiter cannot be empty"},
		{"small buffer", func(c *Config) { c.MessageBufferSize = 4 }, "message_buffer_size must be at least"},
		{"negative rotation", func(c *Config) { c.RotationSize = -1 }, "rotation_size cannot be negative"},
		{"negative heartbeat", func(c *Config) { c.HeartbeatIntervalS = -1 }, "heartbeat_interval_s cannot be negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}

	var nilCfg *Config
	assert.ErrorIs(t, nilCfg.Validate(), ErrNilConfig)
}

func TestNewConfigFromDefaults(t *testing.T) {
	cfg, err := NewConfigFromDefaults(map[string]any{
		"level":                     "debug",
		"file":                      "/tmp/app.log",
		"rotation_size":             1024,
		"message_buffer_size":       int64(512),
		"internal_errors_to_stderr": false,
	})
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Level)
	assert.Equal(t, "/tmp/app.log", cfg.File)
	assert.Equal(t, int64(1024), cfg.RotationSize)
	assert.Equal(t, int64(512), cfg.MessageBufferSize)
	assert.False(t, cfg.InternalErrorsToStderr)

	// Numeric level accepted for the string field
	cfg, err = NewConfigFromDefaults(map[string]any{"level": 4})
	require.NoError(t, err)
	assert.Equal(t, "4", cfg.Level)

	_, err = NewConfigFromDefaults(map[string]any{"unknown": 1})
	assert.Error(t, err)

	_, err = NewConfigFromDefaults(map[string]any{"rotation_size": "big"})
	assert.Error(t, err)

	_, err = NewConfigFromDefaults(map[string]any{"format": "xml"})
	assert.Error(t, err)
}

func TestNewConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.toml")
	content := `
[log]
level = "info"
file = "/var/log/app.log"
format = "json"
rotation_size = 65536
heartbeat_interval_s = 30
internal_errors_to_stderr = false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := NewConfigFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, "/var/log/app.log", cfg.File)
	assert.Equal(t, FormatJSON, cfg.Format)
	assert.Equal(t, int64(65536), cfg.RotationSize)
	assert.Equal(t, int64(30), cfg.HeartbeatIntervalS)
	assert.False(t, cfg.InternalErrorsToStderr)
	assert.Equal(t, " ", cfg.Delimiter, "unset keys keep defaults")
}

func TestNewConfigFromMissingFile(t *testing.T) {
	cfg, err := NewConfigFromFile(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestConfigClone(t *testing.T) {
	cfg := DefaultConfig()
	clone := cfg.Clone()
	clone.File = "changed"
	assert.Empty(t, cfg.File)
}
