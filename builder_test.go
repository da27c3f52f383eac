// FILE: lixenwraith/asynclog/builder_test.go
package log

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trickstertwo/xclock"
)

func TestBuilder(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "built.log")
	var errBuf bytes.Buffer

	logger, err := NewBuilder().
		Level(LevelDebug).
		File(logPath).
		RotationSize(1 << 20).
		Delimiter("|").
		Format("json").
		MessageBufferSize(256).
		HeartbeatIntervalS(0).
		InternalErrorsToStderr(false).
		ErrorWriter(&errBuf).
		Clock(xclock.NewFrozen(testTime)).
		Build()
	require.NoError(t, err)
	defer logger.Shutdown()

	cfg := logger.GetConfig()
	assert.Equal(t, LevelDebug, logger.GetLevel())
	assert.Equal(t, logPath, logger.FileName())
	assert.Equal(t, int64(1<<20), cfg.RotationSize)
	assert.Equal(t, "|", logger.Delimiter())
	assert.Equal(t, FormatJSON, cfg.Format)
	assert.IsType(t, &JSONFormatter{}, logger.getFormatter())
	assert.Equal(t, 255, logger.messageLimit())
	assert.False(t, cfg.InternalErrorsToStderr)
	assert.Equal(t, TimestampFromTime(testTime), logger.Now())
	assert.True(t, logger.Stats().Running)
}

func TestBuilderCustomFormatter(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "custom.log")
	f := FormatterFunc(func(_ Context, _ string, rec Record) string { return "custom " + rec.Message })

	logger, err := NewBuilder().File(logPath).Format("json").Formatter(f).Build()
	require.NoError(t, err)

	logger.Errorf("main", "hi")
	require.NoError(t, logger.Shutdown())
	assert.Equal(t, []string{"custom hi"}, readLines(t, logPath))
}

func TestBuilderErrors(t *testing.T) {
	_, err := NewBuilder().LevelString("loud").Build()
	assert.Error(t, err)

	_, err = NewBuilder().Format("yaml").Build()
	assert.Error(t, err)

	_, err = NewBuilder().MessageBufferSize(1).Build()
	assert.Error(t, err)
}

func TestBuilderWithoutFile(t *testing.T) {
	logger, err := NewBuilder().LevelString("info").Build()
	require.NoError(t, err)

	logger.Infof("main", "queued")
	assert.Equal(t, 1, logger.Stats().Queued)
	assert.False(t, logger.Stats().Running)
	require.NoError(t, logger.Shutdown())
}
