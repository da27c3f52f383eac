// FILE: lixenwraith/asynclog/heartbeat_test.go
package log

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeartbeatBypassesThreshold(t *testing.T) {
	logger, logPath, _ := createTestLogger(t)
	logger.SetLevel(LevelFatal)

	logger.Infof("main", "filtered")
	logger.logProcHeartbeat()
	require.NoError(t, logger.Stop())

	lines := readLines(t, logPath)
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], " INFO heartbeat ")
	assert.Contains(t, lines[0], "type proc sequence 1 ")
	assert.Contains(t, lines[0], "filtered_logs 1 ")
	assert.Contains(t, lines[0], "queued 0")
}

func TestHeartbeatTicker(t *testing.T) {
	logger, logPath, _ := createTestLogger(t)
	require.NoError(t, logger.ApplyOverride("heartbeat_interval_s=1"))
	require.NotNil(t, logger.heartbeatStop)

	require.Eventually(t, func() bool {
		data, err := os.ReadFile(logPath)
		return err == nil && strings.Contains(string(data), " heartbeat ")
	}, 5*time.Second, 50*time.Millisecond)

	require.NoError(t, logger.Stop())
	assert.Nil(t, logger.heartbeatStop, "heartbeat stops with the consumer")
	assert.GreaterOrEqual(t, logger.state.HeartbeatSequence.Load(), uint64(1))
}

func TestHeartbeatDisabledByDefault(t *testing.T) {
	logger, _, _ := createTestLogger(t)
	assert.Nil(t, logger.heartbeatStop)

	require.NoError(t, logger.ApplyOverride("heartbeat_interval_s=5"))
	assert.NotNil(t, logger.heartbeatStop)

	require.NoError(t, logger.ApplyOverride("heartbeat_interval_s=0"))
	assert.Nil(t, logger.heartbeatStop)
}
