// FILE: lixenwraith/asynclog/integration_test.go
package log

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConcurrentRotationAndReconfiguration drives producers while rotation and file switches happen,
// then checks that every record landed in exactly one file
func TestConcurrentRotationAndReconfiguration(t *testing.T) {
	logger, firstPath, _ := createTestLogger(t)
	logger.SetClock(nil)
	logger.SetRotationSize(4096)
	secondPath := filepath.Join(filepath.Dir(firstPath), "second.log")

	const producers = 4
	const perProducer = 1000

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				logger.Infof("it", "id=%d-%d", p, i)
			}
		}(p)
	}

	require.NoError(t, logger.SetFileName(secondPath))
	wg.Wait()
	require.NoError(t, logger.Shutdown())

	entries, err := os.ReadDir(filepath.Dir(firstPath))
	require.NoError(t, err)

	seen := make(map[string]int)
	for _, e := range entries {
		for _, line := range readLines(t, filepath.Join(filepath.Dir(firstPath), e.Name())) {
			idx := strings.LastIndex(line, "id=")
			require.GreaterOrEqual(t, idx, 0, line)
			seen[line[idx:]]++
		}
	}

	assert.Len(t, seen, producers*perProducer)
	for p := 0; p < producers; p++ {
		for i := 0; i < perProducer; i++ {
			assert.Equal(t, 1, seen[fmt.Sprintf("id=%d-%d", p, i)])
		}
	}
	assert.Greater(t, logger.Stats().Rotations, uint64(0))
	assert.Zero(t, logger.Stats().Dropped)
}
