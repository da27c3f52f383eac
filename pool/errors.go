// FILE: lixenwraith/asynclog/pool/errors.go
package pool

import "errors"

// Sentinel errors for pool operations
var (
	// ErrPoolStopped indicates the pool has been stopped and accepts no more work
	ErrPoolStopped = errors.New("pool: stopped")

	// ErrPoolRunning indicates Start was called on a running pool
	ErrPoolRunning = errors.New("pool: already running")

	// ErrNilItem indicates a nil work item was submitted
	ErrNilItem = errors.New("pool: item cannot be nil")
)
