// FILE: lixenwraith/asynclog/state.go
package log

import (
	"sync/atomic"
	"time"
)

// State encapsulates the runtime state of the pipeline
type State struct {
	Lifecycle       atomic.Int32 // stateCreated, stateRunning or stateStopped
	ProcessorExited atomic.Bool  // Tracks if the consumer goroutine is running or has exited

	TotalLogsProcessed atomic.Uint64 // Records written to the sink
	DroppedLogs        atomic.Uint64 // Records consumed without a writer, or logged after Stop
	FilteredLogs       atomic.Uint64 // Calls below the threshold
	TotalRotations     atomic.Uint64 // Successful archive renames
	RotationFailures   atomic.Uint64 // Renames that failed

	HeartbeatSequence atomic.Uint64
	LoggerStartTime   atomic.Value // time.Time
}

// Stats is a point-in-time snapshot of pipeline counters
type Stats struct {
	Processed        uint64        `json:"processed"`
	Dropped          uint64        `json:"dropped"`
	Filtered         uint64        `json:"filtered"`
	Rotations        uint64        `json:"rotations"`
	RotationFailures uint64        `json:"rotation_failures"`
	Queued           int           `json:"queued"`
	Running          bool          `json:"running"`
	Uptime           time.Duration `json:"uptime_ns"`
}

// Stats returns current counters
func (l *Logger) Stats() Stats {
	s := Stats{
		Processed:        l.state.TotalLogsProcessed.Load(),
		Dropped:          l.state.DroppedLogs.Load(),
		Filtered:         l.state.FilteredLogs.Load(),
		Rotations:        l.state.TotalRotations.Load(),
		RotationFailures: l.state.RotationFailures.Load(),
		Queued:           l.queue.Len(),
		Running:          l.state.Lifecycle.Load() == stateRunning,
	}
	if start, ok := l.state.LoggerStartTime.Load().(time.Time); ok && !start.IsZero() {
		s.Uptime = time.Since(start)
	}
	return s
}
