// FILE: lixenwraith/asynclog/heartbeat.go
package log

import (
	"fmt"
	"time"
)

// startHeartbeat launches the heartbeat ticker if an interval is configured, initMu must be held
func (l *Logger) startHeartbeat() {
	intervalS := l.getConfig().HeartbeatIntervalS
	if intervalS <= 0 || l.heartbeatStop != nil {
		return
	}
	interval := time.Duration(intervalS) * time.Second
	if interval < minHeartbeatInterval {
		interval = minHeartbeatInterval
	}

	stop := make(chan struct{})
	done := make(chan struct{})
	l.heartbeatStop, l.heartbeatDone = stop, done
	go l.runHeartbeat(interval, stop, done)
}

// stopHeartbeat stops and joins the ticker goroutine, initMu must be held
func (l *Logger) stopHeartbeat() {
	if l.heartbeatStop == nil {
		return
	}
	close(l.heartbeatStop)
	<-l.heartbeatDone
	l.heartbeatStop, l.heartbeatDone = nil, nil
}

func (l *Logger) runHeartbeat(interval time.Duration, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			l.logProcHeartbeat()
		}
	}
}

// logProcHeartbeat queues a pipeline statistics record, bypassing the level threshold
func (l *Logger) logProcHeartbeat() {
	sequence := l.state.HeartbeatSequence.Add(1)
	stats := l.Stats()

	procArgs := []any{
		"type", "proc",
		"sequence", sequence,
		"uptime_hours", fmt.Sprintf("%.2f", stats.Uptime.Hours()),
		"processed_logs", stats.Processed,
		"dropped_logs", stats.Dropped,
		"filtered_logs", stats.Filtered,
		"rotations", stats.Rotations,
		"queued", stats.Queued,
	}

	file, line := callerLocation(0)
	l.enqueue(Record{
		File:      file,
		Line:      line,
		Component: heartbeatComponent,
		Level:     LevelInfo,
		Timestamp: l.now(),
		Message:   truncateMessage(renderValues(procArgs), l.messageLimit()),
	})
}
