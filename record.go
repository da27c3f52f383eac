// FILE: lixenwraith/asynclog/record.go
package log

import (
	"fmt"
	"unicode/utf8"
)

// Record is one immutable log entry. The message is rendered when the record is created.
type Record struct {
	File      string
	Line      int
	Component string
	Level     Level
	Timestamp Timestamp
	Message   string
}

// Logf renders the message, builds a record and queues it for the background consumer.
// It returns -1 when level is below the threshold, otherwise the number of message bytes kept
// after truncation to the render buffer. It never performs I/O.
func (l *Logger) Logf(level Level, file string, line int, ts Timestamp, component string, format string, args ...any) int {
	if level < l.GetLevel() {
		l.state.FilteredLogs.Add(1)
		return -1
	}

	msg := truncateMessage(fmt.Sprintf(format, args...), l.messageLimit())
	l.enqueue(Record{
		File:      file,
		Line:      line,
		Component: component,
		Level:     level,
		Timestamp: ts,
		Message:   msg,
	})
	return len(msg)
}

// Logv is Logf for pre-split values, rendered space separated.
// Composite values are dumped in a compact single-line form.
func (l *Logger) Logv(level Level, component string, args ...any) int {
	if level < l.GetLevel() {
		l.state.FilteredLogs.Add(1)
		return -1
	}

	file, line := callerLocation(1)
	msg := truncateMessage(renderValues(args), l.messageLimit())
	l.enqueue(Record{
		File:      file,
		Line:      line,
		Component: component,
		Level:     level,
		Timestamp: l.now(),
		Message:   msg,
	})
	return len(msg)
}

// enqueue hands a record to the consumer. A stopped pipeline drops it.
func (l *Logger) enqueue(rec Record) {
	if l.state.Lifecycle.Load() == stateStopped {
		l.state.DroppedLogs.Add(1)
		return
	}
	l.queue.Push(rec)
}

// messageLimit is the longest message kept, one byte short of the render buffer
func (l *Logger) messageLimit() int {
	return int(l.msgBufSize.Load()) - 1
}

// truncateMessage cuts msg to at most limit bytes without splitting a UTF-8 sequence
func truncateMessage(msg string, limit int) string {
	if limit < 0 {
		limit = 0
	}
	if len(msg) <= limit {
		return msg
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(msg[cut]) {
		cut--
	}
	return msg[:cut]
}
