// FILE: lixenwraith/asynclog/processor.go
package log

import (
	"strings"
)

// processLogs is the consumer loop running in its own goroutine.
// It exits when the queue is shut down; done is closed on exit.
func (l *Logger) processLogs(done chan struct{}) {
	defer close(done)
	l.state.ProcessorExited.Store(false)      // Mark processor as running
	defer l.state.ProcessorExited.Store(true) // Ensure flag is set on exit

	var batch []Record
	for {
		var ok bool
		batch, ok = l.queue.WaitAndPop(batch[:0])
		if !ok {
			return
		}
		l.processBatch(batch)
		clear(batch)
	}
}

// drainQueue writes whatever is still queued on the calling goroutine.
// Only called while no consumer is running.
func (l *Logger) drainQueue() {
	l.processBatch(l.queue.Pop(nil))
}

func (l *Logger) processBatch(batch []Record) {
	for i := range batch {
		l.processLogRecord(batch[i])
	}
}

// processLogRecord formats and writes one record, counting it as processed or dropped
func (l *Logger) processLogRecord(rec Record) {
	f := l.getFormatter()
	if f == nil {
		l.state.DroppedLogs.Add(1)
		return
	}

	line, ok := l.formatRecord(f, rec)
	if !ok {
		l.state.DroppedLogs.Add(1)
		return
	}
	if !strings.HasSuffix(line, "\n") {
		line += "\n"
	}

	if l.writeLine(line) {
		l.state.TotalLogsProcessed.Add(1)
	} else {
		l.state.DroppedLogs.Add(1)
	}
}

// formatRecord runs the formatter, containing panics from custom implementations
func (l *Logger) formatRecord(f Formatter, rec Record) (line string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			l.internalLog("formatter panicked on record from %s:%d: %v\n", rec.File, rec.Line, r)
			line, ok = "", false
		}
	}()
	return f.Format(l, l.Delimiter(), rec), true
}
