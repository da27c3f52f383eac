// FILE: lixenwraith/asynclog/logger.go
package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/trickstertwo/xclock"

	"github.com/lixenwraith/asynclog/queue"
)

// Logger is an asynchronous logging pipeline. Producers queue records without
// blocking on I/O; a single background consumer formats, writes and rotates.
type Logger struct {
	currentConfig atomic.Value // stores *Config
	cfgMu         sync.Mutex   // serializes copy-on-write config updates
	state         State
	initMu        sync.Mutex // serializes lifecycle: SetFileName, Start, Stop, ApplyConfig

	queue      *queue.Queue[Record]
	level      atomic.Int64
	msgBufSize atomic.Int64
	delimiter  atomic.Value // string
	formatter  atomic.Value // formatterHolder
	errWriter  atomic.Value // writerHolder
	clock      atomic.Value // clockHolder

	sink fileSink

	// Owned by the lifecycle methods under initMu
	processorDone chan struct{}
	heartbeatStop chan struct{}
	heartbeatDone chan struct{}
}

// atomic.Value requires a consistent concrete type
type formatterHolder struct{ f Formatter }
type writerHolder struct{ w io.Writer }
type clockHolder struct{ c xclock.Clock }

// NewLogger creates a pipeline with default settings and no output file.
// Records logged before SetFileName are queued and written once a file is set.
func NewLogger() *Logger {
	l := &Logger{queue: queue.New[Record]()}

	cfg := DefaultConfig()
	l.currentConfig.Store(cfg)

	lv, _ := ParseLevel(cfg.Level)
	l.level.Store(int64(lv))
	l.msgBufSize.Store(cfg.MessageBufferSize)
	l.delimiter.Store(cfg.Delimiter)
	l.formatter.Store(formatterHolder{f: NewDefaultFormatter()})
	l.errWriter.Store(writerHolder{w: os.Stderr})
	l.clock.Store(clockHolder{})

	l.state.Lifecycle.Store(stateCreated)
	l.state.ProcessorExited.Store(true)
	l.state.LoggerStartTime.Store(time.Now())

	return l
}

// ApplyConfig applies a validated configuration to the logger.
// A changed file path reconfigures the sink the same way SetFileName does;
// an empty path keeps the current file.
func (l *Logger) ApplyConfig(cfg *Config) error {
	if cfg == nil {
		return ErrNilConfig
	}
	if err := cfg.Validate(); err != nil {
		return fmtErrorf("invalid configuration: %w", err)
	}
	cfg = cfg.Clone()

	l.initMu.Lock()
	defer l.initMu.Unlock()

	if cfg.File == "" {
		cfg.File = l.FileName()
	}

	oldCfg := l.getConfig()

	lv, _ := ParseLevel(cfg.Level)
	l.level.Store(int64(lv))
	l.msgBufSize.Store(cfg.MessageBufferSize)
	l.delimiter.Store(cfg.Delimiter)

	l.sink.mu.Lock()
	l.sink.rotateSize = cfg.RotationSize
	l.sink.mu.Unlock()

	if cfg.Format != oldCfg.Format || l.getFormatter() == nil {
		f, err := formatterByName(cfg.Format)
		if err != nil {
			return err
		}
		l.formatter.Store(formatterHolder{f: f})
	}

	l.cfgMu.Lock()
	l.currentConfig.Store(cfg)
	l.cfgMu.Unlock()

	var fileErr error
	lifecycle := l.state.Lifecycle.Load()
	switch {
	case cfg.File != "" && (cfg.File != l.FileName() || lifecycle == stateCreated):
		fileErr = l.setFileName(cfg.File)
	case lifecycle == stateRunning && cfg.HeartbeatIntervalS != oldCfg.HeartbeatIntervalS:
		l.stopHeartbeat()
		l.startHeartbeat()
	}
	return fileErr
}

// GetConfig returns a copy of current configuration, including runtime setter changes
func (l *Logger) GetConfig() *Config {
	return l.getConfig().Clone()
}

// SetFileName stops the consumer, writes every queued record to the old file,
// then opens path truncated and restarts the consumer.
// An open failure is reported and returned; the consumer still runs and records are dropped.
func (l *Logger) SetFileName(path string) error {
	l.initMu.Lock()
	defer l.initMu.Unlock()
	return l.setFileName(path)
}

// setFileName assumes initMu is held
func (l *Logger) setFileName(path string) error {
	if l.processorDone != nil {
		l.haltProcessor()
		l.drainQueue()
	}

	err := l.openSinkFile(path, true)
	l.updateConfig(func(c *Config) { c.File = path })

	l.startProcessor()
	return err
}

// Start restarts a stopped pipeline on its current file. Safe to call multiple times.
// A file closed by Shutdown is reopened for appending.
func (l *Logger) Start() error {
	l.initMu.Lock()
	defer l.initMu.Unlock()

	if l.state.Lifecycle.Load() == stateRunning {
		return nil
	}

	var err error
	if path := l.FileName(); path != "" && !l.sinkOpen() {
		err = l.openSinkFile(path, false)
	}
	l.startProcessor()
	return err
}

// Stop halts the consumer and synchronously writes every record queued before the call.
// Records logged after Stop returns are dropped. Calling Stop again is a no-op.
func (l *Logger) Stop() error {
	l.initMu.Lock()
	defer l.initMu.Unlock()

	if l.state.Lifecycle.Swap(stateStopped) == stateStopped {
		return nil
	}

	l.haltProcessor()
	l.drainQueue()
	return nil
}

// Shutdown stops the pipeline and closes the output file
func (l *Logger) Shutdown() error {
	stopErr := l.Stop()

	l.initMu.Lock()
	defer l.initMu.Unlock()
	return combineErrors(stopErr, l.closeSinkFile())
}

// startProcessor launches the consumer goroutine, initMu must be held
func (l *Logger) startProcessor() {
	l.queue.Reopen()

	done := make(chan struct{})
	l.processorDone = done
	l.state.ProcessorExited.Store(false)
	l.state.Lifecycle.Store(stateRunning)
	go l.processLogs(done)

	l.startHeartbeat()
}

// haltProcessor wakes and joins the consumer, initMu must be held.
// Records still queued are left for drainQueue.
func (l *Logger) haltProcessor() {
	l.stopHeartbeat()

	if l.processorDone == nil {
		return
	}
	l.queue.Shutdown()
	<-l.processorDone
	l.processorDone = nil
}

// SetLevel sets the threshold for subsequent log calls
func (l *Logger) SetLevel(level Level) {
	l.level.Store(int64(level))
	l.updateConfig(func(c *Config) { c.Level = strings.ToLower(level.String()) })
}

// GetLevel returns the current threshold
func (l *Logger) GetLevel() Level {
	return Level(l.level.Load())
}

// SetDelimiter sets the field separator passed to the formatter
func (l *Logger) SetDelimiter(delim string) {
	l.delimiter.Store(delim)
	l.updateConfig(func(c *Config) { c.Delimiter = delim })
}

// Delimiter returns the field separator
func (l *Logger) Delimiter() string {
	return l.delimiter.Load().(string)
}

// SetOutputFormatter swaps the formatting strategy; the next processed record uses it.
// A nil formatter makes the consumer drop records.
func (l *Logger) SetOutputFormatter(f Formatter) {
	l.formatter.Store(formatterHolder{f: f})
}

// SetErrorWriter redirects internal diagnostics, os.Stderr by default
func (l *Logger) SetErrorWriter(w io.Writer) {
	if w == nil {
		w = io.Discard
	}
	l.errWriter.Store(writerHolder{w: w})
}

// SetClock sets the clock used for timestamps and archive names, nil restores the process clock
func (l *Logger) SetClock(c xclock.Clock) {
	l.clock.Store(clockHolder{c: c})
}

func (l *Logger) getFormatter() Formatter {
	return l.formatter.Load().(formatterHolder).f
}

// getConfig returns the current configuration (thread-safe)
func (l *Logger) getConfig() *Config {
	return l.currentConfig.Load().(*Config)
}

// updateConfig applies fn to a copy of the stored configuration
func (l *Logger) updateConfig(fn func(c *Config)) {
	l.cfgMu.Lock()
	defer l.cfgMu.Unlock()
	cfg := l.getConfig().Clone()
	fn(cfg)
	l.currentConfig.Store(cfg)
}

// Now returns the current timestamp from the logger's clock, for callers building records with Logf
func (l *Logger) Now() Timestamp {
	return l.now()
}

// now returns the current timestamp from the configured clock
func (l *Logger) now() Timestamp {
	return NowFrom(l.clock.Load().(clockHolder).c)
}

// wallNow is now as a time.Time
func (l *Logger) wallNow() time.Time {
	if c := l.clock.Load().(clockHolder).c; c != nil {
		return c.Now()
	}
	return xclock.Now()
}

func (l *Logger) sinkOpen() bool {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	return l.sink.file != nil
}

// internalLog writes pipeline diagnostics to the error writer, if enabled
func (l *Logger) internalLog(format string, args ...any) {
	if !l.getConfig().InternalErrorsToStderr {
		return
	}
	if !strings.HasPrefix(format, "log: ") {
		format = "log: " + format
	}
	fmt.Fprintf(l.errWriter.Load().(writerHolder).w, format, args...)
}
