// FILE: lixenwraith/asynclog/builder.go
package log

import (
	"io"

	"github.com/trickstertwo/xclock"
)

// Builder provides a fluent API for building logger configurations.
// It wraps a Config instance and provides chainable methods for setting values.
type Builder struct {
	cfg       *Config
	formatter Formatter
	errWriter io.Writer
	clock     xclock.Clock
	err       error // Accumulate errors for deferred handling
}

// NewBuilder creates a new configuration builder with default values.
func NewBuilder() *Builder {
	return &Builder{
		cfg: DefaultConfig(),
	}
}

// Build creates a new Logger instance with the specified configuration.
// When a file is set the consumer is running on return.
func (b *Builder) Build() (*Logger, error) {
	if b.err != nil {
		return nil, b.err
	}

	logger := NewLogger()

	// Writer and clock first so file open failures and early timestamps use them
	if b.errWriter != nil {
		logger.SetErrorWriter(b.errWriter)
	}
	if b.clock != nil {
		logger.SetClock(b.clock)
	}

	if err := logger.ApplyConfig(b.cfg); err != nil {
		_ = logger.Shutdown()
		return nil, err
	}

	if b.formatter != nil {
		logger.SetOutputFormatter(b.formatter)
	}

	return logger, nil
}

// Level sets the threshold.
func (b *Builder) Level(level Level) *Builder {
	b.cfg.Level = level.String()
	return b
}

// LevelString sets the threshold from a name or number.
func (b *Builder) LevelString(level string) *Builder {
	if b.err != nil {
		return b
	}
	if _, err := ParseLevel(level); err != nil {
		b.err = err
		return b
	}
	b.cfg.Level = level
	return b
}

// File sets the output path.
func (b *Builder) File(path string) *Builder {
	b.cfg.File = path
	return b
}

// RotationSize sets the rotation threshold in bytes.
func (b *Builder) RotationSize(size int64) *Builder {
	b.cfg.RotationSize = size
	return b
}

// Delimiter sets the field separator.
func (b *Builder) Delimiter(delim string) *Builder {
	b.cfg.Delimiter = delim
	return b
}

// Format selects a built-in formatter by name.
func (b *Builder) Format(format string) *Builder {
	b.cfg.Format = format
	return b
}

// Formatter installs a custom formatter, taking precedence over Format.
func (b *Builder) Formatter(f Formatter) *Builder {
	b.formatter = f
	return b
}

// MessageBufferSize sets the render buffer size.
func (b *Builder) MessageBufferSize(size int64) *Builder {
	b.cfg.MessageBufferSize = size
	return b
}

// HeartbeatIntervalS sets the heartbeat interval in seconds.
func (b *Builder) HeartbeatIntervalS(interval int64) *Builder {
	b.cfg.HeartbeatIntervalS = interval
	return b
}

// InternalErrorsToStderr toggles reporting of pipeline failures.
func (b *Builder) InternalErrorsToStderr(enable bool) *Builder {
	b.cfg.InternalErrorsToStderr = enable
	return b
}

// ErrorWriter redirects pipeline failure reports.
func (b *Builder) ErrorWriter(w io.Writer) *Builder {
	b.errWriter = w
	return b
}

// Clock sets the time source for timestamps and archive names.
func (b *Builder) Clock(c xclock.Clock) *Builder {
	b.clock = c
	return b
}

// Example usage:
// logger, err := log.NewBuilder().
//
//	File("/var/log/app.log").
//	LevelString("debug").
//	RotationSize(10 << 20).
//	Build()
//
// if err == nil {
//
//	 defer logger.Shutdown()
//	 logger.Infof("main", "logger initialized")
//
// }
