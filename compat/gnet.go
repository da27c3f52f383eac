// FILE: lixenwraith/asynclog/compat/gnet.go
package compat

import (
	"os"

	log "github.com/lixenwraith/asynclog"
)

// GnetComponent is the component name of records logged by gnet
const GnetComponent = "gnet"

// GnetAdapter wraps a log.Logger to implement the gnet logging.Logger interface
type GnetAdapter struct {
	logger       *log.Logger
	component    string
	fatalHandler func(msg string) // Customizable fatal behavior
}

// NewGnetAdapter creates a new gnet-compatible logger adapter
func NewGnetAdapter(logger *log.Logger, opts ...GnetOption) *GnetAdapter {
	adapter := &GnetAdapter{
		logger:    logger,
		component: GnetComponent,
		fatalHandler: func(msg string) {
			os.Exit(1) // Default behavior matches gnet expectations
		},
	}

	for _, opt := range opts {
		opt(adapter)
	}

	return adapter
}

// GnetOption allows customizing adapter behavior
type GnetOption func(*GnetAdapter)

// WithFatalHandler sets a custom fatal handler
func WithFatalHandler(handler func(string)) GnetOption {
	return func(a *GnetAdapter) {
		a.fatalHandler = handler
	}
}

// WithGnetComponent overrides the component name written with each record
func WithGnetComponent(component string) GnetOption {
	return func(a *GnetAdapter) {
		a.component = component
	}
}

// Debugf logs at debug level with printf-style formatting
func (a *GnetAdapter) Debugf(format string, args ...any) {
	logAt(a.logger, log.LevelDebug, a.component, format, args...)
}

// Infof logs at info level with printf-style formatting
func (a *GnetAdapter) Infof(format string, args ...any) {
	logAt(a.logger, log.LevelInfo, a.component, format, args...)
}

// Warnf logs at warn level with printf-style formatting
func (a *GnetAdapter) Warnf(format string, args ...any) {
	logAt(a.logger, log.LevelWarn, a.component, format, args...)
}

// Errorf logs at error level with printf-style formatting
func (a *GnetAdapter) Errorf(format string, args ...any) {
	logAt(a.logger, log.LevelError, a.component, format, args...)
}

// Fatalf logs at fatal level, stops the logger so the record reaches the file,
// then triggers the fatal handler
func (a *GnetAdapter) Fatalf(format string, args ...any) {
	logAt(a.logger, log.LevelFatal, a.component, format, args...)

	_ = a.logger.Stop()

	if a.fatalHandler != nil {
		a.fatalHandler(fmtMessage(format, args))
	}
}
