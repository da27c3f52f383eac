// FILE: lixenwraith/asynclog/compat/builder.go
package compat

import (
	"errors"

	log "github.com/lixenwraith/asynclog"
)

// ErrNilLogger is returned when WithLogger receives nil
var ErrNilLogger = errors.New("compat: provided logger cannot be nil")

// Builder provides a flexible way to create configured logger adapters for gnet and fasthttp.
// It can use an existing *log.Logger instance or create a new one from a *log.Config.
type Builder struct {
	logger *log.Logger
	logCfg *log.Config
	err    error
}

// NewBuilder creates a new adapter builder
func NewBuilder() *Builder {
	return &Builder{}
}

// WithLogger specifies an existing logger to use for the adapters.
// If this is set WithConfig is ignored.
func (b *Builder) WithLogger(l *log.Logger) *Builder {
	if l == nil {
		b.err = ErrNilLogger
		return b
	}
	b.logger = l
	return b
}

// WithConfig provides a configuration for a new logger instance,
// used only if an existing logger is not provided via WithLogger
func (b *Builder) WithConfig(cfg *log.Config) *Builder {
	b.logCfg = cfg
	return b
}

// getLogger resolves the logger to be used, creating one if necessary
func (b *Builder) getLogger() (*log.Logger, error) {
	if b.err != nil {
		return nil, b.err
	}

	if b.logger != nil {
		return b.logger, nil
	}

	l := log.NewLogger()
	cfg := b.logCfg
	if cfg == nil {
		cfg = log.DefaultConfig()
	}

	// A config with a file starts the consumer
	if err := l.ApplyConfig(cfg); err != nil {
		_ = l.Shutdown()
		return nil, err
	}

	// Cache the newly created logger for subsequent builds with this builder
	b.logger = l
	return l, nil
}

// BuildGnet creates a gnet adapter
func (b *Builder) BuildGnet(opts ...GnetOption) (*GnetAdapter, error) {
	l, err := b.getLogger()
	if err != nil {
		return nil, err
	}
	return NewGnetAdapter(l, opts...), nil
}

// BuildFastHTTP creates a fasthttp adapter
func (b *Builder) BuildFastHTTP(opts ...FastHTTPOption) (*FastHTTPAdapter, error) {
	l, err := b.getLogger()
	if err != nil {
		return nil, err
	}
	return NewFastHTTPAdapter(l, opts...), nil
}

// GetLogger returns the underlying *log.Logger instance, creating it if needed
func (b *Builder) GetLogger() (*log.Logger, error) {
	return b.getLogger()
}

// --- Example Usage ---
//
//	appLogger, err := log.NewBuilder().File("/var/log/app.log").LevelString("debug").Build()
//	if err != nil { /* handle error */ }
//
//	builder := compat.NewBuilder().WithLogger(appLogger)
//	gnetLogger, _ := builder.BuildGnet()
//	fasthttpLogger, _ := builder.BuildFastHTTP()
//
//	go gnet.Run(events, "udp://:9000", gnet.WithLogger(gnetLogger))
//
//	server := &fasthttp.Server{Handler: handler, Logger: fasthttpLogger}
//	go server.ListenAndServe(":8080")
