// FILE: lixenwraith/asynclog/cmd/rot13d/main.go

// Command rot13d is a UDP echo service that answers every datagram with its rot13 form.
// Datagram auditing runs on a worker pool and a small HTTP endpoint reports pipeline counters.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/panjf2000/gnet/v2"
	"github.com/valyala/fasthttp"

	log "github.com/lixenwraith/asynclog"
	"github.com/lixenwraith/asynclog/compat"
	"github.com/lixenwraith/asynclog/pool"
)

const component = "rot13d"

// Largest datagram echoed back, longer payloads are cut
const maxDatagram = 16384

type rot13Server struct {
	gnet.BuiltinEventEngine

	eng    gnet.Engine
	booted chan struct{} // closed once eng is set
	addr   string
	logger *log.Logger
	pool   *pool.Pool

	datagrams atomic.Uint64
	bytesIn   atomic.Uint64
	rejected  atomic.Uint64
}

func (s *rot13Server) OnBoot(eng gnet.Engine) gnet.Action {
	s.eng = eng
	close(s.booted)
	s.logger.Infof(component, "listening on %s", s.addr)
	return gnet.None
}

func (s *rot13Server) OnTraffic(c gnet.Conn) gnet.Action {
	buf, err := c.Next(-1)
	if err != nil {
		s.logger.Errorf(component, "read from %s failed: %v", c.RemoteAddr(), err)
		return gnet.None
	}
	if len(buf) > maxDatagram {
		buf = buf[:maxDatagram]
	}

	out := rot13(make([]byte, 0, len(buf)), buf)
	if _, err := c.Write(out); err != nil {
		s.logger.Warnf(component, "reply to %s failed: %v", c.RemoteAddr(), err)
	}

	// buf is only valid during this callback; the audit item keeps its own values
	remote := c.RemoteAddr().String()
	size := len(buf)
	if err := s.pool.AddFunc(func() { s.audit(remote, size) }); err != nil {
		s.rejected.Add(1)
	}
	return gnet.None
}

func (s *rot13Server) OnShutdown(_ gnet.Engine) {
	s.logger.Infof(component, "engine stopped after %d datagrams", s.datagrams.Load())
}

// audit runs on the pool and records one served datagram
func (s *rot13Server) audit(remote string, size int) {
	n := s.datagrams.Add(1)
	s.bytesIn.Add(uint64(size))
	s.logger.Debugf(component, "datagram seq=%d from=%s bytes=%d", n, remote, size)
}

// statsReport is the /stats response body
type statsReport struct {
	Datagrams uint64     `json:"datagrams"`
	BytesIn   uint64     `json:"bytes_in"`
	Rejected  uint64     `json:"rejected"`
	Logger    log.Stats  `json:"logger"`
	Pool      pool.Stats `json:"pool"`
}

func (s *rot13Server) handleHTTP(ctx *fasthttp.RequestCtx) {
	switch string(ctx.Path()) {
	case "/stats":
		report := statsReport{
			Datagrams: s.datagrams.Load(),
			BytesIn:   s.bytesIn.Load(),
			Rejected:  s.rejected.Load(),
			Logger:    s.logger.Stats(),
			Pool:      s.pool.Stats(),
		}
		ctx.SetContentType("application/json")
		if err := json.NewEncoder(ctx).Encode(report); err != nil {
			ctx.Error(err.Error(), fasthttp.StatusInternalServerError)
		}
	default:
		ctx.Error("not found", fasthttp.StatusNotFound)
	}
}

func main() {
	var (
		configPath = flag.String("config", "", "TOML file with a [log] table")
		logFile    = flag.String("log", "rot13d.log", "log file path, overrides the config file")
		udpAddr    = flag.String("udp", "udp://:40713", "UDP listen address")
		httpAddr   = flag.String("http", ":40714", "stats HTTP listen address")
		workers    = flag.Int("workers", 4, "audit pool workers")
	)
	flag.Parse()

	if err := run(*configPath, *logFile, *udpAddr, *httpAddr, *workers); err != nil {
		fmt.Fprintf(os.Stderr, "rot13d: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, logFile, udpAddr, httpAddr string, workers int) error {
	cfg := log.DefaultConfig()
	if configPath != "" {
		var err error
		if cfg, err = log.NewConfigFromFile(configPath); err != nil {
			return err
		}
	}
	if logFile != "" {
		cfg.File = logFile
	}

	logger := log.NewLogger()
	if err := logger.ApplyConfig(cfg); err != nil {
		return err
	}
	defer logger.Shutdown()

	adapters := compat.NewBuilder().WithLogger(logger)
	gnetLogger, err := adapters.BuildGnet()
	if err != nil {
		return err
	}
	httpLogger, err := adapters.BuildFastHTTP()
	if err != nil {
		return err
	}

	workPool := pool.New(workers, pool.WithLogger(logger))
	if err := workPool.Start(); err != nil {
		return err
	}
	defer workPool.Stop()

	srv := &rot13Server{booted: make(chan struct{}), addr: udpAddr, logger: logger, pool: workPool}
	httpServer := &fasthttp.Server{
		Handler:      srv.handleHTTP,
		Logger:       httpLogger,
		Name:         "rot13d",
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 2)
	go func() {
		errCh <- gnet.Run(srv, udpAddr, gnet.WithMulticore(true), gnet.WithLogger(gnetLogger))
	}()
	go func() {
		logger.Infof(component, "stats on http://%s/stats", httpAddr)
		errCh <- httpServer.ListenAndServe(httpAddr)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		logger.Infof(component, "shutdown requested")
	case runErr = <-errCh:
		logger.Errorf(component, "server exited: %v", runErr)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	select {
	case <-srv.booted:
		if err := srv.eng.Stop(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
			logger.Warnf(component, "engine stop: %v", err)
		}
	default:
	}
	if err := httpServer.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Warnf(component, "http shutdown: %v", err)
	}
	return runErr
}
