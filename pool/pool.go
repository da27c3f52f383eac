// FILE: lixenwraith/asynclog/pool/pool.go

// Package pool runs work items on a fixed set of goroutines that share one queue.
// Each worker drains whatever is queued when it wakes and executes that batch itself,
// so order is FIFO within a batch but not across workers.
package pool

import (
	"runtime"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	log "github.com/lixenwraith/asynclog"
	"github.com/lixenwraith/asynclog/queue"
)

// Component is the component name of records the pool logs
const Component = "pool"

// Pool lifecycle
const (
	stateCreated int32 = iota
	stateRunning
	stateStopped
)

// Item is a unit of deferred work
type Item interface {
	Execute()
}

// ItemFunc adapts a plain function to Item
type ItemFunc func()

func (f ItemFunc) Execute() { f() }

// Pool executes submitted items on a fixed number of worker goroutines
type Pool struct {
	workers int
	queue   *queue.Queue[Item]
	logger  *log.Logger

	// Add holds the read side so Stop never misses an item pushed during shutdown
	lifecycleMu sync.RWMutex
	state       atomic.Int32
	group       *errgroup.Group

	executed atomic.Uint64
	panics   atomic.Uint64
}

// Option configures a Pool
type Option func(*Pool)

// WithLogger sets the logger for lifecycle records and item panics
func WithLogger(l *log.Logger) Option {
	return func(p *Pool) {
		p.logger = l
	}
}

// Stats is a point-in-time snapshot of pool counters
type Stats struct {
	Workers  int    `json:"workers"`
	Executed uint64 `json:"executed"`
	Panics   uint64 `json:"panics"`
	Queued   int    `json:"queued"`
	Running  bool   `json:"running"`
}

// New creates a pool with the given number of workers, GOMAXPROCS when workers <= 0.
// Items may be added before Start; they run once the workers are up.
func New(workers int, opts ...Option) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	p := &Pool{
		workers: workers,
		queue:   queue.New[Item](),
	}
	for _, opt := range opts {
		opt(p)
	}

	p.logInfo("pool created with %d workers", workers)
	return p
}

// Add queues an item for execution. It never blocks on the workers.
func (p *Pool) Add(item Item) error {
	if item == nil {
		return ErrNilItem
	}

	p.lifecycleMu.RLock()
	defer p.lifecycleMu.RUnlock()

	if p.state.Load() == stateStopped {
		return ErrPoolStopped
	}
	p.queue.Push(item)
	return nil
}

// AddFunc is Add for a plain function
func (p *Pool) AddFunc(fn func()) error {
	if fn == nil {
		return ErrNilItem
	}
	return p.Add(ItemFunc(fn))
}

// Start launches the workers. A pool starts once.
func (p *Pool) Start() error {
	p.lifecycleMu.Lock()
	defer p.lifecycleMu.Unlock()

	switch p.state.Load() {
	case stateRunning:
		return ErrPoolRunning
	case stateStopped:
		return ErrPoolStopped
	}

	p.group = new(errgroup.Group)
	for i := 0; i < p.workers; i++ {
		id := i
		p.group.Go(func() error {
			p.worker(id)
			return nil
		})
	}
	p.state.Store(stateRunning)

	p.logInfo("pool start: %d workers", p.workers)
	return nil
}

// Stop wakes every worker, waits for them to finish their current batch, then executes
// any items still queued on the calling goroutine. Items added after Stop are rejected.
// Calling Stop again is a no-op.
//
// Stop joins the workers, so an item must not call it directly: the worker running
// the item would wait on itself. Items that end the pool call it in a new goroutine.
func (p *Pool) Stop() error {
	// Released before joining so items that call Add get ErrPoolStopped instead of blocking
	p.lifecycleMu.Lock()
	prev := p.state.Swap(stateStopped)
	p.lifecycleMu.Unlock()

	if prev == stateStopped {
		return nil
	}

	var err error
	if prev == stateRunning {
		p.queue.Shutdown()
		err = p.group.Wait()
	}

	residual := p.queue.Pop(nil)
	for _, item := range residual {
		p.execute(item)
	}

	p.logInfo("pool stop: executed=%d panics=%d residual=%d",
		p.executed.Load(), p.panics.Load(), len(residual))
	return err
}

// Stats returns current counters
func (p *Pool) Stats() Stats {
	return Stats{
		Workers:  p.workers,
		Executed: p.executed.Load(),
		Panics:   p.panics.Load(),
		Queued:   p.queue.Len(),
		Running:  p.state.Load() == stateRunning,
	}
}

// worker drains batches until the queue is closed
func (p *Pool) worker(id int) {
	p.logDebug("worker %d started", id)
	defer p.logDebug("worker %d exited", id)

	var batch []Item
	for {
		var ok bool
		batch, ok = p.queue.WaitAndPop(batch[:0])
		if !ok {
			return
		}
		for _, item := range batch {
			p.execute(item)
		}
		clear(batch)
	}
}

// execute runs one item, containing panics so the worker keeps going
func (p *Pool) execute(item Item) {
	defer func() {
		if r := recover(); r != nil {
			p.panics.Add(1)
			p.logError("item panicked: %v", r)
		}
	}()
	item.Execute()
	p.executed.Add(1)
}

func (p *Pool) logInfo(format string, args ...any) {
	if p.logger != nil {
		p.logger.Infof(Component, format, args...)
	}
}

func (p *Pool) logDebug(format string, args ...any) {
	if p.logger != nil {
		p.logger.Debugf(Component, format, args...)
	}
}

func (p *Pool) logError(format string, args ...any) {
	if p.logger != nil {
		p.logger.Errorf(Component, format, args...)
	}
}
