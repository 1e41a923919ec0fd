package audit

import (
	"context"
	"sync"
	"sync/atomic"
)

// Config controls dispatcher buffering behavior.
type Config struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

// Dispatcher asynchronously forwards audit events to a sink. A nil
// *Dispatcher is valid and discards everything, so the engine can hold one
// unconditionally.
type Dispatcher struct {
	dropIfFull bool
	sink       Sink

	mu     sync.RWMutex
	closed bool
	ch     chan Event

	wg      sync.WaitGroup
	dropped atomic.Uint64
}

func NewDispatcher(cfg Config, sink Sink) *Dispatcher {
	if !cfg.Enabled {
		return nil
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = 1
	}
	if sink == nil {
		sink = NoOpSink{}
	}

	d := &Dispatcher{
		dropIfFull: cfg.DropIfFull,
		sink:       sink,
		ch:         make(chan Event, cfg.BufferSize),
	}

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		// Runs until Close closes the channel; the range drains whatever
		// is still buffered, so no accepted event is lost on shutdown.
		for event := range d.ch {
			d.sink.Emit(context.Background(), event)
		}
	}()

	return d
}

// Emit hands an event to the background worker. With DropIfFull the call
// never blocks and a full buffer increments the drop counter; otherwise it
// blocks until the worker makes room or ctx is done.
func (d *Dispatcher) Emit(ctx context.Context, event Event) {
	if d == nil {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return
	}

	if d.dropIfFull {
		select {
		case d.ch <- event:
		default:
			d.dropped.Add(1)
		}
		return
	}

	select {
	case d.ch <- event:
	case <-ctx.Done():
	}
}

// Close stops accepting events and waits for the worker to drain the
// buffer. Safe to call more than once.
func (d *Dispatcher) Close() {
	if d == nil {
		return
	}

	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.ch)
	d.mu.Unlock()

	d.wg.Wait()
}

// Dropped reports how many events were discarded under backpressure.
func (d *Dispatcher) Dropped() uint64 {
	if d == nil {
		return 0
	}
	return d.dropped.Load()
}
