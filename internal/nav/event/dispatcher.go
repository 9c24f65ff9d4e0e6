package event

import (
	"context"
	"log/slog"
	"runtime/debug"
	"sync"

	"github.com/shandysiswandi/gonav/internal/nav/entity"
	"github.com/shandysiswandi/gonav/internal/pkg/pkguid"
)

// Listener reacts to one event.
type Listener func(ctx context.Context, event entity.Event) error

type DispatcherConfig struct {
	Workers int
}

// Dispatcher drains a Bus and calls the listeners registered for each
// event type. An event ID is delivered at most once.
type Dispatcher struct {
	bus       *Bus
	workers   int
	mu        sync.RWMutex
	listeners map[entity.EventType][]Listener
	seen      sync.Map
	wg        sync.WaitGroup
}

func NewDispatcher(bus *Bus, cfg DispatcherConfig) *Dispatcher {
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}

	return &Dispatcher{
		bus:       bus,
		workers:   workers,
		listeners: make(map[entity.EventType][]Listener),
	}
}

// On registers l for events of type t. It is safe to call after Start.
func (d *Dispatcher) On(t entity.EventType, l Listener) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.listeners[t] = append(d.listeners[t], l)
}

func (d *Dispatcher) Start() {
	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}
}

// Stop closes the bus and waits for queued events to be delivered.
func (d *Dispatcher) Stop(ctx context.Context) error {
	if d.bus != nil {
		d.bus.Close()
	}

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()

	for event := range d.bus.Subscribe() {
		d.dispatch(event)
	}
}

func (d *Dispatcher) dispatch(event entity.Event) {
	if event.ID != 0 {
		if _, loaded := d.seen.LoadOrStore(event.ID, struct{}{}); loaded {
			slog.Info("skip duplicate router event", "event_id", event.ID, "type", event.Type)
			return
		}
	}

	d.mu.RLock()
	listeners := append([]Listener(nil), d.listeners[event.Type]...)
	d.mu.RUnlock()

	for _, l := range listeners {
		d.call(l, event)
	}
}

func (d *Dispatcher) call(l Listener, event entity.Event) {
	defer func() {
		if rvr := recover(); rvr != nil {
			slog.Error("panic in router event listener", "event_id", event.ID, "type", event.Type, "panic", rvr, "stack", string(debug.Stack()))
		}
	}()

	if err := l(context.Background(), event); err != nil {
		slog.Error("router event listener failed", "event_id", event.ID, "type", event.Type, "path", event.Path, "error", err)
	}
}

// LogListener writes every event it receives to the default logger. Events
// with an ID also carry the node that issued it.
func LogListener(ctx context.Context, event entity.Event) error {
	attrs := []any{"event_id", event.ID, "type", event.Type, "path", event.Path}
	if event.ID != 0 {
		attrs = append(attrs, "node", pkguid.NodeOf(event.ID))
	}
	if event.Route != "" {
		attrs = append(attrs, "route", event.Route)
	}
	if event.Err != "" {
		attrs = append(attrs, "error", event.Err)
		slog.WarnContext(ctx, "router event", attrs...)
		return nil
	}

	slog.InfoContext(ctx, "router event", attrs...)
	return nil
}
