package audit

import (
	"context"
	"log/slog"
	"sync"
)

// Worker decouples request handling from audit writes. Events are queued
// on a buffered channel and saved by a single goroutine; a full channel
// drops the event instead of blocking the caller. Shutdown drains what is
// still queued before returning.
type Worker struct {
	events chan Event
	sink   Sink
	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
}

var _ Recorder = (*Worker)(nil)

func NewWorker(sink Sink, bufferSize int) *Worker {
	ctx, cancel := context.WithCancel(context.Background())
	return &Worker{
		events: make(chan Event, bufferSize),
		sink:   sink,
		ctx:    ctx,
		cancel: cancel,
	}
}

func (w *Worker) Start() {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		for {
			select {
			case <-w.ctx.Done():
				slog.Info("draining audit events before shutdown", "remaining", len(w.events))
				for len(w.events) > 0 {
					e := <-w.events
					w.save(e)
				}
				return
			case e := <-w.events:
				w.save(e)
			}
		}
	}()
}

// save persists one event. The worker's own context only signals loop
// shutdown; handing it to the sink would fail writes that race with
// cancellation, losing events the drain is meant to flush.
func (w *Worker) save(e Event) {
	if err := w.sink.Save(context.Background(), e); err != nil {
		slog.Error("failed to save audit event", "error", err, "event_type", e.Type)
	}
}

// Record queues an event, dropping it when the buffer is full.
func (w *Worker) Record(e Event) {
	select {
	case w.events <- e:
	default:
		slog.Warn("audit channel full, dropping event", "event_type", e.Type)
	}
}

// Shutdown stops the worker after draining queued events. The channel is
// left open: a straggling Record after shutdown queues or drops its event
// instead of panicking on a closed channel.
func (w *Worker) Shutdown() {
	w.cancel()
	w.wg.Wait()
}
