package core

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

const taskQueueSize = 256

// Hub is the single serialization point of the chat server. Every mutation of
// shared state, every render and every session write runs as a task on the
// hub goroutine, one task at a time.
type Hub struct {
	tasks chan func()
	done  chan struct{}
	log   *zerolog.Logger
}

// NewHub creates a hub. Call Run to start processing tasks.
func NewHub(logger *zerolog.Logger) *Hub {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Hub{
		tasks: make(chan func(), taskQueueSize),
		done:  make(chan struct{}),
		log:   logger,
	}
}

// Run processes tasks until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case task := <-h.tasks:
			h.run(task)
		case <-ctx.Done():
			return
		}
	}
}

func (h *Hub) run(task func()) {
	defer func() {
		if r := recover(); r != nil {
			h.log.Error().Str("panic", fmt.Sprint(r)).Msg("hub task panicked")
		}
	}()
	task()
}

// Post queues fn without waiting for it. It returns false once the hub has
// stopped.
func (h *Hub) Post(fn func()) bool {
	select {
	case <-h.done:
		return false
	default:
	}
	select {
	case h.tasks <- fn:
		return true
	case <-h.done:
		return false
	}
}

// Do runs fn on the hub goroutine and waits until it has finished.
func (h *Hub) Do(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	task := func() {
		defer close(finished)
		fn()
	}

	select {
	case h.tasks <- task:
	case <-h.done:
		return ErrHubStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-finished:
		return nil
	case <-h.done:
		return ErrHubStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Done is closed when Run returns.
func (h *Hub) Done() <-chan struct{} {
	return h.done
}
