package serial

import (
	"context"
	"log/slog"
	"sync"
)

// Writer is the engine's single serialization point: every mutating
// operation runs through one lane, one at a time, in arrival order, to
// completion. The backing store has no multi-row transactions, so
// cross-table consistency is enforced here instead of in the adapter.
type Writer struct {
	tasks     chan task
	done      chan struct{}
	logger    *slog.Logger
	closeOnce sync.Once
}

type task struct {
	ctx    context.Context
	fn     func(context.Context) error
	result chan error
}

func NewWriter(depth int, logger *slog.Logger) *Writer {
	if depth <= 0 {
		depth = 64
	}
	if logger == nil {
		logger = slog.Default()
	}
	w := &Writer{
		tasks:  make(chan task, depth),
		done:   make(chan struct{}),
		logger: logger,
	}
	go w.run()
	return w
}

func (w *Writer) run() {
	for t := range w.tasks {
		// A caller that gave up before its turn still holds the lane
		// slot; skip the work but never start it half-cancelled.
		if err := t.ctx.Err(); err != nil {
			t.result <- err
			continue
		}
		t.result <- t.fn(t.ctx)
	}
	close(w.done)
}

// Do enqueues fn and waits for it to finish. Once started, fn runs to
// completion even if ctx is cancelled mid-flight; operations here are
// short and abandoning one halfway would corrupt cross-table state.
func (w *Writer) Do(ctx context.Context, fn func(context.Context) error) error {
	t := task{ctx: ctx, fn: fn, result: make(chan error, 1)}
	select {
	case w.tasks <- t:
	case <-ctx.Done():
		return ctx.Err()
	}
	return <-t.result
}

// Close drains queued tasks and stops the lane. Pending tasks still run.
func (w *Writer) Close() {
	w.closeOnce.Do(func() {
		close(w.tasks)
		<-w.done
	})
}
