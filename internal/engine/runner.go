package engine

import (
	"context"
	"sync"

	"github.com/millworks/cutlist/internal/model"
)

// Result is one finished compute run delivered by a Runner.
type Result struct {
	Summary model.CutlistSummary
	Err     error
}

// Runner serializes compute requests with a last-request-wins guarantee:
// submitting a new snapshot cancels the previous in-flight run, and a
// superseded run's result is dropped even if it arrives after cancellation.
// This matters chiefly for the deep strategy, which may run long; callers are
// still expected to debounce keystroke-level input churn before submitting.
type Runner struct {
	opts Options

	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
}

func NewRunner(opts Options) *Runner {
	return &Runner{opts: opts}
}

// Submit starts a compute run for the snapshot and returns a channel that
// receives exactly one Result — unless the run is superseded by a later
// Submit, in which case the channel is closed without a value.
func (r *Runner) Submit(ctx context.Context, snap model.Snapshot) <-chan Result {
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
	}
	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.gen++
	gen := r.gen
	r.mu.Unlock()

	out := make(chan Result, 1)

	go func() {
		summary, err := ComputeWithOptions(runCtx, snap, r.opts)
		cancel()

		r.mu.Lock()
		stale := gen != r.gen
		r.mu.Unlock()

		if stale {
			close(out)
			return
		}
		out <- Result{Summary: summary, Err: err}
		close(out)
	}()

	return out
}

// Stop cancels any in-flight run.
func (r *Runner) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.gen++
}
