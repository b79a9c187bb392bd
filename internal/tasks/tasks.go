// Package tasks runs long pac operations off the presentation context and
// delivers exactly one terminal outcome per operation.
package tasks

import (
	"errors"
	"fmt"
	"sync"
)

// ErrBusy reports that an operation of the same kind is already in flight.
var ErrBusy = errors.New("operation already in flight")

// defaultBuffer bounds how many undelivered outcomes can pile up before
// completing goroutines block on delivery.
const defaultBuffer = 16

// Outcome is the single terminal notification for one operation: either a
// result or an error, never both.
type Outcome struct {
	Kind   string
	Result any
	Err    error
}

// Runner spawns one goroutine per operation. Outcomes are delivered on a
// single channel; draining it from one consumer serializes completion
// handling the way a single UI context would.
type Runner struct {
	mu       sync.Mutex
	inflight map[string]struct{}
	outcomes chan Outcome
	wg       sync.WaitGroup
}

// NewRunner builds a Runner. buffer <= 0 selects a sensible default.
func NewRunner(buffer int) *Runner {
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	return &Runner{
		inflight: make(map[string]struct{}),
		outcomes: make(chan Outcome, buffer),
	}
}

// Go schedules op on its own goroutine and later delivers exactly one
// Outcome tagged with kind. A second Go with the same kind while the first
// is still running is rejected with ErrBusy rather than queued. A panic
// inside op is recovered and delivered as a failure.
func (r *Runner) Go(kind string, op func() (any, error)) error {
	r.mu.Lock()
	if _, running := r.inflight[kind]; running {
		r.mu.Unlock()
		return ErrBusy
	}
	r.inflight[kind] = struct{}{}
	r.mu.Unlock()

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		outcome := Outcome{Kind: kind}
		defer func() {
			if rec := recover(); rec != nil {
				outcome.Result = nil
				outcome.Err = fmt.Errorf("operation %s panicked: %v", kind, rec)
			}
			r.mu.Lock()
			delete(r.inflight, kind)
			r.mu.Unlock()
			r.outcomes <- outcome
		}()
		outcome.Result, outcome.Err = op()
	}()
	return nil
}

// Outcomes is the delivery channel. It is never closed; consumers stop
// reading when they shut down.
func (r *Runner) Outcomes() <-chan Outcome {
	return r.outcomes
}

// InFlight reports whether an operation of the given kind is running.
func (r *Runner) InFlight(kind string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, running := r.inflight[kind]
	return running
}

// Wait blocks until every scheduled operation has finished and delivered.
// The outcomes buffer must be large enough to absorb undrained deliveries,
// which holds for the command paths that use Wait.
func (r *Runner) Wait() {
	r.wg.Wait()
}
