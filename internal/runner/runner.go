// Package runner runs plan generation behind a cosmetic delay where a newer
// request supersedes any request still in flight.
package runner

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/obliviraorg/edumentor/internal/logger"
)

// ErrSuperseded is the cancellation cause of a request replaced by a newer Submit.
var ErrSuperseded = errors.New("superseded by a newer request")

// Result is delivered exactly once per Submit.
type Result[T any] struct {
	Seq   uint64
	Value T
	Err   error
}

type Runner[T any] struct {
	delay time.Duration

	mu     sync.Mutex
	seq    uint64
	cancel context.CancelCauseFunc
}

// New returns a runner that waits delay before each request. A zero delay runs immediately.
func New[T any](delay time.Duration) *Runner[T] {
	return &Runner[T]{delay: max(delay, 0)}
}

// Submit cancels any in-flight request with ErrSuperseded and schedules fn.
// The returned channel is buffered and receives one Result.
func (r *Runner[T]) Submit(ctx context.Context, fn func(context.Context) (T, error)) <-chan Result[T] {
	reqCtx, cancel := context.WithCancelCause(ctx)

	r.mu.Lock()
	if r.cancel != nil {
		r.cancel(ErrSuperseded)
	}
	r.seq++
	seq := r.seq
	r.cancel = cancel
	r.mu.Unlock()

	out := make(chan Result[T], 1)
	go func() {
		defer cancel(nil)
		value, err := r.run(reqCtx, seq, fn)
		if err != nil {
			logger.Debug("Generation request ended", "seq", seq, "error", err)
		}
		out <- Result[T]{Seq: seq, Value: value, Err: err}
	}()
	return out
}

func (r *Runner[T]) run(ctx context.Context, seq uint64, fn func(context.Context) (T, error)) (T, error) {
	var zero T

	if r.delay > 0 {
		timer := time.NewTimer(r.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return zero, context.Cause(ctx)
		case <-timer.C:
		}
	}

	// A Submit may have landed between the timer firing and now.
	if seq != r.Latest() {
		return zero, ErrSuperseded
	}
	if err := context.Cause(ctx); err != nil {
		return zero, err
	}

	value, err := fn(ctx)
	if err != nil {
		return zero, err
	}
	if seq != r.Latest() {
		return zero, ErrSuperseded
	}
	return value, nil
}

// Latest returns the sequence number of the most recent Submit.
func (r *Runner[T]) Latest() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.seq
}

// Cancel aborts the in-flight request, if any.
func (r *Runner[T]) Cancel() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		r.cancel(context.Canceled)
		r.cancel = nil
	}
}
