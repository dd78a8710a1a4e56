package runner

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func value(v int) func(context.Context) (int, error) {
	return func(context.Context) (int, error) { return v, nil }
}

func TestSubmitDeliversOnce(t *testing.T) {
	r := New[int](0)

	res := <-r.Submit(context.Background(), value(42))
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if res.Value != 42 || res.Seq != 1 {
		t.Errorf("result = %+v, want value 42 seq 1", res)
	}
	if r.Latest() != 1 {
		t.Errorf("Latest() = %d, want 1", r.Latest())
	}
}

func TestSubmitSupersedesInFlight(t *testing.T) {
	r := New[int](50 * time.Millisecond)
	var calls atomic.Int32
	counted := func(v int) func(context.Context) (int, error) {
		return func(context.Context) (int, error) {
			calls.Add(1)
			return v, nil
		}
	}

	first := r.Submit(context.Background(), counted(1))
	second := r.Submit(context.Background(), counted(2))

	res1 := <-first
	if !errors.Is(res1.Err, ErrSuperseded) {
		t.Errorf("first result error = %v, want ErrSuperseded", res1.Err)
	}
	res2 := <-second
	if res2.Err != nil || res2.Value != 2 {
		t.Errorf("second result = %+v, want value 2", res2)
	}
	if res2.Seq != r.Latest() {
		t.Errorf("second Seq = %d, Latest() = %d", res2.Seq, r.Latest())
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("fn called %d times, want 1", got)
	}
}

func TestSupersededWhileRunning(t *testing.T) {
	r := New[int](0)
	started := make(chan struct{})
	release := make(chan struct{})

	first := r.Submit(context.Background(), func(ctx context.Context) (int, error) {
		close(started)
		<-release
		return 1, nil
	})
	<-started
	second := r.Submit(context.Background(), value(2))
	close(release)

	if res := <-first; !errors.Is(res.Err, ErrSuperseded) {
		t.Errorf("first result = %+v, want ErrSuperseded", res)
	}
	if res := <-second; res.Value != 2 {
		t.Errorf("second result = %+v", res)
	}
}

func TestParentCancellation(t *testing.T) {
	r := New[int](time.Second)
	ctx, cancel := context.WithCancel(context.Background())

	ch := r.Submit(ctx, value(1))
	cancel()

	select {
	case res := <-ch:
		if !errors.Is(res.Err, context.Canceled) {
			t.Errorf("error = %v, want context.Canceled", res.Err)
		}
	case <-time.After(500 * time.Millisecond):
		t.Fatal("cancelled request did not return before its delay")
	}
}

func TestCancel(t *testing.T) {
	r := New[int](time.Second)
	ch := r.Submit(context.Background(), value(1))
	r.Cancel()

	res := <-ch
	if !errors.Is(res.Err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", res.Err)
	}

	// Cancel with nothing in flight is a no-op.
	r.Cancel()
}

func TestFnError(t *testing.T) {
	boom := errors.New("boom")
	r := New[string](0)

	res := <-r.Submit(context.Background(), func(context.Context) (string, error) { return "", boom })
	if !errors.Is(res.Err, boom) {
		t.Errorf("error = %v, want boom", res.Err)
	}
}

func TestNegativeDelay(t *testing.T) {
	r := New[int](-time.Second)
	if r.delay != 0 {
		t.Errorf("delay = %v, want 0", r.delay)
	}
}
