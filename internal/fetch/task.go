package fetch

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

// ErrCanceled is returned by Task.Wait after a successful Cancel.
var ErrCanceled = errors.New("fetch: canceled")

const (
	taskPending int32 = iota
	taskCompleted
	taskCanceled
)

type outcome[T any] struct {
	value T
	err   error
}

// Task runs one blocking operation on its own goroutine and lets a single
// consumer wait for it or abandon it.
//
// The worker and Cancel race on one state word: whichever moves it out of
// pending first decides the outcome. The worker always delivers into a
// one-slot channel, so it never blocks even when nobody is waiting.
type Task[T any] struct {
	state    atomic.Int32
	done     chan outcome[T]
	canceled chan struct{}
	stop     context.CancelFunc

	cancelOnce sync.Once
	waitOnce   sync.Once
	result     outcome[T]
}

// Go starts fn with a context derived from parent. A positive timeout bounds
// the whole operation.
func Go[T any](parent context.Context, timeout time.Duration, fn func(ctx context.Context) (T, error)) *Task[T] {
	ctx, stop := context.WithCancel(parent)
	if timeout > 0 {
		var stopTimeout context.CancelFunc
		ctx, stopTimeout = context.WithTimeout(ctx, timeout)
		parentStop := stop
		stop = func() {
			stopTimeout()
			parentStop()
		}
	}

	t := &Task[T]{
		done:     make(chan outcome[T], 1),
		canceled: make(chan struct{}),
		stop:     stop,
	}
	go func() {
		value, err := fn(ctx)
		t.state.CompareAndSwap(taskPending, taskCompleted)
		t.done <- outcome[T]{value: value, err: err}
	}()
	return t
}

// Cancel abandons the task. It reports false when the task had already
// finished, in which case Wait still returns the finished result.
func (t *Task[T]) Cancel() bool {
	if !t.state.CompareAndSwap(taskPending, taskCanceled) {
		return false
	}
	t.cancelOnce.Do(func() {
		close(t.canceled)
		t.stop()
	})
	return true
}

// Wait blocks until the task finishes or is canceled. Repeated calls return
// the same outcome.
func (t *Task[T]) Wait() (T, error) {
	t.waitOnce.Do(func() {
		select {
		case r := <-t.done:
			t.result = r
		case <-t.canceled:
		}

		// Whichever channel fired, the state word is the source of truth.
		if t.state.Load() == taskCanceled {
			select {
			case <-t.done:
			default:
			}
			var zero T
			t.result = outcome[T]{value: zero, err: ErrCanceled}
			return
		}
		t.stop()
	})
	return t.result.value, t.result.err
}

// Done reports whether the task has finished or been canceled.
func (t *Task[T]) Done() bool {
	return t.state.Load() != taskPending
}

func (t *Task[T]) Canceled() bool {
	return t.state.Load() == taskCanceled
}
