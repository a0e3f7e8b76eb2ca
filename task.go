package weave

import (
	"context"
	"time"

	"github.com/AnatoleLucet/weave/internal/scheduler"
)

// Task is a computation that succeeds with a T or fails with an error. Tasks
// do nothing until performed by a command.
type Task[T any] struct {
	task scheduler.Task
}

// Succeed is a task that immediately succeeds with value.
func Succeed[T any](value T) Task[T] {
	return Task[T]{scheduler.Succeed(value)}
}

// Fail is a task that immediately fails with err.
func Fail[T any](err error) Task[T] {
	return Task[T]{scheduler.Fail(err)}
}

// AndThen chains a task after t, fed with the value t succeeds with.
func AndThen[A, B any](fn func(A) Task[B], t Task[A]) Task[B] {
	return Task[B]{scheduler.AndThen(func(v any) scheduler.Task {
		return fn(as[A](v)).task
	}, t.task)}
}

// OnError recovers from the failure of t.
func OnError[T any](fn func(error) Task[T], t Task[T]) Task[T] {
	return Task[T]{scheduler.OnError(func(err any) scheduler.Task {
		return fn(as[error](err)).task
	}, t.task)}
}

func Map[A, B any](fn func(A) B, t Task[A]) Task[B] {
	return Task[B]{scheduler.Map(func(v any) any {
		return fn(as[A](v))
	}, t.task)}
}

func MapError[T any](fn func(error) error, t Task[T]) Task[T] {
	return Task[T]{scheduler.MapError(func(err any) any {
		return fn(as[error](err))
	}, t.task)}
}

// Sequence runs tasks in order and collects their values. It fails with the
// first failure.
func Sequence[T any](tasks ...Task[T]) Task[[]T] {
	raw := make([]scheduler.Task, len(tasks))
	for i, t := range tasks {
		raw[i] = t.task
	}

	return Task[[]T]{scheduler.Map(func(v any) any {
		values := v.([]any)
		out := make([]T, len(values))
		for i, value := range values {
			out[i] = as[T](value)
		}
		return out
	}, scheduler.Sequence(raw...))}
}

// Sleep succeeds after d.
func Sleep(d time.Duration) Task[struct{}] {
	return Task[struct{}]{scheduler.Map(func(any) any {
		return struct{}{}
	}, scheduler.Sleep(d))}
}

// Async runs fn on its own goroutine. The context is canceled when the
// process running the task is killed.
func Async[T any](fn func(ctx context.Context) (T, error)) Task[T] {
	return Task[T]{scheduler.Binding(func(resume func(scheduler.Task)) func() {
		ctx, cancel := context.WithCancel(context.Background())
		go func() {
			defer cancel()
			value, err := fn(ctx)
			if err != nil {
				resume(scheduler.Fail(err))
				return
			}
			resume(scheduler.Succeed(value))
		}()
		return cancel
	})}
}
