package scheduler

import (
	"slices"
	"time"
)

// Task describes a computation that may suspend and may fail. Tasks are
// values: nothing happens until a Process runs them.
//
// The variants are built with Succeed, Fail, Binding, AndThen, OnError and
// Receive.
type Task interface {
	isTask()
}

type succeed struct {
	value any
}

type fail struct {
	err any
}

type binding struct {
	start func(resume func(Task)) (cancel func())
}

type andThen struct {
	fn   func(any) Task
	task Task
}

type onError struct {
	fn   func(any) Task
	task Task
}

type receive struct {
	fn func(any) Task
}

func (*succeed) isTask() {}
func (*fail) isTask()    {}
func (*binding) isTask() {}
func (*andThen) isTask() {}
func (*onError) isTask() {}
func (*receive) isTask() {}

func Succeed(value any) Task {
	return &succeed{value: value}
}

func Fail(err any) Task {
	return &fail{err: err}
}

// Binding runs start when the process reaches it. start must eventually call
// resume with the task to continue with; it may do so before returning. The
// returned cancel func (possibly nil) is called if the process is killed
// while waiting.
func Binding(start func(resume func(Task)) (cancel func())) Task {
	return &binding{start: start}
}

// AndThen runs fn with the value task succeeds with.
func AndThen(fn func(any) Task, task Task) Task {
	return &andThen{fn: fn, task: task}
}

// OnError runs fn with the error task fails with.
func OnError(fn func(any) Task, task Task) Task {
	return &onError{fn: fn, task: task}
}

// Receive waits for the next message in the process mailbox.
func Receive(fn func(msg any) Task) Task {
	return &receive{fn: fn}
}

func Map(fn func(any) any, task Task) Task {
	return AndThen(func(v any) Task {
		return Succeed(fn(v))
	}, task)
}

func MapError(fn func(any) any, task Task) Task {
	return OnError(func(err any) Task {
		return Fail(fn(err))
	}, task)
}

// Sequence runs tasks one after the other and succeeds with all their values.
func Sequence(tasks ...Task) Task {
	var next func(i int, values []any) Task
	next = func(i int, values []any) Task {
		if i == len(tasks) {
			return Succeed(values)
		}
		return AndThen(func(v any) Task {
			return next(i+1, append(slices.Clip(values), v))
		}, tasks[i])
	}

	return next(0, []any{})
}

// Sleep succeeds with nil after d. Killing the process stops the timer.
func Sleep(d time.Duration) Task {
	return Binding(func(resume func(Task)) func() {
		timer := time.AfterFunc(d, func() {
			resume(Succeed(nil))
		})
		return func() {
			timer.Stop()
		}
	})
}
