package scheduler

import (
	"fmt"
)

// Process runs one task until it finishes, fails without a handler, or is
// killed.
type Process struct {
	id uint64

	// nil once the process is done
	root  Task
	stack *frame

	mailbox []any

	// set while root is a binding that has not resumed yet
	waiting bool
	// bumped for every binding, stale resumes are ignored
	binding uint64
	cancel  func()

	killed bool
}

// frame is a pending AndThen (onSuccess) or OnError continuation.
type frame struct {
	onSuccess bool
	fn        func(any) Task
	rest      *frame
}

func (p *Process) ID() uint64 { return p.id }

// Done reports whether the process will never run again.
func (p *Process) Done() bool { return p.root == nil }

func (p *Process) Killed() bool { return p.killed }

func (p *Process) String() string {
	return fmt.Sprintf("process(%d)", p.id)
}

// step runs p until it has to wait. Continuations live on p.stack, not on
// the Go stack, so long AndThen chains run in constant stack space.
func (s *Scheduler) step(p *Process) {
	if p.waiting {
		return
	}

	for p.root != nil {
		switch t := p.root.(type) {
		case *succeed:
			s.unwind(p, true, t.value)

		case *fail:
			s.unwind(p, false, t.err)

		case *binding:
			s.bind(p, t)
			return

		case *receive:
			if len(p.mailbox) == 0 {
				return
			}
			msg := p.mailbox[0]
			p.mailbox[0] = nil
			p.mailbox = p.mailbox[1:]
			p.root = t.fn(msg)

		case *andThen:
			p.stack = &frame{onSuccess: true, fn: t.fn, rest: p.stack}
			p.root = t.task

		case *onError:
			p.stack = &frame{onSuccess: false, fn: t.fn, rest: p.stack}
			p.root = t.task

		default:
			panic(fmt.Sprintf("scheduler: unknown task type %T", p.root))
		}
	}
}

// unwind pops frames until one handles the outcome and continues with it.
func (s *Scheduler) unwind(p *Process, success bool, value any) {
	for p.stack != nil && p.stack.onSuccess != success {
		p.stack = p.stack.rest
	}

	if p.stack == nil {
		if !success {
			s.logger.Debug().Uint64("pid", p.id).Str("error", fmt.Sprint(value)).Log("process failed")
		}
		p.root = nil
		return
	}

	fn := p.stack.fn
	p.stack = p.stack.rest
	p.root = fn(value)
}

// bind starts a binding. A resume that arrives before start returns only
// queues the process, the work loop picks it up.
func (s *Scheduler) bind(p *Process, t *binding) {
	p.waiting = true
	p.binding++
	id := p.binding

	cancel := t.start(func(next Task) {
		s.resume(p, id, next)
	})

	if p.waiting && p.binding == id {
		p.cancel = cancel
	}
}

func (s *Scheduler) resume(p *Process, id uint64, next Task) {
	if !s.OnOwner() {
		s.Submit(func() { s.resume(p, id, next) })
		return
	}

	if p.killed || !p.waiting || p.binding != id {
		return
	}

	p.waiting = false
	p.cancel = nil
	p.root = next
	s.enqueue(p)
}
