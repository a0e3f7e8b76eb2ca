package scheduler

import (
	"context"
	"sync"

	"github.com/joeycumines/logiface"
	"github.com/petermattis/goid"
)

// Scheduler steps processes cooperatively on a single goroutine, the one
// that created it.
//
// Processes that become ready while another one is being stepped are queued
// and stepped afterwards, never interleaved. Bindings may complete from
// other goroutines; their completion is handed back to the owner goroutine
// through Submit and picked up by Run or Flush.
type Scheduler struct {
	owner  int64
	logger *logiface.Logger[logiface.Event]

	queue   []*Process
	working bool
	guid    uint64

	mu    sync.Mutex
	inbox []func()
	wake  chan struct{}
}

type SchedulerOption func(*Scheduler)

func WithLogger(logger *logiface.Logger[logiface.Event]) SchedulerOption {
	return func(s *Scheduler) {
		s.logger = logger
	}
}

func NewScheduler(opts ...SchedulerOption) *Scheduler {
	s := &Scheduler{
		owner: goid.Get(),
		queue: make([]*Process, 0),
		wake:  make(chan struct{}, 1),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Spawn starts a process running task.
func (s *Scheduler) Spawn(task Task) *Process {
	p := &Process{
		id:      s.guid,
		root:    task,
		mailbox: make([]any, 0),
	}
	s.guid++

	s.logger.Trace().Uint64("pid", p.id).Log("spawn")

	s.enqueue(p)
	return p
}

// Send appends msg to the mailbox of p. Messages sent to a killed process
// are dropped.
func (s *Scheduler) Send(p *Process, msg any) {
	if p.killed {
		return
	}

	p.mailbox = append(p.mailbox, msg)
	s.enqueue(p)
}

// Kill stops p for good. If p is waiting on a binding, the binding is
// cancelled. Killing a process more than once does nothing.
func (s *Scheduler) Kill(p *Process) {
	if p.killed {
		return
	}

	s.logger.Trace().Uint64("pid", p.id).Bool("waiting", p.waiting).Log("kill")

	cancel := p.cancel
	p.killed = true
	p.waiting = false
	p.cancel = nil
	p.root = nil
	p.stack = nil
	p.mailbox = nil

	if cancel != nil {
		cancel()
	}
}

// SpawnTask is Spawn as a task. It succeeds with the new *Process.
func (s *Scheduler) SpawnTask(task Task) Task {
	return Binding(func(resume func(Task)) func() {
		resume(Succeed(s.Spawn(task)))
		return nil
	})
}

// SendTask is Send as a task. It succeeds with nil.
func (s *Scheduler) SendTask(p *Process, msg any) Task {
	return Binding(func(resume func(Task)) func() {
		s.Send(p, msg)
		resume(Succeed(nil))
		return nil
	})
}

// KillTask is Kill as a task. It succeeds with nil.
func (s *Scheduler) KillTask(p *Process) Task {
	return Binding(func(resume func(Task)) func() {
		s.Kill(p)
		resume(Succeed(nil))
		return nil
	})
}

func (s *Scheduler) enqueue(p *Process) {
	s.queue = append(s.queue, p)
	if s.working {
		return
	}

	s.working = true
	defer func() { s.working = false }()

	for len(s.queue) > 0 {
		next := s.queue[0]
		s.queue[0] = nil
		s.queue = s.queue[1:]
		s.step(next)
	}
}

// Submit schedules fn to run on the owner goroutine. It is safe to call from
// any goroutine.
func (s *Scheduler) Submit(fn func()) {
	s.mu.Lock()
	s.inbox = append(s.inbox, fn)
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// Flush runs the submitted funcs and reports how many ran. It must be called
// from the owner goroutine.
func (s *Scheduler) Flush() int {
	s.mu.Lock()
	fns := s.inbox
	s.inbox = nil
	s.mu.Unlock()

	for _, fn := range fns {
		fn()
	}

	return len(fns)
}

// Run flushes submitted funcs as they arrive until ctx is done. It must be
// called from the owner goroutine.
func (s *Scheduler) Run(ctx context.Context) error {
	for {
		s.Flush()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.wake:
		}
	}
}

// OnOwner reports whether the caller runs on the owner goroutine.
func (s *Scheduler) OnOwner() bool {
	return goid.Get() == s.owner
}
