package platform

import (
	"context"

	"github.com/joeycumines/logiface"

	"github.com/AnatoleLucet/weave/internal/scheduler"
)

// Runtime holds the state shared by the programs it runs: the scheduler,
// the effect queue, the frame queue and the draw lock. Runtimes are
// independent from each other, and a Runtime is meant to be used from the
// goroutine that created it.
type Runtime struct {
	logger *logiface.Logger[logiface.Event]

	scheduler *scheduler.Scheduler
	queue     *EffectQueue
	frames    *frameQueue

	drawing   bool
	drawQueue []func()
}

type RuntimeOption func(*Runtime)

func WithLogger(logger *logiface.Logger[logiface.Event]) RuntimeOption {
	return func(rt *Runtime) {
		rt.logger = logger
	}
}

// WithFrameSource replaces DefaultFrames.
func WithFrameSource(source FrameSource) RuntimeOption {
	return func(rt *Runtime) {
		rt.frames.source = source
	}
}

func NewRuntime(opts ...RuntimeOption) *Runtime {
	rt := &Runtime{
		queue:     NewEffectQueue(),
		frames:    &frameQueue{source: DefaultFrames},
		drawQueue: make([]func(), 0),
	}

	for _, opt := range opts {
		opt(rt)
	}

	rt.scheduler = scheduler.NewScheduler(scheduler.WithLogger(rt.logger))

	return rt
}

func (rt *Runtime) Scheduler() *scheduler.Scheduler { return rt.scheduler }

func (rt *Runtime) Logger() *logiface.Logger[logiface.Event] { return rt.logger }

// Submit runs fn on the runtime goroutine. Safe to call from any goroutine.
func (rt *Runtime) Submit(fn func()) {
	rt.scheduler.Submit(fn)
}

// Run processes work handed over from other goroutines (timers, frames,
// bindings) until ctx is done.
func (rt *Runtime) Run(ctx context.Context) error {
	return rt.scheduler.Run(ctx)
}

// Flush processes the work handed over so far without blocking.
func (rt *Runtime) Flush() int {
	return rt.scheduler.Flush()
}
