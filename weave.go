// Package weave runs model-update-view programs: a model, an update function
// and a view, reconciled against a DOM host.
package weave

import (
	"context"

	"github.com/joeycumines/logiface"

	"github.com/AnatoleLucet/weave/internal/dom"
	"github.com/AnatoleLucet/weave/internal/platform"
)

func as[T any](v any) T {
	if v == nil {
		var zero T
		return zero
	}

	return v.(T)
}

type (
	// Host is the DOM a program renders into.
	Host = dom.Host
	// DOMNode is a live node of a Host.
	DOMNode = dom.Node
	// Event is what event handlers decode messages from.
	Event = dom.Event

	// MemoryHost is an in-memory Host recording every mutation.
	MemoryHost = dom.Memory
	MemEvent   = dom.MemEvent
)

// NewMemoryHost creates an empty in-memory host.
func NewMemoryHost() *MemoryHost {
	return dom.NewMemory()
}

// Runtime owns the scheduler, effect queue and render loop shared by the
// programs started on it.
type Runtime struct {
	rt *platform.Runtime
}

type RuntimeOption = platform.RuntimeOption

// WithLogger sets the structured logger of a runtime.
func WithLogger(logger *logiface.Logger[logiface.Event]) RuntimeOption {
	return platform.WithLogger(logger)
}

// FrameSource paces the render loop of a runtime.
type FrameSource = platform.FrameSource

// WithFrameSource sets what paces the render loop.
func WithFrameSource(source FrameSource) RuntimeOption {
	return platform.WithFrameSource(source)
}

// ManualFrames is a frame source that only ticks when told to.
type ManualFrames = platform.ManualFrames

// NewRuntime creates a runtime bound to the calling goroutine.
func NewRuntime(opts ...RuntimeOption) *Runtime {
	return &Runtime{platform.NewRuntime(opts...)}
}

// DefaultRuntime is the runtime of the calling goroutine, used by programs
// started without WithRuntime.
func DefaultRuntime() *Runtime {
	return &Runtime{platform.Default()}
}

// Run processes timers, frames and completions coming from other goroutines
// until ctx is done. It must be called from the runtime goroutine.
func (r *Runtime) Run(ctx context.Context) error {
	return r.rt.Run(ctx)
}

// Flush processes what other goroutines handed over so far.
func (r *Runtime) Flush() int {
	return r.rt.Flush()
}

// Submit runs fn on the runtime goroutine.
func (r *Runtime) Submit(fn func()) {
	r.rt.Submit(fn)
}
