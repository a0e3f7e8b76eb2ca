package platform

import (
	"sync"
	"time"
)

// FrameSource calls fn once, at the next frame. fn may be called from any
// goroutine.
type FrameSource interface {
	RequestFrame(fn func())
}

// TimerFrames is a FrameSource ticking every interval.
type TimerFrames struct {
	Interval time.Duration
}

func (t TimerFrames) RequestFrame(fn func()) {
	time.AfterFunc(t.Interval, fn)
}

// DefaultFrames ticks at 60 frames per second.
var DefaultFrames FrameSource = TimerFrames{Interval: time.Second / 60}

// ManualFrames only fires frames when told to.
type ManualFrames struct {
	mu      sync.Mutex
	pending []func()
}

func (m *ManualFrames) RequestFrame(fn func()) {
	m.mu.Lock()
	m.pending = append(m.pending, fn)
	m.mu.Unlock()
}

// Tick fires the requested frames and reports how many there were.
func (m *ManualFrames) Tick() int {
	m.mu.Lock()
	pending := m.pending
	m.pending = nil
	m.mu.Unlock()

	for _, fn := range pending {
		fn()
	}

	return len(pending)
}

// Pending is the number of requested frames.
func (m *ManualFrames) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}

// frameQueue batches frame callbacks so that the frame source is asked for
// one frame at a time.
type frameQueue struct {
	source    FrameSource
	callbacks []func()
	pending   bool
	inFrame   bool
}

func (rt *Runtime) requestFrame(fn func()) {
	q := rt.frames
	q.callbacks = append(q.callbacks, fn)

	if q.pending {
		return
	}
	q.pending = true

	q.source.RequestFrame(func() {
		if !rt.scheduler.OnOwner() {
			rt.scheduler.Submit(rt.runFrame)
			return
		}
		rt.runFrame()
	})
}

func (rt *Runtime) runFrame() {
	q := rt.frames
	q.pending = false

	// callbacks requested from now on wait for the next frame
	callbacks := q.callbacks
	q.callbacks = nil

	q.inFrame = true
	defer func() { q.inFrame = false }()

	for _, fn := range callbacks {
		fn()
	}
}

// Animator draws the latest model at most once per frame.
//
// Draws never overlap, across all the animators of a runtime: a draw
// requested while another one runs happens right after it.
type Animator struct {
	rt    *Runtime
	model any
	draw  func(model any)

	// a frame was requested for drawing
	pendingFrame bool
	// a draw is queued after the current one
	pendingSync bool
}

// NewAnimator draws model right away.
func (rt *Runtime) NewAnimator(model any, draw func(model any)) *Animator {
	a := &Animator{rt: rt, model: model, draw: draw}
	a.drawHelp()
	return a
}

// Step records model and draws it, right away when sync is set or when
// called from within a frame, at the next frame otherwise.
func (a *Animator) Step(model any, sync bool) {
	a.model = model

	if sync || a.rt.frames.inFrame {
		a.drawHelp()
		return
	}

	if !a.pendingFrame {
		a.pendingFrame = true
		a.rt.requestFrame(a.updateIfNeeded)
	}
}

func (a *Animator) updateIfNeeded() {
	if a.pendingFrame {
		a.drawHelp()
	}
}

func (a *Animator) drawHelp() {
	rt := a.rt
	if rt.drawing {
		if !a.pendingSync {
			a.pendingSync = true
			rt.drawQueue = append(rt.drawQueue, a.drawHelp)
		}
		return
	}

	a.pendingFrame = false
	a.pendingSync = false

	rt.drawing = true
	a.draw(a.model)
	rt.drawing = false

	for len(rt.drawQueue) > 0 {
		next := rt.drawQueue[0]
		rt.drawQueue = rt.drawQueue[1:]
		next()
	}
}
