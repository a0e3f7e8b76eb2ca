package platform

import (
	"github.com/AnatoleLucet/weave/internal/scheduler"
)

// Manager is an effect manager: a long running process that receives the
// commands and subscriptions addressed to Name once per dispatch cycle.
//
// Its state starts as the value Init succeeds with, and is replaced by the
// value every OnEffects or OnSelfMsg task succeeds with.
type Manager struct {
	Name string
	Init scheduler.Task

	OnEffects func(r *Router, cmds, subs []any, state any) scheduler.Task
	// optional, self messages are ignored when nil
	OnSelfMsg func(r *Router, msg any, state any) scheduler.Task

	// CmdMap and SubMap apply the MapBag taggers around a leaf to its value.
	// A nil map leaves the value as is.
	CmdMap func(tagger func(any) any, value any) any
	SubMap func(tagger func(any) any, value any) any
}

// Router lets a manager talk to its program and to itself.
type Router struct {
	program *Program
	self    *scheduler.Process
}

func (r *Router) Program() *Program { return r.program }

// SendToApp is a task that feeds msg to the program update.
func (r *Router) SendToApp(msg any) scheduler.Task {
	return scheduler.Binding(func(resume func(scheduler.Task)) func() {
		r.program.SendToApp(msg, false)
		resume(scheduler.Succeed(nil))
		return nil
	})
}

// SendToSelf is a task that delivers msg to the manager OnSelfMsg.
func (r *Router) SendToSelf(msg any) scheduler.Task {
	return r.program.runtime.scheduler.SendTask(r.self, selfMsg{msg})
}

type selfMsg struct {
	value any
}

type fxMsg struct {
	fx *Effects
}

type managed struct {
	*Manager
	router *Router
}

// spawn starts the manager loop for p.
func (m *managed) spawn(p *Program) {
	s := p.runtime.scheduler
	m.router = &Router{program: p}

	var loop func(state any) scheduler.Task
	loop = func(state any) scheduler.Task {
		return scheduler.AndThen(loop, scheduler.Receive(func(msg any) scheduler.Task {
			switch msg := msg.(type) {
			case selfMsg:
				if m.OnSelfMsg == nil {
					return scheduler.Succeed(state)
				}
				return m.OnSelfMsg(m.router, msg.value, state)
			case fxMsg:
				return m.OnEffects(m.router, msg.fx.Cmds, msg.fx.Subs, state)
			default:
				return scheduler.Succeed(state)
			}
		}))
	}

	init := m.Init
	if init == nil {
		init = scheduler.Succeed(nil)
	}

	m.router.self = s.Spawn(scheduler.AndThen(loop, init))
}
