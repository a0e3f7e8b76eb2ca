package platform

import (
	"slices"

	"github.com/AnatoleLucet/weave/internal/scheduler"
)

// OutgoingPort sends command values out of a program to subscribed
// callbacks. A port belongs to one program.
type OutgoingPort struct {
	name string
	subs []*PortSubscription
}

// PortSubscription identifies a callback registered on an OutgoingPort.
type PortSubscription struct {
	fn func(any)
}

func NewOutgoingPort(name string) *OutgoingPort {
	return &OutgoingPort{name: name}
}

func (o *OutgoingPort) Name() string { return o.name }

// Cmd is a command that hands value to every subscriber.
func (o *OutgoingPort) Cmd(value any) Bag {
	return Leaf(o.name, value)
}

func (o *OutgoingPort) Subscribe(fn func(value any)) *PortSubscription {
	sub := &PortSubscription{fn: fn}
	o.subs = append(o.subs, sub)
	return sub
}

// Unsubscribe removes sub. It is safe to call from a subscriber.
func (o *OutgoingPort) Unsubscribe(sub *PortSubscription) {
	i := slices.Index(o.subs, sub)
	if i < 0 {
		return
	}
	o.subs = slices.Delete(slices.Clone(o.subs), i, i+1)
}

func (o *OutgoingPort) Manager() *Manager {
	return &Manager{
		Name: o.name,
		Init: scheduler.Succeed(nil),
		OnEffects: func(_ *Router, cmds, _ []any, state any) scheduler.Task {
			for _, value := range cmds {
				// unsubscribing swaps the slice, this one stays intact
				current := o.subs
				for _, sub := range current {
					sub.fn(value)
				}
			}
			return scheduler.Succeed(state)
		},
		CmdMap: func(_ func(any) any, value any) any {
			return value
		},
	}
}

// IncomingPort feeds values from outside into a program, through the
// subscriptions the program currently has on it.
type IncomingPort struct {
	name   string
	subs   []any
	router *Router
}

func NewIncomingPort(name string) *IncomingPort {
	return &IncomingPort{name: name}
}

func (in *IncomingPort) Name() string { return in.name }

// Sub is a subscription turning every value sent to the port into a message.
func (in *IncomingPort) Sub(toMsg func(value any) any) Bag {
	return Leaf(in.name, toMsg)
}

// Send delivers value to the program once per current subscription. Other
// goroutines go through Runtime.Submit.
func (in *IncomingPort) Send(value any) {
	if in.router == nil {
		return
	}

	for _, sub := range in.subs {
		in.router.program.SendToApp(sub.(func(any) any)(value), false)
	}
}

func (in *IncomingPort) Manager() *Manager {
	return &Manager{
		Name: in.name,
		Init: scheduler.Succeed(nil),
		OnEffects: func(r *Router, _, subs []any, state any) scheduler.Task {
			in.router = r
			in.subs = subs
			return scheduler.Succeed(state)
		},
		SubMap: func(tagger func(any) any, value any) any {
			final := value.(func(any) any)
			return func(v any) any {
				return tagger(final(v))
			}
		},
	}
}
