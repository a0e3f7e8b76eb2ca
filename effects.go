package weave

import (
	"github.com/AnatoleLucet/weave/internal/platform"
)

// Cmd is a bag of commands producing messages of type Msg.
type Cmd[Msg any] struct {
	bag platform.Bag
}

// Sub is a bag of subscriptions producing messages of type Msg.
type Sub[Msg any] struct {
	bag platform.Bag
}

func bagOf(bag platform.Bag) platform.Bag {
	if bag == nil {
		return platform.None()
	}
	return bag
}

func None[Msg any]() Cmd[Msg] {
	return Cmd[Msg]{platform.None()}
}

// Batch groups commands. They are performed in order.
func Batch[Msg any](cmds ...Cmd[Msg]) Cmd[Msg] {
	bags := make([]platform.Bag, len(cmds))
	for i, c := range cmds {
		bags[i] = bagOf(c.bag)
	}
	return Cmd[Msg]{platform.Batch(bags...)}
}

func MapCmd[A, B any](f func(A) B, cmd Cmd[A]) Cmd[B] {
	return Cmd[B]{platform.MapBag(func(msg any) any {
		return f(as[A](msg))
	}, bagOf(cmd.bag))}
}

func NoSub[Msg any]() Sub[Msg] {
	return Sub[Msg]{platform.None()}
}

func BatchSub[Msg any](subs ...Sub[Msg]) Sub[Msg] {
	bags := make([]platform.Bag, len(subs))
	for i, s := range subs {
		bags[i] = bagOf(s.bag)
	}
	return Sub[Msg]{platform.Batch(bags...)}
}

func MapSub[A, B any](f func(A) B, sub Sub[A]) Sub[B] {
	return Sub[B]{platform.MapBag(func(msg any) any {
		return f(as[A](msg))
	}, bagOf(sub.bag))}
}

// Perform runs task and turns its value into a message. Use Attempt for
// tasks that can fail: a failure here is logged and dropped.
func Perform[Msg, T any](toMsg func(T) Msg, task Task[T]) Cmd[Msg] {
	return Cmd[Msg]{platform.Perform(func(v any) any {
		return toMsg(as[T](v))
	}, task.task)}
}

// Attempt runs task and turns its outcome into a message.
func Attempt[Msg, T any](toMsg func(T, error) Msg, task Task[T]) Cmd[Msg] {
	return Cmd[Msg]{platform.Attempt(func(v, err any) any {
		if err != nil {
			var zero T
			return toMsg(zero, as[error](err))
		}
		return toMsg(as[T](v), nil)
	}, task.task)}
}

// Outgoing is a port sending values of type T out of a program.
type Outgoing[T any] struct {
	port *platform.OutgoingPort
}

// Subscription is returned by Outgoing.Subscribe.
type Subscription = platform.PortSubscription

// NewOutgoing creates a port. Pass it to the program with WithPorts.
func NewOutgoing[T any](name string) *Outgoing[T] {
	return &Outgoing[T]{platform.NewOutgoingPort(name)}
}

// Send is a command handing value to every subscriber.
func Send[Msg, T any](o *Outgoing[T], value T) Cmd[Msg] {
	return Cmd[Msg]{o.port.Cmd(value)}
}

func (o *Outgoing[T]) Subscribe(fn func(T)) *Subscription {
	return o.port.Subscribe(func(v any) { fn(as[T](v)) })
}

func (o *Outgoing[T]) Unsubscribe(sub *Subscription) {
	o.port.Unsubscribe(sub)
}

func (o *Outgoing[T]) manager() *platform.Manager { return o.port.Manager() }

// Incoming is a port feeding values of type T into a program.
type Incoming[T any] struct {
	port *platform.IncomingPort
}

// NewIncoming creates a port. Pass it to the program with WithPorts.
func NewIncoming[T any](name string) *Incoming[T] {
	return &Incoming[T]{platform.NewIncomingPort(name)}
}

// Listen is a subscription to the values sent to in.
func Listen[Msg, T any](in *Incoming[T], toMsg func(T) Msg) Sub[Msg] {
	return Sub[Msg]{in.port.Sub(func(v any) any {
		return toMsg(as[T](v))
	})}
}

// Send delivers value to the program if it currently listens to the port.
// Call it from the runtime goroutine, through Runtime.Submit otherwise.
func (in *Incoming[T]) Send(value T) {
	in.port.Send(value)
}

func (in *Incoming[T]) manager() *platform.Manager { return in.port.Manager() }

// Port is either an Outgoing or an Incoming port.
type Port interface {
	manager() *platform.Manager
}
