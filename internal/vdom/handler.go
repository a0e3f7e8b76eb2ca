package vdom

import (
	"fmt"

	"github.com/AnatoleLucet/weave/internal/dom"
)

type HandlerKind int

const (
	// Normal handlers decode to a message.
	Normal HandlerKind = iota
	// MayStopPropagation handlers decode to a Flagged whose flag stops propagation.
	MayStopPropagation
	// MayPreventDefault handlers decode to a Flagged whose flag prevents the default action.
	MayPreventDefault
	// Custom handlers decode to a Record.
	CustomHandler
)

func (k HandlerKind) String() string {
	switch k {
	case Normal:
		return "normal"
	case MayStopPropagation:
		return "may-stop-propagation"
	case MayPreventDefault:
		return "may-prevent-default"
	case CustomHandler:
		return "custom"
	}
	return fmt.Sprintf("handler(%d)", int(k))
}

// passive reports whether the listener can be registered as passive.
func (k HandlerKind) passive() bool { return k < MayPreventDefault }

// Decoder turns an event into the value expected by a handler kind.
type Decoder func(e dom.Event) (any, error)

type Handler struct {
	Kind   HandlerKind
	Decode Decoder
}

// Flagged is the decoded value of MayStopPropagation and MayPreventDefault handlers.
type Flagged struct {
	Message any
	Flag    bool
}

// Record is the decoded value of Custom handlers.
type Record struct {
	Message         any
	StopPropagation bool
	PreventDefault  bool
}

// DecodeError is reported when a handler cannot turn an event into a message.
// The event is dropped.
type DecodeError struct {
	Event string
	Kind  HandlerKind
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("vdom: decoding %q with %s handler: %v", e.Event, e.Kind, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Map returns a handler producing f(message) instead of message.
func (h Handler) Map(f func(any) any) Handler {
	decode := h.Decode

	return Handler{
		Kind: h.Kind,
		Decode: func(e dom.Event) (any, error) {
			v, err := decode(e)
			if err != nil {
				return nil, err
			}

			switch h.Kind {
			case Normal:
				return f(v), nil
			case MayStopPropagation, MayPreventDefault:
				flagged, ok := v.(Flagged)
				if !ok {
					return nil, fmt.Errorf("expected Flagged, got %T", v)
				}
				return Flagged{Message: f(flagged.Message), Flag: flagged.Flag}, nil
			case CustomHandler:
				record, ok := v.(Record)
				if !ok {
					return nil, fmt.Errorf("expected Record, got %T", v)
				}
				record.Message = f(record.Message)
				return record, nil
			}
			return nil, fmt.Errorf("unknown handler kind %d", h.Kind)
		},
	}
}

// Dispatcher receives messages produced by events. sync is true when the
// handler stopped propagation and the update should be drawn right away.
type Dispatcher func(msg any, sync bool)

func (d Dispatcher) mapped(tagger func(any) any) Dispatcher {
	return func(msg any, sync bool) {
		d(tagger(msg), sync)
	}
}

// callback is the listener registered on live nodes. The handler and the
// dispatcher are swapped in place when a node is patched.
type callback struct {
	r        *Renderer
	handler  Handler
	dispatch Dispatcher
}

func (c *callback) HandleEvent(e dom.Event) {
	msg, stop, prevent, err := c.decode(e)
	if err != nil {
		c.r.logger.Debug().Str("event", e.Type()).Err(err).Log("event dropped")
		return
	}

	if stop {
		e.StopPropagation()
	}
	if prevent {
		e.PreventDefault()
	}

	c.dispatch(msg, stop)
}

func (c *callback) decode(e dom.Event) (msg any, stop, prevent bool, err error) {
	fail := func(err error) (any, bool, bool, error) {
		return nil, false, false, &DecodeError{Event: e.Type(), Kind: c.handler.Kind, Err: err}
	}

	v, err := c.handler.Decode(e)
	if err != nil {
		return fail(err)
	}

	switch c.handler.Kind {
	case Normal:
		return v, false, false, nil
	case MayStopPropagation, MayPreventDefault:
		flagged, ok := v.(Flagged)
		if !ok {
			return fail(fmt.Errorf("expected Flagged, got %T", v))
		}
		if c.handler.Kind == MayStopPropagation {
			return flagged.Message, flagged.Flag, false, nil
		}
		return flagged.Message, false, flagged.Flag, nil
	case CustomHandler:
		record, ok := v.(Record)
		if !ok {
			return fail(fmt.Errorf("expected Record, got %T", v))
		}
		return record.Message, record.StopPropagation, record.PreventDefault, nil
	}
	return fail(fmt.Errorf("unknown handler kind %d", c.handler.Kind))
}
