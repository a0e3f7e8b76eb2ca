package weave

import (
	"github.com/AnatoleLucet/weave/internal/dom"
	"github.com/AnatoleLucet/weave/internal/vdom"
)

// Node is a virtual node producing messages of type Msg.
type Node[Msg any] struct {
	node vdom.Node
}

// Attr is a fact about an element: attribute, style, property or event
// handler.
type Attr[Msg any] struct {
	fact vdom.Fact
}

// Keyed is a child identified by a key, see KeyedEl.
type Keyed[Msg any] struct {
	Key  string
	Node Node[Msg]
}

func facts[Msg any](attrs []Attr[Msg]) []vdom.Fact {
	out := make([]vdom.Fact, len(attrs))
	for i, a := range attrs {
		out[i] = a.fact
	}
	return out
}

func nodes[Msg any](kids []Node[Msg]) []vdom.Node {
	out := make([]vdom.Node, len(kids))
	for i, k := range kids {
		out[i] = k.node
	}
	return out
}

func Text[Msg any](text string) Node[Msg] {
	return Node[Msg]{vdom.NewText(text)}
}

// El creates an element.
func El[Msg any](tag string, attrs []Attr[Msg], kids ...Node[Msg]) Node[Msg] {
	return Node[Msg]{vdom.NewElement(tag, facts(attrs), nodes(kids))}
}

// ElNS creates an element in namespace, like svg.
func ElNS[Msg any](namespace, tag string, attrs []Attr[Msg], kids ...Node[Msg]) Node[Msg] {
	return Node[Msg]{vdom.NewElementNS(namespace, tag, facts(attrs), nodes(kids))}
}

// KeyedEl creates an element whose children are matched by key when
// diffed, so that reordering them moves nodes instead of rewriting them.
func KeyedEl[Msg any](tag string, attrs []Attr[Msg], kids ...Keyed[Msg]) Node[Msg] {
	keyed := make([]vdom.Keyed, len(kids))
	for i, k := range kids {
		keyed[i] = vdom.Keyed{Key: k.Key, Node: k.Node.node}
	}
	return Node[Msg]{vdom.NewKeyedElement(tag, facts(attrs), keyed)}
}

// MapNode turns the messages of n into messages of another type.
func MapNode[A, B any](f func(A) B, n Node[A]) Node[B] {
	return Node[B]{vdom.Map(n.node, func(msg any) any {
		return f(as[A](msg))
	})}
}

// Lazy only calls view when arg changed since the last render.
func Lazy[Msg, A any](view func(A) Node[Msg], arg A) Node[Msg] {
	return Node[Msg]{vdom.Lazy(func() vdom.Node {
		return view(arg).node
	}, view, arg)}
}

// Lazy2 is Lazy with two arguments.
func Lazy2[Msg, A, B any](view func(A, B) Node[Msg], a A, b B) Node[Msg] {
	return Node[Msg]{vdom.Lazy(func() vdom.Node {
		return view(a, b).node
	}, view, a, b)}
}

// Custom renders model with render and updates it with diff. Its subtree is
// managed by the caller.
func Custom[Msg, Model any](attrs []Attr[Msg], model Model, render func(h Host, model Model) DOMNode, diff func(prev, next Model) func(h Host, n DOMNode)) Node[Msg] {
	return Node[Msg]{vdom.NewCustomKind(render, facts(attrs), model, func(h dom.Host, model any) dom.Node {
		return render(h, as[Model](model))
	}, func(prev, next any) vdom.Patch {
		patch := diff(as[Model](prev), as[Model](next))
		if patch == nil {
			return nil
		}
		return vdom.Patch(patch)
	})}
}

func Attribute[Msg any](name, value string) Attr[Msg] {
	return Attr[Msg]{vdom.Attribute(name, value)}
}

func AttributeNS[Msg any](namespace, name, value string) Attr[Msg] {
	return Attr[Msg]{vdom.AttributeNS(namespace, name, value)}
}

func Style[Msg any](name, value string) Attr[Msg] {
	return Attr[Msg]{vdom.Style(name, value)}
}

func Property[Msg any](name string, value any) Attr[Msg] {
	return Attr[Msg]{vdom.Property(name, value)}
}

// Class sets the class attribute. Several Class attributes add up.
func Class[Msg any](class string) Attr[Msg] {
	return Attribute[Msg]("class", class)
}

// On dispatches the message decode returns for every event. Events that
// fail to decode are dropped.
func On[Msg any](event string, decode func(Event) (Msg, error)) Attr[Msg] {
	return Attr[Msg]{vdom.On(event, vdom.Handler{
		Kind: vdom.Normal,
		Decode: func(e dom.Event) (any, error) {
			return decode(e)
		},
	})}
}

// OnMsg dispatches msg for every event.
func OnMsg[Msg any](event string, msg Msg) Attr[Msg] {
	return On(event, func(Event) (Msg, error) { return msg, nil })
}

// OnStop is On for handlers that may stop propagation. Stopping also draws
// the next view right away.
func OnStop[Msg any](event string, decode func(Event) (Msg, bool, error)) Attr[Msg] {
	return Attr[Msg]{vdom.On(event, vdom.Handler{
		Kind: vdom.MayStopPropagation,
		Decode: func(e dom.Event) (any, error) {
			msg, stop, err := decode(e)
			return vdom.Flagged{Message: msg, Flag: stop}, err
		},
	})}
}

// OnPrevent is On for handlers that may prevent the default action.
func OnPrevent[Msg any](event string, decode func(Event) (Msg, bool, error)) Attr[Msg] {
	return Attr[Msg]{vdom.On(event, vdom.Handler{
		Kind: vdom.MayPreventDefault,
		Decode: func(e dom.Event) (any, error) {
			msg, prevent, err := decode(e)
			return vdom.Flagged{Message: msg, Flag: prevent}, err
		},
	})}
}

// MapAttr turns the messages of a into messages of another type.
func MapAttr[A, B any](f func(A) B, a Attr[A]) Attr[B] {
	return Attr[B]{vdom.MapFact(func(msg any) any {
		return f(as[A](msg))
	}, a.fact)}
}

// OnCustom is On for handlers deciding both propagation and default action.
func OnCustom[Msg any](event string, decode func(Event) (msg Msg, stop, prevent bool, err error)) Attr[Msg] {
	return Attr[Msg]{vdom.On(event, vdom.Handler{
		Kind: vdom.CustomHandler,
		Decode: func(e dom.Event) (any, error) {
			msg, stop, prevent, err := decode(e)
			return vdom.Record{Message: msg, StopPropagation: stop, PreventDefault: prevent}, err
		},
	})}
}
