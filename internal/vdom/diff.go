package vdom

import (
	"fmt"

	"github.com/AnatoleLucet/weave/internal/dom"
)

type diffResult struct {
	node dom.Node
	// a text node was found rewritten by someone else
	translated bool
	// node is not attached anymore and the caller must insert it
	reinsert bool
}

func unknownNode(n Node) string {
	return fmt.Sprintf("vdom: unknown node type %T", n)
}

func (r *Renderer) diff(x, y Node, dispatch Dispatcher) diffResult {
	if x == y {
		return diffResult{node: r.quickVisit(x, y, dispatch)}
	}

	// Old taggers are skipped. New ones wrap the dispatcher.
	for {
		t, ok := x.(*Tagger)
		if !ok {
			break
		}
		x = t.node
	}

	if t, ok := y.(*Tagger); ok {
		return r.diff(x, t.node, dispatch.mapped(t.tagger))
	}

	if xt, ok := x.(*Thunk); ok {
		if yt, ok := y.(*Thunk); ok {
			if sameRefs(xt.refs, yt.refs) {
				yt.node = xt.node
				return diffResult{node: r.quickVisit(xt, yt, dispatch)}
			}
			yt.node = yt.build()
			return r.diff(xt.node, yt.node, dispatch)
		}
		return r.diff(xt.node, y, dispatch)
	}

	if yt, ok := y.(*Thunk); ok {
		return r.diff(x, yt.force(), dispatch)
	}

	live := r.consume(x, y)

	switch xn := x.(type) {
	case *Text:
		if yn, ok := y.(*Text); ok {
			return r.diffText(live, xn, yn)
		}

	case *Element:
		switch yn := y.(type) {
		case *Element:
			return r.diffNodes(live, xn, yn, dispatch)
		case *KeyedElement:
			return r.diffNodes(live, xn, r.aliasDekeyed(yn), dispatch)
		}

	case *KeyedElement:
		switch yn := y.(type) {
		case *KeyedElement:
			return r.diffKeyedNodes(live, xn, yn, dispatch)
		case *Element:
			return r.diffNodes(live, r.aliasDekeyed(xn), yn, dispatch)
		}

	case *Custom:
		if yn, ok := y.(*Custom); ok {
			return r.diffCustom(live, xn, yn, dispatch)
		}
	}

	return r.redraw(x, y, dispatch)
}

// aliasDekeyed returns a plain view of e sharing e's instance.
func (r *Renderer) aliasDekeyed(e *KeyedElement) *Element {
	plain := dekey(e)
	r.instances[plain] = r.wrap(e)
	return plain
}

func sameRefs(xs, ys []any) bool {
	if len(xs) != len(ys) {
		return false
	}
	for i := range xs {
		if !sameValue(xs[i], ys[i]) {
			return false
		}
	}
	return true
}

func (r *Renderer) diffText(live dom.Node, x, y *Text) diffResult {
	if x.text == y.text {
		return diffResult{node: live}
	}

	parent := r.host.Parent(live)
	if parent == nil || r.host.Text(live) != x.text {
		return diffResult{node: live, translated: true}
	}

	if r.everTranslated && !r.noTranslation {
		fresh := r.host.CreateText(y.text)
		inst := r.wrap(y)
		inst.newNodes[len(inst.newNodes)-1] = fresh
		r.host.ReplaceChild(parent, fresh, live)
		return diffResult{node: fresh}
	}

	r.host.SetText(live, y.text)
	return diffResult{node: live}
}

func (r *Renderer) diffNodes(live dom.Node, x, y *Element, dispatch Dispatcher) diffResult {
	if x.tag != y.tag || x.namespace != y.namespace {
		return r.redraw(x, y, dispatch)
	}

	r.applyFacts(live, dispatch, x.facts, y.facts)

	if r.diffKids(live, x.kids, y.kids, dispatch) {
		r.recoverTranslation(live, y.kids, dispatch)
	}

	return diffResult{node: live}
}

func (r *Renderer) diffKeyedNodes(live dom.Node, x, y *KeyedElement, dispatch Dispatcher) diffResult {
	if x.tag != y.tag || x.namespace != y.namespace {
		return r.redraw(x, y, dispatch)
	}

	r.applyFacts(live, dispatch, x.facts, y.facts)

	if r.diffKeyedKids(live, x, y, dispatch) {
		kids := make([]Node, len(y.kids))
		for i, kid := range y.kids {
			kids[i] = kid.Node
		}
		r.recoverTranslation(live, kids, dispatch)
	}

	return diffResult{node: live}
}

func (r *Renderer) diffCustom(live dom.Node, x, y *Custom, dispatch Dispatcher) diffResult {
	if !sameValue(x.kind, y.kind) {
		return r.redraw(x, y, dispatch)
	}

	r.applyFacts(live, dispatch, x.facts, y.facts)

	if y.diff != nil {
		if patch := y.diff(x.model, y.model); patch != nil {
			patch(r.host, live)
		}
	}

	return diffResult{node: live}
}

// redraw replaces the live node of x with a fresh rendering of y. It is
// called after consume, which is undone first.
func (r *Renderer) redraw(x, y Node, dispatch Dispatcher) diffResult {
	r.wrap(x).i--
	r.removeVisit(x, false)

	yi := r.wrap(y)
	live := yi.newNodes[len(yi.newNodes)-1]
	yi.newNodes = yi.newNodes[:len(yi.newNodes)-1]

	parent := r.host.Parent(live)
	isText := r.host.NodeType(live) == dom.TextNode
	fresh := r.render(y, dispatch)

	if parent == nil {
		r.logger.Warning().Str("tag", describe(y)).Log("redrawn node was detached, reinserting")
		return diffResult{node: fresh, translated: isText, reinsert: true}
	}

	r.host.ReplaceChild(parent, fresh, live)

	translated := false
	if xt, ok := x.(*Text); ok && isText {
		translated = r.host.Text(live) != xt.text
	}

	return diffResult{node: fresh, translated: translated}
}

func describe(n Node) string {
	switch n := n.(type) {
	case *Text:
		return "#text"
	case *Element:
		return n.tag
	case *KeyedElement:
		return n.tag
	case *Custom:
		return "#custom"
	}
	return fmt.Sprintf("%T", n)
}

// quickVisit walks a subtree that did not change. Properties are asserted
// again, listeners get the current dispatcher and live nodes are handed
// over from x to y.
func (r *Renderer) quickVisit(x, y Node, dispatch Dispatcher) dom.Node {
	switch yn := y.(type) {
	case *Tagger:
		return r.quickVisit(x.(*Tagger).node, yn.node, dispatch.mapped(yn.tagger))
	case *Thunk:
		return r.quickVisit(x.(*Thunk).node, yn.node, dispatch)
	}

	live := r.consume(x, y)

	switch yn := y.(type) {
	case *Text:

	case *Element:
		r.applyProps(live, yn.facts.Props)
		r.lazyUpdateEvents(live, dispatch)
		xKids := x.(*Element).kids
		for i, kid := range yn.kids {
			r.quickVisit(xKids[i], kid, dispatch)
		}

	case *KeyedElement:
		r.applyProps(live, yn.facts.Props)
		r.lazyUpdateEvents(live, dispatch)
		xKids := x.(*KeyedElement).kids
		for i, kid := range yn.kids {
			r.quickVisit(xKids[i].Node, kid.Node, dispatch)
		}

	case *Custom:
		r.applyProps(live, yn.facts.Props)
		r.lazyUpdateEvents(live, dispatch)

	default:
		panic(unknownNode(y))
	}

	return live
}

// removeVisit releases the live nodes of a subtree that is going away. Only
// the root of the subtree is detached from the host.
func (r *Renderer) removeVisit(x Node, detach bool) {
	switch xn := x.(type) {
	case *Tagger:
		r.removeVisit(xn.node, detach)
		return
	case *Thunk:
		r.removeVisit(xn.node, detach)
		return
	}

	var live dom.Node
	xi := r.wrap(x)

	if xi.renderedAt == r.generation {
		live = xi.oldNodes[xi.i]
		xi.i++
		// the last use of a shared node releases its live nodes
		if xi.i >= len(xi.oldNodes) {
			xi.oldNodes = nil
			xi.i = 0
		}
	} else {
		live = xi.newNodes[0]
		if len(xi.newNodes) == 1 {
			xi.oldNodes = nil
			xi.i = 0
		} else {
			xi.oldNodes = xi.newNodes
			xi.i = 1
		}
		xi.newNodes = nil
		xi.renderedAt = r.generation
	}

	delete(r.callbacks, live)

	if detach {
		// someone else may have moved or removed it already
		if parent := r.host.Parent(live); parent != nil {
			r.host.RemoveChild(parent, live)
		}
	}

	switch xn := x.(type) {
	case *Element:
		for _, kid := range xn.kids {
			r.removeVisit(kid, false)
		}
	case *KeyedElement:
		for _, kid := range xn.kids {
			r.removeVisit(kid.Node, false)
		}
	}
}
