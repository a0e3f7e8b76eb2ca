package vdom

import (
	"github.com/joeycumines/logiface"

	"github.com/AnatoleLucet/weave/internal/dom"
)

// instance tracks the live nodes a virtual node was rendered to. A virtual
// node can be used several times in a tree, so it may have several.
type instance struct {
	// read from, using i, while diffing
	oldNodes []dom.Node
	// pushed to while diffing
	newNodes []dom.Node
	// generation in which the two lists were last rotated
	renderedAt int
	i          int
}

// Renderer renders and patches one tree of live nodes.
//
// Each Renderer has its own generation counter and instance table, so the
// same virtual nodes can be rendered by several renderers at once. A Renderer
// is not safe for concurrent use.
type Renderer struct {
	host   dom.Host
	mover  dom.Mover
	logger *logiface.Logger[logiface.Event]

	generation int
	instances  map[Node]*instance
	callbacks  map[dom.Node]map[string]*callback

	// set once a third party is seen rewriting our text nodes
	everTranslated bool
	// disables the translation workaround for hosts that never translate
	noTranslation bool
}

type RendererOption func(*Renderer)

func WithLogger(logger *logiface.Logger[logiface.Event]) RendererOption {
	return func(r *Renderer) {
		r.logger = logger
	}
}

// WithMoveBefore toggles the use of dom.Mover when the host implements it.
func WithMoveBefore(enabled bool) RendererOption {
	return func(r *Renderer) {
		if !enabled {
			r.mover = nil
			return
		}
		r.mover, _ = r.host.(dom.Mover)
	}
}

// WithoutTranslation keeps updating text nodes in place even after a
// translated text node was detected.
func WithoutTranslation() RendererOption {
	return func(r *Renderer) {
		r.noTranslation = true
	}
}

func NewRenderer(host dom.Host, opts ...RendererOption) *Renderer {
	r := &Renderer{
		host:      host,
		instances: make(map[Node]*instance),
		callbacks: make(map[dom.Node]map[string]*callback),
	}
	r.mover, _ = host.(dom.Mover)

	for _, opt := range opts {
		opt(r)
	}

	return r
}

func (r *Renderer) Host() dom.Host { return r.host }

// Generation is the number of patches applied so far.
func (r *Renderer) Generation() int { return r.generation }

// Translated reports whether a third party was ever seen rewriting text.
func (r *Renderer) Translated() bool { return r.everTranslated }

// Render creates a fresh live tree for node.
func (r *Renderer) Render(node Node, dispatch Dispatcher) dom.Node {
	return r.render(node, dispatch)
}

// DiffAndPatch updates the live tree rendered from prev so that it matches
// next, and returns the new live root. When prev is nil, root is virtualized
// first. Events fired on the tree afterwards go to dispatch.
func (r *Renderer) DiffAndPatch(root dom.Node, prev, next Node, dispatch Dispatcher) dom.Node {
	if prev == nil {
		prev = r.Virtualize(root)
	}

	r.generation++
	result := r.diff(prev, next, dispatch)
	r.sweep()

	r.logger.Debug().
		Int("generation", r.generation).
		Int("instances", len(r.instances)).
		Log("patched")

	return result.node
}

// wrap returns the instance of node, creating it on first use.
func (r *Renderer) wrap(node Node) *instance {
	inst, ok := r.instances[node]
	if !ok {
		inst = &instance{}
		r.instances[node] = inst
	}
	return inst
}

// sweep forgets nodes that were not touched by the last patch.
func (r *Renderer) sweep() {
	for node, inst := range r.instances {
		if inst.renderedAt < r.generation {
			delete(r.instances, node)
		}
	}
}

func (r *Renderer) storeNode(node Node, live dom.Node) {
	inst := r.wrap(node)
	if inst.renderedAt != r.generation {
		inst.oldNodes = inst.newNodes
		inst.newNodes = nil
		inst.i = 0
		inst.renderedAt = r.generation
	}
	inst.newNodes = append(inst.newNodes, live)
}

// consume takes the next live node of x and hands it over to y.
func (r *Renderer) consume(x, y Node) dom.Node {
	yi := r.wrap(y)
	if yi.renderedAt != r.generation {
		yi.oldNodes = yi.newNodes
		yi.newNodes = nil
		yi.i = 0
		yi.renderedAt = r.generation
	}

	xi := r.wrap(x)
	var live dom.Node
	if xi.renderedAt == r.generation {
		live = xi.oldNodes[xi.i]
		xi.i++
	} else {
		xi.oldNodes = xi.newNodes
		xi.newNodes = nil
		live = xi.oldNodes[0]
		xi.i = 1
		xi.renderedAt = r.generation
	}

	yi.newNodes = append(yi.newNodes, live)
	return live
}

func (r *Renderer) render(node Node, dispatch Dispatcher) dom.Node {
	switch n := node.(type) {
	case *Thunk:
		return r.render(n.force(), dispatch)

	case *Tagger:
		return r.render(n.node, dispatch.mapped(n.tagger))

	case *Text:
		live := r.host.CreateText(n.text)
		r.storeNode(n, live)
		return live

	case *Custom:
		live := n.render(r.host, n.model)
		r.applyFacts(live, dispatch, emptyFacts, n.facts)
		r.storeNode(n, live)
		return live

	case *Element:
		live := r.createElement(n.namespace, n.tag)
		r.applyFacts(live, dispatch, emptyFacts, n.facts)
		for _, kid := range n.kids {
			r.host.AppendChild(live, r.render(kid, dispatch))
		}
		r.storeNode(n, live)
		return live

	case *KeyedElement:
		live := r.createElement(n.namespace, n.tag)
		r.applyFacts(live, dispatch, emptyFacts, n.facts)
		for _, kid := range n.kids {
			r.host.AppendChild(live, r.render(kid.Node, dispatch))
		}
		r.storeNode(n, live)
		return live
	}

	panic(unknownNode(node))
}

func (r *Renderer) createElement(namespace, tag string) dom.Node {
	if namespace != "" {
		return r.host.CreateElementNS(namespace, tag)
	}
	return r.host.CreateElement(tag)
}

// renderTranslated returns the live node of an already diffed node, replacing
// text nodes with fresh ones.
func (r *Renderer) renderTranslated(node Node, dispatch Dispatcher) dom.Node {
	switch n := node.(type) {
	case *Thunk:
		return r.renderTranslated(n.force(), dispatch)
	case *Tagger:
		return r.renderTranslated(n.node, dispatch.mapped(n.tagger))
	}

	inst := r.wrap(node)
	last := len(inst.newNodes) - 1

	if t, ok := node.(*Text); ok {
		live := r.host.CreateText(t.text)
		inst.newNodes[last] = live
		return live
	}

	return inst.newNodes[last]
}
