package vdom

import (
	"github.com/AnatoleLucet/weave/internal/dom"
)

// recoverTranslation is run on an element after one of its text children was
// found rewritten by a third party (typically a page translator). We cannot
// tell which node replaced ours, so every text child is rendered again and
// stray text nodes and font elements between our children are dropped.
func (r *Renderer) recoverTranslation(live dom.Node, kids []Node, dispatch Dispatcher) {
	if !r.everTranslated {
		r.logger.Info().Str("tag", r.host.LocalName(live)).Log("translated text detected")
	}
	r.everTranslated = true

	children := r.host.ChildNodes(live)
	j := len(children) - 1
	var current dom.Node

	for i := len(kids) - 1; i >= 0; i-- {
		// a fresh text node, or the existing live node of an element
		child := r.renderTranslated(kids[i], dispatch)

		if r.host.Parent(child) != live {
			r.insertBefore(live, child, current)
			current = child
			continue
		}

		for ; j >= 0; j-- {
			c := children[j]
			if c == child {
				current = c
				j--
				break
			}
			if r.stray(c) {
				r.host.RemoveChild(live, c)
				continue
			}
			current = c
		}
	}

	for ; j >= 0; j-- {
		if c := children[j]; r.stray(c) {
			r.host.RemoveChild(live, c)
		}
	}
}

func (r *Renderer) stray(n dom.Node) bool {
	return r.host.NodeType(n) == dom.TextNode || r.host.LocalName(n) == "font"
}
