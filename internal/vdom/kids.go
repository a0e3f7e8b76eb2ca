package vdom

import (
	"github.com/AnatoleLucet/weave/internal/dom"
)

// diffKids diffs children by position. It reports whether a translated text
// node was found.
func (r *Renderer) diffKids(parent dom.Node, xKids, yKids []Node, dispatch Dispatcher) bool {
	translated := false
	var previous dom.Node

	for i := range min(len(xKids), len(yKids)) {
		result := r.diff(xKids[i], yKids[i], dispatch)
		translated = translated || result.translated

		switch {
		case result.reinsert:
			r.insertAfter(parent, result.node, previous)
			previous = result.node
		// skip nodes moved elsewhere by someone else, the order of the rest
		// stays correct
		case r.host.Parent(result.node) == parent:
			previous = result.node
		}
	}

	for i := len(yKids); i < len(xKids); i++ {
		r.removeVisit(xKids[i], true)
	}

	for i := len(xKids); i < len(yKids); i++ {
		r.host.AppendChild(parent, r.render(yKids[i], dispatch))
	}

	return translated
}

// diffKeyedKids consumes matching keys from both ends, then tries to unstick
// them with a swap, and finally places the middle using the key maps.
func (r *Renderer) diffKeyedKids(parent dom.Node, xParent, yParent *KeyedElement, dispatch Dispatcher) bool {
	xKids, yKids := xParent.kids, yParent.kids
	xKeys, yKeys := xParent.keys, yParent.keys

	xLower, yLower := 0, 0
	xUpper, yUpper := len(xKids)-1, len(yKids)-1

	var lowerNode, upperNode dom.Node
	translated := false

	handle := func(result diffResult, upper bool) {
		translated = translated || result.translated

		if result.reinsert {
			if upper {
				r.insertBefore(parent, result.node, upperNode)
				upperNode = result.node
			} else {
				r.insertAfter(parent, result.node, lowerNode)
				lowerNode = result.node
			}
			return
		}

		if r.host.Parent(result.node) == parent {
			if upper {
				upperNode = result.node
			} else {
				lowerNode = result.node
			}
		}
	}

	for {
		for xLower <= xUpper && yLower <= yUpper {
			xKid, yKid := xKids[xLower], yKids[yLower]

			if xKid.Key == yKid.Key {
				result := r.diff(xKid.Node, yKid.Node, dispatch)
				xLower++
				yLower++
				handle(result, false)
				continue
			}

			_, xMoved := yKeys[xKid.Key]
			if !xMoved {
				r.removeVisit(xKid.Node, true)
				xLower++
			}

			if _, yExists := xKeys[yKid.Key]; yExists {
				if xMoved {
					break
				}
			} else {
				live := r.render(yKid.Node, dispatch)
				r.insertAfter(parent, live, lowerNode)
				yLower++
				lowerNode = live
			}
		}

		for xUpper > xLower && yUpper > yLower {
			xKid, yKid := xKids[xUpper], yKids[yUpper]

			if xKid.Key == yKid.Key {
				result := r.diff(xKid.Node, yKid.Node, dispatch)
				xUpper--
				yUpper--
				handle(result, true)
				continue
			}

			_, xMoved := yKeys[xKid.Key]
			if !xMoved {
				r.removeVisit(xKid.Node, true)
				xUpper--
			}

			if _, yExists := xKeys[yKid.Key]; yExists {
				if xMoved {
					break
				}
			} else {
				live := r.render(yKid.Node, dispatch)
				r.insertBefore(parent, live, upperNode)
				yUpper--
				upperNode = live
			}
		}

		swapped := false

		if xLower < xUpper && yLower < yUpper {
			xKidLower, yKidLower := xKids[xLower], yKids[yLower]
			xKidUpper, yKidUpper := xKids[xUpper], yKids[yUpper]

			if xKidLower.Key == yKidUpper.Key {
				result := r.diff(xKidLower.Node, yKidUpper.Node, dispatch)
				xLower++
				yUpper--
				r.moveBefore(parent, result.node, upperNode)
				handle(result, true)
				swapped = true
			}

			if xKidUpper.Key == yKidLower.Key {
				result := r.diff(xKidUpper.Node, yKidLower.Node, dispatch)
				yLower++
				xUpper--
				r.moveAfter(parent, result.node, lowerNode)
				handle(result, false)
				swapped = true
			}
		}

		if !swapped {
			break
		}
	}

	// The middle may get more moves than strictly needed.
	for ; yLower <= yUpper; yLower++ {
		yKid := yKids[yLower]

		if x, ok := xKeys[yKid.Key]; ok {
			result := r.diff(x, yKid.Node, dispatch)
			r.moveAfter(parent, result.node, lowerNode)
			handle(result, false)
			continue
		}

		live := r.render(yKid.Node, dispatch)
		r.insertAfter(parent, live, lowerNode)
		lowerNode = live
	}

	for ; xLower <= xUpper; xLower++ {
		xKid := xKids[xLower]
		if _, ok := yKeys[xKid.Key]; !ok {
			r.removeVisit(xKid.Node, true)
		}
	}

	return translated
}

func (r *Renderer) insertBefore(parent, child, ref dom.Node) {
	if r.host.Parent(child) == parent && r.host.NextSibling(child) == ref {
		return
	}
	r.host.InsertBefore(parent, child, ref)
}

func (r *Renderer) insertAfter(parent, child, ref dom.Node) {
	if r.host.Parent(child) == parent && r.host.PreviousSibling(child) == ref {
		return
	}
	r.host.InsertBefore(parent, child, r.after(parent, ref))
}

func (r *Renderer) moveBefore(parent, child, ref dom.Node) {
	if r.mover == nil {
		r.insertBefore(parent, child, ref)
		return
	}
	if r.host.Parent(child) == parent && r.host.NextSibling(child) == ref {
		return
	}
	r.mover.MoveBefore(parent, child, ref)
}

func (r *Renderer) moveAfter(parent, child, ref dom.Node) {
	if r.mover == nil {
		r.insertAfter(parent, child, ref)
		return
	}
	if r.host.Parent(child) == parent && r.host.PreviousSibling(child) == ref {
		return
	}
	r.mover.MoveBefore(parent, child, r.after(parent, ref))
}

// after is the node following ref, or the first child when ref is nil.
func (r *Renderer) after(parent, ref dom.Node) dom.Node {
	if ref == nil {
		return r.host.FirstChild(parent)
	}
	return r.host.NextSibling(ref)
}
