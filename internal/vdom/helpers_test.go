package vdom

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/AnatoleLucet/weave/internal/dom"
)

func el(tag string, facts []Fact, kids ...Node) *Element {
	return NewElement(tag, facts, kids)
}

func txt(s string) *Text {
	return NewText(s)
}

func item(key string) Keyed {
	return Keyed{
		Key:  key,
		Node: el("li", []Fact{Attribute("id", key)}, txt(key)),
	}
}

func keyedList(keys ...string) *KeyedElement {
	kids := make([]Keyed, len(keys))
	for i, key := range keys {
		kids[i] = item(key)
	}
	return NewKeyedElement("ul", nil, kids)
}

func list(keys ...string) *Element {
	kids := make([]Node, len(keys))
	for i, key := range keys {
		kids[i] = el("li", []Fact{Attribute("id", key)}, txt(key))
	}
	return el("ul", nil, kids...)
}

func message(msg any) Handler {
	return Handler{
		Kind: Normal,
		Decode: func(dom.Event) (any, error) {
			return msg, nil
		},
	}
}

// recorder collects dispatched messages.
type recorder struct {
	log []string
}

func (r *recorder) dispatch(msg any, sync bool) {
	if sync {
		r.log = append(r.log, fmt.Sprintf("%v (sync)", msg))
		return
	}
	r.log = append(r.log, fmt.Sprint(msg))
}

// mount renders node inside a body element so redraws have a parent.
func mount(m *dom.Memory, r *Renderer, node Node, dispatch Dispatcher) (body, live dom.Node) {
	body = m.CreateElement("body")
	live = r.Render(node, dispatch)
	m.AppendChild(body, live)
	m.ResetOps()
	return body, live
}

func assertHTML(t *testing.T, m *dom.Memory, n dom.Node, want string) {
	t.Helper()
	if diff := cmp.Diff(want, m.HTML(n)); diff != "" {
		t.Errorf("html mismatch (-want +got):\n%s", diff)
	}
}

func opsOn(m *dom.Memory, n dom.Node, kinds ...dom.OpKind) []dom.Op {
	var ops []dom.Op
	for _, op := range m.Ops() {
		if dom.Node(op.Node) != n {
			continue
		}
		for _, k := range kinds {
			if op.Kind == k {
				ops = append(ops, op)
			}
		}
	}
	return ops
}
