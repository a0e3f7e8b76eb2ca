package vdom

import (
	"strings"

	"github.com/AnatoleLucet/weave/internal/dom"
)

// MarkerAttribute marks elements rendered by us in server generated markup.
// Unmarked children are left alone by Virtualize.
const MarkerAttribute = "data-weave"

// boolean properties whose attribute name differs only by case
var camelCaseBoolProperties = map[string]string{
	"novalidate": "noValidate",
	"readonly":   "readOnly",
	"ismap":      "isMap",
}

// Virtualize builds a virtual tree describing existing markup, bound to the
// live nodes, so that the first DiffAndPatch only touches what differs.
// Nodes that cannot be described (comments) are treated as an empty text.
func (r *Renderer) Virtualize(live dom.Node) Node {
	if node := r.virtualize(live); node != nil {
		return node
	}

	node := NewText("")
	r.bind(node, live)
	return node
}

func (r *Renderer) bind(node Node, live dom.Node) {
	inst := r.wrap(node)
	inst.newNodes = append(inst.newNodes, live)
}

func (r *Renderer) virtualize(live dom.Node) Node {
	switch r.host.NodeType(live) {
	case dom.TextNode:
		node := NewText(r.host.Text(live))
		r.bind(node, live)
		return node

	case dom.ElementNode:

	default:
		return nil
	}

	tag := r.host.LocalName(live)
	var facts []Fact

	for _, attr := range r.host.Attributes(live) {
		facts = append(facts, r.virtualizeAttr(live, attr)...)
	}

	namespace := r.host.Namespace(live)
	if namespace == dom.XHTMLNamespace {
		namespace = ""
	}

	var kids []Node

	// Typing into a textarea changes its value, not its text.
	if tag == "textarea" {
		value, ok := r.host.Property(live, "value")
		if !ok {
			value = r.host.Text(live)
		}
		facts = append(facts, Property("value", value))
	} else {
		for _, child := range r.host.ChildNodes(live) {
			if r.host.NodeType(child) == dom.ElementNode && !r.host.HasAttribute(child, MarkerAttribute) {
				continue
			}
			if kid := r.virtualize(child); kid != nil {
				kids = append(kids, kid)
			}
		}
	}

	node := NewElementNS(namespace, tag, facts, kids)
	r.bind(node, live)
	return node
}

func (r *Renderer) virtualizeAttr(live dom.Node, attr dom.Attr) []Fact {
	if attr.Name == "style" {
		var styles []Fact
		for _, part := range strings.Split(attr.Value, ";") {
			name, value, ok := strings.Cut(part, ":")
			if !ok {
				continue
			}
			styles = append(styles, Style(strings.TrimSpace(name), strings.TrimSpace(value)))
		}
		return styles
	}

	if attr.Name == "value" {
		return []Fact{Property(attr.Name, attr.Value)}
	}

	property := attr.Name
	if camel, ok := camelCaseBoolProperties[attr.Name]; ok {
		property = camel
	}
	if v, ok := r.host.Property(live, property); ok && attr.Name != "spellcheck" {
		if b, ok := v.(bool); ok {
			return []Fact{Property(property, b)}
		}
	}

	if attr.Namespace != "" {
		return []Fact{AttributeNS(attr.Namespace, attr.Name, attr.Value)}
	}
	return []Fact{Attribute(attr.Name, attr.Value)}
}
