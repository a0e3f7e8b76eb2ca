package dom

import (
	"fmt"
	"html"
	"maps"
	"slices"
	"strings"
)

type OpKind int

const (
	OpCreateText OpKind = iota + 1
	OpCreateElement
	OpSetText
	OpSetAttribute
	OpRemoveAttribute
	OpSetStyle
	OpRemoveStyle
	OpSetProperty
	OpDeleteProperty
	OpAddListener
	OpRemoveListener
	OpAppend
	OpInsert
	OpMove
	OpReplace
	OpRemove
)

var opNames = map[OpKind]string{
	OpCreateText:      "create-text",
	OpCreateElement:   "create-element",
	OpSetText:         "set-text",
	OpSetAttribute:    "set-attribute",
	OpRemoveAttribute: "remove-attribute",
	OpSetStyle:        "set-style",
	OpRemoveStyle:     "remove-style",
	OpSetProperty:     "set-property",
	OpDeleteProperty:  "delete-property",
	OpAddListener:     "add-listener",
	OpRemoveListener:  "remove-listener",
	OpAppend:          "append",
	OpInsert:          "insert",
	OpMove:            "move",
	OpReplace:         "replace",
	OpRemove:          "remove",
}

func (k OpKind) String() string {
	if s, ok := opNames[k]; ok {
		return s
	}
	return fmt.Sprintf("op(%d)", int(k))
}

// Op is one recorded mutation of a Memory host.
type Op struct {
	Kind   OpKind
	Node   *MemNode
	Detail string
}

func (o Op) String() string {
	if o.Detail == "" {
		return fmt.Sprintf("%s %s", o.Kind, o.Node.label())
	}
	return fmt.Sprintf("%s %s %s", o.Kind, o.Node.label(), o.Detail)
}

// MemNode is a node of the Memory host.
type MemNode struct {
	typ   NodeType
	tag   string
	ns    string
	text  string
	attrs []Attr

	styles    map[string]string
	props     map[string]any
	listeners map[string][]memListener

	parent   *MemNode
	children []*MemNode
}

type memListener struct {
	l       EventListener
	passive bool
}

func (n *MemNode) label() string {
	if n == nil {
		return "<nil>"
	}
	switch n.typ {
	case TextNode:
		return fmt.Sprintf("#text(%q)", n.text)
	case CommentNode:
		return fmt.Sprintf("#comment(%q)", n.text)
	}
	for _, a := range n.attrs {
		if a.Name == "id" {
			return n.tag + "#" + a.Value
		}
	}
	return n.tag
}

// Memory is an in-memory Host. Every mutation is appended to an operation
// log which tests inspect through Ops and Count.
type Memory struct {
	ops []Op
}

func NewMemory() *Memory {
	return &Memory{}
}

// MovingMemory is a Memory that also supports MoveBefore.
type MovingMemory struct {
	*Memory
}

func NewMovingMemory() *MovingMemory {
	return &MovingMemory{Memory: NewMemory()}
}

func (m *MovingMemory) MoveBefore(parent, child, ref Node) {
	p, c := asMem(parent), asMem(child)
	m.record(OpMove, c, "before "+asMem(ref).label())
	p.insert(c, asMem(ref))
}

var (
	_ Host  = (*Memory)(nil)
	_ Mover = (*MovingMemory)(nil)
)

func asMem(n Node) *MemNode {
	if n == nil {
		return nil
	}
	return n.(*MemNode)
}

func wrap(n *MemNode) Node {
	if n == nil {
		return nil
	}
	return n
}

func (m *Memory) record(kind OpKind, n *MemNode, detail string) {
	m.ops = append(m.ops, Op{Kind: kind, Node: n, Detail: detail})
}

// Ops returns the recorded operations since the last ResetOps.
func (m *Memory) Ops() []Op { return slices.Clone(m.ops) }

func (m *Memory) ResetOps() { m.ops = m.ops[:0] }

// Count returns how many recorded operations have one of the given kinds.
func (m *Memory) Count(kinds ...OpKind) int {
	count := 0
	for _, op := range m.ops {
		if slices.Contains(kinds, op.Kind) {
			count++
		}
	}
	return count
}

func (m *Memory) CreateText(text string) Node {
	n := &MemNode{typ: TextNode, text: text}
	m.record(OpCreateText, n, "")
	return n
}

func (m *Memory) CreateElement(tag string) Node {
	return m.CreateElementNS("", tag)
}

func (m *Memory) CreateElementNS(namespace, tag string) Node {
	if namespace == "" {
		namespace = XHTMLNamespace
	}
	n := &MemNode{
		typ:    ElementNode,
		tag:    strings.ToLower(tag),
		ns:     namespace,
		styles: map[string]string{},
		props:  map[string]any{},
	}
	m.record(OpCreateElement, n, "")
	return n
}

// CreateComment is not part of Host; the reconciler never creates comments.
func (m *Memory) CreateComment(text string) Node {
	return &MemNode{typ: CommentNode, text: text}
}

func (m *Memory) NodeType(n Node) NodeType { return asMem(n).typ }

func (m *Memory) LocalName(n Node) string {
	if mn := asMem(n); mn.typ == ElementNode {
		return mn.tag
	}
	return ""
}

func (m *Memory) Namespace(n Node) string { return asMem(n).ns }

func (m *Memory) Text(n Node) string {
	mn := asMem(n)
	if mn.typ != ElementNode {
		return mn.text
	}
	var b strings.Builder
	mn.writeText(&b)
	return b.String()
}

func (n *MemNode) writeText(b *strings.Builder) {
	for _, c := range n.children {
		switch c.typ {
		case TextNode:
			b.WriteString(c.text)
		case ElementNode:
			c.writeText(b)
		}
	}
}

func (m *Memory) SetText(n Node, text string) {
	mn := asMem(n)
	m.record(OpSetText, mn, fmt.Sprintf("%q", text))
	mn.text = text
}

func (m *Memory) Attributes(n Node) []Attr { return slices.Clone(asMem(n).attrs) }

func (m *Memory) HasAttribute(n Node, name string) bool {
	return asMem(n).attrIndex("", name) >= 0
}

func (n *MemNode) attrIndex(namespace, name string) int {
	for i, a := range n.attrs {
		if a.Name == name && a.Namespace == namespace {
			return i
		}
	}
	return -1
}

func (m *Memory) SetAttribute(n Node, name, value string) {
	m.SetAttributeNS(n, "", name, value)
}

func (m *Memory) RemoveAttribute(n Node, name string) {
	m.RemoveAttributeNS(n, "", name)
}

func (m *Memory) SetAttributeNS(n Node, namespace, name, value string) {
	mn := asMem(n)
	m.record(OpSetAttribute, mn, fmt.Sprintf("%s=%q", name, value))
	if i := mn.attrIndex(namespace, name); i >= 0 {
		mn.attrs[i].Value = value
		return
	}
	mn.attrs = append(mn.attrs, Attr{Name: name, Value: value, Namespace: namespace})
}

func (m *Memory) RemoveAttributeNS(n Node, namespace, name string) {
	mn := asMem(n)
	m.record(OpRemoveAttribute, mn, name)
	if i := mn.attrIndex(namespace, name); i >= 0 {
		mn.attrs = slices.Delete(mn.attrs, i, i+1)
	}
}

func (m *Memory) SetStyle(n Node, name, value string) {
	mn := asMem(n)
	m.record(OpSetStyle, mn, fmt.Sprintf("%s: %s", name, value))
	mn.styles[name] = value
}

func (m *Memory) RemoveStyle(n Node, name string) {
	mn := asMem(n)
	m.record(OpRemoveStyle, mn, name)
	delete(mn.styles, name)
}

// Style returns the current inline style value.
func (m *Memory) Style(n Node, name string) (string, bool) {
	v, ok := asMem(n).styles[name]
	return v, ok
}

func (m *Memory) Property(n Node, name string) (any, bool) {
	v, ok := asMem(n).props[name]
	return v, ok
}

func (m *Memory) SetProperty(n Node, name string, value any) {
	mn := asMem(n)
	m.record(OpSetProperty, mn, fmt.Sprintf("%s=%v", name, value))
	mn.props[name] = value
}

func (m *Memory) DeleteProperty(n Node, name string) {
	mn := asMem(n)
	m.record(OpDeleteProperty, mn, name)
	delete(mn.props, name)
}

func (m *Memory) AddEventListener(n Node, event string, l EventListener, passive bool) {
	mn := asMem(n)
	m.record(OpAddListener, mn, event)
	if mn.listeners == nil {
		mn.listeners = map[string][]memListener{}
	}
	mn.listeners[event] = append(mn.listeners[event], memListener{l: l, passive: passive})
}

func (m *Memory) RemoveEventListener(n Node, event string, l EventListener) {
	mn := asMem(n)
	m.record(OpRemoveListener, mn, event)
	mn.listeners[event] = slices.DeleteFunc(mn.listeners[event], func(ml memListener) bool {
		return ml.l == l
	})
}

// Listeners returns how many listeners are registered for event on n.
func (m *Memory) Listeners(n Node, event string) int {
	return len(asMem(n).listeners[event])
}

// Passive reports whether the first listener for event on n is passive.
func (m *Memory) Passive(n Node, event string) bool {
	ls := asMem(n).listeners[event]
	return len(ls) > 0 && ls[0].passive
}

func (m *Memory) Parent(n Node) Node { return wrap(asMem(n).parent) }

func (m *Memory) FirstChild(n Node) Node {
	mn := asMem(n)
	if len(mn.children) == 0 {
		return nil
	}
	return mn.children[0]
}

func (m *Memory) NextSibling(n Node) Node {
	mn := asMem(n)
	if mn.parent == nil {
		return nil
	}
	i := mn.parent.indexOf(mn)
	if i+1 >= len(mn.parent.children) {
		return nil
	}
	return mn.parent.children[i+1]
}

func (m *Memory) PreviousSibling(n Node) Node {
	mn := asMem(n)
	if mn.parent == nil {
		return nil
	}
	i := mn.parent.indexOf(mn)
	if i <= 0 {
		return nil
	}
	return mn.parent.children[i-1]
}

func (m *Memory) ChildNodes(n Node) []Node {
	mn := asMem(n)
	out := make([]Node, len(mn.children))
	for i, c := range mn.children {
		out[i] = c
	}
	return out
}

func (n *MemNode) indexOf(child *MemNode) int {
	return slices.Index(n.children, child)
}

func (n *MemNode) detach() {
	if n.parent == nil {
		return
	}
	p := n.parent
	p.children = slices.Delete(p.children, p.indexOf(n), p.indexOf(n)+1)
	n.parent = nil
}

func (n *MemNode) insert(child, ref *MemNode) {
	if child == ref {
		return
	}
	child.detach()
	child.parent = n
	if ref == nil || ref.parent != n {
		n.children = append(n.children, child)
		return
	}
	n.children = slices.Insert(n.children, n.indexOf(ref), child)
}

func (m *Memory) AppendChild(parent, child Node) {
	p, c := asMem(parent), asMem(child)
	m.record(OpAppend, c, "to "+p.label())
	p.insert(c, nil)
}

func (m *Memory) InsertBefore(parent, child, ref Node) {
	p, c, r := asMem(parent), asMem(child), asMem(ref)
	if r != nil && r.parent != p {
		panic(fmt.Sprintf("dom: insert reference %s is not a child of %s", r.label(), p.label()))
	}
	m.record(OpInsert, c, "before "+r.label())
	p.insert(c, r)
}

func (m *Memory) ReplaceChild(parent, newChild, oldChild Node) {
	p, nc, oc := asMem(parent), asMem(newChild), asMem(oldChild)
	if oc.parent != p {
		panic(fmt.Sprintf("dom: replaced node %s is not a child of %s", oc.label(), p.label()))
	}
	m.record(OpReplace, nc, "for "+oc.label())
	nc.detach()
	i := p.indexOf(oc)
	p.children[i] = nc
	nc.parent = p
	oc.parent = nil
}

func (m *Memory) RemoveChild(parent, child Node) {
	p, c := asMem(parent), asMem(child)
	if c.parent != p {
		panic(fmt.Sprintf("dom: removed node %s is not a child of %s", c.label(), p.label()))
	}
	m.record(OpRemove, c, "from "+p.label())
	c.detach()
}

// Detach removes n from its parent without recording an operation, the way
// a third-party script would.
func (m *Memory) Detach(n Node) { asMem(n).detach() }

// Adopt appends child to parent without recording an operation.
func (m *Memory) Adopt(parent, child Node) { asMem(parent).insert(asMem(child), nil) }

// MemEvent is the Event implementation used with Memory.Dispatch.
type MemEvent struct {
	Name    string
	Payload any

	stopped   bool
	prevented bool
}

func (e *MemEvent) Type() string           { return e.Name }
func (e *MemEvent) StopPropagation()       { e.stopped = true }
func (e *MemEvent) PreventDefault()        { e.prevented = true }
func (e *MemEvent) Stopped() bool          { return e.stopped }
func (e *MemEvent) DefaultPrevented() bool { return e.prevented }

// Dispatch delivers e to target and bubbles it up the ancestors until a
// listener stops propagation.
func (m *Memory) Dispatch(target Node, e *MemEvent) {
	for n := asMem(target); n != nil; n = n.parent {
		for _, ml := range slices.Clone(n.listeners[e.Name]) {
			ml.l.HandleEvent(e)
		}
		if e.stopped {
			return
		}
	}
}

// HTML serializes n. Attributes keep insertion order, styles are sorted.
func (m *Memory) HTML(n Node) string {
	var b strings.Builder
	asMem(n).writeHTML(&b)
	return b.String()
}

func (n *MemNode) writeHTML(b *strings.Builder) {
	switch n.typ {
	case TextNode:
		b.WriteString(html.EscapeString(n.text))
		return
	case CommentNode:
		b.WriteString("<!--" + n.text + "-->")
		return
	}
	b.WriteString("<" + n.tag)
	for _, a := range n.attrs {
		fmt.Fprintf(b, " %s=\"%s\"", a.Name, html.EscapeString(a.Value))
	}
	if len(n.styles) > 0 {
		var parts []string
		for _, k := range slices.Sorted(maps.Keys(n.styles)) {
			parts = append(parts, k+": "+n.styles[k])
		}
		fmt.Fprintf(b, " style=\"%s\"", strings.Join(parts, "; "))
	}
	b.WriteString(">")
	for _, c := range n.children {
		c.writeHTML(b)
	}
	b.WriteString("</" + n.tag + ">")
}
