//go:build js && wasm

package dom

import (
	"strings"
	"syscall/js"
)

// idProperty links a page node back to its BrowserNode.
const idProperty = "__weaveNode"

// Browser is a Host over the page document, through syscall/js.
type Browser struct {
	doc   js.Value
	nodes map[int]*BrowserNode
	next  int
	funcs map[listenerKey]js.Func
}

// BrowserNode is the handle of a page node. There is one per node, so
// handles compare like the nodes they stand for.
type BrowserNode struct {
	id int
	v  js.Value
}

func (n *BrowserNode) Value() js.Value { return n.v }

type listenerKey struct {
	node  *BrowserNode
	event string
	l     EventListener
}

// BrowserEvent is the Event handed to listeners registered on a Browser.
type BrowserEvent struct {
	v js.Value
}

func (e *BrowserEvent) Type() string { return e.v.Get("type").String() }
func (e *BrowserEvent) StopPropagation() { e.v.Call("stopPropagation") }
func (e *BrowserEvent) PreventDefault() { e.v.Call("preventDefault") }
func (e *BrowserEvent) Value() js.Value { return e.v }
func (e *BrowserEvent) Get(p string) js.Value { return e.v.Get(p) }

func NewBrowser() *Browser {
	return &Browser{
		doc:   js.Global().Get("document"),
		nodes: make(map[int]*BrowserNode),
		funcs: make(map[listenerKey]js.Func),
	}
}

// GetElementByID returns nil when there is no such element.
func (b *Browser) GetElementByID(id string) Node {
	return b.wrap(b.doc.Call("getElementById", id))
}

func (b *Browser) Body() Node {
	return b.wrap(b.doc.Get("body"))
}

func (b *Browser) wrap(v js.Value) Node {
	if v.IsNull() || v.IsUndefined() {
		return nil
	}

	if id := v.Get(idProperty); id.Type() == js.TypeNumber {
		if n, ok := b.nodes[id.Int()]; ok {
			return n
		}
	}

	b.next++
	n := &BrowserNode{id: b.next, v: v}
	v.Set(idProperty, n.id)
	b.nodes[n.id] = n
	return n
}

func val(n Node) js.Value {
	if n == nil {
		return js.Null()
	}
	return n.(*BrowserNode).v
}

func optString(v js.Value) string {
	if v.IsNull() || v.IsUndefined() {
		return ""
	}
	return v.String()
}

func (b *Browser) CreateText(text string) Node {
	return b.wrap(b.doc.Call("createTextNode", text))
}

func (b *Browser) CreateElement(tag string) Node {
	return b.wrap(b.doc.Call("createElement", tag))
}

func (b *Browser) CreateElementNS(namespace, tag string) Node {
	return b.wrap(b.doc.Call("createElementNS", namespace, tag))
}

func (b *Browser) NodeType(n Node) NodeType {
	switch val(n).Get("nodeType").Int() {
	case 1:
		return ElementNode
	case 3:
		return TextNode
	case 8:
		return CommentNode
	}
	return 0
}

func (b *Browser) LocalName(n Node) string {
	if b.NodeType(n) != ElementNode {
		return ""
	}
	return strings.ToLower(val(n).Get("localName").String())
}

func (b *Browser) Namespace(n Node) string {
	return optString(val(n).Get("namespaceURI"))
}

func (b *Browser) Text(n Node) string {
	return optString(val(n).Get("textContent"))
}

func (b *Browser) SetText(n Node, text string) {
	val(n).Set("textContent", text)
}

func (b *Browser) Attributes(n Node) []Attr {
	list := val(n).Get("attributes")
	attrs := make([]Attr, 0, list.Length())
	for i := range list.Length() {
		a := list.Index(i)
		attrs = append(attrs, Attr{
			Name:      a.Get("name").String(),
			Value:     a.Get("value").String(),
			Namespace: optString(a.Get("namespaceURI")),
		})
	}
	return attrs
}

func (b *Browser) HasAttribute(n Node, name string) bool {
	return val(n).Call("hasAttribute", name).Bool()
}

func (b *Browser) SetAttribute(n Node, name, value string) {
	val(n).Call("setAttribute", name, value)
}

func (b *Browser) RemoveAttribute(n Node, name string) {
	val(n).Call("removeAttribute", name)
}

func (b *Browser) SetAttributeNS(n Node, namespace, name, value string) {
	val(n).Call("setAttributeNS", namespace, name, value)
}

// RemoveAttributeNS accepts prefixed names like xlink:href.
func (b *Browser) RemoveAttributeNS(n Node, namespace, name string) {
	if i := strings.IndexByte(name, ':'); i >= 0 {
		name = name[i+1:]
	}
	val(n).Call("removeAttributeNS", namespace, name)
}

func (b *Browser) SetStyle(n Node, name, value string) {
	val(n).Get("style").Call("setProperty", name, value)
}

func (b *Browser) RemoveStyle(n Node, name string) {
	val(n).Get("style").Call("removeProperty", name)
}

func (b *Browser) Property(n Node, name string) (any, bool) {
	p := val(n).Get(name)
	switch p.Type() {
	case js.TypeUndefined:
		return nil, false
	case js.TypeNull:
		return nil, true
	case js.TypeBoolean:
		return p.Bool(), true
	case js.TypeNumber:
		return p.Float(), true
	case js.TypeString:
		return p.String(), true
	}
	return p, true
}

func (b *Browser) SetProperty(n Node, name string, value any) {
	val(n).Set(name, value)
}

func (b *Browser) DeleteProperty(n Node, name string) {
	val(n).Delete(name)
}

func (b *Browser) AddEventListener(n Node, event string, l EventListener, passive bool) {
	node := n.(*BrowserNode)
	key := listenerKey{node, event, l}
	if _, ok := b.funcs[key]; ok {
		return
	}

	fn := js.FuncOf(func(_ js.Value, args []js.Value) any {
		l.HandleEvent(&BrowserEvent{v: args[0]})
		return nil
	})
	b.funcs[key] = fn

	if passive {
		node.v.Call("addEventListener", event, fn, map[string]any{"passive": true})
		return
	}
	node.v.Call("addEventListener", event, fn)
}

func (b *Browser) RemoveEventListener(n Node, event string, l EventListener) {
	node := n.(*BrowserNode)
	key := listenerKey{node, event, l}
	fn, ok := b.funcs[key]
	if !ok {
		return
	}

	node.v.Call("removeEventListener", event, fn)
	fn.Release()
	delete(b.funcs, key)
}

func (b *Browser) Parent(n Node) Node { return b.wrap(val(n).Get("parentNode")) }

func (b *Browser) FirstChild(n Node) Node { return b.wrap(val(n).Get("firstChild")) }

func (b *Browser) NextSibling(n Node) Node { return b.wrap(val(n).Get("nextSibling")) }

func (b *Browser) PreviousSibling(n Node) Node { return b.wrap(val(n).Get("previousSibling")) }

func (b *Browser) ChildNodes(n Node) []Node {
	list := val(n).Get("childNodes")
	kids := make([]Node, 0, list.Length())
	for i := range list.Length() {
		kids = append(kids, b.wrap(list.Index(i)))
	}
	return kids
}

func (b *Browser) AppendChild(parent, child Node) {
	val(parent).Call("appendChild", val(child))
}

func (b *Browser) InsertBefore(parent, child, ref Node) {
	val(parent).Call("insertBefore", val(child), val(ref))
}

func (b *Browser) ReplaceChild(parent, newChild, oldChild Node) {
	val(parent).Call("replaceChild", val(newChild), val(oldChild))
}

func (b *Browser) RemoveChild(parent, child Node) {
	val(parent).Call("removeChild", val(child))
}

// MoveBefore falls back to insertBefore on pages without moveBefore.
func (b *Browser) MoveBefore(parent, child, ref Node) {
	p := val(parent)
	if p.Get("moveBefore").Type() != js.TypeFunction {
		b.InsertBefore(parent, child, ref)
		return
	}
	p.Call("moveBefore", val(child), val(ref))
}
