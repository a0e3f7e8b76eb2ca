package dom

// Node is an opaque handle to a live node owned by a Host.
// Handles must be comparable; two handles are the same node iff they are ==.
type Node any

type NodeType int

const (
	ElementNode NodeType = iota + 1
	TextNode
	CommentNode
)

// XHTMLNamespace is the namespace reported for plain html elements.
const XHTMLNamespace = "http://www.w3.org/1999/xhtml"

// Attr is an attribute as reported by Host.Attributes.
type Attr struct {
	Name      string
	Value     string
	Namespace string
}

// Event is the payload handed to listeners.
type Event interface {
	Type() string
	StopPropagation()
	PreventDefault()
}

// EventListener is registered against a node. Listeners are compared by
// identity, so implementations should be pointers.
type EventListener interface {
	HandleEvent(e Event)
}

// Host is the set of live-tree capabilities the reconciler relies on.
//
// Parent/sibling queries return nil when there is no such node. Mutations on
// nodes that are not where the caller expects them are the caller's problem:
// the reconciler always checks parentage before inserting relative to a node.
type Host interface {
	CreateText(text string) Node
	CreateElement(tag string) Node
	CreateElementNS(namespace, tag string) Node

	NodeType(n Node) NodeType
	// LocalName is the lowercase tag name of an element, "" for other nodes.
	LocalName(n Node) string
	Namespace(n Node) string

	Text(n Node) string
	SetText(n Node, text string)

	Attributes(n Node) []Attr
	HasAttribute(n Node, name string) bool
	SetAttribute(n Node, name, value string)
	RemoveAttribute(n Node, name string)
	SetAttributeNS(n Node, namespace, name, value string)
	RemoveAttributeNS(n Node, namespace, name string)

	SetStyle(n Node, name, value string)
	RemoveStyle(n Node, name string)

	Property(n Node, name string) (any, bool)
	SetProperty(n Node, name string, value any)
	DeleteProperty(n Node, name string)

	AddEventListener(n Node, event string, l EventListener, passive bool)
	RemoveEventListener(n Node, event string, l EventListener)

	Parent(n Node) Node
	FirstChild(n Node) Node
	NextSibling(n Node) Node
	PreviousSibling(n Node) Node
	ChildNodes(n Node) []Node

	AppendChild(parent, child Node)
	// InsertBefore appends when ref is nil.
	InsertBefore(parent, child, ref Node)
	ReplaceChild(parent, newChild, oldChild Node)
	RemoveChild(parent, child Node)
}

// Mover is implemented by hosts with an atomic move primitive that keeps the
// moved node's state (focus, animations, iframes) intact.
type Mover interface {
	// MoveBefore appends when ref is nil.
	MoveBefore(parent, child, ref Node)
}
