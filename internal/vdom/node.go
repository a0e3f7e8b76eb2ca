package vdom

import (
	"github.com/AnatoleLucet/weave/internal/dom"
)

// Node is an immutable description of a piece of UI.
//
// The variants are *Text, *Element, *KeyedElement, *Custom, *Tagger and
// *Thunk. Nodes are compared by identity, so the same value may appear
// several times in a tree and across renders.
type Node interface {
	isNode()
}

type Text struct {
	text string
}

type Element struct {
	tag       string
	namespace string
	facts     *Facts
	kids      []Node
}

// Keyed is one child of a KeyedElement.
type Keyed struct {
	Key  string
	Node Node
}

type KeyedElement struct {
	tag       string
	namespace string
	facts     *Facts
	kids      []Keyed
	keys      map[string]Node
}

// RenderFunc builds the live node of a Custom node.
type RenderFunc func(h dom.Host, model any) dom.Node

// Patch updates the live node of a Custom node in place.
type Patch func(h dom.Host, n dom.Node)

// DiffFunc compares two models of a Custom node. A nil Patch means nothing
// needs to change.
type DiffFunc func(prev, next any) Patch

// Custom is a subtree managed by its own render and diff functions.
type Custom struct {
	facts  *Facts
	model  any
	render RenderFunc
	diff   DiffFunc
	// customs of different kinds are redrawn instead of diffed
	kind any
}

// Tagger maps every message produced by events inside its subtree.
type Tagger struct {
	node   Node
	tagger func(any) any
}

// Thunk defers building a subtree until it is rendered or diffed against a
// thunk with different refs.
type Thunk struct {
	refs  []any
	build func() Node
	node  Node
}

func (*Text) isNode()         {}
func (*Element) isNode()      {}
func (*KeyedElement) isNode() {}
func (*Custom) isNode()       {}
func (*Tagger) isNode()       {}
func (*Thunk) isNode()        {}

// duplicateKeySuffix is appended to a repeated key until it is unique.
const duplicateKeySuffix = "_dup"

func NewText(text string) *Text {
	return &Text{text: text}
}

func NewElement(tag string, facts []Fact, kids []Node) *Element {
	return NewElementNS("", tag, facts, kids)
}

func NewElementNS(namespace, tag string, facts []Fact, kids []Node) *Element {
	return &Element{
		tag:       tag,
		namespace: namespace,
		facts:     Organize(facts),
		kids:      kids,
	}
}

func NewKeyedElement(tag string, facts []Fact, kids []Keyed) *KeyedElement {
	return NewKeyedElementNS("", tag, facts, kids)
}

func NewKeyedElementNS(namespace, tag string, facts []Fact, kids []Keyed) *KeyedElement {
	unique := make([]Keyed, len(kids))
	keys := make(map[string]Node, len(kids))

	for i, kid := range kids {
		key := kid.Key
		for {
			if _, taken := keys[key]; !taken {
				break
			}
			key += duplicateKeySuffix
		}

		keys[key] = kid.Node
		unique[i] = Keyed{Key: key, Node: kid.Node}
	}

	return &KeyedElement{
		tag:       tag,
		namespace: namespace,
		facts:     Organize(facts),
		kids:      unique,
		keys:      keys,
	}
}

func NewCustom(facts []Fact, model any, render RenderFunc, diff DiffFunc) *Custom {
	return NewCustomKind(render, facts, model, render, diff)
}

// NewCustomKind is NewCustom for callers that wrap render, kind tells which
// customs can be diffed against each other.
func NewCustomKind(kind any, facts []Fact, model any, render RenderFunc, diff DiffFunc) *Custom {
	return &Custom{
		facts:  Organize(facts),
		model:  model,
		render: render,
		diff:   diff,
		kind:   kind,
	}
}

// Map wraps node so that messages from its events go through tagger.
func Map(node Node, tagger func(any) any) *Tagger {
	return &Tagger{node: node, tagger: tagger}
}

// Lazy defers build. When diffed against a thunk whose refs are identical,
// build is not called and the previous subtree is reused.
func Lazy(build func() Node, refs ...any) *Thunk {
	return &Thunk{refs: refs, build: build}
}

func (t *Text) Text() string { return t.text }

func (e *Element) Tag() string       { return e.tag }
func (e *Element) Namespace() string { return e.namespace }
func (e *Element) Facts() *Facts     { return e.facts }
func (e *Element) Kids() []Node      { return e.kids }

func (e *KeyedElement) Tag() string       { return e.tag }
func (e *KeyedElement) Namespace() string { return e.namespace }
func (e *KeyedElement) Facts() *Facts     { return e.facts }
func (e *KeyedElement) Kids() []Keyed     { return e.kids }

func (c *Custom) Model() any { return c.model }

func (t *Tagger) Node() Node { return t.node }

// force returns the subtree of the thunk, building it on first use.
func (t *Thunk) force() Node {
	if t.node == nil {
		t.node = t.build()
	}
	return t.node
}

// dekey views a keyed element as a plain one.
func dekey(e *KeyedElement) *Element {
	kids := make([]Node, len(e.kids))
	for i, kid := range e.kids {
		kids[i] = kid.Node
	}

	return &Element{
		tag:       e.tag,
		namespace: e.namespace,
		facts:     e.facts,
		kids:      kids,
	}
}
