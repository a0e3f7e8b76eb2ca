// Package treefile reads virtual trees described in YAML.
//
// A tree file holds the markup a page starts with and the views it goes
// through:
//
//	name: rotate
//	markup:
//	  tag: ul
//	steps:
//	  - tag: ul
//	    keyed: true
//	    children:
//	      - {key: a, tag: li, text: a}
//
// An element with a text field and no children gets a single text child.
// A node with no tag is a text node.
package treefile

import (
	"bytes"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/AnatoleLucet/weave/internal/dom"
	"github.com/AnatoleLucet/weave/internal/vdom"
)

// File is a parsed tree file.
type File struct {
	// Name identifies the file in reports.
	Name string `yaml:"name"`

	// Markup is the live tree the host starts with, for virtualize. It is
	// mounted with every element marked as ours.
	Markup *Node `yaml:"markup,omitempty"`

	// Steps are the views, in order.
	Steps []*Node `yaml:"steps"`
}

// Node describes one virtual node.
type Node struct {
	Tag       string `yaml:"tag,omitempty"`
	Namespace string `yaml:"ns,omitempty"`
	Text      string `yaml:"text,omitempty"`

	// Key is required on the children of a keyed element.
	Key   string `yaml:"key,omitempty"`
	Keyed bool   `yaml:"keyed,omitempty"`

	Attrs  map[string]string `yaml:"attrs,omitempty"`
	Styles map[string]string `yaml:"styles,omitempty"`
	Props  map[string]any    `yaml:"props,omitempty"`

	// On maps event names to the message they dispatch.
	On map[string]string `yaml:"on,omitempty"`

	Children []*Node `yaml:"children,omitempty"`
}

// Load reads and parses the tree file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tree file: %w", err)
	}

	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse decodes a tree file, rejecting unknown fields.
func Parse(data []byte) (*File, error) {
	var f File
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if len(f.Steps) == 0 {
		return nil, fmt.Errorf("steps list is required and must be non-empty")
	}
	for i, step := range f.Steps {
		if err := step.validate(); err != nil {
			return nil, fmt.Errorf("steps[%d]: %w", i, err)
		}
	}
	if f.Markup != nil {
		if err := f.Markup.validate(); err != nil {
			return nil, fmt.Errorf("markup: %w", err)
		}
	}

	return &f, nil
}

func (n *Node) validate() error {
	if n == nil {
		return fmt.Errorf("empty node")
	}

	if n.Tag == "" {
		if n.Keyed || len(n.Children) > 0 || len(n.Attrs) > 0 || len(n.Styles) > 0 || len(n.Props) > 0 || len(n.On) > 0 {
			return fmt.Errorf("text node %q cannot have element fields", n.Text)
		}
		return nil
	}

	if n.Text != "" && len(n.Children) > 0 {
		return fmt.Errorf("<%s>: text and children are exclusive", n.Tag)
	}

	for i, child := range n.Children {
		if err := child.validate(); err != nil {
			return fmt.Errorf("<%s>.children[%d]: %w", n.Tag, i, err)
		}
		if n.Keyed && child.Key == "" {
			return fmt.Errorf("<%s>.children[%d]: key is required in a keyed element", n.Tag, i)
		}
	}

	return nil
}

// Build turns the description into a virtual node. Event handlers dispatch
// their configured message as a string.
func (n *Node) Build() vdom.Node {
	if n.Tag == "" {
		return vdom.NewText(n.Text)
	}

	facts := n.facts()

	kids := n.Children
	if n.Text != "" && len(kids) == 0 {
		kids = []*Node{{Text: n.Text}}
	}

	if n.Keyed {
		keyed := make([]vdom.Keyed, len(kids))
		for i, kid := range kids {
			keyed[i] = vdom.Keyed{Key: kid.Key, Node: kid.Build()}
		}
		return vdom.NewKeyedElementNS(n.Namespace, n.Tag, facts, keyed)
	}

	nodes := make([]vdom.Node, len(kids))
	for i, kid := range kids {
		nodes[i] = kid.Build()
	}
	return vdom.NewElementNS(n.Namespace, n.Tag, facts, nodes)
}

func (n *Node) facts() []vdom.Fact {
	var facts []vdom.Fact

	for _, name := range sortedKeys(n.Attrs) {
		facts = append(facts, vdom.Attribute(name, n.Attrs[name]))
	}
	for _, name := range sortedKeys(n.Styles) {
		facts = append(facts, vdom.Style(name, n.Styles[name]))
	}
	for _, name := range sortedKeys(n.Props) {
		facts = append(facts, vdom.Property(name, n.Props[name]))
	}
	for _, name := range sortedKeys(n.On) {
		facts = append(facts, vdom.On(name, Message(n.On[name])))
	}

	return facts
}

// Message is a handler dispatching msg for every event.
func Message(msg string) vdom.Handler {
	return vdom.Handler{
		Kind: vdom.Normal,
		Decode: func(dom.Event) (any, error) {
			return msg, nil
		},
	}
}

// Mount creates the described tree on host, as a server would have sent
// it: attributes, styles and text only, every element marked.
func (n *Node) Mount(host dom.Host) dom.Node {
	if n.Tag == "" {
		return host.CreateText(n.Text)
	}

	var live dom.Node
	if n.Namespace != "" {
		live = host.CreateElementNS(n.Namespace, n.Tag)
	} else {
		live = host.CreateElement(n.Tag)
	}

	for _, name := range sortedKeys(n.Attrs) {
		host.SetAttribute(live, name, n.Attrs[name])
	}
	if len(n.Styles) > 0 {
		var b bytes.Buffer
		for i, name := range sortedKeys(n.Styles) {
			if i > 0 {
				b.WriteString(" ")
			}
			fmt.Fprintf(&b, "%s: %s;", name, n.Styles[name])
		}
		host.SetAttribute(live, "style", b.String())
	}
	host.SetAttribute(live, vdom.MarkerAttribute, "")

	if n.Text != "" && len(n.Children) == 0 {
		host.AppendChild(live, host.CreateText(n.Text))
	}
	for _, child := range n.Children {
		host.AppendChild(live, child.Mount(host))
	}

	return live
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
