package vdom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnatoleLucet/weave/internal/dom"
)

// serverMarkup builds what a server side render of our view would produce,
// plus a node injected by a third-party script.
func serverMarkup(m *dom.Memory) dom.Node {
	root := m.CreateElement("main")
	m.SetAttribute(root, "id", "app")

	title := m.CreateElement("h1")
	m.SetAttribute(title, MarkerAttribute, "")
	m.SetAttribute(title, "style", "color: red; margin:0;")
	m.AppendChild(title, m.CreateText("Hello"))
	m.AppendChild(root, title)

	m.AppendChild(root, m.CreateComment("separator"))

	ad := m.CreateElement("div")
	m.SetAttribute(ad, "class", "injected")
	m.AppendChild(root, ad)

	input := m.CreateElement("input")
	m.SetAttribute(input, MarkerAttribute, "")
	m.SetAttribute(input, "value", "typed")
	m.SetProperty(input, "value", "typed")
	m.SetAttribute(input, "readonly", "")
	m.SetProperty(input, "readOnly", true)
	m.AppendChild(root, input)

	area := m.CreateElement("textarea")
	m.SetAttribute(area, MarkerAttribute, "")
	m.AppendChild(area, m.CreateText("draft"))
	m.SetProperty(area, "value", "draft")
	m.AppendChild(root, area)

	return root
}

func TestVirtualize(t *testing.T) {
	t.Run("describes marked markup", func(t *testing.T) {
		m := dom.NewMemory()
		r := NewRenderer(m)

		node := r.Virtualize(serverMarkup(m))

		root, ok := node.(*Element)
		require.True(t, ok)
		assert.Equal(t, "main", root.Tag())
		assert.Equal(t, "", root.Namespace())
		assert.Equal(t, map[string]string{"id": "app"}, root.Facts().Attrs)
		require.Len(t, root.Kids(), 3)

		title := root.Kids()[0].(*Element)
		assert.Equal(t, map[string]string{"color": "red", "margin": "0"}, title.Facts().Styles)
		assert.Equal(t, map[string]string{MarkerAttribute: ""}, title.Facts().Attrs)
		assert.Equal(t, "Hello", title.Kids()[0].(*Text).Text())

		input := root.Kids()[1].(*Element)
		assert.Equal(t, map[string]any{"value": "typed", "readOnly": true}, input.Facts().Props)

		area := root.Kids()[2].(*Element)
		assert.Equal(t, map[string]any{"value": "draft"}, area.Facts().Props)
		assert.Empty(t, area.Kids())
	})

	t.Run("first patch only touches differences", func(t *testing.T) {
		m := dom.NewMemory()
		r := NewRenderer(m)

		root := serverMarkup(m)
		m.ResetOps()

		view := el("main", []Fact{Attribute("id", "app")},
			el("h1", []Fact{Style("color", "red"), Style("margin", "0")}, txt("Hello")),
			el("input", []Fact{Property("value", "typed"), Property("readOnly", true)}),
			el("textarea", []Fact{Property("value", "draft")}),
		)

		r.DiffAndPatch(root, nil, view, func(any, bool) {})

		var log []string
		for _, op := range m.Ops() {
			log = append(log, op.String())
		}
		assert.Equal(t, []string{
			"remove-attribute h1 data-weave",
			"remove-attribute input data-weave",
			"remove-attribute textarea data-weave",
		}, log)
		assertHTML(t, m, root, `<main id="app"><h1 style="color: red; margin:0;">Hello</h1><!--separator--><div class="injected"></div><input value="typed" readonly=""></input><textarea>draft</textarea></main>`)
	})

	t.Run("comments become empty text", func(t *testing.T) {
		m := dom.NewMemory()
		r := NewRenderer(m)

		node := r.Virtualize(m.CreateComment("mount here"))

		text, ok := node.(*Text)
		require.True(t, ok)
		assert.Equal(t, "", text.Text())
	})
}

func TestTranslation(t *testing.T) {
	t.Run("recovers from a replaced text node", func(t *testing.T) {
		m := dom.NewMemory()
		r := NewRenderer(m)

		prev := el("p", nil, txt("Hello "), el("b", nil, txt("world")))
		_, live := mount(m, r, prev, func(any, bool) {})

		// a translator swaps our text for its own markup
		hello := m.ChildNodes(live)[0]
		font := m.CreateElement("font")
		m.AppendChild(font, m.CreateText("Bonjour "))
		m.ReplaceChild(live, font, hello)
		m.ResetOps()

		next := el("p", nil, txt("Hi "), el("b", nil, txt("world")))
		r.DiffAndPatch(live, prev, next, func(any, bool) {})

		assert.True(t, r.Translated())
		assertHTML(t, m, live, `<p>Hi <b>world</b></p>`)
	})

	t.Run("replaces text nodes once translated", func(t *testing.T) {
		m := dom.NewMemory()
		r := NewRenderer(m)
		r.everTranslated = true

		prev := el("p", nil, txt("a"))
		next := el("p", nil, txt("b"))
		_, live := mount(m, r, prev, func(any, bool) {})
		old := m.FirstChild(live)

		r.DiffAndPatch(live, prev, next, func(any, bool) {})

		assert.NotEqual(t, old, m.FirstChild(live))
		assert.Equal(t, 1, m.Count(dom.OpReplace))
		assert.Equal(t, 0, m.Count(dom.OpSetText))

		// the new node is tracked for the next patch
		last := el("p", nil, txt("c"))
		r.DiffAndPatch(live, next, last, func(any, bool) {})
		assertHTML(t, m, live, `<p>c</p>`)
	})

	t.Run("can be turned off", func(t *testing.T) {
		m := dom.NewMemory()
		r := NewRenderer(m, WithoutTranslation())
		r.everTranslated = true

		prev := el("p", nil, txt("a"))
		next := el("p", nil, txt("b"))
		_, live := mount(m, r, prev, func(any, bool) {})

		r.DiffAndPatch(live, prev, next, func(any, bool) {})

		assert.Equal(t, 1, m.Count(dom.OpSetText))
		assert.Equal(t, 0, m.Count(dom.OpReplace))
	})
}
