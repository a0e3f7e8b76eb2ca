package treefile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnatoleLucet/weave/internal/dom"
	"github.com/AnatoleLucet/weave/internal/vdom"
)

const rotate = `
name: rotate
markup:
  tag: ul
  children:
    - {tag: li, text: a}
steps:
  - tag: ul
    keyed: true
    attrs: {id: list}
    children:
      - {key: a, tag: li, text: a}
      - {key: b, tag: li, text: b, on: {click: picked b}}
  - text: plain
`

func TestParse(t *testing.T) {
	t.Run("valid file", func(t *testing.T) {
		f, err := Parse([]byte(rotate))
		require.NoError(t, err)

		assert.Equal(t, "rotate", f.Name)
		require.Len(t, f.Steps, 2)
		assert.True(t, f.Steps[0].Keyed)
		assert.Equal(t, "picked b", f.Steps[0].Children[1].On["click"])
		require.NotNil(t, f.Markup)
	})

	for name, input := range map[string]string{
		"unknown field":       "steps: [{tag: p, colour: red}]",
		"no steps":            "name: empty",
		"missing key":         "steps: [{tag: ul, keyed: true, children: [{tag: li}]}]",
		"text with children":  "steps: [{tag: p, text: x, children: [{text: y}]}]",
		"text node with attr": "steps: [{text: x, attrs: {id: a}}]",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(input))
			assert.Error(t, err)
		})
	}
}

func TestBuild(t *testing.T) {
	f, err := Parse([]byte(rotate))
	require.NoError(t, err)

	m := dom.NewMemory()
	r := vdom.NewRenderer(m)
	var got []any

	live := r.Render(f.Steps[0].Build(), func(msg any, sync bool) {
		got = append(got, msg)
	})

	assert.Equal(t, `<ul id="list"><li>a</li><li>b</li></ul>`, m.HTML(live))

	m.Dispatch(m.ChildNodes(live)[1], &dom.MemEvent{Name: "click"})
	assert.Equal(t, []any{"picked b"}, got)

	text, ok := f.Steps[1].Build().(*vdom.Text)
	require.True(t, ok)
	assert.Equal(t, "plain", text.Text())
}

func TestMount(t *testing.T) {
	node := &Node{
		Tag:    "p",
		Attrs:  map[string]string{"id": "x"},
		Styles: map[string]string{"margin": "0", "color": "red"},
		Text:   "hi",
	}

	m := dom.NewMemory()
	live := node.Mount(m)

	assert.Equal(t, `<p id="x" style="color: red; margin: 0;" data-weave="">hi</p>`, m.HTML(live))
}
