package dom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type listenerFunc struct {
	fn func(e Event)
}

func (l *listenerFunc) HandleEvent(e Event) { l.fn(e) }

func TestMemory(t *testing.T) {
	t.Run("tree operations", func(t *testing.T) {
		m := NewMemory()

		ul := m.CreateElement("UL")
		a, b, c := m.CreateElement("li"), m.CreateElement("li"), m.CreateElement("li")
		m.SetAttribute(a, "id", "a")
		m.SetAttribute(b, "id", "b")
		m.SetAttribute(c, "id", "c")

		m.AppendChild(ul, a)
		m.AppendChild(ul, c)
		m.InsertBefore(ul, b, c)
		assert.Equal(t, `<ul><li id="a"></li><li id="b"></li><li id="c"></li></ul>`, m.HTML(ul))

		m.InsertBefore(ul, a, nil)
		assert.Equal(t, `<ul><li id="b"></li><li id="c"></li><li id="a"></li></ul>`, m.HTML(ul))
		assert.Equal(t, c, m.NextSibling(b))
		assert.Equal(t, c, m.PreviousSibling(a))
		assert.Nil(t, m.NextSibling(a))
		assert.Nil(t, m.PreviousSibling(b))

		text := m.CreateText("x")
		m.ReplaceChild(ul, text, c)
		assert.Nil(t, m.Parent(c))
		assert.Equal(t, ul, m.Parent(text))

		m.RemoveChild(ul, b)
		assert.Equal(t, `<ul>x<li id="a"></li></ul>`, m.HTML(ul))

		assert.Equal(t, 4, m.Count(OpCreateElement))
		assert.Equal(t, 1, m.Count(OpReplace))
		assert.Equal(t, 1, m.Count(OpRemove))
	})

	t.Run("moves", func(t *testing.T) {
		m := NewMovingMemory()

		p := m.CreateElement("p")
		a, b := m.CreateText("a"), m.CreateText("b")
		m.AppendChild(p, a)
		m.AppendChild(p, b)
		m.ResetOps()

		m.MoveBefore(p, b, a)

		assert.Equal(t, "ba", m.Text(p))
		assert.Equal(t, 1, m.Count(OpMove))
		assert.Equal(t, "move #text(\"b\") before #text(\"a\")", m.Ops()[0].String())
	})

	t.Run("events bubble until stopped", func(t *testing.T) {
		m := NewMemory()
		var log []string

		outer := m.CreateElement("div")
		inner := m.CreateElement("button")
		m.AppendChild(outer, inner)

		m.AddEventListener(outer, "click", &listenerFunc{func(e Event) {
			log = append(log, "outer")
		}}, true)
		stopper := &listenerFunc{func(e Event) {
			log = append(log, "inner")
			e.StopPropagation()
		}}
		m.AddEventListener(inner, "click", stopper, false)

		m.Dispatch(inner, &MemEvent{Name: "click"})
		m.RemoveEventListener(inner, "click", stopper)
		m.Dispatch(inner, &MemEvent{Name: "click"})

		assert.Equal(t, []string{"inner", "outer"}, log)
		assert.True(t, m.Passive(outer, "click"))
		assert.Equal(t, 0, m.Listeners(inner, "click"))
	})
}
