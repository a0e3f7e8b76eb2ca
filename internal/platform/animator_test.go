package platform

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnatoleLucet/weave/internal/dom"
	"github.com/AnatoleLucet/weave/internal/vdom"
)

func TestAnimator(t *testing.T) {
	t.Run("draws once per frame", func(t *testing.T) {
		frames := &ManualFrames{}
		rt := NewRuntime(WithFrameSource(frames))
		var log []string

		a := rt.NewAnimator(0, func(model any) {
			log = append(log, fmt.Sprint("draw ", model))
		})
		a.Step(1, false)
		a.Step(2, false)

		assert.Equal(t, 1, frames.Pending())
		assert.Equal(t, 1, frames.Tick())
		assert.Equal(t, 0, frames.Tick())
		assert.Equal(t, []string{"draw 0", "draw 2"}, log)
	})

	t.Run("sync steps draw right away", func(t *testing.T) {
		frames := &ManualFrames{}
		rt := NewRuntime(WithFrameSource(frames))
		var log []string

		a := rt.NewAnimator(0, func(model any) {
			log = append(log, fmt.Sprint("draw ", model))
		})
		a.Step(1, false)
		a.Step(2, true)
		frames.Tick()

		assert.Equal(t, []string{"draw 0", "draw 2"}, log)
	})

	t.Run("steps inside a frame draw right away", func(t *testing.T) {
		frames := &ManualFrames{}
		rt := NewRuntime(WithFrameSource(frames))
		var log []string

		a := rt.NewAnimator(0, func(model any) {
			log = append(log, fmt.Sprint("draw ", model))
		})
		rt.requestFrame(func() {
			a.Step(1, false)
		})
		frames.Tick()

		assert.Equal(t, []string{"draw 0", "draw 1"}, log)
		assert.Equal(t, 0, frames.Pending())
	})

	t.Run("draws never overlap", func(t *testing.T) {
		rt := NewRuntime(WithFrameSource(&ManualFrames{}))
		var log []string

		var inner *Animator
		inner = rt.NewAnimator("inner 0", func(model any) {
			log = append(log, fmt.Sprint("draw ", model))
		})

		outer := rt.NewAnimator("outer 0", func(model any) {
			log = append(log, fmt.Sprint("start ", model))
			if model == "outer 1" {
				inner.Step("inner 1", true)
				inner.Step("inner 2", true)
			}
			log = append(log, fmt.Sprint("end ", model))
		})
		outer.Step("outer 1", true)

		assert.Equal(t, []string{
			"draw inner 0",
			"start outer 0",
			"end outer 0",
			"start outer 1",
			"end outer 1",
			"draw inner 2",
		}, log)
	})

	t.Run("frames from other goroutines", func(t *testing.T) {
		frames := &ManualFrames{}
		rt := NewRuntime(WithFrameSource(frames))
		var log []string

		a := rt.NewAnimator(0, func(model any) {
			log = append(log, fmt.Sprint("draw ", model))
		})
		a.Step(1, false)

		done := make(chan struct{})
		go func() {
			frames.Tick()
			close(done)
		}()
		<-done

		assert.Equal(t, []string{"draw 0"}, log)
		assert.Equal(t, 1, rt.Flush())
		assert.Equal(t, []string{"draw 0", "draw 1"}, log)
	})
}

func TestElement(t *testing.T) {
	frames := &ManualFrames{}
	rt := NewRuntime(WithFrameSource(frames))
	m := dom.NewMemory()

	body := m.CreateElement("body")
	root := m.CreateElement("div")
	m.SetAttribute(root, "id", "app")
	m.AppendChild(body, root)
	m.AppendChild(root, m.CreateText("loading"))

	clicked := vdom.Handler{Kind: vdom.Normal, Decode: func(dom.Event) (any, error) {
		return "click", nil
	}}

	view := func(model any) vdom.Node {
		return vdom.NewElement("div", []vdom.Fact{vdom.Attribute("id", "app")}, []vdom.Node{
			vdom.NewElement("button", []vdom.Fact{vdom.On("click", clicked)}, []vdom.Node{
				vdom.NewText(fmt.Sprint("clicked ", model)),
			}),
		})
	}

	p, err := rt.Element(Config{
		Init: func() (any, Bag) { return 0, None() },
		Update: func(msg, model any) (any, Bag) {
			return model.(int) + 1, None()
		},
	}, m, root, view)
	require.NoError(t, err)

	assert.Equal(t, `<body><div id="app"><button>clicked 0</button></div></body>`, m.HTML(body))

	button := m.FirstChild(m.FirstChild(body))
	m.Dispatch(button, &dom.MemEvent{Name: "click"})
	m.Dispatch(button, &dom.MemEvent{Name: "click"})

	assert.Equal(t, 2, p.Model())
	assert.Equal(t, `<body><div id="app"><button>clicked 0</button></div></body>`, m.HTML(body))

	frames.Tick()

	assert.Equal(t, `<body><div id="app"><button>clicked 2</button></div></body>`, m.HTML(body))
}
