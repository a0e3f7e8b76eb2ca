package vdom

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnatoleLucet/weave/internal/dom"
)

func TestOrganize(t *testing.T) {
	t.Run("later facts win", func(t *testing.T) {
		facts := Organize([]Fact{
			Attribute("id", "a"),
			Attribute("id", "b"),
			Style("color", "red"),
			Style("color", "blue"),
			Property("value", 1),
			Property("value", 2),
		})

		assert.Equal(t, map[string]string{"id": "b"}, facts.Attrs)
		assert.Equal(t, map[string]string{"color": "blue"}, facts.Styles)
		assert.Equal(t, map[string]any{"value": 2}, facts.Props)
		assert.Nil(t, facts.Events)
		assert.Nil(t, facts.AttrsNS)
	})

	t.Run("empty list", func(t *testing.T) {
		assert.Equal(t, &Facts{}, Organize(nil))
	})
}

func TestSameValue(t *testing.T) {
	type point struct{ X, Y int }
	type holder struct{ V any }
	fn := func() {}

	assert.True(t, sameValue(nil, nil))
	assert.False(t, sameValue(nil, 0))
	assert.True(t, sameValue("a", "a"))
	assert.False(t, sameValue(1, int64(1)))
	assert.True(t, sameValue(point{1, 2}, point{1, 2}))
	assert.True(t, sameValue(fn, fn))
	assert.False(t, sameValue((&label{"a"}).view, (&label{"a"}).view))
	assert.True(t, sameValue(sameValue, sameValue))
	assert.False(t, sameValue(holder{[]int{1}}, holder{[]int{1}}))
}

func TestHandler(t *testing.T) {
	t.Run("map keeps the flags", func(t *testing.T) {
		h := Handler{Kind: CustomHandler, Decode: func(dom.Event) (any, error) {
			return Record{Message: 1, StopPropagation: true}, nil
		}}

		v, err := h.Map(func(msg any) any { return msg.(int) + 1 }).Decode(&dom.MemEvent{Name: "x"})

		require.NoError(t, err)
		assert.Equal(t, Record{Message: 2, StopPropagation: true}, v)
	})

	t.Run("decode errors", func(t *testing.T) {
		cause := errors.New("boom")
		cb := &callback{handler: Handler{Kind: MayPreventDefault, Decode: func(dom.Event) (any, error) {
			return nil, cause
		}}}

		_, _, _, err := cb.decode(&dom.MemEvent{Name: "submit"})

		var decodeErr *DecodeError
		require.ErrorAs(t, err, &decodeErr)
		assert.Equal(t, "submit", decodeErr.Event)
		assert.ErrorIs(t, err, cause)
	})
}
