package logging

import (
	"bytes"
	"testing"

	"github.com/joeycumines/logiface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("writes json lines at or above the level", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(&buf, logiface.LevelInformational)

		logger.Debug().Str("skipped", "yes").Log("hidden")
		logger.Info().Str("program", "p1").Log("program started")

		assert.Contains(t, buf.String(), `"msg":"program started"`)
		assert.Contains(t, buf.String(), `"program":"p1"`)
		assert.NotContains(t, buf.String(), "hidden")
	})

	t.Run("discard", func(t *testing.T) {
		logger := Discard()

		assert.NotPanics(t, func() {
			logger.Info().Str("a", "b").Log("nothing")
		})
	})
}

func TestParseLevel(t *testing.T) {
	for input, want := range map[string]logiface.Level{
		"debug": logiface.LevelDebug,
		"info":  logiface.LevelInformational,
		"warn":  logiface.LevelWarning,
		"error": logiface.LevelError,
		"err":   logiface.LevelError,
		"trace": logiface.LevelTrace,
		"off":   logiface.LevelDisabled,
	} {
		t.Run(input, func(t *testing.T) {
			got, err := ParseLevel(input)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}
