package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "weave", cmd.Use)

	for _, name := range []string{"render", "diff", "virtualize"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verbose := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verbose)
	assert.Equal(t, "v", verbose.Shorthand)

	format := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, format)
	assert.Equal(t, "text", format.DefValue)

	move := cmd.PersistentFlags().Lookup("move-before")
	require.NotNil(t, move)
	assert.Equal(t, "false", move.DefValue)

	_, _, err := execute(t, "--format", "xml", "render", "testdata/counter.yaml")
	assert.ErrorContains(t, err, `invalid format "xml"`)
}

func TestGolden(t *testing.T) {
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)

	for name, args := range map[string][]string{
		"counter":        {"diff", "testdata/counter.yaml"},
		"counter-render": {"render", "testdata/counter.yaml"},
		"rotate-move":    {"diff", "--move-before", "testdata/rotate.yaml"},
		"rotate-insert":  {"diff", "testdata/rotate.yaml"},
		"adopt":          {"virtualize", "testdata/adopt.yaml"},
	} {
		t.Run(name, func(t *testing.T) {
			out, _, err := execute(t, args...)
			require.NoError(t, err)

			g.Assert(t, name, []byte(out))
		})
	}
}

func TestJSONOutput(t *testing.T) {
	out, _, err := execute(t, "--format", "json", "diff", "testdata/counter.yaml")
	require.NoError(t, err)

	var resp struct {
		Status string `json:"status"`
		Data   Report `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))

	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "counter", resp.Data.Name)
	require.Len(t, resp.Data.Steps, 2)
	assert.Equal(t, []string{`set-text #text("1") "1"`}, resp.Data.Steps[1].Ops)
	assert.Equal(t, `<body><p id="count">1</p></body>`, resp.Data.Steps[1].HTML)
}

func TestErrors(t *testing.T) {
	t.Run("invalid tree file", func(t *testing.T) {
		out, _, err := execute(t, "diff", "testdata/broken.yaml")

		assert.Equal(t, ExitCommandError, GetExitCode(err))
		assert.Contains(t, out, "key is required")
	})

	t.Run("missing file", func(t *testing.T) {
		_, _, err := execute(t, "render", "testdata/nope.yaml")

		assert.Equal(t, ExitCommandError, GetExitCode(err))
	})

	t.Run("virtualize without markup", func(t *testing.T) {
		out, _, err := execute(t, "--format", "json", "virtualize", "testdata/counter.yaml")

		assert.Equal(t, ExitFailure, GetExitCode(err))
		assert.Contains(t, out, `"status":"error"`)
	})
}

func TestVerbose(t *testing.T) {
	_, stderr, err := execute(t, "-v", "diff", "testdata/counter.yaml")
	require.NoError(t, err)

	assert.Contains(t, stderr, `"msg":"patched"`)
}
