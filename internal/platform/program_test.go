package platform

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnatoleLucet/weave/internal/scheduler"
)

// recordingManager logs every batch it receives.
func recordingManager(name string, log *[]string) *Manager {
	return &Manager{
		Name: name,
		OnEffects: func(_ *Router, cmds, subs []any, state any) scheduler.Task {
			*log = append(*log, fmt.Sprintf("%s cmds=%v subs=%v", name, cmds, subs))
			return scheduler.Succeed(state)
		},
	}
}

func counter(init Bag, managers ...*Manager) Config {
	return Config{
		Init: func() (any, Bag) { return 0, init },
		Update: func(msg, model any) (any, Bag) {
			return model.(int) + 1, None()
		},
		Subscriptions: func(model any) Bag {
			return Leaf("subs", fmt.Sprint("model ", model))
		},
		Managers: managers,
	}
}

func TestEffectOrdering(t *testing.T) {
	t.Run("init subscriptions come before the effects of a sync update", func(t *testing.T) {
		rt := NewRuntime()
		var log []string

		now := Perform(func(any) any { return "now" }, scheduler.Succeed(nil))

		p, err := rt.Worker(counter(now, recordingManager("subs", &log)))
		require.NoError(t, err)

		assert.Equal(t, []string{
			"subs cmds=[] subs=[model 0]",
			"subs cmds=[] subs=[model 1]",
		}, log)
		assert.Equal(t, 1, p.Model())
		assert.Equal(t, 0, rt.queue.Len())
	})

	t.Run("every manager gets one batch per cycle", func(t *testing.T) {
		rt := NewRuntime()
		var log []string

		_, err := rt.Worker(Config{
			Init: func() (any, Bag) {
				return nil, Batch(
					Leaf("a", 1),
					Leaf("a", 2),
					Batch(Leaf("a", 3)),
				)
			},
			Update:   func(msg, model any) (any, Bag) { return model, None() },
			Managers: []*Manager{recordingManager("a", &log), recordingManager("b", &log)},
		})
		require.NoError(t, err)

		assert.Equal(t, []string{
			"a cmds=[1 2 3] subs=[]",
			"b cmds=[] subs=[]",
		}, log)
	})

	t.Run("unknown managers are skipped", func(t *testing.T) {
		rt := NewRuntime()
		var log []string

		_, err := rt.Worker(Config{
			Init:     func() (any, Bag) { return nil, Batch(Leaf("nope", 1), Leaf("a", 2)) },
			Update:   func(msg, model any) (any, Bag) { return model, None() },
			Managers: []*Manager{recordingManager("a", &log)},
		})
		require.NoError(t, err)

		assert.Equal(t, []string{"a cmds=[2] subs=[]"}, log)
	})
}

func TestTaggers(t *testing.T) {
	rt := NewRuntime()
	var got []any

	cmd := MapBag(func(msg any) any {
		return msg.(string) + "+outer"
	}, MapBag(func(msg any) any {
		return msg.(string) + "+inner"
	}, Perform(func(v any) any { return v }, scheduler.Succeed("x"))))

	_, err := rt.Worker(Config{
		Init: func() (any, Bag) { return nil, cmd },
		Update: func(msg, model any) (any, Bag) {
			got = append(got, msg)
			return model, None()
		},
	})
	require.NoError(t, err)

	assert.Equal(t, []any{"x+inner+outer"}, got)
}

func TestTaskManager(t *testing.T) {
	t.Run("attempt", func(t *testing.T) {
		rt := NewRuntime()
		var got []string

		toMsg := func(v, err any) any {
			if err != nil {
				return fmt.Sprint("err ", err)
			}
			return fmt.Sprint("ok ", v)
		}

		_, err := rt.Worker(Config{
			Init: func() (any, Bag) {
				return nil, Batch(
					Attempt(toMsg, scheduler.Succeed(1)),
					Attempt(toMsg, scheduler.Fail("boom")),
				)
			},
			Update: func(msg, model any) (any, Bag) {
				got = append(got, msg.(string))
				return model, None()
			},
		})
		require.NoError(t, err)

		assert.Equal(t, []string{"ok 1", "err boom"}, got)
	})

	t.Run("commands from updates", func(t *testing.T) {
		rt := NewRuntime()
		var got []any

		_, err := rt.Worker(Config{
			Init: func() (any, Bag) {
				return 0, Perform(func(v any) any { return v }, scheduler.Succeed(1))
			},
			Update: func(msg, model any) (any, Bag) {
				got = append(got, msg)
				n := msg.(int)
				if n == 3 {
					return n, None()
				}
				return n, Perform(func(v any) any { return v }, scheduler.Succeed(n+1))
			},
		})
		require.NoError(t, err)

		assert.Equal(t, []any{1, 2, 3}, got)
	})
}

func TestNewProgram(t *testing.T) {
	t.Run("duplicate managers", func(t *testing.T) {
		rt := NewRuntime()
		var log []string

		_, err := rt.Worker(counter(None(), recordingManager("subs", &log), recordingManager("subs", &log)))

		assert.ErrorIs(t, err, ErrDuplicateManager)
		var managerErr *ManagerError
		require.True(t, errors.As(err, &managerErr))
		assert.Equal(t, "subs", managerErr.Name)
		assert.Empty(t, log)
	})

	t.Run("the task manager name is taken", func(t *testing.T) {
		rt := NewRuntime()

		_, err := rt.Worker(counter(None(), recordingManager(TaskManagerName, new([]string))))

		assert.ErrorIs(t, err, ErrDuplicateManager)
	})

	t.Run("missing update", func(t *testing.T) {
		rt := NewRuntime()

		_, err := rt.Worker(Config{Init: func() (any, Bag) { return nil, None() }})

		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("stepper sees every model", func(t *testing.T) {
		rt := NewRuntime()
		var log []string

		p, err := rt.NewProgram(counter(None(), recordingManager("subs", new([]string))), func(sendToApp func(any, bool), model any) Stepper {
			log = append(log, fmt.Sprint("init ", model))
			return func(model any, sync bool) {
				log = append(log, fmt.Sprintf("step %v sync=%v", model, sync))
			}
		})
		require.NoError(t, err)

		p.SendToApp("a", false)
		p.SendToApp("b", true)

		assert.Equal(t, []string{"init 0", "step 1 sync=false", "step 2 sync=true"}, log)
	})

	t.Run("close stops the program", func(t *testing.T) {
		rt := NewRuntime()
		var log []string

		p, err := rt.Worker(counter(None(), recordingManager("subs", &log)))
		require.NoError(t, err)

		p.Close()
		p.SendToApp("ignored", false)

		assert.Equal(t, 0, p.Model())
		assert.Equal(t, []string{"subs cmds=[] subs=[model 0]"}, log)
	})

	t.Run("self messages", func(t *testing.T) {
		rt := NewRuntime()
		var log []string

		pinger := &Manager{
			Name: "pinger",
			Init: scheduler.Succeed(0),
			OnEffects: func(r *Router, cmds, _ []any, state any) scheduler.Task {
				if len(cmds) == 0 {
					return scheduler.Succeed(state)
				}
				return scheduler.Map(func(any) any { return state }, r.SendToSelf("ping"))
			},
			OnSelfMsg: func(r *Router, msg any, state any) scheduler.Task {
				n := state.(int) + 1
				log = append(log, fmt.Sprintf("%v %d", msg, n))
				return scheduler.Map(func(any) any { return n }, r.SendToApp(n))
			},
		}

		p, err := rt.Worker(Config{
			Init:   func() (any, Bag) { return nil, Leaf("pinger", true) },
			Update: func(msg, model any) (any, Bag) { return msg, None() },
			Managers: []*Manager{pinger},
		})
		require.NoError(t, err)

		assert.Equal(t, []string{"ping 1"}, log)
		assert.Equal(t, 1, p.Model())
	})
}
