package platform

import (
	"github.com/AnatoleLucet/weave/internal/scheduler"
)

// TaskManagerName is the name of the built-in manager behind Perform and
// Attempt. Every program has it.
const TaskManagerName = "Task"

// TaskManager runs every command it receives in its own process and sends
// the resulting message to the program.
func TaskManager() *Manager {
	return &Manager{
		Name: TaskManagerName,
		Init: scheduler.Succeed(nil),
		OnEffects: func(r *Router, cmds, _ []any, state any) scheduler.Task {
			spawns := make([]scheduler.Task, 0, len(cmds))
			for _, cmd := range cmds {
				task := scheduler.AndThen(r.SendToApp, cmd.(scheduler.Task))
				spawns = append(spawns, r.program.runtime.scheduler.SpawnTask(task))
			}

			return scheduler.Map(func(any) any { return state }, scheduler.Sequence(spawns...))
		},
		CmdMap: func(tagger func(any) any, value any) any {
			return scheduler.Map(tagger, value.(scheduler.Task))
		},
	}
}

// Perform is a command that runs task and turns its value into a message.
// task must not fail.
func Perform(toMsg func(any) any, task scheduler.Task) Bag {
	return Leaf(TaskManagerName, scheduler.Map(toMsg, task))
}

// Attempt is a command that runs task and turns its outcome into a message.
// Exactly one of value and err is meaningful, err is nil on success.
func Attempt(toMsg func(value, err any) any, task scheduler.Task) Bag {
	return Leaf(TaskManagerName, scheduler.OnError(func(err any) scheduler.Task {
		return scheduler.Succeed(toMsg(nil, err))
	}, scheduler.Map(func(v any) any {
		return toMsg(v, nil)
	}, task)))
}
