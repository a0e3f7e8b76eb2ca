package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AnatoleLucet/weave/internal/dom"
	"github.com/AnatoleLucet/weave/internal/treefile"
	"github.com/AnatoleLucet/weave/internal/vdom"
)

// mode selects how the first step reaches the host.
type mode int

const (
	// the first step is rendered from scratch
	modeRender mode = iota
	// the markup is mounted, then the first step is patched over it
	modeVirtualize
)

// play applies the steps of f one after the other and reports each of them.
// Only the first limit steps are played when limit is positive.
func (s *session) play(f *treefile.File, m mode, limit int) (*Report, error) {
	steps := f.Steps
	if limit > 0 && len(steps) > limit {
		steps = steps[:limit]
	}

	report := &Report{Name: f.Name, Steps: make([]StepReport, 0, len(steps))}
	body := s.memory.CreateElement("body")

	var root dom.Node
	var prev vdom.Node

	if m == modeVirtualize {
		if f.Markup == nil {
			return nil, fmt.Errorf("%s: virtualize needs markup", f.Name)
		}
		root = f.Markup.Mount(s.memory)
		s.memory.AppendChild(body, root)
	}
	s.memory.ResetOps()

	for i, step := range steps {
		next := step.Build()

		if i == 0 && m == modeRender {
			root = s.renderer.Render(next, s.dispatch)
			s.memory.AppendChild(body, root)
		} else {
			root = s.renderer.DiffAndPatch(root, prev, next, s.dispatch)
		}
		prev = next

		report.Steps = append(report.Steps, StepReport{
			Step: i,
			Ops:  s.flushOps(),
			HTML: s.memory.HTML(body),
		})
	}

	return report, nil
}

// flushOps renders the recorded ops while their nodes are as they left them.
func (s *session) flushOps() []string {
	ops := s.memory.Ops()
	out := make([]string, len(ops))
	for i, op := range ops {
		out[i] = op.String()
	}
	s.memory.ResetOps()
	return out
}

func (s *session) dispatch(msg any, sync bool) {}

func runSteps(opts *RootOptions, cmd *cobra.Command, path string, m mode, limit int) error {
	formatter := &OutputFormatter{
		Format: opts.Format,
		Writer: cmd.OutOrStdout(),
	}

	f, err := treefile.Load(path)
	if err != nil {
		_ = formatter.Error(err)
		return WrapExitError(ExitCommandError, "cannot load tree file", err)
	}

	report, err := newSession(opts, cmd).play(f, m, limit)
	if err != nil {
		_ = formatter.Error(err)
		return WrapExitError(ExitFailure, "cannot play tree file", err)
	}

	return formatter.Report(report)
}
