package platform

import (
	"github.com/AnatoleLucet/weave/internal/dom"
	"github.com/AnatoleLucet/weave/internal/vdom"
)

// View renders a model.
type View func(model any) vdom.Node

// Element starts a program that takes over root: the existing markup is
// virtualized, then patched to the view of every new model, at most once
// per frame.
func (rt *Runtime) Element(cfg Config, host dom.Host, root dom.Node, view View, opts ...vdom.RendererOption) (*Program, error) {
	opts = append([]vdom.RendererOption{vdom.WithLogger(rt.logger)}, opts...)
	renderer := vdom.NewRenderer(host, opts...)

	return rt.NewProgram(cfg, func(sendToApp func(msg any, sync bool), model any) Stepper {
		var curr vdom.Node

		animator := rt.NewAnimator(model, func(model any) {
			next := view(model)
			root = renderer.DiffAndPatch(root, curr, next, sendToApp)
			curr = next
		})

		return animator.Step
	})
}
