package weave

import (
	"github.com/google/uuid"

	"github.com/AnatoleLucet/weave/internal/platform"
	"github.com/AnatoleLucet/weave/internal/vdom"
)

// App describes a program. Init and Update are required, View only for
// Element.
type App[Model, Msg any] struct {
	Init          func() (Model, Cmd[Msg])
	Update        func(msg Msg, model Model) (Model, Cmd[Msg])
	Subscriptions func(model Model) Sub[Msg]
	View          func(model Model) Node[Msg]
}

type programOptions struct {
	runtime  *Runtime
	ports    []Port
	renderer []vdom.RendererOption
}

type ProgramOption func(*programOptions)

// WithRuntime starts the program on rt instead of the runtime of the calling
// goroutine.
func WithRuntime(rt *Runtime) ProgramOption {
	return func(o *programOptions) {
		o.runtime = rt
	}
}

// WithPorts connects ports to the program.
func WithPorts(ports ...Port) ProgramOption {
	return func(o *programOptions) {
		o.ports = append(o.ports, ports...)
	}
}

// WithMoveBefore toggles moving keyed nodes with an atomic MoveBefore, which
// keeps their state. It is on by default for hosts that support it.
func WithMoveBefore(enabled bool) ProgramOption {
	return func(o *programOptions) {
		o.renderer = append(o.renderer, vdom.WithMoveBefore(enabled))
	}
}

// WithoutTranslation keeps updating text nodes in place even after the page
// was found translated.
func WithoutTranslation() ProgramOption {
	return func(o *programOptions) {
		o.renderer = append(o.renderer, vdom.WithoutTranslation())
	}
}

// Program is a running App.
type Program[Model, Msg any] struct {
	p *platform.Program
}

func (p *Program[Model, Msg]) ID() uuid.UUID { return p.p.ID() }

// Model is the current model. Call it from the runtime goroutine.
func (p *Program[Model, Msg]) Model() Model {
	return as[Model](p.p.Model())
}

// Send feeds msg to the program. It is safe to call from any goroutine.
func (p *Program[Model, Msg]) Send(msg Msg) {
	p.p.SendToApp(msg, false)
}

// Close stops the program. Pending and future messages are dropped.
func (p *Program[Model, Msg]) Close() {
	p.p.Close()
}

func (app App[Model, Msg]) config(ports []Port) platform.Config {
	cfg := platform.Config{}
	if app.Init != nil {
		cfg.Init = func() (any, platform.Bag) {
			model, cmd := app.Init()
			return model, bagOf(cmd.bag)
		}
	}
	if app.Update != nil {
		cfg.Update = func(msg, model any) (any, platform.Bag) {
			next, cmd := app.Update(as[Msg](msg), as[Model](model))
			return next, bagOf(cmd.bag)
		}
	}
	if app.Subscriptions != nil {
		cfg.Subscriptions = func(model any) platform.Bag {
			return bagOf(app.Subscriptions(as[Model](model)).bag)
		}
	}
	for _, port := range ports {
		cfg.Managers = append(cfg.Managers, port.manager())
	}
	return cfg
}

func applyOptions(opts []ProgramOption) *programOptions {
	o := &programOptions{}
	for _, opt := range opts {
		opt(o)
	}
	if o.runtime == nil {
		o.runtime = DefaultRuntime()
	}
	return o
}

// Worker starts app without a view.
func Worker[Model, Msg any](app App[Model, Msg], opts ...ProgramOption) (*Program[Model, Msg], error) {
	o := applyOptions(opts)

	p, err := o.runtime.rt.Worker(app.config(o.ports))
	if err != nil {
		return nil, err
	}
	return &Program[Model, Msg]{p}, nil
}

// Element starts app and lets it take over root. The markup already under
// root is reused where it matches the first view.
func Element[Model, Msg any](app App[Model, Msg], host Host, root DOMNode, opts ...ProgramOption) (*Program[Model, Msg], error) {
	if app.View == nil {
		return nil, ErrMissingView
	}
	o := applyOptions(opts)

	view := func(model any) vdom.Node {
		return app.View(as[Model](model)).node
	}
	p, err := o.runtime.rt.Element(app.config(o.ports), host, root, view, o.renderer...)
	if err != nil {
		return nil, err
	}
	return &Program[Model, Msg]{p}, nil
}
