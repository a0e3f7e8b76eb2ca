package platform

import (
	"fmt"

	"github.com/google/uuid"
)

// Config describes a program. Init and Update are required.
type Config struct {
	Init          func() (model any, cmds Bag)
	Update        func(msg, model any) (any, Bag)
	Subscriptions func(model any) Bag

	// Managers are started in order, after the built-in Task manager.
	Managers []*Manager
}

// Stepper is told about every new model. sync asks for the view to be
// updated before returning.
type Stepper func(model any, sync bool)

// StepperFactory builds the stepper of a program from its initial model.
// sendToApp feeds messages back to the program.
type StepperFactory func(sendToApp func(msg any, sync bool), model any) Stepper

// Program is a running instance of a Config.
type Program struct {
	id      uuid.UUID
	runtime *Runtime

	model         any
	update        func(msg, model any) (any, Bag)
	subscriptions func(model any) Bag
	stepper       Stepper

	managers map[string]*managed
	order    []*managed

	closed bool
}

// NewProgram initializes a program: it runs Init, builds the stepper, starts
// the managers and dispatches the initial effects.
func (rt *Runtime) NewProgram(cfg Config, stepper StepperFactory) (*Program, error) {
	if cfg.Init == nil || cfg.Update == nil {
		return nil, fmt.Errorf("%w: Init and Update are required", ErrInvalidConfig)
	}

	p := &Program{
		id:            uuid.New(),
		runtime:       rt,
		update:        cfg.Update,
		subscriptions: cfg.Subscriptions,
		managers:      make(map[string]*managed),
	}
	if p.subscriptions == nil {
		p.subscriptions = func(any) Bag { return None() }
	}

	for _, m := range append([]*Manager{TaskManager()}, cfg.Managers...) {
		if _, ok := p.managers[m.Name]; ok {
			err := &ManagerError{Name: m.Name, Err: ErrDuplicateManager}
			rt.logger.Err().Str("manager", m.Name).Err(err).Log("program not started")
			return nil, err
		}
		if m.OnEffects == nil {
			return nil, &ManagerError{Name: m.Name, Err: fmt.Errorf("%w: OnEffects is required", ErrInvalidConfig)}
		}

		entry := &managed{Manager: m}
		p.managers[m.Name] = entry
		p.order = append(p.order, entry)
	}

	rt.logger.Info().
		Str("program", p.id.String()).
		Int("managers", len(p.order)).
		Log("program started")

	model, cmds := cfg.Init()
	p.model = model

	if stepper == nil {
		p.stepper = func(any, bool) {}
	} else {
		p.stepper = stepper(p.SendToApp, model)
	}

	for _, m := range p.order {
		m.spawn(p)
	}

	rt.queue.Enqueue(p, cmds, p.subscriptions(model))

	return p, nil
}

// Worker starts a program without a view.
func (rt *Runtime) Worker(cfg Config) (*Program, error) {
	return rt.NewProgram(cfg, nil)
}

func (p *Program) ID() uuid.UUID { return p.id }

func (p *Program) Model() any { return p.model }

func (p *Program) Runtime() *Runtime { return p.runtime }

// SendToApp runs the update with msg, steps the view and enqueues the
// resulting effects. Calls from goroutines other than the runtime's are
// handed over to it.
func (p *Program) SendToApp(msg any, sync bool) {
	s := p.runtime.scheduler
	if !s.OnOwner() {
		s.Submit(func() { p.SendToApp(msg, sync) })
		return
	}

	if p.closed {
		return
	}

	model, cmds := p.update(msg, p.model)
	p.model = model
	p.stepper(model, sync)
	p.runtime.queue.Enqueue(p, cmds, p.subscriptions(model))
}

// Close kills the manager processes. Messages sent afterwards are dropped.
func (p *Program) Close() {
	if p.closed {
		return
	}
	p.closed = true

	for _, m := range p.order {
		if m.router != nil && m.router.self != nil {
			p.runtime.scheduler.Kill(m.router.self)
		}
	}
}

func (p *Program) dispatchEffects(cmds, subs Bag) {
	if p.closed {
		return
	}

	dict := make(map[string]*Effects)
	p.gather(true, cmds, dict, nil)
	p.gather(false, subs, dict, nil)

	for _, m := range p.order {
		fx, ok := dict[m.Name]
		if !ok {
			fx = newEffects()
		}
		p.runtime.scheduler.Send(m.router.self, fxMsg{fx})
	}
}
