package platform

// Bag is a tree of effects (commands or subscriptions) addressed to effect
// managers by name.
type Bag interface {
	isBag()
}

type leaf struct {
	home  string
	value any
}

type batch struct {
	bags []Bag
}

type mapped struct {
	tagger func(any) any
	bag    Bag
}

func (*leaf) isBag()   {}
func (*batch) isBag()  {}
func (*mapped) isBag() {}

// Leaf addresses value to the manager registered as home.
func Leaf(home string, value any) Bag {
	return &leaf{home: home, value: value}
}

func Batch(bags ...Bag) Bag {
	return &batch{bags: bags}
}

// None is the empty bag.
func None() Bag {
	return &batch{}
}

// MapBag wraps every message produced by the effects in bag with tagger.
func MapBag(tagger func(any) any, bag Bag) Bag {
	return &mapped{tagger: tagger, bag: bag}
}

// taggers is the chain of MapBag wrappers around a leaf, innermost first.
type taggers struct {
	tagger func(any) any
	rest   *taggers
}

func (t *taggers) apply(msg any) any {
	for ; t != nil; t = t.rest {
		msg = t.tagger(msg)
	}
	return msg
}

// Effects is what one manager receives for one dispatch cycle.
type Effects struct {
	Cmds []any
	Subs []any
}

func newEffects() *Effects {
	return &Effects{Cmds: make([]any, 0), Subs: make([]any, 0)}
}

// gather walks bag and buckets its leaves by manager. Leaves keep the order
// the bag was built in.
func (p *Program) gather(isCmd bool, bag Bag, dict map[string]*Effects, chain *taggers) {
	switch b := bag.(type) {
	case nil:
		return

	case *leaf:
		m, ok := p.managers[b.home]
		if !ok {
			p.runtime.logger.Warning().
				Str("program", p.id.String()).
				Str("manager", b.home).
				Log("effect for unknown manager dropped")
			return
		}

		fx, ok := dict[b.home]
		if !ok {
			fx = newEffects()
			dict[b.home] = fx
		}

		value := b.value
		if isCmd {
			if m.CmdMap != nil {
				value = m.CmdMap(chain.apply, value)
			}
			fx.Cmds = append(fx.Cmds, value)
		} else {
			if m.SubMap != nil {
				value = m.SubMap(chain.apply, value)
			}
			fx.Subs = append(fx.Subs, value)
		}

	case *batch:
		for _, child := range b.bags {
			p.gather(isCmd, child, dict, chain)
		}

	case *mapped:
		p.gather(isCmd, b.bag, dict, &taggers{tagger: b.tagger, rest: chain})

	default:
		panic("platform: unknown bag type")
	}
}
