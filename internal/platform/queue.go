package platform

type pendingEffects struct {
	program *Program
	cmds    Bag
	subs    Bag
}

// EffectQueue delivers effect batches to managers in the order they were
// produced. A batch enqueued while another one is being dispatched waits
// until every manager has received the current one.
type EffectQueue struct {
	pending []pendingEffects
	// true while draining, the queue can be empty while the last batch
	// is still being dispatched
	active bool
}

func NewEffectQueue() *EffectQueue {
	return &EffectQueue{
		pending: make([]pendingEffects, 0),
	}
}

func (q *EffectQueue) Enqueue(p *Program, cmds, subs Bag) {
	q.pending = append(q.pending, pendingEffects{program: p, cmds: cmds, subs: subs})

	if q.active {
		return
	}

	q.active = true
	defer func() { q.active = false }()

	for len(q.pending) > 0 {
		fx := q.pending[0]
		q.pending[0] = pendingEffects{}
		q.pending = q.pending[1:]
		fx.program.dispatchEffects(fx.cmds, fx.subs)
	}

	q.pending = q.pending[:0]
}

// Len is the number of batches waiting to be dispatched.
func (q *EffectQueue) Len() int {
	return len(q.pending)
}
