package vdom

import (
	"maps"
	"slices"

	"github.com/AnatoleLucet/weave/internal/dom"
)

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}

// applyFacts moves a live node from prev to facts. Removals come first so
// that linked attributes and properties end up set. Properties are applied
// after attributes and win when both describe the same thing.
func (r *Renderer) applyFacts(live dom.Node, dispatch Dispatcher, prev, facts *Facts) {
	r.removeStyles(live, prev.Styles, facts.Styles)
	r.removeProps(live, prev.Props, facts.Props)
	r.removeAttrs(live, prev.Attrs, facts.Attrs)
	r.removeAttrsNS(live, prev.AttrsNS, facts.AttrsNS)

	r.applyStyles(live, prev.Styles, facts.Styles)
	r.applyAttrs(live, prev.Attrs, facts.Attrs)
	r.applyAttrsNS(live, prev.AttrsNS, facts.AttrsNS)
	r.applyProps(live, facts.Props)

	if len(prev.Events) > 0 || len(facts.Events) > 0 {
		r.applyEvents(live, dispatch, facts.Events)
	}
}

func (r *Renderer) applyStyles(live dom.Node, prev, styles map[string]string) {
	for _, name := range sortedKeys(styles) {
		value := styles[name]
		if old, ok := prev[name]; !ok || old != value {
			r.host.SetStyle(live, name, value)
		}
	}
}

func (r *Renderer) removeStyles(live dom.Node, prev, styles map[string]string) {
	for _, name := range sortedKeys(prev) {
		if _, ok := styles[name]; !ok {
			r.host.RemoveStyle(live, name)
		}
	}
}

// applyProps compares against the live value, since users change things
// like input values behind our back.
func (r *Renderer) applyProps(live dom.Node, props map[string]any) {
	for _, name := range sortedKeys(props) {
		value := props[name]
		if current, ok := r.host.Property(live, name); !ok || !sameValue(current, value) {
			r.host.SetProperty(live, name, value)
		}
	}
}

func (r *Renderer) removeProps(live dom.Node, prev, props map[string]any) {
	for _, name := range sortedKeys(prev) {
		if _, ok := props[name]; ok {
			continue
		}

		switch prev[name].(type) {
		case string:
			r.host.SetProperty(live, name, "")
		case bool:
			r.host.SetProperty(live, name, false)
		}
		r.host.DeleteProperty(live, name)
	}
}

func (r *Renderer) applyAttrs(live dom.Node, prev, attrs map[string]string) {
	for _, name := range sortedKeys(attrs) {
		value := attrs[name]
		if old, ok := prev[name]; !ok || old != value {
			r.host.SetAttribute(live, name, value)
		}
	}
}

func (r *Renderer) removeAttrs(live dom.Node, prev, attrs map[string]string) {
	for _, name := range sortedKeys(prev) {
		if _, ok := attrs[name]; !ok {
			r.host.RemoveAttribute(live, name)
		}
	}
}

func (r *Renderer) applyAttrsNS(live dom.Node, prev, attrs map[string]NSValue) {
	for _, name := range sortedKeys(attrs) {
		attr := attrs[name]
		old, ok := prev[name]

		switch {
		case !ok:
			r.host.SetAttributeNS(live, attr.Namespace, name, attr.Value)
		case old.Namespace != attr.Namespace:
			r.host.RemoveAttributeNS(live, old.Namespace, name)
			r.host.SetAttributeNS(live, attr.Namespace, name, attr.Value)
		case old.Value != attr.Value:
			r.host.SetAttributeNS(live, attr.Namespace, name, attr.Value)
		}
	}
}

func (r *Renderer) removeAttrsNS(live dom.Node, prev, attrs map[string]NSValue) {
	for _, name := range sortedKeys(prev) {
		if _, ok := attrs[name]; !ok {
			r.host.RemoveAttributeNS(live, prev[name].Namespace, name)
		}
	}
}

// applyEvents keeps one listener per event name. A listener whose handler
// kind did not change is retargeted instead of being replaced.
func (r *Renderer) applyEvents(live dom.Node, dispatch Dispatcher, events map[string]Handler) {
	callbacks := r.callbacks[live]
	if callbacks == nil {
		callbacks = make(map[string]*callback)
		r.callbacks[live] = callbacks
	}

	for _, name := range sortedKeys(events) {
		handler := events[name]
		old := callbacks[name]

		if old != nil {
			if old.handler.Kind == handler.Kind {
				old.handler = handler
				old.dispatch = dispatch
				continue
			}
			r.host.RemoveEventListener(live, name, old)
		}

		cb := &callback{r: r, handler: handler, dispatch: dispatch}
		r.host.AddEventListener(live, name, cb, handler.Kind.passive())
		callbacks[name] = cb
	}

	for _, name := range sortedKeys(callbacks) {
		if _, ok := events[name]; !ok {
			r.host.RemoveEventListener(live, name, callbacks[name])
			delete(callbacks, name)
		}
	}

	if len(callbacks) == 0 {
		delete(r.callbacks, live)
	}
}

func (r *Renderer) lazyUpdateEvents(live dom.Node, dispatch Dispatcher) {
	for _, cb := range r.callbacks[live] {
		cb.dispatch = dispatch
	}
}
