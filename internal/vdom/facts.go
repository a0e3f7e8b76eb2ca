package vdom

import (
	"fmt"
	"reflect"
	"unsafe"
)

type FactKind int

const (
	EventFact FactKind = iota + 1
	StyleFact
	PropertyFact
	AttributeFact
	AttributeNSFact
)

func (k FactKind) String() string {
	switch k {
	case EventFact:
		return "event"
	case StyleFact:
		return "style"
	case PropertyFact:
		return "property"
	case AttributeFact:
		return "attribute"
	case AttributeNSFact:
		return "attribute-ns"
	}
	return fmt.Sprintf("fact(%d)", int(k))
}

// Fact is a single event handler, style, property or attribute of a node.
type Fact struct {
	Kind      FactKind
	Key       string
	Value     any
	Namespace string
	Handler   Handler
}

func On(event string, h Handler) Fact {
	return Fact{Kind: EventFact, Key: event, Handler: h}
}

func Style(name, value string) Fact {
	return Fact{Kind: StyleFact, Key: name, Value: value}
}

func Property(name string, value any) Fact {
	return Fact{Kind: PropertyFact, Key: name, Value: value}
}

func Attribute(name, value string) Fact {
	return Fact{Kind: AttributeFact, Key: name, Value: value}
}

func AttributeNS(namespace, name, value string) Fact {
	return Fact{Kind: AttributeNSFact, Key: name, Value: value, Namespace: namespace}
}

// MapFact maps the messages produced by an event fact. Other facts are
// returned unchanged.
func MapFact(f func(any) any, fact Fact) Fact {
	if fact.Kind != EventFact {
		return fact
	}
	fact.Handler = fact.Handler.Map(f)
	return fact
}

// NSValue is the value of a namespaced attribute.
type NSValue struct {
	Namespace string
	Value     string
}

// Facts is the organized form of a fact list, one map per kind.
type Facts struct {
	Events  map[string]Handler
	Styles  map[string]string
	Props   map[string]any
	Attrs   map[string]string
	AttrsNS map[string]NSValue
}

var emptyFacts = &Facts{}

const (
	classAttribute = "class"
	classProperty  = "className"
)

// Organize groups facts by kind. Later facts win, except that class
// attributes and className properties are joined with a space.
func Organize(list []Fact) *Facts {
	facts := &Facts{}

	for _, fact := range list {
		switch fact.Kind {
		case EventFact:
			if facts.Events == nil {
				facts.Events = map[string]Handler{}
			}
			facts.Events[fact.Key] = fact.Handler

		case StyleFact:
			if facts.Styles == nil {
				facts.Styles = map[string]string{}
			}
			facts.Styles[fact.Key] = toString(fact.Value)

		case PropertyFact:
			if facts.Props == nil {
				facts.Props = map[string]any{}
			}
			if class, ok := fact.Value.(string); ok && fact.Key == classProperty {
				facts.Props[fact.Key] = addClass(facts.Props[fact.Key], class)
				continue
			}
			facts.Props[fact.Key] = fact.Value

		case AttributeFact:
			if facts.Attrs == nil {
				facts.Attrs = map[string]string{}
			}
			value := toString(fact.Value)
			if fact.Key == classAttribute {
				if prev, ok := facts.Attrs[fact.Key]; ok {
					value = prev + " " + value
				}
			}
			facts.Attrs[fact.Key] = value

		case AttributeNSFact:
			if facts.AttrsNS == nil {
				facts.AttrsNS = map[string]NSValue{}
			}
			facts.AttrsNS[fact.Key] = NSValue{Namespace: fact.Namespace, Value: toString(fact.Value)}

		default:
			panic(fmt.Sprintf("vdom: unknown fact kind %d", fact.Kind))
		}
	}

	return facts
}

func addClass(prev any, class string) any {
	if s, ok := prev.(string); ok && s != "" {
		return s + " " + class
	}
	return class
}

func toString(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case nil:
		return ""
	case fmt.Stringer:
		return v.String()
	}
	return fmt.Sprint(v)
}

// sameValue is a == that never panics: uncomparable values are equal when
// they share the same underlying reference. Funcs are equal when they are the
// same closure, not merely the same code.
func sameValue(a, b any) (same bool) {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}

	switch va.Kind() {
	case reflect.Func:
		return funcValue(a) == funcValue(b)
	case reflect.Map, reflect.Chan, reflect.Pointer, reflect.UnsafePointer:
		return va.Pointer() == vb.Pointer()
	case reflect.Slice:
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len()
	}

	if !va.Type().Comparable() {
		return false
	}

	// interface fields may still hold uncomparable values
	defer func() {
		if recover() != nil {
			same = false
		}
	}()
	return a == b
}

// funcValue is the closure a func held in an interface points to. Method
// values and closures made on each call get a fresh one.
func funcValue(f any) unsafe.Pointer {
	return (*[2]unsafe.Pointer)(unsafe.Pointer(&f))[1]
}
