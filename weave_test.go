package weave

import (
	"fmt"
	"strings"
)

type counterMsg int

const (
	increment counterMsg = iota
	decrement
)

func counterApp() App[int, counterMsg] {
	return App[int, counterMsg]{
		Init: func() (int, Cmd[counterMsg]) {
			return 0, None[counterMsg]()
		},
		Update: func(msg counterMsg, model int) (int, Cmd[counterMsg]) {
			switch msg {
			case increment:
				return model + 1, None[counterMsg]()
			case decrement:
				return model - 1, None[counterMsg]()
			}
			return model, None[counterMsg]()
		},
		View: func(model int) Node[counterMsg] {
			return El("div", []Attr[counterMsg]{Attribute[counterMsg]("id", "app")},
				El("button", []Attr[counterMsg]{OnMsg("click", decrement)}, Text[counterMsg]("-")),
				El("span", nil, Text[counterMsg](fmt.Sprint(model))),
				El("button", []Attr[counterMsg]{OnMsg("click", increment)}, Text[counterMsg]("+")),
			)
		},
	}
}

func ExampleWorker() {
	p, _ := Worker(counterApp(), WithRuntime(NewRuntime()))

	p.Send(increment)
	p.Send(increment)
	p.Send(decrement)
	fmt.Println(p.Model())

	// Output:
	// 1
}

func ExampleElement() {
	frames := &ManualFrames{}
	rt := NewRuntime(WithFrameSource(frames))

	host := NewMemoryHost()
	body := host.CreateElement("body")
	root := host.CreateElement("div")
	host.SetAttribute(root, "id", "app")
	host.AppendChild(body, root)

	p, _ := Element(counterApp(), host, root, WithRuntime(rt))
	fmt.Println(host.HTML(body))

	plus := host.ChildNodes(host.FirstChild(body))[2]
	host.Dispatch(plus, &MemEvent{Name: "click"})
	host.Dispatch(plus, &MemEvent{Name: "click"})
	fmt.Println(p.Model(), strings.Contains(host.HTML(body), "<span>2</span>"))

	frames.Tick()
	fmt.Println(host.HTML(body))

	// Output:
	// <body><div id="app"><button>-</button><span>0</span><button>+</button></div></body>
	// 2 false
	// <body><div id="app"><button>-</button><span>2</span><button>+</button></div></body>
}
