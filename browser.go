//go:build js && wasm

package weave

import (
	"github.com/AnatoleLucet/weave/internal/dom"
	"github.com/AnatoleLucet/weave/internal/platform"
)

type (
	// BrowserHost renders into the page document.
	BrowserHost  = dom.Browser
	BrowserEvent = dom.BrowserEvent
)

func NewBrowserHost() *BrowserHost {
	return dom.NewBrowser()
}

// AnimationFrames draws on requestAnimationFrame, use it with
// WithFrameSource.
type AnimationFrames = platform.AnimationFrames
