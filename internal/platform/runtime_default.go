//go:build !wasm

package platform

import (
	"sync"

	"github.com/petermattis/goid"
)

var runtimes sync.Map

// Default returns the runtime of the calling goroutine, creating it on first
// use.
func Default() *Runtime {
	gid := getGID()

	if rt, ok := runtimes.Load(gid); ok {
		return rt.(*Runtime)
	}

	rt := NewRuntime()
	runtimes.Store(gid, rt)
	return rt
}

// Release forgets the runtime of the calling goroutine.
func Release() {
	runtimes.Delete(getGID())
}

func getGID() int64 {
	return goid.Get()
}
