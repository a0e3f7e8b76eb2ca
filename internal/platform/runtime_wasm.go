//go:build wasm

package platform

import "sync"

var once sync.Once
var globalRuntime *Runtime

// Default returns the only runtime, wasm programs run on a single thread.
func Default() *Runtime {
	once.Do(func() {
		globalRuntime = NewRuntime()
	})

	return globalRuntime
}

func Release() {}
