//go:build js && wasm

package platform

import "syscall/js"

// AnimationFrames paces the render loop with requestAnimationFrame.
type AnimationFrames struct{}

func (AnimationFrames) RequestFrame(fn func()) {
	var cb js.Func
	cb = js.FuncOf(func(js.Value, []js.Value) any {
		cb.Release()
		fn()
		return nil
	})
	js.Global().Call("requestAnimationFrame", cb)
}
