// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cond

// Bracket provides resource acquisition and release that survives
// non-local exits: acquire → use → release, where release runs whether use
// returns, a restart or catching handler unwinds through it, or an error
// escalates past it.
//
// If acquire itself exits non-locally, release is not called.
func Bracket[R, A any](acquire func() R, release func(R), use func(R) A) A {
	r := acquire()
	return UnwindProtect(func() A {
		return use(r)
	}, func() {
		release(r)
	})
}

// OnUnwind runs cleanup only when body's extent ends by something other
// than a normal return. The unwind itself continues after cleanup.
func OnUnwind[A any](body func() A, cleanup func()) A {
	done := false
	defer func() {
		if !done {
			cleanup()
		}
	}()
	a := body()
	done = true
	return a
}
