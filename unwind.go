// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cond

// Non-local exits are carried by panics whose values are unexported types.
// A scope recovers only the token addressed to it; every other panic value,
// including tokens for scopes further out, is re-panicked unchanged. Deferred
// calls on the way run innermost first, which gives unwind-protect semantics
// for free.

// unwind transfers control to the scope that entered target.
// cond is set for a selected catching clause; args for an invoked restart.
type unwind struct {
	target *frame
	slot   int
	cond   *Condition
	args   []any
}

// fatal carries an unhandled error condition out to the Run boundary of
// the Stack that raised it.
type fatal struct {
	stack *Stack
	cond  *Condition
}

// establish runs body inside a new scope on s. bind pushes the scope's
// bindings. It returns either body's value, or the unwind that selected
// this scope; in the latter case every binding established inside the
// scope has already been removed.
func establish[A any](s *Stack, bind func(f *frame), body func() A) (a A, u *unwind) {
	f := s.enter()
	defer func() {
		s.leave(f)
		if r := recover(); r != nil {
			x, ok := r.(*unwind)
			if !ok || x.target != f {
				panic(r)
			}
			u = x
		}
	}()
	bind(f)
	return body(), nil
}

// UnwindProtect evaluates body and runs cleanup when body's extent ends,
// whether by normal return, a non-local exit through it, or an escalated
// error. Cleanups of nested scopes run innermost first.
func UnwindProtect[A any](body func() A, cleanup func()) A {
	defer cleanup()
	return body()
}
