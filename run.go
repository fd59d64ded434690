// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cond

import (
	"errors"

	"code.hybscloud.com/kont"
)

// ErrAborted is returned by [Run] when the top-level abort restart is invoked.
var ErrAborted = errors.New("cond: aborted")

// FatalError reports an error condition that no handler resolved.
type FatalError struct {
	Condition *Condition
}

// Error returns the condition message, prefixed by the originating call
// reference when the condition carries one.
func (e *FatalError) Error() string {
	if call := e.Condition.Call(); call != "" {
		return "Error in " + call + ": " + e.Condition.Message()
	}
	return e.Condition.Message()
}

// Unwrap returns the condition.
func (e *FatalError) Unwrap() error { return e.Condition }

// Run executes body on a fresh [Stack] as one top-level operation.
//
// Run establishes the abort restart around body. An error condition that
// escapes every handler ends the operation with a [*FatalError]; invoking
// abort ends it with [ErrAborted]. Any other panic propagates unchanged.
func Run[A any](body func(s *Stack) A, opts ...Option) (a A, err error) {
	s := NewStack(opts...)
	defer func() {
		if r := recover(); r != nil {
			f, ok := r.(*fatal)
			if !ok || f.stack != s {
				panic(r)
			}
			var zero A
			a, err = zero, &FatalError{Condition: f.cond}
		}
	}()
	aborted := false
	a = WithRestarts(s, func() A {
		return body(s)
	}, Recover0(RestartAbort, func() A {
		aborted = true
		var zero A
		return zero
	}).Describe("abort the current operation"))
	if aborted {
		return a, ErrAborted
	}
	return a, nil
}

// RunEither is Run with the outcome as an Either: Left carries the
// unhandled error condition, Right the value. Abort yields Left with a
// condition tagged abort.
func RunEither[A any](body func(s *Stack) A, opts ...Option) kont.Either[*Condition, A] {
	a, err := Run(body, opts...)
	if err == nil {
		return kont.Right[*Condition](a)
	}
	var fe *FatalError
	if errors.As(err, &fe) {
		return kont.Left[*Condition, A](fe.Condition)
	}
	return kont.Left[*Condition, A](New([]string{RestartAbort, TagCondition}, err.Error(), nil))
}

// Abort invokes the innermost abort restart.
func (s *Stack) Abort() error {
	return s.InvokeRestart(RestartAbort)
}
