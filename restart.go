// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cond

import (
	"fmt"
	"strconv"
)

// Restart is a reference to an established restart binding.
// It stays valid for lookup after its scope exits, but invoking it then
// raises a restart_inactive control error.
type Restart struct {
	name   string
	desc   string
	check  func(args []any) error
	frame  *frame
	slot   int
	stack  *Stack
	active bool
	next   *Restart
}

// Name returns the restart name.
func (r *Restart) Name() string { return r.name }

// Description returns the report text attached with [RecoverSpec.Describe].
func (r *Restart) Description() string { return r.desc }

// Active reports whether the establishing scope is still on the stack.
func (r *Restart) Active() bool { return r.active }

func (r *Restart) String() string {
	if r.desc != "" {
		return r.name + ": " + r.desc
	}
	return r.name
}

// Invoke transfers control to the scope that established r, calls the
// recovery function with args there, and makes its result the value of
// that [WithRestarts].
//
// Invoke returns only when args do not fit the recovery function; the
// check happens before anything is unwound.
func (r *Restart) Invoke(args ...any) error {
	if !r.active {
		r.stack.Raise(restartInactive(r.name))
	}
	if r.check != nil {
		if err := r.check(args); err != nil {
			return err
		}
	}
	r.stack.log.Debug("cond: invoke restart", "name", r.name, "scope", r.frame.id)
	panic(&unwind{target: r.frame, slot: r.slot, args: args})
}

// RecoverSpec describes a restart to establish with [WithRestarts].
// Build one with [Recover], [Recover0] or [Recover1]; the zero value is
// rejected.
type RecoverSpec[A any] struct {
	name  string
	desc  string
	check func(args []any) error
	fn    func(args []any) A
}

// Describe returns a copy of the spec with a report string attached.
func (r RecoverSpec[A]) Describe(text string) RecoverSpec[A] {
	r.desc = text
	return r
}

// Recover creates a restart whose recovery function accepts any arguments.
func Recover[A any](name string, fn func(args ...any) A) RecoverSpec[A] {
	return RecoverSpec[A]{
		name:  name,
		check: func([]any) error { return nil },
		fn:    func(args []any) A { return fn(args...) },
	}
}

// Recover0 creates a restart whose recovery function takes no arguments.
func Recover0[A any](name string, fn func() A) RecoverSpec[A] {
	return RecoverSpec[A]{
		name: name,
		check: func(args []any) error {
			return checkArity(name, 0, args)
		},
		fn: func([]any) A { return fn() },
	}
}

// Recover1 creates a restart whose recovery function takes one argument
// of type T.
func Recover1[A, T any](name string, fn func(T) A) RecoverSpec[A] {
	return RecoverSpec[A]{
		name: name,
		check: func(args []any) error {
			if err := checkArity(name, 1, args); err != nil {
				return err
			}
			if _, ok := argAs[T](args[0]); !ok {
				var zero T
				return &ArgumentError{
					Restart: name,
					Reason:  fmt.Sprintf("argument 0 is %T, want %T", args[0], zero),
				}
			}
			return nil
		},
		fn: func(args []any) A {
			v, _ := argAs[T](args[0])
			return fn(v)
		},
	}
}

// argAs converts an argument to T. An untyped nil converts to the zero
// value when T is an interface type.
func argAs[T any](arg any) (T, bool) {
	if v, ok := arg.(T); ok {
		return v, true
	}
	var zero T
	return zero, arg == nil && any(zero) == nil
}

func checkArity(name string, want int, args []any) error {
	if len(args) == want {
		return nil
	}
	return &ArgumentError{
		Restart: name,
		Reason:  "got " + strconv.Itoa(len(args)) + " arguments, want " + strconv.Itoa(want),
	}
}

// ArgumentError reports arguments that do not fit a restart's recovery
// function. It is returned at the invocation site; nothing is unwound.
type ArgumentError struct {
	Restart string
	Reason  string
}

func (e *ArgumentError) Error() string {
	return "cond: restart " + strconv.Quote(e.Restart) + ": " + e.Reason
}

// WithRestarts evaluates body with restarts established.
//
// If body returns normally its value is returned. If one of the restarts is
// invoked from anywhere inside body, including a calling handler, control
// unwinds here, the recovery function runs with the invocation arguments,
// and its result is returned.
//
// Duplicate names are allowed; the innermost binding shadows the others.
// Among the restarts of one call the first declared is found first.
func WithRestarts[A any](s *Stack, body func() A, restarts ...RecoverSpec[A]) A {
	for i := range restarts {
		if restarts[i].fn == nil {
			panic("cond: restart " + strconv.Quote(restarts[i].name) + " has no recovery function")
		}
	}
	a, u := establish(s, func(f *frame) {
		for i := len(restarts) - 1; i >= 0; i-- {
			s.pushRestart(f, &Restart{
				name:   restarts[i].name,
				desc:   restarts[i].desc,
				check:  restarts[i].check,
				frame:  f,
				slot:   i,
				stack:  s,
				active: true,
			})
		}
	}, body)
	if u == nil {
		return a
	}
	return restarts[u.slot].fn(u.args)
}

// FindRestart returns the most recently established restart named name,
// or nil. It has no side effects.
func (s *Stack) FindRestart(name string) *Restart {
	for r := s.restarts; r != nil; r = r.next {
		if r.name == name {
			return r
		}
	}
	return nil
}

// ComputeRestarts returns every visible restart, innermost first.
func (s *Stack) ComputeRestarts() []*Restart {
	var rs []*Restart
	for r := s.restarts; r != nil; r = r.next {
		rs = append(rs, r)
	}
	return rs
}

// InvokeRestart invokes the restart FindRestart(name) would return.
// If there is none, a restart_not_found control error is raised through
// the normal dispatcher. See [Restart.Invoke] for the returned error.
func (s *Stack) InvokeRestart(name string, args ...any) error {
	r := s.FindRestart(name)
	if r == nil {
		s.Raise(restartNotFound(name))
	}
	return r.Invoke(args...)
}

// RestartFunc returns a function that invokes the restart named name on s.
func RestartFunc(s *Stack, name string) func(args ...any) error {
	return func(args ...any) error {
		return s.InvokeRestart(name, args...)
	}
}

func restartNotFound(name string) *Condition {
	return New(
		[]string{TagRestartNotFound, TagControlError, TagError, TagCondition},
		"no restart "+strconv.Quote(name)+" is active",
		map[string]any{"restart": name},
	)
}

func restartInactive(name string) *Condition {
	return New(
		[]string{TagRestartInactive, TagControlError, TagError, TagCondition},
		"restart "+strconv.Quote(name)+" is no longer active",
		map[string]any{"restart": name},
	)
}
