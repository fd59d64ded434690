// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cond

// Clause is a catching handler clause for [TryCatch].
type Clause[A any] struct {
	tags []string
	fn   func(*Condition) A
}

// Catching creates a clause selected by conditions carrying tag.
// Once selected, control unwinds to the enclosing TryCatch and fn's
// result becomes the value of that TryCatch.
func Catching[A any](tag string, fn func(*Condition) A) Clause[A] {
	return Clause[A]{tags: []string{tag}, fn: fn}
}

// Also returns a copy of the clause that additionally accepts tags.
func (c Clause[A]) Also(tags ...string) Clause[A] {
	c.tags = append(append([]string(nil), c.tags...), tags...)
	return c
}

// Handler is a calling handler for [WithCallingHandlers].
type Handler struct {
	tags []string
	fn   func(*Condition)
}

// Calling creates a handler selected by conditions carrying tag.
// fn runs in place; returning normally declines and the search continues
// outward. To act, fn invokes a restart or otherwise exits non-locally.
func Calling(tag string, fn func(*Condition)) Handler {
	return Handler{tags: []string{tag}, fn: fn}
}

// Also returns a copy of the handler that additionally accepts tags.
func (h Handler) Also(tags ...string) Handler {
	h.tags = append(append([]string(nil), h.tags...), tags...)
	return h
}

// TryCatch evaluates body with clauses established as catching handlers.
//
// If body returns normally its value is returned. If a condition signaled
// inside body selects one of the clauses, every binding established inside
// body is removed, deferred cleanups run, and the clause's result is
// returned instead. At most one clause fires per call.
//
// Among the clauses of one TryCatch the first declared is searched first.
func TryCatch[A any](s *Stack, body func() A, clauses ...Clause[A]) A {
	a, u := establish(s, func(f *frame) {
		for i := len(clauses) - 1; i >= 0; i-- {
			s.pushHandler(&handlerBinding{
				tags:       clauses[i].tags,
				discipline: catching,
				frame:      f,
				slot:       i,
			})
		}
	}, body)
	if u == nil {
		return a
	}
	return clauses[u.slot].fn(u.cond)
}

// Try evaluates body and converts any condition tagged error that reaches
// it into an ordinary Go error.
func Try[A any](s *Stack, body func() A) (A, error) {
	var err error
	a := TryCatch(s, body, Catching(TagError, func(c *Condition) A {
		err = c
		var zero A
		return zero
	}))
	return a, err
}

// WithCallingHandlers evaluates body with handlers established as calling
// handlers.
//
// A selected handler runs on top of the signaling call chain, so restarts
// established inside body remain visible to it. While it runs, only the
// handlers outer to it are visible to nested signals. Among the handlers of
// one call the first declared is searched first.
func WithCallingHandlers[A any](s *Stack, body func() A, handlers ...Handler) A {
	a, _ := establish(s, func(f *frame) {
		for i := len(handlers) - 1; i >= 0; i-- {
			s.pushHandler(&handlerBinding{
				tags:       handlers[i].tags,
				fn:         handlers[i].fn,
				discipline: calling,
				frame:      f,
				slot:       i,
			})
		}
	}, body)
	return a
}

// runCalling invokes a calling handler with the handler chain narrowed to
// the bindings outer to b.
func (s *Stack) runCalling(b *handlerBinding, c *Condition) {
	saved := s.handlers
	s.handlers = b.next
	defer func() { s.handlers = saved }()
	b.fn(c)
}
