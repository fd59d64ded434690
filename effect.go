// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cond

import "code.hybscloud.com/kont"

// Condition operations as algebraic effects on [code.hybscloud.com/kont].
// A kont computation performs these operations; [Handle], [HandleExpr] or
// [Advance] interpret them against a Stack. Non-local exits started by an
// operation leave the kont trampoline the same way they leave any other
// Go frame.

// conditionDispatcher is the structural interface for condition operations.
type conditionDispatcher interface {
	DispatchCondition(s *Stack) kont.Resumed
}

// SignalOp is the effect operation for [Stack.Signal].
type SignalOp struct {
	kont.Phantom[struct{}]
	Condition *Condition
}

// DispatchCondition signals the condition on s.
func (o SignalOp) DispatchCondition(s *Stack) kont.Resumed {
	s.Signal(o.Condition)
	return struct{}{}
}

// RaiseOp is the effect operation for [Stack.Raise].
// The computation is never resumed.
type RaiseOp struct {
	kont.Phantom[struct{}]
	Condition *Condition
}

// DispatchCondition raises the condition on s.
func (o RaiseOp) DispatchCondition(s *Stack) kont.Resumed {
	s.Raise(o.Condition)
	return struct{}{}
}

// WarnOp is the effect operation for [Stack.Warn].
type WarnOp struct {
	kont.Phantom[struct{}]
	Condition *Condition
}

// DispatchCondition warns on s.
func (o WarnOp) DispatchCondition(s *Stack) kont.Resumed {
	s.Warn(o.Condition)
	return struct{}{}
}

// FindRestartOp is the effect operation for [Stack.FindRestart].
type FindRestartOp struct {
	kont.Phantom[*Restart]
	Name string
}

// DispatchCondition looks the restart up on s; the result may be nil.
func (o FindRestartOp) DispatchCondition(s *Stack) kont.Resumed {
	return s.FindRestart(o.Name)
}

// InvokeRestartOp is the effect operation for [Stack.InvokeRestart].
// The computation is resumed only with an [*ArgumentError].
type InvokeRestartOp struct {
	kont.Phantom[error]
	Name string
	Args []any
}

// DispatchCondition invokes the restart on s.
func (o InvokeRestartOp) DispatchCondition(s *Stack) kont.Resumed {
	return s.InvokeRestart(o.Name, o.Args...)
}

// Signal performs SignalOp.
func Signal(c *Condition) kont.Eff[struct{}] {
	return kont.Perform(SignalOp{Condition: c})
}

// Raise performs RaiseOp. The result type only fixes the computation's
// type; no value is ever produced.
func Raise[A any](c *Condition) kont.Eff[A] {
	var zero A
	return kont.Then(kont.Perform(RaiseOp{Condition: c}), kont.Pure(zero))
}

// Warn performs WarnOp.
func Warn(c *Condition) kont.Eff[struct{}] {
	return kont.Perform(WarnOp{Condition: c})
}

// FindRestart performs FindRestartOp.
func FindRestart(name string) kont.Eff[*Restart] {
	return kont.Perform(FindRestartOp{Name: name})
}

// InvokeRestart performs InvokeRestartOp.
func InvokeRestart(name string, args ...any) kont.Eff[error] {
	return kont.Perform(InvokeRestartOp{Name: name, Args: args})
}

// conditionHandler implements kont.Handler for condition operations.
// Value type: passed to the trampoline on the stack.
type conditionHandler[R any] struct {
	s *Stack
}

// Dispatch implements kont.Handler via structural interface assertion.
func (h conditionHandler[R]) Dispatch(op kont.Operation) (kont.Resumed, bool) {
	cop, ok := op.(conditionDispatcher)
	if !ok {
		panic("cond: unhandled effect in conditionHandler")
	}
	return cop.DispatchCondition(h.s), true
}

// Handle runs a kont computation, interpreting condition operations on s.
func Handle[A any](s *Stack, m kont.Eff[A]) A {
	return kont.Handle(m, conditionHandler[A]{s: s})
}

// HandleExpr runs a defunctionalized kont computation, interpreting
// condition operations on s.
func HandleExpr[A any](s *Stack, m kont.Expr[A]) A {
	return kont.HandleExpr(m, conditionHandler[A]{s: s})
}

// Advance dispatches the operation a stepped computation is suspended on
// and resumes it. It returns the completed value or the next suspension.
func Advance[A any](s *Stack, susp *kont.Suspension[A]) (A, *kont.Suspension[A]) {
	cop, ok := susp.Op().(conditionDispatcher)
	if !ok {
		panic("cond: unhandled effect in Advance")
	}
	return susp.Resume(cop.DispatchCondition(s))
}
