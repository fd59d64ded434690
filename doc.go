// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package cond provides a condition and restart system for Go.
//
// Exception handling fuses three concerns: detecting a problem, deciding how
// to recover, and performing the recovery. cond separates them. Low-level
// code signals a [Condition] and offers named recovery actions (restarts)
// without choosing among them; high-level code installs handlers that pick a
// restart without knowing how it works or re-implementing the call chain in
// between.
//
// # Design Philosophy
//
// cond provides:
//   - Explicit per-call-chain state: a [Stack] holds the handler and restart
//     bindings and is passed like a context value
//   - Strict dynamic scoping: every binding is pushed on scope entry and
//     removed on scope exit, by any path
//   - Non-local exits on Go's own unwinding, so deferred calls run as cleanup
//     and unrelated panics pass through untouched
//
// # Conditions
//
// A [Condition] is an immutable value with an ordered tag list, a message,
// an optional originating call reference and a payload map. Handlers select
// conditions by tag intersection; there is no class hierarchy.
//
//   - [New]: Create a condition
//   - [SimpleError], [SimpleWarning], [SimpleCondition]: Conventional tag chains
//   - [Condition.WithCall]: Copy with an originating call reference
//
// # Signaling
//
//   - [Stack.Signal]: Dispatch to handlers, innermost first; returns normally
//     when nothing acts
//   - [Stack.Raise]: Signal, then escalate to a fatal failure
//   - [Stack.Warn]: Signal with a muffleWarning restart; print if unhandled
//   - [Stack.Message]: Signal with a muffleMessage restart; print if unhandled
//
// # Handlers
//
// Two disciplines:
//
//   - [TryCatch] with [Catching] clauses: a selected clause unwinds to the
//     TryCatch and its result replaces the body's
//   - [WithCallingHandlers] with [Calling] handlers: a selected handler runs
//     in place, sees the restarts established closer to the signal, and
//     declines by returning
//   - [Try]: Convert error conditions into Go errors
//
// # Restarts
//
//   - [WithRestarts] with [Recover], [Recover0], [Recover1]: Establish restarts
//   - [Stack.FindRestart], [Stack.ComputeRestarts]: Look up without side effects
//   - [Stack.InvokeRestart], [Restart.Invoke]: Unwind to the restart and run it
//   - [RestartFunc]: A first-class function bound to a restart name
//   - [Stack.MuffleWarning], [Stack.MuffleMessage], [Stack.Abort]: Standard restarts
//
// Invoking an unknown name raises a restart_not_found control error; invoking
// a reference whose scope has exited raises restart_inactive. Arguments that
// do not fit the recovery function are reported as an [*ArgumentError] at the
// call site, before anything is unwound.
//
// # Top Level
//
//   - [Run]: Execute an operation on a fresh Stack; unhandled errors become
//     [*FatalError], abort becomes [ErrAborted]
//   - [RunEither]: Same, as a [code.hybscloud.com/kont.Either]
//
// # Resource Safety
//
//   - [UnwindProtect]: Cleanup on every exit path
//   - [Bracket]: Acquire-release-use with guaranteed release
//   - [OnUnwind]: Cleanup only on non-local exit
//
// # Effects
//
// Computations written with [code.hybscloud.com/kont] can use conditions as
// algebraic effects:
//
//   - [SignalOp], [RaiseOp], [WarnOp], [FindRestartOp], [InvokeRestartOp]: Operations
//   - [Signal], [Raise], [Warn], [FindRestart], [InvokeRestart]: Perform constructors
//   - [Handle], [HandleExpr]: Run against a Stack
//   - [Advance]: Dispatch one suspended operation for stepped evaluation
//
// # Example
//
//	parse := func(s *cond.Stack, text string) Entry {
//		return cond.WithRestarts(s, func() Entry {
//			if !valid(text) {
//				s.Raise(cond.New([]string{"malformed", "error"}, "bad entry: "+text, nil))
//			}
//			return Entry{text}
//		}, cond.Recover1("use_value", func(e Entry) Entry { return e }))
//	}
//
//	entries, err := cond.Run(func(s *cond.Stack) []Entry {
//		return cond.WithCallingHandlers(s, func() []Entry {
//			return []Entry{parse(s, "ok"), parse(s, "garbage")}
//		}, cond.Calling("malformed", func(c *cond.Condition) {
//			_ = s.InvokeRestart("use_value", Entry{"placeholder"})
//		}))
//	})
//	// entries == [{ok} {placeholder}], err == nil
package cond
