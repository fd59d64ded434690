// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cond

import "fmt"

// Restart names established by the standard protocols.
const (
	RestartMuffleWarning = "muffleWarning"
	RestartMuffleMessage = "muffleMessage"
	RestartAbort         = "abort"
)

// Signal dispatches c to the active handlers, innermost first.
//
// A matching calling handler runs in place; if it returns, the search
// continues outward. A matching catching handler unwinds to its TryCatch
// and the search ends. If no handler transfers control, Signal returns
// normally: signaling alone has no effect on control flow.
func (s *Stack) Signal(c *Condition) {
	s.log.Debug("cond: signal", "tags", c.tags, "message", c.message)
	for b := s.handlers; b != nil; b = b.next {
		if !c.matches(b.tags) {
			continue
		}
		if b.discipline == catching {
			s.log.Debug("cond: unwind to catching handler", "scope", b.frame.id)
			panic(&unwind{target: b.frame, slot: b.slot, cond: c})
		}
		s.runCalling(b, c)
	}
}

// Raise signals c and, if no handler transfers control, abandons the
// current operation: control escapes to the enclosing [Run], which reports
// c as a [*FatalError]. Raise never returns normally.
func (s *Stack) Raise(c *Condition) {
	s.Signal(c)
	s.log.Debug("cond: unhandled error", "message", c.message)
	panic(&fatal{stack: s, cond: c})
}

// Warn signals c with a muffleWarning restart established around the
// signal. If nothing handles it, the message is written to the diagnostic
// stream. Warn returns normally in both cases.
func (s *Stack) Warn(c *Condition) {
	s.report(c, RestartMuffleWarning)
}

// Message is Warn for informational conditions; the restart is named
// muffleMessage.
func (s *Stack) Message(c *Condition) {
	s.report(c, RestartMuffleMessage)
}

func (s *Stack) report(c *Condition, muffle string) {
	WithRestarts(s, func() struct{} {
		s.Signal(c)
		fmt.Fprintln(s.diag, c.message)
		return struct{}{}
	}, Recover0(muffle, func() struct{} {
		return struct{}{}
	}))
}

// MuffleWarning invokes the innermost muffleWarning restart.
func (s *Stack) MuffleWarning() error {
	return s.InvokeRestart(RestartMuffleWarning)
}

// MuffleMessage invokes the innermost muffleMessage restart.
func (s *Stack) MuffleMessage() error {
	return s.InvokeRestart(RestartMuffleMessage)
}
