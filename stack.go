// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cond

import (
	"io"
	"log/slog"
	"os"

	"code.hybscloud.com/atomix"
)

// scopeID labels one dynamic activation of a scope construct in traces.
// It wraps, so control transfer targets the frame itself, never the serial.
type scopeID = uint32

// serials is the global counter for scope labels.
var serials atomix.Uint32

func nextScope() scopeID {
	return serials.Add(1)
}

// discipline selects how a handler binding runs once selected.
type discipline uint8

const (
	catching discipline = iota // unwind to the establishment point, then run
	calling                    // run in place atop the signaling call chain
)

// handlerBinding is one node of the handler chain.
// Catching bindings carry the clause slot of their TryCatch; calling
// bindings carry the handler function itself.
type handlerBinding struct {
	tags       []string
	fn         func(*Condition)
	discipline discipline
	frame      *frame
	slot       int
	next       *handlerBinding
}

// Stack is the per-call-chain registry of handler and restart bindings.
//
// Both registries are persistent singly linked lists whose head is the most
// recently established binding. A scope saves the heads on entry and
// restores them on exit, so removal is O(1) and a removed binding is never
// revisited. A Stack must not be shared between goroutines; each
// independent call chain owns its own Stack.
type Stack struct {
	handlers *handlerBinding
	restarts *Restart
	diag     io.Writer
	log      *slog.Logger
}

// Option configures a Stack.
type Option func(*Stack)

// WithDiagnostics sets the stream that unhandled warnings and messages are
// written to. The default is os.Stderr.
func WithDiagnostics(w io.Writer) Option {
	return func(s *Stack) { s.diag = w }
}

// WithLogger sets the logger used for dispatch tracing at debug level.
// The default logger discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(s *Stack) { s.log = l }
}

// NewStack creates an empty Stack.
func NewStack(opts ...Option) *Stack {
	s := &Stack{
		diag: os.Stderr,
		log:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Logger returns the logger the Stack traces dispatch with.
func (s *Stack) Logger() *slog.Logger { return s.log }

// frame records the registry heads at scope entry and the restarts the
// scope itself established.
type frame struct {
	id       scopeID
	handlers *handlerBinding
	restarts *Restart
	own      []*Restart
}

func (s *Stack) enter() *frame {
	return &frame{
		id:       nextScope(),
		handlers: s.handlers,
		restarts: s.restarts,
	}
}

// leave pops everything established since f was entered.
func (s *Stack) leave(f *frame) {
	s.handlers = f.handlers
	s.restarts = f.restarts
	for _, r := range f.own {
		r.active = false
	}
}

func (s *Stack) pushHandler(b *handlerBinding) {
	b.next = s.handlers
	s.handlers = b
}

func (s *Stack) pushRestart(f *frame, r *Restart) {
	r.next = s.restarts
	s.restarts = r
	f.own = append(f.own, r)
}
