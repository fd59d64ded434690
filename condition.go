// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cond

import "maps"

// Conventional tags. A condition carries its own ordered tag list;
// these names only matter to the handlers that select on them.
const (
	TagCondition       = "condition"
	TagError           = "error"
	TagWarning         = "warning"
	TagMessage         = "message"
	TagControlError    = "control_error"
	TagRestartNotFound = "restart_not_found"
	TagRestartInactive = "restart_inactive"
)

// Condition is an immutable value describing an occurrence of interest.
//
// Tags are ordered most specific first and may repeat ancestor tags so that
// several handler predicates match the same condition. Dispatch compares
// conditions by pointer identity only.
//
// *Condition implements error; Error returns the message.
type Condition struct {
	tags    []string
	message string
	call    string
	payload map[string]any
}

// New creates a condition. Tags and payload are copied; the returned
// value is never mutated afterwards. A nil payload is allowed.
func New(tags []string, message string, payload map[string]any) *Condition {
	c := &Condition{
		tags:    append([]string(nil), tags...),
		message: message,
	}
	if len(payload) > 0 {
		c.payload = maps.Clone(payload)
	}
	return c
}

// SimpleError creates a condition tagged simpleError, error, condition.
func SimpleError(message string) *Condition {
	return New([]string{"simpleError", TagError, TagCondition}, message, nil)
}

// SimpleWarning creates a condition tagged simpleWarning, warning, condition.
func SimpleWarning(message string) *Condition {
	return New([]string{"simpleWarning", TagWarning, TagCondition}, message, nil)
}

// SimpleCondition creates a condition tagged simpleCondition, condition.
func SimpleCondition(message string) *Condition {
	return New([]string{"simpleCondition", TagCondition}, message, nil)
}

// WithCall returns a copy of c that records call as the originating call
// reference. The receiver is left unchanged.
func (c *Condition) WithCall(call string) *Condition {
	d := *c
	d.call = call
	return &d
}

// Tags returns a copy of the tag list, most specific first.
func (c *Condition) Tags() []string {
	return append([]string(nil), c.tags...)
}

// Is reports whether c carries tag.
func (c *Condition) Is(tag string) bool {
	for _, t := range c.tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Message returns the human-readable message.
func (c *Condition) Message() string { return c.message }

// Call returns the originating call reference, or "" if none was recorded.
func (c *Condition) Call() string { return c.call }

// Value returns the payload field stored under key.
func (c *Condition) Value(key string) (any, bool) {
	v, ok := c.payload[key]
	return v, ok
}

// Payload returns a copy of the payload fields.
func (c *Condition) Payload() map[string]any {
	return maps.Clone(c.payload)
}

// Error implements error.
func (c *Condition) Error() string { return c.message }

// matches reports whether any of tags is carried by c.
func (c *Condition) matches(tags []string) bool {
	for _, t := range tags {
		if c.Is(t) {
			return true
		}
	}
	return false
}
