// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package logparse parses "<seq>,<body>" log lines. Malformed lines raise a
// malformed_log_entry_error condition and offer restarts instead of
// deciding how to recover.
package logparse

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"code.hybscloud.com/cond"
)

// Condition tag and restart names offered by this package.
const (
	TagMalformed    = "malformed_log_entry_error"
	RestartSkip     = "skip_log_entry"
	RestartUseValue = "use_value"
	RestartReparse  = "reparse_entry"
)

// Record is the result for one line: an Entry, a Placeholder, or nil for
// a skipped line.
type Record interface {
	fmt.Stringer
	record()
}

// Entry is a well-formed log entry.
type Entry struct {
	Raw  string
	Seq  int
	Body string
}

func (Entry) record() {}

func (e Entry) String() string { return "Entry(" + e.Raw + ")" }

// Placeholder stands in for a line that could not be parsed.
type Placeholder struct {
	Text string
}

func (Placeholder) record() {}

func (p Placeholder) String() string { return "Placeholder(" + p.Text + ")" }

// MalformedEntry creates the condition raised for text.
// The payload field "text" holds the offending line.
func MalformedEntry(text string) *cond.Condition {
	return cond.New(
		[]string{TagMalformed, cond.TagError, cond.TagCondition},
		"Malformed log entry: "+text,
		map[string]any{"text": text},
	)
}

// ParseEntry parses one line. On malformed input it raises
// MalformedEntry(text) with two restarts in effect: use_value takes the
// Record to return, reparse_entry takes replacement text to parse instead.
func ParseEntry(s *cond.Stack, text string) Record {
	if e, ok := parse(text); ok {
		return e
	}
	return cond.WithRestarts(s, func() Record {
		s.Raise(MalformedEntry(text))
		return nil
	},
		cond.Recover1(RestartUseValue, func(r Record) Record {
			return r
		}).Describe("use a value for this entry"),
		cond.Recover1(RestartReparse, func(fixed string) Record {
			return ParseEntry(s, fixed)
		}).Describe("parse a corrected entry"),
	)
}

// ParseLines parses every line, each inside a skip_log_entry restart that
// yields a nil Record.
func ParseLines(s *cond.Stack, lines []string) []Record {
	out := make([]Record, 0, len(lines))
	for _, line := range lines {
		out = append(out, cond.WithRestarts(s, func() Record {
			return ParseEntry(s, line)
		}, cond.Recover0(RestartSkip, func() Record {
			return nil
		}).Describe("skip this entry")))
	}
	return out
}

// ReadLines returns the non-empty lines of r.
func ReadLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if line := strings.TrimRight(sc.Text(), "\r"); line != "" {
			lines = append(lines, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read log lines: %w", err)
	}
	return lines, nil
}

func parse(text string) (Entry, bool) {
	seq, body, ok := strings.Cut(text, ",")
	if !ok || body == "" {
		return Entry{}, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(seq))
	if err != nil {
		return Entry{}, false
	}
	return Entry{Raw: text, Seq: n, Body: body}, true
}
