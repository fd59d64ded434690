// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package logparse_test

import (
	"errors"
	"strings"
	"testing"

	"code.hybscloud.com/cond"
	"code.hybscloud.com/cond/internal/logparse"
)

var input = []string{"1,ok", "garbage", "2,ok"}

func TestParseEntryWellFormed(t *testing.T) {
	s := cond.NewStack()
	got := logparse.ParseEntry(s, "7,hello, world")
	e, ok := got.(logparse.Entry)
	if !ok || e.Seq != 7 || e.Body != "hello, world" {
		t.Fatalf("got %v, want Entry(7,hello, world)", got)
	}
}

func TestParseEntryUnhandledIsFatal(t *testing.T) {
	_, err := cond.Run(func(s *cond.Stack) logparse.Record {
		return logparse.ParseEntry(s, "garbage")
	})
	var fe *cond.FatalError
	if !errors.As(err, &fe) {
		t.Fatalf("got %v, want *FatalError", err)
	}
	if err.Error() != "Malformed log entry: garbage" {
		t.Fatalf("got %q, want %q", err.Error(), "Malformed log entry: garbage")
	}
	if !fe.Condition.Is(logparse.TagMalformed) || !fe.Condition.Is(cond.TagError) {
		t.Fatalf("unexpected tags %v", fe.Condition.Tags())
	}
}

func TestParseLinesSkip(t *testing.T) {
	got, err := cond.Run(func(s *cond.Stack) []logparse.Record {
		return cond.WithCallingHandlers(s, func() []logparse.Record {
			return logparse.ParseLines(s, input)
		}, cond.Calling(logparse.TagMalformed, func(*cond.Condition) {
			_ = s.InvokeRestart(logparse.RestartSkip)
		}))
	})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"Entry(1,ok)", "<nil>", "Entry(2,ok)"}
	assertRecords(t, got, want)
}

func TestParseLinesUseValue(t *testing.T) {
	got, err := cond.Run(func(s *cond.Stack) []logparse.Record {
		return cond.WithCallingHandlers(s, func() []logparse.Record {
			return logparse.ParseLines(s, input)
		}, cond.Calling(logparse.TagMalformed, func(c *cond.Condition) {
			text, _ := c.Value("text")
			_ = s.InvokeRestart(logparse.RestartUseValue, logparse.Placeholder{Text: text.(string)})
		}))
	})
	if err != nil {
		t.Fatal(err)
	}
	assertRecords(t, got, []string{"Entry(1,ok)", "Placeholder(garbage)", "Entry(2,ok)"})
}

func TestParseLinesReparse(t *testing.T) {
	got, err := cond.Run(func(s *cond.Stack) []logparse.Record {
		return cond.WithCallingHandlers(s, func() []logparse.Record {
			return logparse.ParseLines(s, input)
		}, cond.Calling(logparse.TagMalformed, func(c *cond.Condition) {
			text, _ := c.Value("text")
			_ = s.InvokeRestart(logparse.RestartReparse, "0,"+text.(string))
		}))
	})
	if err != nil {
		t.Fatal(err)
	}
	assertRecords(t, got, []string{"Entry(1,ok)", "Entry(0,garbage)", "Entry(2,ok)"})
}

func TestParseLinesRestartsOffered(t *testing.T) {
	var names []string
	_, _ = cond.Run(func(s *cond.Stack) []logparse.Record {
		return cond.WithCallingHandlers(s, func() []logparse.Record {
			return logparse.ParseLines(s, []string{"bad"})
		}, cond.Calling(logparse.TagMalformed, func(*cond.Condition) {
			for _, r := range s.ComputeRestarts() {
				names = append(names, r.Name())
			}
			_ = s.InvokeRestart(logparse.RestartSkip)
		}))
	})
	want := []string{logparse.RestartUseValue, logparse.RestartReparse, logparse.RestartSkip, cond.RestartAbort}
	if strings.Join(names, " ") != strings.Join(want, " ") {
		t.Fatalf("got %v, want %v", names, want)
	}
}

func TestParseEntryUseValueWrongType(t *testing.T) {
	var invokeErr error
	got, err := cond.Run(func(s *cond.Stack) logparse.Record {
		return cond.WithCallingHandlers(s, func() logparse.Record {
			return logparse.ParseEntry(s, "garbage")
		}, cond.Calling(logparse.TagMalformed, func(*cond.Condition) {
			invokeErr = s.InvokeRestart(logparse.RestartUseValue, "not a record")
			_ = s.InvokeRestart(logparse.RestartUseValue, logparse.Placeholder{Text: "fallback"})
		}))
	})
	if err != nil {
		t.Fatal(err)
	}
	var ae *cond.ArgumentError
	if !errors.As(invokeErr, &ae) {
		t.Fatalf("got %v, want *ArgumentError", invokeErr)
	}
	if got.String() != "Placeholder(fallback)" {
		t.Fatalf("got %v", got)
	}
}

func TestReadLines(t *testing.T) {
	lines, err := logparse.ReadLines(strings.NewReader("1,a\r\n\n2,b\n"))
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != 2 || lines[0] != "1,a" || lines[1] != "2,b" {
		t.Fatalf("got %q", lines)
	}
}

func assertRecords(t *testing.T, got []logparse.Record, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d records, want %d", len(got), len(want))
	}
	for i, r := range got {
		s := "<nil>"
		if r != nil {
			s = r.String()
		}
		if s != want[i] {
			t.Fatalf("record %d: got %s, want %s", i, s, want[i])
		}
	}
}
