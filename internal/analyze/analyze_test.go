// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package analyze_test

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"code.hybscloud.com/cond"
	"code.hybscloud.com/cond/internal/analyze"
	"code.hybscloud.com/cond/internal/config"
	"code.hybscloud.com/cond/internal/logparse"
)

var input = []string{"1,ok", "garbage", "2,ok"}

func run(t *testing.T, opts analyze.Options, diag *bytes.Buffer) ([]logparse.Record, error) {
	t.Helper()
	return cond.Run(func(s *cond.Stack) []logparse.Record {
		return analyze.Analyze(s, input, opts)
	}, cond.WithDiagnostics(diag))
}

func TestAnalyzeSkip(t *testing.T) {
	records, err := run(t, analyze.Options{Policy: analyze.PolicySkip}, &bytes.Buffer{})
	if err != nil {
		t.Fatal(err)
	}
	sum := analyze.Summarize(records)
	if sum != (analyze.Summary{Entries: 2, Skipped: 1}) {
		t.Fatalf("got %+v", sum)
	}
	if records[1] != nil {
		t.Fatalf("got %v, want nil", records[1])
	}
}

func TestAnalyzeUseValue(t *testing.T) {
	records, err := run(t, analyze.Options{Policy: analyze.PolicyUseValue}, &bytes.Buffer{})
	if err != nil {
		t.Fatal(err)
	}
	if records[1] != (logparse.Placeholder{Text: "garbage"}) {
		t.Fatalf("got %v, want Placeholder(garbage)", records[1])
	}
}

func TestAnalyzeUseValueConfiguredPlaceholder(t *testing.T) {
	records, err := run(t, analyze.Options{Policy: analyze.PolicyUseValue, Placeholder: "-"}, &bytes.Buffer{})
	if err != nil {
		t.Fatal(err)
	}
	if records[1] != (logparse.Placeholder{Text: "-"}) {
		t.Fatalf("got %v, want Placeholder(-)", records[1])
	}
}

func TestAnalyzeReparse(t *testing.T) {
	records, err := run(t, analyze.Options{Policy: analyze.PolicyReparse, ReparseSeq: 5}, &bytes.Buffer{})
	if err != nil {
		t.Fatal(err)
	}
	e, ok := records[1].(logparse.Entry)
	if !ok || e.Seq != 5 || e.Body != "garbage" {
		t.Fatalf("got %v, want Entry(5,garbage)", records[1])
	}
}

func TestAnalyzeFail(t *testing.T) {
	_, err := run(t, analyze.Options{Policy: analyze.PolicyFail}, &bytes.Buffer{})
	if err == nil || err.Error() != "Malformed log entry: garbage" {
		t.Fatalf("got %v, want fatal malformed entry", err)
	}
}

func TestAnalyzeWarnBeforeRecovery(t *testing.T) {
	var diag bytes.Buffer
	_, err := run(t, analyze.Options{Policy: analyze.PolicySkip, Warn: true}, &diag)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(diag.String(), `recovering malformed entry "garbage" by skip`) {
		t.Fatalf("got diagnostics %q", diag.String())
	}
}

func TestAnalyzeWarningMuffledByOuterHandler(t *testing.T) {
	var diag bytes.Buffer
	var seen []string
	_, err := cond.Run(func(s *cond.Stack) []logparse.Record {
		return cond.WithCallingHandlers(s, func() []logparse.Record {
			return analyze.Analyze(s, input, analyze.Options{Policy: analyze.PolicySkip, Warn: true})
		}, cond.Calling(analyze.TagRecovered, func(c *cond.Condition) {
			seen = append(seen, c.Message())
			_ = s.MuffleWarning()
		}))
	}, cond.WithDiagnostics(&diag))
	if err != nil {
		t.Fatal(err)
	}
	if diag.Len() != 0 || len(seen) != 1 {
		t.Fatalf("got diag %q, seen %v", diag.String(), seen)
	}
}

func TestFromConfig(t *testing.T) {
	opts, err := analyze.FromConfig(config.RecoveryConfig{Policy: "reparse", ReparseSeq: 3})
	if err != nil {
		t.Fatal(err)
	}
	if opts.Policy != analyze.PolicyReparse || opts.ReparseSeq != 3 {
		t.Fatalf("got %+v", opts)
	}
	if _, err := analyze.FromConfig(config.RecoveryConfig{Policy: "retry"}); err == nil {
		t.Fatal("expected unknown policy error")
	}
}

func TestHandlersLogRejectedArguments(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	_, err := cond.Run(func(s *cond.Stack) int {
		return cond.WithCallingHandlers(s, func() int {
			return cond.WithRestarts(s, func() int {
				s.Raise(logparse.MalformedEntry("garbage"))
				return 0
			}, cond.Recover1(logparse.RestartUseValue, func(n int) int { return n }))
		}, analyze.Handlers(s, analyze.Options{Policy: analyze.PolicyUseValue})...)
	}, cond.WithLogger(logger))
	var fe *cond.FatalError
	if !errors.As(err, &fe) {
		t.Fatalf("got %v, want *FatalError", err)
	}
	if !strings.Contains(logs.String(), "Recovery declined") || !strings.Contains(logs.String(), "restart=use_value") {
		t.Fatalf("rejected arguments not logged: %q", logs.String())
	}
}
