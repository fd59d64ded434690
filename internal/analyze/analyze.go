// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package analyze drives log parsing under a recovery policy. The policy
// is installed as calling handlers; the parser itself is unaware of it.
package analyze

import (
	"fmt"
	"strconv"

	"code.hybscloud.com/cond"
	"code.hybscloud.com/cond/internal/config"
	"code.hybscloud.com/cond/internal/logparse"
)

// Policy names a recovery strategy for malformed entries.
type Policy string

const (
	PolicySkip     Policy = "skip"
	PolicyUseValue Policy = "use-value"
	PolicyReparse  Policy = "reparse"
	PolicyFail     Policy = "fail"
)

// TagRecovered tags the warning issued before a recovery when enabled.
const TagRecovered = "recovered_log_entry"

// ParsePolicy validates a policy name.
func ParsePolicy(name string) (Policy, error) {
	switch p := Policy(name); p {
	case PolicySkip, PolicyUseValue, PolicyReparse, PolicyFail:
		return p, nil
	}
	return "", fmt.Errorf("unknown recovery policy %q", name)
}

// Options configures Analyze.
type Options struct {
	Policy      Policy
	Placeholder string
	ReparseSeq  int
	Warn        bool
}

// FromConfig builds Options from the recovery section of cfg.
func FromConfig(cfg config.RecoveryConfig) (Options, error) {
	p, err := ParsePolicy(cfg.Policy)
	if err != nil {
		return Options{}, err
	}
	return Options{
		Policy:      p,
		Placeholder: cfg.Placeholder,
		ReparseSeq:  cfg.ReparseSeq,
		Warn:        cfg.Warn,
	}, nil
}

// Handlers returns the calling handlers implementing opts.Policy on s.
// PolicyFail installs none, so malformed entries escalate.
func Handlers(s *cond.Stack, opts Options) []cond.Handler {
	// invoke returns only when the restart rejects the arguments; the
	// handler then declines.
	invoke := func(name string, args ...any) {
		if err := s.InvokeRestart(name, args...); err != nil {
			s.Logger().Debug("Recovery declined", "restart", name, "error", err)
		}
	}
	var restart func(c *cond.Condition, text string)
	switch opts.Policy {
	case PolicySkip:
		restart = func(*cond.Condition, string) {
			invoke(logparse.RestartSkip)
		}
	case PolicyUseValue:
		restart = func(_ *cond.Condition, text string) {
			if opts.Placeholder != "" {
				text = opts.Placeholder
			}
			invoke(logparse.RestartUseValue, logparse.Placeholder{Text: text})
		}
	case PolicyReparse:
		restart = func(_ *cond.Condition, text string) {
			invoke(logparse.RestartReparse, strconv.Itoa(opts.ReparseSeq)+","+text)
		}
	default:
		return nil
	}
	return []cond.Handler{
		cond.Calling(logparse.TagMalformed, func(c *cond.Condition) {
			v, _ := c.Value("text")
			text, _ := v.(string)
			if opts.Warn {
				s.Warn(cond.New(
					[]string{TagRecovered, cond.TagWarning, cond.TagCondition},
					fmt.Sprintf("recovering malformed entry %q by %s", text, opts.Policy),
					map[string]any{"text": text, "policy": string(opts.Policy)},
				))
			}
			restart(c, text)
		}),
	}
}

// Analyze parses lines on s with the policy handlers in effect.
func Analyze(s *cond.Stack, lines []string, opts Options) []logparse.Record {
	return cond.WithCallingHandlers(s, func() []logparse.Record {
		return logparse.ParseLines(s, lines)
	}, Handlers(s, opts)...)
}

// Summary counts the outcome of an analysis.
type Summary struct {
	Entries      int
	Placeholders int
	Skipped      int
}

// Summarize counts records by kind.
func Summarize(records []logparse.Record) Summary {
	var sum Summary
	for _, r := range records {
		switch r.(type) {
		case logparse.Entry:
			sum.Entries++
		case logparse.Placeholder:
			sum.Placeholders++
		case nil:
			sum.Skipped++
		}
	}
	return sum
}
