// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"code.hybscloud.com/cond"
	"code.hybscloud.com/cond/internal/analyze"
	"code.hybscloud.com/cond/internal/follow"
	"code.hybscloud.com/cond/internal/logparse"
)

func newAnalyzeCmd() *cobra.Command {
	var (
		policy   string
		warn     bool
		followUp bool
	)
	cmd := &cobra.Command{
		Use:   "analyze FILE",
		Short: "Parse a log file and print one line per record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("policy") {
				cfg.Recovery.Policy = policy
			}
			if cmd.Flags().Changed("warn") {
				cfg.Recovery.Warn = warn
			}
			logger := setupLogger(cmd.ErrOrStderr(), cfg)
			opts, err := analyze.FromConfig(cfg.Recovery)
			if err != nil {
				return err
			}
			return runAnalyze(cmd.Context(), args[0], opts, followUp, cmd.OutOrStdout(), cmd.ErrOrStderr(), logger)
		},
	}
	cmd.Flags().StringVar(&policy, "policy", "skip", "recovery policy: skip, use-value, reparse, fail")
	cmd.Flags().BoolVar(&warn, "warn", false, "warn before each recovery")
	cmd.Flags().BoolVar(&followUp, "follow", false, "keep analyzing lines appended to FILE")
	return cmd
}

func runAnalyze(ctx context.Context, path string, opts analyze.Options, followUp bool, out, diag io.Writer, logger *slog.Logger) error {
	if !followUp {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		lines, err := logparse.ReadLines(f)
		f.Close()
		if err != nil {
			return err
		}
		return analyzeBatch(lines, opts, out, diag, logger)
	}

	// A trailing line without a newline stays in the tail until the
	// writer completes it.
	t, err := follow.Open(path, 0)
	if err != nil {
		return err
	}
	defer t.Close()
	lines, err := t.Next()
	if err != nil {
		return fmt.Errorf("failed to read log file: %w", err)
	}
	if err := analyzeBatch(lines, opts, out, diag, logger); err != nil {
		return err
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("Following log file", "path", path)
	var batchErr error
	err = follow.Watch(ctx, t, func(lines []string) {
		if batchErr == nil {
			batchErr = analyzeBatch(lines, opts, out, diag, logger)
			if batchErr != nil {
				stop()
			}
		}
	})
	if batchErr != nil {
		return batchErr
	}
	return err
}

// analyzeBatch runs one top-level operation over lines. Each batch owns a
// fresh condition stack.
func analyzeBatch(lines []string, opts analyze.Options, out, diag io.Writer, logger *slog.Logger) error {
	records, err := cond.Run(func(s *cond.Stack) []logparse.Record {
		return analyze.Analyze(s, lines, opts)
	}, cond.WithDiagnostics(diag), cond.WithLogger(logger))
	if err != nil {
		return err
	}
	for _, r := range records {
		if r == nil {
			fmt.Fprintln(out, "skipped")
			continue
		}
		fmt.Fprintln(out, r.String())
	}
	sum := analyze.Summarize(records)
	logger.Info("Analyzed log entries",
		"entries", sum.Entries,
		"placeholders", sum.Placeholders,
		"skipped", sum.Skipped,
	)
	return nil
}
