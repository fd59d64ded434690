// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package cli implements the logscan command line.
package cli

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"code.hybscloud.com/cond/internal/config"
)

var (
	cfgPath string
	isDebug bool
)

// NewRootCmd builds the logscan command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "logscan",
		Short:         "Analyze log files with pluggable recovery policies",
		Long:          `logscan parses "<seq>,<body>" log files. Malformed entries are recovered by the selected policy without changes to the parser.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (default: built-in defaults)")
	root.PersistentFlags().BoolVar(&isDebug, "debug", false, "enable debug logging")
	root.AddCommand(newAnalyzeCmd())
	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		slog.Error("logscan failed", "error", err)
		os.Exit(1)
	}
}

// loadConfig reads .env, then the config file if one was given.
func loadConfig() (*config.Config, error) {
	_ = godotenv.Load()
	if cfgPath == "" {
		if p := os.Getenv("LOGSCAN_CONFIG"); p != "" {
			return config.Load(p)
		}
		return config.Default(), nil
	}
	return config.Load(cfgPath)
}

// setupLogger installs a tint handler on w as the default slog logger.
func setupLogger(w io.Writer, cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	if isDebug || cfg.Logging.Level == "debug" {
		level = slog.LevelDebug
	} else if err := level.UnmarshalText([]byte(cfg.Logging.Level)); err != nil {
		level = slog.LevelInfo
	}
	logger := slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.RFC3339,
	}))
	slog.SetDefault(logger)
	return logger
}
