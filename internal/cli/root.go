package cli

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/mordilloSan/go-console/logger"
)

type rootOptions struct {
	level     logger.Level
	threshold logger.Level
	prefix    string
	timestamp bool
	icons     bool
	color     string
	decode    bool
}

func newRootCmd() *cobra.Command {
	opts := rootOptions{
		level:     logger.InfoLevel,
		threshold: logger.DebugLevel,
		icons:     true,
		color:     "auto",
	}
	cmd := &cobra.Command{
		Use:   "go-console [flags] message...",
		Short: "go-console – print one decorated log line",
		Long: "go-console renders its arguments as a single leveled console line, " +
			"the same way the logger package does for Go programs.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	f := cmd.Flags()
	f.VarP(&opts.level, "level", "l", "message level: debug, info, warn, error, success")
	f.Var(&opts.threshold, "threshold", "lowest level that is printed")
	f.StringVar(&opts.prefix, "prefix", "", "text printed before the level tag")
	f.BoolVar(&opts.timestamp, "timestamp", false, "print an ISO-8601 UTC timestamp")
	f.BoolVar(&opts.icons, "icons", true, "print a level icon")
	f.StringVar(&opts.color, "color", opts.color, "when to use colors: auto, always, never")
	f.BoolVar(&opts.decode, "json", false, "decode each argument as JSON before printing")
	return cmd
}

func run(cmd *cobra.Command, opts rootOptions, args []string) error {
	mode, err := parseColorMode(opts.color)
	if err != nil {
		return err
	}
	log := logger.New(
		logger.WithOutput(cmd.OutOrStdout(), cmd.ErrOrStderr()),
		logger.WithLevel(opts.threshold),
		logger.WithPrefix(opts.prefix),
		logger.WithTimestamp(opts.timestamp),
		logger.WithIcons(opts.icons),
		logger.WithColor(mode),
	)

	values := make([]any, len(args))
	for i, arg := range args {
		values[i] = arg
		if !opts.decode {
			continue
		}
		var v any
		if err := json.Unmarshal([]byte(arg), &v); err == nil {
			values[i] = v
		}
	}

	switch opts.level {
	case logger.DebugLevel:
		log.Debug(values...)
	case logger.InfoLevel:
		log.Info(values...)
	case logger.WarnLevel:
		log.Warn(values...)
	case logger.ErrorLevel:
		log.Error(values...)
	case logger.SuccessLevel:
		log.Success(values...)
	}
	return nil
}

func parseColorMode(s string) (logger.ColorMode, error) {
	switch s {
	case "auto":
		return logger.ColorAuto, nil
	case "always":
		return logger.ColorAlways, nil
	case "never":
		return logger.ColorNever, nil
	}
	return 0, fmt.Errorf("invalid --color %q (want auto, always or never)", s)
}

// Execute runs the CLI.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
