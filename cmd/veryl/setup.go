package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"veryl/internal/observ"
	"veryl/internal/prof"
	"veryl/internal/trace"
)

type runState struct {
	logger  *slog.Logger
	timer   *observ.Timer
	cleanup func()
}

type runStateKey struct{}

func stateOf(cmd *cobra.Command) *runState {
	if ctx := cmd.Context(); ctx != nil {
		if st, ok := ctx.Value(runStateKey{}).(*runState); ok {
			return st
		}
	}
	return &runState{logger: slog.New(slog.DiscardHandler), timer: observ.NewTimer(), cleanup: func() {}}
}

// setupRun builds the logger, the tracer and the timer shared by a command.
func setupRun(cmd *cobra.Command, _ []string) error {
	flags := cmd.Root().PersistentFlags()
	levelStr, err := flags.GetString("log-level")
	if err != nil {
		return fmt.Errorf("failed to get log-level flag: %w", err)
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(levelStr))); err != nil {
		return fmt.Errorf("invalid log level %q: %w", levelStr, err)
	}
	quiet, err := flags.GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if quiet {
		level = max(level, slog.LevelError)
	}
	st := &runState{
		logger: slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})),
		timer:  observ.NewTimer(),
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, closeTrace, err := setupTracing(ctx, cmd)
	if err != nil {
		return err
	}
	session, err := startProfiling(cmd)
	if err != nil {
		closeTrace()
		return err
	}
	st.cleanup = func() {
		if err := session.Stop(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "profile: %v\n", err)
		}
		closeTrace()
	}
	cmd.SetContext(context.WithValue(ctx, runStateKey{}, st))
	return nil
}

func finishRun(cmd *cobra.Command) {
	st := stateOf(cmd)
	st.cleanup()
}

func startProfiling(cmd *cobra.Command) (*prof.Session, error) {
	flags := cmd.Root().PersistentFlags()
	var cfg prof.Config
	for name, dst := range map[string]*string{
		"cpu-profile":   &cfg.CPUPath,
		"mem-profile":   &cfg.MemPath,
		"runtime-trace": &cfg.TracePath,
	} {
		v, err := flags.GetString(name)
		if err != nil {
			return nil, fmt.Errorf("failed to get %s flag: %w", name, err)
		}
		*dst = v
	}
	if !cfg.Enabled() {
		return nil, nil
	}
	return prof.Start(cfg)
}

// setupTracing inspects trace-related flags and attaches a tracer to ctx.
func setupTracing(ctx context.Context, cmd *cobra.Command) (context.Context, func(), error) {
	flags := cmd.Root().PersistentFlags()
	output, err := flags.GetString("trace")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get trace flag: %w", err)
	}
	levelStr, err := flags.GetString("trace-level")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get trace-level flag: %w", err)
	}
	formatStr, err := flags.GetString("trace-format")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get trace-format flag: %w", err)
	}

	level, err := trace.ParseLevel(levelStr)
	if err != nil {
		return nil, nil, err
	}
	// --trace без уровня включает проходы
	if level == trace.LevelOff && output != "" {
		level = trace.LevelPass
	}
	if level == trace.LevelOff {
		return trace.WithTracer(ctx, trace.Nop), func() {}, nil
	}
	format, err := trace.ParseFormat(formatStr)
	if err != nil {
		return nil, nil, err
	}

	tracer, err := trace.New(trace.Config{Level: level, Format: format, OutputPath: output})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create tracer: %w", err)
	}
	cleanup := func() {
		if err := tracer.Close(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: close error: %v\n", err)
		}
	}
	return trace.WithTracer(ctx, tracer), cleanup, nil
}
