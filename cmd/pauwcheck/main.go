package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/luhtfiimanal/pauwcheck"
)

type (
	loggerKey struct{}
	levelKey  struct{}
)

const (
	exitOK          = 0
	exitFailed      = 1
	exitSetup       = 2
	exitInterrupted = 130
)

func main() {
	ctx := context.Background()

	level := new(slog.LevelVar)
	level.Set(slog.LevelWarn)

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))

	ctx = context.WithValue(ctx, loggerKey{}, log)
	ctx = context.WithValue(ctx, levelKey{}, level)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	err := cmd().Run(ctx, os.Args)
	stop()

	code := exitCode(err)
	switch {
	case code == exitOK, errors.Is(err, pauwcheck.ErrChecksFailed):
	case code == exitInterrupted:
		fmt.Fprintln(os.Stderr, "interrupted")
	default:
		fmt.Fprintf(os.Stderr, "ERR: %v\n", err)
	}
	os.Exit(code)
}

func exitCode(err error) int {
	var setupErr *pauwcheck.SetupError
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, context.Canceled):
		return exitInterrupted
	case errors.As(err, &setupErr):
		return exitSetup
	default:
		return exitFailed
	}
}
