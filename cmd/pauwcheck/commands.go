package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/creack/pty"
	"github.com/luhtfiimanal/pauwcheck"
	"github.com/luhtfiimanal/pauwcheck/internal/app"
	"github.com/luhtfiimanal/pauwcheck/internal/config"
	"github.com/luhtfiimanal/pauwcheck/internal/emulator"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// sendTimeout is the reply timeout of send unless --timeout is given.
const sendTimeout = time.Second

func runAction(ctx context.Context, cmd *cli.Command) error {
	log, cfg, err := setup(ctx, cmd)
	if err != nil {
		return err
	}
	return app.New(log, cfg, cmd.Root().Writer).Run(ctx)
}

func sendCommand() *cli.Command {
	return &cli.Command{
		Name:      "send",
		Usage:     "Send a single command and print the reply",
		ArgsUsage: "PORT COMMAND...",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log, cfg, err := setup(ctx, cmd)
			if err != nil {
				return err
			}
			if cmd.NArg() < 2 {
				return &pauwcheck.SetupError{Op: "send", Err: errors.New("usage: send PORT COMMAND")}
			}
			timeout := sendTimeout
			if cmd.IsSet("timeout") {
				timeout = cfg.Timeout
			}
			command := strings.Join(cmd.Args().Slice()[1:], " ")
			return app.New(log, cfg, cmd.Root().Writer).Send(ctx, command, timeout)
		},
	}
}

func portsCommand() *cli.Command {
	return &cli.Command{
		Name:  "ports",
		Usage: "List serial ports and mark the auto-detected one",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log, cfg, err := setup(ctx, cmd)
			if err != nil {
				return err
			}
			return app.New(log, cfg, cmd.Root().Writer).Ports(ctx)
		},
	}
}

func emulateCommand() *cli.Command {
	return &cli.Command{
		Name:  "emulate",
		Usage: "Serve an emulated device on a pseudo-terminal until interrupted",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log, _, err := setup(ctx, cmd)
			if err != nil {
				return err
			}

			master, slave, err := pty.Open()
			if err != nil {
				return &pauwcheck.SetupError{Op: "open pty", Err: err}
			}
			defer slave.Close()

			if _, err := term.MakeRaw(int(slave.Fd())); err != nil {
				master.Close()
				return &pauwcheck.SetupError{Op: "raw mode", Err: err}
			}

			fmt.Fprintf(cmd.Root().Writer, "Emulated device on %s\n", slave.Name())
			log.InfoContext(ctx, "emulator started", slog.String("port", slave.Name()))

			return emulator.New().Serve(ctx, master)
		},
	}
}

// setup applies the log level and loads the validated configuration.
func setup(ctx context.Context, cmd *cli.Command) (*slog.Logger, *config.Config, error) {
	log, ok := ctx.Value(loggerKey{}).(*slog.Logger)
	if !ok {
		return nil, nil, errors.New("failed to get logger from context")
	}

	if level, ok := ctx.Value(levelKey{}).(*slog.LevelVar); ok {
		var l slog.Level
		if err := l.UnmarshalText([]byte(cmd.String("log-level"))); err != nil {
			return nil, nil, &pauwcheck.SetupError{Op: "config", Err: err}
		}
		level.Set(l)
	}

	cfg := config.Load(cmd)
	if err := cfg.Validate(); err != nil {
		return nil, nil, &pauwcheck.SetupError{Op: "config", Err: err}
	}
	return log, cfg, nil
}
