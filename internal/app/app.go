package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/luhtfiimanal/pauwcheck"
	"github.com/luhtfiimanal/pauwcheck/internal/config"
)

// App runs the harness commands against a serial port.
type App struct {
	log *slog.Logger
	cfg *config.Config
	out io.Writer

	listPorts func() ([]pauwcheck.PortInfo, error)
	open      func(pauwcheck.Config) (pauwcheck.Link, error)
}

// New returns an App printing to out.
func New(log *slog.Logger, cfg *config.Config, out io.Writer) *App {
	return &App{
		log:       log,
		cfg:       cfg,
		out:       out,
		listPorts: pauwcheck.ListPorts,
		open:      pauwcheck.Open,
	}
}

// Run executes the conformance sequence against the configured device and
// returns pauwcheck.ErrChecksFailed when any check failed.
func (a *App) Run(ctx context.Context) (err error) {
	port, err := a.resolvePort(ctx)
	if err != nil {
		return err
	}

	printer := pauwcheck.NewPrinter(a.out, a.theme())
	printer.Port(port)

	link, err := a.openLink(ctx, port)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, link.Close()) }()

	if err := link.ResetInput(); err != nil {
		return &pauwcheck.SetupError{Op: "reset input", Err: err}
	}

	ch := pauwcheck.NewChannel(a.log, link)
	ch.Reader().KeepPartial = a.cfg.KeepPartial

	runner := pauwcheck.NewRunner(a.log, ch, pauwcheck.Options{
		Timeout:      a.cfg.Timeout,
		WaitReady:    a.cfg.WaitReady,
		ReadyTimeout: a.cfg.ReadyTimeout,
		HelpWindow:   a.cfg.HelpWindow,
		Observer:     printer,
	})

	rep, err := runner.Run(ctx)
	if err != nil {
		return err
	}

	printer.Summary(rep)

	a.log.InfoContext(ctx, "run finished",
		slog.Int("checks", len(rep.Outcomes())),
		slog.Int("failed", len(rep.Failed())),
		slog.Duration("took", rep.Finished.Sub(rep.Started)),
	)

	if a.cfg.ReportFile != "" {
		if err := a.writeReport(rep, port); err != nil {
			return err
		}
	}

	if !rep.OK() {
		return pauwcheck.ErrChecksFailed
	}
	return nil
}

// Send writes one command and prints the first reply line, empty if none
// arrived within timeout.
func (a *App) Send(ctx context.Context, command string, timeout time.Duration) (err error) {
	if a.cfg.Port == "" {
		return &pauwcheck.SetupError{Op: "send", Err: errors.New("no port given")}
	}

	link, err := a.openLink(ctx, a.cfg.Port)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, link.Close()) }()

	reply, err := pauwcheck.NewChannel(a.log, link).Send(ctx, strings.TrimSpace(command), timeout)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, reply)
	return nil
}

// Ports lists visible serial devices and marks the one Run would pick.
func (a *App) Ports(ctx context.Context) error {
	ports, err := a.listPorts()
	if err != nil {
		return &pauwcheck.SetupError{Op: "list ports", Err: err}
	}

	recommended, recErr := pauwcheck.Recommend(ports)
	for _, p := range ports {
		mark := " "
		if recErr == nil && p.Name == recommended.Name {
			mark = "*"
		}
		fmt.Fprintf(a.out, "%s %s\t%s\n", mark, p.Name, p.Description)
	}

	if recErr != nil {
		a.log.DebugContext(ctx, "no port recommended", slog.String("reason", recErr.Error()))
		fmt.Fprintf(a.out, "no recommendation: %v\n", recErr)
	}
	return nil
}

func (a *App) resolvePort(ctx context.Context) (string, error) {
	if a.cfg.Port != "" {
		return a.cfg.Port, nil
	}

	ports, err := a.listPorts()
	if err != nil {
		return "", &pauwcheck.SetupError{Op: "detect port", Err: err}
	}

	p, err := pauwcheck.Recommend(ports)
	if err != nil {
		return "", &pauwcheck.SetupError{Op: "detect port", Err: fmt.Errorf("%w; use --port", err)}
	}

	a.log.InfoContext(ctx, "auto-detected port",
		slog.String("port", p.Name),
		slog.String("description", p.Description),
	)
	return p.Name, nil
}

func (a *App) openLink(ctx context.Context, port string) (pauwcheck.Link, error) {
	cfg := a.cfg.Serial.Link()
	cfg.Device = port

	a.log.InfoContext(ctx, "opening serial link",
		slog.String("port", port),
		slog.Int("baud", cfg.BaudRate),
		slog.String("driver", string(cfg.Driver)),
	)

	link, err := a.open(cfg)
	if err != nil {
		var setupErr *pauwcheck.SetupError
		if errors.As(err, &setupErr) {
			return nil, err
		}
		return nil, &pauwcheck.SetupError{Op: "open " + port, Err: err}
	}
	return link, nil
}

func (a *App) writeReport(rep *pauwcheck.Report, port string) (err error) {
	f, err := os.Create(a.cfg.ReportFile)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer func() { err = errors.Join(err, f.Close()) }()

	return rep.WriteYAML(f, port)
}

func (a *App) theme() pauwcheck.Theme {
	if a.cfg.NoColor {
		return pauwcheck.MonoTheme()
	}
	return pauwcheck.DefaultTheme()
}
