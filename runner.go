package pauwcheck

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

const (
	// DefaultTimeout bounds the wait for a single-line reply.
	DefaultTimeout = 2 * time.Second
	// DefaultHelpWindow is how long HELP output is captured.
	DefaultHelpWindow = 500 * time.Millisecond

	readyPollTimeout = 100 * time.Millisecond
	invalidConfigID  = 9
	restoreConfigID  = 1
)

// customMapping is the SET permutation under test. It matches no preset.
var customMapping = Mapping{IP: PinA, IM: PinD, VP: PinC, VM: PinB}

// Observer is notified as the run progresses.
type Observer interface {
	AwaitingReady()
	ReadyMissed()
	Outcome(Outcome)
}

type nopObserver struct{}

func (nopObserver) AwaitingReady()  {}
func (nopObserver) ReadyMissed()    {}
func (nopObserver) Outcome(Outcome) {}

// Options tunes a Runner.
type Options struct {
	// Timeout bounds the wait for each single-line reply.
	Timeout time.Duration
	// WaitReady enables the startup wait for READY, bounded by ReadyTimeout
	// (Timeout when zero).
	WaitReady    bool
	ReadyTimeout time.Duration
	// HelpWindow is how long HELP output is captured.
	HelpWindow time.Duration
	Observer   Observer
}

// Runner drives the fixed conformance sequence. A failed check never stops
// the run; only transport faults and cancellation do.
type Runner struct {
	log  *slog.Logger
	ch   *Channel
	opts Options
}

// NewRunner returns a runner over ch. Zero Options fields take their defaults.
func NewRunner(log *slog.Logger, ch *Channel, opts Options) *Runner {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.ReadyTimeout <= 0 {
		opts.ReadyTimeout = opts.Timeout
	}
	if opts.HelpWindow <= 0 {
		opts.HelpWindow = DefaultHelpWindow
	}
	if opts.Observer == nil {
		opts.Observer = nopObserver{}
	}
	return &Runner{log: log, ch: ch, opts: opts}
}

// Run executes every check once, in order, and returns the report. On error
// the report holds the outcomes recorded so far.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	rep := &Report{Started: time.Now()}
	defer func() { rep.Finished = time.Now() }()

	steps := []struct {
		name string
		fn   func(context.Context, *Report) error
	}{
		{"await ready", r.awaitReady},
		{"ping", r.ping},
		{"config presets", r.configPresets},
		{"custom set", r.customSet},
		{"invalid config", r.invalidConfig},
		{"help", r.help},
		{"cleanup", r.cleanup},
	}

	for _, step := range steps {
		r.log.DebugContext(ctx, "step started", slog.String("step", step.name))
		if err := step.fn(ctx, rep); err != nil {
			return rep, fmt.Errorf("%s: %w", step.name, err)
		}
	}
	return rep, nil
}

func (r *Runner) check(rep *Report, name string, ok bool, detail string) {
	o := Outcome{Name: name, Passed: ok, Detail: detail}
	rep.record(o)
	r.opts.Observer.Outcome(o)
}

func (r *Runner) awaitReady(ctx context.Context, rep *Report) error {
	if !r.opts.WaitReady {
		return nil
	}
	r.opts.Observer.AwaitingReady()

	end := time.Now().Add(r.opts.ReadyTimeout)
	for time.Now().Before(end) {
		line, err := r.ch.Reader().ReadLine(ctx, readyPollTimeout)
		if err != nil {
			return err
		}
		if line == "READY" {
			rep.ReadySeen = true
			return nil
		}
	}

	r.log.WarnContext(ctx, "device did not announce READY", slog.Duration("waited", r.opts.ReadyTimeout))
	r.opts.Observer.ReadyMissed()
	return nil
}

// expectLine sends cmd and records whether the reply equals want.
func (r *Runner) expectLine(ctx context.Context, rep *Report, name, cmd, want string) error {
	line, err := r.ch.Send(ctx, cmd, r.opts.Timeout)
	if err != nil {
		return err
	}
	r.check(rep, name, line == want, fmt.Sprintf("got '%s'", line))
	return nil
}

// expectState queries STATE? and records one outcome for both parse failure
// and mismatch.
func (r *Runner) expectState(ctx context.Context, rep *Report, name string, want State) error {
	line, err := r.ch.Send(ctx, "STATE?", r.opts.Timeout)
	if err != nil {
		return err
	}

	got, err := ParseState(line)
	if err != nil {
		r.check(rep, name, false, fmt.Sprintf("got '%s' (%v)", line, err))
		return nil
	}
	r.check(rep, name, got == want, fmt.Sprintf("got %s, expected %s", got, want))
	return nil
}

func (r *Runner) ping(ctx context.Context, rep *Report) error {
	return r.expectLine(ctx, rep, "PING", "PING", "PONG")
}

func (r *Runner) configPresets(ctx context.Context, rep *Report) error {
	for _, id := range ConfigIDs() {
		mapping, _ := LookupConfig(id)

		cmd := fmt.Sprintf("CFG %d", id)
		if err := r.expectLine(ctx, rep, cmd, cmd, "OK "+cmd); err != nil {
			return err
		}
		name := fmt.Sprintf("STATE %d", id)
		if err := r.expectState(ctx, rep, name, State{Cfg: id, Mapping: mapping}); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) customSet(ctx context.Context, rep *Report) error {
	m := customMapping
	cmd := fmt.Sprintf("SET %s %s %s %s", m.IP, m.IM, m.VP, m.VM)
	want := fmt.Sprintf("OK SET IP=%s IM=%s VP=%s VM=%s", m.IP, m.IM, m.VP, m.VM)
	if err := r.expectLine(ctx, rep, "SET", cmd, want); err != nil {
		return err
	}
	return r.expectState(ctx, rep, "STATE SET", State{Cfg: CustomConfig, Mapping: m})
}

func (r *Runner) invalidConfig(ctx context.Context, rep *Report) error {
	return r.expectLine(ctx, rep, "CFG invalid", fmt.Sprintf("CFG %d", invalidConfigID), "ERR")
}

func (r *Runner) help(ctx context.Context, rep *Report) error {
	if err := r.ch.Post("HELP"); err != nil {
		return err
	}
	lines, err := r.ch.Capture(ctx, r.opts.HelpWindow)
	if err != nil {
		return err
	}

	var hasPing, hasCfg bool
	for _, l := range lines {
		hasPing = hasPing || strings.Contains(l, "PING")
		hasCfg = hasCfg || strings.Contains(l, "CFG")
	}
	r.check(rep, "HELP", hasPing && hasCfg, fmt.Sprintf("lines=%d", len(lines)))
	return nil
}

// cleanup restores a known preset. The reply is not checked.
func (r *Runner) cleanup(ctx context.Context, _ *Report) error {
	line, err := r.ch.Send(ctx, fmt.Sprintf("CFG %d", restoreConfigID), r.opts.Timeout)
	if err != nil {
		return err
	}
	r.log.DebugContext(ctx, "restored preset", slog.Int("cfg", restoreConfigID), slog.String("reply", line))
	return nil
}
