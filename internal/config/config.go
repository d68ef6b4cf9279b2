package config

import (
	"fmt"
	"time"

	"github.com/luhtfiimanal/pauwcheck"
	"github.com/urfave/cli/v3"
)

// Config is the resolved command-line and config-file configuration.
type Config struct {
	Serial
	Harness
	Output
}

// Serial selects and parameterizes the serial link.
type Serial struct {
	Port        string
	BaudRate    int
	Driver      pauwcheck.Driver
	ReadTimeout time.Duration
}

// Harness holds the timing of the check sequence.
type Harness struct {
	Timeout      time.Duration
	WaitReady    bool
	ReadyTimeout time.Duration
	HelpWindow   time.Duration
	KeepPartial  bool
}

// Output controls rendering and the report file.
type Output struct {
	ReportFile string
	NoColor    bool
}

// Link returns the parameters for opening the configured port.
func (s Serial) Link() pauwcheck.Config {
	return pauwcheck.Config{
		Device:      s.Port,
		BaudRate:    s.BaudRate,
		ReadTimeout: s.ReadTimeout,
		Driver:      s.Driver,
	}
}

// Load builds the configuration from parsed flags. A positional port
// argument takes precedence over --port.
func Load(cmd *cli.Command) *Config {
	port := cmd.String("port")
	if arg := cmd.Args().First(); arg != "" {
		port = arg
	}

	timeout := Seconds(cmd.Float("timeout"))
	readyTimeout := Seconds(cmd.Float("ready-timeout"))
	if readyTimeout <= 0 {
		readyTimeout = timeout
	}

	return &Config{
		Serial: Serial{
			Port:        port,
			BaudRate:    cmd.Int("baud"),
			Driver:      pauwcheck.Driver(cmd.String("driver")),
			ReadTimeout: cmd.Duration("read-timeout"),
		},
		Harness: Harness{
			Timeout:      timeout,
			WaitReady:    !cmd.Bool("no-wait-ready"),
			ReadyTimeout: readyTimeout,
			HelpWindow:   cmd.Duration("help-window"),
			KeepPartial:  cmd.Bool("keep-partial"),
		},
		Output: Output{
			ReportFile: cmd.String("report"),
			NoColor:    cmd.Bool("no-color"),
		},
	}
}

// Seconds converts fractional seconds to a duration.
func Seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// Validate checks values the flag parser cannot.
func (c *Config) Validate() error {
	if c.BaudRate <= 0 {
		return fmt.Errorf("baud rate must be positive, got %d", c.BaudRate)
	}
	if _, err := pauwcheck.ParseDriver(string(c.Driver)); err != nil {
		return err
	}
	if c.ReadTimeout <= 0 {
		return fmt.Errorf("read timeout must be positive, got %s", c.ReadTimeout)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if c.HelpWindow <= 0 {
		return fmt.Errorf("help window must be positive, got %s", c.HelpWindow)
	}
	return nil
}
