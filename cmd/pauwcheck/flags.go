package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/luhtfiimanal/pauwcheck"
	altsrc "github.com/urfave/cli-altsrc/v3"
	"github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"
)

var version = "dev"

func cmd() *cli.Command {
	return &cli.Command{
		Name:      "pauwcheck",
		Usage:     "Conformance test for the pin router serial protocol",
		ArgsUsage: "[PORT]",
		Version:   version,
		Flags:     flags(),
		Action:    runAction,
		Commands: []*cli.Command{
			sendCommand(),
			portsCommand(),
			emulateCommand(),
		},
	}
}

func flags() []cli.Flag {
	var config string

	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Validator:   validateConfig,
			Usage:       "Load configuration from `FILE`",
			Destination: &config,
		},
		&cli.StringFlag{
			Name:    "port",
			Aliases: []string{"p"},
			Usage:   "Serial port, e.g. /dev/ttyACM0 (auto-detected when omitted)",
			Sources: cli.NewValueSourceChain(yaml.YAML("serial.port", altsrc.NewStringPtrSourcer(&config))),
		},
		&cli.IntFlag{
			Name:    "baud",
			Aliases: []string{"b"},
			Usage:   "Set baud rate",
			Value:   pauwcheck.DefaultBaudRate,
			Sources: cli.NewValueSourceChain(yaml.YAML("serial.baud", altsrc.NewStringPtrSourcer(&config))),
		},
		&cli.StringFlag{
			Name:    "driver",
			Usage:   "Serial driver: " + driverNames(),
			Value:   string(pauwcheck.DefaultDriver),
			Sources: cli.NewValueSourceChain(yaml.YAML("serial.driver", altsrc.NewStringPtrSourcer(&config))),
		},
		&cli.DurationFlag{
			Name:    "read-timeout",
			Usage:   "Set the timeout of a single read on the port",
			Value:   pauwcheck.DefaultReadTimeout,
			Sources: cli.NewValueSourceChain(yaml.YAML("serial.read_timeout", altsrc.NewStringPtrSourcer(&config))),
		},
		&cli.FloatFlag{
			Name:    "timeout",
			Aliases: []string{"t"},
			Usage:   "Set response timeout in seconds",
			Value:   pauwcheck.DefaultTimeout.Seconds(),
			Sources: cli.NewValueSourceChain(yaml.YAML("harness.timeout", altsrc.NewStringPtrSourcer(&config))),
		},
		&cli.FloatFlag{
			Name:    "ready-timeout",
			Usage:   "Set how long to wait for READY in seconds (defaults to --timeout)",
			Sources: cli.NewValueSourceChain(yaml.YAML("harness.ready_timeout", altsrc.NewStringPtrSourcer(&config))),
		},
		&cli.BoolFlag{
			Name:    "no-wait-ready",
			Usage:   "Skip waiting for the READY banner",
			Sources: cli.NewValueSourceChain(yaml.YAML("harness.no_wait_ready", altsrc.NewStringPtrSourcer(&config))),
		},
		&cli.DurationFlag{
			Name:    "help-window",
			Usage:   "Set how long HELP output is captured",
			Value:   pauwcheck.DefaultHelpWindow,
			Sources: cli.NewValueSourceChain(yaml.YAML("harness.help_window", altsrc.NewStringPtrSourcer(&config))),
		},
		&cli.BoolFlag{
			Name:    "keep-partial",
			Usage:   "Keep unterminated bytes across read deadlines",
			Sources: cli.NewValueSourceChain(yaml.YAML("harness.keep_partial", altsrc.NewStringPtrSourcer(&config))),
		},
		&cli.StringFlag{
			Name:    "report",
			Usage:   "Write a YAML report to `FILE`",
			Sources: cli.NewValueSourceChain(yaml.YAML("output.report", altsrc.NewStringPtrSourcer(&config))),
		},
		&cli.BoolFlag{
			Name:    "no-color",
			Usage:   "Disable colored output",
			Sources: cli.NewValueSourceChain(yaml.YAML("output.no_color", altsrc.NewStringPtrSourcer(&config))),
		},
		&cli.StringFlag{
			Name:    "log-level",
			Usage:   "Set log level: debug, info, warn or error",
			Value:   "warn",
			Sources: cli.NewValueSourceChain(yaml.YAML("log.level", altsrc.NewStringPtrSourcer(&config))),
		},
	}
}

func driverNames() string {
	names := make([]string, 0, len(pauwcheck.Drivers()))
	for _, d := range pauwcheck.Drivers() {
		names = append(names, string(d))
	}
	return strings.Join(names, ", ")
}

func validateConfig(config string) error {
	info, err := os.Stat(config)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%q does not exist", config)
		}
		return fmt.Errorf("failed to stat %q: %w", config, err)
	}

	if info.IsDir() {
		return fmt.Errorf("%q is a directory, not a file", config)
	}

	ext := filepath.Ext(info.Name())
	if ext != ".yml" && ext != ".yaml" {
		return fmt.Errorf("invalid extension %q", config)
	}

	return nil
}
