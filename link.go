package pauwcheck

import (
	"errors"
	"fmt"
	"io"
	"time"
)

// Link is an open byte-stream connection to the device.
//
// Read blocks for at most the link's read timeout and returns (0, nil) when
// nothing arrived in that window. Any error from Read or Write is a transport
// fault, never a protocol timeout.
type Link interface {
	io.ReadWriteCloser
	// Drain blocks until everything written has been handed to the wire.
	Drain() error
	// ResetInput discards bytes received but not yet read.
	ResetInput() error
}

// Driver names a Link implementation.
type Driver string

const (
	// DriverTermios talks to the tty directly through termios ioctls (Linux only).
	DriverTermios Driver = "termios"
	// DriverBugst uses go.bug.st/serial.
	DriverBugst Driver = "bugst"
	// DriverTarm uses github.com/tarm/serial.
	DriverTarm Driver = "tarm"
)

const (
	// DefaultBaudRate is the device's line rate.
	DefaultBaudRate = 115200
	// DefaultReadTimeout bounds a single Read when Config.ReadTimeout is zero.
	DefaultReadTimeout = 10 * time.Millisecond
)

// ErrClosed is returned by reads and writes on a closed link.
var ErrClosed = errors.New("serial link closed")

// Config holds parameters for opening a serial link.
type Config struct {
	Device   string
	BaudRate int
	// ReadTimeout bounds a single Read on the link. Line deadlines are built
	// from many such reads.
	ReadTimeout time.Duration
	Driver      Driver
}

func (c Config) withDefaults() Config {
	if c.BaudRate == 0 {
		c.BaudRate = DefaultBaudRate
	}
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = DefaultReadTimeout
	}
	if c.Driver == "" {
		c.Driver = DefaultDriver
	}
	return c
}

// Drivers lists the driver names accepted by Open.
func Drivers() []Driver {
	return []Driver{DriverTermios, DriverBugst, DriverTarm}
}

// ParseDriver validates a driver name.
func ParseDriver(name string) (Driver, error) {
	for _, d := range Drivers() {
		if string(d) == name {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown driver %q", name)
}

// Open opens the serial device described by cfg. Failures are reported as
// *SetupError.
func Open(cfg Config) (Link, error) {
	cfg = cfg.withDefaults()

	var (
		link Link
		err  error
	)
	switch cfg.Driver {
	case DriverTermios:
		link, err = openTermios(cfg)
	case DriverBugst:
		link, err = openBugst(cfg)
	case DriverTarm:
		link, err = openTarm(cfg)
	default:
		err = fmt.Errorf("unknown driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, &SetupError{Op: "open " + cfg.Device, Err: err}
	}
	return link, nil
}
