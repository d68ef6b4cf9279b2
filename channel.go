package pauwcheck

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"
)

// ErrInvalidCommand rejects commands that cannot be sent as one ASCII line.
var ErrInvalidCommand = errors.New("invalid command")

// Channel exchanges command lines with the device, one command in flight at
// a time.
type Channel struct {
	log    *slog.Logger
	link   Link
	reader *LineReader
}

// NewChannel returns a channel over link with its own LineReader.
func NewChannel(log *slog.Logger, link Link) *Channel {
	return &Channel{
		log:    log,
		link:   link,
		reader: NewLineReader(log, link),
	}
}

// Reader exposes the line reader for unsolicited output such as READY.
func (c *Channel) Reader() *LineReader {
	return c.reader
}

// Send writes cmd and returns the first response line, or "" when nothing
// arrived within timeout. Additional reply lines are left for the next read.
func (c *Channel) Send(ctx context.Context, cmd string, timeout time.Duration) (string, error) {
	if err := c.Post(cmd); err != nil {
		return "", err
	}
	return c.reader.ReadLine(ctx, timeout)
}

// Post writes cmd terminated by a single LF and drains the link without
// waiting for a reply.
func (c *Channel) Post(cmd string) error {
	if err := validateCommand(cmd); err != nil {
		return err
	}

	c.log.Debug("tx", slog.String("cmd", cmd))

	if _, err := c.link.Write([]byte(cmd + "\n")); err != nil {
		return &TransportError{Op: "write", Err: err}
	}
	if err := c.link.Drain(); err != nil {
		return &TransportError{Op: "drain", Err: err}
	}
	return nil
}

// Capture returns every line received within d. Use it after Post for
// commands with a multi-line reply.
func (c *Channel) Capture(ctx context.Context, d time.Duration) ([]string, error) {
	return c.reader.ReadLinesFor(ctx, d)
}

func validateCommand(cmd string) error {
	if strings.ContainsAny(cmd, "\r\n") {
		return fmt.Errorf("%w %q: embedded line break", ErrInvalidCommand, cmd)
	}
	for i := 0; i < len(cmd); i++ {
		if cmd[i] >= utf8.RuneSelf {
			return fmt.Errorf("%w %q: not ASCII", ErrInvalidCommand, cmd)
		}
	}
	return nil
}
