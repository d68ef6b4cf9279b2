package pauwcheck

import (
	"errors"
	"fmt"
	"io"

	"github.com/tarm/serial"
)

// tarmLink wraps github.com/tarm/serial. The library rounds read timeouts up
// to whole deciseconds, so reads on this driver block for at least 100ms.
type tarmLink struct {
	port *serial.Port
}

func openTarm(cfg Config) (*tarmLink, error) {
	p, err := serial.OpenPort(&serial.Config{
		Name:        cfg.Device,
		Baud:        cfg.BaudRate,
		ReadTimeout: cfg.ReadTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("open serial %s failed: %w", cfg.Device, err)
	}
	return &tarmLink{port: p}, nil
}

// Read maps the io.EOF tarm returns for an expired read timeout to an empty read.
func (l *tarmLink) Read(p []byte) (int, error) {
	n, err := l.port.Read(p)
	if errors.Is(err, io.EOF) {
		return n, nil
	}
	return n, err
}

func (l *tarmLink) Write(p []byte) (int, error) {
	n, err := l.port.Write(p)
	if err != nil {
		return n, fmt.Errorf("serial write failed: %w", err)
	}
	return n, nil
}

// Drain is a no-op: tarm writes straight to the descriptor and exposes no tcdrain.
func (l *tarmLink) Drain() error {
	return nil
}

// ResetInput discards pending input. tarm's Flush drops both queues, which is
// harmless here because writes are never left pending.
func (l *tarmLink) ResetInput() error {
	return l.port.Flush()
}

func (l *tarmLink) Close() error {
	return l.port.Close()
}
