package emulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/sync/errgroup"
)

// Serve announces READY on rw, then answers every command line read from it
// until ctx is canceled or rw fails. Cancellation closes rw and returns
// ctx.Err(); a peer hangup returns nil. An *os.File such as a pty master is
// taken over and switched to non-blocking mode so that cancellation can
// interrupt a pending read.
func (d *Device) Serve(ctx context.Context, rw io.ReadWriteCloser) error {
	if f, ok := rw.(*os.File); ok {
		pf, err := pollable(f)
		if err != nil {
			return fmt.Errorf("prepare %s: %w", f.Name(), err)
		}
		defer pf.Close()
		rw = pf
	}

	erg, gctx := errgroup.WithContext(ctx)
	served := make(chan struct{})

	erg.Go(func() error {
		defer close(served)
		return d.serve(rw)
	})

	erg.Go(func() error {
		select {
		case <-gctx.Done():
			return rw.Close()
		case <-served:
			return nil
		}
	})

	err := erg.Wait()
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

func (d *Device) serve(rw io.ReadWriter) error {
	if _, err := io.WriteString(rw, "READY\r\n"); err != nil {
		return fmt.Errorf("write banner: %w", err)
	}

	var f framer
	buf := make([]byte, 256)
	for {
		n, err := rw.Read(buf)
		for _, line := range f.feed(buf[:n]) {
			for _, reply := range d.Handle(line) {
				if _, werr := io.WriteString(rw, reply+"\r\n"); werr != nil {
					return fmt.Errorf("write reply: %w", werr)
				}
			}
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read command: %w", err)
		}
	}
}
