//go:build unix

package emulator

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// pollable re-opens f in non-blocking mode so that the runtime poller owns it
// and Close interrupts a pending Read. A pty master from creack/pty is in
// blocking mode after pty.Open. f is closed on success.
func pollable(f *os.File) (*os.File, error) {
	rc, err := f.SyscallConn()
	if err != nil {
		return nil, err
	}

	var (
		dup    int
		dupErr error
	)
	if err := rc.Control(func(fd uintptr) {
		dup, dupErr = unix.FcntlInt(fd, unix.F_DUPFD_CLOEXEC, 0)
	}); err != nil {
		return nil, err
	}
	if dupErr != nil {
		return nil, fmt.Errorf("dup: %w", dupErr)
	}

	if err := unix.SetNonblock(dup, true); err != nil {
		unix.Close(dup)
		return nil, fmt.Errorf("set nonblocking: %w", err)
	}

	pf := os.NewFile(uintptr(dup), f.Name())
	if err := f.Close(); err != nil {
		pf.Close()
		return nil, err
	}
	return pf, nil
}
