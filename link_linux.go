package pauwcheck

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
)

// DefaultDriver is the driver Open uses when Config.Driver is empty.
const DefaultDriver = DriverTermios

// termiosLink provides low-latency, killable access to a Linux tty.
// Close may be called from another goroutine to unblock a pending Read.
type termiosLink struct {
	fd        int
	file      *os.File
	done      chan struct{}
	closeOnce sync.Once
	timeoutMs int
	pipeR     int // self-pipe read fd
	pipeW     int // self-pipe write fd
}

// openTermios opens the tty in raw, non-buffered mode.
func openTermios(cfg Config) (*termiosLink, error) {
	baud, err := baudToUnix(cfg.BaudRate)
	if err != nil {
		return nil, err
	}

	fd, err := syscall.Open(cfg.Device, syscall.O_RDWR|syscall.O_NOCTTY|syscall.O_NONBLOCK, 0o666)
	if err != nil {
		return nil, fmt.Errorf("open failed: %w", err)
	}

	termios, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		syscall.Close(fd)
		return nil, fmt.Errorf("get termios: %w", err)
	}

	// Raw mode
	termios.Iflag &^= unix.IGNBRK | unix.BRKINT | unix.PARMRK | unix.ISTRIP | unix.INLCR | unix.IGNCR | unix.ICRNL | unix.IXON
	termios.Oflag &^= unix.OPOST
	termios.Lflag &^= unix.ECHO | unix.ECHONL | unix.ICANON | unix.ISIG | unix.IEXTEN
	termios.Cflag &^= unix.CSIZE | unix.PARENB
	termios.Cflag |= unix.CS8 | unix.CREAD | unix.CLOCAL

	termios.Cflag &^= unix.CBAUD
	termios.Cflag |= baud

	// Reads only happen after poll reports data, so one byte is enough.
	termios.Cc[unix.VMIN] = 1
	termios.Cc[unix.VTIME] = 0

	if err := unix.IoctlSetTermios(fd, unix.TCSETS, termios); err != nil {
		syscall.Close(fd)
		return nil, fmt.Errorf("set termios: %w", err)
	}

	if err := syscall.SetNonblock(fd, false); err != nil {
		syscall.Close(fd)
		return nil, fmt.Errorf("set blocking: %w", err)
	}

	pipeFds := make([]int, 2)
	if err := unix.Pipe(pipeFds); err != nil {
		syscall.Close(fd)
		return nil, fmt.Errorf("pipe: %w", err)
	}

	return &termiosLink{
		fd:        fd,
		file:      os.NewFile(uintptr(fd), cfg.Device),
		done:      make(chan struct{}),
		timeoutMs: int(cfg.ReadTimeout / time.Millisecond),
		pipeR:     pipeFds[0],
		pipeW:     pipeFds[1],
	}, nil
}

// Read waits up to the read timeout for input and returns what is available.
func (s *termiosLink) Read(p []byte) (int, error) {
	pfd := []unix.PollFd{
		{Fd: int32(s.fd), Events: unix.POLLIN},
		{Fd: int32(s.pipeR), Events: unix.POLLIN},
	}
	n, err := unix.Poll(pfd, s.timeoutMs)
	if err != nil {
		if errors.Is(err, unix.EINTR) {
			return 0, nil
		}
		return 0, err
	}

	select {
	case <-s.done:
		return 0, ErrClosed
	default:
	}
	if n == 0 {
		return 0, nil
	}
	if pfd[1].Revents&unix.POLLIN != 0 {
		return 0, ErrClosed
	}
	if pfd[0].Revents&(unix.POLLIN|unix.POLLHUP|unix.POLLERR) != 0 {
		return s.file.Read(p)
	}
	return 0, nil
}

func (s *termiosLink) Write(p []byte) (int, error) {
	select {
	case <-s.done:
		return 0, ErrClosed
	default:
	}
	return s.file.Write(p)
}

// Drain is tcdrain(3).
func (s *termiosLink) Drain() error {
	return unix.IoctlSetInt(s.fd, unix.TCSBRK, 1)
}

// ResetInput is tcflush(3) on the input queue.
func (s *termiosLink) ResetInput() error {
	return unix.IoctlSetInt(s.fd, unix.TCFLSH, unix.TCIFLUSH)
}

// Close closes the tty and unblocks any pending Read.
// Safe to call multiple times; subsequent calls are no-ops.
func (s *termiosLink) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.done)
		// Wake up poll using self-pipe
		unix.Write(s.pipeW, []byte{1})
		err = s.file.Close()
		unix.Close(s.pipeR)
		unix.Close(s.pipeW)
	})
	return err
}

func baudToUnix(baud int) (uint32, error) {
	switch baud {
	case 1200:
		return unix.B1200, nil
	case 2400:
		return unix.B2400, nil
	case 4800:
		return unix.B4800, nil
	case 9600:
		return unix.B9600, nil
	case 19200:
		return unix.B19200, nil
	case 38400:
		return unix.B38400, nil
	case 57600:
		return unix.B57600, nil
	case 115200:
		return unix.B115200, nil
	case 230400:
		return unix.B230400, nil
	case 460800:
		return unix.B460800, nil
	case 921600:
		return unix.B921600, nil
	default:
		return 0, fmt.Errorf("unsupported baud rate %d", baud)
	}
}
