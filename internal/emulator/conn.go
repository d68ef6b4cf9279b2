package emulator

import (
	"io"
	"strings"
	"sync"
	"time"
)

// Responder maps a command line to reply lines. Device.Handle is the default;
// tests substitute their own to model faulty firmware.
type Responder func(line string) []string

type chunk struct {
	at   time.Time
	data []byte
}

// Conn is an in-memory serial connection to a Device. It has the read
// semantics of a serial link: Read waits up to the read timeout and returns
// (0, nil) when nothing arrived.
type Conn struct {
	mu          sync.Mutex
	respond     Responder
	readTimeout time.Duration
	chunkSize   int
	delay       time.Duration
	framer      framer
	queued      []chunk
	rx          []byte
	commands    []string
	closed      bool
}

// ConnOption configures a Conn.
type ConnOption func(*Conn)

// WithReadTimeout sets how long an empty Read blocks.
func WithReadTimeout(d time.Duration) ConnOption {
	return func(c *Conn) { c.readTimeout = d }
}

// WithChunkSize caps the bytes returned by one Read, splitting lines across
// reads the way a slow UART does.
func WithChunkSize(n int) ConnOption {
	return func(c *Conn) { c.chunkSize = n }
}

// WithReplyDelay holds back every reply for d after the command arrives.
func WithReplyDelay(d time.Duration) ConnOption {
	return func(c *Conn) { c.delay = d }
}

// WithResponder replaces the device as the source of replies.
func WithResponder(r Responder) ConnOption {
	return func(c *Conn) { c.respond = r }
}

// NewConn returns a connection to dev. Replies come from dev.Handle unless
// WithResponder overrides it.
func NewConn(dev *Device, opts ...ConnOption) *Conn {
	c := &Conn{
		respond:     dev.Handle,
		readTimeout: time.Millisecond,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Boot queues the READY banner.
func (c *Conn) Boot() {
	c.Inject("READY\r\n")
}

// Inject queues raw bytes for the host to read, bypassing the responder.
func (c *Conn) Inject(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.queued = append(c.queued, chunk{at: time.Now(), data: []byte(s)})
}

// Commands returns the command lines received so far.
func (c *Conn) Commands() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.commands...)
}

func (c *Conn) Read(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return 0, io.ErrClosedPipe
	}
	if c.release(); len(c.rx) == 0 {
		c.mu.Unlock()
		time.Sleep(c.readTimeout)
		c.mu.Lock()
		if c.closed {
			return 0, io.ErrClosedPipe
		}
		if c.release(); len(c.rx) == 0 {
			return 0, nil
		}
	}

	n := len(p)
	if c.chunkSize > 0 && n > c.chunkSize {
		n = c.chunkSize
	}
	n = copy(p[:n], c.rx)
	c.rx = c.rx[n:]
	return n, nil
}

// release moves queued replies whose delay has passed into the read buffer.
func (c *Conn) release() {
	now := time.Now()
	i := 0
	for ; i < len(c.queued) && !c.queued[i].at.After(now); i++ {
		c.rx = append(c.rx, c.queued[i].data...)
	}
	c.queued = c.queued[i:]
}

func (c *Conn) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return 0, io.ErrClosedPipe
	}
	at := time.Now().Add(c.delay)
	for _, line := range c.framer.feed(p) {
		c.commands = append(c.commands, line)
		var reply strings.Builder
		for _, r := range c.respond(line) {
			reply.WriteString(r + "\r\n")
		}
		if reply.Len() > 0 {
			c.queued = append(c.queued, chunk{at: at, data: []byte(reply.String())})
		}
	}
	return len(p), nil
}

func (c *Conn) Drain() error {
	return nil
}

// ResetInput drops replies already delivered to the read buffer.
func (c *Conn) ResetInput() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.release()
	c.rx = nil
	return nil
}

func (c *Conn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

// framer assembles command lines the way the firmware does: CR ignored,
// LF terminates, overlong lines truncated, blank lines dropped.
type framer struct {
	buf []byte
}

func (f *framer) feed(p []byte) []string {
	var lines []string
	for _, b := range p {
		switch b {
		case '\r':
		case '\n':
			if line := strings.TrimSpace(string(f.buf)); line != "" {
				lines = append(lines, line)
			}
			f.buf = f.buf[:0]
		default:
			if len(f.buf) < MaxLineLength {
				f.buf = append(f.buf, b)
			}
		}
	}
	return lines
}
