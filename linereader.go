package pauwcheck

import (
	"context"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	// BurstReadTimeout is the per-line budget used while capturing a
	// multi-line reply of unknown length.
	BurstReadTimeout = 50 * time.Millisecond

	// idlePause is how long the reader yields after a read that returned nothing.
	idlePause = time.Millisecond
)

// LineReader frames a raw byte stream into trimmed, non-empty text lines
// under a wall-clock deadline. It is not safe for concurrent use.
type LineReader struct {
	link Link
	log  *slog.Logger

	// KeepPartial carries bytes of an unterminated line over to the next
	// call instead of discarding them when the deadline passes.
	KeepPartial bool

	buf     []byte
	pending []byte // read from the link but not framed yet
	partial []byte // only used with KeepPartial
}

// NewLineReader returns a reader framing lines from link.
func NewLineReader(log *slog.Logger, link Link) *LineReader {
	return &LineReader{
		link: link,
		log:  log,
		buf:  make([]byte, 256),
	}
}

// ReadLine returns the next non-empty line, or "" if none completed before
// timeout elapsed. CR bytes are dropped, LF terminates a line and non-ASCII
// bytes are ignored. Lines that follow the returned one in the same read stay
// buffered for the next call. Only link failures and ctx cancellation are
// returned as errors.
func (r *LineReader) ReadLine(ctx context.Context, timeout time.Duration) (string, error) {
	deadline := time.Now().Add(timeout)

	var line []byte
	if r.KeepPartial {
		line, r.partial = r.partial, nil
	}

	for time.Now().Before(deadline) {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		if len(r.pending) == 0 {
			n, err := r.link.Read(r.buf)
			if err != nil {
				return "", &TransportError{Op: "read", Err: err}
			}
			if n == 0 {
				if err := pause(ctx, min(idlePause, time.Until(deadline))); err != nil {
					return "", err
				}
				continue
			}
			r.pending = append(r.pending, r.buf[:n]...)
		}

		for len(r.pending) > 0 {
			b := r.pending[0]
			r.pending = r.pending[1:]

			switch {
			case b == '\r':
			case b == '\n':
				if s := strings.TrimSpace(string(line)); s != "" {
					r.log.Debug("rx", slog.String("line", s))
					return s, nil
				}
				line = line[:0]
			case b < utf8.RuneSelf:
				line = append(line, b)
			}
		}
	}

	if r.KeepPartial && len(line) > 0 {
		r.partial = line
	} else if len(line) > 0 {
		r.log.Debug("discarded partial line", slog.String("bytes", string(line)))
	}
	return "", nil
}

// ReadLinesFor collects every line that arrives within d, reading with a
// short sub-timeout so that the number of lines need not be known up front.
func (r *LineReader) ReadLinesFor(ctx context.Context, d time.Duration) ([]string, error) {
	end := time.Now().Add(d)

	var lines []string
	for {
		remaining := time.Until(end)
		if remaining <= 0 {
			return lines, nil
		}
		line, err := r.ReadLine(ctx, min(BurstReadTimeout, remaining))
		if err != nil {
			return lines, err
		}
		if line != "" {
			lines = append(lines, line)
		}
	}
}

func pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
