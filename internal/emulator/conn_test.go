package emulator

import (
	"context"
	"io"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// readAll reads from c until it has been silent for quiet.
func readAll(t *testing.T, c *Conn, quiet time.Duration) string {
	t.Helper()

	var sb strings.Builder
	buf := make([]byte, 64)
	last := time.Now()
	for time.Since(last) < quiet {
		n, err := c.Read(buf)
		require.NoError(t, err)
		if n > 0 {
			sb.Write(buf[:n])
			last = time.Now()
		}
	}
	return sb.String()
}

func TestConn_RepliesWithCRLF(t *testing.T) {
	t.Parallel()

	c := NewConn(New())
	c.Boot()

	_, err := c.Write([]byte("PING\r\nCFG 2\n"))
	require.NoError(t, err)

	assert.Equal(t, "READY\r\nPONG\r\nOK CFG 2\r\n", readAll(t, c, 20*time.Millisecond))
	assert.Equal(t, []string{"PING", "CFG 2"}, c.Commands())
}

func TestConn_EmptyReadTimesOut(t *testing.T) {
	t.Parallel()

	c := NewConn(New(), WithReadTimeout(20*time.Millisecond))

	start := time.Now()
	n, err := c.Read(make([]byte, 8))
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestConn_CommandSplitAcrossWrites(t *testing.T) {
	t.Parallel()

	c := NewConn(New())
	for _, part := range []string{"ST", "ATE", "?", "\n"} {
		_, err := c.Write([]byte(part))
		require.NoError(t, err)
	}

	assert.Equal(t, "STATE CFG=1 IP=A IM=B VP=C VM=D\r\n", readAll(t, c, 20*time.Millisecond))
}

func TestConn_ChunkSize(t *testing.T) {
	t.Parallel()

	c := NewConn(New(), WithChunkSize(2))
	_, err := c.Write([]byte("PING\n"))
	require.NoError(t, err)

	buf := make([]byte, 64)
	n, err := c.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "PO", string(buf[:n]))
}

func TestConn_ReplyDelay(t *testing.T) {
	t.Parallel()

	c := NewConn(New(), WithReplyDelay(50*time.Millisecond))
	_, err := c.Write([]byte("PING\n"))
	require.NoError(t, err)

	n, err := c.Read(make([]byte, 8))
	require.NoError(t, err)
	assert.Zero(t, n, "reply released early")

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, "PONG\r\n", readAll(t, c, 10*time.Millisecond))
}

func TestConn_TruncatesLongLines(t *testing.T) {
	t.Parallel()

	c := NewConn(New())
	line := "PING" + strings.Repeat(" ", MaxLineLength-4) + "X\n"
	_, err := c.Write([]byte(line))
	require.NoError(t, err)

	assert.Equal(t, "PONG\r\n", readAll(t, c, 20*time.Millisecond))
}

func TestConn_ResetInput(t *testing.T) {
	t.Parallel()

	c := NewConn(New())
	c.Boot()
	require.NoError(t, c.ResetInput())

	assert.Empty(t, readAll(t, c, 10*time.Millisecond))
}

func TestConn_Closed(t *testing.T) {
	t.Parallel()

	c := NewConn(New())
	require.NoError(t, c.Close())

	_, err := c.Read(make([]byte, 8))
	require.ErrorIs(t, err, io.ErrClosedPipe)

	_, err = c.Write([]byte("PING\n"))
	require.ErrorIs(t, err, io.ErrClosedPipe)
}

func TestDevice_Serve(t *testing.T) {
	t.Parallel()

	host, device := net.Pipe()
	defer host.Close()

	ctx, cancel := context.WithCancel(context.Background())
	served := make(chan error, 1)
	go func() { served <- New().Serve(ctx, device) }()

	require.NoError(t, host.SetDeadline(time.Now().Add(2*time.Second)))

	expectLine := func(want string) {
		t.Helper()
		var sb strings.Builder
		buf := make([]byte, 1)
		for !strings.HasSuffix(sb.String(), "\r\n") {
			_, err := host.Read(buf)
			require.NoError(t, err)
			sb.Write(buf)
		}
		assert.Equal(t, want+"\r\n", sb.String())
	}

	expectLine("READY")

	_, err := host.Write([]byte("cfg 2\r\n"))
	require.NoError(t, err)
	expectLine("OK CFG 2")

	_, err = host.Write([]byte("STATE?\n"))
	require.NoError(t, err)
	expectLine("STATE CFG=2 IP=B IM=A VP=D VM=C")

	cancel()
	select {
	case err := <-served:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}

func TestDevice_Serve_PeerHangup(t *testing.T) {
	t.Parallel()

	host, device := net.Pipe()

	served := make(chan error, 1)
	go func() { served <- New().Serve(context.Background(), device) }()

	// Consume the banner, then hang up.
	_, err := host.Read(make([]byte, 16))
	require.NoError(t, err)
	require.NoError(t, host.Close())

	select {
	case err := <-served:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Serve did not return after hangup")
	}
}
