// Package emulator implements the pin router's serial protocol in software.
// It backs the test suite and the emulate command.
package emulator

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
)

// MaxLineLength is the number of bytes of a command line the device keeps;
// anything beyond it is dropped.
const MaxLineLength = 120

// Routing assigns pins (letters A-D) to IP, IM, VP and VM, in that order.
type Routing [4]byte

var presets = map[int]Routing{
	1: {'A', 'B', 'C', 'D'},
	2: {'B', 'A', 'D', 'C'},
	3: {'B', 'C', 'D', 'A'},
	4: {'C', 'B', 'A', 'D'},
}

var helpLines = []string{
	"PING -> PONG",
	"CFG n (1-4) -> apply preset",
	"SET ip im vp vm (A-D) -> apply routing",
	"STATE? -> report current state",
	"HELP -> this message",
}

// Device is the emulated router. It boots into preset 1.
type Device struct {
	mu      sync.Mutex
	cfg     int
	routing Routing
}

// New returns a device in its boot state.
func New() *Device {
	return &Device{cfg: 1, routing: presets[1]}
}

// Config returns the active preset id, 0 after SET.
func (d *Device) Config() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cfg
}

// Routing returns the active pin assignment.
func (d *Device) Routing() Routing {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.routing
}

// Handle executes one command line and returns the reply lines.
// Commands are case-insensitive.
func (d *Device) Handle(line string) []string {
	cmd := strings.ToUpper(strings.TrimSpace(line))
	if cmd == "" {
		return nil
	}

	switch {
	case cmd == "PING":
		return []string{"PONG"}
	case cmd == "HELP":
		return append([]string(nil), helpLines...)
	case cmd == "STATE?":
		return []string{d.stateLine()}
	case strings.HasPrefix(cmd, "CFG"):
		return []string{d.applyPreset(firstTokens(cmd, 2))}
	case strings.HasPrefix(cmd, "SET"):
		return []string{d.applyRouting(firstTokens(cmd, 5))}
	default:
		return []string{"ERR"}
	}
}

func (d *Device) applyPreset(tokens []string) string {
	if len(tokens) != 2 {
		return "ERR"
	}
	id, err := strconv.Atoi(tokens[1])
	if err != nil {
		return "ERR"
	}
	routing, ok := presets[id]
	if !ok {
		return "ERR"
	}

	d.mu.Lock()
	d.cfg, d.routing = id, routing
	d.mu.Unlock()

	return fmt.Sprintf("OK CFG %d", id)
}

func (d *Device) applyRouting(tokens []string) string {
	if len(tokens) != 5 {
		return "ERR"
	}
	var routing Routing
	for i, tok := range tokens[1:] {
		if len(tok) != 1 || tok[0] < 'A' || tok[0] > 'D' {
			return "ERR"
		}
		routing[i] = tok[0]
	}

	d.mu.Lock()
	d.cfg, d.routing = 0, routing
	d.mu.Unlock()

	return "OK SET " + routing.fields()
}

func (d *Device) stateLine() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return fmt.Sprintf("STATE CFG=%d %s", d.cfg, d.routing.fields())
}

func (r Routing) fields() string {
	return fmt.Sprintf("IP=%c IM=%c VP=%c VM=%c", r[0], r[1], r[2], r[3])
}

// firstTokens splits on whitespace and keeps at most n tokens, like the
// firmware's fixed-size token buffer.
func firstTokens(s string, n int) []string {
	tokens := strings.Fields(s)
	if len(tokens) > n {
		tokens = tokens[:n]
	}
	return tokens
}
