package emulator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDevice_Handle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		lines   []string
		expect  []string
		cfg     int
		routing Routing
	}{
		{name: "boots into preset 1", lines: []string{"STATE?"}, expect: []string{"STATE CFG=1 IP=A IM=B VP=C VM=D"}, cfg: 1, routing: Routing{'A', 'B', 'C', 'D'}},
		{name: "ping", lines: []string{"PING"}, expect: []string{"PONG"}, cfg: 1, routing: Routing{'A', 'B', 'C', 'D'}},
		{name: "case-insensitive", lines: []string{"ping"}, expect: []string{"PONG"}, cfg: 1, routing: Routing{'A', 'B', 'C', 'D'}},
		{name: "preset", lines: []string{"CFG 3"}, expect: []string{"OK CFG 3"}, cfg: 3, routing: Routing{'B', 'C', 'D', 'A'}},
		{name: "preset then state", lines: []string{"CFG 4", "STATE?"}, expect: []string{"OK CFG 4", "STATE CFG=4 IP=C IM=B VP=A VM=D"}, cfg: 4, routing: Routing{'C', 'B', 'A', 'D'}},
		{name: "preset out of range", lines: []string{"CFG 9"}, expect: []string{"ERR"}, cfg: 1, routing: Routing{'A', 'B', 'C', 'D'}},
		{name: "preset zero", lines: []string{"CFG 0"}, expect: []string{"ERR"}, cfg: 1, routing: Routing{'A', 'B', 'C', 'D'}},
		{name: "preset not a number", lines: []string{"CFG two"}, expect: []string{"ERR"}, cfg: 1, routing: Routing{'A', 'B', 'C', 'D'}},
		{name: "preset missing id", lines: []string{"CFG"}, expect: []string{"ERR"}, cfg: 1, routing: Routing{'A', 'B', 'C', 'D'}},
		{name: "extra tokens ignored", lines: []string{"CFG 2 now"}, expect: []string{"OK CFG 2"}, cfg: 2, routing: Routing{'B', 'A', 'D', 'C'}},
		{name: "set", lines: []string{"SET A D C B"}, expect: []string{"OK SET IP=A IM=D VP=C VM=B"}, cfg: 0, routing: Routing{'A', 'D', 'C', 'B'}},
		{name: "set lowercase pins", lines: []string{"set b b b b"}, expect: []string{"OK SET IP=B IM=B VP=B VM=B"}, cfg: 0, routing: Routing{'B', 'B', 'B', 'B'}},
		{name: "set bad pin", lines: []string{"SET A B C E"}, expect: []string{"ERR"}, cfg: 1, routing: Routing{'A', 'B', 'C', 'D'}},
		{name: "set too few pins", lines: []string{"SET A B C"}, expect: []string{"ERR"}, cfg: 1, routing: Routing{'A', 'B', 'C', 'D'}},
		{name: "set multi-letter pin", lines: []string{"SET AB C D A"}, expect: []string{"ERR"}, cfg: 1, routing: Routing{'A', 'B', 'C', 'D'}},
		{name: "unknown command", lines: []string{"RESET"}, expect: []string{"ERR"}, cfg: 1, routing: Routing{'A', 'B', 'C', 'D'}},
		{name: "blank line ignored", lines: []string{"   "}, cfg: 1, routing: Routing{'A', 'B', 'C', 'D'}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := New()
			var got []string
			for _, line := range tt.lines {
				got = append(got, d.Handle(line)...)
			}

			assert.Equal(t, tt.expect, got)
			assert.Equal(t, tt.cfg, d.Config())
			assert.Equal(t, tt.routing, d.Routing())
		})
	}
}

func TestDevice_Handle_Help(t *testing.T) {
	t.Parallel()

	lines := New().Handle("HELP")
	assert.Len(t, lines, 5)
	assert.Contains(t, lines[0], "PING")
	assert.Contains(t, lines[1], "CFG")

	// Callers may modify the result.
	lines[0] = ""
	assert.Equal(t, "PING -> PONG", New().Handle("HELP")[0])
}
