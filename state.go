package pauwcheck

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Pin is a physical pin label, A through D.
type Pin string

const (
	PinA Pin = "A"
	PinB Pin = "B"
	PinC Pin = "C"
	PinD Pin = "D"

	// PinAbsent marks a role missing from a STATE line.
	PinAbsent Pin = ""
)

func (p Pin) String() string {
	if p == PinAbsent {
		return "None"
	}
	return string(p)
}

// Mapping assigns the four signal roles to pins.
type Mapping struct {
	IP Pin // current positive
	IM Pin // current negative
	VP Pin // voltage positive
	VM Pin // voltage negative
}

// State is a parsed STATE line. Cfg 0 means a custom mapping set with SET.
type State struct {
	Cfg int
	Mapping
}

func (s State) String() string {
	return fmt.Sprintf("(%d, %s, %s, %s, %s)", s.Cfg, s.IP, s.IM, s.VP, s.VM)
}

// CustomConfig is the cfg id the device reports after SET.
const CustomConfig = 0

var configTable = [...]Mapping{
	{IP: PinA, IM: PinB, VP: PinC, VM: PinD},
	{IP: PinB, IM: PinA, VP: PinD, VM: PinC},
	{IP: PinB, IM: PinC, VP: PinD, VM: PinA},
	{IP: PinC, IM: PinB, VP: PinA, VM: PinD},
}

// ConfigIDs returns the preset ids in ascending order.
func ConfigIDs() []int {
	ids := make([]int, len(configTable))
	for i := range configTable {
		ids[i] = i + 1
	}
	return ids
}

// LookupConfig returns the expected mapping for a preset id.
func LookupConfig(id int) (Mapping, bool) {
	if id < 1 || id > len(configTable) {
		return Mapping{}, false
	}
	return configTable[id-1], true
}

const statePrefix = "STATE "

var (
	ErrNotState   = errors.New("not a STATE line")
	ErrMissingCfg = errors.New("CFG field missing")
	ErrBadCfg     = errors.New("CFG field is not an integer")
)

// ParseState decodes a line of the form
//
//	STATE CFG=<n> IP=<p> IM=<p> VP=<p> VM=<p>
//
// Fields may come in any order and tokens without '=' are ignored. CFG is
// mandatory; pins default to PinAbsent. On error the State is zero and must
// not be used.
func ParseState(line string) (State, error) {
	rest, ok := strings.CutPrefix(line, statePrefix)
	if !ok {
		return State{}, ErrNotState
	}

	fields := make(map[string]string)
	for _, tok := range strings.Fields(rest) {
		key, value, ok := strings.Cut(tok, "=")
		if !ok {
			continue
		}
		fields[key] = value
	}

	raw, ok := fields["CFG"]
	if !ok {
		return State{}, ErrMissingCfg
	}
	cfg, err := strconv.Atoi(raw)
	if err != nil {
		return State{}, fmt.Errorf("%w: %q", ErrBadCfg, raw)
	}

	return State{
		Cfg: cfg,
		Mapping: Mapping{
			IP: Pin(fields["IP"]),
			IM: Pin(fields["IM"]),
			VP: Pin(fields["VP"]),
			VM: Pin(fields["VM"]),
		},
	}, nil
}
