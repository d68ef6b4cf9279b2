package pauwcheck

import (
	"errors"
	"fmt"
	"strings"

	"go.bug.st/serial/enumerator"
)

// PortInfo describes a visible serial device.
type PortInfo struct {
	Name        string
	Description string
	IsUSB       bool
	VID         string
	PID         string
}

var (
	ErrNoPorts       = errors.New("no serial ports found")
	ErrAmbiguousPort = errors.New("several serial ports found and none identifies the device")
)

var (
	descriptionFingerprints = []string{"adafruit", "feather", "rp2040"}
	nameFingerprints        = []string{"usbmodem", "ttyacm"}
	vendorFingerprints      = []string{"239a"} // Adafruit
)

// ListPorts enumerates the serial devices currently attached.
func ListPorts() ([]PortInfo, error) {
	details, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return nil, fmt.Errorf("enumerate ports: %w", err)
	}

	ports := make([]PortInfo, 0, len(details))
	for _, d := range details {
		ports = append(ports, PortInfo{
			Name:        d.Name,
			Description: d.Product,
			IsUSB:       d.IsUSB,
			VID:         d.VID,
			PID:         d.PID,
		})
	}
	return ports, nil
}

// Recommend picks the port to test when the user named none: the only port
// matching a known board fingerprint, or else the only port present.
// Otherwise it returns ErrNoPorts or ErrAmbiguousPort so the caller can ask
// for an explicit port.
func Recommend(ports []PortInfo) (PortInfo, error) {
	if len(ports) == 0 {
		return PortInfo{}, ErrNoPorts
	}

	var candidates []PortInfo
	for _, p := range ports {
		if p.Fingerprinted() {
			candidates = append(candidates, p)
		}
	}
	if len(candidates) == 1 {
		return candidates[0], nil
	}
	if len(ports) == 1 {
		return ports[0], nil
	}
	return PortInfo{}, ErrAmbiguousPort
}

// Fingerprinted reports whether the port looks like the target board.
func (p PortInfo) Fingerprinted() bool {
	desc := strings.ToLower(p.Description)
	for _, f := range descriptionFingerprints {
		if strings.Contains(desc, f) {
			return true
		}
	}
	name := strings.ToLower(p.Name)
	for _, f := range nameFingerprints {
		if strings.Contains(name, f) {
			return true
		}
	}
	vid := strings.ToLower(p.VID)
	for _, f := range vendorFingerprints {
		if p.IsUSB && vid == f {
			return true
		}
	}
	return false
}
