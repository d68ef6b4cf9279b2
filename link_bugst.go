package pauwcheck

import (
	"fmt"

	"go.bug.st/serial"
)

type bugstLink struct {
	serial.Port
}

func openBugst(cfg Config) (*bugstLink, error) {
	mode := &serial.Mode{
		BaudRate: cfg.BaudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	port, err := serial.Open(cfg.Device, mode)
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port: %w", err)
	}
	if err := port.SetReadTimeout(cfg.ReadTimeout); err != nil {
		port.Close()
		return nil, fmt.Errorf("set read timeout: %w", err)
	}
	return &bugstLink{Port: port}, nil
}

func (l *bugstLink) ResetInput() error {
	return l.ResetInputBuffer()
}
