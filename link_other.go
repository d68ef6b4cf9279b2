//go:build !linux

package pauwcheck

import "errors"

// DefaultDriver is the driver Open uses when Config.Driver is empty.
const DefaultDriver = DriverBugst

func openTermios(Config) (Link, error) {
	return nil, errors.New("termios driver is only available on linux")
}
