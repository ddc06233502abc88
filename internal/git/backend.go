package git

import (
	"fmt"
	"strings"
)

// Which implementation we use to read history.
type Backend int

const (
	NativeBackend Backend = iota
	CLIBackend
)

func (b Backend) String() string {
	switch b {
	case NativeBackend:
		return "native"
	case CLIBackend:
		return "cli"
	default:
		return "unknown"
	}
}

func ParseBackend(s string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "native":
		return NativeBackend, nil
	case "cli", "git":
		return CLIBackend, nil
	default:
		return NativeBackend, fmt.Errorf(
			"unknown backend \"%s\" (expected \"native\" or \"cli\")",
			s,
		)
	}
}
