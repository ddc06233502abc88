package cmd

import (
	"time"
)

type LogFilters struct {
	Since time.Time
	Until time.Time
}

// Turn into CLI args we can pass to `git log`
func (f LogFilters) ToArgs() []string {
	args := []string{}

	if !f.Since.IsZero() {
		args = append(args, "--since", f.Since.Format(time.RFC3339))
	}

	if !f.Until.IsZero() {
		args = append(args, "--until", f.Until.Format(time.RFC3339))
	}

	return args
}
