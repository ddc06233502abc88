package git

import (
	"fmt"
	"strings"
	"time"
)

// Bounds on committer time. A zero time leaves that end open.
type LogFilters struct {
	After  time.Time
	Before time.Time
}

// Whether a commit made at t passes the filters.
func (f LogFilters) Includes(t time.Time) bool {
	if !f.After.IsZero() && t.Before(f.After) {
		return false
	}

	if !f.Before.IsZero() && t.After(f.Before) {
		return false
	}

	return true
}

var dateLayouts = []string{
	time.RFC3339,
	time.DateTime,
	"2006-01-02T15:04:05",
	time.DateOnly,
}

// Parses a date given on the command line. Dates without a zone are read as
// local time. The empty string parses to the zero time.
func ParseDate(s string) (time.Time, error) {
	t, _, err := parseDate(s)
	return t, err
}

// Like ParseDate, but a bare date means the end of that day, so that commits
// made during it pass an upper bound.
func ParseUntil(s string) (time.Time, error) {
	t, layout, err := parseDate(s)
	if err != nil || t.IsZero() {
		return t, err
	}

	if layout == time.DateOnly {
		t = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}

	return t, nil
}

func parseDate(s string) (time.Time, string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, "", nil
	}

	for _, layout := range dateLayouts {
		t, err := time.ParseInLocation(layout, s, time.Local)
		if err == nil {
			return t, layout, nil
		}
	}

	return time.Time{}, "", fmt.Errorf(
		"could not parse date \"%s\" (expected YYYY-MM-DD, \"YYYY-MM-DD HH:MM:SS\" or RFC 3339)",
		s,
	)
}
