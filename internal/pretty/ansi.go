// ANSI escape codes
package pretty

var colorEnabled = true

// Turned off when stdout is not a terminal.
func SetColorEnabled(enabled bool) {
	colorEnabled = enabled
}

func ColorEnabled() bool {
	return colorEnabled
}

const (
	resetCode = "\x1b[0m"
	boldCode  = "\x1b[1m"
	dimCode   = "\x1b[2m"
	greenCode = "\x1b[32m"
	redCode   = "\x1b[31m"
)

func code(c string) string {
	if colorEnabled {
		return c
	}
	return ""
}

func Bold() string  { return code(boldCode) }
func Dim() string   { return code(dimCode) }
func Green() string { return code(greenCode) }
func Red() string   { return code(redCode) }

// Wraps s in the given color, resetting afterwards.
func Paint(color func() string, s string) string {
	if !colorEnabled {
		return s
	}
	return color() + s + resetCode
}
