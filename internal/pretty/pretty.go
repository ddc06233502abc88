package pretty

import (
	"os"

	"golang.org/x/term"
)

// Whether we can draw colors and redraw lines on f.
func AllowDynamic(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
