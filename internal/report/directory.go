package report

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/sinclairtarget/git-contrib/internal/tally"
)

// Object mapping each email to the names it was used with.
func WriteDirectory(w io.Writer, d tally.Directory) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("error encoding user directory: %w", err)
	}

	return nil
}

func SaveDirectory(dir string, d tally.Directory, now time.Time) (
	_ string,
	err error,
) {
	write := func(w io.Writer) error { return WriteDirectory(w, d) }

	p, err := writeNewFile(dir, DirectoryPrefix, "json", now, write)
	if err != nil {
		return "", fmt.Errorf("error writing user directory: %w", err)
	}

	logger().Debug("wrote user directory", "path", p, "identities", len(d))
	return p, nil
}
