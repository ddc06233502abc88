package report

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// Runs in the same second get a numeric suffix, up to this many.
const maxSameSecond = 100

// Claims a filename in dir that no earlier run has used. The file is left
// empty.
func reserveFile(dir string, prefix string, ext string, now time.Time) (
	string,
	error,
) {
	name := Filename(prefix, ext, now)
	for i := 1; i <= maxSameSecond; i++ {
		p := filepath.Join(dir, name)

		f, err := os.OpenFile(p, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			return p, f.Close()
		} else if !errors.Is(err, fs.ErrExist) {
			return "", err
		}

		name = fmt.Sprintf(
			"%s-%s-%d.%s",
			prefix,
			now.Format(timestampLayout),
			i,
			ext,
		)
	}

	return "", fmt.Errorf(
		"more than %d files named %s in %s",
		maxSameSecond,
		Filename(prefix, ext, now),
		dir,
	)
}

// Writes to a temp file in dir and moves it over a freshly reserved name
// once write succeeds. On failure nothing is left behind.
func writeNewFile(
	dir string,
	prefix string,
	ext string,
	now time.Time,
	write func(io.Writer) error,
) (_ string, err error) {
	err = os.MkdirAll(dir, 0o755)
	if err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(dir, "."+prefix+"-*.tmp")
	if err != nil {
		return "", err
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	// CreateTemp makes the file private; reports are not
	err = tmp.Chmod(0o644)
	if err != nil {
		return "", err
	}

	err = write(tmp)
	if err != nil {
		return "", err
	}

	err = tmp.Close()
	if err != nil {
		return "", err
	}

	p, err := reserveFile(dir, prefix, ext, now)
	if err != nil {
		return "", err
	}

	err = os.Rename(tmp.Name(), p)
	if err != nil {
		os.Remove(p)
		return "", err
	}

	return p, nil
}
