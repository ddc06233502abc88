package backends

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/sinclairtarget/git-contrib/internal/cache"
)

const JSONBackendExt = "ndjson"

// Stores entries on disk at a particular filepath.
//
// Entries are stored as newline-delimited JSON so new ones can be appended
// without rewriting the file. The whole file is read into memory on Load().
type JSONBackend struct {
	Path string
}

func (b JSONBackend) Name() string {
	return "json"
}

func (b JSONBackend) Load() ([]cache.Entry, error) {
	entries := []cache.Entry{}

	f, err := os.Open(b.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return entries, nil // Nothing cached yet
	} else if err != nil {
		return entries, err
	}
	defer f.Close()

	dec := json.NewDecoder(f)

	// Cache.Store() never queues a known hash, so a repeat means the file
	// was written by something else.
	seen := map[string]bool{}

	for {
		var e cache.Entry

		err = dec.Decode(&e)
		if err == io.EOF {
			break
		} else if err != nil {
			return entries, err
		}

		if seen[e.Hash] {
			return entries, fmt.Errorf("duplicate commit in cache: %s", e.Hash)
		}

		seen[e.Hash] = true
		entries = append(entries, e)
	}

	return entries, nil
}

func (b JSONBackend) Add(entries []cache.Entry) (err error) {
	f, err := os.OpenFile(
		b.Path,
		os.O_WRONLY|os.O_APPEND|os.O_CREATE,
		0644,
	)
	if err != nil {
		return err
	}
	defer func() {
		closeErr := f.Close()
		if err == nil {
			err = closeErr
		}
	}()

	enc := json.NewEncoder(f)

	for _, e := range entries {
		err = enc.Encode(&e)
		if err != nil {
			return err
		}
	}

	return nil
}

func (b JSONBackend) Clear() error {
	err := os.Remove(b.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	return err
}
