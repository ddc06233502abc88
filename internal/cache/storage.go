package cache

import (
	"fmt"
	"hash/fnv"
	"path/filepath"
)

// Each repository gets its own cache file under dir, named after a hash of
// the repository's absolute path.
func RepoCachePath(dir string, repoPath string, ext string) (string, error) {
	abs, err := filepath.Abs(repoPath)
	if err != nil {
		return "", fmt.Errorf("could not resolve repository path: %w", err)
	}

	h := fnv.New32a()
	h.Write([]byte(abs))

	filename := fmt.Sprintf("%s-%08x.%s", filepath.Base(abs), h.Sum32(), ext)
	return filepath.Join(dir, filename), nil
}
