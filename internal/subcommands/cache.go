package subcommands

import (
	"fmt"
	"os"

	"github.com/sinclairtarget/git-contrib/internal/cache"
	cacheBackends "github.com/sinclairtarget/git-contrib/internal/cache/backends"
)

func warnFail(err error) *cache.Cache {
	logger().Warn(
		fmt.Sprintf("failed to initialize cache: %v", err),
	)
	logger().Warn("disabling caching")
	return cache.NewCache(cacheBackends.NoopBackend{})
}

// getCache returns the stats cache for the repository at repoPath, already
// opened. Problems with the cache are never fatal; we fall back to a cache
// that remembers nothing.
func getCache(cacheDir string, repoPath string) *cache.Cache {
	if cacheDir == "" {
		return cache.NewCache(cacheBackends.NoopBackend{})
	}

	err := os.MkdirAll(cacheDir, 0o700)
	if err != nil {
		return warnFail(err)
	}

	p, err := cache.RepoCachePath(
		cacheDir,
		repoPath,
		cacheBackends.JSONBackendExt,
	)
	if err != nil {
		return warnFail(err)
	}

	c := cache.NewCache(cacheBackends.JSONBackend{Path: p})
	err = c.Open()
	if err != nil {
		return warnFail(err)
	}

	logger().Debug("cache initialized", "backend", c.Name(), "path", p)
	return c
}
