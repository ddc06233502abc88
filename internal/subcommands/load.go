package subcommands

import (
	"context"
	"fmt"

	"github.com/sinclairtarget/git-contrib/internal/git"
)

// How to get at the history of each repository.
type SourceOpts struct {
	Backend git.Backend
	NoCache bool

	// Forget cached stats before reading, so they are all computed again.
	ClearCache bool

	// Where per-repository stats caches live. Empty disables caching.
	CacheDir string
}

func openSource(path string, opts SourceOpts) (git.Source, func(), error) {
	if opts.Backend != git.NativeBackend || opts.NoCache {
		src, err := git.Open(path, opts.Backend)
		return src, func() {}, err
	}

	c := getCache(opts.CacheDir, path)
	if opts.ClearCache {
		if err := c.Clear(); err != nil {
			return nil, nil, fmt.Errorf("could not clear cache: %w", err)
		}
		logger().Debug("cache cleared", "backend", c.Name(), "repo", path)
	}

	src, err := git.Open(path, opts.Backend, git.WithStatsCache(c))
	if err != nil {
		return nil, nil, err
	}

	done := func() {
		if err := c.Close(); err != nil {
			logger().Warn(fmt.Sprintf("failed to write cache: %v", err))
		}
	}
	return src, done, nil
}

// Reads the commits of every repository, in the order given, into a single
// slice. Commits reachable from more than one repository appear once per
// repository.
func loadCommits(
	ctx context.Context,
	paths []string,
	filters git.LogFilters,
	opts SourceOpts,
) ([]git.Commit, error) {
	var all []git.Commit
	for _, path := range paths {
		src, done, err := openSource(path, opts)
		if err != nil {
			return nil, err
		}

		commits, err := git.Collect(ctx, src, filters)
		done()
		if err != nil {
			return nil, err
		}

		all = append(all, commits...)
	}

	logger().Debug("loaded commits", "repos", len(paths), "count", len(all))
	return all, nil
}
