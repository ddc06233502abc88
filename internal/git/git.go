/*
* Wraps access to the commit history of a repository.
*
* Two backends are supported: a native one that reads the object database
* through go-git, and one that invokes Git directly as a subprocess and parses
* the output of git log.
 */
package git

import (
	"context"
	"fmt"
	"iter"
	"time"

	"github.com/sinclairtarget/git-contrib/internal/iterutils"
)

// Totals for the changes introduced by a single commit.
type ChangeStats struct {
	Insertions   int
	Deletions    int
	FilesChanged int
}

type Commit struct {
	Hash           string
	ShortHash      string
	ParentCount    int
	AuthorName     string
	AuthorEmail    string
	CommitterName  string
	CommitterEmail string
	Date           time.Time // Committer time
	Stats          ChangeStats
}

// A merge commit joins two histories rather than introducing an edit.
func (c Commit) IsMerge() bool {
	return c.ParentCount > 1
}

func (c Commit) Name() string {
	if c.ShortHash != "" {
		return c.ShortHash
	} else if c.Hash != "" {
		return c.Hash
	} else {
		return "unknown"
	}
}

func (c Commit) String() string {
	return fmt.Sprintf(
		"{ hash:%s author:%s <%s> committer:%s <%s> date:%s parents:%d +%d -%d files:%d }",
		c.Name(),
		c.AuthorName,
		c.AuthorEmail,
		c.CommitterName,
		c.CommitterEmail,
		c.Date.Format("Jan 2, 2006"),
		c.ParentCount,
		c.Stats.Insertions,
		c.Stats.Deletions,
		c.Stats.FilesChanged,
	)
}

// A repository we can walk history for.
type Source interface {
	Path() string

	// Returns an iterator over the commits reachable from HEAD that pass the
	// given filters.
	//
	// Also returns a closer() function for cleanup and an error when
	// encountered.
	Commits(ctx context.Context, filters LogFilters) (
		iter.Seq2[Commit, error],
		func() error,
		error,
	)
}

// Lets the native backend skip diffing commits it has seen before.
type StatsCache interface {
	Lookup(hash string) (ChangeStats, bool)
	Store(hash string, stats ChangeStats)
}

type options struct {
	statsCache StatsCache
}

type Option func(*options)

func WithStatsCache(c StatsCache) Option {
	return func(o *options) {
		o.statsCache = c
	}
}

// Opens the repository at path with the given backend.
func Open(path string, backend Backend, opts ...Option) (Source, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	switch backend {
	case NativeBackend:
		return OpenNative(path, o.statsCache)
	case CLIBackend:
		if o.statsCache != nil {
			logger().Debug("stats cache is ignored by the cli backend")
		}
		return OpenCLI(path)
	default:
		return nil, fmt.Errorf("unrecognized backend: %d", backend)
	}
}

// Reads every commit from the source into memory.
func Collect(ctx context.Context, src Source, filters LogFilters) (
	_ []Commit,
	err error,
) {
	defer func() {
		if err != nil {
			err = fmt.Errorf(
				"error reading commits from %s: %w",
				src.Path(),
				err,
			)
		}
	}()

	start := time.Now()

	seq, closer, err := src.Commits(ctx, filters)
	if err != nil {
		return nil, err
	}

	commits, err := iterutils.Collect(seq)
	if err != nil {
		closer() // Already failing; the iteration error is more useful
		return nil, err
	}

	err = closer()
	if err != nil {
		return nil, err
	}

	elapsed := time.Now().Sub(start)
	logger().Debug(
		"collected commits",
		"path",
		src.Path(),
		"count",
		len(commits),
		"duration_ms",
		elapsed.Milliseconds(),
	)

	return commits, nil
}
