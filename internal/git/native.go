package git

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"path/filepath"

	gitlib "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

const shortHashLen = 7

// Reads history through go-git without shelling out.
type NativeSource struct {
	path       string
	repo       *gitlib.Repository
	statsCache StatsCache
}

func OpenNative(path string, statsCache StatsCache) (*NativeSource, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, RepositoryNotFoundError{Path: path, Err: err}
	}

	if _, err := os.Stat(abs); err != nil {
		return nil, RepositoryNotFoundError{Path: path, Err: err}
	}

	repo, err := gitlib.PlainOpenWithOptions(
		abs,
		&gitlib.PlainOpenOptions{DetectDotGit: true},
	)
	if err != nil {
		if errors.Is(err, gitlib.ErrRepositoryNotExists) {
			return nil, RepositoryNotFoundError{Path: path}
		}
		return nil, RepositoryNotFoundError{Path: path, Err: err}
	}

	_, err = repo.Worktree()
	if errors.Is(err, gitlib.ErrIsBareRepository) {
		return nil, RepositoryStateError{
			Path:   path,
			Reason: "repository is bare",
		}
	} else if err != nil {
		return nil, RepositoryStateError{
			Path:   path,
			Reason: "could not open worktree",
			Err:    err,
		}
	}

	logger().Debug("opened repository", "path", abs, "backend", "native")
	return &NativeSource{path: abs, repo: repo, statsCache: statsCache}, nil
}

func (s *NativeSource) Path() string {
	return s.path
}

func (s *NativeSource) Commits(ctx context.Context, filters LogFilters) (
	iter.Seq2[Commit, error],
	func() error,
	error,
) {
	head, err := s.repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return nil, nil, RepositoryStateError{
				Path:   s.path,
				Reason: "HEAD does not point at a commit",
			}
		}
		return nil, nil, RepositoryStateError{
			Path:   s.path,
			Reason: "could not resolve HEAD",
			Err:    err,
		}
	}

	logOpts := gitlib.LogOptions{From: head.Hash()}
	if !filters.After.IsZero() {
		logOpts.Since = &filters.After
	}
	if !filters.Before.IsZero() {
		logOpts.Until = &filters.Before
	}

	commitIter, err := s.repo.Log(&logOpts)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read log: %w", err)
	}

	seq := func(yield func(Commit, error) bool) {
		for {
			if err := ctx.Err(); err != nil {
				yield(Commit{}, err)
				return
			}

			c, err := commitIter.Next()
			if err == io.EOF {
				return
			} else if err != nil {
				yield(Commit{}, fmt.Errorf("error iterating commits: %w", err))
				return
			}

			commit, err := s.toCommit(ctx, c)
			if !yield(commit, err) || err != nil {
				return
			}
		}
	}

	closer := func() error {
		commitIter.Close()
		return nil
	}

	return seq, closer, nil
}

func (s *NativeSource) toCommit(ctx context.Context, c *object.Commit) (
	Commit,
	error,
) {
	hash := c.Hash.String()
	commit := Commit{
		Hash:           hash,
		ShortHash:      hash[:shortHashLen],
		ParentCount:    c.NumParents(),
		AuthorName:     c.Author.Name,
		AuthorEmail:    c.Author.Email,
		CommitterName:  c.Committer.Name,
		CommitterEmail: c.Committer.Email,
		Date:           c.Committer.When,
	}

	// Nothing tallies merge diffs, and they are the slowest to compute
	if commit.IsMerge() {
		return commit, nil
	}

	if s.statsCache != nil {
		if stats, ok := s.statsCache.Lookup(hash); ok {
			commit.Stats = stats
			return commit, nil
		}
	}

	fileStats, err := c.StatsContext(ctx)
	if err != nil {
		return commit, fmt.Errorf(
			"error computing stats for commit %s: %w",
			commit.Name(),
			err,
		)
	}

	commit.Stats = sumFileStats(fileStats)
	if s.statsCache != nil {
		s.statsCache.Store(hash, commit.Stats)
	}

	return commit, nil
}

func sumFileStats(fileStats object.FileStats) ChangeStats {
	var stats ChangeStats
	for _, fs := range fileStats {
		stats.Insertions += fs.Addition
		stats.Deletions += fs.Deletion
	}
	stats.FilesChanged = len(fileStats)

	return stats
}
