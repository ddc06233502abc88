package git

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"os"
	"path/filepath"

	"github.com/sinclairtarget/git-contrib/internal/git/cmd"
)

// Reads history by running git log as a subprocess.
type CLISource struct {
	path string
}

func OpenCLI(path string) (*CLISource, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, RepositoryNotFoundError{Path: path, Err: err}
	}

	if _, err := os.Stat(abs); err != nil {
		return nil, RepositoryNotFoundError{Path: path, Err: err}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	isBare, err := cmd.RevParse(ctx, abs, "--is-bare-repository")
	if err != nil {
		// Only git refusing the path means there is no repository there
		if isGitFailure(err) {
			return nil, RepositoryNotFoundError{Path: path, Err: err}
		}
		return nil, err
	}

	if isBare == "true" {
		return nil, RepositoryStateError{
			Path:   path,
			Reason: "repository is bare",
		}
	}

	logger().Debug("opened repository", "path", abs, "backend", "cli")
	return &CLISource{path: abs}, nil
}

func (s *CLISource) Path() string {
	return s.path
}

func (s *CLISource) Commits(ctx context.Context, filters LogFilters) (
	iter.Seq2[Commit, error],
	func() error,
	error,
) {
	_, err := cmd.RevParse(ctx, s.path, "--verify", "--quiet", "HEAD")
	if err != nil {
		if !isGitFailure(err) {
			return nil, nil, err
		}
		return nil, nil, RepositoryStateError{
			Path:   s.path,
			Reason: "HEAD does not point at a commit",
			Err:    err,
		}
	}

	subprocess, err := cmd.RunLog(
		ctx,
		s.path,
		cmd.LogFilters{Since: filters.After, Until: filters.Before},
	)
	if err != nil {
		return nil, nil, err
	}

	lines, finish := subprocess.StdoutLines()
	commits := filterCommits(ParseCommits(lines), filters)

	closer := func() error {
		err := finish()
		if err != nil {
			return err
		}

		err = subprocess.Wait()
		if err != nil {
			return fmt.Errorf("git log failed: %w", err)
		}

		return nil
	}
	return commits, closer, nil
}

// Whether git ran and exited non-zero, as opposed to not running at all.
func isGitFailure(err error) bool {
	var subprocessErr cmd.SubprocessErr
	return errors.As(err, &subprocessErr)
}

// git log compares bounds in whole seconds; this applies them exactly, the
// same way go-git does for the native backend.
func filterCommits(
	commits iter.Seq2[Commit, error],
	filters LogFilters,
) iter.Seq2[Commit, error] {
	return func(yield func(Commit, error) bool) {
		for commit, err := range commits {
			if err != nil {
				yield(commit, err)
				return
			}

			if !filters.Includes(commit.Date) {
				continue
			}

			if !yield(commit, nil) {
				return
			}
		}
	}
}
