package subcommands

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/sinclairtarget/git-contrib/internal/git"
)

type CommitsOpts struct {
	Paths   []string
	Filters git.LogFilters
	Source  SourceOpts
	Stdout  io.Writer
}

// Just prints out a simple representation of each commit as the tally sees
// it, for debugging.
func Commits(ctx context.Context, opts CommitsOpts) (err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("error running \"commits\": %w", err)
		}
	}()

	logger().Debug(
		"called Commits()",
		"paths",
		opts.Paths,
		"filters",
		opts.Filters,
		"backend",
		opts.Source.Backend,
	)

	if len(opts.Paths) == 0 {
		return UsageError{Msg: "no repository path given"}
	}

	w := bufio.NewWriter(opts.Stdout)
	for _, path := range opts.Paths {
		err = printCommits(ctx, w, path, opts)
		if err != nil {
			return err
		}
	}

	return w.Flush()
}

func printCommits(
	ctx context.Context,
	w io.Writer,
	path string,
	opts CommitsOpts,
) (err error) {
	src, done, err := openSource(path, opts.Source)
	if err != nil {
		return err
	}
	defer done()

	commits, closer, err := src.Commits(ctx, opts.Filters)
	if err != nil {
		return err
	}

	defer func() {
		closeErr := closer()
		if err == nil {
			err = closeErr
		}
	}()

	fmt.Fprintf(w, "# %s\n", src.Path())
	for commit, err := range commits {
		if err != nil {
			return fmt.Errorf("error iterating commits: %w", err)
		}

		if commit.IsMerge() {
			fmt.Fprintf(w, "%s (merge)\n", commit)
		} else {
			fmt.Fprintf(w, "%s\n", commit)
		}
	}

	return nil
}
