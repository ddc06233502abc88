package subcommands

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/sinclairtarget/git-contrib/internal/git"
	"github.com/sinclairtarget/git-contrib/internal/report"
	"github.com/sinclairtarget/git-contrib/internal/tally"
)

type DirectoryOpts struct {
	Paths     []string
	Filters   git.LogFilters
	Source    SourceOpts
	OutputDir string
	Stdout    io.Writer
}

// Writes the JSON user directory instead of a report. Returns the path of the
// file written.
func Directory(ctx context.Context, opts DirectoryOpts) (_ string, err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("error running \"directory\": %w", err)
		}
	}()

	logger().Debug(
		"called Directory()",
		"paths",
		opts.Paths,
		"filters",
		opts.Filters,
		"backend",
		opts.Source.Backend,
	)

	if len(opts.Paths) == 0 {
		return "", UsageError{Msg: "no repository path given"}
	}

	commits, err := loadCommits(ctx, opts.Paths, opts.Filters, opts.Source)
	if err != nil {
		return "", err
	}

	directory := tally.BuildDirectory(commits)

	p, err := report.SaveDirectory(opts.OutputDir, directory, time.Now())
	if err != nil {
		return "", err
	}

	if opts.Stdout != nil {
		fmt.Fprintf(
			opts.Stdout,
			"User directory with %d identities written to %s\n",
			len(directory),
			p,
		)
	}

	return p, nil
}
