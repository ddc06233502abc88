package subcommands

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/sinclairtarget/git-contrib/internal/concurrent"
	"github.com/sinclairtarget/git-contrib/internal/git"
	"github.com/sinclairtarget/git-contrib/internal/report"
	"github.com/sinclairtarget/git-contrib/internal/tally"
)

type ReportOpts struct {
	Paths   []string
	Filters git.LogFilters

	// Identities to report on. Nil means everyone found in the history.
	Users []string

	Source        SourceOpts
	Format        report.Format
	OutputDir     string
	Jobs          int
	ShowCommitted bool

	// Summary table and the path of the report go here.
	Stdout io.Writer
}

// Tallies every identity over the given repositories and writes the report
// file. Returns the path of the file written.
func Report(ctx context.Context, opts ReportOpts) (_ string, err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("error running \"report\": %w", err)
		}
	}()

	logger().Debug(
		"called Report()",
		"paths",
		opts.Paths,
		"filters",
		opts.Filters,
		"users",
		opts.Users,
		"backend",
		opts.Source.Backend,
		"format",
		opts.Format,
		"jobs",
		opts.Jobs,
	)

	if len(opts.Paths) == 0 {
		return "", UsageError{Msg: "no repository path given"}
	}

	start := time.Now()

	commits, err := loadCommits(ctx, opts.Paths, opts.Filters, opts.Source)
	if err != nil {
		return "", err
	}

	identities := opts.Users
	if identities == nil {
		identities = tally.ListIdentities(commits)
	}

	result, err := concurrent.TallyUsers(ctx, commits, identities, opts.Jobs)
	if err != nil {
		return "", err
	}

	reportOpts := report.Opts{ShowCommitted: opts.ShowCommitted}
	p, err := report.Save(
		opts.OutputDir,
		opts.Format,
		result,
		reportOpts,
		time.Now(),
	)
	if err != nil {
		return "", err
	}

	if opts.Stdout != nil {
		report.WriteSummary(opts.Stdout, result, reportOpts)
		fmt.Fprintf(opts.Stdout, "Report written to %s\n", p)
	}

	elapsed := time.Now().Sub(start)
	logger().Debug("finished report", "duration_ms", elapsed.Milliseconds())

	return p, nil
}
