package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/sinclairtarget/git-contrib/internal/config"
	"github.com/sinclairtarget/git-contrib/internal/git"
	"github.com/sinclairtarget/git-contrib/internal/report"
	"github.com/sinclairtarget/git-contrib/internal/subcommands"
	"github.com/sinclairtarget/git-contrib/internal/users"
)

// Flags shared by every subcommand.
type sourceFlags struct {
	since      string
	until      string
	backend    string
	noCache    bool
	clearCache bool
	cacheDir   string
	verbose    bool
}

type reportFlags struct {
	users          []string
	userFile       string
	buildDirectory bool
	format         string
	outputDir      string
	jobs           int
	showCommitted  bool
}

// --after and --before are spelled the way git log spells them.
func normalizeAliases(f *pflag.FlagSet, name string) pflag.NormalizedName {
	switch name {
	case "after":
		name = "since"
	case "before":
		name = "until"
	}

	return pflag.NormalizedName(name)
}

func newRootCmd(cfg config.Config, stdout io.Writer) *cobra.Command {
	src := sourceFlags{
		backend:  cfg.Backend,
		noCache:  cfg.NoCache,
		cacheDir: cfg.CacheDir,
	}
	rep := reportFlags{
		format:    cfg.Format,
		outputDir: cfg.OutputDir,
		jobs:      cfg.Jobs,
	}

	rootCmd := &cobra.Command{
		Use:   "git-contrib [options...] <repo>...",
		Short: "git-contrib tallies code contributions by email address",
		Long: strings.TrimSpace(`
git-contrib walks the history of one or more repositories and writes a report
with commits, insertions, deletions and average files changed for each email
address, followed by a total. Merge commits are never counted.
		`),
		Version:       fmt.Sprintf("%s %s", Version, Commit),
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if src.verbose {
				configureLogging(slog.LevelDebug)
				logger().Debug("log level set to DEBUG")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, args, src, rep, stdout)
		},
	}

	persistent := rootCmd.PersistentFlags()
	persistent.StringVar(&src.since, "since", "", strings.TrimSpace(`
Only count commits made on or after this date (alias --after)
	`))
	persistent.StringVar(&src.until, "until", "", strings.TrimSpace(`
Only count commits made on or before this date (alias --before)
	`))
	persistent.StringVar(&src.backend, "backend", src.backend, strings.TrimSpace(`
How to read history: "native" (built in) or "cli" (runs git log)
	`))
	persistent.BoolVar(&src.noCache, "no-cache", src.noCache, "Do not read or write the stats cache")
	persistent.BoolVar(&src.clearCache, "clear-cache", false, "Discard cached stats for these repositories before reading")
	persistent.BoolVarP(&src.verbose, "verbose", "v", false, "Enables debug logging")

	flags := rootCmd.Flags()
	flags.StringArrayVarP(&rep.users, "user", "u", nil, strings.TrimSpace(`
Only report on this email. Can be specified multiple times
	`))
	flags.StringVar(&rep.userFile, "user-file", "", strings.TrimSpace(`
Only report on the emails listed in this JSON (or YAML) file
	`))
	flags.BoolVar(&rep.buildDirectory, "build-user-directory", false, strings.TrimSpace(`
Write a JSON file mapping each email to the names it was used with, instead of a report
	`))
	flags.StringVarP(&rep.format, "format", "f", rep.format, "Report format: csv or xlsx")
	flags.StringVarP(&rep.outputDir, "output-dir", "o", rep.outputDir, "Directory to write files to")
	flags.IntVarP(&rep.jobs, "jobs", "j", rep.jobs, "Number of identities to tally in parallel")
	flags.BoolVar(&rep.showCommitted, "show-committed", false, strings.TrimSpace(`
Add a column counting commits made on behalf of another author
	`))

	rootCmd.SetGlobalNormalizationFunc(normalizeAliases)
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return subcommands.UsageError{Msg: "bad flag", Err: err}
	})
	rootCmd.SetOut(stdout)

	rootCmd.AddCommand(newCommitsCmd(&src, stdout))
	return rootCmd
}

func newCommitsCmd(src *sourceFlags, stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "commits [options...] <repo>...",
		Short: "Print each commit as the tally sees it",
		RunE: func(cmd *cobra.Command, args []string) error {
			filters, sourceOpts, err := parseSourceFlags(*src)
			if err != nil {
				return err
			}

			return subcommands.Commits(cmd.Context(), subcommands.CommitsOpts{
				Paths:   args,
				Filters: filters,
				Source:  sourceOpts,
				Stdout:  stdout,
			})
		},
	}
}

func parseSourceFlags(src sourceFlags) (
	git.LogFilters,
	subcommands.SourceOpts,
	error,
) {
	after, err := git.ParseDate(src.since)
	if err != nil {
		return git.LogFilters{}, subcommands.SourceOpts{}, subcommands.UsageError{
			Msg: "bad --since",
			Err: err,
		}
	}

	before, err := git.ParseUntil(src.until)
	if err != nil {
		return git.LogFilters{}, subcommands.SourceOpts{}, subcommands.UsageError{
			Msg: "bad --until",
			Err: err,
		}
	}

	backend, err := git.ParseBackend(src.backend)
	if err != nil {
		return git.LogFilters{}, subcommands.SourceOpts{}, subcommands.UsageError{
			Msg: "bad --backend",
			Err: err,
		}
	}

	filters := git.LogFilters{After: after, Before: before}
	opts := subcommands.SourceOpts{
		Backend:    backend,
		NoCache:    src.noCache,
		ClearCache: src.clearCache,
		CacheDir:   src.cacheDir,
	}
	return filters, opts, nil
}

// Nil when the report should cover every identity in the history.
func resolveUsers(cmd *cobra.Command, rep reportFlags) ([]string, error) {
	userGiven := cmd.Flags().Changed("user")
	if userGiven && rep.userFile != "" {
		return nil, subcommands.UsageError{
			Msg: "--user and --user-file are mutually exclusive",
		}
	}

	if rep.userFile != "" {
		identities, err := users.LoadFile(rep.userFile)
		if err != nil {
			return nil, subcommands.UsageError{Msg: "bad --user-file", Err: err}
		}
		return identities, nil
	}

	if userGiven {
		return rep.users, nil
	}

	return nil, nil
}

func runReport(
	cmd *cobra.Command,
	args []string,
	src sourceFlags,
	rep reportFlags,
	stdout io.Writer,
) error {
	if len(args) == 0 {
		return subcommands.UsageError{Msg: "no repository path given"}
	}

	filters, sourceOpts, err := parseSourceFlags(src)
	if err != nil {
		return err
	}

	identities, err := resolveUsers(cmd, rep)
	if err != nil {
		return err
	}

	format, err := report.ParseFormat(rep.format)
	if err != nil {
		return subcommands.UsageError{Msg: "bad --format", Err: err}
	}

	if rep.buildDirectory {
		_, err := subcommands.Directory(cmd.Context(), subcommands.DirectoryOpts{
			Paths:     args,
			Filters:   filters,
			Source:    sourceOpts,
			OutputDir: rep.outputDir,
			Stdout:    stdout,
		})
		return err
	}

	_, err = subcommands.Report(cmd.Context(), subcommands.ReportOpts{
		Paths:         args,
		Filters:       filters,
		Users:         identities,
		Source:        sourceOpts,
		Format:        format,
		OutputDir:     rep.outputDir,
		Jobs:          rep.jobs,
		ShowCommitted: rep.showCommitted,
		Stdout:        stdout,
	})
	return err
}
