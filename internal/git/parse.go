package git

import (
	"fmt"
	"iter"
	"strconv"
	"strings"
	"time"

	"github.com/sinclairtarget/git-contrib/internal/git/cmd"
)

const numHeaderFields = 8

func parseHeader(line string) (Commit, error) {
	fields := strings.Split(strings.TrimPrefix(line, cmd.RecordSeparator), "\x00")
	if len(fields) != numHeaderFields {
		return Commit{}, fmt.Errorf(
			"expected %d fields in commit header but got %d",
			numHeaderFields,
			len(fields),
		)
	}

	var commit Commit
	commit.Hash = fields[0]
	commit.ShortHash = fields[1]
	commit.ParentCount = len(strings.Fields(fields[2]))
	commit.AuthorName = fields[3]
	commit.AuthorEmail = fields[4]
	commit.CommitterName = fields[5]
	commit.CommitterEmail = fields[6]

	i, err := strconv.ParseInt(fields[7], 10, 64)
	if err != nil {
		return commit, fmt.Errorf(
			"error parsing date from commit %s: %w",
			commit.Name(),
			err,
		)
	}
	commit.Date = time.Unix(i, 0)

	return commit, nil
}

func parseLinesChanged(s string, line string) (int, error) {
	// Binary files show "-" instead of a count
	if s == "-" {
		return 0, nil
	}

	changed, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("could not parse %s as int on line \"%s\": %w",
			s,
			line,
			err,
		)
	}

	return changed, nil
}

// Adds a --numstat line ("added<TAB>removed<TAB>path") to the commit totals.
func addNumstat(commit *Commit, line string) error {
	parts := strings.SplitN(line, "\t", 3)
	if len(parts) != 3 {
		return fmt.Errorf("malformed numstat line \"%s\"", line)
	}

	added, err := parseLinesChanged(parts[0], line)
	if err != nil {
		return err
	}

	removed, err := parseLinesChanged(parts[1], line)
	if err != nil {
		return err
	}

	commit.Stats.Insertions += added
	commit.Stats.Deletions += removed
	commit.Stats.FilesChanged += 1
	return nil
}

// Turns an iterator over lines from git log into an iterator of commits
func ParseCommits(lines iter.Seq[string]) iter.Seq2[Commit, error] {
	return func(yield func(Commit, error) bool) {
		var commit Commit
		started := false

		for line := range lines {
			if strings.HasPrefix(line, cmd.RecordSeparator) {
				if started {
					if !yield(commit, nil) {
						return
					}
				}

				var err error
				commit, err = parseHeader(line)
				if err != nil {
					yield(commit, err)
					return
				}

				started = true
				continue
			}

			if len(strings.TrimSpace(line)) == 0 {
				continue
			}

			if !started {
				yield(commit, fmt.Errorf("numstat line before any commit: \"%s\"", line))
				return
			}

			err := addNumstat(&commit, line)
			if err != nil {
				yield(
					commit,
					fmt.Errorf(
						"error parsing file diffs from commit %s: %w",
						commit.Name(),
						err,
					),
				)
				return
			}
		}

		if started {
			yield(commit, nil)
		}
	}
}
