// Handles summations over commits.
package tally

import (
	"fmt"
	"slices"
	"time"

	"github.com/sinclairtarget/git-contrib/internal/git"
)

// Metrics summed over the commits authored by one identity (or a group of
// identities, once combined).
type UserStats struct {
	Commits             int
	Insertions          int
	Deletions           int
	AverageFilesChanged float64
}

func (s UserStats) String() string {
	return fmt.Sprintf(
		"{ commits:%d +%d -%d avg_files:%.2f }",
		s.Commits,
		s.Insertions,
		s.Deletions,
		s.AverageFilesChanged,
	)
}

// Sum of files changed over all commits. Recovered from the average.
func (s UserStats) TotalFilesChanged() float64 {
	return float64(s.Commits) * s.AverageFilesChanged
}

// Merges two sets of stats. The average is weighted by commit count so that
// combining is associative and commutative, and the zero value is the
// identity element.
func (a UserStats) Combine(b UserStats) UserStats {
	commits := a.Commits + b.Commits

	var avg float64
	switch {
	case commits == 0:
		avg = 0
	case a.Commits == 0:
		avg = b.AverageFilesChanged
	case b.Commits == 0:
		avg = a.AverageFilesChanged
	default:
		avg = (a.TotalFilesChanged() + b.TotalFilesChanged()) / float64(commits)
	}

	return UserStats{
		Commits:             commits,
		Insertions:          a.Insertions + b.Insertions,
		Deletions:           a.Deletions + b.Deletions,
		AverageFilesChanged: avg,
	}
}

// Stats for every identity we looked at, plus how many non-merge commits each
// identity committed on behalf of someone else. The latter never counts
// toward the numbers in the table.
type Report struct {
	Table     Table
	Committed map[string]int
}

func NewReport() Report {
	return Report{
		Table:     Table{},
		Committed: map[string]int{},
	}
}

func (a Report) Merge(b Report) Report {
	committed := make(map[string]int, len(a.Committed)+len(b.Committed))
	for k, v := range a.Committed {
		committed[k] += v
	}
	for k, v := range b.Committed {
		committed[k] += v
	}

	return Report{
		Table:     a.Table.Merge(b.Table),
		Committed: committed,
	}
}

// One line of a finished report.
type Row struct {
	Identity  string
	Stats     UserStats
	Committed int
}

// Rows sorted by identity.
func (r Report) Rows() []Row {
	rows := []Row{}
	for _, identity := range r.Table.Identities() {
		rows = append(rows, Row{
			Identity:  identity,
			Stats:     r.Table[identity],
			Committed: r.Committed[identity],
		})
	}

	return rows
}

// The TOTAL row. Derived on demand and never stored in the table.
func (r Report) Total() Row {
	total := 0
	for _, n := range r.Committed {
		total += n
	}

	return Row{
		Identity:  "TOTAL",
		Stats:     Totalize(r.Table),
		Committed: total,
	}
}

// Classifies and aggregates commits for one identity. Also returns the number
// of commits the identity committed but did not author.
func TallyUser(commits []git.Commit, identity string) (UserStats, int) {
	classified := Classify(commits, identity)
	return Aggregate(classified.Authored), len(classified.CommittedNotAuthored)
}

func TallyUsers(commits []git.Commit, identities []string) Report {
	start := time.Now()

	report := NewReport()
	for _, identity := range slices.Compact(slices.Sorted(slices.Values(identities))) {
		stats, committed := TallyUser(commits, identity)
		report.Table[identity] = stats
		if committed > 0 {
			report.Committed[identity] = committed
		}
	}

	elapsed := time.Now().Sub(start)
	logger().Debug(
		"tallied users",
		"users",
		len(report.Table),
		"commits",
		len(commits),
		"duration_ms",
		elapsed.Milliseconds(),
	)

	return report
}
