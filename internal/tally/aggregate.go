package tally

import (
	"github.com/sinclairtarget/git-contrib/internal/git"
)

// Sums the authored commits of one identity. An empty slice gives the zero
// value.
func Aggregate(authored []git.Commit) UserStats {
	var stats UserStats
	filesChanged := 0

	for _, commit := range authored {
		stats.Commits += 1
		stats.Insertions += commit.Stats.Insertions
		stats.Deletions += commit.Stats.Deletions
		filesChanged += commit.Stats.FilesChanged
	}

	if stats.Commits > 0 {
		stats.AverageFilesChanged = float64(filesChanged) / float64(stats.Commits)
	}

	return stats
}
