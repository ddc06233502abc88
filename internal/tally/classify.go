package tally

import (
	"github.com/sinclairtarget/git-contrib/internal/git"
)

// Commits relevant to one identity.
type Classified struct {
	Authored             []git.Commit
	CommittedNotAuthored []git.Commit
}

// Splits commits into those the identity authored and those it only
// committed. Merge commits go in neither bucket: whoever merged did not write
// the change, and counting them would count the same lines twice.
func Classify(commits []git.Commit, identity string) Classified {
	classified := Classified{
		Authored:             []git.Commit{},
		CommittedNotAuthored: []git.Commit{},
	}

	for _, commit := range commits {
		if commit.IsMerge() {
			continue
		}

		if commit.AuthorEmail == identity {
			classified.Authored = append(classified.Authored, commit)
		} else if commit.CommitterEmail == identity {
			classified.CommittedNotAuthored = append(
				classified.CommittedNotAuthored,
				commit,
			)
		}
	}

	return classified
}
