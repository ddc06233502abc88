package tally

import (
	"slices"

	"github.com/sinclairtarget/git-contrib/internal/git"
)

// Every author and committer email in the commits, sorted.
func ListIdentities(commits []git.Commit) []string {
	seen := map[string]bool{}
	for _, commit := range commits {
		if commit.AuthorEmail != "" {
			seen[commit.AuthorEmail] = true
		}
		if commit.CommitterEmail != "" {
			seen[commit.CommitterEmail] = true
		}
	}

	identities := make([]string, 0, len(seen))
	for identity := range seen {
		identities = append(identities, identity)
	}

	slices.Sort(identities)
	return identities
}

// Maps each identity to the distinct names it has used, in the order first
// seen.
type Directory map[string][]string

func (d Directory) add(identity string, name string) {
	if identity == "" {
		return
	}

	names, ok := d[identity]
	if !ok {
		names = []string{}
	}

	if name != "" && !slices.Contains(names, name) {
		names = append(names, name)
	}

	d[identity] = names
}

func BuildDirectory(commits []git.Commit) Directory {
	directory := Directory{}
	for _, commit := range commits {
		directory.add(commit.AuthorEmail, commit.AuthorName)
		directory.add(commit.CommitterEmail, commit.CommitterName)
	}

	return directory
}
