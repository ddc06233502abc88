// Helpers for building throwaway repositories in tests.
package repotest

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	gitlib "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

type Person struct {
	Name  string
	Email string
}

var (
	Alice = Person{Name: "Alice", Email: "alice@example.com"}
	Bob   = Person{Name: "Bob", Email: "bob@example.com"}
	Carol = Person{Name: "Carol", Email: "carol@example.com"}
)

type Repo struct {
	Path string
	repo *gitlib.Repository
	wt   *gitlib.Worktree
	t    *testing.T
	now  time.Time
}

// Initializes an empty non-bare repository in a temp dir.
func New(t *testing.T) *Repo {
	t.Helper()

	dir := t.TempDir()
	repo, err := gitlib.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("could not init repository: %v", err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		t.Fatalf("could not get worktree: %v", err)
	}

	return &Repo{
		Path: dir,
		repo: repo,
		wt:   wt,
		t:    t,
		now:  time.Date(2013, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

// Initializes an empty bare repository in a temp dir and returns its path.
func NewBare(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	_, err := gitlib.PlainInit(dir, true)
	if err != nil {
		t.Fatalf("could not init bare repository: %v", err)
	}

	return dir
}

// Moves the clock used for the next commit.
func (r *Repo) SetTime(when time.Time) {
	r.now = when
}

// Writes the files and commits them. Each commit happens one day after the
// previous one.
func (r *Repo) Commit(
	author Person,
	committer Person,
	files map[string]string,
) plumbing.Hash {
	r.t.Helper()
	return r.commit(author, committer, files, nil)
}

// Creates a merge commit with the given parents. No files change.
func (r *Repo) Merge(committer Person, parents ...plumbing.Hash) plumbing.Hash {
	r.t.Helper()
	return r.commit(committer, committer, nil, parents)
}

func (r *Repo) commit(
	author Person,
	committer Person,
	files map[string]string,
	parents []plumbing.Hash,
) plumbing.Hash {
	r.t.Helper()

	for name, content := range files {
		path := filepath.Join(r.Path, name)
		err := os.MkdirAll(filepath.Dir(path), 0o755)
		if err != nil {
			r.t.Fatalf("could not create dir for %s: %v", name, err)
		}

		err = os.WriteFile(path, []byte(content), 0o644)
		if err != nil {
			r.t.Fatalf("could not write %s: %v", name, err)
		}

		_, err = r.wt.Add(name)
		if err != nil {
			r.t.Fatalf("could not stage %s: %v", name, err)
		}
	}

	when := r.now
	r.now = r.now.Add(24 * time.Hour)

	hash, err := r.wt.Commit("commit", &gitlib.CommitOptions{
		Author:            &object.Signature{Name: author.Name, Email: author.Email, When: when},
		Committer:         &object.Signature{Name: committer.Name, Email: committer.Email, When: when},
		Parents:           parents,
		AllowEmptyCommits: len(files) == 0,
	})
	if err != nil {
		r.t.Fatalf("could not commit: %v", err)
	}

	return hash
}
