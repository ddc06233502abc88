package git_test

import (
	"context"
	"errors"
	"os/exec"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/sinclairtarget/git-contrib/internal/git"
	"github.com/sinclairtarget/git-contrib/internal/repotest"
)

func requireGit(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git executable not available")
	}
}

func TestCLIMatchesNative(t *testing.T) {
	requireGit(t)
	r, _ := buildHistory(t)

	read := func(backend git.Backend) []git.Commit {
		src, err := git.Open(r.Path, backend)
		if err != nil {
			t.Fatalf("Open(%s) returned error: %v", backend, err)
		}

		commits, err := git.Collect(context.Background(), src, git.LogFilters{})
		if err != nil {
			t.Fatalf("Collect(%s) returned error: %v", backend, err)
		}
		return commits
	}

	native := read(git.NativeBackend)
	cli := read(git.CLIBackend)

	sortByHash := cmpopts.SortSlices(func(a, b git.Commit) bool {
		return a.Hash < b.Hash
	})
	// Abbreviation length depends on git config
	ignoreShort := cmpopts.IgnoreFields(git.Commit{}, "ShortHash")

	if diff := cmp.Diff(native, cli, sortByHash, ignoreShort); diff != "" {
		t.Errorf("cli backend disagrees with native backend:\n%s", diff)
	}
}

func TestCLIOpenBare(t *testing.T) {
	requireGit(t)

	_, err := git.Open(repotest.NewBare(t), git.CLIBackend)

	var stateErr git.RepositoryStateError
	if !errors.As(err, &stateErr) {
		t.Fatalf("expected RepositoryStateError but got %v", err)
	}
}

func TestParseBackend(t *testing.T) {
	backend, err := git.ParseBackend("CLI")
	if err != nil || backend != git.CLIBackend {
		t.Errorf("expected cli backend, got %v (err: %v)", backend, err)
	}

	backend, err = git.ParseBackend("")
	if err != nil || backend != git.NativeBackend {
		t.Errorf("expected native backend, got %v (err: %v)", backend, err)
	}

	_, err = git.ParseBackend("libgit2")
	if err == nil {
		t.Error("expected error for unknown backend")
	}
}

// git log only sees whole seconds, so a bound half a second after a commit
// must still exclude it.
func TestCLISubSecondBound(t *testing.T) {
	requireGit(t)

	r := repotest.New(t)
	r.SetTime(time.Date(2013, 1, 1, 12, 0, 0, 0, time.UTC))
	r.Commit(repotest.Alice, repotest.Alice, map[string]string{"a.txt": "1\n"})
	later := r.Commit(repotest.Bob, repotest.Bob, map[string]string{"a.txt": "2\n"})

	src, err := git.Open(r.Path, git.CLIBackend)
	if err != nil {
		t.Fatalf("Open() returned error: %v", err)
	}

	filters := git.LogFilters{
		After: time.Date(2013, 1, 1, 12, 0, 0, 500_000_000, time.UTC),
	}
	commits, err := git.Collect(context.Background(), src, filters)
	if err != nil {
		t.Fatalf("Collect() returned error: %v", err)
	}

	if len(commits) != 1 || commits[0].Hash != later.String() {
		t.Errorf("expected only the later commit but got %v", commits)
	}
}

func TestCLIMissingGitBinary(t *testing.T) {
	r, _ := buildHistory(t)
	t.Setenv("PATH", t.TempDir())

	_, err := git.Open(r.Path, git.CLIBackend)
	if err == nil {
		t.Fatal("expected Open() to fail without a git executable")
	}

	var notFound git.RepositoryNotFoundError
	if errors.As(err, &notFound) {
		t.Errorf("missing git executable reported as missing repository: %v", err)
	}

	if !errors.Is(err, exec.ErrNotFound) {
		t.Errorf("expected exec.ErrNotFound but got %v", err)
	}
}
