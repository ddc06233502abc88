package git_test

import (
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/sinclairtarget/git-contrib/internal/git"
)

func header(fields ...string) string {
	return "\x1e" + strings.Join(fields, "\x00")
}

func TestParseCommits(t *testing.T) {
	lines := []string{
		header(
			"bf4136de996e9fb1f38620350cb7185613d71193",
			"bf4136d",
			"6afef28a0d8e5f1e1f0c7f5b0e9b5c4f6d7a8b9c",
			"Sinclair Target",
			"sinclair@mail.com",
			"Bob",
			"bob@mail.com",
			"1735304504",
		),
		"9\t0\tfile-rename/foo.go",
		"2\t3\tREADME.md",
		"",
		header(
			"879e94bbbcbbec348ba1df332dd46e7314c62df1",
			"879e94b",
			"bf4136de996e9fb1f38620350cb7185613d71193 ad6d3789cf56b4a8ae3f8632d43fa65f2ec823a0",
			"Jim",
			"jim@mail.com",
			"Jim",
			"jim@mail.com",
			"1735304522",
		),
		header(
			"ad6d3789cf56b4a8ae3f8632d43fa65f2ec823a0",
			"ad6d378",
			"",
			"Jim",
			"jim@mail.com",
			"Jim",
			"jim@mail.com",
			"1735304546",
		),
		"-\t-\tlogo.png",
		"1\t1\tfile-rename/bim.go",
	}

	var commits []git.Commit
	for commit, err := range git.ParseCommits(slices.Values(lines)) {
		if err != nil {
			t.Fatalf("ParseCommits() returned error: %v", err)
		}
		commits = append(commits, commit)
	}

	expected := []git.Commit{
		{
			Hash:           "bf4136de996e9fb1f38620350cb7185613d71193",
			ShortHash:      "bf4136d",
			ParentCount:    1,
			AuthorName:     "Sinclair Target",
			AuthorEmail:    "sinclair@mail.com",
			CommitterName:  "Bob",
			CommitterEmail: "bob@mail.com",
			Date:           time.Unix(1735304504, 0),
			Stats: git.ChangeStats{
				Insertions:   11,
				Deletions:    3,
				FilesChanged: 2,
			},
		},
		{
			Hash:           "879e94bbbcbbec348ba1df332dd46e7314c62df1",
			ShortHash:      "879e94b",
			ParentCount:    2,
			AuthorName:     "Jim",
			AuthorEmail:    "jim@mail.com",
			CommitterName:  "Jim",
			CommitterEmail: "jim@mail.com",
			Date:           time.Unix(1735304522, 0),
		},
		{
			Hash:           "ad6d3789cf56b4a8ae3f8632d43fa65f2ec823a0",
			ShortHash:      "ad6d378",
			ParentCount:    0,
			AuthorName:     "Jim",
			AuthorEmail:    "jim@mail.com",
			CommitterName:  "Jim",
			CommitterEmail: "jim@mail.com",
			Date:           time.Unix(1735304546, 0),
			Stats: git.ChangeStats{
				Insertions:   1,
				Deletions:    1,
				FilesChanged: 2,
			},
		},
	}

	if diff := cmp.Diff(expected, commits); diff != "" {
		t.Errorf("parsed commits are wrong:\n%s", diff)
	}

	if !commits[1].IsMerge() {
		t.Errorf("expected commit %s to be a merge", commits[1].Name())
	}
}

func TestParseCommitsBadHeader(t *testing.T) {
	lines := []string{header("abc", "def")}

	for _, err := range git.ParseCommits(slices.Values(lines)) {
		if err == nil {
			t.Fatal("expected error parsing truncated header")
		}
		return
	}

	t.Fatal("ParseCommits() yielded nothing for a bad header")
}

func TestParseCommitsBadNumstat(t *testing.T) {
	lines := []string{
		header(
			"ad6d3789cf56b4a8ae3f8632d43fa65f2ec823a0",
			"ad6d378",
			"",
			"Jim",
			"jim@mail.com",
			"Jim",
			"jim@mail.com",
			"1735304546",
		),
		"x\t1\tfoo.go",
	}

	var gotErr error
	for _, err := range git.ParseCommits(slices.Values(lines)) {
		if err != nil {
			gotErr = err
		}
	}

	if gotErr == nil {
		t.Fatal("expected error parsing non-numeric line count")
	}
}
