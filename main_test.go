package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/sinclairtarget/git-contrib/internal/config"
	"github.com/sinclairtarget/git-contrib/internal/repotest"
	"github.com/sinclairtarget/git-contrib/internal/subcommands"
)

func buildRepo(t *testing.T) string {
	r := repotest.New(t)

	c1 := r.Commit(repotest.Alice, repotest.Alice, map[string]string{
		"a.txt": "1\n2\n3\n",
	})
	c2 := r.Commit(repotest.Bob, repotest.Carol, map[string]string{
		"a.txt": "1\n2\n3\n4\n",
		"b.txt": "x\n",
	})
	r.Merge(repotest.Alice, c2, c1)
	r.Commit(repotest.Alice, repotest.Bob, map[string]string{
		"a.txt": "1\n2\nthree\n4\n",
	})

	return r.Path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cfg := config.Default()
	cfg.NoCache = true

	var stdout bytes.Buffer
	cmd := newRootCmd(cfg, &stdout)
	cmd.SetArgs(args)
	cmd.SetErr(&bytes.Buffer{})

	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), err
}

func onlyFile(t *testing.T, dir string, pattern string) string {
	t.Helper()

	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil || len(matches) != 1 {
		t.Fatalf("expected one %s in %s but got %v", pattern, dir, matches)
	}
	return matches[0]
}

func TestReportWithDateAlias(t *testing.T) {
	repoPath := buildRepo(t)
	outDir := t.TempDir()

	_, err := run(
		t,
		"--after", "2013-01-02T18:00:00Z",
		"-o", outDir,
		repoPath,
	)
	if err != nil {
		t.Fatalf("command returned error: %v", err)
	}

	f, err := os.Open(onlyFile(t, outDir, "contrib-report-*.csv"))
	if err != nil {
		t.Fatalf("could not open report: %v", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("could not parse report: %v", err)
	}

	expected := [][]string{
		{"Email", "Commits", "Insertions", "Deletions", "Average Files Changed"},
		{"alice@example.com", "1", "1", "1", "1.00"},
		{"bob@example.com", "0", "0", "0", "0.00"},
		{"TOTAL", "1", "1", "1", "1.00"},
	}
	if diff := cmp.Diff(expected, records); diff != "" {
		t.Errorf("report is wrong:\n%s", diff)
	}
}

func TestReportUntilDateOnly(t *testing.T) {
	r := repotest.New(t)
	r.SetTime(time.Date(2013, 1, 5, 12, 0, 0, 0, time.Local))
	r.Commit(repotest.Alice, repotest.Alice, map[string]string{"a.txt": "1\n"})
	r.Commit(repotest.Bob, repotest.Bob, map[string]string{"a.txt": "2\n"})

	outDir := t.TempDir()
	_, err := run(t, "--before", "2013-01-05", "-o", outDir, r.Path)
	if err != nil {
		t.Fatalf("command returned error: %v", err)
	}

	f, err := os.Open(onlyFile(t, outDir, "contrib-report-*.csv"))
	if err != nil {
		t.Fatalf("could not open report: %v", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("could not parse report: %v", err)
	}

	expected := [][]string{
		{"Email", "Commits", "Insertions", "Deletions", "Average Files Changed"},
		{"alice@example.com", "1", "1", "0", "1.00"},
		{"TOTAL", "1", "1", "0", "1.00"},
	}
	if diff := cmp.Diff(expected, records); diff != "" {
		t.Errorf("report is wrong:\n%s", diff)
	}
}

func TestBuildUserDirectory(t *testing.T) {
	repoPath := buildRepo(t)
	outDir := t.TempDir()

	_, err := run(t, "--build-user-directory", "-o", outDir, repoPath)
	if err != nil {
		t.Fatalf("command returned error: %v", err)
	}

	onlyFile(t, outDir, "contrib-users-*.json")

	csvFiles, _ := filepath.Glob(filepath.Join(outDir, "*.csv"))
	if len(csvFiles) != 0 {
		t.Errorf("expected no report in directory mode but got %v", csvFiles)
	}
}

func TestUsageErrors(t *testing.T) {
	repoPath := buildRepo(t)

	userFile := filepath.Join(t.TempDir(), "users.json")
	err := os.WriteFile(userFile, []byte(`["alice@example.com"]`), 0o644)
	if err != nil {
		t.Fatalf("could not write user file: %v", err)
	}

	badUserFile := filepath.Join(t.TempDir(), "users.json")
	err = os.WriteFile(badUserFile, []byte(`{"alice": 1}`), 0o644)
	if err != nil {
		t.Fatalf("could not write user file: %v", err)
	}

	tests := []struct {
		name string
		args []string
	}{
		{"no_repo", []string{}},
		{"user_and_user_file", []string{
			"--user", "bob@example.com",
			"--user-file", userFile,
			repoPath,
		}},
		{"bad_user_file", []string{"--user-file", badUserFile, repoPath}},
		{"missing_user_file", []string{"--user-file", userFile + ".nope", repoPath}},
		{"bad_date", []string{"--since", "last tuesday", repoPath}},
		{"bad_format", []string{"--format", "pdf", repoPath}},
		{"bad_backend", []string{"--backend", "svn", repoPath}},
		{"unknown_flag", []string{"--frobnicate", repoPath}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			outDir := t.TempDir()
			args := append([]string{"-o", outDir}, test.args...)

			_, err := run(t, args...)

			var usageErr subcommands.UsageError
			if !errors.As(err, &usageErr) {
				t.Fatalf("expected UsageError but got %v", err)
			}

			if exitStatus(err) != exitUsage {
				t.Errorf("expected exit status %d", exitUsage)
			}

			entries, _ := os.ReadDir(outDir)
			if len(entries) != 0 {
				t.Errorf("expected no files written but found %d", len(entries))
			}
		})
	}
}

func TestExitStatus(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", subcommands.UsageError{Msg: "inner"})
	if exitStatus(wrapped) != exitUsage {
		t.Errorf("expected wrapped usage error to exit with %d", exitUsage)
	}

	if exitStatus(errors.New("boom")) != exitFailure {
		t.Errorf("expected plain error to exit with %d", exitFailure)
	}
}

func TestMissingRepoIsNotUsageError(t *testing.T) {
	_, err := run(t, "-o", t.TempDir(), filepath.Join(t.TempDir(), "missing"))
	if err == nil {
		t.Fatal("expected error for missing repository")
	}

	if exitStatus(err) != exitFailure {
		t.Errorf("expected exit status %d but got %d", exitFailure, exitStatus(err))
	}
}

func TestCommitsSubcommand(t *testing.T) {
	repoPath := buildRepo(t)

	stdout, err := run(t, "commits", "--backend", "native", repoPath)
	if err != nil {
		t.Fatalf("command returned error: %v", err)
	}

	if stdout == "" {
		t.Error("expected commits to be printed")
	}
}
