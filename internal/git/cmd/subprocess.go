package cmd

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"iter"
	"os"
	"os/exec"
	"strings"
)

// Longest line we accept from git. Numstat lines carry a path, so this
// only needs to cover very long file names.
const maxLineBytes = 1024 * 1024

// A git invocation that exited non-zero.
type SubprocessErr struct {
	Subcommand string
	ExitCode   int
	Stderr     string
	Err        error
}

func (err SubprocessErr) Error() string {
	if err.Stderr != "" {
		return fmt.Sprintf(
			"git %s exited with code %d: %s",
			err.Subcommand,
			err.ExitCode,
			err.Stderr,
		)
	}

	return fmt.Sprintf("git %s exited with code %d", err.Subcommand, err.ExitCode)
}

func (err SubprocessErr) Unwrap() error {
	return err.Err
}

type Subprocess struct {
	subcommand string
	cmd        *exec.Cmd
	stdout     io.ReadCloser
	stderr     *bytes.Buffer
}

func (s *Subprocess) StdoutText() (string, error) {
	b, err := io.ReadAll(s.stdout)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(string(b)), nil
}

// Single-use iterator over stdout, line by line. The returned function
// reports any read error once iteration is over.
func (s *Subprocess) StdoutLines() (iter.Seq[string], func() error) {
	var scanErr error

	seq := func(yield func(string) bool) {
		scanner := bufio.NewScanner(s.stdout)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

		for scanner.Scan() {
			if !yield(scanner.Text()) {
				return
			}
		}

		scanErr = scanner.Err()
	}

	finish := func() error {
		if scanErr != nil {
			return fmt.Errorf(
				"error reading output of git %s: %w",
				s.subcommand,
				scanErr,
			)
		}

		return nil
	}

	return seq, finish
}

// Discards unread stdout so git can exit, then waits for it.
func (s *Subprocess) Wait() error {
	_, err := io.Copy(io.Discard, s.stdout)
	if err != nil {
		return fmt.Errorf("could not drain stdout: %w", err)
	}

	err = s.cmd.Wait()
	exitCode := s.cmd.ProcessState.ExitCode()
	logger().Debug("git exited", "subcommand", s.subcommand, "code", exitCode)

	if err != nil {
		return SubprocessErr{
			Subcommand: s.subcommand,
			ExitCode:   exitCode,
			Stderr:     strings.TrimSpace(s.stderr.String()),
			Err:        err,
		}
	}

	return nil
}

// Starts git with the given args against the repository in dir. Stderr is
// buffered in memory; stdout must be consumed by the caller.
func run(ctx context.Context, dir string, args []string) (*Subprocess, error) {
	fullArgs := append([]string{"-C", dir}, args...)
	cmd := exec.CommandContext(ctx, "git", fullArgs...)

	// Keep output parseable regardless of the user's locale and pager
	cmd.Env = append(os.Environ(), "LC_ALL=C", "GIT_PAGER=cat")

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to open stdout pipe: %w", err)
	}

	logger().Debug("starting git", "dir", dir, "args", args)

	err = cmd.Start()
	if err != nil {
		return nil, fmt.Errorf("failed to start git: %w", err)
	}

	subcommand := "unknown"
	if len(args) > 0 {
		subcommand = args[0]
	}

	return &Subprocess{
		subcommand: subcommand,
		cmd:        cmd,
		stdout:     stdout,
		stderr:     &stderr,
	}, nil
}
