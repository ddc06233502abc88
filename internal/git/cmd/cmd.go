/*
* Handles invoking Git as a subprocess.
 */
package cmd

import (
	"context"
	"fmt"
	"slices"
	"strings"
)

// Separates commit headers from --numstat lines.
const RecordSeparator = "\x1e"

// Fields of a commit header, split on NUL: hash, short hash, parent hashes,
// author name, author email, committer name, committer email, committer time.
const logFormat = "--pretty=format:%x1e%H%x00%h%x00%P%x00%an%x00%ae%x00%cn%x00%ce%x00%ct"

// Runs git log over the history of HEAD with per-file line counts.
func RunLog(
	ctx context.Context,
	dir string,
	filters LogFilters,
) (*Subprocess, error) {
	baseArgs := []string{
		"log",
		logFormat,
		"--numstat",
		"--no-renames",
		"--no-show-signature",
		"--no-mailmap",
		"--no-color",
	}

	args := slices.Concat(baseArgs, filters.ToArgs(), []string{"HEAD", "--"})

	subprocess, err := run(ctx, dir, args)
	if err != nil {
		return nil, fmt.Errorf("failed to run git log: %w", err)
	}

	return subprocess, nil
}

// Runs git rev-parse and returns its trimmed output.
func RevParse(ctx context.Context, dir string, args ...string) (
	_ string,
	err error,
) {
	defer func() {
		if err != nil {
			err = fmt.Errorf(
				"git rev-parse %s failed: %w",
				strings.Join(args, " "),
				err,
			)
		}
	}()

	subprocess, err := run(ctx, dir, slices.Concat([]string{"rev-parse"}, args))
	if err != nil {
		return "", err
	}

	out, err := subprocess.StdoutText()
	if err != nil {
		return "", err
	}

	err = subprocess.Wait()
	if err != nil {
		return "", err
	}

	return out, nil
}
