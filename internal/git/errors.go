package git

import "fmt"

// The path does not exist or does not hold a repository.
type RepositoryNotFoundError struct {
	Path string
	Err  error
}

func (err RepositoryNotFoundError) Error() string {
	if err.Err != nil {
		return fmt.Sprintf("no repository found at %s: %v", err.Path, err.Err)
	}

	return fmt.Sprintf("no repository found at %s", err.Path)
}

func (err RepositoryNotFoundError) Unwrap() error {
	return err.Err
}

// The repository exists but we cannot walk its history (bare, no HEAD).
type RepositoryStateError struct {
	Path   string
	Reason string
	Err    error
}

func (err RepositoryStateError) Error() string {
	if err.Err != nil {
		return fmt.Sprintf(
			"repository at %s is unusable: %s: %v",
			err.Path,
			err.Reason,
			err.Err,
		)
	}

	return fmt.Sprintf("repository at %s is unusable: %s", err.Path, err.Reason)
}

func (err RepositoryStateError) Unwrap() error {
	return err.Err
}
