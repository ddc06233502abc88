package subcommands

import "fmt"

// The command line asked for something we cannot do. Reported with exit
// status 2.
type UsageError struct {
	Msg string
	Err error
}

func (err UsageError) Error() string {
	if err.Err != nil {
		return fmt.Sprintf("%s: %v", err.Msg, err.Err)
	}

	return err.Msg
}

func (err UsageError) Unwrap() error {
	return err.Err
}
