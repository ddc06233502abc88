// Reads the list of identities to report on from a file.
//
// The file holds a JSON array of email strings. Files ending in .yaml or .yml
// are read as a YAML list instead.
package users

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// The file exists but does not hold a list of emails.
type FormatError struct {
	Path   string
	Reason string
	Err    error
}

func (err FormatError) Error() string {
	if err.Err != nil {
		return fmt.Sprintf("bad user file %s: %s: %v", err.Path, err.Reason, err.Err)
	}

	return fmt.Sprintf("bad user file %s: %s", err.Path, err.Reason)
}

func (err FormatError) Unwrap() error {
	return err.Err
}

func LoadFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read user file: %w", err)
	}

	var identities []string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &identities)
	default:
		err = json.Unmarshal(data, &identities)
	}
	if err != nil {
		return nil, FormatError{
			Path:   path,
			Reason: "expected a list of email strings",
			Err:    err,
		}
	}

	if identities == nil {
		return nil, FormatError{Path: path, Reason: "expected a list of email strings"}
	}

	for i, identity := range identities {
		identity = strings.TrimSpace(identity)
		if identity == "" {
			return nil, FormatError{
				Path:   path,
				Reason: fmt.Sprintf("entry %d is empty", i),
			}
		}
		identities[i] = identity
	}

	logger().Debug("loaded user file", "path", path, "count", len(identities))
	return identities, nil
}
