// Package report implements the automation report boundary: a detached
// browser-automation process drops one JSON report file per project, and the
// API consumes it with at-most-once semantics.
package report

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

var (
	ErrInvalidProjectID = errors.New("invalid project id")

	// Project IDs become file names; restrict them so a crafted ID cannot
	// escape the reports directory.
	projectIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
)

// Store reads and removes report files from the shared drop directory.
// A missing file means the automation run is still pending; absence is
// never an error, so a stuck run reads the same as a slow one.
type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Path returns the report file path for a project.
func (s *Store) Path(projectID string) (string, error) {
	if !projectIDPattern.MatchString(projectID) {
		return "", fmt.Errorf("%w: %q", ErrInvalidProjectID, projectID)
	}
	return filepath.Join(s.dir, projectID+".json"), nil
}

// Consume returns the report contents for a project and deletes the file
// after the read, so a report is delivered at most once. The second return is
// false while no report exists yet.
func (s *Store) Consume(projectID string) ([]byte, bool, error) {
	path, err := s.Path(projectID)
	if err != nil {
		return nil, false, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read report: %w", err)
	}

	if err := os.Remove(path); err != nil {
		return nil, false, fmt.Errorf("remove report after read: %w", err)
	}
	return data, true, nil
}
