package history

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/matzehuels/giftring/pkg/errors"
)

// FileStore keeps draw history in a single JSON file.
// Writes go through a temp file and rename, so a crash mid-write never
// corrupts existing history.
type FileStore struct {
	path string
}

// NewFileStore creates a file-backed history store at path. The parent
// directory is created if it doesn't exist.
func NewFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "create history directory")
	}
	return &FileStore{path: path}, nil
}

// Append persists a completed draw.
func (s *FileStore) Append(ctx context.Context, rec Record) error {
	records, err := s.List(ctx)
	if err != nil {
		return err
	}
	records = append(records, rec)

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode history")
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write history")
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "replace history")
	}
	return nil
}

// List returns all records, oldest first. A missing file is an empty
// history, not an error.
func (s *FileStore) List(ctx context.Context) ([]Record, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read history")
	}

	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "decode history %s", s.path)
	}
	return records, nil
}
