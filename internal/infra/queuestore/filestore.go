package queuestore

import (
	"encoding/json"
	"os"
	"path/filepath"

	"cargo-backoffice/internal/pkg/errs"
	"cargo-backoffice/internal/usecase/scanqueue"
)

// FileStore persists the offline scan queue as a JSON file owned by this
// process. Writes go through a temp file and rename so a crash mid-write
// never corrupts the queue.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the persisted queue. A missing file is an empty queue, not
// an error: first run and post-clear both look like this.
func (s *FileStore) Load() ([]scanqueue.Event, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errs.Wrap(err, "failed to read scan queue file")
	}
	if len(data) == 0 {
		return nil, nil
	}

	var events []scanqueue.Event
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, errs.Wrap(err, "failed to decode scan queue file")
	}
	return events, nil
}

func (s *FileStore) Save(events []scanqueue.Event) error {
	data, err := json.MarshalIndent(events, "", "  ")
	if err != nil {
		return errs.Wrap(err, "failed to encode scan queue")
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".scan-queue-*.json")
	if err != nil {
		return errs.Wrap(err, "failed to create scan queue temp file")
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errs.Wrap(err, "failed to write scan queue temp file")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errs.Wrap(err, "failed to close scan queue temp file")
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return errs.Wrap(err, "failed to replace scan queue file")
	}
	return nil
}
