package persist

import (
	"context"
	"os"
	"path/filepath"
	"sync"
)

// FileStore persists a profile's blob as a JSON file under a data
// directory, one file per profile.
type FileStore struct {
	mu   sync.Mutex
	path string
}

func NewFileStore(dataDir, profileID string) (*FileStore, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}
	return &FileStore{path: filepath.Join(dataDir, profileID+".json")}, nil
}

func (f *FileStore) Load(ctx context.Context) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	b, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return b, nil
}

func (f *FileStore) Save(ctx context.Context, blob []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	// write-then-rename so a crash mid-save can't corrupt the file
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, blob, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}
