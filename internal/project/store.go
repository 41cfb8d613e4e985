// Package project persists input snapshots as versioned JSON documents.
// Snapshots are the source of truth; computed summaries are derived and
// never stored.
package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/millworks/cutlist/internal/model"
)

// Store loads and saves input snapshots keyed by item id.
type Store interface {
	// Load returns the saved snapshot for an item, or nil when nothing
	// usable is saved. A document with a version other than the current one
	// is treated as "no saved data" — it is never migrated implicitly.
	Load(itemID string) (*model.Snapshot, error)
	Save(itemID string, snap *model.Snapshot) error
}

// FileStore keeps one JSON document per item under a directory.
type FileStore struct {
	Dir string
}

// DefaultStoreDir returns the default snapshot directory, ~/.cutlist/items.
func DefaultStoreDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cutlist", "items"), nil
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{Dir: dir}
}

func (fs *FileStore) path(itemID string) string {
	return filepath.Join(fs.Dir, itemID+".json")
}

// Load reads an item's snapshot. Missing files and stale document versions
// both return (nil, nil) so the caller starts from defaults.
func (fs *FileStore) Load(itemID string) (*model.Snapshot, error) {
	data, err := os.ReadFile(fs.path(itemID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var snap model.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", itemID, err)
	}
	if snap.Version != model.SnapshotVersion {
		return nil, nil
	}
	return &snap, nil
}

// Save writes an item's snapshot, creating the directory if needed.
func (fs *FileStore) Save(itemID string, snap *model.Snapshot) error {
	if err := os.MkdirAll(fs.Dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(fs.path(itemID), data, 0644)
}
