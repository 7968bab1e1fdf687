package migration

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// MappingStore persists the append-only URL mapping sequence as a JSON array.
// Entries are held in memory and written wholesale on Flush; the write is an
// atomic replace (temp file + rename) so an interrupted run never leaves a
// half-written mapping behind.
type MappingStore struct {
	path    string
	entries []URLMapping
}

// OpenMappingStore loads the mapping at path.  An absent file opens an empty
// store.
func OpenMappingStore(path string) (*MappingStore, error) {
	store := &MappingStore{
		path:    path,
		entries: []URLMapping{},
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return store, nil
	}
	if err != nil {
		return nil, fmt.Errorf("migration: couldn't read URL mapping %s: %w", path, err)
	}

	if err := json.Unmarshal(data, &store.entries); err != nil {
		return nil, fmt.Errorf("migration: couldn't parse URL mapping %s: %w", path, err)
	}

	return store, nil
}

// Entries returns the mappings in file order.  The slice is shared; callers
// only iterate it.
func (s *MappingStore) Entries() []URLMapping {
	return s.entries
}

func (s *MappingStore) Len() int {
	return len(s.entries)
}

// Append records one migrated URL.  Nothing is written until Flush.
func (s *MappingStore) Append(originalURL, newURL string) {
	s.entries = append(s.entries, URLMapping{OriginalURL: originalURL, NewURL: newURL})
}

// Flush writes the whole sequence back to disk atomically.
func (s *MappingStore) Flush() error {
	data, err := json.MarshalIndent(s.entries, "", "    ")
	if err != nil {
		return fmt.Errorf("migration: couldn't marshal URL mapping: %w", err)
	}

	if err := writeFileAtomic(s.path, data); err != nil {
		return fmt.Errorf("migration: couldn't write URL mapping %s: %w", s.path, err)
	}

	return nil
}

// writeFileAtomic writes data next to path and renames it into place.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("migration: couldn't create temp file in %s: %w", dir, err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("migration: couldn't write temp file %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("migration: couldn't close temp file %s: %w", tmp.Name(), err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("migration: couldn't chmod temp file %s: %w", tmp.Name(), err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("migration: couldn't replace %s: %w", path, err)
	}

	return nil
}
