package cache

import (
	"encoding/json"
	"os"
	"path/filepath"

	"gitlab.com/tozd/go/errors"

	"github.com/abdidvp/expectfix/internal/domain"
)

// Store is a file-based implementation of domain.CacheStore.
type Store struct{}

// New creates a new file-based cache store.
func New() *Store {
	return &Store{}
}

// Load reads the inspect cache from disk. Returns (nil, nil) if no cache exists.
func (s *Store) Load(projectPath string) (*domain.InspectCache, error) {
	data, err := os.ReadFile(cachePath(projectPath))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // no cache is not an error
		}
		return nil, errors.Errorf("reading cache: %w", err)
	}

	var cache domain.InspectCache
	if err := json.Unmarshal(data, &cache); err != nil {
		return nil, errors.Errorf("decoding cache: %w", err)
	}
	return &cache, nil
}

// Save writes the inspect cache to disk, creating directories as needed.
func (s *Store) Save(projectPath string, cache *domain.InspectCache) error {
	if err := os.MkdirAll(cacheDir(projectPath), 0755); err != nil {
		return errors.Errorf("creating cache dir: %w", err)
	}

	data, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return errors.Errorf("encoding cache: %w", err)
	}

	if err := os.WriteFile(cachePath(projectPath), data, 0644); err != nil {
		return errors.Errorf("writing cache: %w", err)
	}
	return nil
}

// Invalidate removes the cache file for the given project path.
func (s *Store) Invalidate(projectPath string) error {
	if err := os.Remove(cachePath(projectPath)); err != nil && !os.IsNotExist(err) {
		return errors.Errorf("removing cache: %w", err)
	}
	return nil
}

func cacheDir(projectPath string) string {
	return filepath.Join(projectPath, ".expectfix", "cache")
}

func cachePath(projectPath string) string {
	return filepath.Join(cacheDir(projectPath), "inspect.json")
}
