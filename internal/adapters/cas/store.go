// Package cas implements persistence of the build cache.
package cas

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.CacheStore = (*Store)(nil)

// Store implements ports.CacheStore using a single JSON file that is replaced atomically.
type Store struct {
	logger ports.Logger
	now    func() time.Time
}

// NewStore creates a new Store.
func NewStore(logger ports.Logger) *Store {
	return &Store{logger: logger, now: time.Now}
}

// WithClock replaces the clock used to stamp saved caches.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

// Load reads the cache at path. Every failure mode falls back to an empty cache
// so the next build is a full rebuild; the reason is logged.
func (s *Store) Load(path string) *domain.BuildCache {
	//nolint:gosec // Path comes from the project configuration
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn(fmt.Sprintf("build cache unreadable, starting fresh: %v", err))
		}
		return domain.NewBuildCache()
	}

	if len(data) == 0 {
		s.logger.Warn("build cache is empty, starting fresh")
		return domain.NewBuildCache()
	}

	var cache domain.BuildCache
	if err := json.Unmarshal(data, &cache); err != nil {
		s.logger.Warn(fmt.Sprintf("build cache is malformed, starting fresh: %v", err))
		return domain.NewBuildCache()
	}

	if cache.FormatVersion != domain.FormatVersion {
		s.logger.Warn(fmt.Sprintf(
			"build cache format %d does not match %d, starting fresh",
			cache.FormatVersion, domain.FormatVersion,
		))
		return domain.NewBuildCache()
	}

	if cache.Units == nil {
		cache.Units = make(map[string]domain.UnitFingerprint)
	}
	if cache.Shared == nil {
		cache.Shared = make(domain.SharedFingerprint)
	}
	return &cache
}

// Save stamps the cache with the current time and writes it to a temporary file
// in the target directory before renaming it over path. A crash mid-write leaves
// the previous file intact.
func (s *Store) Save(path string, cache *domain.BuildCache) error {
	path = filepath.Clean(path)
	cache.FormatVersion = domain.FormatVersion
	cache.Timestamp = s.now().UTC()

	data, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrCacheMarshalFailed.Error())
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()), "path", dir)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()), "path", dir)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()), "path", tmpName)
	}
	if err := tmp.Sync(); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()), "path", tmpName)
	}
	if err := tmp.Close(); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()), "path", tmpName)
	}
	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()), "path", tmpName)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()), "path", path)
	}
	committed = true
	return nil
}
