package ports

import "go.trai.ch/kiln/internal/core/domain"

// CacheStore defines the interface for persisting the build cache.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type CacheStore interface {
	// Load returns the cache stored at path. A missing, unreadable or
	// incompatible file yields a fresh empty cache, never an error.
	Load(path string) *domain.BuildCache

	// Save stamps the cache and atomically replaces the file at path.
	Save(path string, cache *domain.BuildCache) error
}
