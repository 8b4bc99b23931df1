package fs

import (
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/zerr"
)

// DefaultHashCacheSize bounds the number of memoised file hashes.
const DefaultHashCacheSize = 4096

// fileKey identifies a file version. A file whose size or modification time
// changed is rehashed.
type fileKey struct {
	path  string
	size  int64
	mtime int64
}

// Hasher computes XXHash digests of file contents and memoises them.
type Hasher struct {
	memo *lru.Cache[fileKey, uint64]
}

// NewHasher creates a new Hasher holding at most size memoised hashes.
func NewHasher(size int) (*Hasher, error) {
	if size <= 0 {
		size = DefaultHashCacheSize
	}
	memo, err := lru.New[fileKey, uint64](size)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to create hash cache")
	}
	return &Hasher{memo: memo}, nil
}

// ComputeFileHash computes the XXHash of a file's content.
func (h *Hasher) ComputeFileHash(path string, info os.FileInfo) (uint64, error) {
	key := fileKey{path: path, size: info.Size(), mtime: info.ModTime().UnixNano()}
	if sum, ok := h.memo.Get(key); ok {
		return sum, nil
	}

	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, domain.ErrFileOpenFailed.Error()), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	digest := xxhash.New()
	if _, err := io.Copy(digest, f); err != nil {
		return 0, zerr.With(zerr.Wrap(err, domain.ErrFileHashFailed.Error()), "path", path)
	}

	sum := digest.Sum64()
	h.memo.Add(key, sum)
	return sum, nil
}

// Len returns the number of memoised hashes.
func (h *Hasher) Len() int {
	return h.memo.Len()
}
