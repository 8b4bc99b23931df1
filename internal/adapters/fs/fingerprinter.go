package fs

import (
	"cmp"
	"encoding/binary"
	"errors"
	"fmt"
	iofs "io/fs"
	"math/rand/v2"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Fingerprinter = (*Fingerprinter)(nil)

// Fingerprinter computes unit, shared-file and artifact signatures.
type Fingerprinter struct {
	walker *Walker
	hasher *Hasher
	logger ports.Logger
}

// NewFingerprinter creates a new Fingerprinter.
func NewFingerprinter(walker *Walker, hasher *Hasher, logger ports.Logger) *Fingerprinter {
	return &Fingerprinter{walker: walker, hasher: hasher, logger: logger}
}

type fileSignature struct {
	rel   string
	hash  uint64
	mtime int64
}

// UnitFingerprint scans the unit's source directory. Any scan error yields an
// unreadable source signature so the unit is rebuilt.
func (f *Fingerprinter) UnitFingerprint(unit domain.Unit, opts domain.ScanOptions) domain.UnitFingerprint {
	filter := Filter{
		Extensions:   opts.Extensions,
		ExcludeFiles: opts.ExcludeFiles,
		ExcludeDirs:  opts.ExcludeDirs,
	}

	sigs, err := f.scan(unit.SourceDir, filter, opts.Strategy)
	if err != nil {
		f.logger.Warn(fmt.Sprintf("unit %s: %v, forcing rebuild", unit.Name, err))
		return domain.UnitFingerprint{
			SourceSignature: unreadableSignature(),
			ArtifactPath:    unit.ArtifactDir,
		}
	}

	files := make(map[string]domain.Signature, len(sigs))
	for _, s := range sigs {
		files[s.rel] = fileSig(s, opts.Strategy)
	}

	return domain.UnitFingerprint{
		SourceSignature: aggregate(sigs, opts.Strategy),
		Files:           files,
		ArtifactPath:    unit.ArtifactDir,
	}
}

// SharedFingerprint computes a signature for every shared file. Missing files
// are recorded as absent.
func (f *Fingerprinter) SharedFingerprint(paths []string, strategy domain.SignatureStrategy) domain.SharedFingerprint {
	out := make(domain.SharedFingerprint, len(paths))
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			if errors.Is(err, iofs.ErrNotExist) {
				out[path] = domain.SignatureAbsent
				continue
			}
			f.logger.Warn(fmt.Sprintf("shared file %s: %v", path, err))
			out[path] = unreadableSignature()
			continue
		}

		s := fileSignature{rel: path, mtime: info.ModTime().UnixNano()}
		if strategy != domain.StrategyMtime {
			s.hash, err = f.hasher.ComputeFileHash(path, info)
			if err != nil {
				f.logger.Warn(fmt.Sprintf("shared file %s: %v", path, err))
				out[path] = unreadableSignature()
				continue
			}
		}
		out[path] = fileSig(s, strategy)
	}
	return out
}

// ArtifactSignature digests the files of an artifact directory. Declarations
// below the types directory are excluded since they are produced after the build.
func (f *Fingerprinter) ArtifactSignature(dir string) (domain.Signature, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrPathStatFailed.Error()), "path", dir)
	}
	if !info.IsDir() {
		return "", zerr.With(zerr.New("artifact path is not a directory"), "path", dir)
	}

	sigs, err := f.scan(dir, Filter{ExcludeDirs: []string{domain.TypesDirName}}, domain.StrategyContent)
	if err != nil {
		return "", err
	}
	return aggregate(sigs, domain.StrategyContent), nil
}

func (f *Fingerprinter) scan(root string, filter Filter, strategy domain.SignatureStrategy) ([]fileSignature, error) {
	var sigs []fileSignature
	for path, err := range f.walker.WalkFiles(root, filter) {
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrWalkFailed.Error()), "path", root)
		}

		info, err := os.Stat(path)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrPathStatFailed.Error()), "path", path)
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to resolve relative path"), "path", path)
		}

		s := fileSignature{rel: filepath.ToSlash(rel), mtime: info.ModTime().UnixNano()}
		if strategy != domain.StrategyMtime {
			s.hash, err = f.hasher.ComputeFileHash(path, info)
			if err != nil {
				return nil, err
			}
		}
		sigs = append(sigs, s)
	}

	slices.SortFunc(sigs, func(a, b fileSignature) int {
		return cmp.Compare(a.rel, b.rel)
	})
	return sigs, nil
}

func fileSig(s fileSignature, strategy domain.SignatureStrategy) domain.Signature {
	if strategy == domain.StrategyMtime {
		return domain.Signature(domain.MtimePrefix + strconv.FormatInt(s.mtime, 10))
	}
	return domain.Signature(fmt.Sprintf("%s%016x", domain.ContentPrefix, s.hash))
}

// aggregate folds per-file signatures into one. For mtime it is the newest
// timestamp; for content a digest over the sorted path and hash pairs.
func aggregate(sigs []fileSignature, strategy domain.SignatureStrategy) domain.Signature {
	if strategy == domain.StrategyMtime {
		var newest int64
		for _, s := range sigs {
			newest = max(newest, s.mtime)
		}
		return domain.Signature(domain.MtimePrefix + strconv.FormatInt(newest, 10))
	}

	digest := xxhash.New()
	var buf [8]byte
	for _, s := range sigs {
		_, _ = digest.WriteString(s.rel)
		_, _ = digest.Write([]byte{0})
		binary.LittleEndian.PutUint64(buf[:], s.hash)
		_, _ = digest.Write(buf[:])
	}
	return domain.Signature(fmt.Sprintf("%s%016x", domain.ContentPrefix, digest.Sum64()))
}

// unreadableSignature returns a sentinel that never equals a stored signature.
func unreadableSignature() domain.Signature {
	return domain.Signature(fmt.Sprintf("%s%d-%016x", domain.UnreadablePrefix, time.Now().UnixNano(), rand.Uint64())) //nolint:gosec // Uniqueness only
}
