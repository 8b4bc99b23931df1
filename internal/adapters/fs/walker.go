// Package fs provides file system adapters for discovering units and fingerprinting files.
package fs

import (
	"io/fs"
	"iter"
	"path/filepath"
	"slices"
	"strings"
)

// alwaysSkippedDirs are never descended into, regardless of the filter.
var alwaysSkippedDirs = map[string]bool{
	".git": true,
	".jj":  true,
}

// Filter selects the files a walk yields.
type Filter struct {
	// Extensions restricts yielded files to these extensions. Empty yields every file.
	Extensions []string
	// ExcludeFiles are glob patterns matched against file base names.
	ExcludeFiles []string
	// ExcludeDirs are directory names that are skipped entirely.
	ExcludeDirs []string
}

// Walker provides file walking functionality.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// WalkFiles yields every file below root accepted by the filter, paired with the
// first error encountered. Iteration stops after an error is yielded.
// Paths are yielded in lexical order and include the root prefix.
func (w *Walker) WalkFiles(root string, filter Filter) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if d.IsDir() {
				if path != root && w.skipDir(d.Name(), filter) {
					return filepath.SkipDir
				}
				return nil
			}

			if !filter.accepts(d.Name()) {
				return nil
			}

			if !yield(path, nil) {
				return filepath.SkipAll
			}
			return nil
		})
		if err != nil {
			yield("", err)
		}
	}
}

func (w *Walker) skipDir(name string, filter Filter) bool {
	if alwaysSkippedDirs[name] {
		return true
	}
	return slices.Contains(filter.ExcludeDirs, name)
}

// accepts reports whether a file with the given base name passes the filter.
func (f Filter) accepts(name string) bool {
	for _, pattern := range f.ExcludeFiles {
		if matched, _ := filepath.Match(pattern, name); matched {
			return false
		}
	}

	if len(f.Extensions) == 0 {
		return true
	}

	ext := strings.ToLower(filepath.Ext(name))
	return slices.Contains(f.Extensions, ext)
}
