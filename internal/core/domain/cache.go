package domain

import "time"

// FormatVersion is the on-disk cache layout version. A cache written with a
// different version is discarded on load.
const FormatVersion = 1

// UnitFingerprint records the state of a unit at its last successful build.
type UnitFingerprint struct {
	// SourceSignature is the aggregate signature compared between runs.
	SourceSignature Signature `json:"sourceSignature"`
	// Files maps relative source paths to their signatures. Diagnostic only.
	Files map[string]Signature `json:"files,omitempty"`
	// ArtifactPath is the artifact directory the unit was built into.
	ArtifactPath string `json:"artifactPath,omitempty"`
	// ArtifactSignature is the digest of the artifact directory after the build.
	ArtifactSignature Signature `json:"artifactSignature,omitempty"`
}

// SharedFingerprint maps shared file paths to their signatures.
type SharedFingerprint map[string]Signature

// Equal reports whether both fingerprints hold the same paths with the same signatures.
func (s SharedFingerprint) Equal(other SharedFingerprint) bool {
	if len(s) != len(other) {
		return false
	}
	for path, sig := range s {
		o, ok := other[path]
		if !ok || o != sig {
			return false
		}
	}
	return true
}

// BuildCache is the persisted state of the last fully successful build.
type BuildCache struct {
	FormatVersion int                        `json:"formatVersion"`
	Timestamp     time.Time                  `json:"timestamp"`
	Units         map[string]UnitFingerprint `json:"units"`
	Shared        SharedFingerprint          `json:"shared"`
}

// NewBuildCache returns an empty cache with the current format version.
func NewBuildCache() *BuildCache {
	return &BuildCache{
		FormatVersion: FormatVersion,
		Units:         make(map[string]UnitFingerprint),
		Shared:        make(SharedFingerprint),
	}
}

// IsEmpty reports whether the cache has never recorded a successful build.
func (c *BuildCache) IsEmpty() bool {
	return c.Timestamp.IsZero() && len(c.Units) == 0
}
