package domain

import "path/filepath"

const (
	// KilnDirName is the name of the internal workspace directory.
	KilnDirName = ".kiln"

	// UnitsDirName is the name of the directory holding per-unit artifacts.
	UnitsDirName = "units"

	// CacheFileName is the name of the persisted build cache.
	CacheFileName = "cache.json"

	// ConfigFileName is the name of the project configuration file.
	ConfigFileName = "kiln.yaml"

	// EnvFileName is the name of the optional dotenv file next to the configuration.
	EnvFileName = ".env"

	// DistDirName is the default name of the distributable output directory.
	DistDirName = "dist"

	// TypesDirName is the name of the declarations directory, both inside a unit
	// artifact directory and inside the dist directory.
	TypesDirName = "types"

	// UnitEntryName is the base name of a compiled unit artifact.
	UnitEntryName = "index"

	// MetaFileName is the name of the per-unit artifact metadata file.
	MetaFileName = "meta.json"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600
)

// DefaultCachePath returns the default path of the build cache.
// It joins .kiln and cache.json.
func DefaultCachePath() string {
	return filepath.Join(KilnDirName, CacheFileName)
}

// DefaultArtifactsPath returns the default root for per-unit artifact directories.
// It joins .kiln and units.
func DefaultArtifactsPath() string {
	return filepath.Join(KilnDirName, UnitsDirName)
}
