package domain

import "time"

// Config is the resolved project configuration. All paths are absolute.
type Config struct {
	// Root is the project root every relative path is resolved against.
	Root string
	// UnitsDir is the directory whose subdirectories are units.
	UnitsDir string
	// ExcludeUnits lists subdirectory names that are never treated as units.
	ExcludeUnits []string
	// EntryCandidates are entry file templates relative to a unit directory.
	// "{name}" is replaced with the unit name.
	EntryCandidates []string
	// SharedFiles are the shared modules; a change to any of them rebuilds every unit.
	SharedFiles []string
	Scan        ScanOptions

	ArtifactsDir string
	CacheFile    string
	DistDir      string

	Framework    FrameworkConfig
	UnitPrefix   string
	SharedPrefix string

	Bundle       BundleConfig
	Styles       StylesConfig
	Declarations DeclarationsConfig

	// Parallelism bounds concurrent unit builds.
	Parallelism int
	// UnitTimeout bounds a single unit build. Zero disables the limit.
	UnitTimeout time.Duration
	// CIFullRebuild forces a full rebuild when a CI environment is detected.
	CIFullRebuild bool
}

// FrameworkConfig lists the runtime packages kept external to every artifact.
type FrameworkConfig struct {
	Externals []string
	// Globals maps framework packages to global variable names for the IIFE bundle.
	Globals map[string]string
}

// BundleConfig names the bundle outputs inside the dist directory.
type BundleConfig struct {
	ESM        string
	IIFE       string
	GlobalName string
}

// StylesConfig configures the stylesheet aggregator.
type StylesConfig struct {
	// Primary is the main stylesheet name inside the dist directory.
	Primary string
	// Compat is a duplicate kept for consumers importing the legacy name.
	Compat string
	// Global is an optional stylesheet appended after the unit styles.
	Global  string
	Targets []string
	Minify  bool
}

// DeclarationsConfig holds the argv templates used to emit type declarations.
// "{entry}", "{outDir}", "{unit}" and "{root}" are substituted before execution.
// An empty template disables that step.
type DeclarationsConfig struct {
	Unit    []string
	Project []string
}

// ModuleMap derives the compiler module map for the given units.
func (c *Config) ModuleMap(units []Unit) ModuleMap {
	names := make(map[string]string, len(units))
	for _, u := range units {
		names[u.Name] = u.ModulePath
	}
	return ModuleMap{
		Framework:    c.Framework.Externals,
		Globals:      c.Framework.Globals,
		UnitsRoot:    c.UnitsDir,
		Units:        names,
		UnitPrefix:   c.UnitPrefix,
		SharedFiles:  c.SharedFiles,
		SharedPrefix: c.SharedPrefix,
	}
}
