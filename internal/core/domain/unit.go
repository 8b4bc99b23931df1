package domain

// Unit is an independently buildable component of the library.
// Units are discovered afresh on every invocation and are never persisted;
// their Name is the key under which fingerprints are cached.
type Unit struct {
	// Name is the unit's source subdirectory name. It is unique within a run.
	Name string
	// SourceDir is the absolute path of the unit's source directory.
	SourceDir string
	// EntryCandidates lists entry files in priority order. The first that exists wins.
	EntryCandidates []string
	// ArtifactDir is the directory the unit's build output is written to.
	ArtifactDir string
	// ModulePath is the stable import path other units use to reference this unit.
	ModulePath string
}

// Command describes an external program invocation.
type Command struct {
	Args []string
	Dir  string
	Env  map[string]string
}

// ModuleMap describes how imports that leave a unit are treated by the compiler.
type ModuleMap struct {
	// Framework lists runtime packages that are never inlined. Sub-paths of these
	// packages are external as well.
	Framework []string
	// Globals maps framework packages to the global variable exposing them in
	// the single-file bundle.
	Globals map[string]string
	// UnitsRoot is the absolute path of the directory containing all units.
	UnitsRoot string
	// Units maps every unit name to its module path.
	Units map[string]string
	// UnitPrefix is the import prefix under which units reference each other.
	UnitPrefix string
	// SharedFiles lists absolute paths of the shared modules.
	SharedFiles []string
	// SharedPrefix is the import prefix under which shared modules are referenced.
	SharedPrefix string
}

// UnitCompileRequest is the input of a single unit compilation.
type UnitCompileRequest struct {
	Unit    Unit
	Entry   string
	Modules ModuleMap
}

// UnitCompileResult describes the outputs of a unit compilation.
type UnitCompileResult struct {
	// Outputs are the absolute paths of the files written to the artifact directory.
	Outputs []string
	// Externals are the distinct external module paths the unit imports.
	Externals []string
}

// BundleFormat selects the module format of a library bundle.
type BundleFormat string

const (
	// FormatESM produces a tree-shakeable ES module.
	FormatESM BundleFormat = "esm"
	// FormatIIFE produces a single self-executing file exposing a global name.
	FormatIIFE BundleFormat = "iife"
)

// BundleRequest is the input of a library bundle.
type BundleRequest struct {
	// Barrel is the synthesized module re-exporting every unit.
	Barrel string
	// Outfile is where the bundle is written.
	Outfile string
	Format  BundleFormat
	// GlobalName is the variable an IIFE bundle assigns its exports to.
	GlobalName string
	// Artifacts maps unit module paths to the compiled artifact entry files.
	Artifacts map[string]string
	Modules   ModuleMap
}

// StyleOptions configures the CSS transform pipeline.
type StyleOptions struct {
	// Targets are engine targets such as "chrome90" or "safari14".
	Targets []string
	Minify  bool
}
