package config

// Kilnfile represents the structure of the kiln.yaml configuration file.
// Unset fields fall back to defaults.
type Kilnfile struct {
	Version string `yaml:"version"`
	Root    string `yaml:"root"`

	UnitsDir        string   `yaml:"unitsDir"`
	ExcludeUnits    []string `yaml:"excludeUnits"`
	EntryCandidates []string `yaml:"entryCandidates"`
	SharedFiles     []string `yaml:"sharedFiles"`

	Include     []string `yaml:"include"`
	Exclude     []string `yaml:"exclude"`
	ExcludeDirs []string `yaml:"excludeDirs"`
	Signature   string   `yaml:"signature"`

	ArtifactsDir string `yaml:"artifactsDir"`
	CacheFile    string `yaml:"cacheFile"`
	DistDir      string `yaml:"distDir"`

	Framework          FrameworkDTO `yaml:"framework"`
	UnitModulePrefix   string       `yaml:"unitModulePrefix"`
	SharedModulePrefix string       `yaml:"sharedModulePrefix"`
	GlobalName         string       `yaml:"globalName"`
	GlobalStylesheet   string       `yaml:"globalStylesheet"`

	Bundle       BundleDTO       `yaml:"bundle"`
	Styles       StylesDTO       `yaml:"styles"`
	Declarations DeclarationsDTO `yaml:"declarations"`

	Parallelism int    `yaml:"parallelism"`
	UnitTimeout string `yaml:"unitTimeout"`
	CI          CIDTO  `yaml:"ci"`
}

// FrameworkDTO lists the packages kept external to every artifact.
type FrameworkDTO struct {
	Externals []string          `yaml:"externals"`
	Globals   map[string]string `yaml:"globals"`
}

// BundleDTO names the two bundle files.
type BundleDTO struct {
	ESM  string `yaml:"esm"`
	IIFE string `yaml:"iife"`
}

// StylesDTO configures the stylesheet outputs.
type StylesDTO struct {
	Primary string   `yaml:"primary"`
	Compat  string   `yaml:"compat"`
	Targets []string `yaml:"targets"`
	Minify  *bool    `yaml:"minify"`
}

// DeclarationsDTO holds the declaration emitter argv templates.
type DeclarationsDTO struct {
	Unit    []string `yaml:"unit"`
	Project []string `yaml:"project"`
}

// CIDTO configures behavior in CI environments.
type CIDTO struct {
	FullRebuild *bool `yaml:"fullRebuild"`
}
