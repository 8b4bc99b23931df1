package config

import "go.trai.ch/kiln/internal/core/domain"

// Defaults describe a conventional React component library layout.
var (
	defaultUnitsDir        = "src/components"
	defaultEntryCandidates = []string{"index.tsx", "index.ts", "{name}.tsx"}
	defaultSharedFiles     = []string{"src/lib/utils.ts"}
	defaultExtensions      = []string{".ts", ".tsx", ".js", ".jsx", ".mjs", ".cjs", ".css", ".scss", ".json"}
	defaultExcludeFiles    = []string{"*.test.*", "*.spec.*", "*.stories.*"}
	defaultExcludeDirs     = []string{"__tests__", "__mocks__", "node_modules"}

	defaultFrameworkExternals = []string{"react", "react-dom", "react/jsx-runtime"}
	defaultFrameworkGlobals   = map[string]string{
		"react":             "React",
		"react-dom":         "ReactDOM",
		"react/jsx-runtime": "React",
	}

	defaultUnitPrefix   = "@/components"
	defaultSharedPrefix = "@/lib"
	defaultGlobalName   = "Components"

	defaultBundleESM    = "index.mjs"
	defaultBundleIIFE   = "index.umd.js"
	defaultStylePrimary = "styles.css"
	defaultStyleCompat  = "index.css"
	defaultStyleTargets = []string{"chrome90", "firefox88", "safari14", "edge90"}

	defaultUnitDeclarations = []string{
		"npx", "tsc", "{entry}",
		"--declaration", "--emitDeclarationOnly", "--skipLibCheck",
		"--jsx", "react-jsx", "--outDir", "{outDir}",
	}
	defaultProjectDeclarations = []string{
		"npx", "tsc", "--project", "{root}/tsconfig.json",
		"--declaration", "--emitDeclarationOnly", "--outDir", "{outDir}",
	}
)

// applyDefaults fills every unset field of k.
func applyDefaults(k *Kilnfile) {
	setString(&k.UnitsDir, defaultUnitsDir)
	setSlice(&k.EntryCandidates, defaultEntryCandidates)
	if k.SharedFiles == nil {
		k.SharedFiles = clone(defaultSharedFiles)
	}
	setSlice(&k.Include, defaultExtensions)
	setSlice(&k.Exclude, defaultExcludeFiles)
	setSlice(&k.ExcludeDirs, defaultExcludeDirs)

	setString(&k.ArtifactsDir, domain.DefaultArtifactsPath())
	setString(&k.CacheFile, domain.DefaultCachePath())
	setString(&k.DistDir, domain.DistDirName)

	if k.Framework.Externals == nil {
		k.Framework.Externals = clone(defaultFrameworkExternals)
	}
	if k.Framework.Globals == nil {
		k.Framework.Globals = make(map[string]string, len(defaultFrameworkGlobals))
		for pkg, global := range defaultFrameworkGlobals {
			k.Framework.Globals[pkg] = global
		}
	}
	setString(&k.UnitModulePrefix, defaultUnitPrefix)
	setString(&k.SharedModulePrefix, defaultSharedPrefix)
	setString(&k.GlobalName, defaultGlobalName)

	setString(&k.Bundle.ESM, defaultBundleESM)
	setString(&k.Bundle.IIFE, defaultBundleIIFE)
	setString(&k.Styles.Primary, defaultStylePrimary)
	setString(&k.Styles.Compat, defaultStyleCompat)
	setSlice(&k.Styles.Targets, defaultStyleTargets)
	if k.Styles.Minify == nil {
		minify := true
		k.Styles.Minify = &minify
	}

	if k.Declarations.Unit == nil {
		k.Declarations.Unit = clone(defaultUnitDeclarations)
	}
	if k.Declarations.Project == nil {
		k.Declarations.Project = clone(defaultProjectDeclarations)
	}

	if k.CI.FullRebuild == nil {
		full := true
		k.CI.FullRebuild = &full
	}
}

func setString(field *string, value string) {
	if *field == "" {
		*field = value
	}
}

func setSlice(field *[]string, value []string) {
	if len(*field) == 0 {
		*field = clone(value)
	}
}

func clone(s []string) []string {
	return append([]string(nil), s...)
}
