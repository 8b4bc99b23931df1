package esbuild

import (
	"path"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/kiln/internal/core/domain"
)

// importAction tells the resolver plugin what to do with an import.
type importAction int

const (
	// actionDefault leaves resolution to esbuild; the import is inlined.
	actionDefault importAction = iota
	// actionExternal keeps the import as a reference to target.
	actionExternal
	// actionLocal resolves target relative to the units root; the import is inlined.
	actionLocal
)

// importDecision is the outcome of classifyImport.
type importDecision struct {
	action importAction
	target string
}

// classifyImport decides how an import inside unit is treated. Framework packages,
// other units and shared modules stay external under their stable module paths;
// everything else is inlined.
func classifyImport(spec, resolveDir string, unit domain.Unit, modules domain.ModuleMap) importDecision {
	if isFramework(spec, modules.Framework) {
		return importDecision{action: actionExternal, target: spec}
	}

	if name, rest, ok := cutPrefixPath(spec, modules.UnitPrefix); ok {
		if name == unit.Name {
			return importDecision{action: actionLocal, target: "./" + path.Join(name, rest)}
		}
		return importDecision{action: actionExternal, target: unitModulePath(name, modules)}
	}

	if modules.SharedPrefix != "" && strings.HasPrefix(spec, modules.SharedPrefix+"/") {
		return importDecision{action: actionExternal, target: spec}
	}

	if !isFileSpecifier(spec) {
		return importDecision{action: actionDefault}
	}

	abs := spec
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(resolveDir, spec)
	}

	if shared, ok := matchShared(abs, modules.SharedFiles); ok {
		return importDecision{action: actionExternal, target: sharedModulePath(shared, modules.SharedPrefix)}
	}

	if name, ok := owningUnit(abs, modules.UnitsRoot); ok && name != unit.Name {
		if _, known := modules.Units[name]; known {
			return importDecision{action: actionExternal, target: unitModulePath(name, modules)}
		}
	}

	return importDecision{action: actionDefault}
}

func isFramework(spec string, framework []string) bool {
	for _, pkg := range framework {
		if spec == pkg || strings.HasPrefix(spec, pkg+"/") {
			return true
		}
	}
	return false
}

func isFileSpecifier(spec string) bool {
	return strings.HasPrefix(spec, "./") || strings.HasPrefix(spec, "../") ||
		spec == "." || spec == ".." || filepath.IsAbs(spec)
}

// cutPrefixPath splits "<prefix>/<name>/<rest>" into name and rest.
func cutPrefixPath(spec, prefix string) (name, rest string, ok bool) {
	if prefix == "" {
		return "", "", false
	}
	after, found := strings.CutPrefix(spec, prefix+"/")
	if !found || after == "" {
		return "", "", false
	}
	name, rest, _ = strings.Cut(after, "/")
	return name, rest, true
}

// owningUnit returns the unit directory abs lies in.
func owningUnit(abs, unitsRoot string) (string, bool) {
	if unitsRoot == "" {
		return "", false
	}
	rel, err := filepath.Rel(unitsRoot, abs)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", false
	}
	name, _, _ := strings.Cut(filepath.ToSlash(rel), "/")
	return name, true
}

// matchShared reports whether abs names a shared file, with or without its extension.
func matchShared(abs string, shared []string) (string, bool) {
	stem := trimExt(abs)
	for _, f := range shared {
		if abs == f || stem == trimExt(f) {
			return f, true
		}
	}
	return "", false
}

func unitModulePath(name string, modules domain.ModuleMap) string {
	if p, ok := modules.Units[name]; ok {
		return p
	}
	return path.Join(modules.UnitPrefix, name)
}

// sharedModulePath is the stable import path of a shared file: "<prefix>/<stem>".
func sharedModulePath(file, prefix string) string {
	return path.Join(prefix, trimExt(filepath.Base(file)))
}

// sharedFileFor maps a shared module path back to its source file.
func sharedFileFor(spec string, modules domain.ModuleMap) (string, bool) {
	idx := slices.IndexFunc(modules.SharedFiles, func(f string) bool {
		return sharedModulePath(f, modules.SharedPrefix) == spec
	})
	if idx < 0 {
		return "", false
	}
	return modules.SharedFiles[idx], true
}

func trimExt(p string) string {
	return strings.TrimSuffix(p, filepath.Ext(p))
}
