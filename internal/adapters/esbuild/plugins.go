package esbuild

import (
	"fmt"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
	"go.trai.ch/kiln/internal/core/domain"
)

const globalNamespace = "kiln-global"

func isJSImport(kind api.ResolveKind) bool {
	switch kind {
	case api.ResolveJSImportStatement, api.ResolveJSRequireCall,
		api.ResolveJSDynamicImport, api.ResolveJSRequireResolve:
		return true
	default:
		return false
	}
}

// unitPlugin keeps the framework, sibling units and shared modules external
// while compiling a single unit.
func unitPlugin(unit domain.Unit, modules domain.ModuleMap, seen *externalSet) api.Plugin {
	return api.Plugin{
		Name: "kiln-unit",
		Setup: func(b api.PluginBuild) {
			b.OnResolve(api.OnResolveOptions{Filter: ".*"}, func(args api.OnResolveArgs) (api.OnResolveResult, error) {
				if !isJSImport(args.Kind) {
					return api.OnResolveResult{}, nil
				}

				decision := classifyImport(args.Path, args.ResolveDir, unit, modules)
				switch decision.action {
				case actionExternal:
					seen.add(decision.target)
					return api.OnResolveResult{Path: decision.target, External: true}, nil
				case actionLocal:
					res := b.Resolve(decision.target, api.ResolveOptions{
						ResolveDir: modules.UnitsRoot,
						Importer:   args.Importer,
						Kind:       args.Kind,
					})
					if len(res.Errors) > 0 {
						return api.OnResolveResult{Errors: res.Errors}, nil
					}
					return api.OnResolveResult{Path: res.Path, Namespace: res.Namespace}, nil
				default:
					return api.OnResolveResult{}, nil
				}
			})
		},
	}
}

// bundlePlugin maps unit module paths to their artifacts and shared module paths
// to their sources so each is inlined exactly once. For IIFE bundles the framework
// is read from globals; otherwise it stays external.
func bundlePlugin(req domain.BundleRequest) api.Plugin {
	modules := req.Modules
	iife := req.Format == domain.FormatIIFE

	return api.Plugin{
		Name: "kiln-bundle",
		Setup: func(b api.PluginBuild) {
			b.OnResolve(api.OnResolveOptions{Filter: ".*"}, func(args api.OnResolveArgs) (api.OnResolveResult, error) {
				if !isJSImport(args.Kind) {
					return api.OnResolveResult{}, nil
				}

				spec := args.Path
				if isFramework(spec, modules.Framework) {
					if iife {
						return api.OnResolveResult{Path: spec, Namespace: globalNamespace}, nil
					}
					return api.OnResolveResult{Path: spec, External: true}, nil
				}

				if name, _, ok := cutPrefixPath(spec, modules.UnitPrefix); ok {
					artifact, found := req.Artifacts[unitModulePath(name, modules)]
					if !found {
						return api.OnResolveResult{}, fmt.Errorf("no artifact for unit module %q", spec)
					}
					return api.OnResolveResult{Path: artifact}, nil
				}
				if artifact, ok := req.Artifacts[spec]; ok {
					return api.OnResolveResult{Path: artifact}, nil
				}

				if file, ok := sharedFileFor(spec, modules); ok {
					return api.OnResolveResult{Path: file}, nil
				}
				return api.OnResolveResult{}, nil
			})

			b.OnLoad(api.OnLoadOptions{Filter: ".*", Namespace: globalNamespace}, func(args api.OnLoadArgs) (api.OnLoadResult, error) {
				global, ok := globalFor(args.Path, modules.Globals)
				if !ok {
					return api.OnLoadResult{}, fmt.Errorf("no global configured for %q", args.Path)
				}
				contents := fmt.Sprintf("module.exports = globalThis[%q];\n", global)
				return api.OnLoadResult{Contents: &contents, Loader: api.LoaderJS}, nil
			})
		},
	}
}

// globalFor looks up the global of pkg, falling back to its root package.
func globalFor(pkg string, globals map[string]string) (string, bool) {
	for {
		if g, ok := globals[pkg]; ok {
			return g, true
		}
		i := strings.LastIndex(pkg, "/")
		if i < 0 {
			return "", false
		}
		pkg = pkg[:i]
	}
}
