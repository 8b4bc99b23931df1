// Package config provides the configuration loader for kiln.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Environment variables that override the configuration file.
const (
	EnvParallelism   = "KILN_PARALLELISM"
	EnvUnitTimeout   = "KILN_UNIT_TIMEOUT"
	EnvSignature     = "KILN_SIGNATURE"
	EnvCIFullRebuild = "KILN_CI_FULL_REBUILD"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
	lookup func(string) (string, bool)
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger, lookup: os.LookupEnv}
}

// WithLookup replaces the process environment lookup.
func (l *Loader) WithLookup(lookup func(string) (string, bool)) *Loader {
	l.lookup = lookup
	return l
}

// Load reads the configuration at path, relative to root unless absolute.
// A missing file yields the defaults.
func (l *Loader) Load(root, path string) (*domain.Config, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", root)
	}
	if path == "" {
		path = domain.ConfigFileName
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(root, path)
	}

	var kilnfile Kilnfile
	switch err := readAndUnmarshalYAML(path, &kilnfile); {
	case errors.Is(err, fs.ErrNotExist):
		l.Logger.Info(fmt.Sprintf("no %s found, using defaults", filepath.Base(path)))
	case err != nil:
		return nil, zerr.With(err, "path", path)
	default:
		root = resolveRoot(path, root, kilnfile.Root)
	}

	if err := l.applyEnvironment(root, &kilnfile); err != nil {
		return nil, err
	}
	applyDefaults(&kilnfile)

	cfg, err := buildConfig(root, &kilnfile)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return cfg, nil
}

// applyEnvironment overlays KILN_* variables. The process environment wins over
// values from the project's .env file.
func (l *Loader) applyEnvironment(root string, k *Kilnfile) error {
	dotenv, err := godotenv.Read(filepath.Join(root, domain.EnvFileName))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		l.Logger.Warn(fmt.Sprintf("ignoring unreadable %s: %v", domain.EnvFileName, err))
	}

	get := func(key string) (string, bool) {
		if v, ok := l.lookup(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}

	if v, ok := get(EnvParallelism); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrConfigInvalid.Error()), "env", EnvParallelism)
		}
		k.Parallelism = n
	}
	if v, ok := get(EnvUnitTimeout); ok {
		k.UnitTimeout = strings.TrimSpace(v)
	}
	if v, ok := get(EnvSignature); ok {
		k.Signature = v
	}
	if v, ok := get(EnvCIFullRebuild); ok {
		full, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrConfigInvalid.Error()), "env", EnvCIFullRebuild)
		}
		k.CI.FullRebuild = &full
	}
	return nil
}

func buildConfig(root string, k *Kilnfile) (*domain.Config, error) {
	strategy, err := domain.ParseSignatureStrategy(k.Signature)
	if err != nil {
		return nil, zerr.With(err, "signature", k.Signature)
	}

	if err := validate(k); err != nil {
		return nil, err
	}

	timeout, err := parseTimeout(k.UnitTimeout)
	if err != nil {
		return nil, err
	}

	parallelism := k.Parallelism
	if parallelism == 0 {
		parallelism = runtime.NumCPU()
	}

	shared := make([]string, 0, len(k.SharedFiles))
	for _, f := range k.SharedFiles {
		shared = append(shared, resolvePath(root, f))
	}

	var global string
	if k.GlobalStylesheet != "" {
		global = resolvePath(root, k.GlobalStylesheet)
	}

	return &domain.Config{
		Root:            root,
		UnitsDir:        resolvePath(root, k.UnitsDir),
		ExcludeUnits:    k.ExcludeUnits,
		EntryCandidates: k.EntryCandidates,
		SharedFiles:     shared,
		Scan: domain.ScanOptions{
			Strategy:     strategy,
			Extensions:   normalizeExtensions(k.Include),
			ExcludeFiles: k.Exclude,
			ExcludeDirs:  k.ExcludeDirs,
		},
		ArtifactsDir: resolvePath(root, k.ArtifactsDir),
		CacheFile:    resolvePath(root, k.CacheFile),
		DistDir:      resolvePath(root, k.DistDir),
		Framework: domain.FrameworkConfig{
			Externals: k.Framework.Externals,
			Globals:   k.Framework.Globals,
		},
		UnitPrefix:   k.UnitModulePrefix,
		SharedPrefix: k.SharedModulePrefix,
		Bundle: domain.BundleConfig{
			ESM:        k.Bundle.ESM,
			IIFE:       k.Bundle.IIFE,
			GlobalName: k.GlobalName,
		},
		Styles: domain.StylesConfig{
			Primary: k.Styles.Primary,
			Compat:  k.Styles.Compat,
			Global:  global,
			Targets: k.Styles.Targets,
			Minify:  *k.Styles.Minify,
		},
		Declarations: domain.DeclarationsConfig{
			Unit:    k.Declarations.Unit,
			Project: k.Declarations.Project,
		},
		Parallelism:   parallelism,
		UnitTimeout:   timeout,
		CIFullRebuild: *k.CI.FullRebuild,
	}, nil
}

func validate(k *Kilnfile) error {
	if k.Parallelism < 0 {
		return zerr.With(domain.ErrConfigInvalid, "parallelism", k.Parallelism)
	}
	if k.Bundle.ESM == k.Bundle.IIFE {
		return zerr.With(domain.ErrConfigInvalid, "bundle", k.Bundle.ESM)
	}
	if k.Styles.Compat == k.Styles.Primary {
		// Writing the duplicate over the primary would be a no-op at best.
		k.Styles.Compat = ""
	}
	for _, name := range []string{k.Bundle.ESM, k.Bundle.IIFE, k.Styles.Primary, k.Styles.Compat} {
		if strings.ContainsAny(name, `/\`) {
			return zerr.With(domain.ErrConfigInvalid, "output", name)
		}
	}
	for _, pattern := range k.Exclude {
		if _, err := filepath.Match(pattern, ""); err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrConfigInvalid.Error()), "exclude", pattern)
		}
	}
	for _, candidate := range k.EntryCandidates {
		if filepath.IsAbs(candidate) {
			return zerr.With(domain.ErrConfigInvalid, "entryCandidate", candidate)
		}
	}
	if k.GlobalName == "" || strings.ContainsAny(k.GlobalName, " -./") {
		return zerr.With(domain.ErrConfigInvalid, "globalName", k.GlobalName)
	}
	return nil
}

func parseTimeout(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, domain.ErrConfigInvalid.Error()), "unitTimeout", s)
	}
	if d < 0 {
		return 0, zerr.With(domain.ErrConfigInvalid, "unitTimeout", s)
	}
	return d, nil
}

func normalizeExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		out = append(out, ext)
	}
	return out
}

// resolveRoot returns the configured root relative to the config file's directory,
// or fallback when none is set.
func resolveRoot(configPath, fallback, configuredRoot string) string {
	if configuredRoot == "" {
		return fallback
	}
	if filepath.IsAbs(configuredRoot) {
		return filepath.Clean(configuredRoot)
	}
	return filepath.Join(filepath.Dir(configPath), configuredRoot)
}

func resolvePath(root, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(root, p)
}

func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	//nolint:gosec // Config path comes from the command line
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return err
		}
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	if parseErr := yaml.Unmarshal(configFile, target); parseErr != nil {
		return zerr.Wrap(parseErr, domain.ErrConfigParseFailed.Error())
	}
	return nil
}
