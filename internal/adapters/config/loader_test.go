package config_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kiln/internal/adapters/config"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newLoader(t *testing.T, env map[string]string) *config.Loader {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()
	return config.NewLoader(log).WithLookup(func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	})
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), domain.DirPerm))
	require.NoError(t, os.WriteFile(path, []byte(content), domain.PrivateFilePerm))
}

func TestLoad_Defaults(t *testing.T) {
	root := t.TempDir()

	cfg, err := newLoader(t, nil).Load(root, "")
	require.NoError(t, err)

	assert.Equal(t, root, cfg.Root)
	assert.Equal(t, filepath.Join(root, "src", "components"), cfg.UnitsDir)
	assert.Equal(t, filepath.Join(root, ".kiln", "units"), cfg.ArtifactsDir)
	assert.Equal(t, filepath.Join(root, ".kiln", "cache.json"), cfg.CacheFile)
	assert.Equal(t, filepath.Join(root, "dist"), cfg.DistDir)
	assert.Equal(t, []string{filepath.Join(root, "src", "lib", "utils.ts")}, cfg.SharedFiles)
	assert.Equal(t, domain.StrategyContent, cfg.Scan.Strategy)
	assert.Contains(t, cfg.Scan.Extensions, ".tsx")
	assert.Contains(t, cfg.Scan.ExcludeFiles, "*.test.*")
	assert.Equal(t, "React", cfg.Framework.Globals["react"])
	assert.Equal(t, "index.mjs", cfg.Bundle.ESM)
	assert.Equal(t, "index.umd.js", cfg.Bundle.IIFE)
	assert.Equal(t, "styles.css", cfg.Styles.Primary)
	assert.Equal(t, "index.css", cfg.Styles.Compat)
	assert.True(t, cfg.Styles.Minify)
	assert.Equal(t, runtime.NumCPU(), cfg.Parallelism)
	assert.Zero(t, cfg.UnitTimeout)
	assert.True(t, cfg.CIFullRebuild)
	assert.NotEmpty(t, cfg.Declarations.Unit)
}

func TestLoad_File(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "kiln.yaml"), `
version: "1"
unitsDir: ui
excludeUnits: [internal]
sharedFiles: [ui/lib/cn.ts, /abs/theme.ts]
include: [tsx, .CSS]
signature: mtime
framework:
  externals: [preact]
  globals:
    preact: Preact
globalName: MyLib
globalStylesheet: ui/global.css
styles:
  minify: false
  compat: styles.css
declarations:
  unit: []
parallelism: 3
unitTimeout: 90s
ci:
  fullRebuild: false
`)

	cfg, err := newLoader(t, nil).Load(root, "kiln.yaml")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(root, "ui"), cfg.UnitsDir)
	assert.Equal(t, []string{"internal"}, cfg.ExcludeUnits)
	assert.Equal(t, []string{filepath.Join(root, "ui", "lib", "cn.ts"), "/abs/theme.ts"}, cfg.SharedFiles)
	assert.Equal(t, []string{".tsx", ".css"}, cfg.Scan.Extensions)
	assert.Equal(t, domain.StrategyMtime, cfg.Scan.Strategy)
	assert.Equal(t, []string{"preact"}, cfg.Framework.Externals)
	assert.Equal(t, "MyLib", cfg.Bundle.GlobalName)
	assert.Equal(t, filepath.Join(root, "ui", "global.css"), cfg.Styles.Global)
	assert.False(t, cfg.Styles.Minify)
	assert.Empty(t, cfg.Styles.Compat, "a compat name equal to the primary is dropped")
	assert.Empty(t, cfg.Declarations.Unit)
	assert.NotEmpty(t, cfg.Declarations.Project)
	assert.Equal(t, 3, cfg.Parallelism)
	assert.Equal(t, 90*time.Second, cfg.UnitTimeout)
	assert.False(t, cfg.CIFullRebuild)
}

func TestLoad_RootRelativeToConfig(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "config", "kiln.yaml"), "root: ..\n")

	cfg, err := newLoader(t, nil).Load(dir, filepath.Join("config", "kiln.yaml"))
	require.NoError(t, err)
	assert.Equal(t, dir, cfg.Root)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "kiln.yaml"), "parallelism: 2\nsignature: content\n")
	writeFile(t, filepath.Join(root, ".env"), "KILN_PARALLELISM=5\nKILN_UNIT_TIMEOUT=2m\n")

	env := map[string]string{
		config.EnvParallelism:   "7",
		config.EnvSignature:     "mtime",
		config.EnvCIFullRebuild: "false",
	}
	cfg, err := newLoader(t, env).Load(root, "")
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.Parallelism, "process environment wins over .env")
	assert.Equal(t, 2*time.Minute, cfg.UnitTimeout, ".env applies when the process has no value")
	assert.Equal(t, domain.StrategyMtime, cfg.Scan.Strategy)
	assert.False(t, cfg.CIFullRebuild)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		env     map[string]string
		wantErr string
	}{
		{name: "malformed yaml", content: "unitsDir: [", wantErr: domain.ErrConfigParseFailed.Error()},
		{name: "unknown signature", content: "signature: sha1", wantErr: domain.ErrInvalidSignatureStrategy.Error()},
		{name: "negative parallelism", content: "parallelism: -1", wantErr: domain.ErrConfigInvalid.Error()},
		{name: "bad timeout", content: "unitTimeout: soon", wantErr: domain.ErrConfigInvalid.Error()},
		{name: "negative timeout", content: "unitTimeout: -1s", wantErr: domain.ErrConfigInvalid.Error()},
		{name: "same bundle names", content: "bundle: {esm: a.js, iife: a.js}", wantErr: domain.ErrConfigInvalid.Error()},
		{name: "nested output", content: "bundle: {esm: lib/a.js}", wantErr: domain.ErrConfigInvalid.Error()},
		{name: "bad exclude glob", content: "exclude: ['[']", wantErr: domain.ErrConfigInvalid.Error()},
		{name: "bad global name", content: "globalName: my-lib", wantErr: domain.ErrConfigInvalid.Error()},
		{
			name:    "bad env parallelism",
			env:     map[string]string{config.EnvParallelism: "many"},
			wantErr: domain.ErrConfigInvalid.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			writeFile(t, filepath.Join(root, "kiln.yaml"), tt.content)

			_, err := newLoader(t, tt.env).Load(root, "")
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}
