package fs_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kiln/internal/adapters/fs"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), domain.DirPerm))
	require.NoError(t, os.WriteFile(path, []byte(content), domain.PrivateFilePerm))
}

func scanOptions(strategy domain.SignatureStrategy) domain.ScanOptions {
	return domain.ScanOptions{
		Strategy:     strategy,
		Extensions:   []string{".ts", ".tsx", ".css"},
		ExcludeFiles: []string{"*.test.*", "*.stories.*"},
		ExcludeDirs:  []string{"__tests__", "node_modules"},
	}
}

func newFingerprinter(t *testing.T) *fs.Fingerprinter {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Warn(gomock.Any()).AnyTimes()

	hasher, err := fs.NewHasher(16)
	require.NoError(t, err)
	return fs.NewFingerprinter(fs.NewWalker(), hasher, log)
}

func TestWalker_WalkFiles(t *testing.T) {
	// tmp/
	//   .git/config
	//   __tests__/Button.ts
	//   Button.tsx
	//   Button.test.tsx
	//   Button.css
	//   README.md
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".git", "config"), "git config")
	writeFile(t, filepath.Join(root, "__tests__", "Button.ts"), "test")
	writeFile(t, filepath.Join(root, "Button.tsx"), "export const Button = 1")
	writeFile(t, filepath.Join(root, "Button.test.tsx"), "test")
	writeFile(t, filepath.Join(root, "Button.css"), ".btn{}")
	writeFile(t, filepath.Join(root, "README.md"), "# Button")

	var files []string
	for path, err := range fs.NewWalker().WalkFiles(root, fs.Filter{
		Extensions:   []string{".tsx", ".css"},
		ExcludeFiles: []string{"*.test.*"},
		ExcludeDirs:  []string{"__tests__"},
	}) {
		require.NoError(t, err)
		rel, err := filepath.Rel(root, path)
		require.NoError(t, err)
		files = append(files, rel)
	}

	assert.Equal(t, []string{"Button.css", "Button.tsx"}, files)
}

func TestWalker_WalkFiles_MissingRoot(t *testing.T) {
	var gotErr error
	for _, err := range fs.NewWalker().WalkFiles(filepath.Join(t.TempDir(), "missing"), fs.Filter{}) {
		gotErr = err
	}
	require.Error(t, gotErr)
}

func TestHasher_Memoises(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.ts")
	writeFile(t, path, "export const a = 1")

	hasher, err := fs.NewHasher(8)
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)

	first, err := hasher.ComputeFileHash(path, info)
	require.NoError(t, err)
	assert.Equal(t, 1, hasher.Len())

	second, err := hasher.ComputeFileHash(path, info)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, hasher.Len())

	writeFile(t, path, "export const a = 22")
	future := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(path, future, future))
	info, err = os.Stat(path)
	require.NoError(t, err)

	third, err := hasher.ComputeFileHash(path, info)
	require.NoError(t, err)
	assert.NotEqual(t, first, third)
	assert.Equal(t, 2, hasher.Len())
}

func TestFingerprinter_UnitFingerprint_Content(t *testing.T) {
	root := t.TempDir()
	unit := domain.Unit{Name: "Button", SourceDir: root, ArtifactDir: "/artifacts/Button"}
	writeFile(t, filepath.Join(root, "index.tsx"), "export * from './Button'")
	writeFile(t, filepath.Join(root, "Button.tsx"), "export const Button = 1")
	writeFile(t, filepath.Join(root, "Button.test.tsx"), "test")

	fp := newFingerprinter(t)
	first := fp.UnitFingerprint(unit, scanOptions(domain.StrategyContent))

	assert.True(t, strings.HasPrefix(first.SourceSignature.String(), domain.ContentPrefix))
	assert.Len(t, first.Files, 2)
	assert.Contains(t, first.Files, "index.tsx")
	assert.Equal(t, "/artifacts/Button", first.ArtifactPath)

	t.Run("stable without changes", func(t *testing.T) {
		again := fp.UnitFingerprint(unit, scanOptions(domain.StrategyContent))
		assert.Equal(t, first.SourceSignature, again.SourceSignature)
	})

	t.Run("excluded files do not count", func(t *testing.T) {
		writeFile(t, filepath.Join(root, "Button.test.tsx"), "changed test")
		again := fp.UnitFingerprint(unit, scanOptions(domain.StrategyContent))
		assert.Equal(t, first.SourceSignature, again.SourceSignature)
	})

	t.Run("content change", func(t *testing.T) {
		writeFile(t, filepath.Join(root, "Button.tsx"), "export const Button = 22")
		again := fp.UnitFingerprint(unit, scanOptions(domain.StrategyContent))
		assert.NotEqual(t, first.SourceSignature, again.SourceSignature)
	})
}

func TestFingerprinter_UnitFingerprint_Mtime(t *testing.T) {
	root := t.TempDir()
	unit := domain.Unit{Name: "Card", SourceDir: root}
	writeFile(t, filepath.Join(root, "a.ts"), "a")
	writeFile(t, filepath.Join(root, "b.ts"), "b")

	older := time.Unix(10, 0)
	newer := time.Unix(11, 0)
	require.NoError(t, os.Chtimes(filepath.Join(root, "a.ts"), older, older))
	require.NoError(t, os.Chtimes(filepath.Join(root, "b.ts"), newer, newer))

	fp := newFingerprinter(t)
	got := fp.UnitFingerprint(unit, scanOptions(domain.StrategyMtime))

	assert.Equal(t, domain.Signature("mtime:11000000000"), got.SourceSignature)
	assert.Equal(t, domain.Signature("mtime:10000000000"), got.Files["a.ts"])
}

func TestFingerprinter_UnitFingerprint_Unreadable(t *testing.T) {
	fp := newFingerprinter(t)
	unit := domain.Unit{Name: "Gone", SourceDir: filepath.Join(t.TempDir(), "missing")}

	first := fp.UnitFingerprint(unit, scanOptions(domain.StrategyContent))
	second := fp.UnitFingerprint(unit, scanOptions(domain.StrategyContent))

	assert.True(t, first.SourceSignature.IsUnreadable())
	assert.NotEqual(t, first.SourceSignature, second.SourceSignature)
}

func TestFingerprinter_SharedFingerprint(t *testing.T) {
	root := t.TempDir()
	utils := filepath.Join(root, "utils.ts")
	missing := filepath.Join(root, "theme.ts")
	writeFile(t, utils, "export const clamp = 1")

	fp := newFingerprinter(t)
	got := fp.SharedFingerprint([]string{utils, missing}, domain.StrategyContent)

	require.Len(t, got, 2)
	assert.Equal(t, domain.SignatureAbsent, got[missing])
	assert.True(t, strings.HasPrefix(got[utils].String(), domain.ContentPrefix))

	writeFile(t, utils, "export const clamp = 22")
	changed := fp.SharedFingerprint([]string{utils, missing}, domain.StrategyContent)
	assert.False(t, got.Equal(changed))
}

func TestFingerprinter_ArtifactSignature(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "index.js"), "export const a = 1")

	fp := newFingerprinter(t)
	first, err := fp.ArtifactSignature(dir)
	require.NoError(t, err)

	writeFile(t, filepath.Join(dir, domain.TypesDirName, "index.d.ts"), "export {}")
	withTypes, err := fp.ArtifactSignature(dir)
	require.NoError(t, err)
	assert.Equal(t, first, withTypes, "declarations must not affect the artifact signature")

	writeFile(t, filepath.Join(dir, "index.js"), "export const a = 22")
	modified, err := fp.ArtifactSignature(dir)
	require.NoError(t, err)
	assert.NotEqual(t, first, modified)

	_, err = fp.ArtifactSignature(filepath.Join(dir, "missing"))
	require.Error(t, err)
}

func TestDiscoverer_Discover(t *testing.T) {
	root := t.TempDir()
	unitsDir := filepath.Join(root, "components")
	for _, name := range []string{"Card", "Button", ".hidden", "_internal", "legacy"} {
		require.NoError(t, os.MkdirAll(filepath.Join(unitsDir, name), domain.DirPerm))
	}
	writeFile(t, filepath.Join(unitsDir, "index.ts"), "not a unit")

	cfg := &domain.Config{
		UnitsDir:        unitsDir,
		ExcludeUnits:    []string{"legacy"},
		EntryCandidates: []string{"index.tsx", "{name}.tsx"},
		ArtifactsDir:    filepath.Join(root, ".kiln", "units"),
		UnitPrefix:      "@lib/components",
	}

	units, err := fs.NewDiscoverer().Discover(cfg)
	require.NoError(t, err)
	require.Len(t, units, 2)

	assert.Equal(t, "Button", units[0].Name)
	assert.Equal(t, "Card", units[1].Name)
	assert.Equal(t, []string{
		filepath.Join(unitsDir, "Button", "index.tsx"),
		filepath.Join(unitsDir, "Button", "Button.tsx"),
	}, units[0].EntryCandidates)
	assert.Equal(t, filepath.Join(root, ".kiln", "units", "Button"), units[0].ArtifactDir)
	assert.Equal(t, "@lib/components/Button", units[0].ModulePath)
}

func TestDiscoverer_MissingRoot(t *testing.T) {
	_, err := fs.NewDiscoverer().Discover(&domain.Config{UnitsDir: filepath.Join(t.TempDir(), "nope")})
	require.ErrorContains(t, err, domain.ErrUnitsDirNotFound.Error())
}

func TestVerifier_VerifyOutputs(t *testing.T) {
	dir := t.TempDir()
	present := filepath.Join(dir, "index.mjs")
	writeFile(t, present, "")

	missing, ok, err := fs.NewVerifier().VerifyOutputs([]string{present})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, missing)

	absent := filepath.Join(dir, "styles.css")
	missing, ok, err = fs.NewVerifier().VerifyOutputs([]string{present, absent})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, absent, missing)
}
