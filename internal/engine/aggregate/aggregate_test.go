package aggregate_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports/mocks"
	"go.trai.ch/kiln/internal/engine/aggregate"
	"go.uber.org/mock/gomock"
)

type project struct {
	cfg   *domain.Config
	units []domain.Unit
}

func newProject(t *testing.T, names ...string) *project {
	t.Helper()
	root := t.TempDir()
	cfg := &domain.Config{
		Root:         root,
		UnitsDir:     filepath.Join(root, "src", "components"),
		SharedFiles:  []string{filepath.Join(root, "src", "lib", "utils.ts")},
		ArtifactsDir: filepath.Join(root, ".kiln", "units"),
		DistDir:      filepath.Join(root, "dist"),
		UnitPrefix:   "@/components",
		SharedPrefix: "@/lib",
		Bundle:       domain.BundleConfig{ESM: "index.mjs", IIFE: "index.umd.js", GlobalName: "Components"},
		Styles:       domain.StylesConfig{Primary: "styles.css", Compat: "index.css", Minify: true},
	}
	p := &project{cfg: cfg}
	for _, name := range names {
		u := domain.Unit{
			Name:        name,
			SourceDir:   filepath.Join(cfg.UnitsDir, name),
			ArtifactDir: filepath.Join(cfg.ArtifactsDir, name),
			ModulePath:  "@/components/" + name,
		}
		require.NoError(t, os.MkdirAll(u.ArtifactDir, domain.DirPerm))
		p.units = append(p.units, u)
	}
	return p
}

func (p *project) input(entries map[string]string) aggregate.Input {
	return aggregate.Input{Config: p.cfg, Units: p.units, Entries: entries}
}

func write(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), domain.DirPerm))
	require.NoError(t, os.WriteFile(path, []byte(content), domain.PrivateFilePerm))
}

func read(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestOutputs(t *testing.T) {
	p := newProject(t)
	assert.Equal(t, []string{
		filepath.Join(p.cfg.DistDir, "index.mjs"),
		filepath.Join(p.cfg.DistDir, "index.umd.js"),
		filepath.Join(p.cfg.DistDir, "types"),
	}, aggregate.Outputs(p.cfg))
}

func TestBundler_BuildsBothFormatsAndRemovesBarrel(t *testing.T) {
	p := newProject(t, "Button", "Card")
	write(t, p.cfg.SharedFiles[0], "export const cn = () => ''")

	ctrl := gomock.NewController(t)
	compiler := mocks.NewMockCompiler(ctrl)

	var (
		mu      sync.Mutex
		formats []domain.BundleFormat
		barrel  string
	)
	compiler.EXPECT().Bundle(gomock.Any(), gomock.Any()).Times(2).
		DoAndReturn(func(_ context.Context, req domain.BundleRequest) error {
			mu.Lock()
			defer mu.Unlock()
			formats = append(formats, req.Format)
			barrel = req.Barrel

			src := read(t, req.Barrel)
			button := strings.Index(src, filepath.Join(p.units[0].ArtifactDir, "index.js"))
			card := strings.Index(src, filepath.Join(p.units[1].ArtifactDir, "index.js"))
			assert.True(t, button >= 0 && card > button, "units are re-exported in order")
			assert.Contains(t, src, p.cfg.SharedFiles[0])
			assert.Equal(t, filepath.Join(p.units[1].ArtifactDir, "index.js"), req.Artifacts["@/components/Card"])
			if req.Format == domain.FormatIIFE {
				assert.Equal(t, "Components", req.GlobalName)
				assert.Equal(t, filepath.Join(p.cfg.DistDir, "index.umd.js"), req.Outfile)
			}
			return nil
		})

	require.NoError(t, aggregate.NewBundler(compiler).Aggregate(context.Background(), p.input(nil)))
	assert.ElementsMatch(t, []domain.BundleFormat{domain.FormatESM, domain.FormatIIFE}, formats)
	assert.NoFileExists(t, barrel)
}

func TestBundler_FailureStillRemovesBarrel(t *testing.T) {
	p := newProject(t, "Button")
	ctrl := gomock.NewController(t)
	compiler := mocks.NewMockCompiler(ctrl)
	compiler.EXPECT().Bundle(gomock.Any(), gomock.Any()).Return(domain.ErrBundleFailed).MinTimes(1).MaxTimes(2)

	err := aggregate.NewBundler(compiler).Aggregate(context.Background(), p.input(nil))
	require.ErrorIs(t, err, domain.ErrBundleFailed)

	entries, err := os.ReadDir(p.cfg.ArtifactsDir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasPrefix(e.Name(), ".barrel"), "barrel left behind: %s", e.Name())
	}
}

func TestDeclarations_EmitsCopiesAndRunsProject(t *testing.T) {
	p := newProject(t, "Button", "Card")
	p.cfg.Declarations = domain.DeclarationsConfig{
		Unit:    []string{"tsc", "{entry}", "--outDir", "{outDir}"},
		Project: []string{"tsc", "-p", "{root}/tsconfig.json", "--outDir", "{outDir}"},
	}
	// Card was not rebuilt but kept its declarations from an earlier run.
	write(t, filepath.Join(p.units[1].ArtifactDir, "types", "index.d.ts"), "export declare const Card: 1;\n")
	// Types of a removed unit must not survive.
	write(t, filepath.Join(p.cfg.DistDir, "types", "Old", "index.d.ts"), "")

	ctrl := gomock.NewController(t)
	exec := mocks.NewMockExecutor(ctrl)
	entry := filepath.Join(p.units[0].SourceDir, "index.tsx")
	buttonTypes := filepath.Join(p.units[0].ArtifactDir, "types")
	distTypes := filepath.Join(p.cfg.DistDir, "types")

	gomock.InOrder(
		exec.EXPECT().Execute(gomock.Any(), domain.Command{
			Args: []string{"tsc", entry, "--outDir", buttonTypes},
			Dir:  p.cfg.Root,
		}).DoAndReturn(func(context.Context, domain.Command) error {
			write(t, filepath.Join(buttonTypes, "index.d.ts"), "export declare const Button: 1;\n")
			return nil
		}),
		exec.EXPECT().Execute(gomock.Any(), domain.Command{
			Args: []string{"tsc", "-p", p.cfg.Root + "/tsconfig.json", "--outDir", distTypes},
			Dir:  p.cfg.Root,
		}).Return(nil),
	)

	decl := aggregate.NewDeclarations(exec, mocks.NewMockLogger(ctrl))
	require.NoError(t, decl.Aggregate(context.Background(), p.input(map[string]string{"Button": entry})))

	assert.FileExists(t, filepath.Join(distTypes, "Button", "index.d.ts"))
	assert.FileExists(t, filepath.Join(distTypes, "Card", "index.d.ts"))
	assert.NoDirExists(t, filepath.Join(distTypes, "Old"))
	assert.NoFileExists(t, filepath.Join(distTypes, "index.d.ts"))
}

func TestDeclarations_FallbackIndex(t *testing.T) {
	p := newProject(t, "Button", "Card", "Dialog")
	p.cfg.Declarations = domain.DeclarationsConfig{
		Unit:    []string{"tsc", "{entry}"},
		Project: []string{"tsc", "-p", "."},
	}
	write(t, filepath.Join(p.units[0].ArtifactDir, "types", "index.d.ts"), "")
	write(t, filepath.Join(p.units[2].ArtifactDir, "types", "Dialog.d.ts"), "")

	ctrl := gomock.NewController(t)
	exec := mocks.NewMockExecutor(ctrl)
	log := mocks.NewMockLogger(ctrl)
	exec.EXPECT().Execute(gomock.Any(), gomock.Any()).Return(domain.ErrCommandFailed).Times(2)
	log.EXPECT().Warn(gomock.Any()).Times(2)

	err := aggregate.NewDeclarations(exec, log).Aggregate(context.Background(),
		p.input(map[string]string{"Card": "/src/Card/index.tsx"}))
	require.NoError(t, err)

	want := "export * from \"./Button/index\";\nexport * from \"./Dialog/Dialog\";\n"
	assert.Equal(t, want, read(t, filepath.Join(p.cfg.DistDir, "types", "index.d.ts")))
}

func TestDeclarations_StubWithoutAnyTypes(t *testing.T) {
	p := newProject(t, "Button")

	ctrl := gomock.NewController(t)
	err := aggregate.NewDeclarations(mocks.NewMockExecutor(ctrl), mocks.NewMockLogger(ctrl)).
		Aggregate(context.Background(), p.input(map[string]string{"Button": "/x.tsx"}))
	require.NoError(t, err)

	assert.Equal(t, "export {};\n", read(t, filepath.Join(p.cfg.DistDir, "types", "index.d.ts")))
}

func TestDeclarations_CanceledProjectEmissionIsFatal(t *testing.T) {
	p := newProject(t, "Button")
	p.cfg.Declarations.Project = []string{"tsc"}
	ctx, cancel := context.WithCancel(context.Background())

	ctrl := gomock.NewController(t)
	exec := mocks.NewMockExecutor(ctrl)
	exec.EXPECT().Execute(gomock.Any(), gomock.Any()).DoAndReturn(func(context.Context, domain.Command) error {
		cancel()
		return context.Canceled
	})

	err := aggregate.NewDeclarations(exec, mocks.NewMockLogger(ctrl)).Aggregate(ctx, p.input(nil))
	require.True(t, errors.Is(err, context.Canceled))
}

func TestStyles_ConcatenatesTransformsAndAppendsGlobal(t *testing.T) {
	p := newProject(t, "Button", "Card", "Dialog")
	p.cfg.Styles.Targets = []string{"safari14"}
	p.cfg.Styles.Global = filepath.Join(p.cfg.Root, "src", "global.css")
	write(t, filepath.Join(p.units[0].ArtifactDir, "index.css"), ".button{}")
	write(t, filepath.Join(p.units[2].ArtifactDir, "index.css"), ".dialog{}\n")
	write(t, p.cfg.Styles.Global, ":root{--x:1}\n")

	ctrl := gomock.NewController(t)
	tr := mocks.NewMockStyleTransformer(ctrl)
	tr.EXPECT().Transform(gomock.Any(), ".button{}\n.dialog{}\n", domain.StyleOptions{
		Targets: []string{"safari14"},
		Minify:  true,
	}).Return(".button{}.dialog{}", nil)

	require.NoError(t, aggregate.NewStyles(tr, mocks.NewMockLogger(ctrl)).Aggregate(context.Background(), p.input(nil)))

	want := ".button{}.dialog{}\n:root{--x:1}\n"
	assert.Equal(t, want, read(t, filepath.Join(p.cfg.DistDir, "styles.css")))
	assert.Equal(t, want, read(t, filepath.Join(p.cfg.DistDir, "index.css")))
}

func TestStyles_TransformFailure(t *testing.T) {
	p := newProject(t, "Button")

	ctrl := gomock.NewController(t)
	tr := mocks.NewMockStyleTransformer(ctrl)
	tr.EXPECT().Transform(gomock.Any(), gomock.Any(), gomock.Any()).Return("", domain.ErrStyleTransformFailed)

	err := aggregate.NewStyles(tr, mocks.NewMockLogger(ctrl)).Aggregate(context.Background(), p.input(nil))
	require.ErrorContains(t, err, domain.ErrStylesFailed.Error())
	assert.NoFileExists(t, filepath.Join(p.cfg.DistDir, "styles.css"))
}

func TestStyles_MissingGlobalIsSkipped(t *testing.T) {
	p := newProject(t, "Button")
	p.cfg.Styles.Global = filepath.Join(p.cfg.Root, "src", "globals.css")
	write(t, filepath.Join(p.units[0].ArtifactDir, "index.css"), ".btn{color:red}")

	ctrl := gomock.NewController(t)
	tr := mocks.NewMockStyleTransformer(ctrl)
	tr.EXPECT().Transform(gomock.Any(), ".btn{color:red}\n", gomock.Any()).Return(".btn{color:red}\n", nil)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).Times(1)

	require.NoError(t, aggregate.NewStyles(tr, log).Aggregate(context.Background(), p.input(nil)))

	assert.Equal(t, ".btn{color:red}\n", read(t, filepath.Join(p.cfg.DistDir, "styles.css")))
	assert.Equal(t, ".btn{color:red}\n", read(t, filepath.Join(p.cfg.DistDir, "index.css")))
}
