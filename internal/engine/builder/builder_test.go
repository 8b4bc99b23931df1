package builder_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports/mocks"
	"go.trai.ch/kiln/internal/engine/builder"
	"go.uber.org/mock/gomock"
)

func newUnit(t *testing.T, entries ...string) domain.Unit {
	t.Helper()
	root := t.TempDir()
	src := filepath.Join(root, "src", "Button")
	require.NoError(t, os.MkdirAll(src, domain.DirPerm))
	for _, e := range entries {
		require.NoError(t, os.WriteFile(filepath.Join(src, e), []byte("export {}"), domain.PrivateFilePerm))
	}
	return domain.Unit{
		Name:      "Button",
		SourceDir: src,
		EntryCandidates: []string{
			filepath.Join(src, "index.tsx"),
			filepath.Join(src, "index.ts"),
			filepath.Join(src, "Button.tsx"),
		},
		ArtifactDir: filepath.Join(root, ".kiln", "units", "Button"),
		ModulePath:  "@/components/Button",
	}
}

func TestResolveEntry(t *testing.T) {
	tests := []struct {
		name    string
		files   []string
		want    string
		wantErr bool
	}{
		{name: "first candidate wins", files: []string{"index.ts", "index.tsx"}, want: "index.tsx"},
		{name: "falls through", files: []string{"Button.tsx"}, want: "Button.tsx"},
		{name: "none", files: []string{"other.tsx"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unit := newUnit(t, tt.files...)

			entry, err := builder.ResolveEntry(unit)
			if tt.wantErr {
				require.ErrorContains(t, err, domain.ErrMissingEntryPoint.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(unit.SourceDir, tt.want), entry)
		})
	}
}

func TestBuild_WipesArtifactDirAndCompiles(t *testing.T) {
	ctrl := gomock.NewController(t)
	compiler := mocks.NewMockCompiler(ctrl)
	fp := mocks.NewMockFingerprinter(ctrl)
	unit := newUnit(t, "index.tsx")

	stale := filepath.Join(unit.ArtifactDir, "stale.js")
	require.NoError(t, os.MkdirAll(unit.ArtifactDir, domain.DirPerm))
	require.NoError(t, os.WriteFile(stale, []byte("old"), domain.PrivateFilePerm))

	modules := domain.ModuleMap{UnitPrefix: "@/components"}
	compiler.EXPECT().CompileUnit(gomock.Any(), domain.UnitCompileRequest{
		Unit:    unit,
		Entry:   filepath.Join(unit.SourceDir, "index.tsx"),
		Modules: modules,
	}).DoAndReturn(func(_ context.Context, req domain.UnitCompileRequest) (domain.UnitCompileResult, error) {
		assert.NoFileExists(t, stale, "artifact dir must be wiped before compiling")
		assert.DirExists(t, req.Unit.ArtifactDir)
		return domain.UnitCompileResult{
			Outputs:   []string{filepath.Join(req.Unit.ArtifactDir, "index.js")},
			Externals: []string{"react"},
		}, nil
	})
	fp.EXPECT().ArtifactSignature(unit.ArtifactDir).Return(domain.Signature("xxh64:01"), nil)

	res, err := builder.New(compiler, fp).Build(context.Background(), unit, modules)
	require.NoError(t, err)

	assert.Equal(t, domain.Signature("xxh64:01"), res.ArtifactSignature)
	assert.Equal(t, []string{"react"}, res.Externals)
	assert.Equal(t, filepath.Join(unit.SourceDir, "index.tsx"), res.Entry)
}

func TestBuild_Errors(t *testing.T) {
	t.Run("missing entry never touches the artifact dir", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		unit := newUnit(t)

		_, err := builder.New(mocks.NewMockCompiler(ctrl), mocks.NewMockFingerprinter(ctrl)).
			Build(context.Background(), unit, domain.ModuleMap{})

		require.ErrorContains(t, err, domain.ErrMissingEntryPoint.Error())
		assert.NoDirExists(t, unit.ArtifactDir)
	})

	t.Run("compile failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		compiler := mocks.NewMockCompiler(ctrl)
		unit := newUnit(t, "index.tsx")
		compiler.EXPECT().CompileUnit(gomock.Any(), gomock.Any()).
			Return(domain.UnitCompileResult{}, domain.ErrUnitCompileFailed)

		_, err := builder.New(compiler, mocks.NewMockFingerprinter(ctrl)).
			Build(context.Background(), unit, domain.ModuleMap{})

		require.ErrorIs(t, err, domain.ErrUnitCompileFailed)
	})

	t.Run("canceled", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		unit := newUnit(t, "index.tsx")
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := builder.New(mocks.NewMockCompiler(ctrl), mocks.NewMockFingerprinter(ctrl)).
			Build(ctx, unit, domain.ModuleMap{})

		require.True(t, errors.Is(err, context.Canceled))
	})
}
