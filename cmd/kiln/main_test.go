package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/kiln/internal/adapters/config"
	"go.trai.ch/kiln/internal/app"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

// TestRun_Success verifies that the run function returns 0 when the command succeeds.
func TestRun_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)

	provider := func(_ context.Context) (*app.Components, func(), error) {
		return &app.Components{
			App:    app.New(app.Deps{Logger: mockLogger}),
			Logger: mockLogger,
		}, func() {}, nil
	}

	stdout := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stdout, new(bytes.Buffer), provider)
	assert.Equal(t, 0, exitCode)
	assert.Contains(t, stdout.String(), "kiln version")
}

// TestRun_ProviderError verifies that initialization failures are printed to stderr.
func TestRun_ProviderError(t *testing.T) {
	provider := func(_ context.Context) (*app.Components, func(), error) {
		return nil, nil, errors.New("graph broken")
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"build"}, new(bytes.Buffer), stderr, provider)
	assert.Equal(t, 1, exitCode)
	assert.Equal(t, "Error: graph broken\n", stderr.String())
}

// TestRun_CommandError verifies that command errors are logged and exit with 1.
func TestRun_CommandError(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	dir := t.TempDir()
	// A malformed config makes the build fail before any unit is touched.
	assert.NoError(t, os.WriteFile(filepath.Join(dir, domain.ConfigFileName), []byte("unitsDir: ["), domain.PrivateFilePerm))

	provider := func(_ context.Context) (*app.Components, func(), error) {
		return &app.Components{
			App: app.New(app.Deps{
				ConfigLoader: config.NewLoader(mockLogger),
				Logger:       mockLogger,
				Reporter:     mocks.NewMockReporter(ctrl),
				Metrics:      mocks.NewMockMetrics(ctrl),
			}),
			Logger: mockLogger,
		}, func() {}, nil
	}
	mockLogger.EXPECT().Error(gomock.Any()).Times(1)

	exitCode := run(context.Background(), []string{"status", "-C", dir}, new(bytes.Buffer), new(bytes.Buffer), provider)
	assert.Equal(t, 1, exitCode)
}
