package app

import (
	"cmp"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go.trai.ch/kiln/internal/adapters/watcher" //nolint:depguard // Debouncing lives in the app layer
	"go.trai.ch/kiln/internal/core/domain"
)

// WatchOptions configuration for the Watch method.
type WatchOptions struct {
	BuildOptions
	// Debounce is the quiet period before a rebuild. Zero selects the default.
	Debounce time.Duration
}

// Watch builds once, then rebuilds whenever a watched source changes until
// ctx is cancelled. Build failures are reported and do not end the session.
func (a *App) Watch(ctx context.Context, opts WatchOptions) error {
	cfg, err := a.loadConfig(opts.ProjectOptions)
	if err != nil {
		return err
	}

	w, err := a.newWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = w.Stop() }()

	if err := w.Start(ctx, watchRoots(cfg, opts.ProjectOptions)...); err != nil {
		return err
	}

	a.rebuild(ctx, opts.BuildOptions)
	// Only the first iteration honors --force.
	opts.Force = false

	window := opts.Debounce
	if window <= 0 {
		window = watcher.DefaultDebounceWindow
	}
	trigger := make(chan []string, 1)
	debouncer := watcher.NewDebouncer(window, func(paths []string) {
		select {
		case trigger <- paths:
		default:
			// A rebuild is already pending and will observe these changes.
		}
	})

	go func() {
		for event := range w.Events() {
			if isOutput(cfg, event.Path) {
				continue
			}
			debouncer.Add(event.Path)
		}
	}()

	a.logger.Info("watching for changes")
	for {
		select {
		case <-ctx.Done():
			return nil
		case paths := <-trigger:
			a.logger.Info(fmt.Sprintf("%d file(s) changed, rebuilding", len(paths)))
			a.rebuild(ctx, opts.BuildOptions)
		}
	}
}

func (a *App) rebuild(ctx context.Context, opts BuildOptions) {
	if err := a.Build(ctx, opts); err != nil && ctx.Err() == nil {
		a.logger.Error(err)
	}
}

// watchRoots lists the paths whose changes can affect the build.
func watchRoots(cfg *domain.Config, project ProjectOptions) []string {
	roots := []string{cfg.UnitsDir}
	roots = append(roots, cfg.SharedFiles...)
	if cfg.Styles.Global != "" {
		roots = append(roots, cfg.Styles.Global)
	}

	configPath := project.ConfigPath
	if configPath == "" {
		configPath = domain.ConfigFileName
	}
	if !filepath.IsAbs(configPath) {
		dir, err := filepath.Abs(cmp.Or(project.Dir, "."))
		if err != nil {
			return roots
		}
		configPath = filepath.Join(dir, configPath)
	}
	return append(roots, configPath)
}

// isOutput reports whether path lies inside a directory kiln writes to.
func isOutput(cfg *domain.Config, path string) bool {
	if path == cfg.CacheFile || strings.HasPrefix(path, cfg.CacheFile+".") {
		return true
	}
	for _, dir := range []string{cfg.ArtifactsDir, cfg.DistDir} {
		if path == dir || strings.HasPrefix(path, dir+string(filepath.Separator)) {
			return true
		}
	}
	return false
}
