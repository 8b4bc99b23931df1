// Package app implements the application layer for kiln.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"go.trai.ch/kiln/internal/adapters/detector" //nolint:depguard // Environment detection lives in the app layer
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/kiln/internal/engine/aggregate"
	"go.trai.ch/kiln/internal/engine/changes"
	"go.trai.ch/kiln/internal/engine/orchestrator"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	discoverer   ports.UnitDiscoverer
	store        ports.CacheStore
	verifier     ports.OutputVerifier
	detector     *changes.Detector
	orchestrator *orchestrator.Orchestrator
	logger       ports.Logger
	reporter     ports.Reporter
	metrics      ports.Metrics
	tracer       ports.Tracer
	newWatcher   ports.WatcherFactory
	environment  func() detector.Environment
}

// Deps groups the collaborators of App.
type Deps struct {
	ConfigLoader ports.ConfigLoader
	Discoverer   ports.UnitDiscoverer
	Store        ports.CacheStore
	Verifier     ports.OutputVerifier
	Detector     *changes.Detector
	Orchestrator *orchestrator.Orchestrator
	Logger       ports.Logger
	Reporter     ports.Reporter
	Metrics      ports.Metrics
	Tracer       ports.Tracer
	NewWatcher   ports.WatcherFactory
}

// New creates a new App instance.
func New(deps Deps) *App {
	return &App{
		configLoader: deps.ConfigLoader,
		discoverer:   deps.Discoverer,
		store:        deps.Store,
		verifier:     deps.Verifier,
		detector:     deps.Detector,
		orchestrator: deps.Orchestrator,
		logger:       deps.Logger,
		reporter:     deps.Reporter,
		metrics:      deps.Metrics,
		tracer:       deps.Tracer,
		newWatcher:   deps.NewWatcher,
		environment:  detector.DetectEnvironment,
	}
}

// WithEnvironment replaces environment detection.
// This is primarily used for testing CI behavior.
func (a *App) WithEnvironment(env detector.Environment) *App {
	a.environment = func() detector.Environment { return env }
	return a
}

// ProjectOptions locate the project configuration.
type ProjectOptions struct {
	// Dir is the project root. Empty means the working directory.
	Dir string
	// ConfigPath is the configuration file, relative to Dir unless absolute.
	ConfigPath string
}

// BuildOptions configuration for the Build method.
type BuildOptions struct {
	ProjectOptions
	// Force rebuilds every unit.
	Force bool
	// Parallelism overrides the configured worker count when positive.
	Parallelism int
	// UnitTimeout overrides the configured per-unit timeout when set.
	UnitTimeout *time.Duration
	// MetricsFile receives the metrics in text format after the build.
	MetricsFile string
}

// Build runs one incremental build.
func (a *App) Build(ctx context.Context, opts BuildOptions) error {
	start := time.Now()

	err := a.build(ctx, opts)

	a.metrics.IncBuildOutcome(outcomeOf(err))
	if opts.MetricsFile != "" {
		if werr := a.metrics.WriteTextfile(opts.MetricsFile); werr != nil {
			a.logger.Warn(fmt.Sprintf("metrics: %v", werr))
		}
	}

	if errors.Is(err, errUpToDate) {
		return nil
	}
	a.reporter.Finished(time.Since(start), err)
	return err
}

// errUpToDate signals a run that had nothing to do.
var errUpToDate = errors.New("up to date")

func (a *App) build(ctx context.Context, opts BuildOptions) error {
	cfg, err := a.loadConfig(opts.ProjectOptions)
	if err != nil {
		return err
	}
	if opts.Parallelism > 0 {
		cfg.Parallelism = opts.Parallelism
	}
	if opts.UnitTimeout != nil {
		cfg.UnitTimeout = *opts.UnitTimeout
	}

	force := opts.Force
	if env := a.environment(); env.CI {
		a.logger.Info(fmt.Sprintf("CI environment detected, full rebuild %s", onOff(cfg.CIFullRebuild)))
		force = force || cfg.CIFullRebuild
	}

	plan, err := a.plan(ctx, cfg, force)
	if err != nil {
		return err
	}

	if len(plan.Changes.Changed) == 0 {
		missing, ok, err := a.verifier.VerifyOutputs(aggregate.Outputs(cfg))
		if err != nil {
			return err
		}
		if ok && len(plan.Changes.Pruned) == 0 {
			a.reporter.UpToDate(plan.Cache.Timestamp)
			return errUpToDate
		}
		if !ok {
			a.logger.Info(fmt.Sprintf("output %s is missing, regenerating", missing))
		}
	}

	if err := a.orchestrator.Run(ctx, plan); err != nil {
		if errors.Is(err, domain.ErrBuildBatchFailed) {
			return err
		}
		return zerr.Wrap(err, "build failed")
	}
	return nil
}

// plan discovers the units, loads the cache and detects changes.
func (a *App) plan(ctx context.Context, cfg *domain.Config, force bool) (orchestrator.Plan, error) {
	ctx, span := a.tracer.Start(ctx, string(domain.StageDiscover))
	start := time.Now()
	units, err := a.discoverer.Discover(cfg)
	if err == nil && len(units) == 0 {
		err = zerr.With(domain.ErrNoUnitsDiscovered, "path", cfg.UnitsDir)
	}
	a.metrics.ObserveStageDuration(domain.StageDiscover, time.Since(start))
	if err != nil {
		span.RecordError(err)
		span.End()
		return orchestrator.Plan{}, err
	}
	span.End()
	a.reporter.Discovered(len(units))

	_, span = a.tracer.Start(ctx, string(domain.StageDetect))
	defer span.End()
	start = time.Now()
	cache := a.store.Load(cfg.CacheFile)
	cs := a.detector.Detect(units, cache, changes.Options{
		Force:       force,
		Scan:        cfg.Scan,
		SharedFiles: cfg.SharedFiles,
	})
	a.metrics.ObserveStageDuration(domain.StageDetect, time.Since(start))
	a.metrics.SetChangedUnits(len(cs.Changed))
	span.SetAttribute("changed", len(cs.Changed))
	span.SetAttribute("pruned", len(cs.Pruned))
	a.reporter.Changes(cs)

	return orchestrator.Plan{Config: cfg, Units: units, Cache: cache, Changes: cs}, nil
}

// Status reports what the next build would do without building anything.
func (a *App) Status(ctx context.Context, opts ProjectOptions) (domain.ChangeSet, error) {
	cfg, err := a.loadConfig(opts)
	if err != nil {
		return domain.ChangeSet{}, err
	}
	plan, err := a.plan(ctx, cfg, false)
	if err != nil {
		return domain.ChangeSet{}, err
	}
	if plan.Changes.IsEmpty() {
		a.reporter.UpToDate(plan.Cache.Timestamp)
	}
	return plan.Changes, nil
}

// CleanOptions configuration for the Clean method.
type CleanOptions struct {
	ProjectOptions
	// Dist also removes the distributable outputs.
	Dist bool
}

// Clean removes the build cache and unit artifacts.
func (a *App) Clean(_ context.Context, opts CleanOptions) error {
	cfg, err := a.loadConfig(opts.ProjectOptions)
	if err != nil {
		return err
	}

	var errs error
	remove := func(path string, name string) {
		a.logger.Info(fmt.Sprintf("removing %s...", name))
		if err := os.RemoveAll(path); err != nil {
			errs = errors.Join(errs, zerr.With(zerr.Wrap(err, fmt.Sprintf("failed to remove %s", name)), "path", path))
			return
		}
		a.logger.Info(fmt.Sprintf("removed %s", name))
	}

	remove(cfg.CacheFile, "build cache")
	remove(cfg.ArtifactsDir, "unit artifacts")
	if opts.Dist {
		remove(cfg.DistDir, "dist directory")
	}
	return errs
}

func (a *App) loadConfig(opts ProjectOptions) (*domain.Config, error) {
	dir := opts.Dir
	if dir == "" {
		dir = "."
	}
	cfg, err := a.configLoader.Load(dir, opts.ConfigPath)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}
	return cfg, nil
}

func outcomeOf(err error) domain.Outcome {
	switch {
	case err == nil:
		return domain.OutcomeSuccess
	case errors.Is(err, errUpToDate):
		return domain.OutcomeUpToDate
	case errors.Is(err, context.Canceled):
		return domain.OutcomeCanceled
	default:
		return domain.OutcomeFailed
	}
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
