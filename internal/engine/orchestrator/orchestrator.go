// Package orchestrator rebuilds the changed units and regenerates the
// library outputs.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/kiln/internal/engine/aggregate"
	"go.trai.ch/kiln/internal/engine/builder"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// UnitBuilder compiles a single unit.
type UnitBuilder interface {
	Build(ctx context.Context, unit domain.Unit, modules domain.ModuleMap) (builder.Result, error)
}

// Aggregator produces one distributable from every unit's artifacts.
type Aggregator interface {
	Aggregate(ctx context.Context, in aggregate.Input) error
}

// Aggregators groups the three library aggregators.
type Aggregators struct {
	Bundle       Aggregator
	Declarations Aggregator
	Styles       Aggregator
}

// Observers receive progress from a run.
type Observers struct {
	Logger   ports.Logger
	Reporter ports.Reporter
	Metrics  ports.Metrics
	Tracer   ports.Tracer
}

// Plan is the input of a run. Cache is owned by the orchestrator for the
// duration of Run and is only written from the calling goroutine.
type Plan struct {
	Config  *domain.Config
	Units   []domain.Unit
	Cache   *domain.BuildCache
	Changes domain.ChangeSet
}

// Orchestrator runs the build batch, aggregation and cache persistence.
type Orchestrator struct {
	builder     UnitBuilder
	aggregators Aggregators
	store       ports.CacheStore
	obs         Observers
}

// New creates a new Orchestrator.
func New(b UnitBuilder, aggregators Aggregators, store ports.CacheStore, obs Observers) *Orchestrator {
	return &Orchestrator{builder: b, aggregators: aggregators, store: store, obs: obs}
}

type unitResult struct {
	result builder.Result
	err    error
}

// Run rebuilds plan.Changes.Changed, then regenerates every distributable and
// saves the cache. Any unit failure aborts the run before aggregation and
// leaves the stored cache untouched.
func (o *Orchestrator) Run(ctx context.Context, plan Plan) error {
	ctx, span := o.obs.Tracer.Start(ctx, "build")
	defer span.End()
	o.obs.Tracer.EmitPlan(ctx, plan.Changes.Changed)

	results, err := o.buildBatch(ctx, plan)
	if err != nil {
		span.RecordError(err)
		return err
	}

	o.record(plan, results)
	o.prune(plan)

	if err := o.aggregate(ctx, plan, results); err != nil {
		span.RecordError(err)
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	start := time.Now()
	err = o.store.Save(plan.Config.CacheFile, plan.Cache)
	o.stageDone(domain.StageSave, time.Since(start), err)
	if err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}

// buildBatch builds every changed unit on a bounded pool. Failing units do
// not stop their siblings; all failures are reported together.
func (o *Orchestrator) buildBatch(ctx context.Context, plan Plan) (map[string]builder.Result, error) {
	byName := make(map[string]domain.Unit, len(plan.Units))
	for _, unit := range plan.Units {
		byName[unit.Name] = unit
	}
	modules := plan.Config.ModuleMap(plan.Units)
	changed := plan.Changes.Changed
	results := make([]unitResult, len(changed))

	start := time.Now()
	var g errgroup.Group
	g.SetLimit(max(plan.Config.Parallelism, 1))
	for i, name := range changed {
		unit, ok := byName[name]
		if !ok {
			results[i].err = zerr.With(errors.New("unit not discovered"), "unit", name)
			continue
		}
		g.Go(func() error {
			results[i] = o.buildUnit(ctx, unit, modules, plan.Config.UnitTimeout)
			return nil
		})
	}
	_ = g.Wait()

	var errs []error
	built := make(map[string]builder.Result, len(changed))
	for i, name := range changed {
		if results[i].err != nil {
			errs = append(errs, results[i].err)
			continue
		}
		built[name] = results[i].result
	}

	var err error
	if len(errs) > 0 {
		err = errors.Join(append([]error{domain.ErrBuildBatchFailed}, errs...)...)
	}
	o.stageDone(domain.StageUnits, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return built, nil
}

func (o *Orchestrator) buildUnit(
	ctx context.Context,
	unit domain.Unit,
	modules domain.ModuleMap,
	timeout time.Duration,
) unitResult {
	ctx, span := o.obs.Tracer.Start(ctx, "unit")
	defer span.End()
	span.SetAttribute("unit", unit.Name)

	unitCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		unitCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	start := time.Now()
	res, err := o.builder.Build(unitCtx, unit, modules)
	elapsed := time.Since(start)

	if err != nil {
		if ctx.Err() == nil && errors.Is(unitCtx.Err(), context.DeadlineExceeded) {
			err = zerr.With(zerr.Wrap(err, domain.ErrUnitTimeout.Error()), "timeout", timeout.String())
		}
		err = zerr.With(err, "unit", unit.Name)
		span.RecordError(err)
	}

	o.obs.Metrics.ObserveUnitBuild(unit.Name, elapsed, err == nil)
	o.obs.Reporter.UnitBuilt(unit.Name, elapsed, err)
	return unitResult{result: res, err: err}
}

// record writes the fingerprints of the rebuilt units into the cache.
func (o *Orchestrator) record(plan Plan, built map[string]builder.Result) {
	for name, res := range built {
		fp := plan.Changes.Current[name]
		fp.ArtifactSignature = res.ArtifactSignature
		plan.Cache.Units[name] = fp
	}
	plan.Cache.Shared = plan.Changes.Shared
}

// prune removes the artifact directories of units that no longer exist.
func (o *Orchestrator) prune(plan Plan) {
	for _, name := range plan.Changes.Pruned {
		dir := filepath.Join(plan.Config.ArtifactsDir, name)
		if err := os.RemoveAll(dir); err != nil {
			o.obs.Logger.Warn(fmt.Sprintf("unit %s: failed to remove artifacts: %v", name, err))
			continue
		}
		o.obs.Logger.Info(fmt.Sprintf("pruned unit %s", name))
	}
}

// aggregate runs the three aggregators concurrently. A stylesheet failure is
// downgraded to a warning.
func (o *Orchestrator) aggregate(ctx context.Context, plan Plan, built map[string]builder.Result) error {
	entries := make(map[string]string, len(built))
	for name, res := range built {
		entries[name] = res.Entry
	}
	in := aggregate.Input{Config: plan.Config, Units: plan.Units, Entries: entries}

	g, ctx := errgroup.WithContext(ctx)
	run := func(stage domain.Stage, agg Aggregator, fatal bool) {
		g.Go(func() error {
			stageCtx, span := o.obs.Tracer.Start(ctx, string(stage))
			defer span.End()

			start := time.Now()
			err := agg.Aggregate(stageCtx, in)
			d := time.Since(start)

			if err == nil {
				o.stageDone(stage, d, nil)
				return nil
			}
			span.RecordError(err)
			if !fatal && ctx.Err() == nil {
				o.obs.Metrics.ObserveStageDuration(stage, d)
				o.obs.Reporter.StageDegraded(stage, d, err)
				o.obs.Logger.Warn(fmt.Sprintf("%s: %v", stage, err))
				return nil
			}
			o.stageDone(stage, d, err)
			return err
		})
	}

	run(domain.StageBundle, o.aggregators.Bundle, true)
	run(domain.StageDeclarations, o.aggregators.Declarations, true)
	run(domain.StageStyles, o.aggregators.Styles, false)
	return g.Wait()
}

func (o *Orchestrator) stageDone(stage domain.Stage, d time.Duration, err error) {
	o.obs.Metrics.ObserveStageDuration(stage, d)
	o.obs.Reporter.StageDone(stage, d, err)
}
