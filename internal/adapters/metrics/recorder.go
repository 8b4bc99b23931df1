// Package metrics records build statistics with Prometheus collectors.
package metrics

import (
	"os"
	"path/filepath"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

const namespace = "kiln"

var (
	_ ports.Metrics = (*PrometheusRecorder)(nil)
	_ ports.Metrics = NoopRecorder{}
)

// PrometheusRecorder implements ports.Metrics using Prometheus metrics.
type PrometheusRecorder struct {
	registry      *prom.Registry
	stageDuration *prom.HistogramVec
	unitDuration  *prom.HistogramVec
	unitResults   *prom.CounterVec
	changedUnits  prom.Gauge
	buildOutcome  *prom.CounterVec
}

// NewPrometheusRecorder constructs the collectors and registers them on reg.
// A nil reg gets a fresh registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		registry: reg,
		stageDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of individual pipeline stages",
			Buckets:   prom.DefBuckets,
		}, []string{"stage"}),
		unitDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "unit_build_duration_seconds",
			Help:      "Duration of individual unit builds",
			Buckets:   prom.DefBuckets,
		}, []string{"unit", "result"}),
		unitResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "unit_build_results_total",
			Help:      "Unit build results by success/failure",
		}, []string{"result"}),
		changedUnits: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "changed_units",
			Help:      "Number of units selected for rebuild by the last change detection",
		}),
		buildOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "build_outcomes_total",
			Help:      "Build outcomes by final status",
		}, []string{"outcome"}),
	}
	reg.MustRegister(pr.stageDuration, pr.unitDuration, pr.unitResults, pr.changedUnits, pr.buildOutcome)
	return pr
}

// Registry returns the registry the collectors are registered on.
func (p *PrometheusRecorder) Registry() *prom.Registry {
	return p.registry
}

// ObserveStageDuration records the duration of a pipeline stage.
func (p *PrometheusRecorder) ObserveStageDuration(stage domain.Stage, d time.Duration) {
	if p == nil {
		return
	}
	p.stageDuration.WithLabelValues(string(stage)).Observe(d.Seconds())
}

// ObserveUnitBuild records the duration and result of a single unit build.
func (p *PrometheusRecorder) ObserveUnitBuild(unit string, d time.Duration, success bool) {
	if p == nil {
		return
	}
	res := "failed"
	if success {
		res = "success"
	}
	p.unitDuration.WithLabelValues(unit, res).Observe(d.Seconds())
	p.unitResults.WithLabelValues(res).Inc()
}

// SetChangedUnits records the size of the changed set.
func (p *PrometheusRecorder) SetChangedUnits(n int) {
	if p == nil {
		return
	}
	p.changedUnits.Set(float64(n))
}

// IncBuildOutcome counts a finished build by outcome.
func (p *PrometheusRecorder) IncBuildOutcome(outcome domain.Outcome) {
	if p == nil {
		return
	}
	p.buildOutcome.WithLabelValues(string(outcome)).Inc()
}

// WriteTextfile writes the registry in text exposition format, for the node
// exporter's textfile collector. The file is replaced atomically.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	if p == nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrMetricsWriteFailed.Error()), "path", path)
	}
	if err := prom.WriteToTextfile(path, p.registry); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrMetricsWriteFailed.Error()), "path", path)
	}
	return nil
}

// NoopRecorder is a ports.Metrics that does nothing.
type NoopRecorder struct{}

// ObserveStageDuration does nothing.
func (NoopRecorder) ObserveStageDuration(domain.Stage, time.Duration) {}

// ObserveUnitBuild does nothing.
func (NoopRecorder) ObserveUnitBuild(string, time.Duration, bool) {}

// SetChangedUnits does nothing.
func (NoopRecorder) SetChangedUnits(int) {}

// IncBuildOutcome does nothing.
func (NoopRecorder) IncBuildOutcome(domain.Outcome) {}

// WriteTextfile does nothing.
func (NoopRecorder) WriteTextfile(string) error { return nil }
