package ports

import (
	"time"

	"go.trai.ch/kiln/internal/core/domain"
)

// Metrics records build statistics.
//
//go:generate go run go.uber.org/mock/mockgen -source=metrics.go -destination=mocks/mock_metrics.go -package=mocks
type Metrics interface {
	ObserveStageDuration(stage domain.Stage, d time.Duration)
	ObserveUnitBuild(unit string, d time.Duration, success bool)
	SetChangedUnits(n int)
	IncBuildOutcome(outcome domain.Outcome)
	// WriteTextfile writes the current metrics in text exposition format.
	WriteTextfile(path string) error
}
