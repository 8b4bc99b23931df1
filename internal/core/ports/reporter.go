package ports

import (
	"time"

	"go.trai.ch/kiln/internal/core/domain"
)

// Reporter prints the progress of a build for humans.
//
//go:generate go run go.uber.org/mock/mockgen -source=reporter.go -destination=mocks/mock_reporter.go -package=mocks
type Reporter interface {
	// Discovered reports how many units were found.
	Discovered(n int)
	// Changes reports the outcome of change detection.
	Changes(cs domain.ChangeSet)
	// UpToDate reports a no-op run and when the last build happened.
	UpToDate(last time.Time)
	// UnitBuilt reports the completion of a single unit.
	UnitBuilt(name string, d time.Duration, err error)
	// StageDone reports the completion of a pipeline stage.
	StageDone(stage domain.Stage, d time.Duration, err error)
	// StageDegraded reports a stage whose failure does not fail the build.
	StageDegraded(stage domain.Stage, d time.Duration, err error)
	// Finished reports the end of a run.
	Finished(elapsed time.Duration, err error)
}
