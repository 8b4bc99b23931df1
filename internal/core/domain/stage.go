package domain

// Stage names a pipeline stage for reporting, metrics and tracing.
type Stage string

// Pipeline stages in execution order.
const (
	StageDiscover     Stage = "discover"
	StageDetect       Stage = "detect"
	StageUnits        Stage = "units"
	StageBundle       Stage = "bundle"
	StageDeclarations Stage = "declarations"
	StageStyles       Stage = "styles"
	StageSave         Stage = "save"
)

// Outcome labels the final status of a build invocation.
type Outcome string

// Build outcomes.
const (
	OutcomeSuccess  Outcome = "success"
	OutcomeUpToDate Outcome = "up_to_date"
	OutcomeFailed   Outcome = "failed"
	OutcomeCanceled Outcome = "canceled"
)
