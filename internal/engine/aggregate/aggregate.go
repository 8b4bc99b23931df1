// Package aggregate produces the library's distributable outputs from every
// unit's artifacts.
package aggregate

import (
	"path/filepath"

	"go.trai.ch/kiln/internal/core/domain"
)

// Input is shared by every aggregator. Aggregators only read artifact
// directories and write disjoint files inside the dist directory.
type Input struct {
	Config *domain.Config
	// Units lists every discovered unit, sorted by name.
	Units []domain.Unit
	// Entries maps the units rebuilt in this run to their resolved entry files.
	Entries map[string]string
}

// Outputs returns the dist paths whose absence forces aggregation.
// The stylesheet is omitted because its failures are not fatal.
func Outputs(cfg *domain.Config) []string {
	return []string{
		filepath.Join(cfg.DistDir, cfg.Bundle.ESM),
		filepath.Join(cfg.DistDir, cfg.Bundle.IIFE),
		filepath.Join(cfg.DistDir, domain.TypesDirName),
	}
}

func artifactEntry(unit domain.Unit) string {
	return filepath.Join(unit.ArtifactDir, domain.UnitEntryName+".js")
}
