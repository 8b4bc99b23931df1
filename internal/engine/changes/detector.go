// Package changes decides which units must be rebuilt.
package changes

import (
	"fmt"
	"slices"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
)

// Options controls a single detection pass.
type Options struct {
	// Force selects every discovered unit for rebuild.
	Force       bool
	Scan        domain.ScanOptions
	SharedFiles []string
}

// Detector compares current unit signatures against the build cache.
type Detector struct {
	fingerprinter ports.Fingerprinter
	logger        ports.Logger
}

// NewDetector creates a new Detector.
func NewDetector(fingerprinter ports.Fingerprinter, logger ports.Logger) *Detector {
	return &Detector{fingerprinter: fingerprinter, logger: logger}
}

// Detect returns the minimal set of units to rebuild. Cached units that were
// not discovered are removed from cache.Units and reported as pruned.
func (d *Detector) Detect(units []domain.Unit, cache *domain.BuildCache, opts Options) domain.ChangeSet {
	cs := domain.ChangeSet{
		Reasons: make(map[string]domain.ChangeReason),
		Current: make(map[string]domain.UnitFingerprint, len(units)),
		Shared:  d.fingerprinter.SharedFingerprint(opts.SharedFiles, opts.Scan.Strategy),
	}

	for _, unit := range units {
		cs.Current[unit.Name] = d.fingerprinter.UnitFingerprint(unit, opts.Scan)
	}

	// A first build has nothing to invalidate; every unit is new.
	cs.SharedChanged = !cache.IsEmpty() && !cs.Shared.Equal(cache.Shared)
	cs.Pruned = prune(units, cache)

	switch {
	case opts.Force:
		markAll(&cs, units, domain.ReasonForced)
	case cs.SharedChanged:
		markAll(&cs, units, domain.ReasonShared)
	default:
		for _, unit := range units {
			if reason, changed := d.compare(unit, cs.Current[unit.Name], cache); changed {
				cs.Changed = append(cs.Changed, unit.Name)
				cs.Reasons[unit.Name] = reason
			}
		}
	}

	slices.Sort(cs.Changed)
	return cs
}

func (d *Detector) compare(unit domain.Unit, current domain.UnitFingerprint, cache *domain.BuildCache) (domain.ChangeReason, bool) {
	cached, ok := cache.Units[unit.Name]
	if !ok {
		return domain.ReasonNew, true
	}
	if current.SourceSignature.IsUnreadable() || cached.SourceSignature != current.SourceSignature {
		return domain.ReasonSource, true
	}
	if cached.ArtifactPath != unit.ArtifactDir || cached.ArtifactSignature == "" {
		return domain.ReasonArtifact, true
	}

	sig, err := d.fingerprinter.ArtifactSignature(unit.ArtifactDir)
	if err != nil {
		d.logger.Warn(fmt.Sprintf("unit %s: artifact unavailable: %v", unit.Name, err))
		return domain.ReasonArtifact, true
	}
	if sig != cached.ArtifactSignature {
		return domain.ReasonArtifact, true
	}
	return "", false
}

func markAll(cs *domain.ChangeSet, units []domain.Unit, reason domain.ChangeReason) {
	cs.Changed = make([]string, 0, len(units))
	for _, unit := range units {
		cs.Changed = append(cs.Changed, unit.Name)
		cs.Reasons[unit.Name] = reason
	}
}

func prune(units []domain.Unit, cache *domain.BuildCache) []string {
	present := make(map[string]struct{}, len(units))
	for _, unit := range units {
		present[unit.Name] = struct{}{}
	}

	var pruned []string
	for name := range cache.Units {
		if _, ok := present[name]; !ok {
			pruned = append(pruned, name)
		}
	}
	slices.Sort(pruned)
	for _, name := range pruned {
		delete(cache.Units, name)
	}
	return pruned
}
