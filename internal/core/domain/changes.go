package domain

// ChangeReason explains why a unit was selected for rebuild.
type ChangeReason string

const (
	// ReasonNew marks a unit with no cache entry.
	ReasonNew ChangeReason = "new"
	// ReasonSource marks a unit whose source signature differs from the cache.
	ReasonSource ChangeReason = "source"
	// ReasonShared marks a unit invalidated by a shared-file change.
	ReasonShared ChangeReason = "shared"
	// ReasonArtifact marks a unit whose artifact is missing or was modified.
	ReasonArtifact ChangeReason = "artifact"
	// ReasonForced marks a unit rebuilt because a full rebuild was requested.
	ReasonForced ChangeReason = "forced"
)

// ChangeSet is the result of comparing the current state against the cache.
type ChangeSet struct {
	// Changed lists the names of units to rebuild, sorted.
	Changed []string
	// Pruned lists the names of cached units that no longer exist, sorted.
	Pruned []string
	// SharedChanged is set when any shared file signature differs.
	SharedChanged bool
	// Reasons maps each changed unit to why it was selected.
	Reasons map[string]ChangeReason
	// Current holds the freshly computed fingerprint of every discovered unit.
	Current map[string]UnitFingerprint
	// Shared holds the freshly computed shared fingerprint.
	Shared SharedFingerprint
}

// IsEmpty reports whether nothing needs to be rebuilt or pruned.
func (c ChangeSet) IsEmpty() bool {
	return len(c.Changed) == 0 && len(c.Pruned) == 0
}
