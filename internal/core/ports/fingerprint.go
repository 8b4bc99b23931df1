package ports

import "go.trai.ch/kiln/internal/core/domain"

// Fingerprinter computes signatures of unit sources, shared files and artifacts.
//
//go:generate go run go.uber.org/mock/mockgen -source=fingerprint.go -destination=mocks/mock_fingerprint.go -package=mocks
type Fingerprinter interface {
	// UnitFingerprint scans the unit's source directory. Scan failures are
	// reported through an unreadable SourceSignature rather than an error.
	UnitFingerprint(unit domain.Unit, opts domain.ScanOptions) domain.UnitFingerprint

	// SharedFingerprint computes a signature for every shared file.
	SharedFingerprint(paths []string, strategy domain.SignatureStrategy) domain.SharedFingerprint

	// ArtifactSignature digests the contents of an artifact directory.
	ArtifactSignature(dir string) (domain.Signature, error)
}
