package domain

import (
	"strings"
)

// Signature is an opaque, comparable summary of a file's or directory's state.
type Signature string

// SignatureStrategy selects how file signatures are computed.
type SignatureStrategy string

const (
	// StrategyContent hashes file contents.
	StrategyContent SignatureStrategy = "content"
	// StrategyMtime uses modification timestamps.
	StrategyMtime SignatureStrategy = "mtime"
)

const (
	// SignatureAbsent is recorded for shared files that do not exist.
	SignatureAbsent Signature = "absent"

	// ContentPrefix prefixes content-hash signatures.
	ContentPrefix = "xxh64:"
	// MtimePrefix prefixes timestamp signatures.
	MtimePrefix = "mtime:"
	// UnreadablePrefix prefixes the sentinel recorded when scanning failed.
	UnreadablePrefix = "unreadable:"
)

// ParseSignatureStrategy validates a strategy name. The empty string selects content.
func ParseSignatureStrategy(s string) (SignatureStrategy, error) {
	switch SignatureStrategy(strings.ToLower(strings.TrimSpace(s))) {
	case StrategyContent, "":
		return StrategyContent, nil
	case StrategyMtime:
		return StrategyMtime, nil
	default:
		return "", ErrInvalidSignatureStrategy
	}
}

// IsUnreadable reports whether the signature is a scan-failure sentinel.
func (s Signature) IsUnreadable() bool {
	return strings.HasPrefix(string(s), UnreadablePrefix)
}

// String returns the signature as a string.
func (s Signature) String() string {
	return string(s)
}

// ScanOptions controls which files of a unit contribute to its fingerprint.
type ScanOptions struct {
	Strategy SignatureStrategy
	// Extensions lists the file extensions (with dot) that are scanned.
	Extensions []string
	// ExcludeFiles are glob patterns matched against file base names.
	ExcludeFiles []string
	// ExcludeDirs are directory names that are never descended into.
	ExcludeDirs []string
}
