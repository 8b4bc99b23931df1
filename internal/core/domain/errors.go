package domain

import "go.trai.ch/zerr"

var (
	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrConfigInvalid is returned when the loaded configuration fails validation.
	ErrConfigInvalid = zerr.New("invalid configuration")

	// ErrInvalidSignatureStrategy is returned when the signature strategy is unknown.
	ErrInvalidSignatureStrategy = zerr.New("invalid signature strategy, expected 'content' or 'mtime'")

	// ErrUnitsDirNotFound is returned when the units root directory does not exist.
	ErrUnitsDirNotFound = zerr.New("units directory not found")

	// ErrNoUnitsDiscovered is returned when the units root contains no buildable units.
	ErrNoUnitsDiscovered = zerr.New("no units discovered")

	// ErrMissingEntryPoint is returned when none of a unit's entry candidates exist.
	ErrMissingEntryPoint = zerr.New("missing entry point")

	// ErrUnitCompileFailed is returned when the compiler reports errors for a unit.
	ErrUnitCompileFailed = zerr.New("unit compilation failed")

	// ErrUnitTimeout is returned when a unit build exceeds the configured timeout.
	ErrUnitTimeout = zerr.New("unit build timed out")

	// ErrBuildBatchFailed is returned when at least one unit in a batch failed to build.
	ErrBuildBatchFailed = zerr.New("build batch failed")

	// ErrBundleFailed is returned when the library bundle cannot be produced.
	ErrBundleFailed = zerr.New("bundle aggregation failed")

	// ErrDeclarationsFailed is returned when the declarations artifact cannot be written.
	ErrDeclarationsFailed = zerr.New("declarations aggregation failed")

	// ErrStylesFailed is returned when the stylesheet artifact cannot be produced.
	ErrStylesFailed = zerr.New("stylesheet aggregation failed")

	// ErrStyleTransformFailed is returned when the CSS pipeline rejects its input.
	ErrStyleTransformFailed = zerr.New("stylesheet transform failed")

	// ErrCommandFailed is returned when an external command exits unsuccessfully.
	ErrCommandFailed = zerr.New("command failed")

	// ErrEmptyCommand is returned when an external command has no program.
	ErrEmptyCommand = zerr.New("empty command")

	// ErrCacheWriteFailed is returned when the build cache cannot be persisted.
	ErrCacheWriteFailed = zerr.New("failed to write build cache")

	// ErrCacheMarshalFailed is returned when the build cache cannot be marshaled.
	ErrCacheMarshalFailed = zerr.New("failed to marshal build cache")

	// ErrFileOpenFailed is returned when a file cannot be opened.
	ErrFileOpenFailed = zerr.New("failed to open file")

	// ErrFileHashFailed is returned when hashing a file fails.
	ErrFileHashFailed = zerr.New("failed to hash file content")

	// ErrPathStatFailed is returned when stating a path fails.
	ErrPathStatFailed = zerr.New("failed to stat path")

	// ErrWalkFailed is returned when a directory cannot be walked.
	ErrWalkFailed = zerr.New("failed to walk directory")

	// ErrArtifactWriteFailed is returned when a build output cannot be written.
	ErrArtifactWriteFailed = zerr.New("failed to write artifact")

	// ErrMetricsWriteFailed is returned when the metrics textfile cannot be written.
	ErrMetricsWriteFailed = zerr.New("failed to write metrics file")

	// ErrWatcherFailed is returned when the file watcher cannot be started.
	ErrWatcherFailed = zerr.New("failed to start file watcher")
)
