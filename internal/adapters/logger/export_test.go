// export_test.go exports private functions for white-box testing.
package logger

// ErrorEntry exposes errorEntry fields to the external test package.
type ErrorEntry = errorEntry

// Message returns the entry's message.
func (e errorEntry) Message() string { return e.message }

// Metadata returns the entry's metadata.
func (e errorEntry) Metadata() map[string]any { return e.metadata }

var (
	CollectErrorEntries = collectErrorEntries
	FormatErrorEntries  = formatErrorEntries
)
