// Package detector inspects the process environment for CI and terminal output.
package detector

import (
	"os"
	"strings"

	"golang.org/x/term"
)

// Environment describes where kiln is running.
type Environment struct {
	// CI is set when a continuous integration system is detected.
	CI bool
	// TTY is set when stdout is an interactive terminal.
	TTY bool
}

// Interactive reports whether progress output may use colors and live updates.
func (e Environment) Interactive() bool {
	return e.TTY && !e.CI
}

// DetectEnvironment inspects the current process.
func DetectEnvironment() Environment {
	return DetectFrom(os.Getenv, term.IsTerminal(int(os.Stdout.Fd())))
}

// DetectFrom builds an Environment from an env lookup and a terminal check.
func DetectFrom(getenv func(string) string, isTTY bool) Environment {
	return Environment{CI: IsCI(getenv("CI")), TTY: isTTY}
}

// IsCI reports whether a CI variable value enables CI mode.
func IsCI(value string) bool {
	v := strings.ToLower(strings.TrimSpace(value))
	return v == "true" || v == "1"
}
