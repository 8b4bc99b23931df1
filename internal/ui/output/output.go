// Package output provides utilities for creating termenv.Output with consistent
// color profile handling across the CLI.
package output

import (
	"io"
	"os"

	"github.com/muesli/termenv"
)

// ColorProfile returns the color profile for the current environment.
// NO_COLOR forces plain output; CI environments get basic ANSI colors;
// otherwise the terminal's capabilities are detected.
func ColorProfile(ci bool) termenv.Profile {
	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	if ci {
		return termenv.ANSI
	}
	return termenv.EnvColorProfile()
}

// New creates a new termenv.Output using the detected profile.
func New(w io.Writer, ci bool) *termenv.Output {
	return NewWithProfile(w, ColorProfile(ci))
}

// NewWithProfile creates a new termenv.Output with a fixed profile.
func NewWithProfile(w io.Writer, profile termenv.Profile) *termenv.Output {
	if w == nil {
		w = os.Stderr
	}
	return termenv.NewOutput(w, termenv.WithProfile(profile), termenv.WithTTY(true))
}
