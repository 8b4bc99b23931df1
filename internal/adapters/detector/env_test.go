package detector_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/kiln/internal/adapters/detector"
)

func TestDetectFrom(t *testing.T) {
	tests := []struct {
		name            string
		ciValue         string
		tty             bool
		wantCI          bool
		wantInteractive bool
	}{
		{name: "CI=true", ciValue: "true", tty: true, wantCI: true},
		{name: "CI=1", ciValue: "1", tty: true, wantCI: true},
		{name: "CI=TRUE", ciValue: "TRUE", wantCI: true},
		{name: "CI=false on a terminal", ciValue: "false", tty: true, wantInteractive: true},
		{name: "no CI, no terminal", ciValue: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := detector.DetectFrom(func(key string) string {
				if key == "CI" {
					return tt.ciValue
				}
				return ""
			}, tt.tty)

			assert.Equal(t, tt.wantCI, env.CI)
			assert.Equal(t, tt.wantInteractive, env.Interactive())
		})
	}
}

func TestDetectEnvironment_ReadsProcessCI(t *testing.T) {
	t.Setenv("CI", "1")
	assert.True(t, detector.DetectEnvironment().CI)
}
