package shell

import (
	"os"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveEnvironment(t *testing.T) {
	sep := string(os.PathListSeparator)
	tests := []struct {
		name     string
		sysEnv   []string
		tools    []string
		cmdEnv   map[string]string
		expected []string
	}{
		{
			name:     "system only",
			sysEnv:   []string{"USER=test", "PATH=/bin", "HOME=/home/test"},
			expected: []string{"USER=test", "PATH=/bin", "HOME=/home/test"},
		},
		{
			name:     "system filtered",
			sysEnv:   []string{"USER=test", "SSH_AUTH_SOCK=/tmp/ssh", "SECRET=key", "NODE_OPTIONS=--max-old-space-size=4096"},
			expected: []string{"USER=test", "NODE_OPTIONS=--max-old-space-size=4096"},
		},
		{
			name:     "tools prepend PATH",
			sysEnv:   []string{"USER=test", "PATH=/bin"},
			tools:    []string{"PATH=/p/node_modules/.bin"},
			expected: []string{"USER=test", "PATH=/p/node_modules/.bin" + sep + "/bin"},
		},
		{
			name:     "tools PATH without system PATH",
			tools:    []string{"PATH=/p/node_modules/.bin"},
			expected: []string{"PATH=/p/node_modules/.bin"},
		},
		{
			name:     "command overrides",
			sysEnv:   []string{"USER=test", "PATH=/bin"},
			tools:    []string{"PATH=/p/node_modules/.bin"},
			cmdEnv:   map[string]string{"PATH": "/custom/bin", "FOO": "bar"},
			expected: []string{"USER=test", "PATH=/custom/bin", "FOO=bar"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolveEnvironment(tt.sysEnv, tt.tools, tt.cmdEnv)
			sort.Strings(got)
			sort.Strings(tt.expected)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestToolEnv(t *testing.T) {
	assert.Nil(t, toolEnv(""))
	assert.Nil(t, toolEnv(t.TempDir()))
}

func TestLookPath_NoPath(t *testing.T) {
	_, err := lookPath("sh", []string{"HOME=/tmp"})
	assert.Error(t, err)
}
