package logger_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/kiln/internal/adapters/logger"
	"go.trai.ch/zerr"
)

func TestCollectErrorEntries(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		wantMessages []string
		wantMetadata []map[string]any
	}{
		{
			name:         "single standard error",
			err:          errors.New("simple error"),
			wantMessages: []string{"simple error"},
			wantMetadata: []map[string]any{nil},
		},
		{
			name:         "zerr wrapped chain",
			err:          zerr.Wrap(zerr.Wrap(errors.New("root cause"), "middle layer"), "outer layer"),
			wantMessages: []string{"outer layer", "middle layer", "root cause"},
			wantMetadata: []map[string]any{{}, {}, nil},
		},
		{
			name:         "zerr with metadata",
			err:          zerr.With(zerr.With(zerr.New("base error"), "key1", "value1"), "key2", 42),
			wantMessages: []string{"base error"},
			wantMetadata: []map[string]any{{"key1": "value1", "key2": 42}},
		},
		{
			name:         "metadata on standard error annotates it",
			err:          zerr.With(errors.New("permission denied"), "path", "/tmp/x"),
			wantMessages: []string{"permission denied"},
			wantMetadata: []map[string]any{{"path": "/tmp/x"}},
		},
		{
			name:         "joined errors",
			err:          errors.Join(zerr.New("build batch failed"), errors.New("unit Card failed")),
			wantMessages: []string{"build batch failed", "unit Card failed"},
			wantMetadata: []map[string]any{{}, nil},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := logger.CollectErrorEntries(tt.err)

			messages := make([]string, 0, len(entries))
			metadata := make([]map[string]any, 0, len(entries))
			for _, e := range entries {
				messages = append(messages, e.Message())
				metadata = append(metadata, e.Metadata())
			}

			assert.Equal(t, tt.wantMessages, messages)
			assert.Equal(t, tt.wantMetadata, metadata)
		})
	}
}

func TestFormatErrorEntries_Multiline(t *testing.T) {
	entries := logger.CollectErrorEntries(zerr.Wrap(errors.New("line one\nline two"), "compile failed"))

	got := logger.FormatErrorEntries(entries)

	want := "Error: compile failed\n" +
		"\n" +
		"  Caused by:\n" +
		"    → line one\n" +
		"      line two"
	assert.Equal(t, want, got)
}
