package telemetry

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/kiln/internal/core/ports"
)

var _ sdktrace.SpanProcessor = (*LogProcessor)(nil)

// LogProcessor writes every finished span to the logger at debug level.
type LogProcessor struct {
	logger ports.Logger
}

// NewLogProcessor creates a new LogProcessor.
func NewLogProcessor(logger ports.Logger) *LogProcessor {
	return &LogProcessor{logger: logger}
}

// OnStart does nothing; spans are logged once they end.
func (p *LogProcessor) OnStart(context.Context, sdktrace.ReadWriteSpan) {}

// OnEnd logs the span name, duration, attributes and error status.
func (p *LogProcessor) OnEnd(s sdktrace.ReadOnlySpan) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "span %s %s", s.Name(), s.EndTime().Sub(s.StartTime()).Round(time.Microsecond))
	for _, kv := range s.Attributes() {
		fmt.Fprintf(&sb, " %s=%s", kv.Key, kv.Value.Emit())
	}
	if status := s.Status(); status.Code == codes.Error {
		fmt.Fprintf(&sb, " error=%q", status.Description)
	}
	p.logger.Debug(sb.String())
}

// Shutdown does nothing.
func (p *LogProcessor) Shutdown(context.Context) error { return nil }

// ForceFlush does nothing; spans are written synchronously.
func (p *LogProcessor) ForceFlush(context.Context) error { return nil }
