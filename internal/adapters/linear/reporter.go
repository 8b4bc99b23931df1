// Package linear provides a synchronous, line-oriented build reporter.
package linear

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/kiln/internal/ui/output"
	"go.trai.ch/kiln/internal/ui/style"
)

var _ ports.Reporter = (*Reporter)(nil)

// Reporter implements ports.Reporter by printing one line per event.
// Unit completions arrive from worker goroutines, so writes are serialized.
type Reporter struct {
	mu     sync.Mutex
	w      io.Writer
	output *termenv.Output
}

// NewReporter creates a Reporter writing to w (stdout when nil).
func NewReporter(w io.Writer, ci bool) *Reporter {
	return NewReporterWithProfile(w, output.ColorProfile(ci))
}

// NewReporterWithProfile creates a Reporter with a fixed color profile.
func NewReporterWithProfile(w io.Writer, profile termenv.Profile) *Reporter {
	if w == nil {
		w = os.Stdout
	}
	return &Reporter{w: w, output: output.NewWithProfile(w, profile)}
}

// Discovered prints the number of units found.
func (r *Reporter) Discovered(n int) {
	r.printf("%s Discovered %d unit(s)\n", r.color(style.Dot, style.Ember), n)
}

// Changes prints the changed and pruned units.
func (r *Reporter) Changes(cs domain.ChangeSet) {
	r.mu.Lock()
	defer r.mu.Unlock()

	arrow := r.color(style.Arrow, style.Ember)
	if cs.SharedChanged {
		r.writef("%s Shared modules changed, every unit is invalidated\n", arrow)
	}
	if len(cs.Changed) > 0 {
		r.writef("%s %d unit(s) to rebuild\n", arrow, len(cs.Changed))
		for _, name := range cs.Changed {
			reason := r.output.String("(" + string(cs.Reasons[name]) + ")").Faint().String()
			r.writef("    %s %s\n", name, reason)
		}
	}
	if len(cs.Pruned) > 0 {
		r.writef("%s %d unit(s) removed: %s\n", arrow, len(cs.Pruned), strings.Join(cs.Pruned, ", "))
	}
}

// UpToDate prints the no-op summary.
func (r *Reporter) UpToDate(last time.Time) {
	check := r.color(style.Check, style.Green)
	if last.IsZero() {
		r.printf("%s Up to date\n", check)
		return
	}
	r.printf("%s Up to date (last build %s)\n", check, last.UTC().Format(time.DateTime+" MST"))
}

// UnitBuilt prints the completion of one unit.
func (r *Reporter) UnitBuilt(name string, d time.Duration, err error) {
	if err != nil {
		r.printf("  %s %s failed after %s\n", r.color(style.Cross, style.Red), name, formatDuration(d))
		return
	}
	r.printf("  %s %s %s\n", r.color(style.Check, style.Green), name, r.faint(formatDuration(d)))
}

// StageDone prints the completion of a pipeline stage.
func (r *Reporter) StageDone(stage domain.Stage, d time.Duration, err error) {
	if err != nil {
		r.printf("%s %s failed after %s\n", r.color(style.Cross, style.Red), stage, formatDuration(d))
		return
	}
	r.printf("%s %s %s\n", r.color(style.Check, style.Green), stage, r.faint(formatDuration(d)))
}

// StageDegraded prints a stage that failed without failing the build.
func (r *Reporter) StageDegraded(stage domain.Stage, d time.Duration, _ error) {
	r.printf("%s %s skipped after %s\n", r.color(style.Warning, style.Yellow), stage, formatDuration(d))
}

// Finished prints the final summary line.
func (r *Reporter) Finished(elapsed time.Duration, err error) {
	if err != nil {
		r.printf("%s Build failed after %s\n", r.color(style.Cross, style.Red), formatDuration(elapsed))
		return
	}
	r.printf("%s Done in %s\n", r.color(style.Check, style.Green), formatDuration(elapsed))
}

func (r *Reporter) printf(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writef(format, args...)
}

// writef writes without locking. Callers hold mu.
func (r *Reporter) writef(format string, args ...any) {
	_, _ = fmt.Fprintf(r.w, format, args...)
}

func (r *Reporter) color(s string, c lipgloss.Color) string {
	return r.output.String(s).Foreground(r.output.Color(string(c))).String()
}

func (r *Reporter) faint(s string) string {
	return r.output.String(s).Faint().String()
}

func formatDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return d.Round(time.Microsecond).String()
	case d < time.Second:
		return d.Round(time.Millisecond).String()
	default:
		return d.Round(10 * time.Millisecond).String()
	}
}
