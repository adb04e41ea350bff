package migrate

import (
	"fmt"
	"strings"
	"time"
)

// Result holds counters and timing from one entity type's migration.
type Result struct {
	Entity    string
	TotalRows int
	Inserted  int
	Updated   int
	Skipped   int
	Warnings  []string
	Elapsed   time.Duration
}

func (r *Result) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Summary renders the report block printed after each run.
func (r *Result) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "=== %s ===\n", r.Entity)
	fmt.Fprintf(&b, "Source rows:  %d\n", r.TotalRows)
	fmt.Fprintf(&b, "Inserted:     %d\n", r.Inserted)
	fmt.Fprintf(&b, "Updated:      %d\n", r.Updated)
	fmt.Fprintf(&b, "Skipped:      %d\n", r.Skipped)
	fmt.Fprintf(&b, "Elapsed:      %s\n", r.Elapsed.Round(time.Millisecond))
	if len(r.Warnings) > 0 {
		fmt.Fprintf(&b, "Warnings:     %d\n", len(r.Warnings))
	}
	return b.String()
}
