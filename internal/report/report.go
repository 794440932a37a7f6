// Package report renders optimization results as fixed-layout text.
package report

import (
	"fmt"
	"strings"

	"github.com/llm-d/llm-d-triage-allocator/pkg/core"
)

const (
	severitySegments = 5
	filledSegment    = "●"
	emptySegment     = "○"

	labelAllocated = "ALLOCATED"
	labelWaiting   = "WAITING/ALTERNATIVE"
)

var (
	banner = strings.Join([]string{
		"╔════════════════════════════════════════════════════════════════╗",
		"║            VENTILATOR TRIAGE OPTIMIZATION REPORT               ║",
		"╚════════════════════════════════════════════════════════════════╝",
	}, "\n")
	rule   = strings.Repeat("━", 66)
	footer = strings.Repeat("=", 66)
)

// Format renders result. The output depends only on result.
func Format(result core.OptimizationResult) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(banner)
	b.WriteString("\n\n")

	b.WriteString("RESOURCE ALLOCATION SUMMARY:\n")
	b.WriteString(rule)
	b.WriteString("\n")
	fmt.Fprintf(&b, "  • Available Ventilators: %d\n", result.UnitsAvailable)
	fmt.Fprintf(&b, "  • Allocated Ventilators: %d/%d\n", result.UnitsUsed, result.UnitsAvailable)
	fmt.Fprintf(&b, "  • Total Ventilator-Hours Used: %d/%d hours\n", result.HoursUsed, result.HoursAvailable)
	fmt.Fprintf(&b, "  • Estimated Value Saved: %.2f\n", result.ValueSaved)
	if len(result.Records) > 0 {
		fmt.Fprintf(&b, "  • Severity-Only Baseline: %.2f%s\n", result.BaselineValueSaved, improvement(result))
	}
	b.WriteString("\n")

	b.WriteString("ALGORITHM:\n")
	fmt.Fprintf(&b, "  %s\n", orUnknown(result.Algorithm))
	fmt.Fprintf(&b, "  Status: %s\n", orUnknown(result.Status))
	b.WriteString("\n")

	b.WriteString("PATIENT ALLOCATION PRIORITY:\n")
	b.WriteString(rule)
	b.WriteString("\n")

	for _, rec := range result.Records {
		writeRecord(&b, rec)
	}

	b.WriteString("\n")
	b.WriteString(footer)
	b.WriteString("\n")
	return b.String()
}

func writeRecord(b *strings.Builder, rec core.AllocationRecord) {
	status := labelWaiting
	if rec.Allocated {
		status = labelAllocated
	}

	fmt.Fprintf(b, "\n%d. %s (ID: %s)\n", rec.Rank, rec.Name, rec.PatientID)
	fmt.Fprintf(b, "   Severity: %s (%.1f%%)\n", SeverityBar(rec.Severity), rec.Severity*100)
	fmt.Fprintf(b, "   Priority Score: %.3f\n", rec.PriorityValue)
	fmt.Fprintf(b, "   Status: %s\n", status)
	if rec.Allocated {
		fmt.Fprintf(b, "   Duration: %d hours\n", rec.DurationHours)
	} else if text := rec.Reason.Description(); text != "" {
		fmt.Fprintf(b, "   Note: %s\n", text)
	}
}

// SeverityBar draws floor(severity*5) filled segments followed by empty ones.
func SeverityBar(severity float64) string {
	filled := min(max(int(severity*severitySegments), 0), severitySegments)
	return strings.Repeat(filledSegment, filled) + strings.Repeat(emptySegment, severitySegments-filled)
}

func improvement(result core.OptimizationResult) string {
	if result.BaselineValueSaved <= 0 {
		return ""
	}
	delta := (result.ValueSaved - result.BaselineValueSaved) / result.BaselineValueSaved * 100
	return fmt.Sprintf(" (optimized %+.1f%%)", delta)
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}
