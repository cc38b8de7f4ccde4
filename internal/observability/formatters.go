// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-builder/internal/layout"
	"github.com/jonathan/resume-builder/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// writeList appends up to limit items under heading, then a count of the rest.
func writeList(sb *strings.Builder, heading string, items []string, limit int) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(heading + ":\n")
	count := min(len(items), limit)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > limit {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-limit))
	}
	sb.WriteString("\n")
}

// PrintAnalysis outputs a human-readable summary of an ATS analysis.
func (p *Printer) PrintAnalysis(analysis *types.AnalysisResult, model string) {
	if analysis == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Score:    %d/100 (%s)\n", analysis.Score, analysis.MatchLevel))
	if model != "" {
		sb.WriteString(fmt.Sprintf("Model:    %s\n", model))
	}
	sb.WriteString("\n")

	writeList(&sb, "Missing Keywords", analysis.MissingKeywords, maxItemsToShow)
	writeList(&sb, "Strengths", analysis.Strengths, 3)
	writeList(&sb, "Improvements", analysis.Improvements, 3)

	p.printBox("ATS ANALYSIS", strings.TrimRight(sb.String(), "\n"))
}

// PrintPlanSummary outputs page and instruction counts of a layout plan.
func (p *Printer) PrintPlanSummary(plan *layout.Plan) {
	if plan == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Pages:    %d\n", len(plan.Pages)))
	if len(plan.Pages) > 1 {
		sb.WriteString("⚠ content overflowed onto extra pages\n")
	}
	sb.WriteString("\n")

	for _, kind := range []layout.Kind{layout.KindText, layout.KindBullet, layout.KindLine, layout.KindCircle, layout.KindLink} {
		if n := plan.Count(kind); n > 0 {
			sb.WriteString(fmt.Sprintf("  %-8s %d\n", kind, n))
		}
	}

	p.printBox("LAYOUT PLAN", strings.TrimRight(sb.String(), "\n"))
}
