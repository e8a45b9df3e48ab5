package exporter

import (
	"fmt"
	"strings"

	"github.com/singjc/report-builder/report"
)

// MarkdownExporter exports reports to a single Markdown document. Tables
// become GFM pipe tables, raw markup fragments are inlined verbatim, and
// chart definitions are carried as fenced JSON blocks so the data survives
// the format change even though interactivity does not.
type MarkdownExporter struct{}

// NewMarkdownExporter creates a new Markdown exporter
func NewMarkdownExporter() *MarkdownExporter {
	return &MarkdownExporter{}
}

// Export exports a report to Markdown
func (e *MarkdownExporter) Export(rpt *report.Report) (string, error) {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s\n\n", rpt.Title())
	fmt.Fprintf(&sb, "*%s v%s — generated on %s*\n\n", rpt.Name(), rpt.Version(), rpt.GeneratedStamp())

	sections := rpt.Sections()
	if len(sections) > 1 {
		sb.WriteString("## Table of Contents\n\n")
		for i, section := range sections {
			fmt.Fprintf(&sb, "%d. [%s](#%s)\n", i+1, section.Title(), createAnchor(section.Title()))
		}
		sb.WriteString("\n---\n\n")
	}

	for _, section := range sections {
		fmt.Fprintf(&sb, "## %s\n\n", section.Title())
		for _, block := range section.Blocks() {
			switch block.Kind() {
			case report.BlockMarkup:
				sb.WriteString(block.Markup())
				sb.WriteString("\n\n")
			case report.BlockTable:
				writeMarkdownTable(&sb, block.Table())
			case report.BlockChart:
				sb.WriteString("```json\n")
				sb.WriteString(block.Chart().Definition())
				sb.WriteString("\n```\n\n")
			}
		}
	}

	return strings.TrimRight(sb.String(), "\n") + "\n", nil
}

// Name returns the human-readable name of this exporter
func (e *MarkdownExporter) Name() string {
	return "Markdown"
}

// FileExtension returns the file extension for Markdown files
func (e *MarkdownExporter) FileExtension() string {
	return ".md"
}

// writeMarkdownTable emits one GFM pipe table in column order
func writeMarkdownTable(sb *strings.Builder, t *report.Table) {
	cols := t.Columns()

	sb.WriteString("|")
	for _, col := range cols {
		fmt.Fprintf(sb, " %s |", escapeMarkdownCell(col))
	}
	sb.WriteString("\n|")
	for range cols {
		sb.WriteString(" --- |")
	}
	sb.WriteString("\n")

	for _, row := range t.Rows() {
		sb.WriteString("|")
		for _, cell := range row {
			fmt.Fprintf(sb, " %s |", escapeMarkdownCell(cell.Display))
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
}
