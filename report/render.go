package report

import (
	"fmt"
	"strings"

	"github.com/singjc/report-builder/consts"
	"github.com/singjc/report-builder/report/assets"
)

// RenderOption customizes document serialization without touching the
// document model. Rendering stays pure: the same report and options always
// produce the same bytes.
type RenderOption func(*renderer)

// WithTheme renders with the given theme instead of the default.
func WithTheme(theme Theme) RenderOption {
	return func(r *renderer) {
		theme.applyDefaults()
		r.theme = theme
	}
}

// WithChartRuntime inlines a charting runtime (for example a plotly.js
// bundle) once into the document, keeping charts functional offline. The
// runtime is an opaque script body supplied by the charting collaborator.
func WithChartRuntime(js string) RenderOption {
	return func(r *renderer) {
		r.chartRuntime = js
	}
}

// renderer serializes one report per call. It walks sections and blocks in
// a single depth-first pass and inlines the stylesheet and behavior script
// exactly once, so output size stays linear in content.
type renderer struct {
	theme        Theme
	chartRuntime string
}

func newRenderer(opts ...RenderOption) *renderer {
	r := &renderer{theme: DefaultTheme()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (rd *renderer) render(r *Report) string {
	var sb strings.Builder
	sb.Grow(len(assets.ReportCSS) + len(assets.ReportJS) + len(rd.chartRuntime) + 4096)

	sb.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
	sb.WriteString("    <meta charset=\"UTF-8\">\n")
	sb.WriteString("    <meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\">\n")
	fmt.Fprintf(&sb, "    <title>%s</title>\n", escapeHTML(r.title))
	sb.WriteString("    <style>\n")
	sb.WriteString(rd.theme.cssVariables())
	sb.WriteString("\n")
	sb.WriteString(assets.ReportCSS)
	sb.WriteString("    </style>\n")
	if rd.chartRuntime != "" {
		// Caller-supplied charting runtime, embedded once for offline use
		sb.WriteString("    <script>")
		sb.WriteString(rd.chartRuntime)
		sb.WriteString("</script>\n")
	}
	sb.WriteString("</head>\n<body>\n<div class=\"report-content\">\n")

	rd.writeBanner(&sb, r)
	rd.writeSections(&sb, r)

	sb.WriteString("</div>\n<script>\n")
	sb.WriteString(assets.ReportJS)
	sb.WriteString("</script>\n</body>\n</html>\n")
	return sb.String()
}

// writeBanner emits the document header: optional branding image, title,
// generating software identity, and the build timestamp.
func (rd *renderer) writeBanner(sb *strings.Builder, r *Report) {
	sb.WriteString("<div class=\"banner\">\n")
	sb.WriteString("    <div class=\"banner-main\">\n")
	if r.logoRef != "" {
		fmt.Fprintf(sb, "        <img src=\"%s\" alt=\"%s logo\">\n",
			escapeHTML(r.logoRef), escapeHTML(r.name))
	}
	sb.WriteString("        <div class=\"banner-text\">\n")
	fmt.Fprintf(sb, "            <h1>%s</h1>\n", escapeHTML(r.title))
	fmt.Fprintf(sb, "            <p>%s v%s</p>\n", escapeHTML(r.name), escapeHTML(r.version))
	fmt.Fprintf(sb, "            <p class=\"timestamp\">Generated on: %s</p>\n", r.GeneratedStamp())
	sb.WriteString("        </div>\n    </div>\n</div>\n")
}

// writeSections emits the tab bar (only when there is something to switch
// between) followed by every section in append order. All sections are
// present in the document; tabs only toggle visibility.
func (rd *renderer) writeSections(sb *strings.Builder, r *Report) {
	if len(r.sections) > 1 {
		sb.WriteString("<div class=\"tabs\" role=\"tablist\">\n")
		for i, section := range r.sections {
			active := ""
			if i == 0 {
				active = " active"
			}
			fmt.Fprintf(sb, "    <button class=\"tab%s\" data-tab=\"%s\">%s</button>\n",
				active, section.id, escapeHTML(section.title))
		}
		sb.WriteString("</div>\n")
	}

	for i, section := range r.sections {
		active := ""
		if i == 0 || len(r.sections) == 1 {
			active = " active"
		}
		fmt.Fprintf(sb, "<div class=\"tab-content%s\" id=\"%s\">\n", active, section.id)
		rd.writeSection(sb, section)
		sb.WriteString("</div>\n")
	}
}

func (rd *renderer) writeSection(sb *strings.Builder, s *Section) {
	sb.WriteString("<div class=\"section\">\n")
	fmt.Fprintf(sb, "    <h2>%s</h2>\n", escapeHTML(s.title))
	for _, block := range s.blocks {
		switch block.kind {
		case BlockMarkup:
			// Opaque collaborator output, inlined verbatim
			fmt.Fprintf(sb, "<div class=\"markup-block\" id=\"%s\">\n", block.id)
			sb.WriteString(block.markup)
			sb.WriteString("\n</div>\n")
		case BlockTable:
			rd.writeTable(sb, block)
		case BlockChart:
			rd.writeChart(sb, block)
		}
	}
	sb.WriteString("</div>\n")
}

// writeTable emits a table's structural markup plus the id wiring that binds
// it to the shared behavior script; no per-table script is generated.
func (rd *renderer) writeTable(sb *strings.Builder, block *ContentBlock) {
	t := block.table
	fmt.Fprintf(sb, "<div class=\"table-block\" id=\"%s\">\n", block.id)

	if t.searchable || t.exportable {
		sb.WriteString("    <div class=\"table-toolbar\">\n")
		if t.searchable {
			fmt.Fprintf(sb, "        <input type=\"text\" class=\"table-search\" data-table=\"%s\" placeholder=\"Search...\">\n", t.id)
		}
		if t.exportable {
			fmt.Fprintf(sb, "        <button class=\"table-export\" data-table=\"%s\">Export CSV</button>\n", t.id)
		}
		sb.WriteString("    </div>\n")
	}

	sb.WriteString("    <div class=\"table-container\">\n")
	fmt.Fprintf(sb, "    <table class=\"report-table\" id=\"%s\" data-sortable=\"%t\"", t.id, t.sortable)
	if t.virtualizeAbove > 0 && len(t.rows) > t.virtualizeAbove {
		fmt.Fprintf(sb, " data-virtualize=\"%d\"", t.virtualizeAbove)
	}
	sb.WriteString(">\n    <thead>\n    <tr>\n")
	for i, col := range t.columns {
		if t.ColumnSortable(i) {
			fmt.Fprintf(sb, "        <th class=\"sortable\">%s<span class=\"sort-icon\"></span></th>\n", escapeHTML(col))
		} else {
			fmt.Fprintf(sb, "        <th>%s</th>\n", escapeHTML(col))
		}
	}
	sb.WriteString("    </tr>\n    </thead>\n    <tbody>\n")
	for _, row := range t.rows {
		sb.WriteString("    <tr>")
		for _, cell := range row {
			if cell.Sort != "" {
				fmt.Fprintf(sb, "<td data-sort=\"%s\">%s</td>", escapeHTML(cell.Sort), escapeHTML(cell.Display))
			} else {
				fmt.Fprintf(sb, "<td>%s</td>", escapeHTML(cell.Display))
			}
		}
		sb.WriteString("</tr>\n")
	}
	sb.WriteString("    </tbody>\n    </table>\n    </div>\n")

	if t.virtualizeAbove > 0 && len(t.rows) > t.virtualizeAbove {
		fmt.Fprintf(sb, "    <div class=\"table-more-wrapper\"><button class=\"table-more\" data-table=\"%s\">Show more</button></div>\n", t.id)
	}
	sb.WriteString("</div>\n")
}

// writeChart emits a chart container with its definition carried as inert
// JSON data; the shared behavior script hands it to the embedded runtime.
func (rd *renderer) writeChart(sb *strings.Builder, block *ContentBlock) {
	c := block.chart
	fmt.Fprintf(sb, "<div class=\"chart-block\" id=\"%s\">\n", block.id)
	sb.WriteString("    <div class=\"chart-wrapper\">\n")
	if c.sizing.Responsive {
		fmt.Fprintf(sb, "    <div class=\"chart-container\" id=\"%s\" data-sizing=\"responsive\" style=\"height:%dpx\">\n",
			c.id, consts.DefaultChartHeight)
	} else {
		fmt.Fprintf(sb, "    <div class=\"chart-container\" id=\"%s\" data-sizing=\"fixed\" data-width=\"%d\" data-height=\"%d\">\n",
			c.id, c.sizing.Width, c.sizing.Height)
	}
	fmt.Fprintf(sb, "        <script type=\"application/json\" class=\"chart-spec\">%s</script>\n",
		escapeScriptPayload(c.definition))
	sb.WriteString("    </div>\n    </div>\n</div>\n")
}

// escapeHTML escapes a string for safe element and attribute embedding
func escapeHTML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	s = strings.ReplaceAll(s, "'", "&#39;")
	return s
}

// escapeScriptPayload neutralizes script terminators inside an inline JSON
// payload. "\/" is a valid JSON string escape, so the payload parses to the
// same value the collaborator produced.
func escapeScriptPayload(s string) string {
	return strings.ReplaceAll(s, "</", "<\\/")
}
