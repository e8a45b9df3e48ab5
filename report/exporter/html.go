package exporter

import (
	"github.com/singjc/report-builder/report"
)

// HTMLExporter exports reports to the self-contained interactive HTML
// format. Serialization itself lives in the report package's renderer; this
// exporter adapts it to the pluggable exporter interface and carries the
// render options (theme, embedded chart runtime) chosen by the caller.
type HTMLExporter struct {
	opts []report.RenderOption
}

// NewHTMLExporter creates an HTML exporter with default rendering
func NewHTMLExporter() *HTMLExporter {
	return &HTMLExporter{}
}

// NewHTMLExporterWithOptions creates an HTML exporter that renders with the
// given options
func NewHTMLExporterWithOptions(opts ...report.RenderOption) *HTMLExporter {
	return &HTMLExporter{opts: opts}
}

// Export renders the report to a single HTML document. Rendering a
// well-formed report cannot fail, so the error is always nil; the signature
// satisfies the exporter interface.
func (e *HTMLExporter) Export(rpt *report.Report) (string, error) {
	return rpt.Render(e.opts...), nil
}

// Name returns the human-readable name of this exporter
func (e *HTMLExporter) Name() string {
	return "HTML"
}

// FileExtension returns the file extension for HTML files
func (e *HTMLExporter) FileExtension() string {
	return ".html"
}
