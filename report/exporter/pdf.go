package exporter

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"github.com/singjc/report-builder/pkg/logger"
	"github.com/singjc/report-builder/report"
)

// PDFOptions contains configuration for PDF generation
type PDFOptions struct {
	// Paper dimensions in inches (A4: 8.27 x 11.69)
	PaperWidth  float64
	PaperHeight float64

	// Margins in inches
	MarginTop    float64
	MarginBottom float64
	MarginLeft   float64
	MarginRight  float64

	// Header and footer
	DisplayHeaderFooter bool
	HeaderTemplate      string
	FooterTemplate      string

	// Print background colors and images
	PrintBackground bool

	// Scale of the webpage rendering (1.0 = 100%)
	Scale float64

	// Timeout for PDF generation
	Timeout time.Duration
}

// DefaultPDFOptions returns default PDF options for A4 paper
func DefaultPDFOptions() PDFOptions {
	return PDFOptions{
		// A4 paper size in inches
		PaperWidth:  8.27,
		PaperHeight: 11.69,

		// Margins in inches
		MarginTop:    0.59, // ~15mm
		MarginBottom: 0.59, // ~15mm
		MarginLeft:   0.59, // ~15mm
		MarginRight:  0.59, // ~15mm

		DisplayHeaderFooter: true,
		PrintBackground:     true,
		Scale:               1.0,
		Timeout:             120 * time.Second,
	}
}

// PDFExporter exports reports to PDF format using Chrome headless.
// It prints the self-contained HTML rendition, so tables and charts
// appear exactly as they do in a browser.
type PDFExporter struct {
	html    *HTMLExporter
	options PDFOptions
}

// NewPDFExporter creates a new PDF exporter with default options
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{
		html:    NewHTMLExporter(),
		options: DefaultPDFOptions(),
	}
}

// NewPDFExporterWithOptions creates a new PDF exporter with custom options
// and render options forwarded to the underlying HTML rendition
func NewPDFExporterWithOptions(opts PDFOptions, renderOpts ...report.RenderOption) *PDFExporter {
	return &PDFExporter{
		html:    NewHTMLExporterWithOptions(renderOpts...),
		options: opts,
	}
}

// Export exports a report to PDF format.
// Note: the returned string carries binary PDF data for interface
// compatibility. For []byte use ExportToPDF instead.
func (e *PDFExporter) Export(rpt *report.Report) (string, error) {
	pdfData, err := e.ExportToPDF(rpt)
	if err != nil {
		return "", err
	}
	return string(pdfData), nil
}

// ExportToPDF exports a report to PDF format and returns binary data
func (e *PDFExporter) ExportToPDF(rpt *report.Report) ([]byte, error) {
	startTime := time.Now()

	logger.Info("[PDF Export] Starting PDF export",
		zap.String("title", rpt.Title()),
		zap.Int("sections_count", len(rpt.Sections())),
		zap.Duration("timeout", e.options.Timeout),
	)

	html, err := e.html.Export(rpt)
	if err != nil {
		return nil, fmt.Errorf("failed to render HTML for PDF: %w", err)
	}

	headerTemplate, footerTemplate := e.headerFooter(rpt)

	// Write HTML to a temporary file (avoids data URL size limits)
	tmpFile, err := os.CreateTemp("", "report-builder-pdf-*.html")
	if err != nil {
		logger.Error("[PDF Export] Failed to create temp file",
			zap.String("title", rpt.Title()),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath)

	if _, err := tmpFile.WriteString(html); err != nil {
		tmpFile.Close()
		logger.Error("[PDF Export] Failed to write HTML to temp file",
			zap.String("temp_path", tmpPath),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to write temp file: %w", err)
	}
	tmpFile.Close()

	ctx, cancel := context.WithTimeout(context.Background(), e.options.Timeout)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-software-rasterizer", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("headless", true),
	)

	if chromePath := os.Getenv("CHROME_PATH"); chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
		logger.Debug("[PDF Export] Using custom Chrome path",
			zap.String("chrome_path", chromePath),
		)
	}

	// Default WebSocket URL timeout is 20s which may not be enough on slow systems
	opts = append(opts, chromedp.WSURLReadTimeout(60*time.Second))

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(func(format string, args ...interface{}) {
			logger.Debug(fmt.Sprintf("[PDF Export] chromedp: "+format, args...))
		}),
	)
	defer browserCancel()

	var pdfData []byte
	fileURL := "file://" + tmpPath

	chromeStartTime := time.Now()
	err = chromedp.Run(browserCtx,
		chromedp.Navigate(fileURL),
		chromedp.WaitReady("body"),

		// Give the inlined behavior script and any chart runtime time to lay out
		chromedp.Sleep(2*time.Second),

		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfData, _, err = page.PrintToPDF().
				WithPaperWidth(e.options.PaperWidth).
				WithPaperHeight(e.options.PaperHeight).
				WithMarginTop(e.options.MarginTop).
				WithMarginBottom(e.options.MarginBottom).
				WithMarginLeft(e.options.MarginLeft).
				WithMarginRight(e.options.MarginRight).
				WithDisplayHeaderFooter(e.options.DisplayHeaderFooter).
				WithHeaderTemplate(headerTemplate).
				WithFooterTemplate(footerTemplate).
				WithPrintBackground(e.options.PrintBackground).
				WithScale(e.options.Scale).
				WithPreferCSSPageSize(false).
				Do(ctx)
			return err
		}),
	)

	if err != nil {
		logger.Error("[PDF Export] Failed to generate PDF",
			zap.String("title", rpt.Title()),
			zap.Error(err),
			zap.Duration("chrome_duration", time.Since(chromeStartTime)),
		)
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	logger.Info("[PDF Export] PDF export completed",
		zap.String("title", rpt.Title()),
		zap.Int("pdf_size_bytes", len(pdfData)),
		zap.String("pdf_size_human", formatBytes(len(pdfData))),
		zap.Duration("chrome_duration", time.Since(chromeStartTime)),
		zap.Duration("total_duration", time.Since(startTime)),
	)

	return pdfData, nil
}

// formatBytes converts bytes to human-readable format
func formatBytes(bytes int) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := int64(bytes) / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

// Name returns the human-readable name of this exporter
func (e *PDFExporter) Name() string {
	return "PDF"
}

// FileExtension returns the file extension for PDF files
func (e *PDFExporter) FileExtension() string {
	return ".pdf"
}

// headerFooter builds the Chrome print header and footer templates.
// Chrome substitutes content into elements carrying the pageNumber,
// totalPages, title, url and date classes.
func (e *PDFExporter) headerFooter(rpt *report.Report) (header, footer string) {
	if e.options.HeaderTemplate != "" || e.options.FooterTemplate != "" {
		return e.options.HeaderTemplate, e.options.FooterTemplate
	}

	title := rpt.Title()
	if title == "" {
		title = rpt.Name()
	}

	header = fmt.Sprintf(`
		<div style="width:100%%; padding:4px 20px; font-size:10px; font-family:system-ui,-apple-system,sans-serif; color:#666; display:flex; justify-content:space-between; align-items:center;">
			<span style="font-weight:600;">%s</span>
			<span>%s</span>
		</div>
	`, escapeHTMLAttr(title), escapeHTMLAttr(rpt.GeneratedStamp()))

	footer = fmt.Sprintf(`
		<div style="width:100%%; padding:0 20px; font-size:9px; font-family:system-ui,-apple-system,sans-serif; color:#666; display:flex; justify-content:space-between; align-items:center;">
			<span>Generated by %s v%s</span>
			<span>Page <span class="pageNumber"></span> of <span class="totalPages"></span></span>
		</div>
	`, escapeHTMLAttr(rpt.Name()), escapeHTMLAttr(rpt.Version()))

	return header, footer
}
