// Package exporter provides report export functionality with pluggable exporters.
package exporter

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/singjc/report-builder/pkg/errors"
	"github.com/singjc/report-builder/pkg/logger"
	"github.com/singjc/report-builder/report"
)

// ExportFormat represents the export format type
type ExportFormat string

const (
	// ExportFormatHTML represents the self-contained HTML format
	ExportFormatHTML ExportFormat = "html"
	// ExportFormatMarkdown represents Markdown format
	ExportFormatMarkdown ExportFormat = "markdown"
	// ExportFormatJSON represents JSON format
	ExportFormatJSON ExportFormat = "json"
	// ExportFormatPDF represents PDF format
	ExportFormatPDF ExportFormat = "pdf"
)

// ReportExporter defines the interface for report exporters
type ReportExporter interface {
	// Export serializes a fully built report to string content
	Export(rpt *report.Report) (string, error)
	// Name returns the human-readable name of the exporter (e.g., "HTML")
	Name() string
	// FileExtension returns the file extension for this format (e.g., ".html")
	FileExtension() string
}

// ExportManager manages all registered exporters
type ExportManager struct {
	exporters map[ExportFormat]ReportExporter
	mu        sync.RWMutex
}

// NewExportManager creates an empty export manager
func NewExportManager() *ExportManager {
	return &ExportManager{
		exporters: make(map[ExportFormat]ReportExporter),
	}
}

// NewDefaultManager creates a manager with every built-in exporter registered
func NewDefaultManager() *ExportManager {
	m := NewExportManager()
	m.Register(ExportFormatHTML, NewHTMLExporter())
	m.Register(ExportFormatMarkdown, NewMarkdownExporter())
	m.Register(ExportFormatJSON, NewJSONExporter())
	m.Register(ExportFormatPDF, NewPDFExporter())
	return m
}

// Register registers an exporter for a specific format
func (m *ExportManager) Register(format ExportFormat, exporter ReportExporter) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.exporters[format] = exporter
	logger.Debug("Registered report exporter",
		zap.String("format", string(format)),
		zap.String("name", exporter.Name()),
	)
}

// Export exports a report using the specified format
func (m *ExportManager) Export(rpt *report.Report, format ExportFormat) (string, error) {
	m.mu.RLock()
	exporter, ok := m.exporters[format]
	m.mu.RUnlock()

	if !ok {
		return "", errors.New(errors.ErrCodeUnsupportedFormat,
			fmt.Sprintf("unsupported export format: %s", format))
	}

	logger.Debug("Exporting report",
		zap.String("title", rpt.Title()),
		zap.String("format", string(format)),
		zap.String("exporter", exporter.Name()),
	)

	content, err := exporter.Export(rpt)
	if err != nil {
		return "", fmt.Errorf("failed to export report with %s exporter: %w", exporter.Name(), err)
	}

	return content, nil
}

// ExportToFile exports a report to a file
func (m *ExportManager) ExportToFile(rpt *report.Report, outputPath string, format ExportFormat) error {
	content, err := m.Export(rpt, format)
	if err != nil {
		return err
	}

	// Ensure directory exists
	dir := filepath.Dir(outputPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.ErrWriteFailed(outputPath, err)
	}

	if err := os.WriteFile(outputPath, []byte(content), 0644); err != nil {
		return errors.ErrWriteFailed(outputPath, err)
	}

	logger.Info("Report exported to file",
		zap.String("title", rpt.Title()),
		zap.String("format", string(format)),
		zap.String("path", outputPath),
	)

	return nil
}

// GenerateFilename generates a filename for the exported report
func (m *ExportManager) GenerateFilename(rpt *report.Report, format ExportFormat) string {
	m.mu.RLock()
	exporter, ok := m.exporters[format]
	m.mu.RUnlock()

	// Base name from title or generating software name
	baseName := rpt.Title()
	if baseName == "" {
		baseName = fmt.Sprintf("%s-report", rpt.Name())
	}

	baseName = sanitizeFilename(baseName)

	// Get extension from exporter if available
	if ok {
		return baseName + exporter.FileExtension()
	}

	// Fallback to format-based extension
	switch format {
	case ExportFormatHTML:
		return baseName + ".html"
	case ExportFormatMarkdown:
		return baseName + ".md"
	case ExportFormatJSON:
		return baseName + ".json"
	case ExportFormatPDF:
		return baseName + ".pdf"
	default:
		return baseName + ".txt"
	}
}

// SupportedFormats returns a list of all supported export formats
func (m *ExportManager) SupportedFormats() []ExportFormat {
	m.mu.RLock()
	defer m.mu.RUnlock()

	formats := make([]ExportFormat, 0, len(m.exporters))
	for format := range m.exporters {
		formats = append(formats, format)
	}
	return formats
}

// GetExporter returns the exporter for a specific format
func (m *ExportManager) GetExporter(format ExportFormat) (ReportExporter, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	exporter, ok := m.exporters[format]
	if !ok {
		return nil, errors.New(errors.ErrCodeUnsupportedFormat,
			fmt.Sprintf("no exporter registered for format: %s", format))
	}
	return exporter, nil
}
