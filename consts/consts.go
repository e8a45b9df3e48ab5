// Package consts defines cross-module constants used throughout the application.
package consts

// ServiceName is the application service name
const ServiceName = "report-builder"

// Output format constants
const (
	// OutputFormatHTML represents the self-contained HTML output format
	OutputFormatHTML = "html"

	// OutputFormatMarkdown represents markdown output format
	OutputFormatMarkdown = "markdown"

	// OutputFormatJSON represents JSON output format
	OutputFormatJSON = "json"

	// OutputFormatPDF represents PDF output format
	OutputFormatPDF = "pdf"
)

// Project information constants
const (
	// ProjectName is the display name of the project
	ProjectName = "Report Builder"

	// ProjectURL is the GitHub repository URL
	ProjectURL = "https://github.com/singjc/report-builder"
)

// Rendering defaults
const (
	// DefaultChartHeight is the pixel height used for chart containers
	// when the caller does not fix dimensions
	DefaultChartHeight = 600

	// TimestampLayout is the layout for the "generated on" banner timestamp
	TimestampLayout = "2006-01-02 15:04:05"
)

// Build information - set via ldflags during build or programmatically
var (
	// Version is the application version
	Version = "dev"

	// BuildTime is the build timestamp
	BuildTime = "unknown"

	// GitCommit is the git commit hash
	GitCommit = "unknown"
)
