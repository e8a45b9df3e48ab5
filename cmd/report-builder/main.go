// Package main is the entry point for the report-builder CLI.
// It builds reports from YAML manifests and exports them to the supported
// output formats.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/singjc/report-builder/consts"
	"github.com/singjc/report-builder/internal/manifest"
	"github.com/singjc/report-builder/pkg/logger"
	"github.com/singjc/report-builder/report"
	"github.com/singjc/report-builder/report/exporter"
)

// Build information - set via ldflags during build
// These variables are linked to consts package for global access
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// init synchronizes build info to consts package for global access
func init() {
	consts.Version = Version
	consts.BuildTime = BuildTime
	consts.GitCommit = GitCommit
}

var (
	manifestPath string
	outputPath   string
	outputFormat string
	runtimePath  string
	logLevel     string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   consts.ServiceName,
	Short: "Report Builder - compose and export self-contained HTML reports",
	Long: `Report Builder composes structured analytical reports from YAML manifests
and exports them as self-contained HTML documents with interactive tables
and charts, or as Markdown, JSON, or PDF.`,
}

// renderCmd builds a report from a manifest and exports it
var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Build a report from a manifest and export it",
	Long: `Build a report from a YAML manifest and export it.

The manifest names the report metadata and its sections; tables can be
defined inline or loaded from CSV files, chart definitions inline or from
JSON files. Paths in the manifest resolve relative to the manifest file.

Examples:
  report-builder render -f report.yaml
  report-builder render -f report.yaml -o out/report.html
  report-builder render -f report.yaml --format markdown`,
	RunE: runRender,
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("%s %s\n", consts.ProjectName, Version)
		fmt.Printf("  Build Time: %s\n", BuildTime)
		fmt.Printf("  Git Commit: %s\n", GitCommit)
	},
}

func init() {
	// Disable auto-generated completion command
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(versionCmd)

	renderCmd.Flags().StringVarP(&manifestPath, "file", "f", "", "manifest file path (required)")
	renderCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file path (default: derived from the report title)")
	renderCmd.Flags().StringVar(&outputFormat, "format", consts.OutputFormatHTML, "output format (html, markdown, json, pdf)")
	renderCmd.Flags().StringVar(&runtimePath, "chart-runtime", "", "path to a charting runtime bundle to inline (e.g. plotly.min.js)")
	renderCmd.MarkFlagRequired("file")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// runRender loads the manifest, builds the report, and exports it
func runRender(cmd *cobra.Command, args []string) error {
	if err := logger.Init(logger.Config{Level: logLevel, Format: "text"}); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	m, err := manifest.Load(manifestPath)
	if err != nil {
		printError("Failed to load manifest: %v", err)
		return err
	}

	rpt, err := m.Build()
	if err != nil {
		printError("Failed to build report: %v", err)
		return err
	}

	theme, err := m.LoadTheme()
	if err != nil {
		printError("Failed to load theme: %v", err)
		return err
	}

	renderOpts := []report.RenderOption{report.WithTheme(theme)}
	if runtimePath != "" {
		runtime, err := os.ReadFile(runtimePath)
		if err != nil {
			printError("Failed to read chart runtime: %v", err)
			return err
		}
		renderOpts = append(renderOpts, report.WithChartRuntime(string(runtime)))
	}

	manager := buildManager(renderOpts)
	format := exporter.ExportFormat(outputFormat)

	target := outputPath
	if target == "" {
		target = manager.GenerateFilename(rpt, format)
	}

	if err := manager.ExportToFile(rpt, target, format); err != nil {
		printError("Failed to export report: %v", err)
		logger.Error("Export failed",
			zap.String("manifest", manifestPath),
			zap.String("format", outputFormat),
			zap.Error(err),
		)
		return err
	}

	green := color.New(color.FgGreen)
	green.Printf("✓ Report exported\n")
	fmt.Printf("  Title:   %s\n", rpt.Title())
	fmt.Printf("  Format:  %s\n", outputFormat)
	fmt.Printf("  Output:  %s\n", filepath.Clean(target))
	return nil
}

// buildManager registers the built-in exporters, wiring the render options
// into the formats that produce an HTML rendition
func buildManager(renderOpts []report.RenderOption) *exporter.ExportManager {
	m := exporter.NewExportManager()
	m.Register(exporter.ExportFormatHTML, exporter.NewHTMLExporterWithOptions(renderOpts...))
	m.Register(exporter.ExportFormatMarkdown, exporter.NewMarkdownExporter())
	m.Register(exporter.ExportFormatJSON, exporter.NewJSONExporter())
	m.Register(exporter.ExportFormatPDF, exporter.NewPDFExporterWithOptions(exporter.DefaultPDFOptions(), renderOpts...))
	return m
}

// printError prints a red error line to stderr
func printError(format string, a ...any) {
	red := color.New(color.FgRed)
	red.Fprintf(os.Stderr, format+"\n", a...)
}
