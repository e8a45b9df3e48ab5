// Package assets provides the embedded stylesheet and behavior script that
// make rendered documents self-contained: sorting, searching, CSV export,
// and chart resizing all work from a local file with no network access.
package assets

import (
	_ "embed"
)

// Base stylesheet shared by every rendered document. Colors and typography
// are driven by the CSS variables the renderer emits from the active theme.
//
//go:embed report.css
var ReportCSS string

// Shared interactive behavior: one copy per document, bound to every table
// and chart container by element id. Implements header-click sorting,
// free-text row filtering, CSV export of the current view, tab switching,
// chunked row display, and responsive chart re-layout.
//
//go:embed report.js
var ReportJS string
