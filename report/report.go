// Package report provides an embeddable report composition engine.
//
// Callers build a Report in memory from titled sections holding raw markup
// fragments, interactive tables, and charts, then serialize it into a single
// self-contained HTML document. The rendered document works when opened from
// a local path with no network access: styling and the table/chart behavior
// script are inlined, never linked.
//
// The model is append-only and single-writer. Render performs no mutation,
// so concurrent renders of a fully built report are safe.
package report

import (
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/singjc/report-builder/consts"
	"github.com/singjc/report-builder/pkg/errors"
	"github.com/singjc/report-builder/pkg/logger"
)

// Report is the root of the document model: identity metadata plus an
// ordered collection of sections. The identity fields are fixed at
// construction and the section order is the rendering order.
type Report struct {
	name      string
	version   string
	logoRef   string
	title     string
	createdAt time.Time
	sections  []*Section
}

// New creates a report with the given identity metadata.
// logoRef is a URI or path for the branding image; pass "" to omit branding.
// The creation timestamp shown in the banner is captured here, not at render
// time, so repeated renders of the same report are byte-identical.
func New(name, version, logoRef, title string) *Report {
	return &Report{
		name:      name,
		version:   version,
		logoRef:   logoRef,
		title:     title,
		createdAt: time.Now(),
	}
}

// Name returns the generating software's name.
func (r *Report) Name() string { return r.name }

// Version returns the generating software's version.
func (r *Report) Version() string { return r.version }

// LogoRef returns the branding image reference, or "" when none was set.
func (r *Report) LogoRef() string { return r.logoRef }

// Title returns the report title.
func (r *Report) Title() string { return r.title }

// CreatedAt returns the construction timestamp shown in the banner.
func (r *Report) CreatedAt() time.Time { return r.createdAt }

// Sections returns the report's sections in rendering order.
// The returned slice is shared; callers must not modify it.
func (r *Report) Sections() []*Section { return r.sections }

// AddSection appends a section to the report and transfers its ownership.
// A section already owned by any report (this one included) is rejected with
// a structural misuse error, leaving both reports unchanged.
func (r *Report) AddSection(s *Section) error {
	if s == nil {
		return errors.ErrValidation("section must not be nil")
	}
	if s.owner != nil {
		return errors.ErrSectionOwned(s.title)
	}
	s.owner = r
	r.sections = append(r.sections, s)

	logger.Debug("Added section to report",
		zap.String("report", r.title),
		zap.String("section", s.title),
		zap.Int("blocks", len(s.blocks)),
	)
	return nil
}

// Render serializes the report into one self-contained HTML document.
// It is a pure function of the report state and the given options: it
// mutates nothing, performs no I/O, and cannot fail for a report whose
// sections were built through the validating append operations.
func (r *Report) Render(opts ...RenderOption) string {
	return newRenderer(opts...).render(r)
}

// SaveToFile renders the report and writes the document to path.
// Rendering cannot fail; any returned error is a persistence failure and the
// in-memory document remains valid and re-saveable.
func (r *Report) SaveToFile(path string, opts ...RenderOption) error {
	doc := r.Render(opts...)
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		return errors.ErrWriteFailed(path, err)
	}

	logger.Info("Report saved",
		zap.String("title", r.title),
		zap.String("path", path),
		zap.Int("bytes", len(doc)),
		zap.Int("sections", len(r.sections)),
	)
	return nil
}

// GeneratedStamp returns the banner timestamp in the document layout.
func (r *Report) GeneratedStamp() string {
	return r.createdAt.Format(consts.TimestampLayout)
}
