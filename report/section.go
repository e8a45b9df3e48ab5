package report

import (
	"github.com/singjc/report-builder/pkg/errors"
	"github.com/singjc/report-builder/pkg/idgen"
)

// BlockKind identifies the payload variant of a content block.
type BlockKind int

const (
	// BlockMarkup is a pre-rendered markup fragment inlined verbatim.
	BlockMarkup BlockKind = iota
	// BlockTable is an interactive table.
	BlockTable
	// BlockChart is an embedded chart.
	BlockChart
)

// String returns the kind name used in serialized forms.
func (k BlockKind) String() string {
	switch k {
	case BlockMarkup:
		return "markup"
	case BlockTable:
		return "table"
	case BlockChart:
		return "chart"
	default:
		return "unknown"
	}
}

// ContentBlock is an atomic renderable unit: exactly one of a raw markup
// fragment, a table, or a chart. Blocks keep the order they were appended in.
type ContentBlock struct {
	id     string
	kind   BlockKind
	markup string
	table  *Table
	chart  *Chart
}

// ID returns the block identifier, assigned at append time.
func (b *ContentBlock) ID() string { return b.id }

// Kind returns the payload variant.
func (b *ContentBlock) Kind() BlockKind { return b.kind }

// Markup returns the raw markup payload; valid only for BlockMarkup.
func (b *ContentBlock) Markup() string { return b.markup }

// Table returns the table payload; nil unless Kind is BlockTable.
func (b *ContentBlock) Table() *Table { return b.table }

// Chart returns the chart payload; nil unless Kind is BlockChart.
func (b *ContentBlock) Chart() *Chart { return b.chart }

// Section is an ordered, named collection of content blocks. A section with
// zero blocks is valid and renders as an empty titled region.
type Section struct {
	id     string
	title  string
	blocks []*ContentBlock
	owner  *Report
}

// NewSection creates a section with the given title.
func NewSection(title string) *Section {
	return &Section{
		id:    idgen.NewSectionID(),
		title: title,
	}
}

// Title returns the section title.
func (s *Section) Title() string { return s.title }

// Blocks returns the section's content blocks in append order.
// The returned slice is shared; callers must not modify it.
func (s *Section) Blocks() []*ContentBlock { return s.blocks }

// AddContent appends a pre-rendered markup fragment. The fragment is opaque:
// it is never parsed or validated and is inlined verbatim in document order.
func (s *Section) AddContent(markup string) {
	s.blocks = append(s.blocks, &ContentBlock{
		id:     idgen.NewBlockID(),
		kind:   BlockMarkup,
		markup: markup,
	})
}

// AddTable appends a table. The table is sealed against further mutation and
// cannot be attached to a second section.
func (s *Section) AddTable(t *Table) error {
	if t == nil {
		return errors.ErrValidation("table must not be nil")
	}
	if err := t.seal(); err != nil {
		return err
	}
	s.blocks = append(s.blocks, &ContentBlock{
		id:    idgen.NewBlockID(),
		kind:  BlockTable,
		table: t,
	})
	return nil
}

// AddPlot appends a chart. The chart definition is treated as an inert blob
// from here on; the renderer never mutates or introspects it.
func (s *Section) AddPlot(c *Chart) error {
	if c == nil {
		return errors.ErrValidation("chart must not be nil")
	}
	if err := c.seal(); err != nil {
		return err
	}
	s.blocks = append(s.blocks, &ContentBlock{
		id:    idgen.NewBlockID(),
		kind:  BlockChart,
		chart: c,
	})
	return nil
}
