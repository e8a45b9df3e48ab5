package exporter

import (
	"encoding/json"
	"fmt"

	"github.com/singjc/report-builder/report"
)

// JSONExporter exports the document model as stable, machine-readable JSON.
// Chart definitions are embedded as raw JSON values, not re-encoded strings,
// so downstream consumers get the collaborator's spec unchanged.
type JSONExporter struct{}

// NewJSONExporter creates a new JSON exporter
func NewJSONExporter() *JSONExporter {
	return &JSONExporter{}
}

// jsonDocument mirrors the document model for serialization
type jsonDocument struct {
	Name        string        `json:"name"`
	Version     string        `json:"version"`
	Logo        string        `json:"logo,omitempty"`
	Title       string        `json:"title"`
	GeneratedAt string        `json:"generated_at"`
	Sections    []jsonSection `json:"sections"`
}

type jsonSection struct {
	Title  string      `json:"title"`
	Blocks []jsonBlock `json:"blocks"`
}

type jsonBlock struct {
	Type   string     `json:"type"`
	Markup string     `json:"markup,omitempty"`
	Table  *jsonTable `json:"table,omitempty"`
	Chart  *jsonChart `json:"chart,omitempty"`
}

type jsonTable struct {
	Columns    []string     `json:"columns"`
	Rows       [][]jsonCell `json:"rows"`
	Sortable   bool         `json:"sortable"`
	Searchable bool         `json:"searchable"`
	Exportable bool         `json:"exportable"`
}

type jsonCell struct {
	Display string `json:"display"`
	Sort    string `json:"sort,omitempty"`
}

type jsonChart struct {
	Definition json.RawMessage `json:"definition"`
	Responsive bool            `json:"responsive"`
	Width      int             `json:"width,omitempty"`
	Height     int             `json:"height,omitempty"`
}

// Export exports a report to indented JSON
func (e *JSONExporter) Export(rpt *report.Report) (string, error) {
	doc := jsonDocument{
		Name:        rpt.Name(),
		Version:     rpt.Version(),
		Logo:        rpt.LogoRef(),
		Title:       rpt.Title(),
		GeneratedAt: rpt.GeneratedStamp(),
		Sections:    make([]jsonSection, 0, len(rpt.Sections())),
	}

	for _, section := range rpt.Sections() {
		js := jsonSection{
			Title:  section.Title(),
			Blocks: make([]jsonBlock, 0, len(section.Blocks())),
		}
		for _, block := range section.Blocks() {
			jb := jsonBlock{Type: block.Kind().String()}
			switch block.Kind() {
			case report.BlockMarkup:
				jb.Markup = block.Markup()
			case report.BlockTable:
				jb.Table = toJSONTable(block.Table())
			case report.BlockChart:
				c := block.Chart()
				sizing := c.Sizing()
				jb.Chart = &jsonChart{
					Definition: json.RawMessage(c.Definition()),
					Responsive: sizing.Responsive,
					Width:      sizing.Width,
					Height:     sizing.Height,
				}
			}
			js.Blocks = append(js.Blocks, jb)
		}
		doc.Sections = append(doc.Sections, js)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal report: %w", err)
	}
	return string(data) + "\n", nil
}

// Name returns the human-readable name of this exporter
func (e *JSONExporter) Name() string {
	return "JSON"
}

// FileExtension returns the file extension for JSON files
func (e *JSONExporter) FileExtension() string {
	return ".json"
}

func toJSONTable(t *report.Table) *jsonTable {
	jt := &jsonTable{
		Columns:    t.Columns(),
		Rows:       make([][]jsonCell, 0, t.RowCount()),
		Sortable:   t.Sortable(),
		Searchable: t.Searchable(),
		Exportable: t.Exportable(),
	}
	for _, row := range t.Rows() {
		cells := make([]jsonCell, len(row))
		for i, cell := range row {
			cells[i] = jsonCell{Display: cell.Display, Sort: cell.Sort}
		}
		jt.Rows = append(jt.Rows, cells)
	}
	return jt
}
