// Package manifest loads report definitions from YAML files and builds the
// in-memory document model from them. It exists for the CLI and for callers
// that prefer declarative report definitions over the programmatic API.
package manifest

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/singjc/report-builder/pkg/errors"
	"github.com/singjc/report-builder/pkg/logger"
	"github.com/singjc/report-builder/report"
)

// Manifest is the top-level YAML report definition.
type Manifest struct {
	Report   Meta          `yaml:"report"`
	Theme    string        `yaml:"theme"`
	Sections []SectionSpec `yaml:"sections"`

	// dir is the manifest's directory; relative file references resolve
	// against it
	dir string
}

// Meta holds the report identity fields.
type Meta struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
	Logo    string `yaml:"logo"`
	Title   string `yaml:"title"`
}

// SectionSpec describes one titled section and its blocks in order.
type SectionSpec struct {
	Title  string      `yaml:"title"`
	Blocks []BlockSpec `yaml:"blocks"`
}

// BlockSpec describes one content block. Exactly one of Content, Table, or
// Chart must be set.
type BlockSpec struct {
	Content string     `yaml:"content"`
	Table   *TableSpec `yaml:"table"`
	Chart   *ChartSpec `yaml:"chart"`
}

// TableSpec describes an interactive table, either inline or loaded from a
// CSV file whose first record is the header row.
type TableSpec struct {
	Columns []string   `yaml:"columns"`
	Rows    [][]string `yaml:"rows"`
	CSVFile string     `yaml:"csv_file"`

	// nil means keep the table default (enabled)
	Sortable        *bool    `yaml:"sortable"`
	Searchable      *bool    `yaml:"searchable"`
	Exportable      *bool    `yaml:"exportable"`
	Unsortable      []string `yaml:"unsortable_columns"`
	VirtualizeAbove int      `yaml:"virtualize_above"`
}

// ChartSpec describes a chart, either as inline definition JSON or a file
// reference. Charts are responsive unless both dimensions are set.
type ChartSpec struct {
	Definition string `yaml:"definition"`
	File       string `yaml:"file"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
}

// Load reads and validates a manifest from a YAML file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeValidation,
			fmt.Sprintf("failed to read manifest %s", path), err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(errors.ErrCodeValidation,
			fmt.Sprintf("failed to parse manifest %s", path), err)
	}
	m.dir = filepath.Dir(path)

	if err := m.validate(); err != nil {
		return nil, err
	}

	logger.Debug("Loaded report manifest",
		zap.String("path", path),
		zap.String("title", m.Report.Title),
		zap.Int("sections", len(m.Sections)),
	)
	return &m, nil
}

// validate checks structural constraints that do not require file access.
func (m *Manifest) validate() error {
	if m.Report.Title == "" {
		return errors.ErrValidation("manifest requires report.title")
	}
	if m.Report.Name == "" {
		return errors.ErrValidation("manifest requires report.name")
	}
	for si, section := range m.Sections {
		if section.Title == "" {
			return errors.ErrValidation(fmt.Sprintf("section %d has no title", si))
		}
		for bi, block := range section.Blocks {
			if err := block.validate(); err != nil {
				return errors.Wrap(errors.ErrCodeValidation,
					fmt.Sprintf("section %q block %d", section.Title, bi), err)
			}
		}
	}
	return nil
}

func (b *BlockSpec) validate() error {
	set := 0
	if b.Content != "" {
		set++
	}
	if b.Table != nil {
		set++
	}
	if b.Chart != nil {
		set++
	}
	if set != 1 {
		return errors.ErrValidation("block must set exactly one of content, table, chart")
	}
	if b.Table != nil {
		if b.Table.CSVFile == "" && len(b.Table.Columns) == 0 {
			return errors.ErrValidation("table requires columns or csv_file")
		}
		if b.Table.CSVFile != "" && len(b.Table.Columns) > 0 {
			return errors.ErrValidation("table cannot set both columns and csv_file")
		}
	}
	if b.Chart != nil {
		if b.Chart.Definition == "" && b.Chart.File == "" {
			return errors.ErrValidation("chart requires definition or file")
		}
		if b.Chart.Definition != "" && b.Chart.File != "" {
			return errors.ErrValidation("chart cannot set both definition and file")
		}
	}
	return nil
}

// LoadTheme loads the theme named by the manifest, or the default theme when
// none is named.
func (m *Manifest) LoadTheme() (report.Theme, error) {
	if m.Theme == "" {
		return report.DefaultTheme(), nil
	}
	return report.LoadTheme(m.resolve(m.Theme))
}

// Build constructs the report document from the manifest, loading any
// referenced CSV and chart files relative to the manifest location.
func (m *Manifest) Build() (*report.Report, error) {
	rpt := report.New(m.Report.Name, m.Report.Version, m.Report.Logo, m.Report.Title)

	for _, sectionSpec := range m.Sections {
		section := report.NewSection(sectionSpec.Title)
		for _, blockSpec := range sectionSpec.Blocks {
			if err := m.appendBlock(section, blockSpec); err != nil {
				return nil, fmt.Errorf("section %q: %w", sectionSpec.Title, err)
			}
		}
		if err := rpt.AddSection(section); err != nil {
			return nil, err
		}
	}

	logger.Info("Built report from manifest",
		zap.String("title", rpt.Title()),
		zap.Int("sections", len(rpt.Sections())),
	)
	return rpt, nil
}

func (m *Manifest) appendBlock(section *report.Section, spec BlockSpec) error {
	switch {
	case spec.Content != "":
		section.AddContent(spec.Content)
		return nil
	case spec.Table != nil:
		table, err := m.buildTable(spec.Table)
		if err != nil {
			return err
		}
		return section.AddTable(table)
	case spec.Chart != nil:
		chart, err := m.buildChart(spec.Chart)
		if err != nil {
			return err
		}
		return section.AddPlot(chart)
	}
	return errors.ErrValidation("empty block")
}

func (m *Manifest) buildTable(spec *TableSpec) (*report.Table, error) {
	columns := spec.Columns
	rows := spec.Rows

	if spec.CSVFile != "" {
		var err error
		columns, rows, err = m.readCSV(spec.CSVFile)
		if err != nil {
			return nil, err
		}
	}

	table, err := report.NewTableFromRecords(columns, rows)
	if err != nil {
		return nil, err
	}

	if spec.Sortable != nil {
		if err := table.SetSortable(*spec.Sortable); err != nil {
			return nil, err
		}
	}
	if spec.Searchable != nil {
		if err := table.SetSearchable(*spec.Searchable); err != nil {
			return nil, err
		}
	}
	if spec.Exportable != nil {
		if err := table.SetExportable(*spec.Exportable); err != nil {
			return nil, err
		}
	}
	for _, name := range spec.Unsortable {
		if err := table.SetColumnSortable(name, false); err != nil {
			return nil, err
		}
	}
	if spec.VirtualizeAbove > 0 {
		if err := table.SetVirtualizeAbove(spec.VirtualizeAbove); err != nil {
			return nil, err
		}
	}
	return table, nil
}

func (m *Manifest) buildChart(spec *ChartSpec) (*report.Chart, error) {
	definition := spec.Definition
	if spec.File != "" {
		data, err := os.ReadFile(m.resolve(spec.File))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeValidation,
				fmt.Sprintf("failed to read chart file %s", spec.File), err)
		}
		definition = string(data)
	}

	sizing := report.Responsive()
	if spec.Width > 0 && spec.Height > 0 {
		sizing = report.Fixed(spec.Width, spec.Height)
	}
	return report.NewChart(definition, sizing)
}

// readCSV loads a header row plus data rows from a CSV file.
func (m *Manifest) readCSV(name string) ([]string, [][]string, error) {
	path := m.resolve(name)
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeValidation,
			fmt.Sprintf("failed to open CSV %s", name), err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeValidation,
			fmt.Sprintf("failed to parse CSV %s", name), err)
	}
	if len(records) == 0 {
		return nil, nil, errors.ErrValidation(fmt.Sprintf("CSV %s is empty", name))
	}

	logger.Debug("Loaded table data from CSV",
		zap.String("path", path),
		zap.Int("columns", len(records[0])),
		zap.Int("rows", len(records)-1),
	)
	return records[0], records[1:], nil
}

// resolve makes a manifest-relative path absolute against the manifest dir.
func (m *Manifest) resolve(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(m.dir, name)
}
