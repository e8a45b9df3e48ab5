package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/singjc/report-builder/report"
)

// writeManifest writes a manifest file plus any side files into a temp dir
// and returns the manifest path
func writeManifest(t *testing.T, content string, sideFiles map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, data := range sideFiles {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(data), 0644))
	}
	path := filepath.Join(dir, "report.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const fullManifest = `
report:
  name: osprey
  version: 2.1.0
  logo: img/logo.svg
  title: Run Summary
sections:
  - title: Overview
    blocks:
      - content: "<p>All systems nominal.</p>"
  - title: Data
    blocks:
      - table:
          columns: [Region, Revenue]
          rows:
            - [North, "1200"]
            - [South, "950"]
          unsortable_columns: [Region]
      - chart:
          definition: '{"data":[{"type":"bar","y":[1200,950]}]}'
          width: 800
          height: 400
`

func TestLoad(t *testing.T) {
	path := writeManifest(t, fullManifest, nil)

	m, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "osprey", m.Report.Name)
	assert.Equal(t, "2.1.0", m.Report.Version)
	assert.Equal(t, "Run Summary", m.Report.Title)
	require.Len(t, m.Sections, 2)
	assert.Equal(t, "Overview", m.Sections[0].Title)
	require.Len(t, m.Sections[1].Blocks, 2)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeManifest(t, "report: [unclosed", nil)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name     string
		manifest string
		wantErr  string
	}{
		{
			name:     "missing title",
			manifest: "report:\n  name: osprey\n",
			wantErr:  "report.title",
		},
		{
			name:     "missing name",
			manifest: "report:\n  title: T\n",
			wantErr:  "report.name",
		},
		{
			name: "section without title",
			manifest: `
report: {name: osprey, title: T}
sections:
  - blocks: []
`,
			wantErr: "no title",
		},
		{
			name: "block with two payloads",
			manifest: `
report: {name: osprey, title: T}
sections:
  - title: S
    blocks:
      - content: x
        chart: {definition: '{}'}
`,
			wantErr: "exactly one",
		},
		{
			name: "empty block",
			manifest: `
report: {name: osprey, title: T}
sections:
  - title: S
    blocks:
      - {}
`,
			wantErr: "exactly one",
		},
		{
			name: "table with neither columns nor csv",
			manifest: `
report: {name: osprey, title: T}
sections:
  - title: S
    blocks:
      - table: {rows: []}
`,
			wantErr: "columns or csv_file",
		},
		{
			name: "chart with both definition and file",
			manifest: `
report: {name: osprey, title: T}
sections:
  - title: S
    blocks:
      - chart: {definition: '{}', file: c.json}
`,
			wantErr: "cannot set both",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeManifest(t, tt.manifest, nil)
			_, err := Load(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestManifest_Build(t *testing.T) {
	path := writeManifest(t, fullManifest, nil)
	m, err := Load(path)
	require.NoError(t, err)

	rpt, err := m.Build()
	require.NoError(t, err)

	assert.Equal(t, "osprey", rpt.Name())
	assert.Equal(t, "Run Summary", rpt.Title())
	require.Len(t, rpt.Sections(), 2)

	data := rpt.Sections()[1]
	blocks := data.Blocks()
	require.Len(t, blocks, 2)

	table := blocks[0].Table()
	require.NotNil(t, table)
	assert.Equal(t, []string{"Region", "Revenue"}, table.Columns())
	assert.Equal(t, 2, table.RowCount())
	assert.False(t, table.ColumnSortable(0))
	assert.True(t, table.ColumnSortable(1))

	chart := blocks[1].Chart()
	require.NotNil(t, chart)
	assert.False(t, chart.Sizing().Responsive)
	assert.Equal(t, 800, chart.Sizing().Width)
}

func TestManifest_Build_TableFromCSV(t *testing.T) {
	manifest := `
report: {name: osprey, title: CSV Import}
sections:
  - title: Data
    blocks:
      - table:
          csv_file: data.csv
          virtualize_above: 1
`
	csvData := "Name,Score\nalpha,10\nbeta,20\n"
	path := writeManifest(t, manifest, map[string]string{"data.csv": csvData})

	m, err := Load(path)
	require.NoError(t, err)

	rpt, err := m.Build()
	require.NoError(t, err)

	table := rpt.Sections()[0].Blocks()[0].Table()
	require.NotNil(t, table)
	assert.Equal(t, []string{"Name", "Score"}, table.Columns())
	assert.Equal(t, 2, table.RowCount())
	assert.Equal(t, "beta", table.Rows()[1][0].Display)
	assert.Equal(t, 1, table.VirtualizeAbove())
}

func TestManifest_Build_MissingCSV(t *testing.T) {
	manifest := `
report: {name: osprey, title: T}
sections:
  - title: Data
    blocks:
      - table: {csv_file: missing.csv}
`
	m, err := Load(writeManifest(t, manifest, nil))
	require.NoError(t, err)

	_, err = m.Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.csv")
}

func TestManifest_Build_ChartFromFile(t *testing.T) {
	manifest := `
report: {name: osprey, title: T}
sections:
  - title: Viz
    blocks:
      - chart: {file: chart.json}
`
	spec := `{"data":[{"type":"scatter"}]}`
	m, err := Load(writeManifest(t, manifest, map[string]string{"chart.json": spec}))
	require.NoError(t, err)

	rpt, err := m.Build()
	require.NoError(t, err)

	chart := rpt.Sections()[0].Blocks()[0].Chart()
	require.NotNil(t, chart)
	assert.Equal(t, spec, chart.Definition())
	assert.True(t, chart.Sizing().Responsive)
}

func TestManifest_Build_InvalidChartJSON(t *testing.T) {
	manifest := `
report: {name: osprey, title: T}
sections:
  - title: Viz
    blocks:
      - chart: {definition: "not json"}
`
	m, err := Load(writeManifest(t, manifest, nil))
	require.NoError(t, err)

	_, err = m.Build()
	assert.Error(t, err)
}

func TestManifest_Build_DisabledFeatures(t *testing.T) {
	manifest := `
report: {name: osprey, title: T}
sections:
  - title: Data
    blocks:
      - table:
          columns: [A]
          rows: [["1"]]
          sortable: false
          searchable: false
          exportable: false
`
	m, err := Load(writeManifest(t, manifest, nil))
	require.NoError(t, err)

	rpt, err := m.Build()
	require.NoError(t, err)

	table := rpt.Sections()[0].Blocks()[0].Table()
	assert.False(t, table.Sortable())
	assert.False(t, table.Searchable())
	assert.False(t, table.Exportable())
}

func TestManifest_LoadTheme(t *testing.T) {
	// Without a theme reference the default applies
	m, err := Load(writeManifest(t, fullManifest, nil))
	require.NoError(t, err)

	theme, err := m.LoadTheme()
	require.NoError(t, err)
	assert.Equal(t, report.DefaultTheme(), theme)
}

func TestManifest_LoadTheme_FromFile(t *testing.T) {
	manifest := `
report: {name: osprey, title: Themed}
theme: theme.yaml
sections: []
`
	m, err := Load(writeManifest(t, manifest, map[string]string{
		"theme.yaml": "accent: \"#ee3344\"\n",
	}))
	require.NoError(t, err)

	theme, err := m.LoadTheme()
	require.NoError(t, err)
	assert.Equal(t, "#ee3344", theme.Accent)
}
