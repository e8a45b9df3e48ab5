package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/singjc/report-builder/pkg/errors"
)

func TestNewTable(t *testing.T) {
	tbl, err := NewTable("Name", "Score")
	require.NoError(t, err)

	assert.Equal(t, []string{"Name", "Score"}, tbl.Columns())
	assert.Zero(t, tbl.RowCount())
	assert.True(t, strings.HasPrefix(tbl.ID(), "tbl-"))

	// Interactive features default on
	assert.True(t, tbl.Sortable())
	assert.True(t, tbl.Searchable())
	assert.True(t, tbl.Exportable())
	assert.Zero(t, tbl.VirtualizeAbove())
}

func TestNewTable_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		columns  []string
		wantCode errors.ErrorCode
	}{
		{"no columns", nil, errors.ErrCodeNoColumns},
		{"empty column name", []string{"A", ""}, errors.ErrCodeValidation},
		{"duplicate column", []string{"A", "B", "A"}, errors.ErrCodeDuplicateColumn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTable(tt.columns...)
			require.Error(t, err)

			appErr, ok := errors.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, tt.wantCode, appErr.Code)
		})
	}
}

func TestNewTableFromRecords(t *testing.T) {
	tbl, err := NewTableFromRecords(
		[]string{"Region", "Revenue"},
		[][]string{{"North", "1200"}, {"South", "950"}},
	)
	require.NoError(t, err)
	assert.Equal(t, 2, tbl.RowCount())
	assert.Equal(t, "North", tbl.Rows()[0][0].Display)
}

func TestNewTableFromRecords_RaggedInput(t *testing.T) {
	_, err := NewTableFromRecords(
		[]string{"A", "B"},
		[][]string{{"1", "2"}, {"3"}},
	)
	require.Error(t, err)

	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeRowWidth, appErr.Code)
}

func TestTable_AddColumn(t *testing.T) {
	tbl, err := NewTable("A")
	require.NoError(t, err)

	require.NoError(t, tbl.AddColumn("B"))
	assert.Equal(t, []string{"A", "B"}, tbl.Columns())
}

func TestTable_AddColumn_AfterRows(t *testing.T) {
	tbl, err := NewTable("A")
	require.NoError(t, err)
	require.NoError(t, tbl.AddTextRow("1"))

	// Columns are frozen once the first row exists
	assert.Error(t, tbl.AddColumn("B"))
	assert.Equal(t, []string{"A"}, tbl.Columns())
}

func TestTable_AddColumn_Duplicate(t *testing.T) {
	tbl, err := NewTable("A")
	require.NoError(t, err)
	assert.Error(t, tbl.AddColumn("A"))
}

func TestTable_AddRow(t *testing.T) {
	tbl, err := NewTable("Name", "Score")
	require.NoError(t, err)

	require.NoError(t, tbl.AddRow(Text("alpha"), Value("10", "10")))
	require.Equal(t, 1, tbl.RowCount())

	row := tbl.Rows()[0]
	assert.Equal(t, "alpha", row[0].Display)
	assert.Empty(t, row[0].Sort)
	assert.Equal(t, "10", row[1].Sort)
}

func TestTable_AddRow_WidthMismatch(t *testing.T) {
	tbl, err := NewTable("A", "B")
	require.NoError(t, err)
	require.NoError(t, tbl.AddTextRow("1", "2"))

	err = tbl.AddRow(Text("only-one"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row has 1 cells, table has 2 columns")

	// The offending row is rejected without touching existing rows
	assert.Equal(t, 1, tbl.RowCount())
}

func TestTable_Flags(t *testing.T) {
	tbl, err := NewTable("A")
	require.NoError(t, err)

	require.NoError(t, tbl.SetSortable(false))
	require.NoError(t, tbl.SetSearchable(false))
	require.NoError(t, tbl.SetExportable(false))

	assert.False(t, tbl.Sortable())
	assert.False(t, tbl.Searchable())
	assert.False(t, tbl.Exportable())
}

func TestTable_ColumnSortable(t *testing.T) {
	tbl, err := NewTable("A", "B", "C")
	require.NoError(t, err)

	require.NoError(t, tbl.SetColumnSortable("B", false))

	assert.True(t, tbl.ColumnSortable(0))
	assert.False(t, tbl.ColumnSortable(1))
	assert.True(t, tbl.ColumnSortable(2))

	// Re-enabling clears the override
	require.NoError(t, tbl.SetColumnSortable("B", true))
	assert.True(t, tbl.ColumnSortable(1))

	// Table-wide flag dominates per-column overrides
	require.NoError(t, tbl.SetSortable(false))
	assert.False(t, tbl.ColumnSortable(0))
}

func TestTable_SetColumnSortable_UnknownColumn(t *testing.T) {
	tbl, err := NewTable("A")
	require.NoError(t, err)
	assert.Error(t, tbl.SetColumnSortable("missing", false))
}

func TestTable_SetVirtualizeAbove(t *testing.T) {
	tbl, err := NewTable("A")
	require.NoError(t, err)

	require.NoError(t, tbl.SetVirtualizeAbove(100))
	assert.Equal(t, 100, tbl.VirtualizeAbove())

	assert.Error(t, tbl.SetVirtualizeAbove(-1))

	require.NoError(t, tbl.SetVirtualizeAbove(0))
	assert.Zero(t, tbl.VirtualizeAbove())
}

func TestTable_SealedAfterAttach(t *testing.T) {
	tbl, err := NewTable("A")
	require.NoError(t, err)
	require.NoError(t, tbl.AddTextRow("1"))

	s := NewSection("Data")
	require.NoError(t, s.AddTable(tbl))

	// Every mutation is rejected once the table belongs to a section
	assert.Error(t, tbl.AddColumn("B"))
	assert.Error(t, tbl.AddRow(Text("2")))
	assert.Error(t, tbl.SetSortable(false))
	assert.Error(t, tbl.SetSearchable(false))
	assert.Error(t, tbl.SetExportable(false))
	assert.Error(t, tbl.SetColumnSortable("A", false))
	assert.Error(t, tbl.SetVirtualizeAbove(10))

	// And it cannot be attached a second time
	assert.Error(t, NewSection("Other").AddTable(tbl))
}

func TestTable_WriteCSV(t *testing.T) {
	tbl, err := NewTable("a", "b")
	require.NoError(t, err)
	require.NoError(t, tbl.AddTextRow("1", "x"))
	require.NoError(t, tbl.AddTextRow("2", `y, z`))

	var buf bytes.Buffer
	require.NoError(t, tbl.WriteCSV(&buf))

	// Standard quoting: only the field containing the delimiter is quoted
	assert.Equal(t, "a,b\n1,x\n2,\"y, z\"\n", buf.String())
}

func TestTable_WriteCSV_QuotesAndNewlines(t *testing.T) {
	tbl, err := NewTable("v")
	require.NoError(t, err)
	require.NoError(t, tbl.AddTextRow(`say "hi"`))
	require.NoError(t, tbl.AddTextRow("line1\nline2"))

	var buf bytes.Buffer
	require.NoError(t, tbl.WriteCSV(&buf))

	out := buf.String()
	assert.Contains(t, out, "\"say \"\"hi\"\"\"")
	assert.Contains(t, out, "\"line1\nline2\"")
}
