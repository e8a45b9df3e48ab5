package report

import (
	"encoding/csv"
	"io"

	"github.com/singjc/report-builder/pkg/errors"
	"github.com/singjc/report-builder/pkg/idgen"
)

// Cell is one table value: the text shown in the document plus an optional
// raw sort key. When Sort is empty the client-side behavior falls back to a
// best-effort typed comparison of the display text (numeric when the whole
// trimmed text parses as a number, lexicographic otherwise).
type Cell struct {
	Display string
	Sort    string
}

// Text creates a cell with display text only.
func Text(display string) Cell {
	return Cell{Display: display}
}

// Value creates a cell with display text and an explicit raw sort key.
func Value(display, sort string) Cell {
	return Cell{Display: display, Sort: sort}
}

// textCells converts plain strings to cells.
func textCells(values []string) []Cell {
	cells := make([]Cell, len(values))
	for i, v := range values {
		cells[i] = Cell{Display: v}
	}
	return cells
}

// Table is a structured, interactive dataset. Every row has exactly as many
// cells as there are columns; violations are rejected at the offending call,
// never deferred to render time. A table becomes immutable once added to a
// section.
type Table struct {
	id         string
	columns    []string
	rows       [][]Cell
	sortable   bool
	searchable bool
	exportable bool
	// unsortable marks per-column exceptions when the table itself is sortable
	unsortable map[int]bool
	// virtualizeAbove is the optional row-count threshold beyond which the
	// behavior script chunks row display; 0 disables chunking
	virtualizeAbove int
	sealed          bool
}

// NewTable creates an empty interactive table with the given columns.
// Column names must be non-empty and unique within the table.
// Sorting, searching, and export are enabled by default.
func NewTable(columns ...string) (*Table, error) {
	if len(columns) == 0 {
		return nil, errors.New(errors.ErrCodeNoColumns, "table requires at least one column")
	}
	seen := make(map[string]bool, len(columns))
	for _, name := range columns {
		if name == "" {
			return nil, errors.ErrValidation("column name must not be empty")
		}
		if seen[name] {
			return nil, errors.ErrDuplicateColumn(name)
		}
		seen[name] = true
	}
	return &Table{
		id:         idgen.NewTableID(),
		columns:    append([]string(nil), columns...),
		sortable:   true,
		searchable: true,
		exportable: true,
		unsortable: make(map[int]bool),
	}, nil
}

// NewTableFromRecords builds a table in one call from a rectangular dataset
// of display strings.
func NewTableFromRecords(columns []string, records [][]string) (*Table, error) {
	t, err := NewTable(columns...)
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		if err := t.AddTextRow(rec...); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// ID returns the table's DOM identifier.
func (t *Table) ID() string { return t.id }

// Columns returns the column names in their defined order.
func (t *Table) Columns() []string { return t.columns }

// Rows returns the table rows in append order.
// The returned slice is shared; callers must not modify it.
func (t *Table) Rows() [][]Cell { return t.rows }

// RowCount returns the number of data rows.
func (t *Table) RowCount() int { return len(t.rows) }

// Sortable reports whether header-click sorting is enabled table-wide.
func (t *Table) Sortable() bool { return t.sortable }

// Searchable reports whether the free-text row filter is enabled.
func (t *Table) Searchable() bool { return t.searchable }

// Exportable reports whether CSV export of the current view is enabled.
func (t *Table) Exportable() bool { return t.exportable }

// VirtualizeAbove returns the chunked-display threshold, 0 when disabled.
func (t *Table) VirtualizeAbove() int { return t.virtualizeAbove }

// ColumnSortable reports whether the column at index is sortable, combining
// the table-wide flag with per-column overrides.
func (t *Table) ColumnSortable(index int) bool {
	return t.sortable && !t.unsortable[index]
}

// AddColumn appends a column. Columns can only be added before any rows
// exist, keeping the dataset rectangular by construction.
func (t *Table) AddColumn(name string) error {
	if t.sealed {
		return errSealed()
	}
	if len(t.rows) > 0 {
		return errors.ErrValidation("cannot add a column after rows were added")
	}
	if name == "" {
		return errors.ErrValidation("column name must not be empty")
	}
	for _, existing := range t.columns {
		if existing == name {
			return errors.ErrDuplicateColumn(name)
		}
	}
	t.columns = append(t.columns, name)
	return nil
}

// AddRow appends one row of cells. The cell count must equal the column
// count; a mismatched row is rejected immediately and the table is unchanged.
func (t *Table) AddRow(cells ...Cell) error {
	if t.sealed {
		return errSealed()
	}
	if len(cells) != len(t.columns) {
		return errors.ErrRowWidth(len(t.columns), len(cells))
	}
	t.rows = append(t.rows, append([]Cell(nil), cells...))
	return nil
}

// AddTextRow appends one row of display-only values.
func (t *Table) AddTextRow(values ...string) error {
	if len(values) != len(t.columns) {
		return errors.ErrRowWidth(len(t.columns), len(values))
	}
	return t.AddRow(textCells(values)...)
}

// SetSortable toggles header-click sorting table-wide.
func (t *Table) SetSortable(sortable bool) error {
	if t.sealed {
		return errSealed()
	}
	t.sortable = sortable
	return nil
}

// SetColumnSortable overrides sortability for one column by name.
func (t *Table) SetColumnSortable(name string, sortable bool) error {
	if t.sealed {
		return errSealed()
	}
	for i, col := range t.columns {
		if col == name {
			if sortable {
				delete(t.unsortable, i)
			} else {
				t.unsortable[i] = true
			}
			return nil
		}
	}
	return errors.ErrValidation("unknown column " + name)
}

// SetSearchable toggles the free-text row filter.
func (t *Table) SetSearchable(searchable bool) error {
	if t.sealed {
		return errSealed()
	}
	t.searchable = searchable
	return nil
}

// SetExportable toggles CSV export of the current view.
func (t *Table) SetExportable(exportable bool) error {
	if t.sealed {
		return errSealed()
	}
	t.exportable = exportable
	return nil
}

// SetVirtualizeAbove sets the optional row-count threshold above which the
// behavior script chunks row display. Sort, search, and export operate on
// the full row set regardless. Pass 0 to disable.
func (t *Table) SetVirtualizeAbove(threshold int) error {
	if t.sealed {
		return errSealed()
	}
	if threshold < 0 {
		return errors.ErrValidation("virtualization threshold must not be negative")
	}
	t.virtualizeAbove = threshold
	return nil
}

// WriteCSV writes the full table (header row, then data rows in append
// order) as CSV with standard quoting. This is the server-side counterpart
// of the in-document export, which reflects the viewer's filtered and
// sorted state instead.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.columns); err != nil {
		return errors.Wrap(errors.ErrCodeWriteFailed, "failed to write CSV header", err)
	}
	record := make([]string, len(t.columns))
	for _, row := range t.rows {
		for i, cell := range row {
			record[i] = cell.Display
		}
		if err := cw.Write(record); err != nil {
			return errors.Wrap(errors.ErrCodeWriteFailed, "failed to write CSV row", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return errors.Wrap(errors.ErrCodeWriteFailed, "failed to flush CSV", err)
	}
	return nil
}

// seal marks the table immutable once it is attached to a section.
func (t *Table) seal() error {
	if t.sealed {
		return errors.ErrValidation("table is already attached to a section")
	}
	t.sealed = true
	return nil
}

func errSealed() error {
	return errors.ErrValidation("table is immutable once added to a section")
}
