// Package dataset holds a named collection of equal-length columns, the
// unit the validator runs rules against.
package dataset

import (
	"errors"
	"fmt"

	"github.com/okonkwo-labs/dqcheck/src/column"
)

// ErrDuplicateHeader is returned by New when two headers share a name.
var ErrDuplicateHeader = errors.New("duplicate column header")

// ErrLengthMismatch is returned by New when columns do not share one length.
var ErrLengthMismatch = errors.New("columns do not share a common length")

// ErrHeaderColumnCountMismatch is returned by New when the header and
// column slices differ in length.
var ErrHeaderColumnCountMismatch = errors.New("header count does not match column count")

// Dataset is an ordered, named collection of same-length Columns.
type Dataset struct {
	headers []string
	columns []*column.Column
	index   map[string]int
}

// New builds a Dataset from parallel headers and columns slices. It
// rejects duplicate headers and columns of differing lengths, since
// neither can be serviced by ColumnByName/Shape afterwards.
func New(headers []string, columns []*column.Column) (*Dataset, error) {
	if len(headers) != len(columns) {
		return nil, fmt.Errorf("%w: %d headers, %d columns", ErrHeaderColumnCountMismatch, len(headers), len(columns))
	}
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		if _, exists := index[h]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateHeader, h)
		}
		index[h] = i
	}
	if len(columns) > 0 {
		rows := columns[0].Len()
		for i, c := range columns {
			if c.Len() != rows {
				return nil, fmt.Errorf("%w: column %q has %d rows, expected %d", ErrLengthMismatch, headers[i], c.Len(), rows)
			}
		}
	}
	return &Dataset{headers: append([]string(nil), headers...), columns: columns, index: index}, nil
}

// Shape reports (rows, columns). A dataset with no columns has zero rows.
func (d *Dataset) Shape() (rows, cols int) {
	cols = len(d.columns)
	if cols == 0 {
		return 0, 0
	}
	return d.columns[0].Len(), cols
}

// Headers returns the ordered column names.
func (d *Dataset) Headers() []string {
	return append([]string(nil), d.headers...)
}

// ColumnByName looks up a column by header. ok is false when no column
// carries that name.
func (d *Dataset) ColumnByName(name string) (col *column.Column, ok bool) {
	i, found := d.index[name]
	if !found {
		return nil, false
	}
	return d.columns[i], true
}

// ColumnByIndex looks up a column by position. An out-of-range index
// yields not-found, not an error.
func (d *Dataset) ColumnByIndex(i int) (col *column.Column, ok bool) {
	if i < 0 || i >= len(d.columns) {
		return nil, false
	}
	return d.columns[i], true
}

// ColumnIndex returns the position of the named column, or not-found.
func (d *Dataset) ColumnIndex(name string) (idx int, ok bool) {
	i, found := d.index[name]
	return i, found
}
