// Package compressor packs sparse parsing tables.
package compressor

import (
	"fmt"
	"sort"
)

// Table is a dense table stored in row-major order.
type Table struct {
	entries  []int
	rowCount int
	colCount int
}

func NewTable(entries []int, colCount int) (*Table, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("a table must have at least one entry")
	}
	if colCount <= 0 {
		return nil, fmt.Errorf("a column count must be positive: %v", colCount)
	}
	if len(entries)%colCount != 0 {
		return nil, fmt.Errorf("entry count %v is not a multiple of column count %v", len(entries), colCount)
	}

	return &Table{
		entries:  entries,
		rowCount: len(entries) / colCount,
		colCount: colCount,
	}, nil
}

func (t *Table) at(row, col int) int {
	return t.entries[row*t.colCount+col]
}

// noRow marks a slot of Bounds no row owns.
const noRow = -1

// RowDisplacementTable overlays the rows of a sparse table on one array. Row r starts at
// RowDisplacement[r], and Bounds records which row owns each slot, so a slot owned by another row
// reads as EmptyValue.
type RowDisplacementTable struct {
	RowCount        int   `json:"row_count"`
	ColCount        int   `json:"col_count"`
	EmptyValue      int   `json:"empty_value"`
	Entries         []int `json:"entries"`
	Bounds          []int `json:"bounds"`
	RowDisplacement []int `json:"row_displacement"`
}

type rowInfo struct {
	num  int
	cols []int
}

// Compress packs every entry of orig that differs from emptyValue. orig is left untouched.
func Compress(orig *Table, emptyValue int) *RowDisplacementTable {
	rows := make([]*rowInfo, orig.rowCount)
	for row := range rows {
		r := &rowInfo{
			num: row,
		}
		for col := 0; col < orig.colCount; col++ {
			if orig.at(row, col) != emptyValue {
				r.cols = append(r.cols, col)
			}
		}
		rows[row] = r
	}
	// Dense rows go first so that sparse rows fill the gaps they leave.
	sort.SliceStable(rows, func(i, j int) bool {
		return len(rows[i].cols) > len(rows[j].cols)
	})

	size := len(orig.entries)
	entries := make([]int, size)
	bounds := make([]int, size)
	for i := 0; i < size; i++ {
		entries[i] = emptyValue
		bounds[i] = noRow
	}

	displacement := make([]int, orig.rowCount)
	bottom := orig.colCount
	next := 0
	for _, r := range rows {
		if len(r.cols) == 0 {
			continue
		}

		for overlaps(entries, emptyValue, next, r.cols) {
			next++
		}
		displacement[r.num] = next
		for _, col := range r.cols {
			entries[next+col] = orig.at(r.num, col)
			bounds[next+col] = r.num
		}
		bottom = next + orig.colCount
		next++
	}

	return &RowDisplacementTable{
		RowCount:        orig.rowCount,
		ColCount:        orig.colCount,
		EmptyValue:      emptyValue,
		Entries:         entries[:bottom],
		Bounds:          bounds[:bottom],
		RowDisplacement: displacement,
	}
}

func overlaps(entries []int, emptyValue int, displacement int, cols []int) bool {
	for _, col := range cols {
		if entries[displacement+col] != emptyValue {
			return true
		}
	}
	return false
}

func (t *RowDisplacementTable) Lookup(row, col int) (int, error) {
	if row < 0 || row >= t.RowCount || col < 0 || col >= t.ColCount {
		return t.EmptyValue, fmt.Errorf("indexes are out of range: [%v, %v]", row, col)
	}
	d := t.RowDisplacement[row]
	if t.Bounds[d+col] != row {
		return t.EmptyValue, nil
	}
	return t.Entries[d+col], nil
}

// Size returns the row and column counts of the original table.
func (t *RowDisplacementTable) Size() (int, int) {
	return t.RowCount, t.ColCount
}
