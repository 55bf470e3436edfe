// Package xlsx decodes uploaded .xlsx workbooks into cell grids.
package xlsx

import (
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"doanhso/internal/core"
)

// Decode reads the first sheet of an .xlsx workbook into a grid. String
// cells become text cells; number-typed cells (including date and time
// serials) become numeric cells with their raw value preserved, so an
// Excel time fraction arrives as the fraction and not a formatted string.
func Decode(r io.Reader) (core.Grid, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrDecodeFailure, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", core.ErrDecodeFailure)
	}
	sheet := sheets[0]

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: read sheet %q: %v", core.ErrDecodeFailure, sheet, err)
	}

	grid := make(core.Grid, len(rows))
	for i, row := range rows {
		cells := make([]core.Cell, len(row))
		for j, raw := range row {
			cells[j] = typedCell(f, sheet, j, i, raw)
		}
		grid[i] = cells
	}
	return grid, nil
}

// typedCell classifies one raw cell value. The xlsx format marks string
// cells explicitly but leaves the type attribute off plain numbers, so
// anything not string-typed that parses as a float is numeric.
func typedCell(f *excelize.File, sheet string, col, row int, raw string) core.Cell {
	if raw == "" {
		return core.EmptyCell
	}
	name, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return core.NewText(raw)
	}
	if ct, err := f.GetCellType(sheet, name); err == nil {
		switch ct {
		case excelize.CellTypeSharedString, excelize.CellTypeInlineString:
			return core.NewText(raw)
		}
	}
	if v, err := strconv.ParseFloat(raw, 64); err == nil {
		return core.NewNumber(v)
	}
	return core.NewText(raw)
}
