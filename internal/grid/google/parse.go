package google

import (
	"fmt"
	"strconv"

	"doanhso/internal/core"
)

// toGrid converts a values matrix (as returned by the Sheets API with
// UNFORMATTED_VALUE rendering) into a cell grid.
func toGrid(values [][]interface{}) core.Grid {
	g := make(core.Grid, len(values))
	for i, row := range values {
		cells := make([]core.Cell, len(row))
		for j, v := range row {
			cells[j] = toCell(v)
		}
		g[i] = cells
	}
	return g
}

// toCell maps one API value to a cell. Unformatted numbers decode as
// float64; everything else without a natural cell type is kept as text so
// the extractor can decide what to do with it.
func toCell(v interface{}) core.Cell {
	switch val := v.(type) {
	case nil:
		return core.EmptyCell
	case string:
		if val == "" {
			return core.EmptyCell
		}
		return core.NewText(val)
	case float64:
		return core.NewNumber(val)
	case bool:
		return core.NewText(strconv.FormatBool(val))
	default:
		return core.NewText(fmt.Sprint(val))
	}
}
