package core

// CellKind discriminates the value held by a Cell.
type CellKind int

const (
	CellEmpty CellKind = iota
	CellText
	CellNumber
)

type (
	// Cell is one untyped spreadsheet cell: empty, a text value, or a
	// numeric value. Column meaning is discovered at runtime from the
	// header row, never assumed from position.
	Cell struct {
		kind CellKind
		text string
		num  float64
	}

	// Grid is a decoded sheet in row-major order. Rows may be ragged;
	// readers must bounds-check column access.
	Grid [][]Cell
)

// NewText creates a text cell.
func NewText(s string) Cell {
	return Cell{kind: CellText, text: s}
}

// NewNumber creates a numeric cell.
func NewNumber(v float64) Cell {
	return Cell{kind: CellNumber, num: v}
}

// EmptyCell is the zero cell.
var EmptyCell = Cell{}

// Kind returns the cell discriminant.
func (c Cell) Kind() CellKind {
	return c.kind
}

// IsEmpty reports whether the cell holds no value.
func (c Cell) IsEmpty() bool {
	return c.kind == CellEmpty
}

// Text returns the text value and whether the cell is a text cell.
func (c Cell) Text() (string, bool) {
	return c.text, c.kind == CellText
}

// Number returns the numeric value and whether the cell is a number cell.
func (c Cell) Number() (float64, bool) {
	return c.num, c.kind == CellNumber
}

// String renders the cell for logs and error messages.
func (c Cell) String() string {
	switch c.kind {
	case CellText:
		return c.text
	case CellNumber:
		return formatFloat(c.num)
	default:
		return ""
	}
}
