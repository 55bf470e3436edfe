// Package grid defines the inbound port for sheet sources.
package grid

import (
	"context"

	"doanhso/internal/core"
)

// Source reads a spreadsheet as an untyped cell grid. Implementations
// decode one sheet only; which sheet is an implementation detail.
type Source interface {
	ReadGrid(ctx context.Context) (core.Grid, error)
}
