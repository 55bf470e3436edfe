package google

import (
	"testing"

	"doanhso/internal/core"
	"doanhso/internal/extract"
)

// Emulates a values matrix as the Sheets API returns it with
// UNFORMATTED_VALUE rendering: strings for text, float64 for numbers.
func TestToGridCellTypes(t *testing.T) {
	values := [][]interface{}{
		{"Ngày", "Giờ", "Thành tiền (VNĐ)"},
		{"01/05/2024", 0.5, "100,000"},
		{"01/05/2024", "13:00:00", 50000.0},
		{nil, "", true},
	}
	g := toGrid(values)

	if len(g) != 4 {
		t.Fatalf("rows: got %d, want 4", len(g))
	}
	if v, ok := g[1][1].Number(); !ok || v != 0.5 {
		t.Fatalf("fraction cell: got %v", g[1][1])
	}
	if s, ok := g[2][1].Text(); !ok || s != "13:00:00" {
		t.Fatalf("text time cell: got %v", g[2][1])
	}
	if !g[3][0].IsEmpty() || !g[3][1].IsEmpty() {
		t.Fatalf("nil and empty-string values must map to empty cells")
	}
	if s, ok := g[3][2].Text(); !ok || s != "true" {
		t.Fatalf("bool cell: got %v", g[3][2])
	}
}

func TestToGridFeedsExtraction(t *testing.T) {
	values := [][]interface{}{
		{"Ngày", "Giờ", "Thành tiền (VNĐ)"},
		{"01/05/2024", 0.5, "100,000"},
		{"01/05/2024", "13:00:00", 50000.0},
	}
	snap, err := extract.New(core.DefaultLabels).Extract(toGrid(values))
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(snap.Transactions) != 2 {
		t.Fatalf("transactions: got %d, want 2", len(snap.Transactions))
	}
	if got := snap.Transactions[0].Time; got != "12:00:00" {
		t.Fatalf("normalized fraction: got %q", got)
	}
}
