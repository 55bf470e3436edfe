package xlsx

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"doanhso/internal/core"
)

// buildWorkbook writes a small sheet mirroring the sales export layout:
// a title row, the header row, then data rows mixing cell types.
func buildWorkbook(t *testing.T) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows := []struct {
		cell   string
		values []interface{}
	}{
		{"A1", []interface{}{"BÁO CÁO DOANH SỐ"}},
		{"A2", []interface{}{"Ngày", "Giờ", "Thành tiền (VNĐ)"}},
		{"A3", []interface{}{"01/05/2024", 0.5, "100,000"}},
		{"A4", []interface{}{"01/05/2024", "13:00:00", 50000}},
	}
	for _, r := range rows {
		if err := f.SetSheetRow(sheet, r.cell, &r.values); err != nil {
			t.Fatalf("set row %s: %v", r.cell, err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}

func TestDecodeCellTyping(t *testing.T) {
	grid, err := Decode(bytes.NewReader(buildWorkbook(t)))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(grid) != 4 {
		t.Fatalf("rows: got %d, want 4", len(grid))
	}

	// Header labels arrive as text.
	if s, ok := grid[1][2].Text(); !ok || s != "Thành tiền (VNĐ)" {
		t.Fatalf("header cell: got %v", grid[1][2])
	}
	// Numeric time cell keeps its raw day fraction.
	if v, ok := grid[2][1].Number(); !ok || v != 0.5 {
		t.Fatalf("time fraction cell: got %v", grid[2][1])
	}
	// Comma-grouped amount stays text for the extractor to normalize.
	if s, ok := grid[2][2].Text(); !ok || s != "100,000" {
		t.Fatalf("amount text cell: got %v", grid[2][2])
	}
	// Plain numeric amount is a number.
	if v, ok := grid[3][2].Number(); !ok || v != 50000 {
		t.Fatalf("amount number cell: got %v", grid[3][2])
	}
}

func TestDecodeFeedsExtraction(t *testing.T) {
	grid, err := Decode(bytes.NewReader(buildWorkbook(t)))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	// Spot-check that the decoded grid satisfies the extractor's input
	// contract: the header row is discoverable by exact label match.
	found := false
	for _, row := range grid {
		for _, c := range row {
			if s, ok := c.Text(); ok && s == core.DefaultLabels.Date {
				found = true
			}
		}
	}
	if !found {
		t.Fatal("date label not found in decoded grid")
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := Decode(strings.NewReader("not a zip archive"))
	if !errors.Is(err, core.ErrDecodeFailure) {
		t.Fatalf("got %v, want ErrDecodeFailure", err)
	}
}
