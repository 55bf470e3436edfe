// Package extract locates the header row inside an untyped sheet grid and
// normalizes the rows below it into transactions.
package extract

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"doanhso/internal/core"
)

// Extractor converts grids into snapshots using a fixed label set.
// It carries no other state; Extract is a pure function of its input.
type Extractor struct {
	labels core.Labels
}

// New returns an extractor for the given header labels.
func New(labels core.Labels) *Extractor {
	return &Extractor{labels: labels}
}

// Extract scans the grid top to bottom for the first row containing all
// three required labels, resolves the date/time/amount columns from that
// row, and normalizes every following row. Rows that fail to normalize are
// dropped silently; trailing blank and summary rows are expected in the
// source format and must not fail the extraction.
//
// Returns core.ErrHeaderNotFound when no row carries all three labels.
func (e *Extractor) Extract(grid core.Grid) (*core.Snapshot, error) {
	headerRow := -1
	for i, row := range grid {
		if indexOf(row, e.labels.Date) >= 0 &&
			indexOf(row, e.labels.Time) >= 0 &&
			indexOf(row, e.labels.Amount) >= 0 {
			headerRow = i
			break
		}
	}
	if headerRow < 0 {
		return nil, fmt.Errorf("%w: want %q, %q and %q in one row",
			core.ErrHeaderNotFound, e.labels.Date, e.labels.Time, e.labels.Amount)
	}

	header := grid[headerRow]
	dateCol := indexOf(header, e.labels.Date)
	timeCol := indexOf(header, e.labels.Time)
	amountCol := indexOf(header, e.labels.Amount)

	snap := &core.Snapshot{}
	seen := map[string]struct{}{}
	for _, row := range grid[headerRow+1:] {
		tx, ok := normalizeRow(row, dateCol, timeCol, amountCol)
		if !ok {
			continue
		}
		snap.Transactions = append(snap.Transactions, tx)
		if _, dup := seen[tx.Date]; !dup {
			seen[tx.Date] = struct{}{}
			snap.Dates = append(snap.Dates, tx.Date)
		}
	}
	return snap, nil
}

// normalizeRow applies the per-column rules to one data row. The row is
// kept only with a non-empty date, a non-empty time and a finite amount.
func normalizeRow(row []core.Cell, dateCol, timeCol, amountCol int) (core.Transaction, bool) {
	var date string
	if s, ok := safeGet(row, dateCol).Text(); ok {
		date = strings.TrimSpace(s)
	}

	var timeStr string
	timeCell := safeGet(row, timeCol)
	if v, ok := timeCell.Number(); ok {
		timeStr = formatDayFraction(v)
	} else if s, ok := timeCell.Text(); ok {
		timeStr = strings.TrimSpace(s)
	}

	// An absent amount cell counts as zero; only a cell that fails to
	// parse as a number drops the row.
	var amount float64
	amountCell := safeGet(row, amountCol)
	if v, ok := amountCell.Number(); ok {
		amount = v
	} else if s, ok := amountCell.Text(); ok {
		v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
		if err != nil {
			return core.Transaction{}, false
		}
		amount = v
	}

	if date == "" || timeStr == "" || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return core.Transaction{}, false
	}
	return core.Transaction{Date: date, Time: timeStr, Amount: amount}, true
}

// formatDayFraction renders an Excel-style time-of-day fraction (0.5 is
// noon) as zero-padded HH:mm:ss. Seconds rounding that lands on 60 carries
// into the minute so the output stays within range.
func formatDayFraction(v float64) string {
	totalMinutes := v * 24 * 60
	hours := int(totalMinutes / 60)
	minutes := int(math.Mod(totalMinutes, 60))
	seconds := int(math.Round(math.Mod(totalMinutes*60, 60)))
	if seconds == 60 {
		seconds = 0
		minutes++
	}
	if minutes == 60 {
		minutes = 0
		hours++
	}
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}

// indexOf returns the position of the first text cell equal to label, or -1.
func indexOf(row []core.Cell, label string) int {
	for i, c := range row {
		if s, ok := c.Text(); ok && s == label {
			return i
		}
	}
	return -1
}

// safeGet reads a cell with bounds checking; out-of-range reads as empty.
func safeGet(row []core.Cell, col int) core.Cell {
	if col < 0 || col >= len(row) {
		return core.EmptyCell
	}
	return row[col]
}
