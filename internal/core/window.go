// Package core holds the domain model and the pure computations over it:
// spreadsheet cells, normalized transactions and time-window aggregation.
package core

import (
	"fmt"
	"strings"
	"time"
)

// Layouts for combining a free-form date with time-of-day strings.
// Transactions are tried 12-hour first to match sources that export an
// AM/PM marker; plain 24-hour strings only match the second layout.
const (
	windowLayout   = "02/01/2006 15:04"
	txLayout12Hour = "02/01/2006 03:04:05 PM"
	txLayout24Hour = "02/01/2006 15:04:05"
)

// SumWindow adds up the amounts of all transactions whose date+time falls
// inside [date start, date end), a half-open interval: a transaction at
// exactly start counts, one at exactly end does not.
//
// date must be non-empty (callers auto-select it when the snapshot holds a
// single date); start and end are "HH:mm" strings. A transaction whose
// date+time matches neither supported layout is skipped, not an error.
// Zero is a valid total.
func SumWindow(txs []Transaction, date, start, end string) (float64, error) {
	if strings.TrimSpace(date) == "" {
		return 0, ErrNoDateSelected
	}

	from, err := time.Parse(windowLayout, date+" "+start)
	if err != nil {
		return 0, fmt.Errorf("%w: start %q on %q", ErrInvalidTimeRange, start, date)
	}
	to, err := time.Parse(windowLayout, date+" "+end)
	if err != nil {
		return 0, fmt.Errorf("%w: end %q on %q", ErrInvalidTimeRange, end, date)
	}

	var total float64
	for _, tx := range txs {
		t, ok := parseTransactionTime(tx)
		if !ok {
			continue
		}
		if !t.Before(from) && t.Before(to) {
			total += tx.Amount
		}
	}
	return total, nil
}

// parseTransactionTime combines a transaction's date and time and parses
// them, trying the 12-hour layout before the 24-hour one. First match wins.
func parseTransactionTime(tx Transaction) (time.Time, bool) {
	s := tx.Date + " " + tx.Time
	for _, layout := range []string{txLayout12Hour, txLayout24Hour} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
