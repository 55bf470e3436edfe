package core

import (
	"errors"
	"strconv"
)

type (
	// Transaction is one normalized row from a sales export. Date keeps
	// the source's free-form spelling (typically "DD/MM/YYYY"); Time is
	// "HH:mm:ss" when it was derived from a numeric day fraction,
	// otherwise the trimmed source text.
	Transaction struct {
		Date   string
		Time   string
		Amount float64
	}

	// Snapshot is the immutable result of one extraction: the kept
	// transactions in source order plus the distinct dates observed,
	// ordered by first appearance. A new extraction always produces a
	// fresh Snapshot; nothing mutates one after creation.
	Snapshot struct {
		Transactions []Transaction
		Dates        []string
	}

	// Labels names the three required header columns. Matching is exact,
	// including case and whitespace.
	Labels struct {
		Date   string
		Time   string
		Amount string
	}
)

// DefaultLabels matches the sales export template this tool was built for.
var DefaultLabels = Labels{
	Date:   "Ngày",
	Time:   "Giờ",
	Amount: "Thành tiền (VNĐ)",
}

var (
	ErrHeaderNotFound      = errors.New("header row with required labels not found")
	ErrNoDateSelected      = errors.New("no date selected")
	ErrInvalidTimeRange    = errors.New("invalid time range")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrDecodeFailure       = errors.New("cannot decode workbook")
)

// Validate reports whether all three labels are set.
func (l Labels) Validate() error {
	if l.Date == "" || l.Time == "" || l.Amount == "" {
		return errors.New("date, time and amount labels must all be set")
	}
	return nil
}

// SingleDate returns the snapshot's date when exactly one distinct date
// was observed, letting callers skip the date-selection step.
func (s *Snapshot) SingleDate() (string, bool) {
	if len(s.Dates) == 1 {
		return s.Dates[0], true
	}
	return "", false
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
