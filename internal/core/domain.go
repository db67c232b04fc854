package core

import (
	"errors"
	"strings"
	"time"
)

// DateLayout is the ledger date format (DD.MM.YYYY).
const DateLayout = "02.01.2006"

// MonthTokenLayout is the MM.YYYY fragment used by the monthly report filter.
const MonthTokenLayout = "01.2006"

type (
	// ExpenseRecord is one ledger row. All fields are stored as text: the
	// backing store is a spreadsheet, and rows read back may have been
	// hand-edited, so Amount and Date are only semantically typed.
	ExpenseRecord struct {
		Date     string // DD.MM.YYYY, local clock at insertion time
		Category string
		Amount   string // non-negative decimal integer
		Comment  string // free text, may be empty
	}
)

var (
	ErrEmptyDate     = errors.New("empty date")
	ErrEmptyCategory = errors.New("empty category")
	ErrInvalidDate   = errors.New("invalid date")
)

// FormatDate renders t in the ledger date format.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a ledger date string.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// MonthToken returns the MM.YYYY fragment for t.
func MonthToken(t time.Time) string {
	return t.Format(MonthTokenLayout)
}

// PeriodName returns the name of the ledger period holding records for t:
// one period per calendar month, named after the month.
func PeriodName(t time.Time) string {
	return t.Format("January")
}

// Validate checks the insertion invariant: non-empty date and category and a
// parseable amount. Comment may be empty.
func (r ExpenseRecord) Validate() error {
	if strings.TrimSpace(r.Date) == "" {
		return ErrEmptyDate
	}
	if _, err := ParseDate(r.Date); err != nil {
		return err
	}
	if strings.TrimSpace(r.Category) == "" {
		return ErrEmptyCategory
	}
	if _, err := ParseAmount(r.Amount); err != nil {
		return err
	}
	return nil
}
