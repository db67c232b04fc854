// Package report computes aggregate spending summaries over the current
// ledger period.
//
// All three report kinds read the current month's period only, even though
// the weekly window may reach into the previous month. That scoping comes
// from the product's original behavior and is kept on purpose; widening it
// to all periods intersecting the window needs a product decision first.
package report

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"budgetbot/internal/core"
	"budgetbot/internal/ledger"
)

var (
	// ErrBadDate means a ledger row's date could not be parsed while a
	// date-ranged aggregation needed it. The aggregation fails whole: a
	// partial sum over a corrupted sheet would be silently wrong.
	ErrBadDate = errors.New("unparsable date in ledger")

	// ErrBadAmount means a row selected by the filter has a non-numeric
	// amount.
	ErrBadAmount = errors.New("non-numeric amount in ledger")
)

// Reporter reads the ledger and renders human-readable summaries.
type Reporter struct {
	store ledger.Store
	clock func() time.Time
}

func New(store ledger.Store) *Reporter {
	return &Reporter{store: store, clock: time.Now}
}

// WithClock replaces the clock, for tests and deterministic runs.
func (r *Reporter) WithClock(clock func() time.Time) *Reporter {
	r.clock = clock
	return r
}

// Daily renders the evening report: the sum over records whose date equals
// today's, by exact string match.
func (r *Reporter) Daily(ctx context.Context) (string, error) {
	now := r.clock()
	records, err := r.currentRecords(ctx)
	if err != nil {
		return "", err
	}
	today := core.FormatDate(now)
	sum, err := SumForDate(records, today)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("🌙 Вечерний отчёт за %s:\nПотратили сегодня — %d ₸", today, sum), nil
}

// Weekly renders the trailing-7-day report over the inclusive window
// [now-7d, now].
func (r *Reporter) Weekly(ctx context.Context) (string, error) {
	now := r.clock()
	records, err := r.currentRecords(ctx)
	if err != nil {
		return "", err
	}
	sum, err := SumForRange(records, now.AddDate(0, 0, -7), now)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("📅 Итог за неделю (до %s):\n%d ₸", core.FormatDate(now), sum), nil
}

// Monthly renders the month report: records whose date contains the current
// MM.YYYY token. A substring match, not a date-range filter; loose, and kept
// that way.
func (r *Reporter) Monthly(ctx context.Context) (string, error) {
	now := r.clock()
	records, err := r.currentRecords(ctx)
	if err != nil {
		return "", err
	}
	sum, err := SumForMonth(records, core.MonthToken(now))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("📊 Итог за месяц %s:\n%d ₸", now.Format("January"), sum), nil
}

// OnDemand renders the /report reply: today's and the current month's sums.
func (r *Reporter) OnDemand(ctx context.Context) (string, error) {
	now := r.clock()
	records, err := r.currentRecords(ctx)
	if err != nil {
		return "", err
	}
	today := core.FormatDate(now)
	daySum, err := SumForDate(records, today)
	if err != nil {
		return "", err
	}
	monthSum, err := SumForMonth(records, core.MonthToken(now))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("📊 Отчёт:\nСегодня (%s) — %d ₸\nЗа месяц — %d ₸", today, daySum, monthSum), nil
}

func (r *Reporter) currentRecords(ctx context.Context) ([]core.ExpenseRecord, error) {
	p, err := r.store.ResolveCurrentPeriod(ctx)
	if err != nil {
		return nil, err
	}
	return r.store.ReadAll(ctx, p)
}

// SumForDate sums amounts of records whose date equals date exactly. Only
// selected rows have their amount parsed.
func SumForDate(records []core.ExpenseRecord, date string) (int64, error) {
	var sum int64
	for i, rec := range records {
		if rec.Date != date {
			continue
		}
		n, err := core.ParseAmount(rec.Amount)
		if err != nil {
			return 0, fmt.Errorf("row %d (%q): %w", i+1, rec.Amount, ErrBadAmount)
		}
		sum += n
	}
	return sum, nil
}

// SumForRange sums amounts of records whose parsed date falls in [from, to]
// inclusive. Every row's date is parsed, selected or not; one bad date fails
// the whole aggregation.
func SumForRange(records []core.ExpenseRecord, from, to time.Time) (int64, error) {
	fromDay := truncateToDay(from)
	toDay := truncateToDay(to)
	var sum int64
	for i, rec := range records {
		day, err := core.ParseDate(rec.Date)
		if err != nil {
			return 0, fmt.Errorf("row %d (%q): %w", i+1, rec.Date, ErrBadDate)
		}
		if day.Before(fromDay) || day.After(toDay) {
			continue
		}
		n, err := core.ParseAmount(rec.Amount)
		if err != nil {
			return 0, fmt.Errorf("row %d (%q): %w", i+1, rec.Amount, ErrBadAmount)
		}
		sum += n
	}
	return sum, nil
}

// SumForMonth sums amounts of records whose date contains the MM.YYYY token.
func SumForMonth(records []core.ExpenseRecord, token string) (int64, error) {
	var sum int64
	for i, rec := range records {
		if !strings.Contains(rec.Date, token) {
			continue
		}
		n, err := core.ParseAmount(rec.Amount)
		if err != nil {
			return 0, fmt.Errorf("row %d (%q): %w", i+1, rec.Amount, ErrBadAmount)
		}
		sum += n
	}
	return sum, nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
