// Package ledger defines the port to the tabular expense store.
package ledger

import (
	"context"
	"errors"

	"budgetbot/internal/core"
)

// Header is the fixed first row of every period.
var Header = [4]string{"Date", "Category", "Amount", "Comment"}

// ErrUnavailable wraps backend failures (network, auth, quota). Callers map
// it to a user-visible reply; nothing propagates past the handler or job.
var ErrUnavailable = errors.New("ledger store unavailable")

// Period is a handle to one calendar month's table.
type Period struct {
	Name string
	// SheetID is the backend sheet id where the adapter has one; zero
	// otherwise.
	SheetID int64
}

// Store is the ledger port. No transactional isolation is assumed: the
// message path appends while the scheduler reads, and interleaving is
// accepted (the backend's own guarantees are all there is).
type Store interface {
	// ResolveCurrentPeriod returns the period named after the current
	// local month, creating it with the header row on first use.
	ResolveCurrentPeriod(ctx context.Context) (Period, error)

	// Append adds one row. No uniqueness constraint; validation happened
	// upstream.
	Append(ctx context.Context, p Period, rec core.ExpenseRecord) error

	// ReadAll returns all data rows (header excluded) in insertion order.
	ReadAll(ctx context.Context, p Period) ([]core.ExpenseRecord, error)
}
