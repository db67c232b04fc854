package memory

import (
	"context"
	"sync"
	"time"

	"budgetbot/internal/core"
	"budgetbot/internal/ledger"
)

// Store is an in-memory ledger for tests and local runs.
type Store struct {
	mu      sync.Mutex
	periods map[string][]core.ExpenseRecord
	clock   func() time.Time
}

var _ ledger.Store = (*Store)(nil)

func New() *Store {
	return &Store{
		periods: map[string][]core.ExpenseRecord{},
		clock:   time.Now,
	}
}

// WithClock replaces the clock used to name the current period.
func (s *Store) WithClock(clock func() time.Time) *Store {
	s.clock = clock
	return s
}

func (s *Store) ResolveCurrentPeriod(_ context.Context) (ledger.Period, error) {
	name := core.PeriodName(s.clock())
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.periods[name]; !ok {
		s.periods[name] = nil
	}
	return ledger.Period{Name: name}, nil
}

func (s *Store) Append(_ context.Context, p ledger.Period, rec core.ExpenseRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.periods[p.Name] = append(s.periods[p.Name], rec)
	return nil
}

func (s *Store) ReadAll(_ context.Context, p ledger.Period) ([]core.ExpenseRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.ExpenseRecord(nil), s.periods[p.Name]...), nil
}
