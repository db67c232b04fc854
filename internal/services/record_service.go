// Package services orchestrates ledger writes with their side channels.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"budgetbot/internal/amqp"
	"budgetbot/internal/core"
	"budgetbot/internal/ledger"
)

// RecordService appends records to the ledger and publishes an append event
// for the mirror worker. The event is best effort: a broken queue never fails
// an insertion that already reached the store.
type RecordService struct {
	store      ledger.Store
	amqpClient *amqp.Client
}

func NewRecordService(store ledger.Store, amqpClient *amqp.Client) *RecordService {
	return &RecordService{store: store, amqpClient: amqpClient}
}

// Append validates rec, writes it into the current period, and announces the
// append.
func (s *RecordService) Append(ctx context.Context, rec core.ExpenseRecord) error {
	if err := rec.Validate(); err != nil {
		return fmt.Errorf("validate record: %w", err)
	}

	p, err := s.store.ResolveCurrentPeriod(ctx)
	if err != nil {
		return fmt.Errorf("resolve current period: %w", err)
	}
	if err := s.store.Append(ctx, p, rec); err != nil {
		return fmt.Errorf("append record: %w", err)
	}

	if s.amqpClient == nil {
		return nil
	}
	if err := s.amqpClient.PublishRecordAppended(ctx, p.Name, rec); err != nil {
		// The row is in the store; the mirror catches up some other day.
		slog.ErrorContext(ctx, "Failed to publish append event",
			"period", p.Name, "error", err)
	}
	return nil
}
