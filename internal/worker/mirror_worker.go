// Package worker replicates ledger appends into the local SQLite mirror.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"budgetbot/internal/amqp"
	"budgetbot/internal/ledger"
)

// MirrorWorker consumes append events and replays them against the mirror
// store. The sheet stays the source of truth; the mirror only ever receives
// rows the sheet already accepted.
type MirrorWorker struct {
	mirror ledger.Store
}

func NewMirrorWorker(mirror ledger.Store) *MirrorWorker {
	return &MirrorWorker{mirror: mirror}
}

// HandleAppendEvent replays one append event. An error requeues the event at
// the AMQP layer.
func (w *MirrorWorker) HandleAppendEvent(ctx context.Context, msg *amqp.RecordAppendedMessage) error {
	p := ledger.Period{Name: msg.Period}
	if err := w.mirror.Append(ctx, p, msg.Record()); err != nil {
		return fmt.Errorf("mirror append: %w", err)
	}
	slog.InfoContext(ctx, "Append event mirrored",
		"period", msg.Period,
		"category", msg.Category,
		"amount", msg.Amount)
	return nil
}
