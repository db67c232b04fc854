// Package notify fans a message out to the fixed report recipient list.
package notify

import (
	"context"
	"fmt"
	"log/slog"

	"budgetbot/internal/chat"
)

// Notifier delivers to each recipient independently: one failed delivery is
// logged and never prevents the remaining attempts. No retry, list order.
type Notifier struct {
	sender     chat.Sender
	recipients []int64
	logger     *slog.Logger
}

func New(sender chat.Sender, recipients []int64, logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifier{
		sender:     sender,
		recipients: append([]int64(nil), recipients...),
		logger:     logger,
	}
}

// SendToAll attempts delivery of text to every recipient and returns one
// error per failed recipient.
func (n *Notifier) SendToAll(ctx context.Context, text string) []error {
	var errs []error
	for _, chatID := range n.recipients {
		if err := n.sender.Send(ctx, chatID, text); err != nil {
			n.logger.ErrorContext(ctx, "Delivery failed", "chat_id", chatID, "error", err)
			errs = append(errs, fmt.Errorf("recipient %d: %w", chatID, err))
		}
	}
	return errs
}

// Recipients returns the fixed recipient list.
func (n *Notifier) Recipients() []int64 {
	return append([]int64(nil), n.recipients...)
}
