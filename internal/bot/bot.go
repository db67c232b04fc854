// Package bot handles inbound chat messages: access control, commands, and
// the freeform insertion path.
//
// The transport invokes Handle once per received message, one message at a
// time; the handler itself spawns nothing. That keeps the message path
// single-threaded while the scheduler reads the shared store from its own
// goroutines; interleaving against the store is accepted, see the ledger
// port.
package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"budgetbot/internal/chat"
	"budgetbot/internal/classify"
	"budgetbot/internal/core"
	"budgetbot/internal/log"
	"budgetbot/internal/parse"
	"budgetbot/internal/services"
)

// Reporter is the on-demand report entry the /report command uses.
type Reporter interface {
	OnDemand(ctx context.Context) (string, error)
}

type Bot struct {
	records  *services.RecordService
	reporter Reporter
	rules    *classify.RuleSet
	sender   chat.Sender
	allowed  map[int64]struct{}
	clock    func() time.Time
	logger   *log.Logger
}

var _ chat.Handler = (*Bot)(nil)

func New(records *services.RecordService, reporter Reporter, rules *classify.RuleSet, sender chat.Sender, allowedSenders []int64, logger *log.Logger) *Bot {
	allowed := make(map[int64]struct{}, len(allowedSenders))
	for _, id := range allowedSenders {
		allowed[id] = struct{}{}
	}
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &Bot{
		records:  records,
		reporter: reporter,
		rules:    rules,
		sender:   sender,
		allowed:  allowed,
		clock:    time.Now,
		logger:   logger.WithComponent("bot"),
	}
}

// WithClock replaces the clock stamping inserted records.
func (b *Bot) WithClock(clock func() time.Time) *Bot {
	b.clock = clock
	return b
}

// Handle processes one inbound message and replies through the sender. Every
// failure is mapped to a user-visible reply here; nothing propagates.
func (b *Bot) Handle(ctx context.Context, msg chat.Message) {
	text := strings.TrimSpace(msg.Text)

	// /id stays open to everyone: it is how a new user discovers the chat
	// id to be added to the allowed set.
	if command(text) == "/id" {
		b.reply(ctx, msg.ChatID, fmt.Sprintf(replyIDFormat, msg.ChatID))
		return
	}

	if _, ok := b.allowed[msg.ChatID]; !ok {
		b.logger.WarnContext(ctx, "Message from unknown sender", "chat_id", msg.ChatID)
		b.reply(ctx, msg.ChatID, replyDenied)
		return
	}

	b.logger.InfoContext(ctx, "Message received", "chat_id", msg.ChatID, "text", text)

	switch {
	case command(text) == "/report":
		b.handleReport(ctx, msg.ChatID)
	case strings.HasPrefix(text, "/add"):
		b.handleAdd(ctx, msg.ChatID, text)
	default:
		b.handleFreeform(ctx, msg.ChatID, text)
	}
}

func (b *Bot) handleReport(ctx context.Context, chatID int64) {
	summary, err := b.reporter.OnDemand(ctx)
	if err != nil {
		b.logger.ErrorContext(ctx, "On-demand report failed", "chat_id", chatID, "error", err)
		b.reply(ctx, chatID, fmt.Sprintf(replyReportErrFormat, err))
		return
	}
	b.reply(ctx, chatID, summary)
}

func (b *Bot) handleAdd(ctx context.Context, chatID int64, text string) {
	rec, err := parse.Structured(text, b.clock())
	if err != nil {
		// Malformed command: usage hint, no insertion attempted.
		b.reply(ctx, chatID, replyUsage)
		return
	}
	b.insert(ctx, chatID, rec)
}

func (b *Bot) handleFreeform(ctx context.Context, chatID int64, text string) {
	rec, err := parse.Freeform(text, b.rules, b.clock())
	if err != nil {
		// The freeform parser's only failure mode is a missing digit run.
		b.reply(ctx, chatID, replyNoAmount)
		return
	}
	b.insert(ctx, chatID, rec)
}

func (b *Bot) insert(ctx context.Context, chatID int64, rec core.ExpenseRecord) {
	if err := b.records.Append(ctx, rec); err != nil {
		b.logger.ErrorContext(ctx, "Insertion failed", "chat_id", chatID, "error", err)
		b.reply(ctx, chatID, fmt.Sprintf(replySaveErrFormat, err))
		return
	}
	b.reply(ctx, chatID, fmt.Sprintf(replyConfirmedFormat, rec.Category, rec.Amount, rec.Comment))
}

func (b *Bot) reply(ctx context.Context, chatID int64, text string) {
	if err := b.sender.Send(ctx, chatID, text); err != nil {
		b.logger.ErrorContext(ctx, "Reply delivery failed", "chat_id", chatID, "error", err)
	}
}

// command extracts the leading command token, tolerating the @botname suffix
// some clients append.
func command(text string) string {
	if !strings.HasPrefix(text, "/") {
		return ""
	}
	token := text
	if idx := strings.IndexAny(token, " \t"); idx >= 0 {
		token = token[:idx]
	}
	if idx := strings.Index(token, "@"); idx >= 0 {
		token = token[:idx]
	}
	return token
}
