package bot

import (
	"context"
	"strings"
	"testing"
	"time"

	"budgetbot/internal/chat"
	"budgetbot/internal/classify"
	"budgetbot/internal/ledger/memory"
	"budgetbot/internal/report"
	"budgetbot/internal/services"
)

type recordingSender struct {
	replies []string
	chatIDs []int64
}

func (s *recordingSender) Send(_ context.Context, chatID int64, text string) error {
	s.chatIDs = append(s.chatIDs, chatID)
	s.replies = append(s.replies, text)
	return nil
}

func (s *recordingSender) last(t *testing.T) string {
	t.Helper()
	if len(s.replies) == 0 {
		t.Fatal("no reply sent")
	}
	return s.replies[len(s.replies)-1]
}

const allowedChat = int64(1001)

func testBot(t *testing.T) (*Bot, *recordingSender, *memory.Store) {
	t.Helper()
	clock := func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.Local) }
	store := memory.New().WithClock(clock)
	sender := &recordingSender{}
	b := New(
		services.NewRecordService(store, nil),
		report.New(store).WithClock(clock),
		classify.Default(),
		sender,
		[]int64{allowedChat},
		nil,
	).WithClock(clock)
	return b, sender, store
}

func TestIDCommandIsOpenToEveryone(t *testing.T) {
	b, sender, _ := testBot(t)
	b.Handle(context.Background(), chat.Message{ChatID: 999, Text: "/id"})
	if got := sender.last(t); got != "Ваш chat_id: 999" {
		t.Fatalf("unexpected reply %q", got)
	}
}

func TestUnknownSenderIsDenied(t *testing.T) {
	b, sender, store := testBot(t)
	b.Handle(context.Background(), chat.Message{ChatID: 999, Text: "обед 500"})
	if got := sender.last(t); got != replyDenied {
		t.Fatalf("unexpected reply %q", got)
	}
	p, _ := store.ResolveCurrentPeriod(context.Background())
	if rows, _ := store.ReadAll(context.Background(), p); len(rows) != 0 {
		t.Fatalf("denied sender reached the store: %+v", rows)
	}
}

func TestAddCommand(t *testing.T) {
	b, sender, store := testBot(t)
	b.Handle(context.Background(), chat.Message{ChatID: allowedChat, Text: "/add Еда 500 обед в кафе"})

	if got := sender.last(t); got != "✅ Запись: Еда — 500 ₸ (обед в кафе)" {
		t.Fatalf("unexpected reply %q", got)
	}
	p, _ := store.ResolveCurrentPeriod(context.Background())
	rows, _ := store.ReadAll(context.Background(), p)
	if len(rows) != 1 || rows[0].Category != "Еда" || rows[0].Amount != "500" || rows[0].Date != "01.03.2024" {
		t.Fatalf("unexpected rows: %+v", rows)
	}
}

func TestAddCommandMalformed(t *testing.T) {
	b, sender, store := testBot(t)
	for _, text := range []string{"/add", "/add Еда", "/add Еда сто"} {
		b.Handle(context.Background(), chat.Message{ChatID: allowedChat, Text: text})
		if got := sender.last(t); got != replyUsage {
			t.Fatalf("%q: unexpected reply %q", text, got)
		}
	}
	p, _ := store.ResolveCurrentPeriod(context.Background())
	if rows, _ := store.ReadAll(context.Background(), p); len(rows) != 0 {
		t.Fatalf("malformed command reached the store: %+v", rows)
	}
}

func TestFreeformInsertion(t *testing.T) {
	b, sender, store := testBot(t)
	b.Handle(context.Background(), chat.Message{ChatID: allowedChat, Text: "такси домой 700"})

	if got := sender.last(t); got != "✅ Запись: Транспорт — 700 ₸ (такси домой)" {
		t.Fatalf("unexpected reply %q", got)
	}
	p, _ := store.ResolveCurrentPeriod(context.Background())
	rows, _ := store.ReadAll(context.Background(), p)
	if len(rows) != 1 || rows[0].Category != "Транспорт" {
		t.Fatalf("unexpected rows: %+v", rows)
	}
}

func TestFreeformWithoutAmount(t *testing.T) {
	b, sender, store := testBot(t)
	b.Handle(context.Background(), chat.Message{ChatID: allowedChat, Text: "обед в кафе"})
	if got := sender.last(t); got != replyNoAmount {
		t.Fatalf("unexpected reply %q", got)
	}
	p, _ := store.ResolveCurrentPeriod(context.Background())
	rows, _ := store.ReadAll(context.Background(), p)
	if len(rows) != 0 {
		t.Fatalf("no insertion expected, got %+v", rows)
	}
}

func TestReportCommand(t *testing.T) {
	b, sender, _ := testBot(t)
	ctx := context.Background()
	b.Handle(ctx, chat.Message{ChatID: allowedChat, Text: "/add Еда 500"})
	b.Handle(ctx, chat.Message{ChatID: allowedChat, Text: "/add Другое 300"})
	b.Handle(ctx, chat.Message{ChatID: allowedChat, Text: "/report"})

	got := sender.last(t)
	if !strings.Contains(got, "Сегодня (01.03.2024) — 800 ₸") || !strings.Contains(got, "За месяц — 800 ₸") {
		t.Fatalf("unexpected report %q", got)
	}
}

func TestCommandToken(t *testing.T) {
	cases := map[string]string{
		"/id":           "/id",
		"/id@budgetbot": "/id",
		"/report now":   "/report",
		"обед 500":      "",
		"":              "",
	}
	for in, want := range cases {
		if got := command(in); got != want {
			t.Fatalf("command(%q) = %q, want %q", in, got, want)
		}
	}
}
