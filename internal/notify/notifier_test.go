package notify

import (
	"context"
	"errors"
	"testing"
)

type scriptedSender struct {
	failFor map[int64]error
	sent    []int64
}

func (s *scriptedSender) Send(_ context.Context, chatID int64, _ string) error {
	s.sent = append(s.sent, chatID)
	if err, ok := s.failFor[chatID]; ok {
		return err
	}
	return nil
}

func TestSendToAllDeliversInListOrder(t *testing.T) {
	sender := &scriptedSender{}
	n := New(sender, []int64{10, 20, 30}, nil)

	errs := n.SendToAll(context.Background(), "отчёт")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	want := []int64{10, 20, 30}
	if len(sender.sent) != len(want) {
		t.Fatalf("sent %v", sender.sent)
	}
	for i := range want {
		if sender.sent[i] != want[i] {
			t.Fatalf("delivery order %v, want %v", sender.sent, want)
		}
	}
}

func TestSendToAllIsolatesFailures(t *testing.T) {
	sender := &scriptedSender{failFor: map[int64]error{10: errors.New("blocked")}}
	n := New(sender, []int64{10, 20}, nil)

	errs := n.SendToAll(context.Background(), "отчёт")
	if len(errs) != 1 {
		t.Fatalf("expected exactly one failure, got %v", errs)
	}
	// B is still attempted after A fails.
	if len(sender.sent) != 2 || sender.sent[1] != 20 {
		t.Fatalf("remaining recipients skipped: %v", sender.sent)
	}
}

func TestSendToAllEmptyList(t *testing.T) {
	sender := &scriptedSender{}
	n := New(sender, nil, nil)
	if errs := n.SendToAll(context.Background(), "x"); len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(sender.sent) != 0 {
		t.Fatalf("unexpected deliveries: %v", sender.sent)
	}
}
