package services

import (
	"context"
	"testing"
	"time"

	"budgetbot/internal/core"
	"budgetbot/internal/ledger/memory"
)

func TestAppendWritesToCurrentPeriod(t *testing.T) {
	ctx := context.Background()
	store := memory.New().WithClock(func() time.Time {
		return time.Date(2024, 3, 1, 12, 0, 0, 0, time.Local)
	})
	svc := NewRecordService(store, nil)

	rec := core.ExpenseRecord{Date: "01.03.2024", Category: "Еда", Amount: "500", Comment: "обед"}
	if err := svc.Append(ctx, rec); err != nil {
		t.Fatalf("append: %v", err)
	}

	p, _ := store.ResolveCurrentPeriod(ctx)
	rows, _ := store.ReadAll(ctx, p)
	if len(rows) != 1 || rows[0] != rec {
		t.Fatalf("unexpected rows: %+v", rows)
	}
}

func TestAppendRejectsInvalidRecordBeforeStore(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	svc := NewRecordService(store, nil)

	bad := core.ExpenseRecord{Date: "01.03.2024", Category: "Еда", Amount: "много"}
	if err := svc.Append(ctx, bad); err == nil {
		t.Fatal("expected validation error")
	}

	p, _ := store.ResolveCurrentPeriod(ctx)
	rows, _ := store.ReadAll(ctx, p)
	if len(rows) != 0 {
		t.Fatalf("invalid record reached the store: %+v", rows)
	}
}
