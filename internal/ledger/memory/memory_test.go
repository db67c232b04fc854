package memory

import (
	"context"
	"testing"
	"time"

	"budgetbot/internal/core"
)

func TestAppendReadAllRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := New().WithClock(func() time.Time {
		return time.Date(2024, 3, 1, 10, 0, 0, 0, time.Local)
	})

	p, err := store.ResolveCurrentPeriod(ctx)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if p.Name != "March" {
		t.Fatalf("expected period March, got %q", p.Name)
	}

	rec := core.ExpenseRecord{Date: "01.03.2024", Category: "Еда", Amount: "500", Comment: "обед"}
	if err := store.Append(ctx, p, rec); err != nil {
		t.Fatalf("append: %v", err)
	}

	got, err := store.ReadAll(ctx, p)
	if err != nil {
		t.Fatalf("read all: %v", err)
	}
	if len(got) != 1 || got[0] != rec {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestPeriodsAreIsolated(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 31, 10, 0, 0, 0, time.Local)
	store := New().WithClock(func() time.Time { return now })

	march, _ := store.ResolveCurrentPeriod(ctx)
	_ = store.Append(ctx, march, core.ExpenseRecord{Date: "31.03.2024", Category: "Еда", Amount: "100"})

	now = time.Date(2024, 4, 1, 10, 0, 0, 0, time.Local)
	april, _ := store.ResolveCurrentPeriod(ctx)
	if april.Name != "April" {
		t.Fatalf("expected April, got %q", april.Name)
	}
	rows, _ := store.ReadAll(ctx, april)
	if len(rows) != 0 {
		t.Fatalf("april should start empty, got %+v", rows)
	}
}
