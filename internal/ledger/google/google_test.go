package google

import (
	"testing"

	"budgetbot/internal/core"
)

func TestRowsToRecords(t *testing.T) {
	rows := [][]any{
		{"Date", "Category", "Amount", "Comment"},
		{"01.03.2024", "Еда", "500", "обед"},
		{"01.03.2024", "Другое", 300}, // short row, numeric cell
		{},
	}
	got := RowsToRecords(rows)
	want := []core.ExpenseRecord{
		{Date: "01.03.2024", Category: "Еда", Amount: "500", Comment: "обед"},
		{Date: "01.03.2024", Category: "Другое", Amount: "300"},
		{},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d records, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("record %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestRowsToRecordsHeaderOnly(t *testing.T) {
	if got := RowsToRecords([][]any{{"Date", "Category", "Amount", "Comment"}}); len(got) != 0 {
		t.Fatalf("expected no records, got %+v", got)
	}
	if got := RowsToRecords(nil); len(got) != 0 {
		t.Fatalf("expected no records, got %+v", got)
	}
}

func TestRangeFor(t *testing.T) {
	if got := rangeFor("March"); got != "March!A:D" {
		t.Fatalf("unexpected range %q", got)
	}
}
