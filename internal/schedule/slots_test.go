package schedule

import (
	"testing"
	"time"
)

func at(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, time.Local)
}

func TestParseTimeOfDay(t *testing.T) {
	cases := []struct {
		in   string
		want TimeOfDay
		ok   bool
	}{
		{"22:00", TimeOfDay{22, 0}, true},
		{"23:59", TimeOfDay{23, 59}, true},
		{"0:05", TimeOfDay{0, 5}, true},
		{"24:00", TimeOfDay{}, false},
		{"12:60", TimeOfDay{}, false},
		{"noon", TimeOfDay{}, false},
		{"", TimeOfDay{}, false},
	}
	for _, tc := range cases {
		got, err := ParseTimeOfDay(tc.in)
		if tc.ok {
			if err != nil || got != tc.want {
				t.Fatalf("%q: got %v (err=%v)", tc.in, got, err)
			}
		} else if err == nil {
			t.Fatalf("%q: expected error", tc.in)
		}
	}
}

func TestDailySlotNext(t *testing.T) {
	slot := DailySlot{At: TimeOfDay{Hour: 22}}

	// Before today's slot: fires today.
	next := slot.Next(at(2024, 3, 1, 10, 0))
	if !next.Equal(at(2024, 3, 1, 22, 0)) {
		t.Fatalf("got %v", next)
	}
	// Exactly at the slot: fires tomorrow, never twice in one slot.
	next = slot.Next(at(2024, 3, 1, 22, 0))
	if !next.Equal(at(2024, 3, 2, 22, 0)) {
		t.Fatalf("got %v", next)
	}
}

func TestWeeklySlotNext(t *testing.T) {
	slot := WeeklySlot{Day: time.Sunday, At: TimeOfDay{Hour: 22, Minute: 30}}

	// Friday 01.03.2024 -> Sunday 03.03.2024.
	next := slot.Next(at(2024, 3, 1, 10, 0))
	if !next.Equal(at(2024, 3, 3, 22, 30)) {
		t.Fatalf("got %v", next)
	}
	// Sunday after the slot has passed -> the following Sunday.
	next = slot.Next(at(2024, 3, 3, 23, 0))
	if !next.Equal(at(2024, 3, 10, 22, 30)) {
		t.Fatalf("got %v", next)
	}
	// Sunday before the slot -> same day.
	next = slot.Next(at(2024, 3, 3, 12, 0))
	if !next.Equal(at(2024, 3, 3, 22, 30)) {
		t.Fatalf("got %v", next)
	}
}

func TestMonthEndSlotNext(t *testing.T) {
	slot := MonthEndSlot{At: TimeOfDay{Hour: 23, Minute: 59}}

	cases := []struct {
		after time.Time
		want  time.Time
	}{
		// Non-leap February ends on the 28th.
		{at(2023, 2, 27, 12, 0), at(2023, 2, 28, 23, 59)},
		{at(2023, 2, 28, 12, 0), at(2023, 2, 28, 23, 59)},
		// Leap February ends on the 29th.
		{at(2024, 2, 28, 12, 0), at(2024, 2, 29, 23, 59)},
		{at(2024, 2, 29, 12, 0), at(2024, 2, 29, 23, 59)},
		// Past this month's slot: next month's last day.
		{at(2024, 2, 29, 23, 59), at(2024, 3, 31, 23, 59)},
		{at(2024, 3, 31, 23, 59), at(2024, 4, 30, 23, 59)},
		// December rolls into January.
		{at(2024, 12, 31, 23, 59), at(2025, 1, 31, 23, 59)},
	}
	for _, tc := range cases {
		if got := slot.Next(tc.after); !got.Equal(tc.want) {
			t.Fatalf("Next(%v) = %v, want %v", tc.after, got, tc.want)
		}
	}
}

func TestMonthEndFiresOnlyOnLastDay(t *testing.T) {
	slot := MonthEndSlot{At: TimeOfDay{Hour: 23, Minute: 59}}

	// From the 27th of non-leap February the next fire is the 28th, never
	// the 27th; from the 28th of leap February it is the 29th.
	if got := slot.Next(at(2023, 2, 27, 0, 0)); got.Day() != 28 {
		t.Fatalf("non-leap: got day %d", got.Day())
	}
	if got := slot.Next(at(2024, 2, 28, 0, 0)); got.Day() != 29 {
		t.Fatalf("leap: got day %d", got.Day())
	}
}
