// Package schedule fires the report jobs at fixed local times.
//
// Each trigger kind is a Slot strategy computing its own next fire time, and
// every job gets a dedicated timer task. There is no polling interval: the
// timer sleeps until the exact slot. After a fire (or a long process pause)
// the next slot is computed from the current clock, so missed slots are
// skipped, never replayed: at-most-once-per-slot, no catch-up.
package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Slot computes the next fire time strictly after a given instant.
type Slot interface {
	Next(after time.Time) time.Time
}

// TimeOfDay is a wall-clock local time.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses "HH:MM".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return TimeOfDay{}, fmt.Errorf("invalid time of day %q: want HH:MM", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return TimeOfDay{}, fmt.Errorf("invalid hour in %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return TimeOfDay{}, fmt.Errorf("invalid minute in %q", s)
	}
	return TimeOfDay{Hour: h, Minute: m}, nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

func (t TimeOfDay) on(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour, t.Minute, 0, 0, day.Location())
}

// DailySlot fires once per day at a fixed local time.
type DailySlot struct {
	At TimeOfDay
}

func (s DailySlot) Next(after time.Time) time.Time {
	next := s.At.on(after)
	if !next.After(after) {
		next = s.At.on(after.AddDate(0, 0, 1))
	}
	return next
}

// WeeklySlot fires once per week at a fixed local time on a fixed weekday.
type WeeklySlot struct {
	Day time.Weekday
	At  TimeOfDay
}

func (s WeeklySlot) Next(after time.Time) time.Time {
	next := s.At.on(after)
	days := (int(s.Day) - int(after.Weekday()) + 7) % 7
	next = next.AddDate(0, 0, days)
	if !next.After(after) {
		next = next.AddDate(0, 0, 7)
	}
	return next
}

// MonthEndSlot fires at a fixed local time on the last calendar day of each
// month, leap or not.
type MonthEndSlot struct {
	At TimeOfDay
}

func (s MonthEndSlot) Next(after time.Time) time.Time {
	next := s.At.on(lastDayOfMonth(after))
	if !next.After(after) {
		firstOfNext := time.Date(after.Year(), after.Month(), 1, 0, 0, 0, 0, after.Location()).AddDate(0, 1, 0)
		next = s.At.on(lastDayOfMonth(firstOfNext))
	}
	return next
}

// lastDayOfMonth returns midnight of the last day of t's month. Day zero of
// the following month is how the stdlib spells it.
func lastDayOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location())
}
