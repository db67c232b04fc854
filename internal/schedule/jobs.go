package schedule

import (
	"context"
	"log/slog"
	"time"
)

// Reports is the subset of the report aggregator the scheduled jobs need.
type Reports interface {
	Daily(ctx context.Context) (string, error)
	Weekly(ctx context.Context) (string, error)
	Monthly(ctx context.Context) (string, error)
}

// Broadcaster fans a message out to the fixed recipient list.
type Broadcaster interface {
	SendToAll(ctx context.Context, text string) []error
}

// Times holds the fixed local fire times of the three report triggers.
type Times struct {
	Daily     TimeOfDay
	WeeklyDay time.Weekday
	Weekly    TimeOfDay
	MonthEnd  TimeOfDay
}

// DefaultTimes: evening report at 22:00, week total Sunday 22:30, month
// total on the last day at 23:59.
func DefaultTimes() Times {
	return Times{
		Daily:     TimeOfDay{Hour: 22},
		WeeklyDay: time.Sunday,
		Weekly:    TimeOfDay{Hour: 22, Minute: 30},
		MonthEnd:  TimeOfDay{Hour: 23, Minute: 59},
	}
}

// ReportJobs wires the three report triggers. Any failure inside a job is
// converted into a diagnostic pushed through the same broadcaster; the report
// is never silently dropped and the scheduler loop never sees an error.
func ReportJobs(reports Reports, out Broadcaster, times Times) []Job {
	return []Job{
		{
			Name: "daily-report",
			Slot: DailySlot{At: times.Daily},
			Run:  reportRun(reports.Daily, out, "⚠️ Ошибка в ежедневном отчёте: "),
		},
		{
			Name: "weekly-report",
			Slot: WeeklySlot{Day: times.WeeklyDay, At: times.Weekly},
			Run:  reportRun(reports.Weekly, out, "⚠️ Ошибка в недельном отчёте: "),
		},
		{
			Name: "month-end-report",
			Slot: MonthEndSlot{At: times.MonthEnd},
			Run:  reportRun(reports.Monthly, out, "⚠️ Ошибка в месячном отчёте: "),
		},
	}
}

func reportRun(compute func(context.Context) (string, error), out Broadcaster, diagnosticPrefix string) func(context.Context) {
	return func(ctx context.Context) {
		text, err := compute(ctx)
		if err != nil {
			slog.ErrorContext(ctx, "Report job failed", "error", err)
			text = diagnosticPrefix + err.Error()
		}
		if errs := out.SendToAll(ctx, text); len(errs) > 0 {
			slog.ErrorContext(ctx, "Report delivery incomplete", "failed", len(errs))
		}
	}
}
