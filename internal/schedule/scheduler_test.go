package schedule

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// shortSlot fires a fixed interval after whatever instant it is asked from.
type shortSlot struct{ d time.Duration }

func (s shortSlot) Next(after time.Time) time.Time { return after.Add(s.d) }

func TestSchedulerRunsJobAndStopsOnCancel(t *testing.T) {
	var fired atomic.Int32
	job := Job{
		Name: "test",
		Slot: shortSlot{d: 5 * time.Millisecond},
		Run:  func(context.Context) { fired.Add(1) },
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := New([]Job{job}, nil)

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop after cancel")
	}
	if fired.Load() == 0 {
		t.Fatal("job never fired")
	}
}

type fakeReports struct {
	daily, weekly, monthly string
	err                    error
}

func (f fakeReports) Daily(context.Context) (string, error)   { return f.daily, f.err }
func (f fakeReports) Weekly(context.Context) (string, error)  { return f.weekly, f.err }
func (f fakeReports) Monthly(context.Context) (string, error) { return f.monthly, f.err }

type recordingBroadcaster struct {
	mu   sync.Mutex
	sent []string
}

func (r *recordingBroadcaster) SendToAll(_ context.Context, text string) []error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, text)
	return nil
}

func TestReportJobsDeliverSummaries(t *testing.T) {
	out := &recordingBroadcaster{}
	jobs := ReportJobs(fakeReports{daily: "d", weekly: "w", monthly: "m"}, out, DefaultTimes())
	if len(jobs) != 3 {
		t.Fatalf("expected 3 jobs, got %d", len(jobs))
	}
	for _, job := range jobs {
		job.Run(context.Background())
	}
	if len(out.sent) != 3 {
		t.Fatalf("expected 3 deliveries, got %v", out.sent)
	}
}

func TestReportJobsConvertFailuresToDiagnostics(t *testing.T) {
	out := &recordingBroadcaster{}
	jobs := ReportJobs(fakeReports{err: errors.New("boom")}, out, DefaultTimes())
	for _, job := range jobs {
		job.Run(context.Background())
	}
	if len(out.sent) != 3 {
		t.Fatalf("expected 3 diagnostics, got %d", len(out.sent))
	}
	for _, msg := range out.sent {
		if !strings.Contains(msg, "boom") || !strings.Contains(msg, "⚠️") {
			t.Fatalf("unexpected diagnostic %q", msg)
		}
	}
}
