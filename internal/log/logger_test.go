package log

import (
	"bytes"
	"context"
	"log/slog"
	"strconv"
	"strings"
	"testing"
)

func bufferLogger() (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return New(Config{Level: slog.LevelDebug, Writer: &buf}), &buf
}

func TestWithComponentAttachesAttribute(t *testing.T) {
	logger, buf := bufferLogger()

	logger.WithComponent("ledger").Info("row written")

	got := buf.String()
	if !strings.Contains(got, "component=ledger") {
		t.Fatalf("missing component attribute: %q", got)
	}
	if !strings.Contains(got, "row written") {
		t.Fatalf("missing message: %q", got)
	}
}

func TestWithCarriesAttributesForward(t *testing.T) {
	logger, buf := bufferLogger()

	logger.With(FieldRequestID, "req_1").WithComponent("http").Warn("slow")

	got := buf.String()
	if !strings.Contains(got, "request_id=req_1") || !strings.Contains(got, "component=http") {
		t.Fatalf("attributes not carried: %q", got)
	}
}

func TestFromContextRoundTrip(t *testing.T) {
	logger, buf := bufferLogger()
	scoped := logger.With(FieldRequestID, "req_ctx")
	ctx := context.WithValue(context.Background(), LoggerContextKey, scoped)

	FromContext(ctx).InfoContext(ctx, "handled")

	if got := buf.String(); !strings.Contains(got, "request_id=req_ctx") {
		t.Fatalf("context logger not used: %q", got)
	}
}

func TestFromContextFallsBackToDefault(t *testing.T) {
	if FromContext(context.Background()) == nil {
		t.Fatal("expected a usable fallback logger")
	}
}

func TestLogHTTPEndLevels(t *testing.T) {
	tests := []struct {
		status int
		want   string
	}{
		{200, "level=INFO"},
		{404, "level=WARN"},
		{500, "level=ERROR"},
	}
	for _, tt := range tests {
		logger, buf := bufferLogger()
		NewStructuredLogger(logger).LogHTTPEnd(context.Background(), "GET", "/webhook", tt.status, 3, "1.2.3.4")

		got := buf.String()
		if !strings.Contains(got, tt.want) {
			t.Fatalf("status %d: wrong level: %q", tt.status, got)
		}
		if !strings.Contains(got, "path=/webhook") || !strings.Contains(got, "status_code="+strconv.Itoa(tt.status)) {
			t.Fatalf("status %d: missing fields: %q", tt.status, got)
		}
	}
}
