package http

import (
	"context"
	"net/http"
	"time"

	"budgetbot/internal/log"
)

// Pinger keeps a free-tier deployment warm by requesting its own public
// URL on a fixed interval.
type Pinger struct {
	url      string
	interval time.Duration
	client   *http.Client
	logger   *log.Logger
}

func NewPinger(url string, interval time.Duration, logger *log.Logger) *Pinger {
	return &Pinger{
		url:      url,
		interval: interval,
		client:   &http.Client{Timeout: 30 * time.Second},
		logger:   logger.WithComponent(log.ComponentHTTP),
	}
}

// Run pings until the context is cancelled. Failures are logged and the
// loop keeps going.
func (p *Pinger) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			p.ping(ctx)
		}
	}
}

func (p *Pinger) ping(ctx context.Context) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		p.logger.WarnContext(ctx, "Self ping request error", log.FieldError, err.Error())
		return
	}
	resp, err := p.client.Do(req)
	if err != nil {
		p.logger.WarnContext(ctx, "Self ping failed", log.FieldError, err.Error())
		return
	}
	resp.Body.Close()
	p.logger.DebugContext(ctx, "Self ping ok", log.FieldStatusCode, resp.StatusCode)
}
