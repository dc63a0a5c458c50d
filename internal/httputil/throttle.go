// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared across the crawl: a
// minimum-interval throttle for polite API use and a plain GET helper.
// Failed requests are never retried here; the caller decides whether a
// failure is fatal.
package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// Throttle enforces a minimum interval between successive calls to Wait.
// The first call returns immediately.
type Throttle struct {
	limiter *rate.Limiter
}

// NewThrottle returns a throttle admitting one call per interval. A zero
// interval disables throttling.
func NewThrottle(interval time.Duration) *Throttle {
	if interval <= 0 {
		return &Throttle{limiter: rate.NewLimiter(rate.Inf, 1)}
	}
	return &Throttle{limiter: rate.NewLimiter(rate.Every(interval), 1)}
}

// Wait blocks until the next call is allowed. It returns ctx.Err() if the
// context is cancelled first. A nil throttle never blocks.
func (t *Throttle) Wait(ctx context.Context) error {
	if t == nil {
		return ctx.Err()
	}
	return t.limiter.Wait(ctx)
}

// Restart begins a new interval now, so the next Wait blocks for a full
// interval even if the previous call was long ago.
func (t *Throttle) Restart() {
	if t == nil {
		return
	}
	t.limiter.Reserve()
}

// Sleep pauses for d or until ctx is done, whichever comes first.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Get issues a single GET request with the given User-Agent and Accept
// headers. Any status other than 200 is returned as an error after the body
// is drained and closed. On success the caller owns resp.Body.
func Get(ctx context.Context, client *http.Client, url, userAgent, accept string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}
	return resp, nil
}
