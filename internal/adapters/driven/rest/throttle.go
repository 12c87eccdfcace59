package rest

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// DefaultRequestsPerSecond is the proactive throttle rate.
	DefaultRequestsPerSecond = 10.0

	// HeaderRetryAfter is the retry-after header (seconds).
	HeaderRetryAfter = "Retry-After"
)

// Throttle spaces out requests with a token bucket and honours Retry-After
// from 429 responses.
type Throttle struct {
	mu         sync.Mutex
	bucket     *rate.Limiter
	pauseUntil time.Time
}

// NewThrottle creates a throttle allowing rps requests per second.
// A non-positive rps disables the proactive bucket.
func NewThrottle(rps float64) *Throttle {
	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}
	return &Throttle{bucket: rate.NewLimiter(limit, 1)}
}

// Wait blocks until it's safe to make a request.
func (t *Throttle) Wait(ctx context.Context) error {
	if err := t.bucket.Wait(ctx); err != nil {
		return err
	}

	t.mu.Lock()
	pauseUntil := t.pauseUntil
	t.mu.Unlock()

	if wait := time.Until(pauseUntil); wait > 0 {
		timer := time.NewTimer(wait)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}
	return nil
}

// Observe inspects a response and returns a RateLimitError for 429.
// Later calls to Wait hold off until the Retry-After deadline.
func (t *Throttle) Observe(resp *http.Response) error {
	if resp == nil || resp.StatusCode != http.StatusTooManyRequests {
		return nil
	}

	retryAt := time.Now().Add(time.Second)
	if retryAfter := resp.Header.Get(HeaderRetryAfter); retryAfter != "" {
		if seconds, err := strconv.Atoi(retryAfter); err == nil {
			retryAt = time.Now().Add(time.Duration(seconds) * time.Second)
		}
	}

	t.mu.Lock()
	if retryAt.After(t.pauseUntil) {
		t.pauseUntil = retryAt
	}
	t.mu.Unlock()

	return &RateLimitError{RetryAt: retryAt}
}

// PauseUntil returns the current Retry-After deadline.
func (t *Throttle) PauseUntil() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pauseUntil
}
