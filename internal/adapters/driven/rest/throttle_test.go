package rest

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThrottle_ObserveIgnoresOtherStatuses(t *testing.T) {
	th := NewThrottle(0)

	assert.NoError(t, th.Observe(nil))
	assert.NoError(t, th.Observe(&http.Response{StatusCode: http.StatusOK, Header: http.Header{}}))
	assert.True(t, th.PauseUntil().IsZero())
}

func TestThrottle_RetryAfter(t *testing.T) {
	th := NewThrottle(0)
	resp := &http.Response{StatusCode: http.StatusTooManyRequests, Header: http.Header{}}
	resp.Header.Set(HeaderRetryAfter, "30")

	err := th.Observe(resp)
	require.Error(t, err)
	assert.True(t, IsRateLimited(err))
	assert.WithinDuration(t, time.Now().Add(30*time.Second), th.PauseUntil(), 2*time.Second)

	// Waiting past the deadline is bounded by the context
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, th.Wait(ctx), context.DeadlineExceeded)
}

func TestThrottle_WaitWithoutPause(t *testing.T) {
	th := NewThrottle(-1)

	start := time.Now()
	for i := 0; i < 5; i++ {
		require.NoError(t, th.Wait(context.Background()))
	}
	assert.Less(t, time.Since(start), time.Second)
}
