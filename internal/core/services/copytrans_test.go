package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/transync-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/transync-cli/internal/core/domain"
)

func newTestPoller(server *memory.TranslationServer, progress *recordingProgress) *CopyTransPoller {
	return NewCopyTransPoller(server, server,
		WithPollInterval(time.Millisecond),
		WithProgressReporter(progress))
}

func TestCopyTransPoller_Completes(t *testing.T) {
	server := memory.NewTranslationServer()
	server.SetCopyTransStatuses(
		domain.CopyTransStatus{InProgress: true, PercentageComplete: 0},
		domain.CopyTransStatus{InProgress: true, PercentageComplete: 60},
		domain.CopyTransStatus{InProgress: false, PercentageComplete: 100},
	)
	progress := &recordingProgress{}

	res, err := newTestPoller(server, progress).Run(context.Background(), "p", "v", "doc")
	require.NoError(t, err)

	assert.Equal(t, domain.CopyTransCompleted, res.Outcome)
	assert.Equal(t, 100, res.PercentageComplete)
	assert.Equal(t, []int{0, 60, 100}, progress.updates)
	assert.Equal(t, 1, progress.done)
	assert.Len(t, server.CallsFor(memory.OpStartCopyTrans), 1)
	assert.Len(t, server.CallsFor(memory.OpCopyTransState), 3)
}

func TestCopyTransPoller_StartFailureSkips(t *testing.T) {
	server := memory.NewTranslationServer()
	server.FailOn(memory.OpStartCopyTrans, "doc", errors.New("500 internal error"))

	res, err := newTestPoller(server, &recordingProgress{}).Run(context.Background(), "p", "v", "doc")
	require.NoError(t, err)
	assert.Equal(t, domain.CopyTransSkipped, res.Outcome)
	assert.Empty(t, server.CallsFor(memory.OpCopyTransState))
}

func TestCopyTransPoller_NotFoundOnOldServerIsUnavailable(t *testing.T) {
	server := memory.NewTranslationServer()
	server.FailOn(memory.OpCopyTransState, "doc", fmt.Errorf("status: %w", domain.ErrNotFound))
	server.SetVersionComparison(-1, nil)

	res, err := newTestPoller(server, &recordingProgress{}).Run(context.Background(), "p", "v", "doc")
	require.NoError(t, err)
	assert.Equal(t, domain.CopyTransUnavailable, res.Outcome)
}

func TestCopyTransPoller_NotFound_NewServer(t *testing.T) {
	server := memory.NewTranslationServer()
	server.FailOn(memory.OpCopyTransState, "doc", fmt.Errorf("status: %w", domain.ErrNotFound))
	server.SetVersionComparison(0, nil)

	_, err := newTestPoller(server, &recordingProgress{}).Run(context.Background(), "p", "v", "doc")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCopyTransPoller_NotFound_UnknownVersion(t *testing.T) {
	server := memory.NewTranslationServer()
	server.FailOn(memory.OpCopyTransState, "doc", fmt.Errorf("status: %w", domain.ErrNotFound))
	server.SetVersionComparison(0, errors.New("version unavailable"))

	_, err := newTestPoller(server, &recordingProgress{}).Run(context.Background(), "p", "v", "doc")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCopyTransPoller_OtherStatusErrorIsFatal(t *testing.T) {
	server := memory.NewTranslationServer()
	boom := errors.New("502 bad gateway")
	server.FailOn(memory.OpCopyTransState, "doc", boom)
	server.SetVersionComparison(-1, nil)

	_, err := newTestPoller(server, &recordingProgress{}).Run(context.Background(), "p", "v", "doc")
	assert.ErrorIs(t, err, boom)
}

func TestCopyTransPoller_Incomplete(t *testing.T) {
	server := memory.NewTranslationServer()
	server.SetCopyTransStatuses(
		domain.CopyTransStatus{InProgress: true, PercentageComplete: 30},
		domain.CopyTransStatus{InProgress: false, PercentageComplete: 45},
	)

	res, err := newTestPoller(server, &recordingProgress{}).Run(context.Background(), "p", "v", "doc")
	require.NoError(t, err)
	assert.Equal(t, domain.CopyTransIncomplete, res.Outcome)
	assert.Equal(t, 45, res.PercentageComplete)
}

func TestCopyTransPoller_Cancelled(t *testing.T) {
	server := memory.NewTranslationServer()
	server.SetCopyTransStatuses(domain.CopyTransStatus{InProgress: true, PercentageComplete: 10})

	ctx, cancel := context.WithCancel(context.Background())
	poller := NewCopyTransPoller(server, server, WithPollInterval(time.Hour))

	done := make(chan error, 1)
	go func() {
		_, err := poller.Run(ctx, "p", "v", "doc")
		done <- err
	}()

	require.Eventually(t, func() bool {
		return len(server.CallsFor(memory.OpCopyTransState)) == 1
	}, time.Second, time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("poller did not stop after cancellation")
	}
}

func TestNewCopyTransPoller_Defaults(t *testing.T) {
	p := NewCopyTransPoller(memory.NewTranslationServer(), nil, WithPollInterval(0), WithProgressReporter(nil))
	assert.Equal(t, DefaultCopyTransInterval, p.interval)
	assert.IsType(t, nopProgress{}, p.progress)
	assert.False(t, p.serverPredatesCopyTrans(context.Background()))
}
