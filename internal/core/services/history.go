package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/transync-cli/internal/core/domain"
	"github.com/custodia-labs/transync-cli/internal/core/ports/driven"
	"github.com/custodia-labs/transync-cli/internal/core/ports/driving"
	"github.com/custodia-labs/transync-cli/internal/logger"
)

// Ensure HistoryService implements the interface.
var _ driving.RunHistory = (*HistoryService)(nil)

// HistoryService records runs in a RunStore.
// A nil store turns recording into a no-op.
type HistoryService struct {
	store driven.RunStore
	now   func() time.Time
}

// NewHistoryService creates a history service.
func NewHistoryService(store driven.RunStore) *HistoryService {
	return &HistoryService{store: store, now: time.Now}
}

// Begin returns a new record with a fresh ID and start time.
func (s *HistoryService) Begin(command string, project domain.ProjectOptions, dryRun bool) domain.RunRecord {
	return domain.RunRecord{
		ID:        uuid.New().String(),
		Command:   command,
		Project:   project.Project,
		Version:   project.Version,
		StartedAt: s.now(),
		DryRun:    dryRun,
	}
}

// Finish stamps and stores the record. A run without a state gets one
// derived from runErr.
func (s *HistoryService) Finish(ctx context.Context, run domain.RunRecord, runErr error) {
	if s.store == nil {
		return
	}
	run.FinishedAt = s.now()
	if runErr != nil {
		run.Error = runErr.Error()
		if run.State == "" || run.State == domain.RunDone {
			run.State = failedState(runErr)
		}
	}
	if run.State == "" {
		run.State = domain.RunDone
	}
	if err := s.store.Save(ctx, run); err != nil {
		logger.Warn("could not record run %s: %v", run.ID, err)
	}
}

// Recent returns the most recent runs, newest first.
func (s *HistoryService) Recent(ctx context.Context, limit int) ([]domain.RunRecord, error) {
	if s.store == nil {
		return nil, nil
	}
	return s.store.List(ctx, limit)
}

// PushRecord copies push counts into a run record.
func PushRecord(run domain.RunRecord, result *domain.PushResult) domain.RunRecord {
	if result == nil {
		return run
	}
	run.State = result.State
	run.Documents = len(result.LocalDocs)
	run.Deleted = len(result.Deleted)
	for _, b := range result.Batches {
		run.Batches += b.Count()
	}
	return run
}

// PullRecord copies pull counts into a run record.
func PullRecord(run domain.RunRecord, result *domain.PullResult) domain.RunRecord {
	if result == nil {
		return run
	}
	run.State = result.State
	run.Documents = len(result.Documents)
	return run
}
