package driving

import (
	"context"

	"github.com/custodia-labs/transync-cli/internal/core/domain"
)

// RunHistory records and lists push and pull runs.
type RunHistory interface {
	// Begin returns a new record with an ID and start time.
	Begin(command string, project domain.ProjectOptions, dryRun bool) domain.RunRecord

	// Finish stamps the finish time and error text, then stores the
	// record. Storage failures are logged and never fail a run.
	Finish(ctx context.Context, run domain.RunRecord, runErr error)

	// Recent returns the most recent runs, newest first.
	Recent(ctx context.Context, limit int) ([]domain.RunRecord, error)
}
