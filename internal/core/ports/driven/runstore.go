package driven

import (
	"context"

	"github.com/custodia-labs/transync-cli/internal/core/domain"
)

// RunStore persists run history.
type RunStore interface {
	// Save stores or replaces a run record.
	Save(ctx context.Context, run domain.RunRecord) error

	// Get retrieves a run by ID.
	// Returns domain.ErrNotFound if the run does not exist.
	Get(ctx context.Context, id string) (*domain.RunRecord, error)

	// List returns the most recent runs, newest first.
	// A limit of zero or less returns all runs.
	List(ctx context.Context, limit int) ([]domain.RunRecord, error)
}
