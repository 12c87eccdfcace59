package driven

import "context"

// Confirmer asks the operator to approve a mutating step.
type Confirmer interface {
	// Confirm blocks until the operator answers.
	// Returns false when the operator declines.
	Confirm(ctx context.Context, message string) (bool, error)
}

// ProgressReporter displays progress of a long-running server job.
type ProgressReporter interface {
	// Start begins a progress display for the labelled job.
	Start(label string)

	// Update shows the completion percentage.
	Update(percent int)

	// Done ends the display.
	Done()
}
