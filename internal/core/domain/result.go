package domain

import "time"

// RunState is the terminal state of a push or pull run.
type RunState string

// Run states.
const (
	// RunDone means the run went through all of its steps.
	RunDone RunState = "done"

	// RunSkipped means a modular run found no source directory.
	RunSkipped RunState = "skipped"

	// RunNoop means there were no local and no obsolete documents.
	RunNoop RunState = "noop"

	// RunAborted means the operator declined a confirmation.
	RunAborted RunState = "aborted"

	// RunFailed means the run stopped on an error.
	RunFailed RunState = "failed"
)

// BatchPlan records how one document/locale payload was split.
type BatchPlan struct {
	Document string
	Locale   string
	Sizes    []int
}

// Count returns the number of batches.
func (p BatchPlan) Count() int {
	return len(p.Sizes)
}

// PushResult summarises a push run. Dry-run and real runs over the same
// state produce the same LocalDocs, Obsolete and Batches.
type PushResult struct {
	State  RunState
	DryRun bool

	// LocalDocs holds the unqualified local document names, sorted.
	LocalDocs []string

	// Obsolete holds qualified remote names absent locally.
	Obsolete []string

	// ObsoleteModules holds qualified names found by the root-module sweep.
	ObsoleteModules []string

	// SourcesPushed holds qualified names whose source was uploaded.
	SourcesPushed []string

	// Batches lists translation uploads in submission order.
	Batches []BatchPlan

	// Deleted holds qualified names actually deleted.
	Deleted []string

	CopyTrans []CopyTransResult

	// Warnings collects non-fatal server warnings.
	Warnings []string
}

// PullResult summarises a pull run.
type PullResult struct {
	State  RunState
	DryRun bool

	// Documents holds the unqualified names pulled.
	Documents []string

	SourcesWritten      int
	TranslationsWritten int

	// Missing lists "doc:locale" pairs with no translations on the server.
	Missing []string
}

// GlossaryPushResult summarises a glossary push.
type GlossaryPushResult struct {
	DryRun  bool
	Entries int
	Batches []int
}

// RemoteListResult is the document list of a project version.
type RemoteListResult struct {
	// Names holds the qualified names of the current module, or all when
	// modules are disabled.
	Names []string

	// Outside holds names that did not belong to the current module.
	Outside []string
}

// RunRecord is a persisted summary of one run.
type RunRecord struct {
	ID         string
	Command    string
	Project    string
	Version    string
	StartedAt  time.Time
	FinishedAt time.Time
	State      RunState
	DryRun     bool
	Documents  int
	Deleted    int
	Batches    int
	Error      string
}

// Duration returns how long the run took.
func (r RunRecord) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
