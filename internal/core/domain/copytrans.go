package domain

// CopyTransStatus is a snapshot of a server-side copy-translations job.
type CopyTransStatus struct {
	InProgress         bool
	PercentageComplete int
}

// CopyTransOutcome is how a copy-translations job ended for one document.
type CopyTransOutcome int

const (
	// CopyTransCompleted means the job reported 100 percent.
	CopyTransCompleted CopyTransOutcome = iota

	// CopyTransSkipped means the job could not be started.
	CopyTransSkipped

	// CopyTransUnavailable means the server predates copy-translations status.
	CopyTransUnavailable

	// CopyTransIncomplete means the job stopped before reaching 100 percent.
	CopyTransIncomplete

	// CopyTransDryRun means the job was not started because of dry-run.
	CopyTransDryRun
)

// String returns a short label for logs and history.
func (o CopyTransOutcome) String() string {
	switch o {
	case CopyTransCompleted:
		return "completed"
	case CopyTransSkipped:
		return "skipped"
	case CopyTransUnavailable:
		return "unavailable"
	case CopyTransIncomplete:
		return "incomplete"
	case CopyTransDryRun:
		return "dry-run"
	default:
		return "unknown"
	}
}

// CopyTransResult records the copy-translations outcome of one document.
type CopyTransResult struct {
	Document           string
	Outcome            CopyTransOutcome
	PercentageComplete int
}

// CopyTransFeatureVersion is the first server version with a
// copy-translations status endpoint.
const CopyTransFeatureVersion = "1.8.0-SNAPSHOT"
