package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/transync-cli/internal/core/domain"
	"github.com/custodia-labs/transync-cli/internal/core/ports/driven"
	"github.com/custodia-labs/transync-cli/internal/logger"
)

// DefaultCopyTransInterval is the wait between copy-translations status polls.
const DefaultCopyTransInterval = 2 * time.Second

// CopyTransPoller starts a copy-translations job and waits for it to finish.
type CopyTransPoller struct {
	client   driven.CopyTransClient
	versions driven.VersionChecker
	progress driven.ProgressReporter
	interval time.Duration
}

// CopyTransOption configures a CopyTransPoller.
type CopyTransOption func(*CopyTransPoller)

// WithPollInterval sets the wait between status polls.
func WithPollInterval(d time.Duration) CopyTransOption {
	return func(p *CopyTransPoller) {
		if d > 0 {
			p.interval = d
		}
	}
}

// WithProgressReporter shows job progress on the given reporter.
func WithProgressReporter(r driven.ProgressReporter) CopyTransOption {
	return func(p *CopyTransPoller) {
		if r != nil {
			p.progress = r
		}
	}
}

// NewCopyTransPoller creates a poller. versions may be nil, in which case
// the server is assumed to support the status endpoint.
func NewCopyTransPoller(client driven.CopyTransClient, versions driven.VersionChecker, opts ...CopyTransOption) *CopyTransPoller {
	p := &CopyTransPoller{
		client:   client,
		versions: versions,
		progress: nopProgress{},
		interval: DefaultCopyTransInterval,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run starts copy-translations for one document and polls until the server
// reports the job is no longer in progress.
//
// A failure to start the job is logged and reported as CopyTransSkipped.
// A not-found status from a server older than the feature is reported as
// CopyTransUnavailable. A job that stops short of 100% is logged and
// reported as CopyTransIncomplete. Other status errors are returned.
// Cancelling ctx stops the wait, not the server job.
func (p *CopyTransPoller) Run(ctx context.Context, project, version, docName string) (domain.CopyTransResult, error) {
	result := domain.CopyTransResult{Document: docName}

	logger.Info("running copy-translations for %s", docName)
	if err := p.client.StartCopyTrans(ctx, project, version, docName); err != nil {
		if ctx.Err() != nil {
			return result, ctx.Err()
		}
		logger.Warn("could not start copy-translations for %s, proceeding: %v", docName, err)
		result.Outcome = domain.CopyTransSkipped
		return result, nil
	}

	p.progress.Start("copy-translations " + docName)
	defer p.progress.Done()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		status, err := p.client.CopyTransStatus(ctx, project, version, docName)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) && p.serverPredatesCopyTrans(ctx) {
				logger.Warn("copy-translations not started for %s (incompatible server version)", docName)
				result.Outcome = domain.CopyTransUnavailable
				return result, nil
			}
			return result, fmt.Errorf("copy-translations status for %s: %w", docName, err)
		}

		result.PercentageComplete = status.PercentageComplete
		p.progress.Update(status.PercentageComplete)
		if !status.InProgress {
			break
		}

		select {
		case <-ctx.Done():
			logger.Warn("interrupted while waiting for copy-translations of %s to finish", docName)
			return result, ctx.Err()
		case <-ticker.C:
		}
	}

	if result.PercentageComplete < 100 {
		logger.Warn("copy-translations for %s stopped unexpectedly at %d%%", docName, result.PercentageComplete)
		result.Outcome = domain.CopyTransIncomplete
		return result, nil
	}
	result.Outcome = domain.CopyTransCompleted
	return result, nil
}

// serverPredatesCopyTrans reports whether the server is known to be older
// than the copy-translations status endpoint. An unknown version counts
// as new.
func (p *CopyTransPoller) serverPredatesCopyTrans(ctx context.Context) bool {
	if p.versions == nil {
		return false
	}
	cmp, err := p.versions.CompareServerVersion(ctx, domain.CopyTransFeatureVersion)
	if err != nil {
		logger.Debug("server version check failed: %v", err)
		return false
	}
	return cmp < 0
}

// nopProgress discards progress updates.
type nopProgress struct{}

func (nopProgress) Start(string) {}
func (nopProgress) Update(int)   {}
func (nopProgress) Done()        {}
