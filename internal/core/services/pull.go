package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/transync-cli/internal/core/domain"
	"github.com/custodia-labs/transync-cli/internal/core/ports/driven"
	"github.com/custodia-labs/transync-cli/internal/core/ports/driving"
	"github.com/custodia-labs/transync-cli/internal/logger"
)

// Ensure PullService implements the interface.
var _ driving.Puller = (*PullService)(nil)

const (
	confirmPullSource = "This will overwrite existing source documents on disk."
	confirmPullTrans  = "This will overwrite existing TRANSLATIONS on disk."
	confirmPullBoth   = "This will overwrite existing documents AND TRANSLATIONS on disk."
)

// PullService downloads remote documents of the current module.
type PullService struct {
	docs      driven.DocumentClient
	trans     driven.TranslationClient
	formats   *FormatRegistry
	confirmer driven.Confirmer
}

// NewPullService creates a pull service. confirmer is optional.
func NewPullService(docs driven.DocumentClient, trans driven.TranslationClient, formats *FormatRegistry, confirmer driven.Confirmer) *PullService {
	return &PullService{
		docs:      docs,
		trans:     trans,
		formats:   formats,
		confirmer: confirmer,
	}
}

// Pull writes the source and/or translations of every remote document in
// the current module. Local files with no remote counterpart are left to
// the format writer.
//
//nolint:gocyclo // Orchestration function with necessary sequential steps
func (s *PullService) Pull(ctx context.Context, opts domain.PullOptions) (*domain.PullResult, error) {
	// 1. Validate before any network activity
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	format, err := s.formats.Get(opts.ProjectType)
	if err != nil {
		return nil, err
	}
	ns, err := NewModuleNamespace(opts.Modules)
	if err != nil {
		return nil, err
	}

	logger.Section("Pull")
	if opts.DryRun {
		logger.Info("DRY RUN: no permanent changes will be made")
	}
	result := &domain.PullResult{DryRun: opts.DryRun, State: domain.RunDone}

	// 2. Remote document list for this module
	index := NewRemoteDocumentIndex(s.docs, opts.Project, opts.Version, ns)
	remote, err := index.NamesForCurrentModule(ctx)
	if err != nil {
		result.State = domain.RunFailed
		return result, err
	}
	if len(remote) == 0 {
		logger.Info("no documents in remote module: %s; nothing to do", moduleLabel(ns))
		result.State = domain.RunNoop
		return result, nil
	}

	// 3. Confirm overwriting local files
	if err := confirmWithUser(ctx, s.confirmer, opts.Interactive, pullConfirmation(opts.PullType)); err != nil {
		result.State = failedState(err)
		return result, err
	}

	// 4. Fetch and write each document
	exts := format.Extensions()
	writeOpts := driven.WriteOptions{CreateSkeletons: opts.CreateSkeletons, IncludeFuzzy: opts.IncludeFuzzy}
	needSource := opts.PullType.IncludesSource() || format.NeedsSource() || opts.CreateSkeletons

	for _, qualified := range remote {
		name, err := ns.Unqualify(qualified)
		if err != nil {
			result.State = domain.RunFailed
			return result, err
		}
		result.Documents = append(result.Documents, name)

		var src *domain.Resource
		if needSource {
			src, err = s.docs.GetSource(ctx, opts.Project, opts.Version, qualified, exts)
			if err != nil {
				result.State = domain.RunFailed
				return result, fmt.Errorf("pull source %s: %w", qualified, err)
			}
		}

		if opts.PullType.IncludesSource() {
			if opts.DryRun {
				logger.Info("writing source file for document %s (skipped due to dry run)", name)
			} else {
				logger.Info("writing source file for document %s", name)
				if err := format.WriteSource(opts.SrcDir, name, src); err != nil {
					result.State = domain.RunFailed
					return result, fmt.Errorf("write source %s: %w", name, err)
				}
				result.SourcesWritten++
			}
		}

		if !opts.PullType.IncludesTrans() {
			continue
		}
		for _, locale := range opts.Locales {
			tr, err := s.trans.GetTranslations(ctx, opts.Project, opts.Version, qualified, locale.Locale, exts)
			if errors.Is(err, domain.ErrNotFound) {
				logger.Info("no translations found in %s for document %s", locale.Locale, qualified)
				result.Missing = append(result.Missing, name+":"+locale.Locale)
				continue
			}
			if err != nil {
				result.State = domain.RunFailed
				return result, fmt.Errorf("pull translations %s [%s]: %w", qualified, locale.Locale, err)
			}
			if opts.DryRun {
				logger.Info("writing translation file in locale %s for document %s (skipped due to dry run)", locale.LocalLocale(), name)
				continue
			}
			logger.Info("writing translation file in locale %s for document %s", locale.LocalLocale(), name)
			if err := format.WriteTranslation(opts.TransDir, name, src, tr, locale, writeOpts); err != nil {
				result.State = domain.RunFailed
				return result, fmt.Errorf("write translations %s [%s]: %w", name, locale.Locale, err)
			}
			result.TranslationsWritten++
		}
	}
	return result, nil
}

func pullConfirmation(t domain.PushPullType) string {
	switch t {
	case domain.TransferTrans:
		return confirmPullTrans
	case domain.TransferBoth:
		return confirmPullBoth
	default:
		return confirmPullSource
	}
}
