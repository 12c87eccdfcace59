package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/transync-cli/internal/core/domain"
	"github.com/custodia-labs/transync-cli/internal/core/ports/driven"
	"github.com/custodia-labs/transync-cli/internal/core/ports/driving"
	"github.com/custodia-labs/transync-cli/internal/logger"
)

// Ensure PushService implements the interface.
var _ driving.Pusher = (*PushService)(nil)

// DefaultDeleteConcurrency bounds parallel document deletions.
const DefaultDeleteConcurrency = 4

// Confirmation prompts.
const (
	confirmPushSource = "This will overwrite existing documents on the server, and delete obsolete documents."
	confirmPushTrans  = "This will overwrite existing TRANSLATIONS on the server."
	confirmPushBoth   = "This will overwrite existing documents AND TRANSLATIONS on the server, and delete obsolete documents."
	confirmSweep      = "Do you want to delete all documents from the server which don't belong to any module in the build?"
)

// PushService uploads local documents and deletes obsolete remote ones.
type PushService struct {
	docs      driven.DocumentClient
	trans     driven.TranslationClient
	copyTrans *CopyTransPoller
	formats   *FormatRegistry
	confirmer driven.Confirmer

	deleteConcurrency int
}

// PushOption configures a PushService.
type PushOption func(*PushService)

// WithDeleteConcurrency sets how many deletions may run at once.
func WithDeleteConcurrency(n int) PushOption {
	return func(s *PushService) {
		if n > 0 {
			s.deleteConcurrency = n
		}
	}
}

// NewPushService creates a push service.
// copyTrans and confirmer are optional. Without a confirmer every run
// proceeds as if non-interactive.
func NewPushService(
	docs driven.DocumentClient,
	trans driven.TranslationClient,
	copyTrans *CopyTransPoller,
	formats *FormatRegistry,
	confirmer driven.Confirmer,
	opts ...PushOption,
) *PushService {
	s := &PushService{
		docs:              docs,
		trans:             trans,
		copyTrans:         copyTrans,
		formats:           formats,
		confirmer:         confirmer,
		deleteConcurrency: DefaultDeleteConcurrency,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Push runs one push: scan, reconcile, confirm, transmit, delete obsolete
// documents and, for the root module, sweep obsolete modules.
func (s *PushService) Push(ctx context.Context, opts domain.PushOptions) (*domain.PushResult, error) {
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

	logPushOptions(opts)
	result := &domain.PushResult{DryRun: opts.DryRun}
	index := NewRemoteDocumentIndex(s.docs, opts.Project, opts.Version, ns)

	// 2. Current module
	result.State, err = s.pushCurrentModule(ctx, opts, format, ns, index, result)
	if err != nil {
		result.State = failedState(err)
		return result, err
	}

	// 3. Obsolete modules, once from the root of a multi-module build
	if opts.Modules.Enabled && opts.Modules.Root {
		if err := s.sweepObsoleteModules(ctx, opts, index, result); err != nil {
			result.State = failedState(err)
			return result, err
		}
	}
	return result, nil
}

//nolint:gocyclo // Orchestration function with necessary sequential steps
func (s *PushService) pushCurrentModule(
	ctx context.Context,
	opts domain.PushOptions,
	format driven.Format,
	ns *ModuleNamespace,
	index *RemoteDocumentIndex,
	result *domain.PushResult,
) (domain.RunState, error) {
	// Scanning
	logger.Section("Scanning")
	scan := opts.Scan
	if len(scan.Locales) == 0 {
		scan.Locales = opts.Locales
	}
	localDocs, err := format.FindDocuments(opts.SrcDir, scan)
	if err != nil {
		if errors.Is(err, domain.ErrSourceDirMissing) && opts.Modules.Enabled {
			logger.Info("source directory %q not found; skipping docs push for module %s", opts.SrcDir, ns.CurrentModule())
			return domain.RunSkipped, nil
		}
		return domain.RunFailed, fmt.Errorf("find documents: %w", err)
	}
	result.LocalDocs = localDocs
	for _, name := range localDocs {
		logger.Info("found source document: %s", name)
	}

	start := 0
	if opts.FromDoc != "" {
		start = slices.Index(localDocs, opts.FromDoc)
		if start < 0 {
			return domain.RunFailed, fmt.Errorf("%w: document %q given as starting document was not found locally", domain.ErrInvalidConfig, opts.FromDoc)
		}
	}

	// Reconciling
	logger.Section("Reconciling")
	obsolete, err := index.ObsoleteInCurrentModule(ctx, localDocs)
	if err != nil {
		return domain.RunFailed, err
	}
	result.Obsolete = obsolete
	if len(obsolete) == 0 && len(localDocs) == 0 {
		logger.Info("no documents in module %s; nothing to do", moduleLabel(ns))
		return domain.RunNoop, nil
	}
	if len(obsolete) > 0 {
		logger.Warn("found %d obsolete docs on the server which will be DELETED", len(obsolete))
		logger.Info("obsolete docs: %v", obsolete)
	}

	// Confirming
	if opts.PushType.IncludesTrans() {
		logger.Warn("push type set to %q: existing translations on server may be overwritten/deleted", opts.PushType)
	}
	if err := confirmWithUser(ctx, s.confirmer, opts.Interactive, pushConfirmation(opts.PushType)); err != nil {
		return domain.RunAborted, err
	}

	// Transmitting
	logger.Section("Transmitting")
	exts := format.Extensions()
	for i, name := range localDocs {
		if i < start {
			logger.Info("skipping %s: before starting document %s", name, opts.FromDoc)
			continue
		}
		if err := s.pushDocument(ctx, opts, format, exts, ns, name, result); err != nil {
			return domain.RunFailed, err
		}
	}

	deleted, err := s.deleteDocs(ctx, opts, obsolete)
	result.Deleted = append(result.Deleted, deleted...)
	if err != nil {
		return domain.RunFailed, err
	}
	return domain.RunDone, nil
}

func (s *PushService) pushDocument(
	ctx context.Context,
	opts domain.PushOptions,
	format driven.Format,
	exts domain.ExtensionSet,
	ns *ModuleNamespace,
	name string,
	result *domain.PushResult,
) error {
	src, err := format.LoadSource(opts.SrcDir, name)
	if err != nil {
		return fmt.Errorf("load %s: %w", name, err)
	}
	qualified := ns.Qualify(name)
	src.Name = qualified

	if opts.PushType.IncludesSource() {
		if err := s.pushSource(ctx, opts, src, exts, result); err != nil {
			return err
		}
	}

	if opts.PushType.IncludesTrans() {
		err := format.VisitTranslations(opts.TransDir, name, src, opts.Locales,
			func(locale domain.LocaleMapping, tr *domain.TranslationsResource) error {
				return s.pushTranslations(ctx, opts, qualified, locale, tr, exts, result)
			})
		if err != nil {
			return err
		}
	}

	if opts.CopyTrans {
		return s.runCopyTrans(ctx, opts, qualified, result)
	}
	return nil
}

func (s *PushService) pushSource(ctx context.Context, opts domain.PushOptions, src *domain.Resource, exts domain.ExtensionSet, result *domain.PushResult) error {
	if opts.DryRun {
		logger.Info("pushing source doc [name=%s size=%d] to server (skipped due to dry run)", src.Name, src.Size())
		return nil
	}
	logger.Info("pushing source doc [name=%s size=%d] to server", src.Name, src.Size())
	// Copy-translations is never triggered through the upload; it runs
	// separately through the poller so progress can be followed.
	if err := s.docs.PutSource(ctx, opts.Project, opts.Version, src, exts, false); err != nil {
		return fmt.Errorf("push source %s: %w", src.Name, err)
	}
	result.SourcesPushed = append(result.SourcesPushed, src.Name)
	return nil
}

// pushTranslations uploads the batches of one document and locale strictly
// in order; later batches merge into the state left by earlier ones.
func (s *PushService) pushTranslations(
	ctx context.Context,
	opts domain.PushOptions,
	docName string,
	locale domain.LocaleMapping,
	tr *domain.TranslationsResource,
	exts domain.ExtensionSet,
	result *domain.PushResult,
) error {
	batches := SplitIntoBatches(tr, opts.BatchSize, opts.MergeType)
	result.Batches = append(result.Batches, domain.BatchPlan{
		Document: docName,
		Locale:   locale.Locale,
		Sizes:    batchSizes(batches),
	})

	if opts.DryRun {
		logger.Info("pushing target doc [name=%s size=%d client-locale=%s] to server [locale=%s] (skipped due to dry run)",
			docName, tr.Size(), locale.LocalLocale(), locale.Locale)
		return nil
	}

	logger.Info("pushing target doc [name=%s size=%d client-locale=%s] to server [locale=%s]",
		docName, tr.Size(), locale.LocalLocale(), locale.Locale)
	done := 0
	for _, batch := range batches {
		warnings, err := s.trans.PutTranslations(ctx, opts.Project, opts.Version, docName, locale.Locale, batch, exts, opts.MergeType)
		if err != nil {
			return fmt.Errorf("push translations %s [%s]: %w", docName, locale.Locale, err)
		}
		for _, w := range warnings {
			logger.Warn("%s", w)
		}
		result.Warnings = append(result.Warnings, warnings...)
		done += batch.Size()
		logger.Info("pushed %d of %d entries", done, tr.Size())
	}
	return nil
}

func (s *PushService) runCopyTrans(ctx context.Context, opts domain.PushOptions, docName string, result *domain.PushResult) error {
	if opts.DryRun {
		logger.Info("running copy-translations for %s (skipped due to dry run)", docName)
		result.CopyTrans = append(result.CopyTrans, domain.CopyTransResult{Document: docName, Outcome: domain.CopyTransDryRun})
		return nil
	}
	if s.copyTrans == nil {
		logger.Warn("copy-translations is not available; skipping %s", docName)
		result.CopyTrans = append(result.CopyTrans, domain.CopyTransResult{Document: docName, Outcome: domain.CopyTransSkipped})
		return nil
	}
	ct, err := s.copyTrans.Run(ctx, opts.Project, opts.Version, docName)
	result.CopyTrans = append(result.CopyTrans, ct)
	return err
}

// sweepObsoleteModules deletes documents of modules no longer in the build.
func (s *PushService) sweepObsoleteModules(ctx context.Context, opts domain.PushOptions, index *RemoteDocumentIndex, result *domain.PushResult) error {
	logger.Section("Obsolete modules")
	obsolete, err := index.ObsoleteAcrossModules(ctx)
	if err != nil {
		return err
	}
	result.ObsoleteModules = obsolete
	logger.Info("found %d docs in obsolete modules (or no module): %v", len(obsolete), obsolete)
	if len(obsolete) == 0 {
		return nil
	}
	if !opts.Modules.DeleteObsolete {
		logger.Warn("found %d docs in obsolete modules (or no module); use --delete-obsolete-modules to delete them", len(obsolete))
		return nil
	}

	if err := confirmWithUser(ctx, s.confirmer, opts.Interactive, confirmSweep); err != nil {
		return err
	}
	deleted, err := s.deleteDocs(ctx, opts, obsolete)
	result.Deleted = append(result.Deleted, deleted...)
	return err
}

// deleteDocs deletes documents in parallel. They are disjoint resources,
// so order does not matter. Returns the names actually deleted, sorted.
func (s *PushService) deleteDocs(ctx context.Context, opts domain.PushOptions, names []string) ([]string, error) {
	if len(names) == 0 {
		return nil, nil
	}
	if opts.DryRun {
		for _, name := range names {
			logger.Info("deleting resource %s from server (skipped due to dry run)", name)
		}
		return nil, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.deleteConcurrency)

	var mu sync.Mutex
	deleted := make([]string, 0, len(names))
	for _, name := range names {
		g.Go(func() error {
			logger.Info("deleting resource %s from server", name)
			if err := s.docs.DeleteSource(gctx, opts.Project, opts.Version, name); err != nil {
				return fmt.Errorf("delete %s: %w", name, err)
			}
			mu.Lock()
			deleted = append(deleted, name)
			mu.Unlock()
			return nil
		})
	}
	err := g.Wait()
	sort.Strings(deleted)
	return deleted, err
}

func pushConfirmation(t domain.PushPullType) string {
	switch t {
	case domain.TransferTrans:
		return confirmPushTrans
	case domain.TransferBoth:
		return confirmPushBoth
	default:
		return confirmPushSource
	}
}

func logPushOptions(opts domain.PushOptions) {
	logger.Section("Push")
	logger.Debug("server project: %s, version: %s, type: %s", opts.Project, opts.Version, opts.ProjectType)
	logger.Debug("source dir: %s, translation dir: %s", opts.SrcDir, opts.TransDir)
	logger.Debug("push type: %s, merge type: %s, batch size: %d", opts.PushType, opts.MergeType, opts.BatchSize)
	logger.Debug("locales: %s", opts.Locales)
	logger.Debug("includes: %v, excludes: %v, default excludes: %t", opts.Scan.Includes, opts.Scan.Excludes, opts.Scan.DefaultExcludes)
	if opts.Modules.Enabled {
		logger.Debug("current module: %s, root: %t", opts.Modules.Current, opts.Modules.Root)
	}
	if opts.DryRun {
		logger.Info("DRY RUN: no permanent changes will be made")
	}
}

func moduleLabel(ns *ModuleNamespace) string {
	if ns.Enabled() {
		return ns.CurrentModule()
	}
	return "(default)"
}

// confirmWithUser asks for approval when running interactively.
// A declined prompt returns domain.ErrAborted.
func confirmWithUser(ctx context.Context, confirmer driven.Confirmer, interactive bool, message string) error {
	if !interactive || confirmer == nil {
		return nil
	}
	ok, err := confirmer.Confirm(ctx, message)
	if err != nil {
		return fmt.Errorf("confirm: %w", err)
	}
	if !ok {
		return domain.ErrAborted
	}
	return nil
}

// failedState returns the terminal state for a run that stopped on err.
func failedState(err error) domain.RunState {
	if errors.Is(err, domain.ErrAborted) {
		return domain.RunAborted
	}
	return domain.RunFailed
}
