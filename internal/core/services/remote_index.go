package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/transync-cli/internal/core/domain"
	"github.com/custodia-labs/transync-cli/internal/core/ports/driven"
	"github.com/custodia-labs/transync-cli/internal/logger"
)

// RemoteDocumentIndex is a per-run snapshot of the server document list.
// The list is fetched once and never refreshed, even after this run
// deletes documents, so every reconciliation decision sees the same state.
type RemoteDocumentIndex struct {
	client  driven.DocumentClient
	project string
	version string
	ns      *ModuleNamespace

	mu      sync.Mutex
	fetched bool
	docs    []domain.ResourceMeta
}

// NewRemoteDocumentIndex creates an index for one project version.
func NewRemoteDocumentIndex(client driven.DocumentClient, project, version string, ns *ModuleNamespace) *RemoteDocumentIndex {
	return &RemoteDocumentIndex{
		client:  client,
		project: project,
		version: version,
		ns:      ns,
	}
}

// FetchAll returns the cached document list, fetching it on first use.
// A failed fetch is not cached.
func (i *RemoteDocumentIndex) FetchAll(ctx context.Context) ([]domain.ResourceMeta, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.fetched {
		return i.docs, nil
	}

	logger.Debug("fetching document list for %s/%s", i.project, i.version)
	docs, err := i.client.ListDocuments(ctx, i.project, i.version)
	if err != nil {
		return nil, fmt.Errorf("list remote documents: %w", err)
	}
	i.docs = docs
	i.fetched = true
	return i.docs, nil
}

// NamesForCurrentModule returns the remote names in the current module.
// Names outside the module are logged and left out.
func (i *RemoteDocumentIndex) NamesForCurrentModule(ctx context.Context) ([]string, error) {
	names, _, err := i.partition(ctx)
	return names, err
}

// partition splits remote names into the current module and the rest.
func (i *RemoteDocumentIndex) partition(ctx context.Context) (inside, outside []string, err error) {
	docs, err := i.FetchAll(ctx)
	if err != nil {
		return nil, nil, err
	}

	inside = make([]string, 0, len(docs))
	for _, doc := range docs {
		if !i.ns.Enabled() || i.ns.BelongsToCurrentModule(doc.Name) {
			inside = append(inside, doc.Name)
			continue
		}
		logger.Debug("found extra-modular document on server: %s", doc.Name)
		outside = append(outside, doc.Name)
	}
	return inside, outside, nil
}

// ObsoleteInCurrentModule returns the remote names of the current module
// whose local counterpart is missing from localNames.
func (i *RemoteDocumentIndex) ObsoleteInCurrentModule(ctx context.Context, localNames []string) ([]string, error) {
	remote, err := i.NamesForCurrentModule(ctx)
	if err != nil {
		return nil, err
	}

	local := make(map[string]struct{}, len(localNames))
	for _, name := range localNames {
		local[name] = struct{}{}
	}

	var obsolete []string
	for _, qualified := range remote {
		name, err := i.ns.Unqualify(qualified)
		if err != nil {
			return nil, err
		}
		if _, ok := local[name]; !ok {
			obsolete = append(obsolete, qualified)
		}
	}
	return obsolete, nil
}

// ObsoleteAcrossModules returns every remote name that belongs to an
// unknown module or to no module. Returns nil when modules are disabled.
func (i *RemoteDocumentIndex) ObsoleteAcrossModules(ctx context.Context) ([]string, error) {
	if !i.ns.Enabled() {
		return nil, nil
	}
	docs, err := i.FetchAll(ctx)
	if err != nil {
		return nil, err
	}

	var obsolete []string
	for _, doc := range docs {
		class := i.ns.Classify(doc.Name)
		switch class.Kind {
		case domain.ModuleLive:
			logger.Debug("doc %s belongs to module %s", doc.Name, class.ModuleID)
		case domain.ModuleObsolete:
			logger.Info("doc %s belongs to obsolete module %s", doc.Name, class.ModuleID)
			obsolete = append(obsolete, doc.Name)
		case domain.ModuleNone:
			logger.Warn("doc %s doesn't belong to any module", doc.Name)
			obsolete = append(obsolete, doc.Name)
		}
	}
	return obsolete, nil
}
