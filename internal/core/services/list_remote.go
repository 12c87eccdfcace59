package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/transync-cli/internal/core/domain"
	"github.com/custodia-labs/transync-cli/internal/core/ports/driven"
	"github.com/custodia-labs/transync-cli/internal/core/ports/driving"
)

// Ensure RemoteListService implements the interface.
var _ driving.RemoteLister = (*RemoteListService)(nil)

// RemoteListService lists the remote documents of a project version.
type RemoteListService struct {
	docs driven.DocumentClient
}

// NewRemoteListService creates a remote list service.
func NewRemoteListService(docs driven.DocumentClient) *RemoteListService {
	return &RemoteListService{docs: docs}
}

// ListRemote returns the names of the current module and, separately,
// the names outside it.
func (s *RemoteListService) ListRemote(ctx context.Context, project domain.ProjectOptions, modules domain.ModuleOptions) (*domain.RemoteListResult, error) {
	if project.Project == "" || project.Version == "" {
		return nil, fmt.Errorf("%w: project and project version must be specified", domain.ErrInvalidConfig)
	}
	if err := modules.Validate(); err != nil {
		return nil, err
	}
	ns, err := NewModuleNamespace(modules)
	if err != nil {
		return nil, err
	}

	index := NewRemoteDocumentIndex(s.docs, project.Project, project.Version, ns)
	inside, outside, err := index.partition(ctx)
	if err != nil {
		return nil, err
	}
	return &domain.RemoteListResult{Names: inside, Outside: outside}, nil
}
