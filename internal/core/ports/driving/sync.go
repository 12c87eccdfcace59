package driving

import (
	"context"

	"github.com/custodia-labs/transync-cli/internal/core/domain"
)

// Pusher uploads local documents and reconciles obsolete remote ones.
type Pusher interface {
	// Push runs one push. A declined confirmation returns an error
	// wrapping domain.ErrAborted together with a result in RunAborted state.
	Push(ctx context.Context, opts domain.PushOptions) (*domain.PushResult, error)
}

// Puller downloads remote documents into the local tree.
type Puller interface {
	// Pull runs one pull.
	Pull(ctx context.Context, opts domain.PullOptions) (*domain.PullResult, error)
}

// GlossaryPusher uploads a glossary file.
type GlossaryPusher interface {
	PushGlossary(ctx context.Context, opts domain.GlossaryPushOptions) (*domain.GlossaryPushResult, error)
}

// RemoteLister lists the documents of a project version.
type RemoteLister interface {
	ListRemote(ctx context.Context, project domain.ProjectOptions, modules domain.ModuleOptions) (*domain.RemoteListResult, error)
}
