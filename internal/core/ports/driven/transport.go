package driven

import (
	"context"

	"github.com/custodia-labs/transync-cli/internal/core/domain"
)

// DocumentClient manages source documents of a project version.
// Document names passed in are qualified names.
type DocumentClient interface {
	// ListDocuments returns every document of the project version.
	ListDocuments(ctx context.Context, project, version string) ([]domain.ResourceMeta, error)

	// GetSource fetches a source document.
	// Returns an error wrapping domain.ErrNotFound if it does not exist.
	GetSource(ctx context.Context, project, version, docName string, exts domain.ExtensionSet) (*domain.Resource, error)

	// PutSource creates or replaces a source document.
	PutSource(ctx context.Context, project, version string, res *domain.Resource, exts domain.ExtensionSet, copyTrans bool) error

	// DeleteSource removes a source document and its translations.
	DeleteSource(ctx context.Context, project, version, docName string) error
}

// TranslationClient exchanges translations of one document and locale.
type TranslationClient interface {
	// GetTranslations fetches translations.
	// Returns an error wrapping domain.ErrNotFound if there are none.
	GetTranslations(ctx context.Context, project, version, docName, locale string, exts domain.ExtensionSet) (*domain.TranslationsResource, error)

	// PutTranslations uploads translations with the given merge policy.
	// Returns warnings reported by the server, such as unknown text flow IDs.
	PutTranslations(ctx context.Context, project, version, docName, locale string, tr *domain.TranslationsResource, exts domain.ExtensionSet, merge domain.MergeType) ([]string, error)
}

// CopyTransClient drives copy-translations jobs.
type CopyTransClient interface {
	// StartCopyTrans starts a job for one document.
	StartCopyTrans(ctx context.Context, project, version, docName string) error

	// CopyTransStatus returns the job status.
	// Returns an error wrapping domain.ErrNotFound when the server has no
	// status endpoint or no job for the document.
	CopyTransStatus(ctx context.Context, project, version, docName string) (domain.CopyTransStatus, error)
}

// VersionChecker compares the server version with a known release.
type VersionChecker interface {
	// CompareServerVersion returns -1, 0 or 1 as the server version is
	// older than, equal to or newer than version.
	CompareServerVersion(ctx context.Context, version string) (int, error)
}

// GlossaryClient uploads glossary entries.
type GlossaryClient interface {
	PushGlossary(ctx context.Context, glossary *domain.Glossary) error
}

// TranslationServer is the full set of server operations.
type TranslationServer interface {
	DocumentClient
	TranslationClient
	CopyTransClient
	VersionChecker
	GlossaryClient
}
