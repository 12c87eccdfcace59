package driven

import (
	"io"

	"github.com/custodia-labs/transync-cli/internal/core/domain"
)

// DocumentScanner discovers local source documents.
type DocumentScanner interface {
	// Scan returns the sorted, de-duplicated document names under baseDir
	// whose files end in ext. Names are slash-separated and have ext
	// stripped. Returns an error wrapping domain.ErrSourceDirMissing
	// when baseDir does not exist.
	Scan(baseDir, ext string, spec domain.ScanSpec) ([]string, error)
}

// TranslationVisitor receives the local translations of one locale.
type TranslationVisitor func(locale domain.LocaleMapping, tr *domain.TranslationsResource) error

// PushStrategy reads local documents for upload.
type PushStrategy interface {
	// FileExtension is the source file extension, including the dot.
	FileExtension() string

	// Extensions lists the document extensions the format carries.
	Extensions() domain.ExtensionSet

	// FindDocuments returns the local document names under srcDir.
	FindDocuments(srcDir string, spec domain.ScanSpec) ([]string, error)

	// LoadSource reads a source document. The returned Resource is named
	// by the unqualified docName.
	LoadSource(srcDir, docName string) (*domain.Resource, error)

	// VisitTranslations calls visit for every locale with a local
	// translation file, in locale list order.
	VisitTranslations(transDir, docName string, src *domain.Resource, locales domain.LocaleList, visit TranslationVisitor) error
}

// WriteOptions controls how translations are written locally.
type WriteOptions struct {
	// CreateSkeletons writes every source key, untranslated ones empty.
	CreateSkeletons bool

	// IncludeFuzzy writes translations that still need review.
	IncludeFuzzy bool
}

// PullStrategy writes downloaded documents locally.
type PullStrategy interface {
	// NeedsSource reports whether WriteTranslation requires the source
	// document even when sources are not being pulled.
	NeedsSource() bool

	// WriteSource writes a source document named by the unqualified docName.
	WriteSource(srcDir, docName string, res *domain.Resource) error

	// WriteTranslation writes the translations of one locale.
	WriteTranslation(transDir, docName string, src *domain.Resource, tr *domain.TranslationsResource, locale domain.LocaleMapping, opts WriteOptions) error
}

// Format is a project type: a push and a pull strategy under one name.
type Format interface {
	// Name is the project type, e.g. "properties".
	Name() string

	PushStrategy
	PullStrategy
}

// GlossaryReader parses a glossary file.
type GlossaryReader interface {
	// Extension is the file extension handled, without the dot.
	Extension() string

	// Read parses r into glossary entries.
	Read(r io.Reader, opts domain.GlossaryPushOptions) (*domain.Glossary, error)
}
