package properties

import (
	"github.com/magiconair/properties"

	"github.com/custodia-labs/transync-cli/internal/adapters/driven/fsscan"
	"github.com/custodia-labs/transync-cli/internal/core/domain"
	"github.com/custodia-labs/transync-cli/internal/core/ports/driven"
)

// Ensure Format implements the interface.
var _ driven.Format = (*Format)(nil)

const (
	// TypeLatin1 is the project type for ISO-8859-1 properties files.
	TypeLatin1 = "properties"

	// TypeUTF8 is the project type for UTF-8 properties files.
	TypeUTF8 = "utf8properties"

	// FileExtension is the extension of source and translation files.
	FileExtension = ".properties"

	// ExtComment carries entry comments to and from the server.
	ExtComment = "comment"

	// DefaultSourceLang is the source locale of loaded documents.
	DefaultSourceLang = "en-US"
)

// Format reads and writes properties files.
type Format struct {
	name       string
	encoding   properties.Encoding
	open       fsscan.Opener
	scanner    driven.DocumentScanner
	sourceLang string
}

// Option configures a Format.
type Option func(*Format)

// WithSourceLang sets the locale stamped on loaded source documents.
func WithSourceLang(lang string) Option {
	return func(f *Format) {
		if lang != "" {
			f.sourceLang = lang
		}
	}
}

// NewLatin1 creates the ISO-8859-1 "properties" project type.
func NewLatin1(open fsscan.Opener, opts ...Option) *Format {
	return newFormat(TypeLatin1, properties.ISO_8859_1, open, opts)
}

// NewUTF8 creates the "utf8properties" project type.
func NewUTF8(open fsscan.Opener, opts ...Option) *Format {
	return newFormat(TypeUTF8, properties.UTF8, open, opts)
}

func newFormat(name string, enc properties.Encoding, open fsscan.Opener, opts []Option) *Format {
	f := &Format{
		name:       name,
		encoding:   enc,
		open:       open,
		scanner:    fsscan.NewScanner(open),
		sourceLang: DefaultSourceLang,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Name returns the project type.
func (f *Format) Name() string {
	return f.name
}

// FileExtension returns ".properties".
func (f *Format) FileExtension() string {
	return FileExtension
}

// Extensions returns the comment extension.
func (f *Format) Extensions() domain.ExtensionSet {
	return domain.ExtensionSet{ExtComment}
}

// NeedsSource is false: translations are written from their own entries
// unless skeletons are requested.
func (f *Format) NeedsSource() bool {
	return false
}

// FindDocuments returns the source document names under srcDir.
func (f *Format) FindDocuments(srcDir string, spec domain.ScanSpec) ([]string, error) {
	return f.scanner.Scan(srcDir, FileExtension, spec)
}

func sourceFile(docName string) string {
	return docName + FileExtension
}

func translationFile(docName string, locale domain.LocaleMapping) string {
	return docName + "_" + locale.JavaLocale() + FileExtension
}
