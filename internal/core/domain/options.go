package domain

import (
	"fmt"
	"strings"
)

// PushPullType selects what a push or pull transfers.
type PushPullType string

// Transfer directions.
const (
	TransferSource PushPullType = "source"
	TransferTrans  PushPullType = "trans"
	TransferBoth   PushPullType = "both"
)

// ParsePushPullType parses a transfer type case-insensitively.
func ParsePushPullType(s string) (PushPullType, error) {
	switch t := PushPullType(strings.ToLower(strings.TrimSpace(s))); t {
	case TransferSource, TransferTrans, TransferBoth:
		return t, nil
	case "":
		return TransferSource, nil
	default:
		return "", fmt.Errorf("%w: unknown push/pull type %q (source, trans, both)", ErrInvalidConfig, s)
	}
}

// IncludesSource reports whether source documents are transferred.
func (t PushPullType) IncludesSource() bool {
	return t == TransferSource || t == TransferBoth
}

// IncludesTrans reports whether translations are transferred.
func (t PushPullType) IncludesTrans() bool {
	return t == TransferTrans || t == TransferBoth
}

// MergeType selects how the server applies pushed translations.
type MergeType string

const (
	// MergeAuto merges pushed translations into existing ones.
	// Only this policy allows splitting a payload into batches.
	MergeAuto MergeType = "auto"

	// MergeImport replaces the server translations with the payload.
	MergeImport MergeType = "import"
)

// ParseMergeType parses a merge type case-insensitively.
func ParseMergeType(s string) (MergeType, error) {
	switch m := MergeType(strings.ToLower(strings.TrimSpace(s))); m {
	case MergeAuto, MergeImport:
		return m, nil
	case "":
		return MergeAuto, nil
	default:
		return "", fmt.Errorf("%w: unknown merge type %q (auto, import)", ErrInvalidConfig, s)
	}
}

// ScanSpec controls local document discovery.
type ScanSpec struct {
	Includes []string
	Excludes []string

	// DefaultExcludes adds the VCS and editor backup patterns.
	DefaultExcludes bool

	// CaseSensitive makes pattern matching case-sensitive.
	CaseSensitive bool

	// ExcludeLocaleFilenames excludes "*_<locale><ext>" for every locale
	// in Locales so translation files next to sources are not pushed as sources.
	ExcludeLocaleFilenames bool

	// Locales is every configured locale, even when a run works on a
	// subset. Empty means the run's locales.
	Locales LocaleList
}

// ProjectOptions identifies the server-side project version.
type ProjectOptions struct {
	Project     string
	Version     string
	ProjectType string
}

// Validate checks the project coordinates are present.
func (o ProjectOptions) Validate() error {
	if o.Project == "" {
		return fmt.Errorf("%w: project must be specified", ErrInvalidConfig)
	}
	if o.Version == "" {
		return fmt.Errorf("%w: project version must be specified", ErrInvalidConfig)
	}
	if o.ProjectType == "" {
		return fmt.Errorf("%w: project type must be specified", ErrInvalidConfig)
	}
	return nil
}

// DefaultBatchSize is the number of translation entries per request
// under auto-merge.
const DefaultBatchSize = 100

// PushOptions is the validated input of a push run.
type PushOptions struct {
	ProjectOptions

	SrcDir   string
	TransDir string
	Scan     ScanSpec

	PushType  PushPullType
	MergeType MergeType
	BatchSize int

	// CopyTrans runs copy-translations for every pushed document.
	CopyTrans bool

	// FromDoc skips uploads of documents sorted before it.
	FromDoc string

	Modules ModuleOptions
	Locales LocaleList

	DryRun      bool
	Interactive bool
}

// Validate checks option consistency before any network activity.
func (o *PushOptions) Validate() error {
	if err := o.ProjectOptions.Validate(); err != nil {
		return err
	}
	if o.SrcDir == "" {
		return fmt.Errorf("%w: source directory must be specified", ErrInvalidConfig)
	}
	if o.BatchSize <= 0 {
		return fmt.Errorf("%w: batch size needs to be 1 or more", ErrInvalidConfig)
	}
	if o.PushType.IncludesTrans() {
		if len(o.Locales) == 0 {
			return fmt.Errorf("%w: push type set to %q, but no locales are configured", ErrInvalidConfig, o.PushType)
		}
		if o.TransDir == "" {
			return fmt.Errorf("%w: translation directory must be specified", ErrInvalidConfig)
		}
	}
	return o.Modules.Validate()
}

// PullOptions is the validated input of a pull run.
type PullOptions struct {
	ProjectOptions

	SrcDir   string
	TransDir string

	PullType PushPullType

	// CreateSkeletons writes every source key, untranslated ones empty.
	CreateSkeletons bool

	// IncludeFuzzy writes translations that need review.
	IncludeFuzzy bool

	Modules ModuleOptions
	Locales LocaleList

	DryRun      bool
	Interactive bool
}

// Validate checks option consistency before any network activity.
func (o *PullOptions) Validate() error {
	if err := o.ProjectOptions.Validate(); err != nil {
		return err
	}
	if o.PullType.IncludesSource() && o.SrcDir == "" {
		return fmt.Errorf("%w: source directory must be specified", ErrInvalidConfig)
	}
	if o.PullType.IncludesTrans() {
		if len(o.Locales) == 0 {
			return fmt.Errorf("%w: pull type set to %q, but no locales are configured", ErrInvalidConfig, o.PullType)
		}
		if o.TransDir == "" {
			return fmt.Errorf("%w: translation directory must be specified", ErrInvalidConfig)
		}
	}
	return o.Modules.Validate()
}

// DefaultGlossaryBatchSize is the number of glossary entries per request.
const DefaultGlossaryBatchSize = 50

// GlossaryPushOptions is the input of a glossary push.
type GlossaryPushOptions struct {
	File       string
	SourceLang string

	// TransLang is required by formats that hold a single target locale.
	TransLang string

	// TreatSourceCommentsAsTarget copies source comments to each term.
	TreatSourceCommentsAsTarget bool

	// CommentCols names the CSV columns that hold comments, not locales.
	CommentCols []string

	BatchSize int
	DryRun    bool
}

// Validate checks the glossary options.
func (o *GlossaryPushOptions) Validate() error {
	if o.File == "" {
		return fmt.Errorf("%w: glossary file must be specified", ErrInvalidConfig)
	}
	if o.BatchSize <= 0 {
		return fmt.Errorf("%w: batch size needs to be 1 or more", ErrInvalidConfig)
	}
	return nil
}
