package glossary

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/custodia-labs/transync-cli/internal/core/domain"
	"github.com/custodia-labs/transync-cli/internal/core/ports/driven"
)

// Ensure CSVReader implements the interface.
var _ driven.GlossaryReader = (*CSVReader)(nil)

// DefaultCommentCols are the CSV columns read as comments by default.
var DefaultCommentCols = []string{"pos", "description"}

const (
	colPartOfSpeech = "pos"
	colDescription  = "description"
)

// CSVReader reads glossaries laid out as
//
//	srcLocale,locale1,locale2,...,pos,description
//
// The first column is the source term. Every other column is a locale
// unless it is named in the comment columns.
type CSVReader struct{}

// NewCSVReader creates a CSV glossary reader.
func NewCSVReader() *CSVReader {
	return &CSVReader{}
}

// Extension returns "csv".
func (r *CSVReader) Extension() string {
	return "csv"
}

// Read parses a CSV glossary.
func (r *CSVReader) Read(in io.Reader, opts domain.GlossaryPushOptions) (*domain.Glossary, error) {
	data, err := io.ReadAll(in)
	if err != nil {
		return nil, err
	}

	cr := csv.NewReader(bufio.NewReader(bytes.NewReader(stripBOM(data))))
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return &domain.Glossary{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read glossary header: %w", err)
	}

	layout, err := newLayout(header, opts)
	if err != nil {
		return nil, err
	}

	glossary := &domain.Glossary{}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read glossary: %w", err)
		}
		if entry, ok := layout.entry(rec, opts.TreatSourceCommentsAsTarget); ok {
			glossary.Entries = append(glossary.Entries, entry)
		}
	}
	return glossary, nil
}

// layout maps header columns onto locales and comments.
type layout struct {
	width    int
	srcLang  string
	locales  map[int]string
	comments map[int]string
}

func newLayout(header []string, opts domain.GlossaryPushOptions) (*layout, error) {
	srcLang := strings.TrimSpace(header[0])
	if srcLang == "" {
		return nil, fmt.Errorf("%w: glossary header must start with the source locale", domain.ErrInvalidConfig)
	}
	if opts.SourceLang != "" && !strings.EqualFold(opts.SourceLang, srcLang) {
		return nil, fmt.Errorf("%w: glossary source locale %s does not match %s", domain.ErrInvalidConfig, srcLang, opts.SourceLang)
	}

	commentCols := opts.CommentCols
	if len(commentCols) == 0 {
		commentCols = DefaultCommentCols
	}
	isComment := make(map[string]bool, len(commentCols))
	for _, c := range commentCols {
		isComment[strings.ToLower(strings.TrimSpace(c))] = true
	}

	l := &layout{width: len(header), srcLang: srcLang, locales: make(map[int]string), comments: make(map[int]string)}
	for i := 1; i < len(header); i++ {
		name := strings.TrimSpace(header[i])
		switch {
		case name == "":
			return nil, fmt.Errorf("%w: glossary column %d has no header", domain.ErrInvalidConfig, i+1)
		case isComment[strings.ToLower(name)]:
			l.comments[i] = strings.ToLower(name)
		default:
			l.locales[i] = name
		}
	}
	return l, nil
}

func (l *layout) entry(rec []string, commentsToTargets bool) (domain.GlossaryEntry, bool) {
	cell := func(i int) string {
		if i < len(rec) {
			return strings.TrimSpace(rec[i])
		}
		return ""
	}

	source := cell(0)
	if source == "" {
		return domain.GlossaryEntry{}, false
	}

	entry := domain.GlossaryEntry{SrcLang: l.srcLang}
	var comments []string
	for i := 1; i < l.width; i++ {
		name, ok := l.comments[i]
		if !ok {
			continue
		}
		value := cell(i)
		switch name {
		case colPartOfSpeech:
			entry.PartOfSpeech = value
		case colDescription:
			entry.Description = value
		}
		if value != "" {
			comments = append(comments, value)
		}
	}
	sourceComment := strings.Join(comments, "\n")

	entry.Terms = append(entry.Terms, domain.GlossaryTerm{Locale: l.srcLang, Content: source, Comment: sourceComment})
	for i := 1; i < l.width; i++ {
		locale, ok := l.locales[i]
		if !ok {
			continue
		}
		content := cell(i)
		if content == "" {
			continue
		}
		term := domain.GlossaryTerm{Locale: locale, Content: content}
		if commentsToTargets {
			term.Comment = sourceComment
		}
		entry.Terms = append(entry.Terms, term)
	}
	return entry, true
}

func stripBOM(b []byte) []byte {
	return bytes.TrimPrefix(b, []byte{0xEF, 0xBB, 0xBF})
}
