package services

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/custodia-labs/transync-cli/internal/core/domain"
	"github.com/custodia-labs/transync-cli/internal/core/ports/driven"
)

// --- Test doubles shared by service tests ---

// fakeFormat implements driven.Format over in-memory documents.
type fakeFormat struct {
	name          string
	srcDirMissing bool
	findErr       error
	needsSource   bool

	scans []domain.ScanSpec

	sources map[string]*domain.Resource
	trans   map[string]map[string]*domain.TranslationsResource

	mu           sync.Mutex
	writtenSrc   []string
	writtenTrans []string
}

func newFakeFormat() *fakeFormat {
	return &fakeFormat{
		name:    "fake",
		sources: make(map[string]*domain.Resource),
		trans:   make(map[string]map[string]*domain.TranslationsResource),
	}
}

func (f *fakeFormat) withDoc(name string, ids ...string) *fakeFormat {
	res := &domain.Resource{Name: name, ContentType: domain.ContentTypeTextPlain, Lang: "en-US"}
	for _, id := range ids {
		res.TextFlows = append(res.TextFlows, domain.TextFlow{ID: id, Content: "src " + id})
	}
	f.sources[name] = res
	return f
}

func (f *fakeFormat) withTrans(name, locale string, n int) *fakeFormat {
	tr := &domain.TranslationsResource{Extensions: domain.ExtensionSet{"comment"}}
	for i := range n {
		tr.Targets = append(tr.Targets, domain.TextFlowTarget{
			ResID:   fmt.Sprintf("k%03d", i),
			State:   domain.StateTranslated,
			Content: fmt.Sprintf("%s-%d", locale, i),
		})
	}
	if f.trans[name] == nil {
		f.trans[name] = make(map[string]*domain.TranslationsResource)
	}
	f.trans[name][locale] = tr
	return f
}

func (f *fakeFormat) Name() string                    { return f.name }
func (f *fakeFormat) FileExtension() string           { return ".fake" }
func (f *fakeFormat) Extensions() domain.ExtensionSet { return domain.ExtensionSet{"comment"} }
func (f *fakeFormat) NeedsSource() bool               { return f.needsSource }

func (f *fakeFormat) FindDocuments(srcDir string, spec domain.ScanSpec) ([]string, error) {
	f.mu.Lock()
	f.scans = append(f.scans, spec)
	f.mu.Unlock()
	if f.srcDirMissing {
		return nil, fmt.Errorf("%w: %s", domain.ErrSourceDirMissing, srcDir)
	}
	if f.findErr != nil {
		return nil, f.findErr
	}
	names := make([]string, 0, len(f.sources))
	for name := range f.sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (f *fakeFormat) LoadSource(_, docName string) (*domain.Resource, error) {
	res, ok := f.sources[docName]
	if !ok {
		return nil, fmt.Errorf("load %s: %w", docName, domain.ErrNotFound)
	}
	c := *res
	return &c, nil
}

func (f *fakeFormat) VisitTranslations(_, docName string, _ *domain.Resource, locales domain.LocaleList, visit driven.TranslationVisitor) error {
	for _, locale := range locales {
		tr, ok := f.trans[docName][locale.LocalLocale()]
		if !ok {
			continue
		}
		if err := visit(locale, tr); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeFormat) WriteSource(_, docName string, _ *domain.Resource) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writtenSrc = append(f.writtenSrc, docName)
	return nil
}

func (f *fakeFormat) WriteTranslation(_, docName string, _ *domain.Resource, _ *domain.TranslationsResource, locale domain.LocaleMapping, _ driven.WriteOptions) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writtenTrans = append(f.writtenTrans, docName+":"+locale.LocalLocale())
	return nil
}

// stubConfirmer answers every prompt the same way and records messages.
type stubConfirmer struct {
	answer   bool
	err      error
	messages []string
}

func (c *stubConfirmer) Confirm(_ context.Context, message string) (bool, error) {
	c.messages = append(c.messages, message)
	return c.answer, c.err
}

// recordingProgress records progress updates.
type recordingProgress struct {
	mu      sync.Mutex
	started []string
	updates []int
	done    int
}

func (p *recordingProgress) Start(label string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.started = append(p.started, label)
}

func (p *recordingProgress) Update(percent int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.updates = append(p.updates, percent)
}

func (p *recordingProgress) Done() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.done++
}

// stubGlossaryReader returns a fixed number of entries.
type stubGlossaryReader struct {
	entries int
	err     error
}

func (r *stubGlossaryReader) Extension() string { return "csv" }

func (r *stubGlossaryReader) Read(in io.Reader, _ domain.GlossaryPushOptions) (*domain.Glossary, error) {
	if r.err != nil {
		return nil, r.err
	}
	if _, err := io.Copy(io.Discard, in); err != nil {
		return nil, err
	}
	g := &domain.Glossary{}
	for i := range r.entries {
		g.Entries = append(g.Entries, domain.GlossaryEntry{
			SrcLang: "en-US",
			Terms:   []domain.GlossaryTerm{{Locale: "en-US", Content: fmt.Sprintf("term%d", i)}},
		})
	}
	return g, nil
}
