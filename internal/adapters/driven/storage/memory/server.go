package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/custodia-labs/transync-cli/internal/core/domain"
	"github.com/custodia-labs/transync-cli/internal/core/ports/driven"
)

// Ensure TranslationServer implements the interface.
var _ driven.TranslationServer = (*TranslationServer)(nil)

// Server operations recorded in Calls.
const (
	OpList           = "list"
	OpGetSource      = "get-source"
	OpPutSource      = "put-source"
	OpDelete         = "delete"
	OpGetTrans       = "get-trans"
	OpPutTrans       = "put-trans"
	OpStartCopyTrans = "start-copytrans"
	OpCopyTransState = "copytrans-status"
	OpGlossary       = "glossary"
)

// Call records one server operation.
type Call struct {
	Op       string
	Document string
	Locale   string

	// Size is the number of entries sent, for uploads.
	Size int
}

// TranslationServer is an in-memory translation server for one project
// version. It records every call and can be told to fail specific ones.
type TranslationServer struct {
	mu sync.Mutex

	docs     map[string]*domain.Resource
	trans    map[transKey]*domain.TranslationsResource
	glossary []domain.GlossaryEntry
	calls    []Call

	failures map[string]error

	// copyTransStatuses are returned one per status call. The last one
	// repeats once the list is exhausted.
	copyTransStatuses []domain.CopyTransStatus
	copyTransPolls    int

	versionCmp int
	versionErr error
}

type transKey struct {
	doc    string
	locale string
}

// NewTranslationServer creates an empty server that reports copy-translations
// as complete and a version newer than any feature check.
func NewTranslationServer() *TranslationServer {
	return &TranslationServer{
		docs:              make(map[string]*domain.Resource),
		trans:             make(map[transKey]*domain.TranslationsResource),
		failures:          make(map[string]error),
		copyTransStatuses: []domain.CopyTransStatus{{InProgress: false, PercentageComplete: 100}},
		versionCmp:        1,
	}
}

// AddDocument stores a source document as if previously pushed.
func (s *TranslationServer) AddDocument(res *domain.Resource) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[res.Name] = cloneResource(res)
}

// AddTranslations stores translations as if previously pushed.
func (s *TranslationServer) AddTranslations(docName, locale string, tr *domain.TranslationsResource) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trans[transKey{docName, locale}] = cloneTranslations(tr)
}

// FailOn makes the operation fail for a document. An empty document
// fails the operation for every document.
func (s *TranslationServer) FailOn(op, docName string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[op+"|"+docName] = err
}

// SetCopyTransStatuses sets the sequence returned by status polls.
func (s *TranslationServer) SetCopyTransStatuses(statuses ...domain.CopyTransStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.copyTransStatuses = statuses
	s.copyTransPolls = 0
}

// SetVersionComparison fixes the result of CompareServerVersion.
func (s *TranslationServer) SetVersionComparison(cmp int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.versionCmp = cmp
	s.versionErr = err
}

// Calls returns a copy of the recorded calls in order.
func (s *TranslationServer) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call(nil), s.calls...)
}

// CallsFor returns the recorded calls of one operation.
func (s *TranslationServer) CallsFor(op string) []Call {
	var out []Call
	for _, c := range s.Calls() {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

// MutatingCalls counts uploads, deletions and copy-translations starts.
func (s *TranslationServer) MutatingCalls() int {
	n := 0
	for _, c := range s.Calls() {
		switch c.Op {
		case OpPutSource, OpPutTrans, OpDelete, OpStartCopyTrans, OpGlossary:
			n++
		}
	}
	return n
}

// DocumentNames returns the stored document names, sorted.
func (s *TranslationServer) DocumentNames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.docs))
	for name := range s.docs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Translations returns the stored translations of a document and locale.
func (s *TranslationServer) Translations(docName, locale string) *domain.TranslationsResource {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneTranslations(s.trans[transKey{docName, locale}])
}

// Glossary returns the stored glossary entries.
func (s *TranslationServer) Glossary() []domain.GlossaryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.GlossaryEntry(nil), s.glossary...)
}

// record appends a call and returns the injected failure, if any.
// Callers hold s.mu.
func (s *TranslationServer) record(c Call) error {
	s.calls = append(s.calls, c)
	if err, ok := s.failures[c.Op+"|"+c.Document]; ok {
		return err
	}
	if err, ok := s.failures[c.Op+"|"]; ok {
		return err
	}
	return nil
}

// ListDocuments returns every stored document, sorted by name.
func (s *TranslationServer) ListDocuments(_ context.Context, _, _ string) ([]domain.ResourceMeta, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record(Call{Op: OpList}); err != nil {
		return nil, err
	}
	metas := make([]domain.ResourceMeta, 0, len(s.docs))
	for _, doc := range s.docs {
		metas = append(metas, domain.ResourceMeta{
			Name:        doc.Name,
			ContentType: doc.ContentType,
			Lang:        doc.Lang,
			Revision:    doc.Revision,
		})
	}
	sort.Slice(metas, func(i, j int) bool { return metas[i].Name < metas[j].Name })
	return metas, nil
}

// GetSource returns a stored document.
func (s *TranslationServer) GetSource(_ context.Context, _, _, docName string, _ domain.ExtensionSet) (*domain.Resource, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record(Call{Op: OpGetSource, Document: docName}); err != nil {
		return nil, err
	}
	doc, ok := s.docs[docName]
	if !ok {
		return nil, fmt.Errorf("document %s: %w", docName, domain.ErrNotFound)
	}
	return cloneResource(doc), nil
}

// PutSource stores a document, bumping its revision.
func (s *TranslationServer) PutSource(_ context.Context, _, _ string, res *domain.Resource, _ domain.ExtensionSet, _ bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record(Call{Op: OpPutSource, Document: res.Name, Size: res.Size()}); err != nil {
		return err
	}
	doc := cloneResource(res)
	if prev, ok := s.docs[res.Name]; ok {
		doc.Revision = prev.Revision + 1
	} else {
		doc.Revision = 1
	}
	s.docs[res.Name] = doc
	return nil
}

// DeleteSource removes a document and its translations.
func (s *TranslationServer) DeleteSource(_ context.Context, _, _, docName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record(Call{Op: OpDelete, Document: docName}); err != nil {
		return err
	}
	if _, ok := s.docs[docName]; !ok {
		return fmt.Errorf("document %s: %w", docName, domain.ErrNotFound)
	}
	delete(s.docs, docName)
	for key := range s.trans {
		if key.doc == docName {
			delete(s.trans, key)
		}
	}
	return nil
}

// GetTranslations returns stored translations.
func (s *TranslationServer) GetTranslations(_ context.Context, _, _, docName, locale string, _ domain.ExtensionSet) (*domain.TranslationsResource, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record(Call{Op: OpGetTrans, Document: docName, Locale: locale}); err != nil {
		return nil, err
	}
	tr, ok := s.trans[transKey{docName, locale}]
	if !ok {
		return nil, fmt.Errorf("translations %s [%s]: %w", docName, locale, domain.ErrNotFound)
	}
	return cloneTranslations(tr), nil
}

// PutTranslations stores translations. Auto-merge updates targets by ID
// and appends new ones; import replaces the stored set. Targets for text
// flows missing from the source document produce a warning.
func (s *TranslationServer) PutTranslations(_ context.Context, _, _, docName, locale string, tr *domain.TranslationsResource, _ domain.ExtensionSet, merge domain.MergeType) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record(Call{Op: OpPutTrans, Document: docName, Locale: locale, Size: tr.Size()}); err != nil {
		return nil, err
	}

	var warnings []string
	if doc, ok := s.docs[docName]; ok {
		ids := make(map[string]struct{}, len(doc.TextFlows))
		for _, tf := range doc.TextFlows {
			ids[tf.ID] = struct{}{}
		}
		for _, tft := range tr.Targets {
			if _, ok := ids[tft.ResID]; !ok {
				warnings = append(warnings, fmt.Sprintf("could not find text flow for target %s in %s", tft.ResID, docName))
			}
		}
	}

	key := transKey{docName, locale}
	existing, ok := s.trans[key]
	if !ok || merge == domain.MergeImport {
		s.trans[key] = cloneTranslations(tr)
		return warnings, nil
	}

	index := make(map[string]int, len(existing.Targets))
	for i, tft := range existing.Targets {
		index[tft.ResID] = i
	}
	for _, tft := range tr.Targets {
		if i, ok := index[tft.ResID]; ok {
			existing.Targets[i] = tft
			continue
		}
		index[tft.ResID] = len(existing.Targets)
		existing.Targets = append(existing.Targets, tft)
	}
	return warnings, nil
}

// StartCopyTrans records the start of a job.
func (s *TranslationServer) StartCopyTrans(_ context.Context, _, _, docName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.copyTransPolls = 0
	return s.record(Call{Op: OpStartCopyTrans, Document: docName})
}

// CopyTransStatus returns the next configured status.
func (s *TranslationServer) CopyTransStatus(_ context.Context, _, _, docName string) (domain.CopyTransStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record(Call{Op: OpCopyTransState, Document: docName}); err != nil {
		return domain.CopyTransStatus{}, err
	}
	if len(s.copyTransStatuses) == 0 {
		return domain.CopyTransStatus{}, fmt.Errorf("copy-translations %s: %w", docName, domain.ErrNotFound)
	}
	i := min(s.copyTransPolls, len(s.copyTransStatuses)-1)
	s.copyTransPolls++
	return s.copyTransStatuses[i], nil
}

// CompareServerVersion returns the configured comparison.
func (s *TranslationServer) CompareServerVersion(_ context.Context, _ string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.versionCmp, s.versionErr
}

// PushGlossary appends glossary entries.
func (s *TranslationServer) PushGlossary(_ context.Context, glossary *domain.Glossary) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record(Call{Op: OpGlossary, Size: glossary.Size()}); err != nil {
		return err
	}
	s.glossary = append(s.glossary, glossary.Entries...)
	return nil
}

func cloneResource(r *domain.Resource) *domain.Resource {
	if r == nil {
		return nil
	}
	c := *r
	c.Extensions = append(domain.ExtensionSet(nil), r.Extensions...)
	c.TextFlows = append([]domain.TextFlow(nil), r.TextFlows...)
	return &c
}

func cloneTranslations(t *domain.TranslationsResource) *domain.TranslationsResource {
	if t == nil {
		return nil
	}
	c := *t
	c.Extensions = append(domain.ExtensionSet(nil), t.Extensions...)
	c.Links = append([]domain.Link(nil), t.Links...)
	c.Targets = append([]domain.TextFlowTarget(nil), t.Targets...)
	return &c
}
