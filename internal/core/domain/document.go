package domain

import "strings"

// ContentTypeTextPlain is the content type of every text flow pushed by transync.
const ContentTypeTextPlain = "text/plain"

// ExtensionSet names the optional document extensions a format carries,
// such as "comment" for properties files.
type ExtensionSet []string

// Contains reports whether the set includes the named extension.
func (s ExtensionSet) Contains(name string) bool {
	for _, ext := range s {
		if ext == name {
			return true
		}
	}
	return false
}

// String joins the extension names with commas.
func (s ExtensionSet) String() string {
	return strings.Join(s, ",")
}

// TextFlow is one translatable source entry of a document.
type TextFlow struct {
	// ID is the entry key, unique within the document.
	ID string

	// Content is the source-language text.
	Content string

	// Comment is the source comment, if the format carries one.
	Comment string
}

// Resource is a source document as exchanged with the translation server.
type Resource struct {
	// Name is the document name. Qualified with the module prefix
	// once the document is about to be pushed.
	Name string

	// ContentType is the MIME type of the text flows.
	ContentType string

	// Lang is the source locale.
	Lang string

	// Revision is the server revision, zero for new documents.
	Revision int

	// Extensions lists the document extensions present.
	Extensions ExtensionSet

	// TextFlows holds the entries in document order.
	TextFlows []TextFlow
}

// Size returns the number of text flows.
func (r *Resource) Size() int {
	if r == nil {
		return 0
	}
	return len(r.TextFlows)
}

// ResourceMeta is the server-side identity of a document.
// Only the name matters for reconciliation.
type ResourceMeta struct {
	Name        string
	ContentType string
	Lang        string
	Revision    int
}

// ContentState is the review state of a translation.
type ContentState string

// Translation states as understood by the server.
const (
	StateNew        ContentState = "New"
	StateNeedReview ContentState = "NeedReview"
	StateTranslated ContentState = "Translated"
	StateApproved   ContentState = "Approved"
	StateRejected   ContentState = "Rejected"
)

// IsTranslated returns true for states that carry a usable translation.
func (s ContentState) IsTranslated() bool {
	return s == StateTranslated || s == StateApproved
}

// Link is a hypermedia link attached to a translations payload.
type Link struct {
	Href string
	Rel  string
	Type string
}

// TextFlowTarget is the translation of one text flow.
type TextFlowTarget struct {
	// ResID is the ID of the source TextFlow.
	ResID string

	// State is the review state.
	State ContentState

	// Content is the translated text.
	Content string

	// Comment is the translator comment.
	Comment string
}

// TranslationsResource holds the translations of one document for one locale.
// Batches produced from it share its Extensions, Links and Revision.
type TranslationsResource struct {
	Revision   int
	Extensions ExtensionSet
	Links      []Link
	Targets    []TextFlowTarget
}

// Size returns the number of translation entries.
func (t *TranslationsResource) Size() int {
	if t == nil {
		return 0
	}
	return len(t.Targets)
}

// Target returns the translation for a text flow ID.
func (t *TranslationsResource) Target(resID string) (TextFlowTarget, bool) {
	if t == nil {
		return TextFlowTarget{}, false
	}
	for _, tft := range t.Targets {
		if tft.ResID == resID {
			return tft, true
		}
	}
	return TextFlowTarget{}, false
}
