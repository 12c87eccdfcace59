package rest

import (
	"net/url"
	"strings"

	"github.com/custodia-labs/transync-cli/internal/core/domain"
)

// Wire representations of the server's JSON payloads.

type versionInfo struct {
	VersionNo      string `json:"versionNo"`
	BuildTimeStamp string `json:"buildTimeStamp,omitempty"`
}

type resourceMetaDTO struct {
	Name        string `json:"name"`
	ContentType string `json:"contentType,omitempty"`
	Lang        string `json:"lang,omitempty"`
	Revision    int    `json:"revision,omitempty"`
}

type textFlowDTO struct {
	ID      string `json:"id"`
	Lang    string `json:"lang,omitempty"`
	Content string `json:"content"`
	Comment string `json:"comment,omitempty"`
}

type resourceDTO struct {
	resourceMetaDTO
	Extensions []string      `json:"extensions,omitempty"`
	TextFlows  []textFlowDTO `json:"textFlows"`
}

type linkDTO struct {
	Href string `json:"href"`
	Rel  string `json:"rel,omitempty"`
	Type string `json:"type,omitempty"`
}

type textFlowTargetDTO struct {
	ResID   string `json:"resId"`
	State   string `json:"state"`
	Content string `json:"content"`
	Comment string `json:"comment,omitempty"`
}

type translationsDTO struct {
	Revision   int                 `json:"revision,omitempty"`
	Extensions []string            `json:"extensions,omitempty"`
	Links      []linkDTO           `json:"links,omitempty"`
	Targets    []textFlowTargetDTO `json:"textFlowTargets"`
}

type copyTransStatusDTO struct {
	InProgress         bool `json:"inProgress"`
	PercentageComplete int  `json:"percentageComplete"`
}

type glossaryTermDTO struct {
	Locale   string   `json:"locale"`
	Content  string   `json:"content"`
	Comments []string `json:"comments,omitempty"`
}

type glossaryEntryDTO struct {
	SrcLang         string            `json:"srcLang"`
	PartOfSpeech    string            `json:"pos,omitempty"`
	Description     string            `json:"description,omitempty"`
	SourceReference string            `json:"sourceReference,omitempty"`
	Terms           []glossaryTermDTO `json:"glossaryTerms"`
}

type glossaryDTO struct {
	Entries []glossaryEntryDTO `json:"glossaryEntries"`
}

// docID converts a document name to its URL path segment: each part is
// escaped and "/" becomes ",".
func docID(name string) string {
	parts := strings.Split(name, "/")
	for i, part := range parts {
		parts[i] = url.PathEscape(part)
	}
	return strings.Join(parts, ",")
}

func (d resourceMetaDTO) toDomain() domain.ResourceMeta {
	return domain.ResourceMeta{
		Name:        d.Name,
		ContentType: d.ContentType,
		Lang:        d.Lang,
		Revision:    d.Revision,
	}
}

func resourceToDTO(res *domain.Resource) resourceDTO {
	dto := resourceDTO{
		resourceMetaDTO: resourceMetaDTO{
			Name:        res.Name,
			ContentType: res.ContentType,
			Lang:        res.Lang,
			Revision:    res.Revision,
		},
		Extensions: res.Extensions,
		TextFlows:  make([]textFlowDTO, 0, len(res.TextFlows)),
	}
	for _, tf := range res.TextFlows {
		dto.TextFlows = append(dto.TextFlows, textFlowDTO{
			ID:      tf.ID,
			Lang:    res.Lang,
			Content: tf.Content,
			Comment: tf.Comment,
		})
	}
	return dto
}

func (d resourceDTO) toDomain() *domain.Resource {
	res := &domain.Resource{
		Name:        d.Name,
		ContentType: d.ContentType,
		Lang:        d.Lang,
		Revision:    d.Revision,
		Extensions:  d.Extensions,
		TextFlows:   make([]domain.TextFlow, 0, len(d.TextFlows)),
	}
	for _, tf := range d.TextFlows {
		res.TextFlows = append(res.TextFlows, domain.TextFlow{
			ID:      tf.ID,
			Content: tf.Content,
			Comment: tf.Comment,
		})
	}
	return res
}

func translationsToDTO(tr *domain.TranslationsResource) translationsDTO {
	dto := translationsDTO{
		Revision:   tr.Revision,
		Extensions: tr.Extensions,
		Targets:    make([]textFlowTargetDTO, 0, len(tr.Targets)),
	}
	for _, l := range tr.Links {
		dto.Links = append(dto.Links, linkDTO(l))
	}
	for _, t := range tr.Targets {
		dto.Targets = append(dto.Targets, textFlowTargetDTO{
			ResID:   t.ResID,
			State:   string(t.State),
			Content: t.Content,
			Comment: t.Comment,
		})
	}
	return dto
}

func (d translationsDTO) toDomain() *domain.TranslationsResource {
	tr := &domain.TranslationsResource{
		Revision:   d.Revision,
		Extensions: d.Extensions,
		Targets:    make([]domain.TextFlowTarget, 0, len(d.Targets)),
	}
	for _, l := range d.Links {
		tr.Links = append(tr.Links, domain.Link(l))
	}
	for _, t := range d.Targets {
		tr.Targets = append(tr.Targets, domain.TextFlowTarget{
			ResID:   t.ResID,
			State:   domain.ContentState(t.State),
			Content: t.Content,
			Comment: t.Comment,
		})
	}
	return tr
}

func glossaryToDTO(g *domain.Glossary) glossaryDTO {
	dto := glossaryDTO{Entries: make([]glossaryEntryDTO, 0, len(g.Entries))}
	for _, e := range g.Entries {
		entry := glossaryEntryDTO{
			SrcLang:         e.SrcLang,
			PartOfSpeech:    e.PartOfSpeech,
			Description:     e.Description,
			SourceReference: e.SourceReference,
			Terms:           make([]glossaryTermDTO, 0, len(e.Terms)),
		}
		for _, t := range e.Terms {
			term := glossaryTermDTO{Locale: t.Locale, Content: t.Content}
			if t.Comment != "" {
				term.Comments = []string{t.Comment}
			}
			entry.Terms = append(entry.Terms, term)
		}
		dto.Entries = append(dto.Entries, entry)
	}
	return dto
}
