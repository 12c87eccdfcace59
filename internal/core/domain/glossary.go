package domain

// GlossaryTerm is one locale's rendering of a glossary entry.
type GlossaryTerm struct {
	Locale  string
	Content string
	Comment string
}

// GlossaryEntry is a source term with its translations.
type GlossaryEntry struct {
	SrcLang         string
	PartOfSpeech    string
	Description     string
	SourceReference string
	Terms           []GlossaryTerm
}

// Glossary is a list of entries pushed together.
type Glossary struct {
	Entries []GlossaryEntry
}

// Size returns the number of entries.
func (g *Glossary) Size() int {
	if g == nil {
		return 0
	}
	return len(g.Entries)
}
