package services

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/custodia-labs/transync-cli/internal/core/domain"
	"github.com/custodia-labs/transync-cli/internal/core/ports/driven"
)

// FormatRegistry maps project types to formats. It is built once at
// startup and read-only afterwards.
type FormatRegistry struct {
	formats map[string]driven.Format
}

// NewFormatRegistry creates a registry. Later formats with the same name
// replace earlier ones.
func NewFormatRegistry(formats ...driven.Format) *FormatRegistry {
	r := &FormatRegistry{formats: make(map[string]driven.Format, len(formats))}
	for _, f := range formats {
		r.formats[strings.ToLower(f.Name())] = f
	}
	return r
}

// Get returns the format for a project type, case-insensitively.
func (r *FormatRegistry) Get(projectType string) (driven.Format, error) {
	f, ok := r.formats[strings.ToLower(projectType)]
	if !ok {
		return nil, fmt.Errorf("%w: project type %q (supported: %s)",
			domain.ErrUnsupportedType, projectType, strings.Join(r.Names(), ", "))
	}
	return f, nil
}

// Names returns the registered project types, sorted.
func (r *FormatRegistry) Names() []string {
	names := make([]string, 0, len(r.formats))
	for name := range r.formats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GlossaryReaders maps file extensions to glossary readers.
type GlossaryReaders struct {
	readers map[string]driven.GlossaryReader
}

// NewGlossaryReaders creates a read-only glossary reader registry.
func NewGlossaryReaders(readers ...driven.GlossaryReader) *GlossaryReaders {
	g := &GlossaryReaders{readers: make(map[string]driven.GlossaryReader, len(readers))}
	for _, r := range readers {
		g.readers[strings.ToLower(r.Extension())] = r
	}
	return g
}

// ForFile returns the reader for a file name by its extension.
func (g *GlossaryReaders) ForFile(name string) (driven.GlossaryReader, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	if ext == "" {
		return nil, fmt.Errorf("%w: glossary file %q has no extension", domain.ErrUnsupportedType, name)
	}
	r, ok := g.readers[ext]
	if !ok {
		return nil, fmt.Errorf("%w: glossary file type %q", domain.ErrUnsupportedType, ext)
	}
	return r, nil
}
