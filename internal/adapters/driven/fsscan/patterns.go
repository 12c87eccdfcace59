package fsscan

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/custodia-labs/transync-cli/internal/core/domain"
)

// DefaultExcludes are the VCS and editor backup patterns excluded unless
// default excludes are turned off.
var DefaultExcludes = []string{
	// Miscellaneous typical temporary files
	"**/*~",
	"**/#*#",
	"**/.#*",
	"**/%*%",
	"**/._*",

	// CVS
	"**/CVS",
	"**/CVS/**",
	"**/.cvsignore",

	// SCCS
	"**/SCCS",
	"**/SCCS/**",

	// Visual SourceSafe
	"**/vssver.scc",

	// Subversion
	"**/.svn",
	"**/.svn/**",

	// Mac
	"**/.DS_Store",

	// Git
	"**/.git",
	"**/.git/**",
	"**/.gitattributes",
	"**/.gitignore",
	"**/.gitmodules",

	// Mercurial
	"**/.hg",
	"**/.hg/**",
	"**/.hgignore",
	"**/.hgsub",
	"**/.hgsubstate",
	"**/.hgtags",

	// Bazaar
	"**/.bzr",
	"**/.bzr/**",
	"**/.bzrignore",
}

// matcher holds normalised include and exclude patterns.
type matcher struct {
	includes      []string
	excludes      []string
	caseSensitive bool
}

// newMatcher builds the pattern set for a scan.
// Empty includes default to every file with the extension.
func newMatcher(ext string, spec domain.ScanSpec) (*matcher, error) {
	m := &matcher{caseSensitive: spec.CaseSensitive}

	includes := spec.Includes
	if len(includes) == 0 {
		includes = []string{"**/*" + ext}
	}
	excludes := append([]string(nil), spec.Excludes...)
	if spec.ExcludeLocaleFilenames {
		for _, locale := range spec.Locales {
			excludes = append(excludes, "**/*_"+locale.JavaLocale()+ext)
		}
	}
	if spec.DefaultExcludes {
		excludes = append(excludes, DefaultExcludes...)
	}

	var err error
	if m.includes, err = m.normalise(includes); err != nil {
		return nil, err
	}
	if m.excludes, err = m.normalise(excludes); err != nil {
		return nil, err
	}
	return m, nil
}

// normalise converts Ant patterns to doublestar patterns.
func (m *matcher) normalise(patterns []string) ([]string, error) {
	out := make([]string, 0, len(patterns))
	for _, p := range patterns {
		p = strings.TrimSpace(strings.ReplaceAll(p, "\\", "/"))
		if p == "" {
			continue
		}
		p = strings.TrimPrefix(p, "/")
		if strings.HasSuffix(p, "/") {
			p += "**"
		}
		if !m.caseSensitive {
			p = strings.ToLower(p)
		}
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("%w: invalid pattern %q", domain.ErrInvalidConfig, p)
		}
		out = append(out, p)
	}
	return out, nil
}

// included reports whether a slash-separated relative path is selected.
func (m *matcher) included(path string) bool {
	if !m.caseSensitive {
		path = strings.ToLower(path)
	}
	return matchAny(m.includes, path) && !matchAny(m.excludes, path)
}

// excludedDir reports whether everything below dir is excluded.
func (m *matcher) excludedDir(dir string) bool {
	if !m.caseSensitive {
		dir = strings.ToLower(dir)
	}
	for _, p := range m.excludes {
		if strings.HasSuffix(p, "/**") && doublestar.MatchUnvalidated(strings.TrimSuffix(p, "/**"), dir) {
			return true
		}
	}
	return false
}

func matchAny(patterns []string, path string) bool {
	for _, p := range patterns {
		if doublestar.MatchUnvalidated(p, path) {
			return true
		}
	}
	return false
}
