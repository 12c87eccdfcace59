package domain

import (
	"fmt"
	"strings"
)

// LocaleMapping maps a server locale to the locale used in local file names.
type LocaleMapping struct {
	// Locale is the canonical server locale ID, e.g. "zh-Hans".
	Locale string

	// MapFrom is the optional local alias, e.g. "zh_CN".
	MapFrom string
}

// ParseLocaleMapping parses "locale" or "locale:alias".
func ParseLocaleMapping(s string) (LocaleMapping, error) {
	s = strings.TrimSpace(s)
	locale, alias, _ := strings.Cut(s, ":")
	locale = strings.TrimSpace(locale)
	if locale == "" {
		return LocaleMapping{}, fmt.Errorf("%w: empty locale in %q", ErrInvalidConfig, s)
	}
	return LocaleMapping{Locale: locale, MapFrom: strings.TrimSpace(alias)}, nil
}

// LocalLocale returns the alias if set, otherwise the server locale.
func (m LocaleMapping) LocalLocale() string {
	if m.MapFrom != "" {
		return m.MapFrom
	}
	return m.Locale
}

// JavaLocale returns the local locale with '-' replaced by '_',
// which is how translation files are suffixed.
func (m LocaleMapping) JavaLocale() string {
	return strings.ReplaceAll(m.LocalLocale(), "-", "_")
}

// LocaleList is the ordered list of locales configured for a project.
type LocaleList []LocaleMapping

// String renders the list as "[de, zh-Hans(zh_CN)]".
func (l LocaleList) String() string {
	parts := make([]string, 0, len(l))
	for _, m := range l {
		if m.LocalLocale() != m.Locale {
			parts = append(parts, m.Locale+"("+m.LocalLocale()+")")
			continue
		}
		parts = append(parts, m.Locale)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// FindByLocalLocale returns the mapping whose local locale equals id.
func (l LocaleList) FindByLocalLocale(id string) (LocaleMapping, bool) {
	for _, m := range l {
		if m.LocalLocale() == id {
			return m, true
		}
	}
	return LocaleMapping{}, false
}

// FindByLocalOrJavaLocale matches id against the local and Java forms.
func (l LocaleList) FindByLocalOrJavaLocale(id string) (LocaleMapping, bool) {
	for _, m := range l {
		if m.LocalLocale() == id || m.JavaLocale() == id {
			return m, true
		}
	}
	return LocaleMapping{}, false
}

// FindByCanonicalLocale returns the mapping for a server locale ID.
func (l LocaleList) FindByCanonicalLocale(id string) (LocaleMapping, bool) {
	for _, m := range l {
		if m.Locale == id {
			return m, true
		}
	}
	return LocaleMapping{}, false
}

// Restrict returns the subset of l named by ids, in the order of ids.
// An empty ids returns l unchanged. Every id must match a configured locale.
func (l LocaleList) Restrict(ids []string) (LocaleList, error) {
	if len(ids) == 0 {
		return l, nil
	}
	out := make(LocaleList, 0, len(ids))
	for _, id := range ids {
		m, ok := l.FindByLocalOrJavaLocale(id)
		if !ok {
			m, ok = l.FindByCanonicalLocale(id)
		}
		if !ok {
			return nil, fmt.Errorf("%w: locale %q is not configured for this project", ErrInvalidConfig, id)
		}
		out = append(out, m)
	}
	return out, nil
}
