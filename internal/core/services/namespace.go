package services

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/custodia-labs/transync-cli/internal/core/domain"
)

// ModuleNamespace maps local document names to server document names
// and classifies remote names by module.
type ModuleNamespace struct {
	enabled bool
	current string
	prefix  string
	pattern *regexp.Regexp
	known   map[string]struct{}
}

// NewModuleNamespace builds a namespace from module options.
// The doc name regex must match whole names and capture the module ID
// in its first group.
func NewModuleNamespace(opts domain.ModuleOptions) (*ModuleNamespace, error) {
	ns := &ModuleNamespace{
		enabled: opts.Enabled,
		current: opts.Current,
		prefix:  opts.Prefix(),
		known:   make(map[string]struct{}, len(opts.All)+1),
	}
	if !opts.Enabled {
		return ns, nil
	}

	pattern, err := regexp.Compile(`^(?:` + opts.Regex() + `)$`)
	if err != nil {
		return nil, fmt.Errorf("%w: doc name regex: %w", domain.ErrInvalidConfig, err)
	}
	if pattern.NumSubexp() < 1 {
		return nil, fmt.Errorf("%w: doc name regex %q has no capture group for the module", domain.ErrInvalidConfig, opts.Regex())
	}
	ns.pattern = pattern

	for _, id := range opts.All {
		ns.known[id] = struct{}{}
	}
	if opts.Current != "" {
		ns.known[opts.Current] = struct{}{}
	}
	return ns, nil
}

// Enabled reports whether module prefixes are in use.
func (n *ModuleNamespace) Enabled() bool {
	return n.enabled
}

// CurrentModule returns the module ID of this invocation.
func (n *ModuleNamespace) CurrentModule() string {
	return n.current
}

// Prefix returns the qualifying prefix, empty when modules are disabled.
func (n *ModuleNamespace) Prefix() string {
	return n.prefix
}

// Qualify prefixes a local name with the current module.
func (n *ModuleNamespace) Qualify(localName string) string {
	return n.prefix + localName
}

// Unqualify strips the current module prefix. Callers must only pass
// names for which BelongsToCurrentModule is true; anything else is a
// programming error and returns ErrNotInModule.
func (n *ModuleNamespace) Unqualify(qualifiedName string) (string, error) {
	local, ok := strings.CutPrefix(qualifiedName, n.prefix)
	if !ok {
		return "", fmt.Errorf("%w: %q does not start with %q", domain.ErrNotInModule, qualifiedName, n.prefix)
	}
	return local, nil
}

// BelongsToCurrentModule reports whether the name carries the current prefix.
func (n *ModuleNamespace) BelongsToCurrentModule(qualifiedName string) bool {
	return strings.HasPrefix(qualifiedName, n.prefix)
}

// Classify reports which module a remote name belongs to.
// With modules disabled every name is live.
func (n *ModuleNamespace) Classify(qualifiedName string) domain.ModuleClass {
	if !n.enabled {
		return domain.ModuleClass{Kind: domain.ModuleLive}
	}
	m := n.pattern.FindStringSubmatch(qualifiedName)
	if m == nil {
		return domain.ModuleClass{Kind: domain.ModuleNone}
	}
	id := m[1]
	if _, ok := n.known[id]; ok {
		return domain.ModuleClass{Kind: domain.ModuleLive, ModuleID: id}
	}
	return domain.ModuleClass{Kind: domain.ModuleObsolete, ModuleID: id}
}
