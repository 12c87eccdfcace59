package domain

import (
	"fmt"
	"strings"
)

const (
	// ModuleSeparator separates groupId and artifactId in a module ID.
	ModuleSeparator = "/"

	// DefaultModuleSuffix is appended to the module ID to form the
	// document name prefix.
	DefaultModuleSuffix = "/"

	// DefaultDocNameRegex extracts the module ID from a qualified document
	// name. It must contain exactly one capture group.
	DefaultDocNameRegex = `^([^/]+/[^/]+)/(.+)`
)

// ModuleDescriptor identifies one unit of a multi-module build.
type ModuleDescriptor struct {
	GroupID    string
	ArtifactID string
}

// ID returns "groupId/artifactId".
func (m ModuleDescriptor) ID() string {
	return m.GroupID + ModuleSeparator + m.ArtifactID
}

// ParseModuleID parses "groupId/artifactId".
func ParseModuleID(id string) (ModuleDescriptor, error) {
	group, artifact, ok := strings.Cut(id, ModuleSeparator)
	if !ok || group == "" || artifact == "" || strings.Contains(artifact, ModuleSeparator) {
		return ModuleDescriptor{}, fmt.Errorf("%w: module ID %q must be groupId/artifactId", ErrInvalidConfig, id)
	}
	return ModuleDescriptor{GroupID: group, ArtifactID: artifact}, nil
}

// ModuleKind classifies a remote document against the known modules.
type ModuleKind int

const (
	// ModuleLive means the document belongs to a module in the build.
	ModuleLive ModuleKind = iota

	// ModuleObsolete means the document names a module no longer in the build.
	ModuleObsolete

	// ModuleNone means the document name does not match the module pattern.
	ModuleNone
)

// String returns a short label for logs.
func (k ModuleKind) String() string {
	switch k {
	case ModuleLive:
		return "live"
	case ModuleObsolete:
		return "obsolete"
	case ModuleNone:
		return "none"
	default:
		return "unknown"
	}
}

// ModuleClass is the result of classifying a qualified document name.
type ModuleClass struct {
	Kind ModuleKind

	// ModuleID is the captured module, empty for ModuleNone.
	ModuleID string
}

// IsObsolete reports whether the document is a deletion candidate in the
// cross-module sweep. Documents with no module count as obsolete.
func (c ModuleClass) IsObsolete() bool {
	return c.Kind != ModuleLive
}

// ModuleOptions configures multi-module support.
type ModuleOptions struct {
	// Enabled turns on module prefixes for document names.
	Enabled bool

	// Current is the module ID of this invocation.
	Current string

	// Suffix is appended to Current to form the prefix.
	Suffix string

	// DocNameRegex classifies remote names by module.
	DocNameRegex string

	// All lists every module ID in the build.
	All []string

	// Root marks the invocation that sweeps obsolete modules.
	Root bool

	// DeleteObsolete allows the sweep to delete what it finds.
	DeleteObsolete bool
}

// Prefix returns the qualifying prefix, empty when modules are disabled.
func (o ModuleOptions) Prefix() string {
	if !o.Enabled {
		return ""
	}
	suffix := o.Suffix
	if suffix == "" {
		suffix = DefaultModuleSuffix
	}
	return o.Current + suffix
}

// Regex returns DocNameRegex or the default.
func (o ModuleOptions) Regex() string {
	if o.DocNameRegex == "" {
		return DefaultDocNameRegex
	}
	return o.DocNameRegex
}

// Validate checks module settings when enabled.
func (o ModuleOptions) Validate() error {
	if !o.Enabled {
		return nil
	}
	if _, err := ParseModuleID(o.Current); err != nil {
		return fmt.Errorf("current module: %w", err)
	}
	for _, id := range o.All {
		if _, err := ParseModuleID(id); err != nil {
			return err
		}
	}
	return nil
}
