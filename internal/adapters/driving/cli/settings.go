package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/transync-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/transync-cli/internal/adapters/driven/rest"
	"github.com/custodia-labs/transync-cli/internal/core/domain"
	"github.com/custodia-labs/transync-cli/internal/core/ports/driven"
)

// settings resolves options with the precedence
// command-line flag > project file > user file defaults > flag default.
type settings struct {
	cmd     *cobra.Command
	project driven.ConfigStore
	user    driven.ConfigStore
}

func loadSettings(cmd *cobra.Command) (*settings, error) {
	projectPath, _ := cmd.Flags().GetString("config")
	if projectPath == "" {
		projectPath = file.ProjectFileName
	}
	project, err := file.NewConfigStore(projectPath)
	if err != nil {
		return nil, fmt.Errorf("project config: %w", err)
	}

	userPath, _ := cmd.Flags().GetString("user-config")
	user, err := file.NewConfigStore(userPath)
	if err != nil {
		return nil, fmt.Errorf("user config: %w", err)
	}

	return &settings{cmd: cmd, project: project, user: user}, nil
}

func (s *settings) changed(flag string) bool {
	f := s.cmd.Flags().Lookup(flag)
	return f != nil && f.Changed
}

func (s *settings) userDefault(key string) string {
	return "defaults." + key
}

func (s *settings) str(flag, key string) string {
	if s.changed(flag) {
		v, _ := s.cmd.Flags().GetString(flag)
		return v
	}
	if s.project.Has(key) {
		return s.project.GetString(key)
	}
	if s.user.Has(s.userDefault(key)) {
		return s.user.GetString(s.userDefault(key))
	}
	v, _ := s.cmd.Flags().GetString(flag)
	return v
}

func (s *settings) boolean(flag, key string) bool {
	if s.changed(flag) {
		v, _ := s.cmd.Flags().GetBool(flag)
		return v
	}
	if s.project.Has(key) {
		return s.project.GetBool(key)
	}
	if s.user.Has(s.userDefault(key)) {
		return s.user.GetBool(s.userDefault(key))
	}
	v, _ := s.cmd.Flags().GetBool(flag)
	return v
}

func (s *settings) integer(flag, key string) int {
	if s.changed(flag) {
		v, _ := s.cmd.Flags().GetInt(flag)
		return v
	}
	if s.project.Has(key) {
		return s.project.GetInt(key)
	}
	v, _ := s.cmd.Flags().GetInt(flag)
	return v
}

func (s *settings) list(flag, key string) []string {
	if s.changed(flag) {
		v, _ := s.cmd.Flags().GetStringSlice(flag)
		return v
	}
	if s.project.Has(key) {
		return s.project.GetStringSlice(key)
	}
	v, _ := s.cmd.Flags().GetStringSlice(flag)
	return v
}

// projectOptions resolves the project coordinates.
func (s *settings) projectOptions() domain.ProjectOptions {
	return domain.ProjectOptions{
		Project:     s.str("project", "project"),
		Version:     s.str("project-version", "project_version"),
		ProjectType: s.str("project-type", "project_type"),
	}
}

// configuredLocales parses the project's locale list.
func (s *settings) configuredLocales() (domain.LocaleList, error) {
	var list domain.LocaleList
	for _, raw := range s.project.GetStringSlice("locales") {
		m, err := domain.ParseLocaleMapping(raw)
		if err != nil {
			return nil, err
		}
		list = append(list, m)
	}
	return list, nil
}

// locales returns the configured locales narrowed by --locales.
func (s *settings) locales() (domain.LocaleList, error) {
	list, err := s.configuredLocales()
	if err != nil {
		return nil, err
	}
	if s.changed("locales") {
		ids, _ := s.cmd.Flags().GetStringSlice("locales")
		return list.Restrict(ids)
	}
	return list, nil
}

// modules resolves the module options from [modules] and flags.
func (s *settings) modules() domain.ModuleOptions {
	return domain.ModuleOptions{
		Enabled:        s.boolean("enable-modules", "modules.enabled"),
		Current:        s.str("current-module", "modules.current"),
		Suffix:         s.str("module-suffix", "modules.suffix"),
		DocNameRegex:   s.str("doc-name-regex", "modules.doc_name_regex"),
		All:            s.list("all-modules", "modules.all"),
		Root:           s.boolean("root-module", "modules.root"),
		DeleteObsolete: s.boolean("delete-obsolete-modules", "modules.delete_obsolete"),
	}
}

// connection resolves the server settings. Credentials come from the
// flags, or from the [servers.<name>] table selected by --server or by
// matching URL.
func (s *settings) connection(requireAuth bool) (rest.Config, error) {
	cfg := rest.Config{
		URL:      s.str("url", "url"),
		Username: s.str("username", "username"),
		APIKey:   s.str("key", "key"),
	}

	serverName, _ := s.cmd.Flags().GetString("server")
	for _, name := range s.user.Sections("servers") {
		prefix := "servers." + name + "."
		serverURL := s.user.GetString(prefix + "url")
		if name != serverName && (cfg.URL == "" || !sameURL(serverURL, cfg.URL)) {
			continue
		}
		if cfg.URL == "" {
			cfg.URL = serverURL
		}
		if cfg.Username == "" {
			cfg.Username = s.user.GetString(prefix + "username")
		}
		if cfg.APIKey == "" {
			cfg.APIKey = s.user.GetString(prefix + "key")
		}
		break
	}

	if v, ok := s.user.Get(s.userDefault("requests_per_second")); ok {
		switch n := v.(type) {
		case int64:
			cfg.RequestsPerSecond = float64(n)
		case float64:
			cfg.RequestsPerSecond = n
		}
	}

	if cfg.URL == "" {
		return cfg, fmt.Errorf("%w: server URL is required (--url, url in %s or a [servers] entry)", domain.ErrInvalidConfig, s.project.Path())
	}
	if requireAuth && (cfg.Username == "" || cfg.APIKey == "") {
		return cfg, fmt.Errorf("%w: username and API key are required for %s", domain.ErrInvalidConfig, cfg.URL)
	}
	return cfg, nil
}

func sameURL(a, b string) bool {
	return a != "" && strings.TrimSuffix(a, "/") == strings.TrimSuffix(b, "/")
}

// interactive is false in batch mode.
func (s *settings) interactive() bool {
	batch, _ := s.cmd.Flags().GetBool("batch")
	return !batch
}

// historyEnabled reads [history] enabled, defaulting to true.
func (s *settings) historyEnabled() bool {
	if s.project.Has("history.enabled") {
		return s.project.GetBool("history.enabled")
	}
	return true
}

// scanSpec builds the document scan settings.
func (s *settings) scanSpec() domain.ScanSpec {
	return domain.ScanSpec{
		Includes:               s.list("includes", "includes"),
		Excludes:               s.list("excludes", "excludes"),
		DefaultExcludes:        s.boolean("default-excludes", "default_excludes"),
		CaseSensitive:          s.boolean("case-sensitive", "case_sensitive"),
		ExcludeLocaleFilenames: s.boolean("exclude-locale-filenames", "exclude_locale_filenames"),
	}
}
