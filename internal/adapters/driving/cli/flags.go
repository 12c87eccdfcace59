package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/transync-cli/internal/core/domain"
)

func addModuleFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.Bool("enable-modules", false, "qualify document names with the current module")
	flags.String("current-module", "", "module ID of this invocation, groupId/artifactId")
	flags.String("module-suffix", domain.DefaultModuleSuffix, "separator between module prefix and document name")
	flags.String("doc-name-regex", domain.DefaultDocNameRegex, "regex whose first group is the module of a document name")
	flags.StringSlice("all-modules", nil, "every module ID in the build")
	flags.Bool("root-module", false, "sweep documents of obsolete modules after pushing")
	flags.Bool("delete-obsolete-modules", false, "delete documents found by the obsolete-module sweep")
}

func addDirFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.String("src-dir", ".", "base directory of source documents")
	flags.String("trans-dir", ".", "base directory of translation files")
	flags.StringSlice("locales", nil, "restrict the configured locales to these IDs")
	flags.Bool("dry-run", false, "log what would change without changing anything")
}
