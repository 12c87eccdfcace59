package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/transync-cli/internal/core/domain"
	"github.com/custodia-labs/transync-cli/internal/core/services"
	"github.com/custodia-labs/transync-cli/internal/formats/glossary"
)

var glossaryCmd = &cobra.Command{
	Use:   "glossary",
	Short: "Manage server glossaries",
}

var glossaryPushCmd = &cobra.Command{
	Use:   "push FILE",
	Short: "Push a glossary file to the server",
	Long: `Reads a glossary file and uploads its entries in batches.

CSV files start with a header row: the source locale, one column per
target locale, then the comment columns (pos and description by default).`,
	Args: cobra.ExactArgs(1),
	RunE: runGlossaryPush,
}

func init() {
	flags := glossaryPushCmd.Flags()
	flags.String("source-lang", "", "source locale the file must start with")
	flags.String("trans-lang", "", "target locale for single-locale formats")
	flags.StringSlice("comment-cols", glossary.DefaultCommentCols, "CSV columns holding comments rather than locales")
	flags.Bool("treat-source-comments-as-target", false, "copy source comments to every translated term")
	flags.Int("batch-size", domain.DefaultGlossaryBatchSize, "maximum entries per request")
	flags.Bool("dry-run", false, "read the file without pushing")

	glossaryCmd.AddCommand(glossaryPushCmd)
	rootCmd.AddCommand(glossaryCmd)
}

func runGlossaryPush(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	opts := domain.GlossaryPushOptions{
		File:                        args[0],
		SourceLang:                  s.str("source-lang", "glossary.source_lang"),
		TransLang:                   s.str("trans-lang", "glossary.trans_lang"),
		TreatSourceCommentsAsTarget: s.boolean("treat-source-comments-as-target", "glossary.treat_source_comments_as_target"),
		CommentCols:                 s.list("comment-cols", "glossary.comment_cols"),
		BatchSize:                   s.integer("batch-size", "glossary.batch_size"),
		DryRun:                      s.boolean("dry-run", "dry_run"),
	}
	if err := opts.Validate(); err != nil {
		return err
	}
	conn, err := s.connection(true)
	if err != nil {
		return err
	}

	server, err := connect(cmd.Context(), conn)
	if err != nil {
		return err
	}
	result, err := services.NewGlossaryService(server, glossaryReaders()).PushGlossary(cmd.Context(), opts)
	if err != nil {
		return err
	}

	prefix := ""
	if result.DryRun {
		prefix = "[dry run] "
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%sGlossary entries: %d in %d batches\n", prefix, result.Entries, len(result.Batches))
	return nil
}
