package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/transync-cli/internal/core/domain"
	"github.com/custodia-labs/transync-cli/internal/core/services"
)

var pullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Pull source documents and translations from the server",
	Long: `Downloads the documents of the project version and writes them into
the local source and translation directories. Existing files are
overwritten after confirmation.`,
	Args: cobra.NoArgs,
	RunE: runPull,
}

func init() {
	addDirFlags(pullCmd)
	addModuleFlags(pullCmd)

	flags := pullCmd.Flags()
	flags.String("pull-type", string(domain.TransferTrans), "what to pull: source, trans or both")
	flags.Bool("create-skeletons", false, "write every source key, leaving untranslated values empty")
	flags.Bool("include-fuzzy", false, "also write translations that need review")

	rootCmd.AddCommand(pullCmd)
}

func (s *settings) pullOptions() (domain.PullOptions, error) {
	locales, err := s.locales()
	if err != nil {
		return domain.PullOptions{}, err
	}
	pullType, err := domain.ParsePushPullType(s.str("pull-type", "pull.pull_type"))
	if err != nil {
		return domain.PullOptions{}, err
	}

	return domain.PullOptions{
		ProjectOptions:  s.projectOptions(),
		SrcDir:          s.str("src-dir", "src_dir"),
		TransDir:        s.str("trans-dir", "trans_dir"),
		PullType:        pullType,
		CreateSkeletons: s.boolean("create-skeletons", "pull.create_skeletons"),
		IncludeFuzzy:    s.boolean("include-fuzzy", "pull.include_fuzzy"),
		Modules:         s.modules(),
		Locales:         locales,
		DryRun:          s.boolean("dry-run", "dry_run"),
		Interactive:     s.interactive(),
	}, nil
}

func runPull(cmd *cobra.Command, _ []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	opts, err := s.pullOptions()
	if err != nil {
		return err
	}
	if err := opts.Validate(); err != nil {
		return err
	}
	conn, err := s.connection(false)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	server, err := connect(ctx, conn)
	if err != nil {
		return err
	}
	puller := services.NewPullService(server, server, formatRegistry(),
		newConsoleConfirmer(stdin, cmd.ErrOrStderr()))

	hist, closeHistory := history(s)
	defer closeHistory()

	var run domain.RunRecord
	if hist != nil {
		run = hist.Begin("pull", opts.ProjectOptions, opts.DryRun)
	}
	result, err := puller.Pull(ctx, opts)
	if hist != nil {
		hist.Finish(context.WithoutCancel(ctx), services.PullRecord(run, result), err)
	}
	if result != nil {
		printPullSummary(cmd.OutOrStdout(), result)
	}
	return err
}

func printPullSummary(out io.Writer, r *domain.PullResult) {
	prefix := ""
	if r.DryRun {
		prefix = "[dry run] "
	}

	switch r.State {
	case domain.RunNoop:
		fmt.Fprintf(out, "%sNo documents to pull.\n", prefix)
		return
	case domain.RunAborted:
		fmt.Fprintf(out, "%sAborted.\n", prefix)
		return
	}

	fmt.Fprintf(out, "%sDocuments: %d, source files written: %d, translation files written: %d\n",
		prefix, len(r.Documents), r.SourcesWritten, r.TranslationsWritten)
	if n := len(r.Missing); n > 0 {
		fmt.Fprintf(out, "%sNo translations on the server for %d document/locale pairs\n", prefix, n)
	}
}
