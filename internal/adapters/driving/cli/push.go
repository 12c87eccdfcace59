package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/transync-cli/internal/core/domain"
	"github.com/custodia-labs/transync-cli/internal/core/ports/driving"
	"github.com/custodia-labs/transync-cli/internal/core/services"
)

var pushCmd = &cobra.Command{
	Use:   "push",
	Short: "Push source documents and translations to the server",
	Long: `Uploads local source documents and, with --push-type trans or both,
their translations. Remote documents with no local counterpart are deleted
after confirmation.

With --watch, the push is repeated whenever files under the source or
translation directory change.`,
	Args: cobra.NoArgs,
	RunE: runPush,
}

func init() {
	addDirFlags(pushCmd)
	addModuleFlags(pushCmd)

	flags := pushCmd.Flags()
	flags.String("push-type", string(domain.TransferSource), "what to push: source, trans or both")
	flags.String("merge-type", string(domain.MergeAuto), "translation merge: auto or import")
	flags.Int("batch-size", domain.DefaultBatchSize, "maximum translation entries per request")
	flags.Bool("copy-trans", true, "run copy-translations for each pushed document")
	flags.String("from-doc", "", "resume: skip uploads of documents sorted before this one")
	flags.StringSlice("includes", nil, "include patterns relative to the source directory")
	flags.StringSlice("excludes", nil, "exclude patterns relative to the source directory")
	flags.Bool("default-excludes", true, "exclude version-control and editor backup files")
	flags.Bool("case-sensitive", false, "match include/exclude patterns case-sensitively")
	flags.Bool("exclude-locale-filenames", true, "exclude files named like translations of the configured locales")
	flags.Bool("watch", false, "push again whenever local files change")
	flags.Duration("watch-debounce", defaultDebounce, "quiet period before a change triggers a push")

	rootCmd.AddCommand(pushCmd)
}

func (s *settings) pushOptions() (domain.PushOptions, error) {
	locales, err := s.locales()
	if err != nil {
		return domain.PushOptions{}, err
	}
	pushType, err := domain.ParsePushPullType(s.str("push-type", "push.push_type"))
	if err != nil {
		return domain.PushOptions{}, err
	}
	mergeType, err := domain.ParseMergeType(s.str("merge-type", "push.merge_type"))
	if err != nil {
		return domain.PushOptions{}, err
	}

	// Translation files of every configured locale stay excluded from the
	// scan, including those --locales leaves out.
	scan := s.scanSpec()
	scan.Locales, err = s.configuredLocales()
	if err != nil {
		return domain.PushOptions{}, err
	}

	return domain.PushOptions{
		ProjectOptions: s.projectOptions(),
		SrcDir:         s.str("src-dir", "src_dir"),
		TransDir:       s.str("trans-dir", "trans_dir"),
		Scan:           scan,
		PushType:       pushType,
		MergeType:      mergeType,
		BatchSize:      s.integer("batch-size", "push.batch_size"),
		CopyTrans:      s.boolean("copy-trans", "push.copy_trans"),
		FromDoc:        s.str("from-doc", "push.from_doc"),
		Modules:        s.modules(),
		Locales:        locales,
		DryRun:         s.boolean("dry-run", "dry_run"),
		Interactive:    s.interactive(),
	}, nil
}

func runPush(cmd *cobra.Command, _ []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	opts, err := s.pushOptions()
	if err != nil {
		return err
	}
	if err := opts.Validate(); err != nil {
		return err
	}
	conn, err := s.connection(true)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	server, err := connect(ctx, conn)
	if err != nil {
		return err
	}

	poller := services.NewCopyTransPoller(server, server,
		services.WithProgressReporter(newConsoleProgress(cmd.ErrOrStderr())))
	pusher := services.NewPushService(server, server, poller, formatRegistry(),
		newConsoleConfirmer(stdin, cmd.ErrOrStderr()))

	hist, closeHistory := history(s)
	defer closeHistory()

	if err := pushOnce(ctx, cmd.OutOrStdout(), pusher, hist, opts); err != nil {
		return err
	}

	if watch, _ := cmd.Flags().GetBool("watch"); !watch {
		return nil
	}

	// The first run's confirmation covers the watch session.
	opts.Interactive = false
	debounce, _ := cmd.Flags().GetDuration("watch-debounce")
	dirs := []string{opts.SrcDir}
	if opts.PushType.IncludesTrans() && opts.TransDir != opts.SrcDir {
		dirs = append(dirs, opts.TransDir)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Watching %v for changes (Ctrl+C to stop)\n", dirs)
	return watchDirs(ctx, dirs, debounce, func(ctx context.Context) error {
		return pushOnce(ctx, cmd.OutOrStdout(), pusher, hist, opts)
	})
}

func pushOnce(ctx context.Context, out io.Writer, pusher driving.Pusher, hist driving.RunHistory, opts domain.PushOptions) error {
	var run domain.RunRecord
	if hist != nil {
		run = hist.Begin("push", opts.ProjectOptions, opts.DryRun)
	}

	result, err := pusher.Push(ctx, opts)

	if hist != nil {
		hist.Finish(context.WithoutCancel(ctx), services.PushRecord(run, result), err)
	}
	if result != nil {
		printPushSummary(out, result)
	}
	return err
}

func printPushSummary(out io.Writer, r *domain.PushResult) {
	prefix := ""
	if r.DryRun {
		prefix = "[dry run] "
	}

	switch r.State {
	case domain.RunNoop:
		fmt.Fprintf(out, "%sNothing to push.\n", prefix)
		return
	case domain.RunSkipped:
		fmt.Fprintf(out, "%sSkipped: source directory not found.\n", prefix)
	case domain.RunAborted:
		fmt.Fprintf(out, "%sAborted.\n", prefix)
		return
	}

	batches := 0
	for _, b := range r.Batches {
		batches += b.Count()
	}
	fmt.Fprintf(out, "%sLocal documents: %d, sources pushed: %d, translation batches: %d\n",
		prefix, len(r.LocalDocs), len(r.SourcesPushed), batches)
	if len(r.Obsolete) > 0 || len(r.Deleted) > 0 {
		fmt.Fprintf(out, "%sObsolete documents: %d, deleted: %d\n", prefix, len(r.Obsolete), len(r.Deleted))
	}
	if len(r.ObsoleteModules) > 0 {
		fmt.Fprintf(out, "%sDocuments of obsolete modules: %d\n", prefix, len(r.ObsoleteModules))
	}
	for _, ct := range r.CopyTrans {
		if ct.Outcome != domain.CopyTransCompleted {
			fmt.Fprintf(out, "%sCopy-trans %s: %s\n", prefix, ct.Document, ct.Outcome)
		}
	}
	if n := len(r.Warnings); n > 0 {
		fmt.Fprintf(out, "%sServer warnings: %d\n", prefix, n)
	}
}

const defaultDebounce = 500 * time.Millisecond
