package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/transync-cli/internal/core/domain"
	"github.com/custodia-labs/transync-cli/internal/core/services"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent push and pull runs",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "number of runs to show, 0 for all")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	store, closer, err := openRunStore()
	if err != nil {
		return fmt.Errorf("open run history: %w", err)
	}
	if closer != nil {
		defer closer.Close()
	}

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := services.NewHistoryService(store).Recent(cmd.Context(), limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded.")
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), historyTable(runs))
	return nil
}

func historyTable(runs []domain.RunRecord) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "STARTED", "COMMAND", "PROJECT", "STATE", "DOCS", "DELETED", "BATCHES", "DURATION").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	for _, r := range runs {
		id := r.ID
		if len(id) > 8 {
			id = id[:8]
		}
		state := string(r.State)
		if r.DryRun {
			state += " (dry run)"
		}
		t.Row(
			id,
			r.StartedAt.Local().Format("2006-01-02 15:04:05"),
			r.Command,
			r.Project+"/"+r.Version,
			state,
			strconv.Itoa(r.Documents),
			strconv.Itoa(r.Deleted),
			strconv.Itoa(r.Batches),
			r.Duration().Round(time.Millisecond).String(),
		)
	}
	return t.String()
}
