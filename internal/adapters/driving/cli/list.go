package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/transync-cli/internal/core/services"
)

var listRemoteCmd = &cobra.Command{
	Use:   "list-remote",
	Short: "List the documents of a project version on the server",
	Long: `Prints the document names of the project version, one per line.
With modules enabled, only documents of the current module are listed.`,
	Args: cobra.NoArgs,
	RunE: runListRemote,
}

func init() {
	addModuleFlags(listRemoteCmd)
	rootCmd.AddCommand(listRemoteCmd)
}

func runListRemote(cmd *cobra.Command, _ []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	conn, err := s.connection(false)
	if err != nil {
		return err
	}

	server, err := connect(cmd.Context(), conn)
	if err != nil {
		return err
	}
	result, err := services.NewRemoteListService(server).ListRemote(cmd.Context(), s.projectOptions(), s.modules())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, name := range result.Names {
		fmt.Fprintln(out, name)
	}
	if n := len(result.Outside); n > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "(%d documents outside the current module)\n", n)
	}
	return nil
}
