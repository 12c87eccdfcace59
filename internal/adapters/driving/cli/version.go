package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/transync-cli/internal/adapters/driven/rest"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the client and REST API versions",
	Long: `Prints the transync version and the REST API version it speaks.
With --remote, also connects to the configured server and prints its version.`,
	Args: cobra.NoArgs,
	RunE: runVersion,
}

func init() {
	versionCmd.Flags().Bool("remote", false, "also print the server version")
	rootCmd.AddCommand(versionCmd)
}

func runVersion(cmd *cobra.Command, _ []string) error {
	cmd.Printf("transync version %s\n", version)
	cmd.Printf("REST API version %s\n", rest.APIVersion)

	if remote, _ := cmd.Flags().GetBool("remote"); !remote {
		return nil
	}
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
	serverVersion := "unknown"
	if v, ok := server.(interface{ ServerVersion() string }); ok && v.ServerVersion() != "" {
		serverVersion = v.ServerVersion()
	}
	cmd.Printf("Server %s version %s\n", conn.URL, serverVersion)
	return nil
}
