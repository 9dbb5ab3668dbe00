package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/modelstore/internal/adapters/driven/storage/sqlite"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, _ []string) {
		driver := sqlite.Driver()
		cmd.Printf("modelstore version %s (commit %s)\n", version, commit)
		cmd.Printf("sqlite driver: %s (%s, %s)\n", driver.Name, driver.Type, driver.Package)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
