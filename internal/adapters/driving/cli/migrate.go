package cli

import (
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or upgrade the database",
	Long: `Opens the database declared by the schema file. A new database gets
every table; an older schema version drops and recreates every table,
discarding its rows. A database at a newer version is refused.`,
	Args: cobra.NoArgs,
	RunE: runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	store, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer store.Close()

	v, err := store.Version(cmd.Context())
	if err != nil {
		return err
	}
	cmd.Printf("Database: %s\n", store.Path())
	cmd.Printf("Schema version: %d\n", v)
	cmd.Printf("Tables: %d\n", len(store.Tables()))
	return nil
}
