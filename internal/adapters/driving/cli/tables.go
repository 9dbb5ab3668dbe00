package cli

import (
	"github.com/spf13/cobra"
)

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "List configured tables with their row counts",
	Args:  cobra.NoArgs,
	RunE:  runTables,
}

func init() {
	rootCmd.AddCommand(tablesCmd)
}

func runTables(cmd *cobra.Command, _ []string) error {
	store, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer store.Close()

	for _, table := range store.Tables() {
		dao, err := recordDAO(store, table.Name())
		if err != nil {
			return err
		}
		n, err := dao.Count(cmd.Context())
		if err != nil {
			return err
		}
		cmd.Printf("  %-24s %d rows\n", table.Name(), n)
		for _, c := range table.Columns() {
			cmd.Printf("      %s\n", c.Definition())
		}
	}
	return nil
}
