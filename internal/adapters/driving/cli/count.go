package cli

import (
	"github.com/spf13/cobra"
)

var countCmd = &cobra.Command{
	Use:   "count [table]",
	Short: "Print the number of rows in a table",
	Args:  cobra.ExactArgs(1),
	RunE:  runCount,
}

func init() {
	rootCmd.AddCommand(countCmd)
}

func runCount(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer store.Close()

	dao, err := recordDAO(store, args[0])
	if err != nil {
		return err
	}
	n, err := dao.Count(cmd.Context())
	if err != nil {
		return err
	}
	cmd.Println(n)
	return nil
}
