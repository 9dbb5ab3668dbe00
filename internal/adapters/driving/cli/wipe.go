package cli

import (
	"github.com/spf13/cobra"
)

var wipeCmd = &cobra.Command{
	Use:   "wipe",
	Short: "Delete every row of every table",
	Long: `Deletes the rows of every configured table in one transaction. The
tables and the schema version are kept.`,
	Args: cobra.NoArgs,
	RunE: runWipe,
}

var wipeYes bool

func init() {
	wipeCmd.Flags().BoolVarP(&wipeYes, "yes", "y", false, "Do not ask for confirmation")
	rootCmd.AddCommand(wipeCmd)
}

func runWipe(cmd *cobra.Command, _ []string) error {
	store, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer store.Close()

	if err := confirm(cmd, "Delete every row of "+store.Path()+"?", wipeYes); err != nil {
		return err
	}
	if err := store.Wipe(cmd.Context()); err != nil {
		return err
	}
	cmd.Printf("Wiped %d tables\n", len(store.Tables()))
	return nil
}
