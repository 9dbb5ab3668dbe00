package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete [table] [id...]",
	Short: "Delete rows from a table",
	Long: `Deletes rows from a configured table, selected in exactly one way:
by primary key (ids as arguments), by --field and --value, or every row
with --all. Deleting every row asks for confirmation unless --yes is given.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDelete,
}

var (
	deleteField string
	deleteValue string
	deleteAll   bool
	deleteYes   bool
)

func init() {
	deleteCmd.Flags().StringVar(&deleteField, "field", "", "Column to match")
	deleteCmd.Flags().StringVar(&deleteValue, "value", "", "Value the column must equal")
	deleteCmd.Flags().BoolVar(&deleteAll, "all", false, "Delete every row of the table")
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Do not ask for confirmation")
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	table, ids := args[0], args[1:]

	modes := 0
	if len(ids) > 0 {
		modes++
	}
	if deleteField != "" {
		modes++
	}
	if deleteAll {
		modes++
	}
	if modes != 1 {
		return errors.New("select rows with ids, --field/--value or --all (exactly one)")
	}

	store, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer store.Close()

	dao, err := recordDAO(store, table)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	var n int64
	switch {
	case deleteAll:
		if err := confirm(cmd, fmt.Sprintf("Delete every row of %s?", table), deleteYes); err != nil {
			return err
		}
		n, err = dao.DeleteAll(ctx)
	case deleteField != "":
		value, perr := parseValue(dao.Table(), deleteField, deleteValue)
		if perr != nil {
			return perr
		}
		n, err = dao.DeleteByField(ctx, deleteField, value)
	default:
		parsed, perr := parseIDs(ids)
		if perr != nil {
			return perr
		}
		n, err = dao.DeleteIDs(ctx, parsed...)
	}
	if err != nil {
		return err
	}

	cmd.Printf("Deleted %d rows from %s\n", n, table)
	return nil
}
