package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/modelstore/internal/core/services"
)

var findCmd = &cobra.Command{
	Use:   "find [table]",
	Short: "Print rows of a table",
	Long: `Prints the rows of a configured table. With --field and --value only
rows whose field equals the value are printed; --order sorts them, for
example "name DESC, _id"; --first prints only the first match.`,
	Args: cobra.ExactArgs(1),
	RunE: runFind,
}

var (
	findField string
	findValue string
	findOrder string
	findFirst bool
)

func init() {
	findCmd.Flags().StringVar(&findField, "field", "", "Column to filter on")
	findCmd.Flags().StringVar(&findValue, "value", "", "Value the column must equal")
	findCmd.Flags().StringVarP(&findOrder, "order", "o", "", "Ordering clause, e.g. \"name DESC\"")
	findCmd.Flags().BoolVar(&findFirst, "first", false, "Print only the first matching row")
	rootCmd.AddCommand(findCmd)
}

func runFind(cmd *cobra.Command, args []string) error {
	if findFirst && findField == "" {
		return errors.New("--first requires --field")
	}

	store, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer store.Close()

	dao, err := recordDAO(store, args[0])
	if err != nil {
		return err
	}
	table := dao.Table()
	ctx := cmd.Context()

	var records []services.Record
	switch {
	case findField == "":
		records, err = dao.FindAll(ctx, findOrder)
	default:
		value, perr := parseValue(table, findField, findValue)
		if perr != nil {
			return perr
		}
		if findFirst {
			record, ok, ferr := dao.FindFirstByField(ctx, findField, value)
			if ferr != nil {
				return ferr
			}
			if !ok {
				return fmt.Errorf("no %s row with %s = %q: %w", table.Name(), findField, findValue, errNotFound)
			}
			records = []services.Record{record}
		} else {
			records, err = dao.FindAllByField(ctx, findField, value, findOrder)
		}
	}
	if err != nil {
		return err
	}

	if len(records) == 0 {
		cmd.Printf("No rows found in %s\n", table.Name())
		return nil
	}
	printRecords(cmd, table, records)
	cmd.Printf("Total: %d rows\n", len(records))
	return nil
}
