package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/modelstore/internal/adapters/driven/config/file"
	"github.com/custodia-labs/modelstore/internal/core/domain"
	"github.com/custodia-labs/modelstore/internal/core/schema"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the DDL derived from the schema file",
}

var schemaCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Print CREATE TABLE statements",
	Long: `Prints one CREATE TABLE statement per configured table, in the order
the tables are declared. With --watch the statements are printed again
each time the schema file changes.`,
	Args: cobra.NoArgs,
	RunE: runSchemaCreate,
}

var schemaDropCmd = &cobra.Command{
	Use:   "drop",
	Short: "Print DROP TABLE statements",
	Args:  cobra.NoArgs,
	RunE:  runSchemaDrop,
}

var schemaWatch bool

func init() {
	schemaCreateCmd.Flags().BoolVarP(&schemaWatch, "watch", "w", false, "Reprint when the schema file changes")

	schemaCmd.AddCommand(schemaCreateCmd)
	schemaCmd.AddCommand(schemaDropCmd)
	rootCmd.AddCommand(schemaCmd)
}

func runSchemaCreate(cmd *cobra.Command, _ []string) error {
	store, err := schemaStore()
	if err != nil {
		return err
	}
	cfg, err := store.Load()
	if err != nil {
		return err
	}
	printStatements(cmd, schema.CreateStatements(cfg.Models))

	if !schemaWatch {
		return nil
	}

	changes, err := file.Watch(cmd.Context(), store.Path())
	if err != nil {
		return err
	}
	cmd.PrintErrf("Watching %s (Ctrl+C to stop)\n", store.Path())
	for change := range changes {
		if change.Err != nil {
			cmd.PrintErrf("Error: %v\n", change.Err)
			continue
		}
		cmd.Println()
		printStatements(cmd, schema.CreateStatements(change.Config.Models))
	}
	return nil
}

func runSchemaDrop(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfiguration()
	if err != nil {
		return err
	}
	printStatements(cmd, schema.DropStatements(cfg.Models))
	return nil
}

func printStatements(cmd *cobra.Command, statements []string) {
	for _, stmt := range statements {
		cmd.Printf("%s;\n", stmt)
	}
}

// sampleConfiguration is the schema written by init.
func sampleConfiguration() (domain.Configuration, error) {
	users := domain.NewTable("users").
		PrimaryKey(domain.IDColumn, domain.TypeInteger).
		SizedColumn("name", domain.TypeText, 100).
		Column("email", domain.TypeText).
		Column("age", domain.TypeInteger)
	table, err := users.Build()
	if err != nil {
		return domain.Configuration{}, err
	}
	return domain.NewConfigurationBuilder().
		DatabaseName("modelstore.db").
		Models(table).
		Build()
}
