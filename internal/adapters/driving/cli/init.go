package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a sample schema file",
	Long: `Writes a schema file declaring a single users table to the --schema
path. An existing file is kept unless --force is given.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

var initForce bool

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite an existing schema file")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, _ []string) error {
	store, err := schemaStore()
	if err != nil {
		return err
	}
	if store.Exists() && !initForce {
		return errors.New("schema file " + store.Path() + " already exists (use --force to overwrite)")
	}

	cfg, err := sampleConfiguration()
	if err != nil {
		return err
	}
	if err := store.Save(cfg); err != nil {
		return err
	}
	cmd.Printf("Wrote %s\n", store.Path())
	return nil
}
