// Package cli implements the modelstore command line.
//
// Commands read the database configuration from a TOML schema file
// (--schema, default ~/.modelstore/schema.toml) and operate on any of its
// tables through record DAOs.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/modelstore/internal/adapters/driven/config/file"
	"github.com/custodia-labs/modelstore/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/modelstore/internal/core/domain"
	"github.com/custodia-labs/modelstore/internal/core/ports/driving"
	"github.com/custodia-labs/modelstore/internal/core/services"
	"github.com/custodia-labs/modelstore/internal/logger"
)

var (
	version = "dev"
	commit  = "none"

	schemaPath string
	dataDir    string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "modelstore",
	Short: "Manage SQLite databases described by a schema file",
	Long: `modelstore creates, upgrades and inspects SQLite databases whose tables
are declared in a TOML schema file. Bumping the schema version rebuilds
every table on the next open.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&schemaPath, "schema", "s", "", "Schema file (default ~/.modelstore/schema.toml)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Directory for databases without a configured path (default ~/.modelstore/data)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log statements and lifecycle events to stderr")
}

// SetBuildInfo records the version reported by the version command.
func SetBuildInfo(v, c string) {
	version = v
	commit = c
}

// Execute runs the root command. Errors carry an exit code, see ExitCode.
func Execute(ctx context.Context) error {
	return mapCommandError(rootCmd.ExecuteContext(ctx))
}

// ==================== Shared helpers ====================

func schemaStore() (*file.SchemaStore, error) {
	return file.NewSchemaStore(schemaPath)
}

func loadConfiguration() (domain.Configuration, error) {
	store, err := schemaStore()
	if err != nil {
		return domain.Configuration{}, err
	}
	return store.Load()
}

func storeOptions() []sqlite.Option {
	if dataDir == "" {
		return nil
	}
	return []sqlite.Option{sqlite.WithDataDir(dataDir)}
}

// openStore loads the schema and opens its database. The caller closes it.
func openStore(ctx context.Context) (*sqlite.Store, error) {
	cfg, err := loadConfiguration()
	if err != nil {
		return nil, err
	}
	store, err := sqlite.New(cfg, storeOptions()...)
	if err != nil {
		return nil, err
	}
	if err := store.Open(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

// recordDAO returns a DAO over the named configured table.
func recordDAO(store *sqlite.Store, table string) (driving.Repository[services.Record], error) {
	meta, ok := store.Configuration().Model(table)
	if !ok {
		return nil, fmt.Errorf("%w: table %q is not in the schema", domain.ErrInvalidQuery, table)
	}
	db, err := store.Database()
	if err != nil {
		return nil, err
	}
	dao, err := services.NewRecordDAO(db, meta)
	if err != nil {
		return nil, err
	}
	return dao, nil
}
