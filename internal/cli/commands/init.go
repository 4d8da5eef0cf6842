package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/leapstack-labs/lookup/internal/catalog"
	"github.com/leapstack-labs/lookup/internal/cli/config"
	"github.com/leapstack-labs/lookup/internal/schema"
	"github.com/spf13/cobra"
)

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool
	var schemaOnly bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the student database",
		Long: `Create the student database and its tables.

Demo students, courses, teachers and reviews are loaded unless --schema-only
is given. An existing sqlite file is left alone unless --force is given, in
which case it is replaced.`,
		Example: `  # Create HyperionDev.db with demo data
  lookup init

  # Create an empty database elsewhere
  lookup init --database ./data/school.db --schema-only

  # Recreate an existing database
  lookup init --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, force, schemaOnly)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Replace an existing database file")
	cmd.Flags().BoolVar(&schemaOnly, "schema-only", false, "Create the tables without demo data")

	return cmd
}

func runInit(cmd *cobra.Command, force, schemaOnly bool) error {
	ctx := cmd.Context()
	cfg := config.FromContext(ctx)
	logger := config.GetLogger(ctx)

	if cfg.Driver == catalog.DriverSQLite {
		if err := prepareFile(cfg.DatabasePath, force); err != nil {
			return err
		}
	}

	store, err := openStore(ctx, cfg, logger, true)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if err := schema.Migrate(ctx, store.DB(), schema.Options{
		Driver:       store.Driver(),
		SkipDemoData: schemaOnly,
	}); err != nil {
		return err
	}

	version, err := schema.Version(ctx, store.DB(), store.Driver())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "Database %s initialized (schema version %d)\n", cfg.DatabasePath, version)
	if !schemaOnly {
		_, _ = fmt.Fprintln(out, "Demo data loaded. Run 'lookup' to start querying.")
	}
	return nil
}

// prepareFile makes sure path can be created. An existing file is removed
// only when force is set.
func prepareFile(path string, force bool) error {
	info, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if dir := filepath.Dir(path); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", dir, err)
			}
		}
		return nil
	case err != nil:
		return fmt.Errorf("failed to inspect %s: %w", path, err)
	case info.IsDir():
		return fmt.Errorf("%s is a directory", path)
	case !force:
		return fmt.Errorf("%s already exists. Use --force to overwrite", path)
	}

	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to remove %s: %w", path, err)
	}
	return nil
}
