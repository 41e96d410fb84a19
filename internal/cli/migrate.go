package cli

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/aufaa4aaaaa/kasir-app/pkg/config"
	"github.com/aufaa4aaaaa/kasir-app/pkg/db"
	"github.com/aufaa4aaaaa/kasir-app/pkg/migrate"
)

type migrateOptions struct {
	Dir string
}

// NewMigrateCommand manages the sqlite mirror schema.
func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &migrateOptions{}

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the sqlite mirror schema",
	}
	cmd.PersistentFlags().StringVar(&opts.Dir, "dir", migrate.DefaultDir, "migration source directory (create, validate)")

	for _, command := range []string{"up", "down", "status"} {
		cmd.AddCommand(&cobra.Command{
			Use:   command,
			Short: "goose " + command + " against the mirror database",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withMirrorDB(cmd.Context(), rootOpts, func(sqlDB *sql.DB) error {
					return migrate.Run(cmd.Context(), sqlDB, command)
				})
			},
		})
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "version [target]",
		Short: "Print the schema version, or migrate to target",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMirrorDB(cmd.Context(), rootOpts, func(sqlDB *sql.DB) error {
				if len(args) == 1 {
					return migrate.MigrateToVersion(cmd.Context(), sqlDB, args[0])
				}
				version, err := migrate.Version(cmd.Context(), sqlDB)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), version)
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "create <name>",
		Short: "Create a new SQL migration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := migrate.CreateSQLMigration(opts.Dir, args[0], time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "created migration:", path)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate migration sources",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := migrate.ValidateEmbedded(); err != nil {
				return fmt.Errorf("embedded migrations: %w", err)
			}
			if cmd.Flags().Changed("dir") {
				if err := migrate.ValidateDir(opts.Dir); err != nil {
					return err
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migration validation passed")
			return nil
		},
	})

	return cmd
}

func withMirrorDB(ctx context.Context, rootOpts *RootOptions, fn func(sqlDB *sql.DB) error) error {
	cfg, err := loadConfig(rootOpts)
	if err != nil {
		return err
	}
	if cfg.Mirror.DriverName() != config.MirrorDriverSQLite {
		return fmt.Errorf("migrations apply to the sqlite mirror; %s is %q", config.EnvMirrorDriver, cfg.Mirror.Driver)
	}

	client, err := db.New(ctx, cfg.Mirror, newLogger(rootOpts))
	if err != nil {
		return err
	}
	defer client.Close()

	sqlDB, err := client.SQL()
	if err != nil {
		return err
	}
	return fn(sqlDB)
}
