package migrate

import (
	"context"
	"fmt"

	"github.com/aufaa4aaaaa/kasir-app/pkg/config"
	"github.com/aufaa4aaaaa/kasir-app/pkg/db"
	"github.com/aufaa4aaaaa/kasir-app/pkg/logger"
)

// MaybeRun applies pending migrations when the sqlite mirror has auto-migrate enabled.
func MaybeRun(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	if cfg.Mirror.DriverName() != config.MirrorDriverSQLite || !cfg.Mirror.AutoMigrate {
		return nil
	}

	sqlDB, err := client.SQL()
	if err != nil {
		return fmt.Errorf("extracting sql.DB: %w", err)
	}

	meta := map[string]any{"env": cfg.App.Env, "path": cfg.Mirror.SQLitePath}
	ctx = logg.WithFields(ctx, meta)
	logg.Info(ctx, "running goose migrations")

	if err := Run(ctx, sqlDB, "up"); err != nil {
		return fmt.Errorf("running goose up: %w", err)
	}

	logg.Info(ctx, "goose migrations completed")
	return nil
}
