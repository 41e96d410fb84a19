package mirror

import (
	"context"
	"errors"
	"fmt"

	"github.com/aufaa4aaaaa/kasir-app/internal/pos"
	"github.com/aufaa4aaaaa/kasir-app/pkg/config"
	"github.com/aufaa4aaaaa/kasir-app/pkg/db"
	"github.com/aufaa4aaaaa/kasir-app/pkg/logger"
	"github.com/aufaa4aaaaa/kasir-app/pkg/migrate"
	"github.com/aufaa4aaaaa/kasir-app/pkg/redis"
)

// ErrSnapshotNotFound is returned by Load when nothing has been saved yet.
var ErrSnapshotNotFound = pos.ErrSnapshotNotFound

// IsNotFound reports whether err means the mirror holds no snapshot.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrSnapshotNotFound)
}

// Mirror persists engine snapshots to durable local storage.
type Mirror interface {
	Save(ctx context.Context, snapshot pos.Snapshot) error
	Load(ctx context.Context) (*pos.Snapshot, error)
	Ping(ctx context.Context) error
	Close() error
}

// Open builds the mirror selected by cfg.Mirror.Driver.
func Open(ctx context.Context, cfg *config.Config, logg *logger.Logger) (Mirror, error) {
	switch cfg.Mirror.DriverName() {
	case config.MirrorDriverSQLite:
		client, err := db.New(ctx, cfg.Mirror, logg)
		if err != nil {
			return nil, err
		}
		if err := migrate.MaybeRun(ctx, cfg, logg, client); err != nil {
			_ = client.Close()
			return nil, err
		}
		return NewSQLite(client), nil
	case config.MirrorDriverRedis:
		client, err := redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			return nil, err
		}
		return NewRedis(client), nil
	case config.MirrorDriverMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown mirror driver %q", cfg.Mirror.Driver)
	}
}
