package mirror

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aufaa4aaaaa/kasir-app/internal/pos"
	"github.com/aufaa4aaaaa/kasir-app/pkg/redis"
)

const redisSnapshotKey = "app_data"

type redisStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Ping(ctx context.Context) error
	MirrorKey(name string) string
	Close() error
}

// Redis stores the whole snapshot as one JSON document under kasir:mirror:app_data.
type Redis struct {
	client redisStore
}

func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

func (r *Redis) Save(ctx context.Context, snapshot pos.Snapshot) error {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := r.client.Set(ctx, r.client.MirrorKey(redisSnapshotKey), payload, 0); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

func (r *Redis) Load(ctx context.Context) (*pos.Snapshot, error) {
	payload, err := r.client.Get(ctx, r.client.MirrorKey(redisSnapshotKey))
	if errors.Is(err, redis.Nil) {
		return nil, ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	var snapshot pos.Snapshot
	if err := json.Unmarshal([]byte(payload), &snapshot); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &snapshot, nil
}

func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx)
}

func (r *Redis) Close() error {
	return r.client.Close()
}
