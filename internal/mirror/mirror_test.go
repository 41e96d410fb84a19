package mirror

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/aufaa4aaaaa/kasir-app/internal/catalog"
	"github.com/aufaa4aaaaa/kasir-app/internal/ledger"
	"github.com/aufaa4aaaaa/kasir-app/internal/pos"
	"github.com/aufaa4aaaaa/kasir-app/pkg/config"
	"github.com/aufaa4aaaaa/kasir-app/pkg/db"
	"github.com/aufaa4aaaaa/kasir-app/pkg/enums"
	"github.com/aufaa4aaaaa/kasir-app/pkg/logger"
	"github.com/aufaa4aaaaa/kasir-app/pkg/migrate"
	"github.com/aufaa4aaaaa/kasir-app/pkg/redis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func sampleSnapshot() pos.Snapshot {
	ts := time.Date(2024, 6, 3, 7, 15, 0, 0, time.UTC)
	return pos.Snapshot{
		Products: []catalog.Product{
			{ID: 1, Name: "Nasi Gudeg", Price: 15000, Stock: 18, Category: enums.ProductCategoryFood},
			{ID: 2, Name: "Es Teh Manis", Price: 5000, Stock: 30, Category: enums.ProductCategoryDrink},
		},
		Cart: []pos.CartLine{{ProductID: 2, Quantity: 1}},
		Transactions: []ledger.Transaction{{
			ID:        ts.UnixMilli(),
			Timestamp: ts,
			Items:     []ledger.Line{{ProductID: 1, Name: "Nasi Gudeg", UnitPrice: 15000, Quantity: 2, LineTotal: 30000}},
			Subtotal:  30000,
			Tax:       3000,
			Total:     33000,
			ItemCount: 2,
		}},
	}
}

func newSQLiteMirror(t *testing.T) *SQLite {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, migrate.Run(context.Background(), sqlDB, "up"))
	return NewSQLite(db.NewFromGorm(conn))
}

func TestMemoryRoundTrip(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	_, err := m.Load(ctx)
	assert.True(t, IsNotFound(err))

	want := sampleSnapshot()
	require.NoError(t, m.Save(ctx, want))

	got, err := m.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, *got)

	got.Products[0].Stock = 0
	again, err := m.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 18, again.Products[0].Stock)
}

func TestSQLiteRoundTrip(t *testing.T) {
	m := newSQLiteMirror(t)
	ctx := context.Background()

	_, err := m.Load(ctx)
	assert.True(t, IsNotFound(err))

	first := sampleSnapshot()
	require.NoError(t, m.Save(ctx, first))

	second := sampleSnapshot()
	second.Cart = []pos.CartLine{}
	second.Products[1].Stock = 29
	require.NoError(t, m.Save(ctx, second))

	got, err := m.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, second, *got)

	var count int64
	require.NoError(t, m.client.DB().Model(&entry{}).Count(&count).Error)
	assert.Equal(t, int64(3), count, "saves upsert one row per store")
	require.NoError(t, m.Ping(ctx))
}

func TestSQLiteOpenFromConfig(t *testing.T) {
	cfg := &config.Config{
		App: config.AppConfig{Env: config.AppEnvDev},
		Mirror: config.MirrorConfig{
			Driver:       config.MirrorDriverSQLite,
			SQLitePath:   filepath.Join(t.TempDir(), "kasir.db"),
			AutoMigrate:  true,
			MaxOpenConns: 1,
		},
	}
	logg := logger.New(logger.Options{ServiceName: "mirror-test"})

	m, err := Open(context.Background(), cfg, logg)
	require.NoError(t, err)
	defer m.Close()

	require.NoError(t, m.Save(context.Background(), sampleSnapshot()))
	got, err := m.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, got.Products, 2)
}

func TestOpenMemoryAndUnknownDriver(t *testing.T) {
	logg := logger.New(logger.Options{ServiceName: "mirror-test"})

	m, err := Open(context.Background(), &config.Config{Mirror: config.MirrorConfig{Driver: "memory"}}, logg)
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, m)

	_, err = Open(context.Background(), &config.Config{Mirror: config.MirrorConfig{Driver: "csv"}}, logg)
	assert.Error(t, err)
}

type fakeRedis struct {
	data   map[string]string
	getErr error
}

func (f *fakeRedis) Set(_ context.Context, key string, value any, _ time.Duration) error {
	switch v := value.(type) {
	case []byte:
		f.data[key] = string(v)
	default:
		f.data[key] = fmt.Sprint(v)
	}
	return nil
}

func (f *fakeRedis) Get(_ context.Context, key string) (string, error) {
	if f.getErr != nil {
		return "", f.getErr
	}
	v, ok := f.data[key]
	if !ok {
		return "", redis.Nil
	}
	return v, nil
}

func (f *fakeRedis) Ping(context.Context) error   { return nil }
func (f *fakeRedis) MirrorKey(name string) string { return "kasir:mirror:" + name }
func (f *fakeRedis) Close() error                 { return nil }

func TestRedisRoundTrip(t *testing.T) {
	store := &fakeRedis{data: map[string]string{}}
	m := &Redis{client: store}
	ctx := context.Background()

	_, err := m.Load(ctx)
	assert.True(t, IsNotFound(err))

	want := sampleSnapshot()
	require.NoError(t, m.Save(ctx, want))
	assert.Contains(t, store.data, "kasir:mirror:app_data")

	got, err := m.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, *got)

	store.getErr = errors.New("connection reset")
	_, err = m.Load(ctx)
	assert.Error(t, err)
	assert.False(t, IsNotFound(err))
}

func TestRedisCorruptPayload(t *testing.T) {
	store := &fakeRedis{data: map[string]string{"kasir:mirror:app_data": "{"}}
	m := &Redis{client: store}
	_, err := m.Load(context.Background())
	assert.Error(t, err)
}
