package pos

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aufaa4aaaaa/kasir-app/internal/catalog"
	pkgerrors "github.com/aufaa4aaaaa/kasir-app/pkg/errors"
	"github.com/aufaa4aaaaa/kasir-app/pkg/logger"
	"github.com/aufaa4aaaaa/kasir-app/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	saved   []Snapshot
	loadFn  func(ctx context.Context) (*Snapshot, error)
	saveErr error
	pingErr error
}

func (f *fakeStore) Save(ctx context.Context, snapshot Snapshot) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, snapshot)
	return nil
}

func (f *fakeStore) Load(ctx context.Context) (*Snapshot, error) {
	if f.loadFn != nil {
		return f.loadFn(ctx)
	}
	return nil, ErrSnapshotNotFound
}

func (f *fakeStore) Ping(ctx context.Context) error {
	return f.pingErr
}

func (f *fakeStore) last() Snapshot {
	return f.saved[len(f.saved)-1]
}

func newTestService(t *testing.T, store *fakeStore) (*Service, *bytes.Buffer) {
	t.Helper()
	buf := &bytes.Buffer{}
	log := logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: buf})
	now := time.Date(2024, 6, 3, 14, 15, 0, 0, wib)
	engine := NewEngine(Options{
		TaxRate:  decimal.RequireFromString("0.10"),
		Location: wib,
		Now:      func() time.Time { return now },
	})
	svc, err := NewService(ServiceParams{
		Engine:  engine,
		Store:   store,
		Logger:  log,
		Metrics: metrics.NewPOSMetrics(prometheus.NewRegistry()),
		Clock:   func() time.Time { return now },
	})
	require.NoError(t, err)
	return svc, buf
}

func TestNewServiceRequiresDependencies(t *testing.T) {
	_, err := NewService(ServiceParams{})
	assert.Error(t, err)

	_, err = NewService(ServiceParams{Engine: NewEngine(Options{})})
	assert.Error(t, err)

	_, err = NewService(ServiceParams{Engine: NewEngine(Options{}), Store: &fakeStore{}})
	assert.Error(t, err)
}

func TestServiceBootstrapSeedsWhenStoreEmpty(t *testing.T) {
	store := &fakeStore{}
	svc, _ := newTestService(t, store)

	require.NoError(t, svc.Bootstrap(context.Background()))
	require.Len(t, store.saved, 1)
	assert.Len(t, store.last().Products, 8)
}

func TestServiceBootstrapRestoresSnapshot(t *testing.T) {
	stored := &Snapshot{
		Products: []catalog.Product{productA()},
		Cart:     []CartLine{{ProductID: 1, Quantity: 2}},
	}
	store := &fakeStore{loadFn: func(context.Context) (*Snapshot, error) { return stored, nil }}
	svc, _ := newTestService(t, store)

	require.NoError(t, svc.Bootstrap(context.Background()))
	assert.Empty(t, store.saved)
	assert.Equal(t, 2, svc.Cart().ItemCount)
}

func TestServiceBootstrapLoadFailure(t *testing.T) {
	store := &fakeStore{loadFn: func(context.Context) (*Snapshot, error) { return nil, errors.New("io") }}
	svc, _ := newTestService(t, store)

	err := svc.Bootstrap(context.Background())
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeDependency))
}

func TestServiceMirrorsEveryMutation(t *testing.T) {
	store := &fakeStore{}
	svc, _ := newTestService(t, store)
	ctx := context.Background()

	require.NoError(t, svc.AddToCart(ctx, 1))
	require.NoError(t, svc.SetQuantity(ctx, 1, 3))
	require.NoError(t, svc.ChangeQuantity(ctx, 1, -1))
	tx, err := svc.Checkout(ctx)
	require.NoError(t, err)

	require.Len(t, store.saved, 4)
	last := store.last()
	require.Len(t, last.Transactions, 1)
	assert.Equal(t, tx.ID, last.Transactions[0].ID)
	assert.Empty(t, last.Cart)
	assert.Equal(t, 18, last.Products[0].Stock)
}

func TestServiceRejectionDoesNotPersist(t *testing.T) {
	store := &fakeStore{}
	svc, buf := newTestService(t, store)

	err := svc.AddToCart(context.Background(), 999)
	assert.True(t, errors.Is(err, ErrProductUnavailable))
	assert.Empty(t, store.saved)
	assert.Contains(t, buf.String(), `"operation":"add_to_cart"`)
	assert.Contains(t, buf.String(), `"product_id":999`)

	_, err = svc.Checkout(context.Background())
	assert.True(t, errors.Is(err, ErrEmptyCart))
	assert.Empty(t, store.saved)
}

func TestServiceSaveFailureKeepsState(t *testing.T) {
	store := &fakeStore{saveErr: errors.New("disk full")}
	svc, buf := newTestService(t, store)

	require.NoError(t, svc.AddToCart(context.Background(), 1))
	assert.Equal(t, 1, svc.Cart().ItemCount)
	assert.Contains(t, buf.String(), "mirror save failed")

	err := svc.Flush(context.Background())
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeDependency))
}

func TestServiceAdminOperations(t *testing.T) {
	store := &fakeStore{}
	svc, _ := newTestService(t, store)
	ctx := context.Background()

	p, err := svc.AddProduct(ctx, catalog.ProductInput{Name: "Bakso", Price: 12000, Stock: 3, Category: "makanan"})
	require.NoError(t, err)
	assert.Equal(t, int64(9), p.ID)

	_, err = svc.EditProduct(ctx, p.ID, catalog.ProductInput{Name: "Bakso Urat", Price: 14000, Stock: 3, Category: "makanan"})
	require.NoError(t, err)

	_, err = svc.EditProduct(ctx, p.ID, catalog.ProductInput{Name: "", Category: "makanan"})
	assert.True(t, errors.Is(err, ErrInvalidProductInput))

	require.NoError(t, svc.DeleteProduct(ctx, p.ID))
	assert.True(t, errors.Is(svc.DeleteProduct(ctx, p.ID), ErrProductUnavailable))
	assert.Len(t, store.saved, 3)
}

func TestServiceSamplesAndReset(t *testing.T) {
	store := &fakeStore{}
	svc, _ := newTestService(t, store)
	ctx := context.Background()

	assert.Equal(t, 2, svc.SeedSampleTransactions(ctx))
	assert.Equal(t, 0, svc.SeedSampleTransactions(ctx))
	assert.Len(t, store.saved, 1)

	summary := svc.DailySummary()
	assert.Equal(t, 2, summary.Count)
	assert.Equal(t, int64(71500), summary.TotalRevenue)
	assert.Equal(t, 6, summary.TotalItems)
	assert.Len(t, svc.TodayTransactions(), 2)

	svc.Reset(ctx)
	assert.Equal(t, 0, svc.DailySummary().Count)
	assert.Empty(t, store.last().Transactions)
}

func TestServicePing(t *testing.T) {
	store := &fakeStore{}
	svc, _ := newTestService(t, store)
	require.NoError(t, svc.Ping(context.Background()))

	store.pingErr = errors.New("down")
	assert.True(t, pkgerrors.HasCode(svc.Ping(context.Background()), pkgerrors.CodeDependency))
}
