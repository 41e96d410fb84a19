package pos

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/aufaa4aaaaa/kasir-app/internal/catalog"
	"github.com/aufaa4aaaaa/kasir-app/internal/ledger"
	pkgerrors "github.com/aufaa4aaaaa/kasir-app/pkg/errors"
	"github.com/aufaa4aaaaa/kasir-app/pkg/logger"
	"github.com/aufaa4aaaaa/kasir-app/pkg/metrics"
)

// ErrSnapshotNotFound is returned by a SnapshotStore that holds no data yet.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// SnapshotStore persists engine snapshots.
type SnapshotStore interface {
	Save(ctx context.Context, snapshot Snapshot) error
	Load(ctx context.Context) (*Snapshot, error)
}

type pinger interface {
	Ping(ctx context.Context) error
}

type ServiceParams struct {
	Engine  *Engine
	Store   SnapshotStore
	Logger  *logger.Logger
	Metrics *metrics.POSMetrics
	Clock   func() time.Time
}

// Service fronts the engine for the adapters. Every successful mutation is
// mirrored to the snapshot store; mirror failures are logged and left for the
// periodic flush to retry.
type Service struct {
	engine  *Engine
	store   SnapshotStore
	logg    *logger.Logger
	metrics *metrics.POSMetrics
	now     func() time.Time

	persistMu sync.Mutex
}

func NewService(params ServiceParams) (*Service, error) {
	if params.Engine == nil {
		return nil, errors.New("engine is required")
	}
	if params.Store == nil {
		return nil, errors.New("snapshot store is required")
	}
	if params.Logger == nil {
		return nil, errors.New("logger is required")
	}
	clock := params.Clock
	if clock == nil {
		clock = time.Now
	}
	return &Service{
		engine:  params.Engine,
		store:   params.Store,
		logg:    params.Logger,
		metrics: params.Metrics,
		now:     clock,
	}, nil
}

func (s *Service) Engine() *Engine {
	return s.engine
}

// Now returns the service clock reading.
func (s *Service) Now() time.Time {
	return s.now()
}

// Bootstrap restores the engine from the store, seeding the catalog when the
// store is empty.
func (s *Service) Bootstrap(ctx context.Context) error {
	snapshot, err := s.store.Load(ctx)
	switch {
	case errors.Is(err, ErrSnapshotNotFound):
		s.logg.Info(ctx, "no stored snapshot, seeding default catalog")
		snapshot = nil
	case err != nil:
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load snapshot")
	}
	s.engine.Restore(snapshot)
	if snapshot.IsEmpty() {
		return s.Flush(ctx)
	}
	s.logg.Info(ctx, "snapshot restored")
	return nil
}

// Flush writes the current engine state to the store.
func (s *Service) Flush(ctx context.Context) error {
	s.persistMu.Lock()
	defer s.persistMu.Unlock()

	err := s.store.Save(ctx, s.engine.Snapshot())
	s.metrics.ObserveMirrorSave(err)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save snapshot")
	}
	return nil
}

// Ping checks the store when it supports health checks.
func (s *Service) Ping(ctx context.Context) error {
	p, ok := s.store.(pinger)
	if !ok {
		return nil
	}
	if err := p.Ping(ctx); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "snapshot store unavailable")
	}
	return nil
}

func (s *Service) persist(ctx context.Context) {
	if err := s.Flush(ctx); err != nil {
		s.logg.Error(ctx, "mirror save failed", err)
	}
}

func (s *Service) rejected(ctx context.Context, op string, err error) error {
	code := pkgerrors.CodeInternal
	if typed := pkgerrors.As(err); typed != nil {
		code = typed.Code()
	}
	s.metrics.IncRejection(op, string(code))
	s.logg.Warn(s.logg.WithField(ctx, "operation", op), err.Error())
	return err
}

func (s *Service) AddToCart(ctx context.Context, productID int64) error {
	ctx = s.logg.WithProductID(ctx, productID)
	if err := s.engine.AddToCart(productID); err != nil {
		return s.rejected(ctx, "add_to_cart", err)
	}
	s.persist(ctx)
	return nil
}

func (s *Service) SetQuantity(ctx context.Context, productID int64, quantity int) error {
	ctx = s.logg.WithProductID(ctx, productID)
	if err := s.engine.SetQuantity(productID, quantity); err != nil {
		return s.rejected(ctx, "set_quantity", err)
	}
	s.persist(ctx)
	return nil
}

func (s *Service) ChangeQuantity(ctx context.Context, productID int64, delta int) error {
	ctx = s.logg.WithProductID(ctx, productID)
	if err := s.engine.ChangeQuantity(productID, delta); err != nil {
		return s.rejected(ctx, "change_quantity", err)
	}
	s.persist(ctx)
	return nil
}

func (s *Service) RemoveFromCart(ctx context.Context, productID int64) {
	s.engine.RemoveFromCart(productID)
	s.persist(s.logg.WithProductID(ctx, productID))
}

func (s *Service) ClearCart(ctx context.Context) {
	s.engine.ClearCart()
	s.persist(ctx)
}

func (s *Service) Cart() CartView {
	return s.engine.Cart()
}

// Checkout commits the cart and records sale metrics.
func (s *Service) Checkout(ctx context.Context) (ledger.Transaction, error) {
	tx, err := s.engine.Checkout()
	if err != nil {
		return ledger.Transaction{}, s.rejected(ctx, "checkout", err)
	}
	s.metrics.ObserveCheckout(tx.Total, tx.ItemCount)
	ctx = s.logg.WithFields(ctx, map[string]any{
		"transaction_id": tx.ID,
		"total":          tx.Total,
		"item_count":     tx.ItemCount,
	})
	s.logg.Info(ctx, "checkout committed")
	s.persist(ctx)
	return tx, nil
}

func (s *Service) Products() []ProductView {
	return s.engine.Products()
}

func (s *Service) AddProduct(ctx context.Context, in catalog.ProductInput) (catalog.Product, error) {
	p, err := s.engine.AddProduct(in)
	if err != nil {
		return catalog.Product{}, s.rejected(ctx, "add_product", err)
	}
	ctx = s.logg.WithProductID(ctx, p.ID)
	s.logg.Info(ctx, "product created")
	s.persist(ctx)
	return p, nil
}

func (s *Service) EditProduct(ctx context.Context, id int64, in catalog.ProductInput) (catalog.Product, error) {
	ctx = s.logg.WithProductID(ctx, id)
	p, err := s.engine.EditProduct(id, in)
	if err != nil {
		return catalog.Product{}, s.rejected(ctx, "edit_product", err)
	}
	s.logg.Info(ctx, "product updated")
	s.persist(ctx)
	return p, nil
}

func (s *Service) DeleteProduct(ctx context.Context, id int64) error {
	ctx = s.logg.WithProductID(ctx, id)
	if err := s.engine.DeleteProduct(id); err != nil {
		return s.rejected(ctx, "delete_product", err)
	}
	s.logg.Info(ctx, "product deleted")
	s.persist(ctx)
	return nil
}

// DailySummary totals today's sales.
func (s *Service) DailySummary() ledger.DailySummary {
	return s.engine.DailySummary(s.now())
}

// Today returns the report view of the current local day.
func (s *Service) Today() DayView {
	return s.engine.Day(s.now())
}

// TodayTransactions lists today's sales newest first.
func (s *Service) TodayTransactions() []ledger.Transaction {
	return s.engine.TodayTransactions(s.now())
}

// Reset wipes cart and ledger and reinstalls the seed catalog.
func (s *Service) Reset(ctx context.Context) {
	s.engine.Reset()
	s.logg.Info(ctx, "data reset")
	s.persist(ctx)
}

// SeedSampleTransactions adds demo sales when the ledger is empty.
func (s *Service) SeedSampleTransactions(ctx context.Context) int {
	added := s.engine.SeedSampleTransactions(s.now())
	if added > 0 {
		s.logg.Info(s.logg.WithField(ctx, "count", added), "sample transactions added")
		s.persist(ctx)
	}
	return added
}
