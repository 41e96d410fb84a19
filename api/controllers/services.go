package controllers

import (
	"context"

	"github.com/aufaa4aaaaa/kasir-app/internal/catalog"
	"github.com/aufaa4aaaaa/kasir-app/internal/ledger"
	"github.com/aufaa4aaaaa/kasir-app/internal/pos"
)

// CartService is the cashier-facing slice of the POS service.
type CartService interface {
	Cart() pos.CartView
	AddToCart(ctx context.Context, productID int64) error
	SetQuantity(ctx context.Context, productID int64, quantity int) error
	ChangeQuantity(ctx context.Context, productID int64, delta int) error
	RemoveFromCart(ctx context.Context, productID int64)
	ClearCart(ctx context.Context)
	Checkout(ctx context.Context) (ledger.Transaction, error)
}

type CatalogService interface {
	Products() []pos.ProductView
	AddProduct(ctx context.Context, in catalog.ProductInput) (catalog.Product, error)
	EditProduct(ctx context.Context, id int64, in catalog.ProductInput) (catalog.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
}

type ReportService interface {
	DailySummary() ledger.DailySummary
	Today() pos.DayView
	TodayTransactions() []ledger.Transaction
}

type MaintenanceService interface {
	Reset(ctx context.Context)
	SeedSampleTransactions(ctx context.Context) int
}

// Pinger reports whether the persistence mirror is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}
