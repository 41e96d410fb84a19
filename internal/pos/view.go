package pos

import (
	"time"

	"github.com/aufaa4aaaaa/kasir-app/internal/cart"
	"github.com/aufaa4aaaaa/kasir-app/internal/catalog"
	"github.com/aufaa4aaaaa/kasir-app/internal/ledger"
)

// CartLineView is a cart line joined with its catalog product.
type CartLineView struct {
	ProductID int64  `json:"productId"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unitPrice"`
	Quantity  int    `json:"quantity"`
	LineTotal int64  `json:"lineTotal"`
	Stock     int    `json:"stock"`
}

// CartView is the priced cart as the till displays it.
type CartView struct {
	Lines     []CartLineView `json:"lines"`
	Subtotal  int64          `json:"subtotal"`
	Tax       int64          `json:"tax"`
	Total     int64          `json:"total"`
	ItemCount int            `json:"itemCount"`
}

// ProductView decorates a product with its low-stock flag.
type ProductView struct {
	catalog.Product
	LowStock bool `json:"lowStock"`
}

// CartLine is the persisted form of a cart entry.
type CartLine = cart.Line

// DayView is a consistent read of one local day: its sales oldest first,
// their totals, and the catalog at the time of the read.
type DayView struct {
	Date         time.Time            `json:"date"`
	Summary      ledger.DailySummary  `json:"summary"`
	Transactions []ledger.Transaction `json:"transactions"`
	Products     []ProductView        `json:"products"`
}

// Snapshot holds value copies of the three stores.
type Snapshot struct {
	Products     []catalog.Product    `json:"products"`
	Cart         []CartLine           `json:"cart"`
	Transactions []ledger.Transaction `json:"transactions"`
}

// IsEmpty reports whether the snapshot carries no data at all.
func (s *Snapshot) IsEmpty() bool {
	return s == nil || (len(s.Products) == 0 && len(s.Cart) == 0 && len(s.Transactions) == 0)
}
