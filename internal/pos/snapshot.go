package pos

import (
	"github.com/aufaa4aaaaa/kasir-app/internal/catalog"
)

// Snapshot returns value copies of the catalog, cart and ledger.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	return Snapshot{
		Products:     e.catalog.List(),
		Cart:         e.cart.Lines(),
		Transactions: e.ledger.All(),
	}
}

// Restore replaces the engine state with the snapshot. A nil snapshot or one
// without valid products installs the seed catalog. Products with a
// non-positive id or fields that fail product validation are skipped.
// Cart lines that point at unknown products or hold a non-positive quantity
// are dropped, and quantities above the product's stock are clamped to it.
func (e *Engine) Restore(s *Snapshot) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if s == nil {
		s = &Snapshot{}
	}

	products := validProducts(s.Products)
	if len(products) == 0 {
		products = e.seed
	}
	e.catalog.Replace(products)

	lines := make([]CartLine, 0, len(s.Cart))
	for _, line := range s.Cart {
		if line.Quantity <= 0 {
			continue
		}
		p, ok := e.catalog.Get(line.ProductID)
		if !ok || !p.Available() {
			continue
		}
		line.Quantity = min(line.Quantity, p.Stock)
		lines = append(lines, line)
	}
	e.cart.Replace(lines)
	e.ledger.Replace(s.Transactions)
}

// validProducts keeps the first valid product for each id.
func validProducts(products []catalog.Product) []catalog.Product {
	out := make([]catalog.Product, 0, len(products))
	for _, p := range products {
		if p.ID <= 0 || p.Input().Validate() != nil {
			continue
		}
		out = append(out, p)
	}
	return dedupeProducts(out)
}

// dedupeProducts keeps the first product for each id.
func dedupeProducts(products []catalog.Product) []catalog.Product {
	seen := make(map[int64]struct{}, len(products))
	out := make([]catalog.Product, 0, len(products))
	for _, p := range products {
		if _, dup := seen[p.ID]; dup {
			continue
		}
		seen[p.ID] = struct{}{}
		out = append(out, p)
	}
	return out
}
