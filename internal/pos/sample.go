package pos

import (
	"time"

	"github.com/aufaa4aaaaa/kasir-app/internal/ledger"
)

type sampleLine struct {
	productID int64
	quantity  int
}

var sampleSales = []struct {
	ago   time.Duration
	lines []sampleLine
}{
	{ago: time.Hour, lines: []sampleLine{{productID: 1, quantity: 2}, {productID: 2, quantity: 2}}},
	{ago: 30 * time.Minute, lines: []sampleLine{{productID: 4, quantity: 1}, {productID: 5, quantity: 1}}},
}

// SeedSampleTransactions records demo sales relative to now when the ledger is
// empty. Stock is not touched. Lines whose product is missing from the catalog
// are skipped. It returns the number of transactions added.
func (e *Engine) SeedSampleTransactions(now time.Time) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.ledger.Len() > 0 {
		return 0
	}

	added := 0
	for _, sale := range sampleSales {
		ts := now.Add(-sale.ago).Truncate(time.Millisecond)
		tx := ledger.Transaction{ID: e.ledger.NextID(ts), Timestamp: ts}
		for _, sl := range sale.lines {
			p, ok := e.catalog.Get(sl.productID)
			if !ok {
				continue
			}
			lineTotal := p.Price * int64(sl.quantity)
			tx.Items = append(tx.Items, ledger.Line{
				ProductID: p.ID,
				Name:      p.Name,
				UnitPrice: p.Price,
				Quantity:  sl.quantity,
				LineTotal: lineTotal,
			})
			tx.Subtotal += lineTotal
			tx.ItemCount += sl.quantity
		}
		if len(tx.Items) == 0 {
			continue
		}
		tx.Tax = e.tax(tx.Subtotal)
		tx.Total = tx.Subtotal + tx.Tax
		if err := e.ledger.Append(tx); err != nil {
			continue
		}
		added++
	}
	return added
}
