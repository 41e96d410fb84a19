package ledger

import "time"

// Line is a value snapshot of a product at the moment of sale.
type Line struct {
	ProductID int64  `json:"productId"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unitPrice"`
	Quantity  int    `json:"quantity"`
	LineTotal int64  `json:"lineTotal"`
}

// Transaction is an immutable record of a completed checkout.
type Transaction struct {
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Items     []Line    `json:"items"`
	Subtotal  int64     `json:"subtotal"`
	Tax       int64     `json:"tax"`
	Total     int64     `json:"total"`
	ItemCount int       `json:"itemCount"`
}

func (t Transaction) clone() Transaction {
	out := t
	out.Items = make([]Line, len(t.Items))
	copy(out.Items, t.Items)
	return out
}

// DailySummary aggregates the transactions of one local calendar day.
type DailySummary struct {
	Count        int   `json:"count"`
	TotalRevenue int64 `json:"totalRevenue"`
	TotalItems   int   `json:"totalItems"`
}

// Summarize totals the provided transactions.
func Summarize(txs []Transaction) DailySummary {
	var summary DailySummary
	for _, tx := range txs {
		summary.Count++
		summary.TotalRevenue += tx.Total
		summary.TotalItems += tx.ItemCount
	}
	return summary
}

// SameDay reports whether a and b fall on the same calendar day in loc.
func SameDay(a, b time.Time, loc *time.Location) bool {
	if loc == nil {
		loc = time.Local
	}
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}
