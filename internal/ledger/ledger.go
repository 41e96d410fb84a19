package ledger

import (
	"fmt"
	"sort"
	"time"
)

// Ledger is the append-only transaction log. It is not safe for concurrent use.
type Ledger struct {
	txs []Transaction
	ids map[int64]struct{}
}

func New() *Ledger {
	return &Ledger{ids: make(map[int64]struct{})}
}

// NextID returns a time-based id that is strictly greater than every id in the ledger.
func (l *Ledger) NextID(now time.Time) int64 {
	id := now.UnixMilli()
	if last := l.maxID(); id <= last {
		id = last + 1
	}
	return id
}

func (l *Ledger) maxID() int64 {
	var highest int64
	for _, tx := range l.txs {
		if tx.ID > highest {
			highest = tx.ID
		}
	}
	return highest
}

// Append records a copy of tx. Duplicate ids are rejected.
func (l *Ledger) Append(tx Transaction) error {
	if _, exists := l.ids[tx.ID]; exists {
		return fmt.Errorf("transaction %d already recorded", tx.ID)
	}
	l.txs = append(l.txs, tx.clone())
	l.ids[tx.ID] = struct{}{}
	return nil
}

// All returns copies of every transaction in append order.
func (l *Ledger) All() []Transaction {
	out := make([]Transaction, len(l.txs))
	for i, tx := range l.txs {
		out[i] = tx.clone()
	}
	return out
}

// OnDay returns the transactions that fall on the same local day as day, oldest first.
func (l *Ledger) OnDay(day time.Time, loc *time.Location) []Transaction {
	var out []Transaction
	for _, tx := range l.txs {
		if SameDay(tx.Timestamp, day, loc) {
			out = append(out, tx.clone())
		}
	}
	return out
}

// NewestFirst orders txs by timestamp descending, breaking ties on id.
func NewestFirst(txs []Transaction) []Transaction {
	sort.SliceStable(txs, func(i, j int) bool {
		if txs[i].Timestamp.Equal(txs[j].Timestamp) {
			return txs[i].ID > txs[j].ID
		}
		return txs[i].Timestamp.After(txs[j].Timestamp)
	})
	return txs
}

func (l *Ledger) Len() int {
	return len(l.txs)
}

func (l *Ledger) Clear() {
	l.txs = nil
	l.ids = make(map[int64]struct{})
}

// Replace resets the ledger to copies of txs. Later duplicates of an id are dropped.
func (l *Ledger) Replace(txs []Transaction) {
	l.Clear()
	for _, tx := range txs {
		_ = l.Append(tx)
	}
}
