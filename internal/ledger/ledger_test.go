package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var jakarta = time.FixedZone("WIB", 7*60*60)

func tx(id int64, ts time.Time, total int64, items int) Transaction {
	return Transaction{
		ID:        id,
		Timestamp: ts,
		Items:     []Line{{ProductID: 1, Name: "Nasi Gudeg", UnitPrice: 15000, Quantity: items, LineTotal: 15000 * int64(items)}},
		Total:     total,
		ItemCount: items,
	}
}

func TestLedgerAppendRejectsDuplicates(t *testing.T) {
	l := New()
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, jakarta)

	require.NoError(t, l.Append(tx(1, now, 100, 1)))
	assert.Error(t, l.Append(tx(1, now, 200, 2)))
	assert.Equal(t, 1, l.Len())
}

func TestLedgerAppendStoresCopies(t *testing.T) {
	l := New()
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, jakarta)
	original := tx(1, now, 100, 1)
	require.NoError(t, l.Append(original))

	original.Items[0].Name = "changed"
	all := l.All()
	assert.Equal(t, "Nasi Gudeg", all[0].Items[0].Name)

	all[0].Items[0].Quantity = 50
	assert.Equal(t, 1, l.All()[0].Items[0].Quantity)
}

func TestLedgerNextIDIsMonotonic(t *testing.T) {
	l := New()
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, jakarta)

	first := l.NextID(now)
	assert.Equal(t, now.UnixMilli(), first)
	require.NoError(t, l.Append(tx(first, now, 1, 1)))

	second := l.NextID(now)
	assert.Equal(t, first+1, second)
	require.NoError(t, l.Append(tx(second, now, 1, 1)))

	assert.Equal(t, second+1, l.NextID(now.Add(-time.Hour)))
}

func TestLedgerOnDayUsesLocation(t *testing.T) {
	l := New()
	day := time.Date(2024, 5, 1, 12, 0, 0, 0, jakarta)
	require.NoError(t, l.Append(tx(1, time.Date(2024, 5, 1, 0, 30, 0, 0, jakarta), 100, 1)))
	require.NoError(t, l.Append(tx(2, time.Date(2024, 5, 1, 23, 59, 0, 0, jakarta), 200, 2)))
	require.NoError(t, l.Append(tx(3, time.Date(2024, 4, 30, 23, 59, 0, 0, jakarta), 400, 4)))
	require.NoError(t, l.Append(tx(4, time.Date(2024, 5, 2, 0, 0, 0, 0, jakarta), 800, 8)))

	got := l.OnDay(day, jakarta)
	require.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, int64(2), got[1].ID)

	summary := Summarize(got)
	assert.Equal(t, DailySummary{Count: 2, TotalRevenue: 300, TotalItems: 3}, summary)

	// 2024-04-30 17:30 UTC is already 1 May in WIB
	assert.True(t, SameDay(time.Date(2024, 4, 30, 17, 30, 0, 0, time.UTC), day, jakarta))
	assert.False(t, SameDay(time.Date(2024, 4, 30, 16, 30, 0, 0, time.UTC), day, jakarta))
}

func TestSummarizeEmpty(t *testing.T) {
	assert.Equal(t, DailySummary{}, Summarize(nil))
}

func TestNewestFirst(t *testing.T) {
	base := time.Date(2024, 5, 1, 9, 0, 0, 0, jakarta)
	txs := []Transaction{tx(1, base, 1, 1), tx(2, base.Add(time.Hour), 1, 1), tx(3, base, 1, 1)}

	got := NewestFirst(txs)
	assert.Equal(t, int64(2), got[0].ID)
	assert.Equal(t, int64(3), got[1].ID)
	assert.Equal(t, int64(1), got[2].ID)
}

func TestLedgerReplaceAndClear(t *testing.T) {
	l := New()
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, jakarta)
	l.Replace([]Transaction{tx(1, now, 1, 1), tx(1, now, 2, 2), tx(2, now, 3, 3)})
	assert.Equal(t, 2, l.Len())

	l.Clear()
	assert.Equal(t, 0, l.Len())
	require.NoError(t, l.Append(tx(1, now, 1, 1)))
}
