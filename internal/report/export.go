package report

import (
	"bufio"
	"fmt"
	"io"

	"github.com/aufaa4aaaaa/kasir-app/internal/pos"
	"github.com/shopspring/decimal"
)

const rule = "====================================="

// Export writes the plain-text daily report for day.
func Export(w io.Writer, f *Formatter, day pos.DayView, taxRate decimal.Decimal) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "LAPORAN PENJUALAN HARIAN\n")
	fmt.Fprintf(bw, "Tanggal: %s\n", f.Date(day.Date))
	fmt.Fprintf(bw, "%s\n\n", rule)

	fmt.Fprintf(bw, "RINGKASAN:\n")
	fmt.Fprintf(bw, "Total Transaksi: %d\n", day.Summary.Count)
	fmt.Fprintf(bw, "Total Pendapatan: %s\n", f.Currency(day.Summary.TotalRevenue))
	fmt.Fprintf(bw, "Total Item Terjual: %d item\n\n", day.Summary.TotalItems)

	fmt.Fprintf(bw, "DETAIL TRANSAKSI:\n")
	fmt.Fprintf(bw, "%s\n", rule)
	taxLabel := taxRate.Mul(decimal.NewFromInt(100)).String()
	for i, tx := range day.Transactions {
		fmt.Fprintf(bw, "%d. Transaksi #%d\n", i+1, tx.ID)
		fmt.Fprintf(bw, "   Waktu: %s\n", f.DateTime(tx.Timestamp))
		fmt.Fprintf(bw, "   Items:\n")
		for _, line := range tx.Items {
			fmt.Fprintf(bw, "   - %s: %dx %s = %s\n", line.Name, line.Quantity, f.Currency(line.UnitPrice), f.Currency(line.LineTotal))
		}
		fmt.Fprintf(bw, "   Subtotal: %s\n", f.Currency(tx.Subtotal))
		fmt.Fprintf(bw, "   Pajak (%s%%): %s\n", taxLabel, f.Currency(tx.Tax))
		fmt.Fprintf(bw, "   Total: %s\n\n", f.Currency(tx.Total))
	}

	fmt.Fprintf(bw, "STOK SAAT INI:\n")
	fmt.Fprintf(bw, "%s\n", rule)
	for _, p := range day.Products {
		status := ""
		if p.LowStock {
			status = " (STOK MENIPIS!)"
		}
		fmt.Fprintf(bw, "- %s: %d unit%s\n", p.Name, p.Stock, status)
	}

	return bw.Flush()
}
