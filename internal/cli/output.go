package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/aufaa4aaaaa/kasir-app/internal/pos"
	"github.com/aufaa4aaaaa/kasir-app/internal/report"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeProducts(w io.Writer, f *report.Formatter, products []pos.ProductView) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAMA\tKATEGORI\tHARGA\tSTOK\t")
	for _, p := range products {
		marker := ""
		if p.LowStock {
			marker = "STOK MENIPIS"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%s\n", p.ID, p.Name, p.Category, f.Currency(p.Price), p.Stock, marker)
	}
	return tw.Flush()
}
