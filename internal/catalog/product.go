package catalog

import "github.com/aufaa4aaaaa/kasir-app/pkg/enums"

// Product is a sellable catalog entry. Price is in minor currency units.
type Product struct {
	ID       int64                 `json:"id" yaml:"id"`
	Name     string                `json:"name" yaml:"name"`
	Price    int64                 `json:"price" yaml:"price"`
	Stock    int                   `json:"stock" yaml:"stock"`
	Category enums.ProductCategory `json:"category" yaml:"category"`
}

// IsLowStock reports whether the remaining stock is under the threshold.
func (p Product) IsLowStock(threshold int) bool {
	return p.Stock < threshold
}

// Available reports whether at least one unit can be sold.
func (p Product) Available() bool {
	return p.Stock > 0
}
