package pos

import (
	"fmt"

	"github.com/aufaa4aaaaa/kasir-app/internal/catalog"
	pkgerrors "github.com/aufaa4aaaaa/kasir-app/pkg/errors"
)

// Sentinel errors for errors.Is checks. Returned errors carry the same code
// with a specific message and details.
var (
	ErrProductUnavailable  = pkgerrors.New(pkgerrors.CodeProductUnavailable, "product unavailable")
	ErrInsufficientStock   = pkgerrors.New(pkgerrors.CodeInsufficientStock, "insufficient stock")
	ErrInvalidProductInput = pkgerrors.New(pkgerrors.CodeInvalidProductInput, "invalid product input")
	ErrEmptyCart           = pkgerrors.New(pkgerrors.CodeEmptyCart, "cart is empty")
)

func productUnavailable(productID int64) error {
	return pkgerrors.New(pkgerrors.CodeProductUnavailable, fmt.Sprintf("product %d is unavailable or out of stock", productID)).
		WithDetails(map[string]any{"product_id": productID})
}

func insufficientStock(p catalog.Product, requested int) error {
	return pkgerrors.New(pkgerrors.CodeInsufficientStock, fmt.Sprintf("insufficient stock for %s", p.Name)).
		WithDetails(map[string]any{
			"product_id":   p.ID,
			"product_name": p.Name,
			"requested":    requested,
			"available":    p.Stock,
		})
}

func emptyCart() error {
	return pkgerrors.New(pkgerrors.CodeEmptyCart, "cart is empty")
}
