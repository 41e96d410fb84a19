package enums

import (
	"fmt"
	"strings"
)

// ProductCategory represents the shelf categories the counter sells from.
type ProductCategory string

const (
	ProductCategoryFood     ProductCategory = "makanan"
	ProductCategoryDrink    ProductCategory = "minuman"
	ProductCategorySnack    ProductCategory = "snack"
	ProductCategorySupplies ProductCategory = "perlengkapan"
)

var validProductCategories = []ProductCategory{
	ProductCategoryFood,
	ProductCategoryDrink,
	ProductCategorySnack,
	ProductCategorySupplies,
}

// String implements fmt.Stringer.
func (c ProductCategory) String() string {
	return string(c)
}

// IsValid reports whether the value is a known ProductCategory.
func (c ProductCategory) IsValid() bool {
	for _, candidate := range validProductCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ProductCategories returns the recognized categories in display order.
func ProductCategories() []ProductCategory {
	out := make([]ProductCategory, len(validProductCategories))
	copy(out, validProductCategories)
	return out
}

// ParseProductCategory converts raw input into a ProductCategory.
func ParseProductCategory(value string) (ProductCategory, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for _, candidate := range validProductCategories {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product category %q", value)
}
