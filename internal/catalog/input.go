package catalog

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/aufaa4aaaaa/kasir-app/pkg/enums"
	pkgerrors "github.com/aufaa4aaaaa/kasir-app/pkg/errors"
	"github.com/go-playground/validator/v10"
)

// Upper bounds for admin input. They keep price times quantity and cart
// totals well inside the int64 range.
const (
	MaxPrice int64 = 1_000_000_000
	MaxStock int   = 1_000_000
)

// ProductInput carries the admin form values for create and update.
type ProductInput struct {
	Name     string `json:"name" validate:"required,max=120"`
	Price    int64  `json:"price" validate:"gte=0,lte=1000000000"`
	Stock    int    `json:"stock" validate:"gte=0,lte=1000000"`
	Category string `json:"category" validate:"required,product_category"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	_ = v.RegisterValidation("product_category", func(fl validator.FieldLevel) bool {
		_, err := enums.ParseProductCategory(fl.Field().String())
		return err == nil
	})
	return v
}

// Normalize trims the free-text fields.
func (in ProductInput) Normalize() ProductInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Category = strings.ToLower(strings.TrimSpace(in.Category))
	return in
}

// Validate checks the input and returns an INVALID_PRODUCT_INPUT error with per-field details.
func (in ProductInput) Validate() error {
	normalized := in.Normalize()
	if err := validate.Struct(normalized); err != nil {
		errs, ok := err.(validator.ValidationErrors)
		if !ok {
			return pkgerrors.Wrap(pkgerrors.CodeInvalidProductInput, err, "invalid product input")
		}
		details := map[string]string{}
		for _, fieldErr := range errs {
			details[fieldErr.Field()] = validationMessage(fieldErr)
		}
		return pkgerrors.New(pkgerrors.CodeInvalidProductInput, "please complete every product field").WithDetails(details)
	}
	return nil
}

// Input returns the editable fields of p.
func (p Product) Input() ProductInput {
	return ProductInput{
		Name:     p.Name,
		Price:    p.Price,
		Stock:    p.Stock,
		Category: string(p.Category),
	}
}

func (in ProductInput) toProduct(id int64) Product {
	normalized := in.Normalize()
	return Product{
		ID:       id,
		Name:     normalized.Name,
		Price:    normalized.Price,
		Stock:    normalized.Stock,
		Category: enums.ProductCategory(normalized.Category),
	}
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "product_category":
		return "must be a recognized category"
	}
	return "is invalid"
}
