package controllers

import (
	"net/http"

	"github.com/aufaa4aaaaa/kasir-app/api/responses"
	"github.com/aufaa4aaaaa/kasir-app/api/validators"
	"github.com/aufaa4aaaaa/kasir-app/internal/catalog"
	pkgerrors "github.com/aufaa4aaaaa/kasir-app/pkg/errors"
	"github.com/aufaa4aaaaa/kasir-app/pkg/logger"
)

// productRequest mirrors the admin form. Field rules beyond presence are
// enforced by the engine so the API and CLI report identical details.
type productRequest struct {
	Name     string `json:"name"`
	Price    *int64 `json:"price" validate:"required"`
	Stock    *int   `json:"stock" validate:"required"`
	Category string `json:"category"`
}

func (p productRequest) toInput() catalog.ProductInput {
	return catalog.ProductInput{
		Name:     p.Name,
		Price:    *p.Price,
		Stock:    *p.Stock,
		Category: p.Category,
	}
}

func ProductList(svc CatalogService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}
		responses.WriteSuccess(w, svc.Products())
	}
}

// AdminCreateProduct appends a product with the next free id.
func AdminCreateProduct(svc CatalogService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		var payload productRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.AddProduct(r.Context(), payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

func AdminUpdateProduct(svc CatalogService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		productID, err := validators.ParsePathID(r, productIDParam)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload productRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.EditProduct(r.Context(), productID, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

func AdminDeleteProduct(svc CatalogService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		productID, err := validators.ParsePathID(r, productIDParam)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteProduct(r.Context(), productID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
