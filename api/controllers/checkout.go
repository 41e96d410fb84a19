package controllers

import (
	"net/http"

	"github.com/aufaa4aaaaa/kasir-app/api/responses"
	pkgerrors "github.com/aufaa4aaaaa/kasir-app/pkg/errors"
	"github.com/aufaa4aaaaa/kasir-app/pkg/logger"
)

// Checkout commits the whole cart as one transaction.
func Checkout(svc CartService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		tx, err := svc.Checkout(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, tx)
	}
}
