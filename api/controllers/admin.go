package controllers

import (
	"net/http"

	"github.com/aufaa4aaaaa/kasir-app/api/responses"
	pkgerrors "github.com/aufaa4aaaaa/kasir-app/pkg/errors"
	"github.com/aufaa4aaaaa/kasir-app/pkg/logger"
)

// AdminReset clears cart and history and reinstalls the seed catalog.
func AdminReset(svc MaintenanceService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "maintenance service unavailable"))
			return
		}
		svc.Reset(r.Context())
		responses.WriteSuccess(w, map[string]string{"status": "reset"})
	}
}

func AdminSampleTransactions(svc MaintenanceService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "maintenance service unavailable"))
			return
		}
		added := svc.SeedSampleTransactions(r.Context())
		responses.WriteSuccess(w, map[string]int{"added": added})
	}
}
