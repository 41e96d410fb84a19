package controllers

import (
	"bytes"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/aufaa4aaaaa/kasir-app/api/responses"
	"github.com/aufaa4aaaaa/kasir-app/internal/ledger"
	"github.com/aufaa4aaaaa/kasir-app/internal/report"
	pkgerrors "github.com/aufaa4aaaaa/kasir-app/pkg/errors"
	"github.com/aufaa4aaaaa/kasir-app/pkg/logger"
)

type todayTransactionsResponse struct {
	Summary      ledger.DailySummary  `json:"summary"`
	Transactions []ledger.Transaction `json:"transactions"`
}

// TodayTransactions feeds the history panel: today's sales newest first.
func TodayTransactions(svc ReportService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "report service unavailable"))
			return
		}
		responses.WriteSuccess(w, todayTransactionsResponse{
			Summary:      svc.DailySummary(),
			Transactions: svc.TodayTransactions(),
		})
	}
}

func AdminDailyReport(svc ReportService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "report service unavailable"))
			return
		}
		responses.WriteSuccess(w, svc.Today())
	}
}

// AdminExportDailyReport streams the plain-text report as a download.
func AdminExportDailyReport(svc ReportService, formatter *report.Formatter, taxRate decimal.Decimal, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil || formatter == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "report service unavailable"))
			return
		}

		day := svc.Today()
		var buf bytes.Buffer
		if err := report.Export(&buf, formatter, day, taxRate); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "render report"))
			return
		}
		responses.WriteText(w, formatter.FileName(day.Date), buf.Bytes())
	}
}
