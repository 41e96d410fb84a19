package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/aufaa4aaaaa/kasir-app/api/responses"
	"github.com/aufaa4aaaaa/kasir-app/pkg/logger"
)

const (
	requestIDHeader    = responses.RequestIDHeader
	maxRequestIDLength = 128
)

func RequestID(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := strings.TrimSpace(r.Header.Get(requestIDHeader))
			if reqID == "" || len(reqID) > maxRequestIDLength {
				reqID = uuid.NewString()
			}

			w.Header().Set(requestIDHeader, reqID)

			ctx := r.Context()
			if logg != nil {
				ctx = logg.WithRequestID(ctx, reqID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
