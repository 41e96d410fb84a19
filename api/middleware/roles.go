package middleware

import (
	"net/http"
	"strings"

	"github.com/aufaa4aaaaa/kasir-app/api/responses"
	"github.com/aufaa4aaaaa/kasir-app/pkg/enums"
	pkgerrors "github.com/aufaa4aaaaa/kasir-app/pkg/errors"
	"github.com/aufaa4aaaaa/kasir-app/pkg/logger"
)

// RoleHeader selects the counter screen a request acts on behalf of.
const RoleHeader = "X-Kasir-Role"

// Role resolves the caller role from RoleHeader. Requests without the header
// act as the cashier; an unknown value is rejected.
func Role(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := enums.RoleCashier
			if raw := strings.TrimSpace(r.Header.Get(RoleHeader)); raw != "" {
				parsed, err := enums.ParseRole(raw)
				if err != nil {
					responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid role header"))
					return
				}
				role = parsed
			}

			ctx := WithRole(r.Context(), role)
			if logg != nil {
				ctx = logg.WithRole(ctx, role.String())
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func RequireRole(role enums.Role, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if RoleFromContext(r.Context()) != role {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "role required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
