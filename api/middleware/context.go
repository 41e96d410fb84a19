package middleware

import (
	"context"

	"github.com/aufaa4aaaaa/kasir-app/pkg/enums"
)

type contextKey string

const ctxRole contextKey = "actor_role"

// RoleFromContext returns the counter role attached by the Role middleware.
func RoleFromContext(ctx context.Context) enums.Role {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxRole).(enums.Role); ok {
		return v
	}
	return ""
}

func WithRole(ctx context.Context, role enums.Role) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxRole, role)
}
