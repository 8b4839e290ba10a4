package middleware

import "context"

type contextKey string

const ctxAdminID contextKey = "admin_id"

// AdminIDFromContext returns the authenticated admin id, or "" when the
// request did not pass the admin guard.
func AdminIDFromContext(ctx context.Context) string {
	if value, ok := ctx.Value(ctxAdminID).(string); ok {
		return value
	}
	return ""
}
