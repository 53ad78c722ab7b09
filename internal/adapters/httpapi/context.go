package httpapi

import (
	"context"

	"github.com/siamfleet/fleet-usage-api/internal/domain"
)

type contextKey string

const userIDKey contextKey = "userID"

// WithUserID binds the authenticated user id to the request context.
func WithUserID(ctx context.Context, id domain.UserID) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

// UserIDFromContext returns the authenticated user id, if any.
func UserIDFromContext(ctx context.Context) (domain.UserID, bool) {
	id, ok := ctx.Value(userIDKey).(domain.UserID)
	return id, ok
}
