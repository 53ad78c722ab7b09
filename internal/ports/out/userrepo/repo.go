package userrepo

import (
	"context"

	"github.com/siamfleet/fleet-usage-api/internal/domain"
)

// Repository provides access to persisted users. Users are created by
// first-run seeding only and are immutable afterwards.
type Repository interface {
	Create(ctx context.Context, u domain.User) error

	GetByID(ctx context.Context, id domain.UserID) (domain.User, error)

	// GetByLogin resolves a user by handle, matching either the username or
	// the employee id column.
	GetByLogin(ctx context.Context, usernameOrEmployeeID string) (domain.User, error)

	Count(ctx context.Context) (int, error)
}
