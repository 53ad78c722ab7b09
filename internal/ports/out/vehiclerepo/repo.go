package vehiclerepo

import (
	"context"

	"github.com/siamfleet/fleet-usage-api/internal/domain"
)

// Repository provides access to persisted vehicles.
type Repository interface {
	Create(ctx context.Context, v domain.Vehicle) error

	GetByID(ctx context.Context, id domain.VehicleID) (domain.Vehicle, error)

	// ListByName returns all vehicles ordered by display name ascending
	// (license plate as tie-breaker) to keep listings deterministic.
	ListByName(ctx context.Context) ([]domain.Vehicle, error)

	Count(ctx context.Context) (int, error)
}
