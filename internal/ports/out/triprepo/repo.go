package triprepo

import (
	"context"
	"time"

	"github.com/siamfleet/fleet-usage-api/internal/domain"
)

// Repository provides access to persisted trips. Trips are insert-only.
//
// Read methods return domain.TripRecord, the read model joined with vehicle
// and driver display fields.
type Repository interface {
	Create(ctx context.Context, t domain.Trip) error

	// GetRecord returns one trip enriched with display fields.
	GetRecord(ctx context.Context, id domain.TripID) (domain.TripRecord, error)

	// ListRecent returns up to limit trips ordered by creation time
	// descending. Callers are responsible for clamping limit.
	ListRecent(ctx context.Context, limit int) ([]domain.TripRecord, error)

	// ListStartedBetween returns trips with from <= start < to, ordered by
	// start time ascending.
	ListStartedBetween(ctx context.Context, from, to time.Time) ([]domain.TripRecord, error)
}
