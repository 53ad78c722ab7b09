package vehicles

import (
	"context"

	"github.com/siamfleet/fleet-usage-api/internal/domain"
	"github.com/siamfleet/fleet-usage-api/internal/ports/out/vehiclerepo"
)

type Service struct {
	vehicles vehiclerepo.Repository
}

func NewService(vehiclesRepo vehiclerepo.Repository) *Service {
	return &Service{vehicles: vehiclesRepo}
}

// ListVehicles returns all vehicles ordered by display name.
func (s *Service) ListVehicles(ctx context.Context) ([]domain.Vehicle, error) {
	return s.vehicles.ListByName(ctx)
}
