package trips

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/siamfleet/fleet-usage-api/internal/domain"
	clockport "github.com/siamfleet/fleet-usage-api/internal/ports/out/clock"
	"github.com/siamfleet/fleet-usage-api/internal/ports/out/triprepo"
	"github.com/siamfleet/fleet-usage-api/internal/ports/out/vehiclerepo"
)

const (
	// DefaultRecentLimit is used when the caller omits the limit or supplies
	// a non-positive one.
	DefaultRecentLimit = 20

	// MaxRecentLimit caps the recent-trips page size.
	MaxRecentLimit = 100
)

type Service struct {
	trips    triprepo.Repository
	vehicles vehiclerepo.Repository
	clk      clockport.Clock

	newTripID func() domain.TripID
}

func NewService(tripsRepo triprepo.Repository, vehiclesRepo vehiclerepo.Repository, clk clockport.Clock) *Service {
	return &Service{
		trips:    tripsRepo,
		vehicles: vehiclesRepo,
		clk:      clk,
		newTripID: func() domain.TripID {
			return domain.TripID(uuid.NewString())
		},
	}
}

// SetNewTripIDForTest overrides trip ID generation for deterministic tests.
// It should not be used in production code.
func (s *Service) SetNewTripIDForTest(fn func() domain.TripID) {
	if fn != nil {
		s.newTripID = fn
	}
}

// RecordTrip validates and persists a trip owned by the authenticated driver,
// then returns the stored record enriched with vehicle and driver display
// fields. Nothing is inserted when validation fails.
func (s *Service) RecordTrip(ctx context.Context, driver domain.UserID, in RecordTripInput) (domain.TripRecord, error) {
	if err := validateRecordTrip(in); err != nil {
		return domain.TripRecord{}, err
	}

	vehicleID := domain.VehicleID(strings.TrimSpace(in.VehicleID))
	if _, err := s.vehicles.GetByID(ctx, vehicleID); err != nil {
		if errors.Is(err, vehiclerepo.ErrNotFound) {
			return domain.TripRecord{}, &Error{Status: http.StatusBadRequest, Code: "VALIDATION_ERROR", Message: "unknown vehicleId"}
		}
		return domain.TripRecord{}, err
	}

	t := domain.Trip{
		ID:            s.newTripID(),
		UserID:        driver,
		VehicleID:     vehicleID,
		StartDatetime: *in.StartDatetime,
		EndDatetime:   *in.EndDatetime,
		StartOdometer: *in.StartOdometer,
		EndOdometer:   *in.EndOdometer,
		Purpose:       normalizePurpose(in.Purpose),
		CreatedAt:     s.clk.Now(),
	}
	if err := s.trips.Create(ctx, t); err != nil {
		if errors.Is(err, triprepo.ErrInvalidReference) {
			return domain.TripRecord{}, &Error{Status: http.StatusBadRequest, Code: "VALIDATION_ERROR", Message: "unknown vehicleId"}
		}
		return domain.TripRecord{}, err
	}

	return s.trips.GetRecord(ctx, t.ID)
}

// ListRecentTrips returns the most recently created trips, newest first.
// Non-positive limits fall back to the default; the result size never
// exceeds MaxRecentLimit.
func (s *Service) ListRecentTrips(ctx context.Context, limit int) ([]domain.TripRecord, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	if limit > MaxRecentLimit {
		limit = MaxRecentLimit
	}
	return s.trips.ListRecent(ctx, limit)
}

func validateRecordTrip(in RecordTripInput) error {
	if strings.TrimSpace(in.VehicleID) == "" ||
		in.StartDatetime == nil || in.EndDatetime == nil ||
		in.StartOdometer == nil || in.EndOdometer == nil {
		return &Error{Status: http.StatusBadRequest, Code: "VALIDATION_ERROR", Message: "Missing required fields"}
	}
	if in.EndDatetime.Before(*in.StartDatetime) {
		return &Error{Status: http.StatusBadRequest, Code: "VALIDATION_ERROR", Message: "endDatetime must not be before startDatetime"}
	}
	if *in.StartOdometer < 0 || *in.EndOdometer < 0 {
		return &Error{Status: http.StatusBadRequest, Code: "VALIDATION_ERROR", Message: "odometer readings must not be negative"}
	}
	if *in.EndOdometer < *in.StartOdometer {
		return &Error{Status: http.StatusBadRequest, Code: "VALIDATION_ERROR", Message: "endOdometer must not be less than startOdometer"}
	}
	return nil
}

func normalizePurpose(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	if v == "" {
		return nil
	}
	return &v
}
