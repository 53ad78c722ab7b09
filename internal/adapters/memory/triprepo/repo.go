package triprepo

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/siamfleet/fleet-usage-api/internal/domain"
	"github.com/siamfleet/fleet-usage-api/internal/ports/out/triprepo"
	"github.com/siamfleet/fleet-usage-api/internal/ports/out/userrepo"
	"github.com/siamfleet/fleet-usage-api/internal/ports/out/vehiclerepo"
)

// Repo is an in-memory implementation of triprepo.Repository.
// It is safe for concurrent use.
//
// Read methods join against the user and vehicle repositories to build the
// enriched read model, mirroring the SQL adapter's joins.
type Repo struct {
	mu   sync.RWMutex
	byID map[domain.TripID]domain.Trip

	users    userrepo.Repository
	vehicles vehiclerepo.Repository
}

func NewRepo(users userrepo.Repository, vehicles vehiclerepo.Repository) *Repo {
	return &Repo{
		byID:     make(map[domain.TripID]domain.Trip),
		users:    users,
		vehicles: vehicles,
	}
}

func (r *Repo) Create(ctx context.Context, t domain.Trip) error {
	if t.ID == "" {
		return triprepo.ErrMissingID
	}
	if _, err := r.users.GetByID(ctx, t.UserID); err != nil {
		return triprepo.ErrInvalidReference
	}
	if _, err := r.vehicles.GetByID(ctx, t.VehicleID); err != nil {
		return triprepo.ErrInvalidReference
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[t.ID]; ok {
		return triprepo.ErrAlreadyExists
	}
	r.byID[t.ID] = cloneTrip(t)
	return nil
}

func (r *Repo) GetRecord(ctx context.Context, id domain.TripID) (domain.TripRecord, error) {
	r.mu.RLock()
	t, ok := r.byID[id]
	r.mu.RUnlock()
	if !ok {
		return domain.TripRecord{}, triprepo.ErrNotFound
	}
	return r.enrich(ctx, t)
}

func (r *Repo) ListRecent(ctx context.Context, limit int) ([]domain.TripRecord, error) {
	r.mu.RLock()
	ts := make([]domain.Trip, 0, len(r.byID))
	for _, t := range r.byID {
		ts = append(ts, cloneTrip(t))
	}
	r.mu.RUnlock()

	// Newest first; ID as tie-breaker for determinism.
	sort.Slice(ts, func(i, j int) bool {
		if !ts[i].CreatedAt.Equal(ts[j].CreatedAt) {
			return ts[i].CreatedAt.After(ts[j].CreatedAt)
		}
		return ts[i].ID > ts[j].ID
	})
	if limit >= 0 && len(ts) > limit {
		ts = ts[:limit]
	}
	return r.enrichAll(ctx, ts)
}

func (r *Repo) ListStartedBetween(ctx context.Context, from, to time.Time) ([]domain.TripRecord, error) {
	r.mu.RLock()
	ts := make([]domain.Trip, 0)
	for _, t := range r.byID {
		if t.StartDatetime.Before(from) || !t.StartDatetime.Before(to) {
			continue
		}
		ts = append(ts, cloneTrip(t))
	}
	r.mu.RUnlock()

	sort.Slice(ts, func(i, j int) bool {
		if !ts[i].StartDatetime.Equal(ts[j].StartDatetime) {
			return ts[i].StartDatetime.Before(ts[j].StartDatetime)
		}
		if !ts[i].CreatedAt.Equal(ts[j].CreatedAt) {
			return ts[i].CreatedAt.Before(ts[j].CreatedAt)
		}
		return ts[i].ID < ts[j].ID
	})
	return r.enrichAll(ctx, ts)
}

func (r *Repo) enrichAll(ctx context.Context, ts []domain.Trip) ([]domain.TripRecord, error) {
	out := make([]domain.TripRecord, 0, len(ts))
	for _, t := range ts {
		rec, err := r.enrich(ctx, t)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

func (r *Repo) enrich(ctx context.Context, t domain.Trip) (domain.TripRecord, error) {
	u, err := r.users.GetByID(ctx, t.UserID)
	if err != nil {
		return domain.TripRecord{}, triprepo.ErrInvalidReference
	}
	v, err := r.vehicles.GetByID(ctx, t.VehicleID)
	if err != nil {
		return domain.TripRecord{}, triprepo.ErrInvalidReference
	}
	return domain.TripRecord{
		Trip:         t,
		VehicleName:  v.Name,
		LicensePlate: v.LicensePlate,
		DriverName:   u.FullName,
	}, nil
}

func cloneTrip(t domain.Trip) domain.Trip {
	cp := t
	if t.Purpose != nil {
		v := *t.Purpose
		cp.Purpose = &v
	}
	return cp
}
