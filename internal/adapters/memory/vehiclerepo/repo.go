package vehiclerepo

import (
	"context"
	"sort"
	"sync"

	"github.com/siamfleet/fleet-usage-api/internal/domain"
	"github.com/siamfleet/fleet-usage-api/internal/ports/out/vehiclerepo"
)

// Repo is an in-memory implementation of vehiclerepo.Repository.
// It is safe for concurrent use.
type Repo struct {
	mu   sync.RWMutex
	byID map[domain.VehicleID]domain.Vehicle
}

func NewRepo() *Repo {
	return &Repo{
		byID: make(map[domain.VehicleID]domain.Vehicle),
	}
}

func (r *Repo) Create(ctx context.Context, v domain.Vehicle) error {
	_ = ctx
	if v.ID == "" {
		return vehiclerepo.ErrMissingID
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[v.ID]; ok {
		return vehiclerepo.ErrAlreadyExists
	}
	for _, existing := range r.byID {
		if existing.LicensePlate == v.LicensePlate {
			return vehiclerepo.ErrAlreadyExists
		}
	}
	r.byID[v.ID] = v
	return nil
}

func (r *Repo) GetByID(ctx context.Context, id domain.VehicleID) (domain.Vehicle, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.byID[id]
	if !ok {
		return domain.Vehicle{}, vehiclerepo.ErrNotFound
	}
	return v, nil
}

func (r *Repo) ListByName(ctx context.Context) ([]domain.Vehicle, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Vehicle, 0, len(r.byID))
	for _, v := range r.byID {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].LicensePlate < out[j].LicensePlate
	})
	return out, nil
}

func (r *Repo) Count(ctx context.Context) (int, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID), nil
}
