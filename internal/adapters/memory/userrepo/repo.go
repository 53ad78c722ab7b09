package userrepo

import (
	"context"
	"sync"

	"github.com/siamfleet/fleet-usage-api/internal/domain"
	"github.com/siamfleet/fleet-usage-api/internal/ports/out/userrepo"
)

// Repo is an in-memory implementation of userrepo.Repository.
// It is safe for concurrent use.
type Repo struct {
	mu   sync.RWMutex
	byID map[domain.UserID]domain.User
}

func NewRepo() *Repo {
	return &Repo{
		byID: make(map[domain.UserID]domain.User),
	}
}

func (r *Repo) Create(ctx context.Context, u domain.User) error {
	_ = ctx
	if u.ID == "" {
		return userrepo.ErrMissingID
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[u.ID]; ok {
		return userrepo.ErrAlreadyExists
	}
	for _, existing := range r.byID {
		if existing.Username == u.Username || existing.EmployeeID == u.EmployeeID {
			return userrepo.ErrAlreadyExists
		}
	}
	r.byID[u.ID] = u
	return nil
}

func (r *Repo) GetByID(ctx context.Context, id domain.UserID) (domain.User, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byID[id]
	if !ok {
		return domain.User{}, userrepo.ErrNotFound
	}
	return u, nil
}

func (r *Repo) GetByLogin(ctx context.Context, usernameOrEmployeeID string) (domain.User, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.byID {
		if u.Username == usernameOrEmployeeID || u.EmployeeID == usernameOrEmployeeID {
			return u, nil
		}
	}
	return domain.User{}, userrepo.ErrNotFound
}

func (r *Repo) Count(ctx context.Context) (int, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID), nil
}
