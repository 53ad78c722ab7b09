package userrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/siamfleet/fleet-usage-api/internal/adapters/postgres"
	"github.com/siamfleet/fleet-usage-api/internal/domain"
	"github.com/siamfleet/fleet-usage-api/internal/ports/out/userrepo"
)

// Repo is a Postgres implementation of userrepo.Repository.
type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const selectUser = `
	SELECT id, username, employee_id, full_name, password_hash, role
	FROM users`

func (r *Repo) Create(ctx context.Context, u domain.User) error {
	if r.pool == nil {
		return errors.New("nil postgres pool")
	}
	id, err := uuid.Parse(string(u.ID))
	if err != nil {
		return fmt.Errorf("invalid user id: %w", err)
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO users (id, username, employee_id, full_name, password_hash, role)
		VALUES ($1, $2, $3, $4, $5, $6)
	`,
		id,
		u.Username,
		u.EmployeeID,
		u.FullName,
		u.PasswordHash,
		string(u.Role),
	)
	if err != nil {
		if pe, ok := postgres.AsPgError(err); ok && pe.Code == postgres.UniqueViolationCode {
			return userrepo.ErrAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *Repo) GetByID(ctx context.Context, id domain.UserID) (domain.User, error) {
	if r.pool == nil {
		return domain.User{}, errors.New("nil postgres pool")
	}
	userUUID, err := uuid.Parse(string(id))
	if err != nil {
		return domain.User{}, userrepo.ErrNotFound
	}

	row := r.pool.QueryRow(ctx, selectUser+` WHERE id = $1`, userUUID)
	return scanUser(row)
}

func (r *Repo) GetByLogin(ctx context.Context, usernameOrEmployeeID string) (domain.User, error) {
	if r.pool == nil {
		return domain.User{}, errors.New("nil postgres pool")
	}

	row := r.pool.QueryRow(ctx,
		selectUser+` WHERE username = $1 OR employee_id = $1 LIMIT 1`,
		usernameOrEmployeeID,
	)
	return scanUser(row)
}

func (r *Repo) Count(ctx context.Context) (int, error) {
	if r.pool == nil {
		return 0, errors.New("nil postgres pool")
	}
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(1) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

func scanUser(row pgx.Row) (domain.User, error) {
	var (
		id   uuid.UUID
		u    domain.User
		role string
	)
	err := row.Scan(&id, &u.Username, &u.EmployeeID, &u.FullName, &u.PasswordHash, &role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, userrepo.ErrNotFound
		}
		return domain.User{}, fmt.Errorf("scan user: %w", err)
	}
	u.ID = domain.UserID(id.String())
	u.Role = domain.Role(role)
	return u, nil
}
