package vehiclerepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/siamfleet/fleet-usage-api/internal/adapters/postgres"
	"github.com/siamfleet/fleet-usage-api/internal/domain"
	"github.com/siamfleet/fleet-usage-api/internal/ports/out/vehiclerepo"
)

// Repo is a Postgres implementation of vehiclerepo.Repository.
type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

func (r *Repo) Create(ctx context.Context, v domain.Vehicle) error {
	if r.pool == nil {
		return errors.New("nil postgres pool")
	}
	id, err := uuid.Parse(string(v.ID))
	if err != nil {
		return fmt.Errorf("invalid vehicle id: %w", err)
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO vehicles (id, name, license_plate)
		VALUES ($1, $2, $3)
	`, id, v.Name, v.LicensePlate)
	if err != nil {
		if pe, ok := postgres.AsPgError(err); ok && pe.Code == postgres.UniqueViolationCode {
			return vehiclerepo.ErrAlreadyExists
		}
		return fmt.Errorf("insert vehicle: %w", err)
	}
	return nil
}

func (r *Repo) GetByID(ctx context.Context, id domain.VehicleID) (domain.Vehicle, error) {
	if r.pool == nil {
		return domain.Vehicle{}, errors.New("nil postgres pool")
	}
	vehicleUUID, err := uuid.Parse(string(id))
	if err != nil {
		return domain.Vehicle{}, vehiclerepo.ErrNotFound
	}

	var (
		rowID uuid.UUID
		v     domain.Vehicle
	)
	err = r.pool.QueryRow(ctx, `
		SELECT id, name, license_plate FROM vehicles WHERE id = $1
	`, vehicleUUID).Scan(&rowID, &v.Name, &v.LicensePlate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Vehicle{}, vehiclerepo.ErrNotFound
		}
		return domain.Vehicle{}, fmt.Errorf("scan vehicle: %w", err)
	}
	v.ID = domain.VehicleID(rowID.String())
	return v, nil
}

func (r *Repo) ListByName(ctx context.Context) ([]domain.Vehicle, error) {
	if r.pool == nil {
		return nil, errors.New("nil postgres pool")
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, name, license_plate
		FROM vehicles
		ORDER BY name ASC, license_plate ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Vehicle, 0)
	for rows.Next() {
		var (
			rowID uuid.UUID
			v     domain.Vehicle
		)
		if err := rows.Scan(&rowID, &v.Name, &v.LicensePlate); err != nil {
			return nil, fmt.Errorf("scan vehicle: %w", err)
		}
		v.ID = domain.VehicleID(rowID.String())
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *Repo) Count(ctx context.Context) (int, error) {
	if r.pool == nil {
		return 0, errors.New("nil postgres pool")
	}
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(1) FROM vehicles`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count vehicles: %w", err)
	}
	return n, nil
}
