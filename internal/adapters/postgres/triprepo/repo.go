package triprepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/siamfleet/fleet-usage-api/internal/adapters/postgres"
	"github.com/siamfleet/fleet-usage-api/internal/domain"
	"github.com/siamfleet/fleet-usage-api/internal/ports/out/triprepo"
)

// Repo is a Postgres implementation of triprepo.Repository.
type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const selectRecord = `
	SELECT t.id, t.user_id, t.vehicle_id,
	       t.start_datetime, t.end_datetime,
	       t.start_odometer, t.end_odometer,
	       t.purpose, t.created_at,
	       v.name, v.license_plate, u.full_name
	FROM trips t
	JOIN vehicles v ON v.id = t.vehicle_id
	JOIN users u ON u.id = t.user_id`

func (r *Repo) Create(ctx context.Context, t domain.Trip) error {
	if r.pool == nil {
		return errors.New("nil postgres pool")
	}
	tripID, err := uuid.Parse(string(t.ID))
	if err != nil {
		return fmt.Errorf("invalid trip id: %w", err)
	}
	userID, err := uuid.Parse(string(t.UserID))
	if err != nil {
		return triprepo.ErrInvalidReference
	}
	vehicleID, err := uuid.Parse(string(t.VehicleID))
	if err != nil {
		return triprepo.ErrInvalidReference
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO trips (id, user_id, vehicle_id, start_datetime, end_datetime,
		                   start_odometer, end_odometer, purpose, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`,
		tripID,
		userID,
		vehicleID,
		t.StartDatetime,
		t.EndDatetime,
		t.StartOdometer,
		t.EndOdometer,
		t.Purpose,
		t.CreatedAt,
	)
	if err != nil {
		if pe, ok := postgres.AsPgError(err); ok {
			switch pe.Code {
			case postgres.UniqueViolationCode:
				return triprepo.ErrAlreadyExists
			case postgres.ForeignKeyViolationCode:
				return triprepo.ErrInvalidReference
			}
		}
		return fmt.Errorf("insert trip: %w", err)
	}
	return nil
}

func (r *Repo) GetRecord(ctx context.Context, id domain.TripID) (domain.TripRecord, error) {
	if r.pool == nil {
		return domain.TripRecord{}, errors.New("nil postgres pool")
	}
	tripID, err := uuid.Parse(string(id))
	if err != nil {
		return domain.TripRecord{}, triprepo.ErrNotFound
	}

	row := r.pool.QueryRow(ctx, selectRecord+` WHERE t.id = $1`, tripID)
	rec, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.TripRecord{}, triprepo.ErrNotFound
		}
		return domain.TripRecord{}, err
	}
	return rec, nil
}

func (r *Repo) ListRecent(ctx context.Context, limit int) ([]domain.TripRecord, error) {
	if r.pool == nil {
		return nil, errors.New("nil postgres pool")
	}

	rows, err := r.pool.Query(ctx,
		selectRecord+` ORDER BY t.created_at DESC, t.id DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list recent trips: %w", err)
	}
	defer rows.Close()
	return collectRecords(rows)
}

func (r *Repo) ListStartedBetween(ctx context.Context, from, to time.Time) ([]domain.TripRecord, error) {
	if r.pool == nil {
		return nil, errors.New("nil postgres pool")
	}

	rows, err := r.pool.Query(ctx,
		selectRecord+`
		WHERE t.start_datetime >= $1 AND t.start_datetime < $2
		ORDER BY t.start_datetime ASC, t.created_at ASC, t.id ASC`,
		from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("list trips by window: %w", err)
	}
	defer rows.Close()
	return collectRecords(rows)
}

func collectRecords(rows pgx.Rows) ([]domain.TripRecord, error) {
	out := make([]domain.TripRecord, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func scanRecord(row pgx.Row) (domain.TripRecord, error) {
	var (
		tripID    uuid.UUID
		userID    uuid.UUID
		vehicleID uuid.UUID
		rec       domain.TripRecord
	)
	err := row.Scan(
		&tripID,
		&userID,
		&vehicleID,
		&rec.StartDatetime,
		&rec.EndDatetime,
		&rec.StartOdometer,
		&rec.EndOdometer,
		&rec.Purpose,
		&rec.CreatedAt,
		&rec.VehicleName,
		&rec.LicensePlate,
		&rec.DriverName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.TripRecord{}, err
		}
		return domain.TripRecord{}, fmt.Errorf("scan trip record: %w", err)
	}
	rec.ID = domain.TripID(tripID.String())
	rec.UserID = domain.UserID(userID.String())
	rec.VehicleID = domain.VehicleID(vehicleID.String())
	return rec, nil
}
