// Package seed inserts the bootstrap users and vehicles on first run.
package seed

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/siamfleet/fleet-usage-api/internal/domain"
	"github.com/siamfleet/fleet-usage-api/internal/ports/out/userrepo"
	"github.com/siamfleet/fleet-usage-api/internal/ports/out/vehiclerepo"
)

const defaultPassword = "password123"

// Seed populates empty user and vehicle tables with the bootstrap accounts
// and fleet. Tables that already hold rows are left untouched, so restarts
// never duplicate data.
func Seed(ctx context.Context, users userrepo.Repository, vehicles vehiclerepo.Repository, log *zap.Logger) error {
	if err := seedUsers(ctx, users, log); err != nil {
		return err
	}
	return seedVehicles(ctx, vehicles, log)
}

func seedUsers(ctx context.Context, users userrepo.Repository, log *zap.Logger) error {
	n, err := users.Count(ctx)
	if err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if n > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(defaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash default password: %w", err)
	}

	accounts := []domain.User{
		{Username: "employee1", EmployeeID: "E001", FullName: "Employee One"},
		{Username: "employee2", EmployeeID: "E002", FullName: "Employee Two"},
	}
	for _, u := range accounts {
		u.ID = domain.UserID(uuid.NewString())
		u.PasswordHash = string(hash)
		u.Role = domain.RoleEmployee
		if err := users.Create(ctx, u); err != nil {
			return fmt.Errorf("seed user %s: %w", u.Username, err)
		}
	}
	log.Info("seeded users", zap.Int("count", len(accounts)))
	return nil
}

func seedVehicles(ctx context.Context, vehicles vehiclerepo.Repository, log *zap.Logger) error {
	n, err := vehicles.Count(ctx)
	if err != nil {
		return fmt.Errorf("count vehicles: %w", err)
	}
	if n > 0 {
		return nil
	}

	fleet := []domain.Vehicle{
		{Name: "Toyota Hilux", LicensePlate: "AB-1234"},
		{Name: "Isuzu D-Max", LicensePlate: "CD-5678"},
	}
	for _, v := range fleet {
		v.ID = domain.VehicleID(uuid.NewString())
		if err := vehicles.Create(ctx, v); err != nil {
			return fmt.Errorf("seed vehicle %s: %w", v.Name, err)
		}
	}
	log.Info("seeded vehicles", zap.Int("count", len(fleet)))
	return nil
}
