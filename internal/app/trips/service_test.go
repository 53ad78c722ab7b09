package trips_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	memclock "github.com/siamfleet/fleet-usage-api/internal/adapters/memory/clock"
	memtriprepo "github.com/siamfleet/fleet-usage-api/internal/adapters/memory/triprepo"
	memuserrepo "github.com/siamfleet/fleet-usage-api/internal/adapters/memory/userrepo"
	memvehiclerepo "github.com/siamfleet/fleet-usage-api/internal/adapters/memory/vehiclerepo"
	"github.com/siamfleet/fleet-usage-api/internal/app/trips"
	"github.com/siamfleet/fleet-usage-api/internal/domain"
)

type fixture struct {
	svc     *trips.Service
	trips   *memtriprepo.Repo
	clk     *memclock.ManualClock
	driver  domain.UserID
	vehicle domain.VehicleID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	users := memuserrepo.NewRepo()
	vehicles := memvehiclerepo.NewRepo()
	tripRepo := memtriprepo.NewRepo(users, vehicles)
	clk := memclock.NewManualClock(time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC))

	driver := domain.User{
		ID:           "user-1",
		Username:     "employee1",
		EmployeeID:   "E001",
		FullName:     "Employee One",
		PasswordHash: "x",
		Role:         domain.RoleEmployee,
	}
	if err := users.Create(context.Background(), driver); err != nil {
		t.Fatalf("seed driver: %v", err)
	}
	vehicle := domain.Vehicle{ID: "veh-1", Name: "Toyota Hilux", LicensePlate: "AB-1234"}
	if err := vehicles.Create(context.Background(), vehicle); err != nil {
		t.Fatalf("seed vehicle: %v", err)
	}

	svc := trips.NewService(tripRepo, vehicles, clk)
	next := 0
	svc.SetNewTripIDForTest(func() domain.TripID {
		next++
		return domain.TripID(fmt.Sprintf("trip-%03d", next))
	})

	return &fixture{svc: svc, trips: tripRepo, clk: clk, driver: driver.ID, vehicle: vehicle.ID}
}

func ptrTime(t time.Time) *time.Time { return &t }
func ptrInt64(v int64) *int64        { return &v }
func ptrString(v string) *string     { return &v }

func validInput(f *fixture) trips.RecordTripInput {
	return trips.RecordTripInput{
		VehicleID:     string(f.vehicle),
		StartDatetime: ptrTime(time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC)),
		EndDatetime:   ptrTime(time.Date(2024, 1, 5, 12, 0, 0, 0, time.UTC)),
		StartOdometer: ptrInt64(100),
		EndOdometer:   ptrInt64(150),
		Purpose:       ptrString("ส่งเอกสาร"),
	}
}

func TestRecordTrip(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	rec, err := f.svc.RecordTrip(context.Background(), f.driver, validInput(f))
	if err != nil {
		t.Fatalf("RecordTrip: %v", err)
	}
	if rec.VehicleName != "Toyota Hilux" || rec.LicensePlate != "AB-1234" {
		t.Fatalf("vehicle fields = %q/%q", rec.VehicleName, rec.LicensePlate)
	}
	if rec.DriverName != "Employee One" {
		t.Fatalf("driver name = %q", rec.DriverName)
	}
	if got := rec.Distance(); got != 50 {
		t.Fatalf("distance = %d, want 50", got)
	}
	if !rec.CreatedAt.Equal(f.clk.Now()) {
		t.Fatalf("created at = %v, want clock time %v", rec.CreatedAt, f.clk.Now())
	}
}

func TestRecordTripNormalizesPurpose(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	in := validInput(f)
	in.Purpose = ptrString("   ")
	rec, err := f.svc.RecordTrip(context.Background(), f.driver, in)
	if err != nil {
		t.Fatalf("RecordTrip: %v", err)
	}
	if rec.Purpose != nil {
		t.Fatalf("purpose = %q, want nil", *rec.Purpose)
	}
}

func TestRecordTripValidation(t *testing.T) {
	t.Parallel()

	mutations := []struct {
		name    string
		mutate  func(*trips.RecordTripInput)
		message string
	}{
		{"missing vehicle", func(in *trips.RecordTripInput) { in.VehicleID = "" }, "Missing required fields"},
		{"missing start", func(in *trips.RecordTripInput) { in.StartDatetime = nil }, "Missing required fields"},
		{"missing end", func(in *trips.RecordTripInput) { in.EndDatetime = nil }, "Missing required fields"},
		{"missing start odometer", func(in *trips.RecordTripInput) { in.StartOdometer = nil }, "Missing required fields"},
		{"missing end odometer", func(in *trips.RecordTripInput) { in.EndOdometer = nil }, "Missing required fields"},
		{"end before start", func(in *trips.RecordTripInput) {
			in.EndDatetime = ptrTime(in.StartDatetime.Add(-time.Hour))
		}, "endDatetime must not be before startDatetime"},
		{"negative odometer", func(in *trips.RecordTripInput) { in.StartOdometer = ptrInt64(-1) }, "odometer readings must not be negative"},
		{"end odometer below start", func(in *trips.RecordTripInput) { in.EndOdometer = ptrInt64(50) }, "endOdometer must not be less than startOdometer"},
	}

	for _, tc := range mutations {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			f := newFixture(t)

			in := validInput(f)
			tc.mutate(&in)
			_, err := f.svc.RecordTrip(context.Background(), f.driver, in)

			var appErr *trips.Error
			if !errors.As(err, &appErr) {
				t.Fatalf("error type = %T, want *trips.Error", err)
			}
			if appErr.Status != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", appErr.Status)
			}
			if appErr.Message != tc.message {
				t.Fatalf("message = %q, want %q", appErr.Message, tc.message)
			}

			// Nothing may be inserted on validation failure.
			recs, err := f.trips.ListRecent(context.Background(), 10)
			if err != nil {
				t.Fatalf("ListRecent: %v", err)
			}
			if len(recs) != 0 {
				t.Fatalf("trips after failed insert = %d, want 0", len(recs))
			}
		})
	}
}

func TestRecordTripUnknownVehicle(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	in := validInput(f)
	in.VehicleID = "veh-ghost"
	_, err := f.svc.RecordTrip(context.Background(), f.driver, in)

	var appErr *trips.Error
	if !errors.As(err, &appErr) {
		t.Fatalf("error type = %T, want *trips.Error", err)
	}
	if appErr.Status != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", appErr.Status)
	}
}

func TestRecordTripZeroDurationAndDistance(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	in := validInput(f)
	in.EndDatetime = ptrTime(*in.StartDatetime)
	in.EndOdometer = ptrInt64(*in.StartOdometer)
	rec, err := f.svc.RecordTrip(context.Background(), f.driver, in)
	if err != nil {
		t.Fatalf("RecordTrip with equal bounds: %v", err)
	}
	if rec.Distance() != 0 {
		t.Fatalf("distance = %d, want 0", rec.Distance())
	}
}

func TestListRecentTripsOrderAndLimit(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	for i := 0; i < 5; i++ {
		if _, err := f.svc.RecordTrip(context.Background(), f.driver, validInput(f)); err != nil {
			t.Fatalf("RecordTrip %d: %v", i, err)
		}
		f.clk.Advance(time.Minute)
	}

	recs, err := f.svc.ListRecentTrips(context.Background(), 3)
	if err != nil {
		t.Fatalf("ListRecentTrips: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("len = %d, want 3", len(recs))
	}
	for i := 1; i < len(recs); i++ {
		if recs[i].CreatedAt.After(recs[i-1].CreatedAt) {
			t.Fatalf("records not newest-first at index %d", i)
		}
	}
	if recs[0].ID != "trip-005" {
		t.Fatalf("newest id = %q, want trip-005", recs[0].ID)
	}
}

func TestListRecentTripsLimitDefaults(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	for i := 0; i < trips.DefaultRecentLimit+5; i++ {
		if _, err := f.svc.RecordTrip(context.Background(), f.driver, validInput(f)); err != nil {
			t.Fatalf("RecordTrip %d: %v", i, err)
		}
		f.clk.Advance(time.Second)
	}

	for _, limit := range []int{0, -7} {
		recs, err := f.svc.ListRecentTrips(context.Background(), limit)
		if err != nil {
			t.Fatalf("ListRecentTrips(%d): %v", limit, err)
		}
		if len(recs) != trips.DefaultRecentLimit {
			t.Fatalf("limit %d: len = %d, want default %d", limit, len(recs), trips.DefaultRecentLimit)
		}
	}
}

func TestListRecentTripsLimitClamped(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	for i := 0; i < trips.MaxRecentLimit+10; i++ {
		if _, err := f.svc.RecordTrip(context.Background(), f.driver, validInput(f)); err != nil {
			t.Fatalf("RecordTrip %d: %v", i, err)
		}
		f.clk.Advance(time.Second)
	}

	recs, err := f.svc.ListRecentTrips(context.Background(), 1000)
	if err != nil {
		t.Fatalf("ListRecentTrips: %v", err)
	}
	if len(recs) != trips.MaxRecentLimit {
		t.Fatalf("len = %d, want max %d", len(recs), trips.MaxRecentLimit)
	}
}
