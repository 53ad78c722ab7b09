package report_test

import (
	"context"
	"testing"
	"time"

	memtriprepo "github.com/siamfleet/fleet-usage-api/internal/adapters/memory/triprepo"
	memuserrepo "github.com/siamfleet/fleet-usage-api/internal/adapters/memory/userrepo"
	memvehiclerepo "github.com/siamfleet/fleet-usage-api/internal/adapters/memory/vehiclerepo"
	"github.com/siamfleet/fleet-usage-api/internal/app/report"
	"github.com/siamfleet/fleet-usage-api/internal/domain"
)

func bangkok(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Bangkok")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	return loc
}

type reportFixture struct {
	trips *memtriprepo.Repo
	svc   *report.Service
	loc   *time.Location
}

func newReportFixture(t *testing.T) *reportFixture {
	t.Helper()
	loc := bangkok(t)
	users := memuserrepo.NewRepo()
	vehicles := memvehiclerepo.NewRepo()
	tripRepo := memtriprepo.NewRepo(users, vehicles)

	seed := []struct {
		user domain.User
	}{
		{domain.User{ID: "user-1", Username: "employee1", EmployeeID: "E001", FullName: "สมชาย ใจดี", PasswordHash: "x", Role: domain.RoleEmployee}},
	}
	for _, s := range seed {
		if err := users.Create(context.Background(), s.user); err != nil {
			t.Fatalf("seed user: %v", err)
		}
	}
	if err := vehicles.Create(context.Background(), domain.Vehicle{ID: "veh-1", Name: "Toyota Hilux", LicensePlate: "AB-1234"}); err != nil {
		t.Fatalf("seed vehicle: %v", err)
	}

	return &reportFixture{trips: tripRepo, svc: report.NewService(tripRepo, loc), loc: loc}
}

func (f *reportFixture) addTrip(t *testing.T, id string, start, end time.Time, startOdo, endOdo int64, purpose *string) {
	t.Helper()
	err := f.trips.Create(context.Background(), domain.Trip{
		ID:            domain.TripID(id),
		UserID:        "user-1",
		VehicleID:     "veh-1",
		StartDatetime: start,
		EndDatetime:   end,
		StartOdometer: startOdo,
		EndOdometer:   endOdo,
		Purpose:       purpose,
		CreatedAt:     start,
	})
	if err != nil {
		t.Fatalf("add trip %s: %v", id, err)
	}
}

func TestBuildDailySummary(t *testing.T) {
	t.Parallel()
	f := newReportFixture(t)

	purpose := "ส่งเอกสาร"
	f.addTrip(t, "trip-1",
		time.Date(2024, 1, 5, 10, 0, 0, 0, f.loc),
		time.Date(2024, 1, 5, 12, 0, 0, 0, f.loc),
		100, 150, &purpose)
	f.addTrip(t, "trip-2",
		time.Date(2024, 1, 5, 14, 0, 0, 0, f.loc),
		time.Date(2024, 1, 5, 15, 0, 0, 0, f.loc),
		150, 180, nil)

	now := time.Date(2024, 1, 5, 18, 0, 0, 0, f.loc)
	got, err := f.svc.BuildDailySummary(context.Background(), now)
	if err != nil {
		t.Fatalf("BuildDailySummary: %v", err)
	}

	want := "สรุปการใช้งานรถประจำวัน 2024-01-05\n" +
		"1. Toyota Hilux (AB-1234)\n" +
		"ผู้ขับ: สมชาย ใจดี\n" +
		"เวลา: 2024-01-05 10:00 → 2024-01-05 12:00\n" +
		"เลขไมล์: 100 → 150 (รวม 50 กม.)\n" +
		"วัตถุประสงค์: ส่งเอกสาร\n" +
		"\n" +
		"2. Toyota Hilux (AB-1234)\n" +
		"ผู้ขับ: สมชาย ใจดี\n" +
		"เวลา: 2024-01-05 14:00 → 2024-01-05 15:00\n" +
		"เลขไมล์: 150 → 180 (รวม 30 กม.)\n" +
		"วัตถุประสงค์: -"
	if got != want {
		t.Fatalf("summary mismatch:\ngot:\n%s\n\nwant:\n%s", got, want)
	}
}

func TestBuildDailySummaryNoTrips(t *testing.T) {
	t.Parallel()
	f := newReportFixture(t)

	now := time.Date(2024, 1, 5, 18, 0, 0, 0, f.loc)
	got, err := f.svc.BuildDailySummary(context.Background(), now)
	if err != nil {
		t.Fatalf("BuildDailySummary: %v", err)
	}

	want := "สรุปการใช้งานรถประจำวัน 2024-01-05\n" + report.NoUsageMessage
	if got != want {
		t.Fatalf("summary = %q, want %q", got, want)
	}
}

func TestBuildDailySummaryExcludesOtherDays(t *testing.T) {
	t.Parallel()
	f := newReportFixture(t)

	// Previous day, same day boundary cases, next day.
	f.addTrip(t, "trip-prev",
		time.Date(2024, 1, 4, 23, 30, 0, 0, f.loc),
		time.Date(2024, 1, 5, 0, 30, 0, 0, f.loc),
		0, 10, nil)
	f.addTrip(t, "trip-midnight",
		time.Date(2024, 1, 5, 0, 0, 0, 0, f.loc),
		time.Date(2024, 1, 5, 1, 0, 0, 0, f.loc),
		10, 20, nil)
	f.addTrip(t, "trip-next",
		time.Date(2024, 1, 6, 0, 0, 0, 0, f.loc),
		time.Date(2024, 1, 6, 1, 0, 0, 0, f.loc),
		20, 30, nil)

	now := time.Date(2024, 1, 5, 18, 0, 0, 0, f.loc)
	got, err := f.svc.BuildDailySummary(context.Background(), now)
	if err != nil {
		t.Fatalf("BuildDailySummary: %v", err)
	}

	// Only the trip that started on Jan 5 local time qualifies.
	want := "สรุปการใช้งานรถประจำวัน 2024-01-05\n" +
		"1. Toyota Hilux (AB-1234)\n" +
		"ผู้ขับ: สมชาย ใจดี\n" +
		"เวลา: 2024-01-05 00:00 → 2024-01-05 01:00\n" +
		"เลขไมล์: 10 → 20 (รวม 10 กม.)\n" +
		"วัตถุประสงค์: -"
	if got != want {
		t.Fatalf("summary mismatch:\ngot:\n%s\n\nwant:\n%s", got, want)
	}
}

func TestBuildDailySummaryUsesReportLocationForDate(t *testing.T) {
	t.Parallel()
	f := newReportFixture(t)

	// 2024-01-05 23:00 UTC is already 2024-01-06 in Bangkok (UTC+7).
	now := time.Date(2024, 1, 5, 23, 0, 0, 0, time.UTC)
	got, err := f.svc.BuildDailySummary(context.Background(), now)
	if err != nil {
		t.Fatalf("BuildDailySummary: %v", err)
	}
	want := "สรุปการใช้งานรถประจำวัน 2024-01-06\n" + report.NoUsageMessage
	if got != want {
		t.Fatalf("summary = %q, want %q", got, want)
	}
}
