package domain

import "time"

// Trip is the write model: one recorded vehicle usage event by a driver.
// Trips are immutable once created; there is no update or delete path.
type Trip struct {
	ID        TripID
	UserID    UserID
	VehicleID VehicleID

	StartDatetime time.Time
	EndDatetime   time.Time
	StartOdometer int64
	EndOdometer   int64

	// Purpose is optional free text; nil means unset.
	Purpose *string

	CreatedAt time.Time
}

// Distance is the odometer delta for the trip.
func (t Trip) Distance() int64 { return t.EndOdometer - t.StartOdometer }

// TripRecord is the read model: a Trip joined with vehicle and driver
// display fields, used by trip listings and the daily report.
type TripRecord struct {
	Trip

	VehicleName  string
	LicensePlate string
	DriverName   string
}
