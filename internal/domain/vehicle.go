package domain

// Vehicle is a fleet vehicle available for trip logging. Vehicles are seeded
// at first run and read-only from the application's perspective.
type Vehicle struct {
	ID           VehicleID
	Name         string
	LicensePlate string
}
