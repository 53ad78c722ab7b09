package domain

// UserID is an internal identifier for a user record.
type UserID string

// VehicleID is an internal identifier for a vehicle record.
type VehicleID string

// TripID is an internal identifier for a trip record.
type TripID string
