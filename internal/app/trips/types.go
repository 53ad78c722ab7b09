package trips

import "time"

// RecordTripInput carries one trip submission. Pointer fields distinguish
// "missing" from zero-valued input; validation happens in the service.
type RecordTripInput struct {
	VehicleID     string
	StartDatetime *time.Time
	EndDatetime   *time.Time
	StartOdometer *int64
	EndOdometer   *int64
	Purpose       *string
}
