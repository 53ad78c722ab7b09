package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/siamfleet/fleet-usage-api/internal/domain"
	"github.com/siamfleet/fleet-usage-api/internal/ports/out/triprepo"
)

// NoUsageMessage is the fixed body used when a day has no trips.
const NoUsageMessage = "วันนี้ไม่มีการใช้งานรถ"

const (
	dateLayout = "2006-01-02"
	timeLayout = "2006-01-02 15:04"
)

// Service builds the human-readable daily usage summary.
type Service struct {
	trips triprepo.Repository
	loc   *time.Location
}

func NewService(tripsRepo triprepo.Repository, loc *time.Location) *Service {
	return &Service{trips: tripsRepo, loc: loc}
}

// BuildDailySummary renders the report for the local calendar date
// containing now. Trips are ordered by start time ascending.
func (s *Service) BuildDailySummary(ctx context.Context, now time.Time) (string, error) {
	day := now.In(s.loc)
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, s.loc)
	to := from.AddDate(0, 0, 1)

	recs, err := s.trips.ListStartedBetween(ctx, from, to)
	if err != nil {
		return "", err
	}
	return FormatSummary(from, recs, s.loc), nil
}

// FormatSummary renders the daily message: a dated header, then either the
// fixed no-usage line or one numbered block per trip.
func FormatSummary(day time.Time, recs []domain.TripRecord, loc *time.Location) string {
	var b strings.Builder
	fmt.Fprintf(&b, "สรุปการใช้งานรถประจำวัน %s\n", day.In(loc).Format(dateLayout))

	if len(recs) == 0 {
		b.WriteString(NoUsageMessage)
		return b.String()
	}

	for i, r := range recs {
		purpose := "-"
		if r.Purpose != nil && strings.TrimSpace(*r.Purpose) != "" {
			purpose = strings.TrimSpace(*r.Purpose)
		}
		fmt.Fprintf(&b, "%d. %s (%s)\n", i+1, r.VehicleName, r.LicensePlate)
		fmt.Fprintf(&b, "ผู้ขับ: %s\n", r.DriverName)
		fmt.Fprintf(&b, "เวลา: %s → %s\n", r.StartDatetime.In(loc).Format(timeLayout), r.EndDatetime.In(loc).Format(timeLayout))
		fmt.Fprintf(&b, "เลขไมล์: %d → %d (รวม %d กม.)\n", r.StartOdometer, r.EndOdometer, r.Distance())
		fmt.Fprintf(&b, "วัตถุประสงค์: %s\n\n", purpose)
	}

	return strings.TrimSpace(b.String())
}
