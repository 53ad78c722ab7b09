// Package httpapi exposes the application services over HTTP.
package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/alexedwards/scs/v2"
	"go.uber.org/zap"

	"github.com/siamfleet/fleet-usage-api/internal/app/auth"
	"github.com/siamfleet/fleet-usage-api/internal/app/trips"
	"github.com/siamfleet/fleet-usage-api/internal/app/vehicles"
	"github.com/siamfleet/fleet-usage-api/internal/domain"
)

// sessionUserKey is the session entry holding the authenticated user id.
const sessionUserKey = "userID"

// Server holds the handler dependencies.
type Server struct {
	Auth     *auth.Service
	Vehicles *vehicles.Service
	Trips    *trips.Service
	Sessions *scs.SessionManager
	Loc      *time.Location
	Log      *zap.Logger
}

func NewServer(authSvc *auth.Service, vehiclesSvc *vehicles.Service, tripsSvc *trips.Service, sessions *scs.SessionManager, loc *time.Location, log *zap.Logger) *Server {
	return &Server{
		Auth:     authSvc,
		Vehicles: vehiclesSvc,
		Trips:    tripsSvc,
		Sessions: sessions,
		Loc:      loc,
		Log:      log,
	}
}

type userJSON struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	EmployeeID string `json:"employee_id"`
	FullName   string `json:"full_name"`
	Role       string `json:"role"`
}

func toUserJSON(p domain.Profile) userJSON {
	return userJSON{
		ID:         string(p.ID),
		Username:   p.Username,
		EmployeeID: p.EmployeeID,
		FullName:   p.FullName,
		Role:       string(p.Role),
	}
}

type vehicleJSON struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	LicensePlate string `json:"license_plate"`
}

type tripJSON struct {
	ID            string  `json:"id"`
	UserID        string  `json:"user_id"`
	VehicleID     string  `json:"vehicle_id"`
	VehicleName   string  `json:"vehicle_name"`
	LicensePlate  string  `json:"license_plate"`
	DriverName    string  `json:"driver_name"`
	StartDatetime string  `json:"start_datetime"`
	EndDatetime   string  `json:"end_datetime"`
	StartOdometer int64   `json:"start_odometer"`
	EndOdometer   int64   `json:"end_odometer"`
	Distance      int64   `json:"distance"`
	Purpose       *string `json:"purpose"`
	CreatedAt     string  `json:"created_at"`
}

func (s *Server) toTripJSON(r domain.TripRecord) tripJSON {
	return tripJSON{
		ID:            string(r.ID),
		UserID:        string(r.UserID),
		VehicleID:     string(r.VehicleID),
		VehicleName:   r.VehicleName,
		LicensePlate:  r.LicensePlate,
		DriverName:    r.DriverName,
		StartDatetime: r.StartDatetime.In(s.Loc).Format(time.RFC3339),
		EndDatetime:   r.EndDatetime.In(s.Loc).Format(time.RFC3339),
		StartOdometer: r.StartOdometer,
		EndOdometer:   r.EndOdometer,
		Distance:      r.Distance(),
		Purpose:       r.Purpose,
		CreatedAt:     r.CreatedAt.In(s.Loc).Format(time.RFC3339),
	}
}

type loginRequest struct {
	UsernameOrEmployeeID string `json:"usernameOrEmployeeId"`
	Password             string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	profile, err := s.Auth.Login(r.Context(), req.UsernameOrEmployeeID, req.Password)
	if err != nil {
		writeAppError(w, err)
		return
	}

	// A fresh token on privilege change prevents session fixation.
	if err := s.Sessions.RenewToken(r.Context()); err != nil {
		s.Log.Error("renew session token", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	s.Sessions.Put(r.Context(), sessionUserKey, string(profile.ID))

	writeJSON(w, http.StatusOK, map[string]any{"user": toUserJSON(profile)})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.Sessions.Destroy(r.Context()); err != nil {
		s.Log.Error("destroy session", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	userID := s.Sessions.GetString(r.Context(), sessionUserKey)
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	profile, err := s.Auth.ProfileByID(r.Context(), domain.UserID(userID))
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": toUserJSON(profile)})
}

func (s *Server) handleListVehicles(w http.ResponseWriter, r *http.Request) {
	list, err := s.Vehicles.ListVehicles(r.Context())
	if err != nil {
		writeAppError(w, err)
		return
	}

	out := make([]vehicleJSON, 0, len(list))
	for _, v := range list {
		out = append(out, vehicleJSON{
			ID:           string(v.ID),
			Name:         v.Name,
			LicensePlate: v.LicensePlate,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"vehicles": out})
}

// Request fields are camelCase to match the browser client; response fields
// stay snake_case, echoing the stored column names.
type recordTripRequest struct {
	VehicleID     *string `json:"vehicleId"`
	StartDatetime *string `json:"startDatetime"`
	EndDatetime   *string `json:"endDatetime"`
	StartOdometer *int64  `json:"startOdometer"`
	EndOdometer   *int64  `json:"endOdometer"`
	Purpose       *string `json:"purpose"`
}

// datetimeLayouts accepts full RFC 3339 stamps plus the zone-less forms an
// HTML datetime-local input produces. Zone-less values are read in the
// server's report location.
var datetimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

func (s *Server) parseDatetime(v *string) (*time.Time, error) {
	if v == nil {
		return nil, nil
	}
	for _, layout := range datetimeLayouts {
		if t, err := time.ParseInLocation(layout, *v, s.Loc); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("unrecognized datetime %q", *v)
}

func (s *Server) handleRecordTrip(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req recordTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	start, err := s.parseDatetime(req.StartDatetime)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid datetime format")
		return
	}
	end, err := s.parseDatetime(req.EndDatetime)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid datetime format")
		return
	}

	in := trips.RecordTripInput{
		StartDatetime: start,
		EndDatetime:   end,
		StartOdometer: req.StartOdometer,
		EndOdometer:   req.EndOdometer,
		Purpose:       req.Purpose,
	}
	if req.VehicleID != nil {
		in.VehicleID = *req.VehicleID
	}

	rec, err := s.Trips.RecordTrip(r.Context(), userID, in)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"trip": s.toTripJSON(rec)})
}

func (s *Server) handleRecentTrips(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}

	recs, err := s.Trips.ListRecentTrips(r.Context(), limit)
	if err != nil {
		writeAppError(w, err)
		return
	}

	out := make([]tripJSON, 0, len(recs))
	for _, rec := range recs {
		out = append(out, s.toTripJSON(rec))
	}
	writeJSON(w, http.StatusOK, map[string]any{"trips": out})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// requireSession rejects requests without an authenticated session and binds
// the user id to the request context for downstream handlers.
func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := s.Sessions.GetString(r.Context(), sessionUserKey)
		if userID == "" {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), domain.UserID(userID))))
	})
}
