package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter wires middleware and routes. The health check stays outside the
// session middleware so probes never touch the session store.
func NewRouter(s *Server, clientOrigin string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	if clientOrigin != "" {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{clientOrigin},
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders:   []string{"Content-Type"},
			AllowCredentials: true,
		}))
	}

	r.Get("/health", s.handleHealth)

	r.Group(func(r chi.Router) {
		r.Use(s.Sessions.LoadAndSave)

		r.Post("/auth/login", s.handleLogin)
		r.Get("/auth/me", s.handleMe)

		r.Group(func(r chi.Router) {
			r.Use(s.requireSession)

			r.Post("/auth/logout", s.handleLogout)
			r.Get("/vehicles", s.handleListVehicles)
			r.Post("/trips", s.handleRecordTrip)
			r.Get("/trips/recent", s.handleRecentTrips)
		})
	})

	return r
}
