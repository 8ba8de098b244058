// Package router assembles the HTTP surface of the API.
package router

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/healthtrack/healthtrack-go/internal/crypto"
	"github.com/healthtrack/healthtrack-go/internal/handler"
	"github.com/healthtrack/healthtrack-go/internal/middleware"
	"github.com/healthtrack/healthtrack-go/internal/service"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Deps carries everything the routes need.
type Deps struct {
	Auth         *service.AuthService
	Appointments *service.AppointmentService
	Health       *service.HealthService
	Tokens       *crypto.TokenService
	// DB is optional; without it /health reports only liveness.
	DB          Pinger
	CORSOrigins []string
}

// New returns the root handler.
func New(d Deps) http.Handler {
	authHandler := handler.NewAuthHandler(d.Auth)
	appointmentHandler := handler.NewAppointmentHandler(d.Appointments)
	healthHandler := handler.NewHealthHandler(d.Health)

	origins := d.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.Logger)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("healthtrack API is running"))
	})
	r.Get("/health", healthCheck(d.DB))

	r.Post("/api/auth/register", authHandler.HandleRegister)
	r.Post("/api/auth/login", authHandler.HandleLogin)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(d.Tokens, d.Auth))

		r.Get("/api/auth/me", authHandler.HandleMe)
		r.Get("/api/users/me", authHandler.HandleMe)
		r.Put("/api/users/me", authHandler.HandleUpdateProfile)

		r.Route("/api/appointments", func(r chi.Router) {
			r.Post("/", appointmentHandler.HandleCreate)
			r.Get("/", appointmentHandler.HandleList)
			r.Get("/{id}", appointmentHandler.HandleGet)
			r.Put("/{id}", appointmentHandler.HandleUpdate)
			r.Delete("/{id}", appointmentHandler.HandleDelete)
		})

		r.Route("/api/health", func(r chi.Router) {
			r.Get("/dashboard", healthHandler.HandleDashboard)

			r.Post("/physical", healthHandler.HandleLogPhysical)
			r.Get("/physical", healthHandler.HandleListPhysical)
			r.Get("/physical/{id}", healthHandler.HandleGetPhysical)
			r.Put("/physical/{id}", healthHandler.HandleUpdatePhysical)
			r.Delete("/physical/{id}", healthHandler.HandleDeletePhysical)

			r.Post("/mental", healthHandler.HandleLogMental)
			r.Get("/mental", healthHandler.HandleListMental)
			r.Get("/mental/{id}", healthHandler.HandleGetMental)
			r.Put("/mental/{id}", healthHandler.HandleUpdateMental)
			r.Delete("/mental/{id}", healthHandler.HandleDeleteMental)
		})
	})

	return r
}

func healthCheck(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status, code := "ok", http.StatusOK
		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := db.PingContext(ctx); err != nil {
				status, code = "unavailable", http.StatusServiceUnavailable
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		json.NewEncoder(w).Encode(map[string]any{"success": code == http.StatusOK, "status": status})
	}
}
