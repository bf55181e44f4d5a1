package routes

import (
	"net/http"

	"github.com/zatekoja/hospitalmanagement/backend/internal/api/handlers"
	"github.com/zatekoja/hospitalmanagement/backend/internal/api/middleware"
	"github.com/zatekoja/hospitalmanagement/backend/internal/domain/entities"
	"github.com/zatekoja/hospitalmanagement/backend/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	authHandler    *handlers.AuthHandler
	doctorHandler  *handlers.DoctorHandler
	bookingHandler *handlers.BookingHandler
	archiveHandler *handlers.ArchiveHandler

	auth    *middleware.AuthMiddleware
	metrics *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	authHandler *handlers.AuthHandler,
	doctorHandler *handlers.DoctorHandler,
	bookingHandler *handlers.BookingHandler,
	archiveHandler *handlers.ArchiveHandler,
	auth *middleware.AuthMiddleware,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:            http.NewServeMux(),
		authHandler:    authHandler,
		doctorHandler:  doctorHandler,
		bookingHandler: bookingHandler,
		archiveHandler: archiveHandler,
		auth:           auth,
		metrics:        metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Auth endpoints
	r.mux.HandleFunc("POST /api/auth/signup", r.authHandler.Signup)
	r.mux.HandleFunc("POST /api/auth/login", r.authHandler.Login)
	r.mux.HandleFunc("POST /api/auth/logout", r.authHandler.Logout)

	// Doctor directory endpoints
	r.mux.HandleFunc("GET /api/doctors", r.auth.RequireSession(r.doctorHandler.ListDoctors))
	r.mux.HandleFunc("POST /api/doctors", r.auth.RequireRole(entities.RoleDoctor, r.doctorHandler.RegisterDoctor))
	r.mux.HandleFunc("GET /api/doctors/profile", r.auth.RequireRole(entities.RoleDoctor, r.archiveHandler.DoctorProfile))

	// Booking ledger endpoints
	r.mux.HandleFunc("POST /api/bookings", r.auth.RequireSession(r.bookingHandler.CreateBooking))
	r.mux.HandleFunc("GET /api/bookings", r.auth.RequireSession(r.bookingHandler.ListBookings))
	r.mux.HandleFunc("GET /api/bookings/details", r.auth.RequireRole(entities.RoleDoctor, r.bookingHandler.ListBookings))
	r.mux.HandleFunc("GET /api/bookings/search", r.bookingHandler.SearchBookings)
	r.mux.HandleFunc("GET /api/bookings/{id}", r.auth.RequireSession(r.bookingHandler.GetBooking))
	r.mux.HandleFunc("PUT /api/bookings/{id}", r.auth.RequireSession(r.bookingHandler.EditBooking))
	r.mux.HandleFunc("DELETE /api/bookings/{id}", r.auth.RequireSession(r.bookingHandler.DeleteBooking))
	r.mux.HandleFunc("POST /api/bookings/{id}/attend", r.auth.RequireRole(entities.RoleDoctor, r.bookingHandler.AttendBooking))

	// Audit trail endpoint
	r.mux.HandleFunc("GET /api/audit", r.auth.RequireSession(r.bookingHandler.ListAudit))

	// Completed booking endpoints
	r.mux.HandleFunc("GET /api/completed", r.auth.RequireSession(r.archiveHandler.ListCompleted))
	r.mux.HandleFunc("POST /api/completed/{id}/feedback", r.auth.RequireSession(r.archiveHandler.SubmitFeedback))

	// Apply middleware in reverse order (last middleware wraps first)
	// CORS must be outermost so error responses also get CORS headers.
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.CORSMiddleware(handler)

	return handler
}
